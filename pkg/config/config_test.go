package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestInitConfigCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", FileName)
	cfg, err := InitConfig(path)
	if err != nil {
		t.Fatalf("InitConfig() error = %v", err)
	}
	if cfg.Stat.WordLength != 2 {
		t.Errorf("WordLength = %d, want 2", cfg.Stat.WordLength)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config was not written: %v", err)
	}

	// The written file must load back to the same values.
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("reloaded config = %+v, want %+v", loaded, cfg)
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[input]
filename = "corpus.txt"
normalize = "NFC"

[output]
format = "MsgPack"

[stat]
word_length = 4
freq_threshold = 3

[charset]
use_regex = true
regex = '\p{Han}'
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Input.Filename != "corpus.txt" {
		t.Errorf("Input.Filename = %q", cfg.Input.Filename)
	}
	if cfg.Input.Normalize != NormalizeNFC {
		t.Errorf("Input.Normalize = %q, want %q", cfg.Input.Normalize, NormalizeNFC)
	}
	if cfg.Output.Format != FormatMsgpack {
		t.Errorf("Output.Format = %q, want %q", cfg.Output.Format, FormatMsgpack)
	}
	// Keys missing from the file keep their defaults.
	if cfg.Output.Filename != "output.txt" {
		t.Errorf("Output.Filename = %q, want default", cfg.Output.Filename)
	}
	if cfg.Stat.WordLength != 4 || cfg.Stat.FreqThreshold != 3 {
		t.Errorf("Stat = %+v", cfg.Stat)
	}
	if !cfg.Charset.UseRegex || cfg.Charset.Regex != `\p{Han}` {
		t.Errorf("Charset = %+v", cfg.Charset)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"malformed", "[stat\nword_length = 2", "malformed"},
		{"word length zero", "[stat]\nword_length = 0", "word_length"},
		{"word length too big", "[stat]\nword_length = 256", "word_length"},
		{"negative threshold", "[stat]\nfreq_threshold = -1", "freq_threshold"},
		{"inverted range", "[charset]\nlower_limit = 10\nupper_limit = 5", "lower_limit"},
		{"empty regex", "[charset]\nuse_regex = true", "regex"},
		{"bad format", "[output]\nformat = \"csv\"", "output.format"},
		{"bad normalize", "[input]\nnormalize = \"nfd\"", "input.normalize"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("LoadConfig() succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestResolvePaths(t *testing.T) {
	cfg := DefaultConfig()
	abs := filepath.Join(t.TempDir(), "out.txt")
	cfg.Output.Filename = abs
	cfg.ResolvePaths("/srv/data")

	if cfg.Input.Filename != filepath.Join("/srv/data", "input.txt") {
		t.Errorf("Input.Filename = %q", cfg.Input.Filename)
	}
	if cfg.Output.Filename != abs {
		t.Errorf("absolute Output.Filename changed to %q", cfg.Output.Filename)
	}
}
