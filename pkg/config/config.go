/*
Package config manages the TOML config for wordfreq runs.
*/
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bastiangx/wordfreq/internal/utils"
	"github.com/charmbracelet/log"
)

// FileName is the config file looked up next to the executable.
const FileName = "config.toml"

// Word length bounds.
const (
	MinWordLength = 1
	MaxWordLength = 255
)

// Output formats.
const (
	FormatText    = "text"
	FormatMsgpack = "msgpack"
)

// Input normalization forms.
const (
	NormalizeNone = ""
	NormalizeNFC  = "nfc"
	NormalizeNFKC = "nfkc"
)

// Config holds the entire config structure
type Config struct {
	Input   InputConfig   `toml:"input"`
	Output  OutputConfig  `toml:"output"`
	Stat    StatConfig    `toml:"stat"`
	Charset CharsetConfig `toml:"charset"`
}

// InputConfig locates the corpus.
type InputConfig struct {
	Filename  string `toml:"filename"`
	Normalize string `toml:"normalize"`
}

// OutputConfig locates the result file.
type OutputConfig struct {
	Filename string `toml:"filename"`
	Format   string `toml:"format"`
}

// StatConfig holds the counting options.
type StatConfig struct {
	WordLength    int `toml:"word_length"`
	FreqThreshold int `toml:"freq_threshold"`
	Workers       int `toml:"workers"`
}

// CharsetConfig selects which characters are counted.
// With UseRegex unset, characters in [LowerLimit, UpperLimit] plus ExtraChars
// are valid; otherwise characters matching Regex are.
type CharsetConfig struct {
	UseRegex   bool   `toml:"use_regex"`
	LowerLimit int    `toml:"lower_limit"`
	UpperLimit int    `toml:"upper_limit"`
	ExtraChars string `toml:"extra_chars"`
	Regex      string `toml:"regex"`
}

// DefaultConfig returns a Config with default values.
// The default charset is the CJK Unified Ideographs block.
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			Filename:  "input.txt",
			Normalize: NormalizeNone,
		},
		Output: OutputConfig{
			Filename: "output.txt",
			Format:   FormatText,
		},
		Stat: StatConfig{
			WordLength:    2,
			FreqThreshold: 0,
			Workers:       0,
		},
		Charset: CharsetConfig{
			UseRegex:   false,
			LowerLimit: 0x4E00,
			UpperLimit: 0x9FFF,
			ExtraChars: "",
			Regex:      "",
		},
	}
}

// InitConfig loads config from file or creates a default one if missing.
func InitConfig(configPath string) (*Config, error) {
	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := utils.EnsureDir(filepath.Dir(configPath)); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return config, nil
		}
		log.Infof("Created default config file at: %s", configPath)
		return config, nil
	}
	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file on top of the defaults and validates it.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	undecoded, err := utils.LoadTOMLFile(configPath, config)
	if err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w", configPath, err)
	}
	for _, key := range undecoded {
		log.Warnf("Unknown config key %q in %s, ignored", key, configPath)
	}
	config.Input.Normalize = strings.ToLower(strings.TrimSpace(config.Input.Normalize))
	config.Output.Format = strings.ToLower(strings.TrimSpace(config.Output.Format))
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}
	return config, nil
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// Validate checks value ranges. The character pattern itself is compiled
// later by the charset package.
func (c *Config) Validate() error {
	var errs []error
	if c.Input.Filename == "" {
		errs = append(errs, errors.New("input.filename is empty"))
	}
	switch c.Input.Normalize {
	case NormalizeNone, NormalizeNFC, NormalizeNFKC:
	default:
		errs = append(errs, fmt.Errorf("input.normalize must be one of \"\", %q, %q, got %q",
			NormalizeNFC, NormalizeNFKC, c.Input.Normalize))
	}
	if c.Output.Filename == "" {
		errs = append(errs, errors.New("output.filename is empty"))
	}
	switch c.Output.Format {
	case FormatText, FormatMsgpack:
	default:
		errs = append(errs, fmt.Errorf("output.format must be %q or %q, got %q",
			FormatText, FormatMsgpack, c.Output.Format))
	}
	if c.Stat.WordLength < MinWordLength || c.Stat.WordLength > MaxWordLength {
		errs = append(errs, fmt.Errorf("stat.word_length must be in [%d, %d], got %d",
			MinWordLength, MaxWordLength, c.Stat.WordLength))
	}
	if c.Stat.FreqThreshold < 0 {
		errs = append(errs, fmt.Errorf("stat.freq_threshold must not be negative, got %d", c.Stat.FreqThreshold))
	}
	if c.Stat.Workers < 0 {
		errs = append(errs, fmt.Errorf("stat.workers must not be negative, got %d", c.Stat.Workers))
	}
	if c.Charset.UseRegex {
		if c.Charset.Regex == "" {
			errs = append(errs, errors.New("charset.regex is empty while use_regex is set"))
		}
	} else {
		if c.Charset.LowerLimit < 0 || c.Charset.UpperLimit < 0 {
			errs = append(errs, errors.New("charset limits must not be negative"))
		}
		if c.Charset.LowerLimit > c.Charset.UpperLimit {
			errs = append(errs, fmt.Errorf("charset.lower_limit %d is above upper_limit %d",
				c.Charset.LowerLimit, c.Charset.UpperLimit))
		}
	}
	return errors.Join(errs...)
}

// ResolvePaths makes relative input and output paths relative to baseDir.
func (c *Config) ResolvePaths(baseDir string) {
	c.Input.Filename = utils.ResolveAgainst(baseDir, c.Input.Filename)
	c.Output.Filename = utils.ResolveAgainst(baseDir, c.Output.Filename)
}
