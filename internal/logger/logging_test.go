package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewWithWriterPrefix(t *testing.T) {
	prev := log.GetLevel()
	defer log.SetLevel(prev)
	log.SetLevel(log.InfoLevel)

	var buf bytes.Buffer
	l := NewWithWriter(&buf, "pass1")
	l.Info("counting")
	l.Debug("hidden")

	out := buf.String()
	if !strings.Contains(out, "pass1") || !strings.Contains(out, "counting") {
		t.Errorf("output %q lacks prefix or message", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message leaked at info level: %q", out)
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("nothing")
}
