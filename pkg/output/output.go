// Package output sorts the word table and delivers it to a sink.
package output

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/bastiangx/wordfreq/pkg/freq"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Formats understood by Encode.
const (
	FormatText    = "text"
	FormatMsgpack = "msgpack"
)

// Assemble returns the table entries by descending count; equal counts are
// ordered by word so output is reproducible.
func Assemble(t *freq.Table) []freq.Entry {
	entries := t.Entries()
	Sort(entries)
	return entries
}

// Sort orders entries by descending count, then ascending word.
func Sort(entries []freq.Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Word < entries[j].Word
	})
}

// Encode renders entries in the given format.
// text is one "word<TAB>count" per entry, joined by newlines.
// msgpack is an array of {"w": word, "c": count} maps.
func Encode(entries []freq.Entry, format string) ([]byte, error) {
	switch format {
	case FormatText, "":
		return encodeText(entries), nil
	case FormatMsgpack:
		data, err := msgpack.Marshal(entries)
		if err != nil {
			return nil, fmt.Errorf("failed to encode msgpack: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

func encodeText(entries []freq.Entry) []byte {
	var sb strings.Builder
	for i, e := range entries {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(e.Word)
		sb.WriteByte('\t')
		sb.WriteString(strconv.Itoa(e.Count))
	}
	return []byte(sb.String())
}

// Sink receives the encoded result.
type Sink interface {
	Save(data []byte) error
}

// FileSink writes the result to Path, replacing any existing file.
type FileSink struct {
	Path string
}

// Save implements Sink.
func (f FileSink) Save(data []byte) error {
	if info, err := os.Stat(f.Path); err == nil {
		if info.IsDir() {
			return fmt.Errorf("output path %s is a directory", f.Path)
		}
		log.Warnf("Output file %s already exists, overwriting", f.Path)
	}
	file, err := os.Create(f.Path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}

// WriterSink writes the result to W, e.g. os.Stdout.
type WriterSink struct {
	W io.Writer
}

// Save implements Sink.
func (w WriterSink) Save(data []byte) error {
	if _, err := w.W.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
