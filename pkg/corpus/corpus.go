/*
Package corpus feeds corpus lines to a pool of workers.

Lines are independent units of work and reach workers in no particular order.
Each worker gets its own Handler from the factory passed to Process, so state
kept inside a handler (windows, tallies) is never shared between goroutines.

	stats, err := corpus.Process(ctx, corpus.FileSource{Path: "input.txt"}, corpus.Options{
		Workers: 8,
	}, func() corpus.Handler {
		tally := agg.NewTally()
		return func(line string) { ... }
	})

A line that is not valid UTF-8 is logged, counted in Stats.Skipped and dropped;
the pass keeps going. Failing to open or read the source aborts the pass.
*/
package corpus

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"
)

// ErrInvalidUTF8 marks a line that could not be decoded.
var ErrInvalidUTF8 = errors.New("invalid UTF-8")

// Normalization forms accepted by Options.Normalize.
const (
	NormalizeNFC  = "nfc"
	NormalizeNFKC = "nfkc"
)

// Source is a re-openable corpus. Every pass opens it once.
type Source interface {
	Open() (io.ReadCloser, error)
	Name() string
}

// FileSource reads the corpus from a file.
type FileSource struct {
	Path string
}

// Open implements Source.
func (f FileSource) Open() (io.ReadCloser, error) {
	return os.Open(f.Path)
}

// Name implements Source.
func (f FileSource) Name() string {
	return f.Path
}

type stringSource struct {
	name string
	text string
}

// FromString returns a Source over an in-memory corpus.
func FromString(name, text string) Source {
	return stringSource{name: name, text: text}
}

func (s stringSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(s.text)), nil
}

func (s stringSource) Name() string {
	return s.name
}

// Handler processes one line. A Handler is only ever called from one goroutine.
type Handler func(line string)

// Options tunes Process.
type Options struct {
	// Workers is the number of consumer goroutines; 0 means runtime.NumCPU().
	Workers int
	// Normalize is "", "nfc" or "nfkc".
	Normalize string
	// Logger receives per-line warnings. Defaults to the global charm logger.
	Logger *log.Logger
}

// Stats summarizes one pass over a source.
type Stats struct {
	Lines   int
	Skipped int
}

// LineError describes a line that was dropped.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Process reads src line by line and hands every decodable line to one of
// the workers. It returns once all lines have been handled, which makes it
// the barrier between passes.
func Process(ctx context.Context, src Source, opts Options, newHandler func() Handler) (Stats, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	normalize, err := normalizer(opts.Normalize)
	if err != nil {
		return Stats{}, err
	}

	rc, err := src.Open()
	if err != nil {
		return Stats{}, fmt.Errorf("failed to open corpus %s: %w", src.Name(), err)
	}
	defer rc.Close()

	var stats Stats
	lines := make(chan string, workers*64)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(lines)
		reader := bufio.NewReaderSize(rc, 64*1024)
		lineNo := 0
		for {
			if err := ctx.Err(); err != nil {
				return err
			}
			line, readErr := reader.ReadString('\n')
			if len(line) > 0 {
				lineNo++
				line = trimEOL(line)
				if !utf8.ValidString(line) {
					stats.Skipped++
					logger.Warn("Skipping line", "source", src.Name(), "err", &LineError{Line: lineNo, Err: ErrInvalidUTF8})
				} else {
					stats.Lines++
					select {
					case lines <- line:
					case <-ctx.Done():
						return ctx.Err()
					}
				}
			}
			if readErr == io.EOF {
				return nil
			}
			if readErr != nil {
				return fmt.Errorf("failed to read corpus %s at line %d: %w", src.Name(), lineNo+1, readErr)
			}
		}
	})

	for i := 0; i < workers; i++ {
		g.Go(func() error {
			handle := newHandler()
			for line := range lines {
				if normalize != nil {
					line = normalize(line)
				}
				handle(line)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return stats, err
	}
	logger.Debug("Pass over corpus done", "source", src.Name(), "lines", stats.Lines, "skipped", stats.Skipped, "workers", workers)
	return stats, nil
}

func trimEOL(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}

func normalizer(form string) (func(string) string, error) {
	switch strings.ToLower(form) {
	case "":
		return nil, nil
	case NormalizeNFC:
		return norm.NFC.String, nil
	case NormalizeNFKC:
		return norm.NFKC.String, nil
	default:
		return nil, fmt.Errorf("unknown normalization form %q", form)
	}
}
