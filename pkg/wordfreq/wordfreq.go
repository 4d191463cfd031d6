/*
Package wordfreq finds frequent fixed-length character combinations in an
unsegmented corpus.

It works in two passes over the corpus:

 1. Every run of L consecutive valid characters is counted. Entries below the
    frequency threshold are then dropped.
 2. Each run is rescanned with a window of 2L-1 characters. Within it the
    combination with the highest count from pass 1 wins (leftmost on ties)
    and is counted as a word. The word table is filtered the same way.

Both passes spread lines over a worker pool. Workers count into private
tallies that are summed once the pass has finished, so the result does not
depend on scheduling or on the number of workers.

	counter, err := wordfreq.New(wordfreq.Options{
		WordLength: 2,
		Valid:      charset.Func(unicode.IsLetter),
	})
	result, err := counter.Run(ctx, corpus.FromString("demo", "aabaa"))
*/
package wordfreq

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/bastiangx/wordfreq/internal/logger"
	"github.com/bastiangx/wordfreq/pkg/charset"
	"github.com/bastiangx/wordfreq/pkg/config"
	"github.com/bastiangx/wordfreq/pkg/corpus"
	"github.com/bastiangx/wordfreq/pkg/freq"
	"github.com/bastiangx/wordfreq/pkg/output"
	"github.com/charmbracelet/log"
)

// Options configures a Counter.
type Options struct {
	WordLength    int
	FreqThreshold int
	// Workers is the worker pool size; 0 means one per CPU.
	Workers   int
	Normalize string
	Valid     charset.Predicate
	Logger    *log.Logger
}

// Counter runs the two counting passes.
type Counter struct {
	opts Options
	log  *log.Logger
}

// Result holds the filtered tables of a run.
type Result struct {
	Combinations *freq.Table
	Words        *freq.Table
	Pass1        corpus.Stats
	Pass2        corpus.Stats
	Elapsed      time.Duration
}

// New validates opts and returns a Counter.
func New(opts Options) (*Counter, error) {
	if opts.WordLength < config.MinWordLength || opts.WordLength > config.MaxWordLength {
		return nil, configError("new counter", fmt.Errorf("word length must be in [%d, %d], got %d",
			config.MinWordLength, config.MaxWordLength, opts.WordLength))
	}
	if opts.FreqThreshold < 0 {
		return nil, configError("new counter", fmt.Errorf("frequency threshold must not be negative, got %d", opts.FreqThreshold))
	}
	if opts.Workers < 0 {
		return nil, configError("new counter", fmt.Errorf("worker count must not be negative, got %d", opts.Workers))
	}
	if opts.Valid == nil {
		return nil, configError("new counter", errors.New("no character predicate"))
	}
	l := opts.Logger
	if l == nil {
		l = logger.New("wordfreq")
	}
	return &Counter{opts: opts, log: l}, nil
}

func (c *Counter) corpusOptions() corpus.Options {
	return corpus.Options{
		Workers:   c.opts.Workers,
		Normalize: c.opts.Normalize,
		Logger:    c.log,
	}
}

// CountCombinations runs pass 1 over src and returns the filtered
// combination table.
func (c *Counter) CountCombinations(ctx context.Context, src corpus.Source) (*freq.Table, corpus.Stats, error) {
	agg := freq.NewAggregator()
	stats, err := corpus.Process(ctx, src, c.corpusOptions(), func() corpus.Handler {
		return newCombinationScanner(c.opts.WordLength, c.opts.Valid, agg.NewTally()).scan
	})
	if err != nil {
		return nil, stats, passError("count combinations", err)
	}
	combos := agg.Merge()
	found := combos.Len()
	removed := combos.Filter(c.opts.FreqThreshold)
	c.log.Debug("Combinations filtered", "found", found, "removed", removed, "threshold", c.opts.FreqThreshold)
	return combos, stats, nil
}

// SelectWords runs pass 2 over src against the combination table from
// pass 1 and returns the filtered word table. combos is only read.
func (c *Counter) SelectWords(ctx context.Context, src corpus.Source, combos *freq.Table) (*freq.Table, corpus.Stats, error) {
	agg := freq.NewAggregator()
	stats, err := corpus.Process(ctx, src, c.corpusOptions(), func() corpus.Handler {
		return newWordSelector(c.opts.WordLength, c.opts.Valid, combos, agg.NewTally()).scan
	})
	if err != nil {
		return nil, stats, passError("select words", err)
	}
	words := agg.Merge()
	found := words.Len()
	removed := words.Filter(c.opts.FreqThreshold)
	c.log.Debug("Words filtered", "found", found, "removed", removed, "threshold", c.opts.FreqThreshold)
	return words, stats, nil
}

// Run executes both passes. Each pass completes before the next starts.
func (c *Counter) Run(ctx context.Context, src corpus.Source) (*Result, error) {
	start := time.Now()

	c.log.Info("Pass 1: counting combinations...", "source", src.Name(), "length", c.opts.WordLength)
	combos, stats1, err := c.CountCombinations(ctx, src)
	if err != nil {
		return nil, err
	}
	c.log.Infof("Pass 1 done: %d candidate combinations after filtering", combos.Len())

	c.log.Info("Pass 2: selecting words...")
	words, stats2, err := c.SelectWords(ctx, src, combos)
	if err != nil {
		return nil, err
	}
	c.log.Infof("Pass 2 done: %d words after filtering", words.Len())

	return &Result{
		Combinations: combos,
		Words:        words,
		Pass1:        stats1,
		Pass2:        stats2,
		Elapsed:      time.Since(start),
	}, nil
}

// Write assembles the word table and hands it to sink in the given format.
func Write(words *freq.Table, format string, sink output.Sink) ([]freq.Entry, error) {
	entries := output.Assemble(words)
	data, err := output.Encode(entries, format)
	if err != nil {
		return nil, configError("encode result", err)
	}
	if err := sink.Save(data); err != nil {
		return nil, ioError("write result", err)
	}
	return entries, nil
}

// RunConfig performs a full run described by cfg: build the predicate,
// count both passes over the input file and write the sorted result.
// Input and output paths are used as given.
func RunConfig(ctx context.Context, cfg *config.Config, l *log.Logger) (*Result, []freq.Entry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, configError("validate config", err)
	}
	valid, err := charset.FromConfig(cfg.Charset)
	if err != nil {
		return nil, nil, configError("build charset", err)
	}
	counter, err := New(Options{
		WordLength:    cfg.Stat.WordLength,
		FreqThreshold: cfg.Stat.FreqThreshold,
		Workers:       cfg.Stat.Workers,
		Normalize:     cfg.Input.Normalize,
		Valid:         valid,
		Logger:        l,
	})
	if err != nil {
		return nil, nil, err
	}

	result, err := counter.Run(ctx, corpus.FileSource{Path: cfg.Input.Filename})
	if err != nil {
		return nil, nil, err
	}

	var sink output.Sink = output.FileSink{Path: cfg.Output.Filename}
	if cfg.Output.Filename == "-" {
		sink = output.WriterSink{W: os.Stdout}
	}
	entries, err := Write(result.Words, cfg.Output.Format, sink)
	if err != nil {
		return nil, nil, err
	}
	return result, entries, nil
}

// passError tags a failed pass. Cancellation is passed through untouched.
func passError(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return ioError(op, err)
}
