// Copyright 2025 The wordfreq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the wordfreq CLI.

wordfreq finds frequent fixed-length character combinations ("words") in an
unsegmented corpus such as Chinese text. It counts every combination of L
valid characters, then rescans the corpus and, for each stretch of text,
keeps the combination with the highest count as the word found there.

# Usage

Run with the config.toml next to the executable:

	wordfreq

Use a specific config, override the word length and show debug logs:

	wordfreq -config ./config.toml -L 3 -d

Browse the result by prefix after the run:

	wordfreq -c -limit 30

# Configuration

The config file is created with defaults if it doesn't exist. Relative
file names are resolved against the directory of the config file.

	[input]
	filename = "input.txt"
	normalize = ""

	[output]
	filename = "output.txt"
	format = "text"

	[stat]
	word_length = 2
	freq_threshold = 0
	workers = 0

	[charset]
	use_regex = false
	lower_limit = 19968
	upper_limit = 40959
	extra_chars = ""
	regex = ""

The output lists one "word<TAB>count" per line by descending count. Use
filename = "-" to print it to stdout, or format = "msgpack" for a binary array
of {w, c} maps.

# Exit codes

	0    success
	1    input or output failure
	2    invalid configuration
	130  interrupted
*/
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/bastiangx/wordfreq/internal/cli"
	"github.com/bastiangx/wordfreq/internal/logger"
	"github.com/bastiangx/wordfreq/internal/utils"
	"github.com/bastiangx/wordfreq/pkg/config"
	"github.com/bastiangx/wordfreq/pkg/freq"
	"github.com/bastiangx/wordfreq/pkg/wordfreq"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.1.0"
	AppName = "wordfreq"
	gh      = "https://github.com/bastiangx/wordfreq"
)

const (
	exitOK          = 0
	exitIO          = 1
	exitConfig      = 2
	exitInterrupted = 130
)

type options struct {
	configPath string
	input      string
	output     string
	wordLength int
	threshold  int
	workers    int
	explore    bool
	limit      int
	set        map[string]bool
}

// main only parses flags and manages the flow; run does the work.
func main() {
	defaultConfig := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Path to config.toml (default: next to the executable)")
	flag.StringVar(&opts.input, "in", "", "Corpus file, overrides input.filename")
	flag.StringVar(&opts.output, "out", "", "Result file or - for stdout, overrides output.filename")
	flag.IntVar(&opts.wordLength, "L", defaultConfig.Stat.WordLength, "Word length in characters (1-255), overrides stat.word_length")
	flag.IntVar(&opts.threshold, "threshold", defaultConfig.Stat.FreqThreshold, "Minimum count to keep, overrides stat.freq_threshold")
	flag.IntVar(&opts.workers, "workers", defaultConfig.Stat.Workers, "Worker goroutines (0 = one per CPU), overrides stat.workers")
	flag.BoolVar(&opts.explore, "c", false, "Browse the result by prefix after the run")
	flag.IntVar(&opts.limit, "limit", 20, "Rows per prefix query in browse mode")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(exitOK)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.InfoLevel)
	}

	opts.set = make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		opts.set[f.Name] = true
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, opts)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, opts options) int {
	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Errorf("Failed to initialize path resolver: %v", err)
		return exitIO
	}

	configPath := pathResolver.GetConfigPath(opts.configPath, config.FileName)
	log.Debugf("Using config file: (%s)", configPath)
	cfg, err := config.InitConfig(configPath)
	if err != nil {
		log.Errorf("Failed to load config: %v", err)
		return exitConfig
	}
	cfg.ResolvePaths(filepath.Dir(configPath))
	applyOverrides(cfg, opts)

	log.Debug("Run info:",
		"input", cfg.Input.Filename,
		"output", cfg.Output.Filename,
		"length", cfg.Stat.WordLength,
		"threshold", cfg.Stat.FreqThreshold,
		"workers", cfg.Stat.Workers)

	result, entries, err := wordfreq.RunConfig(ctx, cfg, logger.New(AppName))
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled):
			log.Warn("Interrupted, no result written")
			return exitInterrupted
		case wordfreq.IsKind(err, wordfreq.KindConfig):
			log.Errorf("Configuration error: %v", err)
			return exitConfig
		default:
			log.Errorf("Run failed: %v", err)
			return exitIO
		}
	}

	showSummary(cfg, result, entries)

	if opts.explore {
		explorer := cli.NewExplorer(entries, opts.limit, nil)
		if err := explorer.Start(os.Stdin); err != nil {
			log.Errorf("CLI error: %v", err)
			return exitIO
		}
	}
	return exitOK
}

// applyOverrides copies explicitly set flags onto cfg. Paths given on the
// command line are relative to the working directory.
func applyOverrides(cfg *config.Config, opts options) {
	if opts.set["in"] {
		cfg.Input.Filename = utils.GetAbsolutePath(opts.input)
	}
	if opts.set["out"] {
		cfg.Output.Filename = opts.output
		if opts.output != "-" {
			cfg.Output.Filename = utils.GetAbsolutePath(opts.output)
		}
	}
	if opts.set["L"] {
		cfg.Stat.WordLength = opts.wordLength
	}
	if opts.set["threshold"] {
		cfg.Stat.FreqThreshold = opts.threshold
	}
	if opts.set["workers"] {
		cfg.Stat.Workers = opts.workers
	}
}

// showSummary reports what the run found.
func showSummary(cfg *config.Config, result *wordfreq.Result, entries []freq.Entry) {
	log.Info("Done",
		"lines", result.Pass1.Lines,
		"skipped", result.Pass1.Skipped,
		"combinations", result.Combinations.Len(),
		"words", len(entries),
		"elapsed", result.Elapsed.Round(time.Millisecond))
	if cfg.Output.Filename != "-" {
		log.Infof("Result written to ( %s )", cfg.Output.Filename)
	}
	if len(entries) > 0 {
		log.Debug("Top word", "word", entries[0].Word, "count", entries[0].Count)
	}
}

func printVersion() {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	l.SetStyles(styles)

	l.Print("")
	l.Print("[ wordfreq ] Finds frequent character combinations in raw text")
	l.Print("", "version", Version)
	l.Print("")
	l.Print("use -h or --help to see available options")
	l.Print("Github Repo", "gh", gh)
}
