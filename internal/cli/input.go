// Package cli lets the user browse the words of a finished run by prefix.
package cli

import (
	"bufio"
	"io"
	"strings"
	"time"

	"github.com/bastiangx/wordfreq/pkg/freq"
	"github.com/bastiangx/wordfreq/pkg/output"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

var wordStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#286983", Dark: "#5fafff"})

// Explorer indexes result words in a Patricia trie for prefix lookups.
type Explorer struct {
	trie   *patricia.Trie
	words  int
	limit  int
	logger *log.Logger
}

// NewExplorer builds the trie from entries. limit caps the rows per query.
func NewExplorer(entries []freq.Entry, limit int, logger *log.Logger) *Explorer {
	if logger == nil {
		logger = log.Default()
	}
	if limit < 1 {
		limit = 20
	}
	trie := patricia.NewTrie()
	for _, e := range entries {
		trie.Insert(patricia.Prefix(e.Word), e.Count)
	}
	return &Explorer{trie: trie, words: len(entries), limit: limit, logger: logger}
}

// Search returns the most frequent words starting with prefix.
// An empty prefix matches every word.
func (e *Explorer) Search(prefix string) []freq.Entry {
	var found []freq.Entry
	visit := func(p patricia.Prefix, item patricia.Item) error {
		count, ok := item.(int)
		if !ok {
			e.logger.Errorf("Unknown item type: %T for word %s", item, p)
			return nil
		}
		found = append(found, freq.Entry{Word: string(p), Count: count})
		return nil
	}

	var err error
	if prefix == "" {
		err = e.trie.Visit(visit)
	} else {
		err = e.trie.VisitSubtree(patricia.Prefix(prefix), visit)
	}
	if err != nil {
		e.logger.Errorf("Error visiting trie subtree: %v", err)
	}

	output.Sort(found)
	if len(found) > e.limit {
		found = found[:e.limit]
	}
	return found
}

// Start reads prefixes from in, one per line, until EOF.
func (e *Explorer) Start(in io.Reader) error {
	e.logger.Printf("Exploring %d words. Type a prefix and press Enter, empty for the top list (Ctrl+D to quit):", e.words)
	reader := bufio.NewReader(in)
	for {
		prefix, err := reader.ReadString('\n')
		if len(prefix) > 0 || err == nil {
			e.handleInput(strings.TrimSpace(prefix))
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// handleInput runs one query and prints the hits.
func (e *Explorer) handleInput(prefix string) {
	start := time.Now()
	hits := e.Search(prefix)
	e.logger.Debugf("Took [ %v ] for prefix '%s'", time.Since(start), prefix)

	if len(hits) == 0 {
		e.logger.Warnf("No words found for prefix: '%s'", prefix)
		return
	}
	e.logger.Printf("Top %d words for prefix '%s':", len(hits), prefix)
	for i, h := range hits {
		e.logger.Printf("%2d. %s  (freq: %d)", i+1, wordStyle.Render(h.Word), h.Count)
	}
}
