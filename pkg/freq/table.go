/*
Package freq holds the substring frequency tables shared by both counting passes.

Workers never write to a common map. Each worker counts into its own Tally,
and the Aggregator sums every tally into a Table once the pass has finished.
A Table is read-only after Merge returns, so any number of goroutines may call
Get on it without locking.
*/
package freq

import (
	"sort"
	"strings"
	"sync"
)

// Entry is a single substring and its occurrence count.
type Entry struct {
	Word  string `msgpack:"w"`
	Count int    `msgpack:"c"`
}

// Tally is a per-worker counter. It is not safe for concurrent use.
type Tally struct {
	counts map[string]int
}

// NewTally creates an empty tally.
func NewTally() *Tally {
	return &Tally{counts: make(map[string]int, 1024)}
}

// Add increments the count of s by one.
// s is usually a slice of a corpus line, so it is cloned on first insert to
// avoid pinning the whole line in memory.
func (t *Tally) Add(s string) {
	if n, ok := t.counts[s]; ok {
		t.counts[s] = n + 1
		return
	}
	t.counts[strings.Clone(s)] = 1
}

// Len returns the number of distinct substrings counted so far.
func (t *Tally) Len() int {
	return len(t.counts)
}

// Aggregator hands out tallies to workers and merges them at the pass barrier.
type Aggregator struct {
	mu      sync.Mutex
	tallies []*Tally
}

// NewAggregator creates an aggregator with no tallies.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// NewTally registers and returns a fresh tally for one worker.
func (a *Aggregator) NewTally() *Tally {
	t := NewTally()
	a.mu.Lock()
	a.tallies = append(a.tallies, t)
	a.mu.Unlock()
	return t
}

// Merge sums every registered tally into a new Table.
// It must only be called after all workers writing to the tallies are done.
// The aggregator is emptied so its tallies can be collected.
func (a *Aggregator) Merge() *Table {
	a.mu.Lock()
	tallies := a.tallies
	a.tallies = nil
	a.mu.Unlock()

	if len(tallies) == 0 {
		return NewTable(nil)
	}

	// Start from the biggest tally so the fewest keys get reinserted.
	sort.Slice(tallies, func(i, j int) bool {
		return tallies[i].Len() > tallies[j].Len()
	})
	merged := tallies[0].counts
	for _, t := range tallies[1:] {
		for s, n := range t.counts {
			merged[s] += n
		}
		t.counts = nil
	}
	tallies[0].counts = nil
	return &Table{counts: merged}
}

// Table is a merged substring→count mapping.
type Table struct {
	counts map[string]int
}

// NewTable wraps counts in a Table. A nil map yields an empty table.
func NewTable(counts map[string]int) *Table {
	if counts == nil {
		counts = make(map[string]int)
	}
	return &Table{counts: counts}
}

// Get returns the count for s, or 0 when s is absent.
func (t *Table) Get(s string) int {
	return t.counts[s]
}

// Len returns the number of distinct entries.
func (t *Table) Len() int {
	return len(t.counts)
}

// Total returns the sum of all counts.
func (t *Table) Total() int {
	total := 0
	for _, n := range t.counts {
		total += n
	}
	return total
}

// Filter drops every entry whose count is below threshold and returns how
// many entries were removed. A threshold of 0 (or 1) removes nothing.
func (t *Table) Filter(threshold int) int {
	if threshold <= 1 {
		return 0
	}
	removed := 0
	for s, n := range t.counts {
		if n < threshold {
			delete(t.counts, s)
			removed++
		}
	}
	return removed
}

// Entries returns the table content in unspecified order.
func (t *Table) Entries() []Entry {
	entries := make([]Entry, 0, len(t.counts))
	for s, n := range t.counts {
		entries = append(entries, Entry{Word: s, Count: n})
	}
	return entries
}

// Map returns a copy of the underlying counts.
func (t *Table) Map() map[string]int {
	out := make(map[string]int, len(t.counts))
	for s, n := range t.counts {
		out[s] = n
	}
	return out
}
