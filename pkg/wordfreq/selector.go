package wordfreq

import (
	"github.com/bastiangx/wordfreq/pkg/charset"
	"github.com/bastiangx/wordfreq/pkg/freq"
)

// wordSelector picks, for each stretch of a run, the combination with the
// highest corpus-wide count and records it as a word.
//
// The window holds up to 2L-1 offsets: enough for L candidate heads, each
// with its full L characters in view. Evaluation happens when the window is
// full, or when the run ends while it holds at least L offsets. Every head
// that was a candidate is then dropped, so each offset is a candidate head
// exactly once and the trailing L-1 offsets carry over.
type wordSelector struct {
	length int
	valid  charset.Predicate
	combos *freq.Table
	win    *window
	tally  *freq.Tally
}

func newWordSelector(length int, valid charset.Predicate, combos *freq.Table, tally *freq.Tally) *wordSelector {
	return &wordSelector{
		length: length,
		valid:  valid,
		combos: combos,
		win:    newWindow(2*length - 1),
		tally:  tally,
	}
}

func (s *wordSelector) scan(line string) {
	s.win.clear()
	for tail, r := range line {
		if s.win.full() {
			s.evaluate(line, tail)
		}
		if s.valid.Valid(r) {
			s.win.push(tail)
			continue
		}
		if s.win.len() >= s.length {
			s.evaluate(line, tail)
		}
		s.win.clear()
	}
	if s.win.len() >= s.length {
		s.evaluate(line, len(line))
	}
}

// evaluate compares the candidates in the window and records the winner.
// tail is the byte offset just past the newest offset's character.
// Ties keep the leftmost candidate; a winner with count 0 is not recorded.
func (s *wordSelector) evaluate(line string, tail int) {
	heads := s.win.len() - s.length + 1
	best, bestCount := -1, 0
	for i := 0; i < heads; i++ {
		if n := s.combos.Get(s.candidate(line, i, tail)); n > bestCount {
			best, bestCount = i, n
		}
	}
	if best >= 0 {
		s.tally.Add(s.candidate(line, best, tail))
	}
	s.win.drop(heads)
}

// candidate returns the combination starting at the i-th offset.
func (s *wordSelector) candidate(line string, i, tail int) string {
	end := tail
	if j := i + s.length; j < s.win.len() {
		end = s.win.at(j)
	}
	return line[s.win.at(i):end]
}
