package wordfreq

import (
	"github.com/bastiangx/wordfreq/pkg/charset"
	"github.com/bastiangx/wordfreq/pkg/freq"
)

// combinationScanner counts every run of length valid characters in a line.
// One scanner belongs to one worker.
type combinationScanner struct {
	length int
	valid  charset.Predicate
	win    *window
	tally  *freq.Tally
}

func newCombinationScanner(length int, valid charset.Predicate, tally *freq.Tally) *combinationScanner {
	return &combinationScanner{
		length: length,
		valid:  valid,
		win:    newWindow(length),
		tally:  tally,
	}
}

// scan slides the window one character at a time, so each overlapping
// combination inside a run is recorded exactly once. An invalid character
// empties the window.
func (s *combinationScanner) scan(line string) {
	s.win.clear()
	for tail, r := range line {
		if s.win.len() == s.length {
			head := s.win.popFront()
			s.tally.Add(line[head:tail])
		}
		if s.valid.Valid(r) {
			s.win.push(tail)
		} else {
			s.win.clear()
		}
	}
	if s.win.len() == s.length {
		s.tally.Add(line[s.win.at(0):])
	}
}
