// Package charset decides which characters take part in combinations.
// Any character rejected by the predicate breaks the current run.
package charset

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/charmbracelet/log"
)

// Predicate reports whether a character is counted.
// Implementations hold no mutable state and are safe for concurrent use.
type Predicate interface {
	Valid(r rune) bool
}

// Func adapts a plain function to Predicate.
type Func func(r rune) bool

// Valid calls f(r).
func (f Func) Valid(r rune) bool {
	return f(r)
}

// RangeSet accepts characters whose code point lies in [Lower, Upper]
// plus a set of extra characters outside that range.
type RangeSet struct {
	Lower  rune
	Upper  rune
	extras map[rune]struct{}
}

// NewRangeSet builds a RangeSet. Characters of extras that already fall
// inside the range are ignored.
func NewRangeSet(lower, upper rune, extras string) (*RangeSet, error) {
	if lower > upper {
		return nil, fmt.Errorf("lower limit %d is above upper limit %d", lower, upper)
	}
	rs := &RangeSet{Lower: lower, Upper: upper}
	for _, r := range extras {
		if r >= lower && r <= upper {
			continue
		}
		if rs.extras == nil {
			rs.extras = make(map[rune]struct{})
		}
		rs.extras[r] = struct{}{}
	}
	log.Debugf("Charset range [U+%04X, U+%04X] with %d extra chars", lower, upper, len(rs.extras))
	return rs, nil
}

// Valid implements Predicate.
func (rs *RangeSet) Valid(r rune) bool {
	if r >= rs.Lower && r <= rs.Upper {
		return true
	}
	if rs.extras == nil {
		return false
	}
	_, ok := rs.extras[r]
	return ok
}

// Extras returns the number of extra characters outside the range.
func (rs *RangeSet) Extras() int {
	return len(rs.extras)
}

// Pattern accepts characters matched by a regular expression.
// The expression is matched unanchored against the one-character string.
type Pattern struct {
	re    *regexp.Regexp
	ascii [utf8.RuneSelf]bool
}

// NewPattern compiles expr. ASCII results are precomputed.
func NewPattern(expr string) (*Pattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid character pattern %q: %w", expr, err)
	}
	p := &Pattern{re: re}
	for r := rune(0); r < utf8.RuneSelf; r++ {
		p.ascii[r] = re.MatchString(string(r))
	}
	return p, nil
}

// Valid implements Predicate.
func (p *Pattern) Valid(r rune) bool {
	if r >= 0 && r < utf8.RuneSelf {
		return p.ascii[r]
	}
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	return p.re.Match(buf[:n])
}

// String returns the source expression.
func (p *Pattern) String() string {
	return p.re.String()
}
