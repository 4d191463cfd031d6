package charset

import (
	"github.com/bastiangx/wordfreq/pkg/config"
)

// FromConfig builds the predicate selected by cfg.
func FromConfig(cfg config.CharsetConfig) (Predicate, error) {
	if cfg.UseRegex {
		return NewPattern(cfg.Regex)
	}
	return NewRangeSet(rune(cfg.LowerLimit), rune(cfg.UpperLimit), cfg.ExtraChars)
}
