package wordfreq

import (
	"reflect"
	"strings"
	"testing"

	"github.com/bastiangx/wordfreq/pkg/charset"
	"github.com/bastiangx/wordfreq/pkg/freq"
)

// notSpace treats everything except ASCII punctuation and spaces as valid.
var notSpace = charset.Func(func(r rune) bool {
	return !strings.ContainsRune(" ,.\t", r)
})

func countLines(length int, valid charset.Predicate, lines ...string) map[string]int {
	agg := freq.NewAggregator()
	s := newCombinationScanner(length, valid, agg.NewTally())
	for _, line := range lines {
		s.scan(line)
	}
	return agg.Merge().Map()
}

func selectLines(length int, valid charset.Predicate, combos map[string]int, lines ...string) map[string]int {
	agg := freq.NewAggregator()
	s := newWordSelector(length, valid, freq.NewTable(combos), agg.NewTally())
	for _, line := range lines {
		s.scan(line)
	}
	return agg.Merge().Map()
}

func TestCombinationScanner(t *testing.T) {
	tests := []struct {
		name   string
		length int
		lines  []string
		want   map[string]int
	}{
		{
			name:   "clean run",
			length: 2,
			lines:  []string{"abcde"},
			want:   map[string]int{"ab": 1, "bc": 1, "cd": 1, "de": 1},
		},
		{
			name:   "aabaa",
			length: 2,
			lines:  []string{"aabaa"},
			want:   map[string]int{"aa": 2, "ab": 1, "ba": 1},
		},
		{
			name:   "broken runs",
			length: 2,
			lines:  []string{"ab cd,e"},
			want:   map[string]int{"ab": 1, "cd": 1},
		},
		{
			name:   "line shorter than length",
			length: 3,
			lines:  []string{"ab", "", "a b"},
			want:   map[string]int{},
		},
		{
			name:   "multibyte",
			length: 2,
			lines:  []string{"汉字词", "汉字"},
			want:   map[string]int{"汉字": 2, "字词": 1},
		},
		{
			name:   "overlapping repeats",
			length: 3,
			lines:  []string{"aaaa"},
			want:   map[string]int{"aaa": 2},
		},
		{
			name:   "single char",
			length: 1,
			lines:  []string{"a b"},
			want:   map[string]int{"a": 1, "b": 1},
		},
		{
			name:   "run ends at invalid tail",
			length: 2,
			lines:  []string{"ab."},
			want:   map[string]int{"ab": 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := countLines(tt.length, notSpace, tt.lines...)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("counts = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCombinationCountPerRun(t *testing.T) {
	run := "一二三四五六七八九十"
	n := len([]rune(run))
	for length := 1; length <= n+1; length++ {
		agg := freq.NewAggregator()
		newCombinationScanner(length, notSpace, agg.NewTally()).scan(run)
		total := agg.Merge().Total()
		want := n - length + 1
		if want < 0 {
			want = 0
		}
		if total != want {
			t.Errorf("length %d: %d combinations, want %d", length, total, want)
		}
	}
}

func TestWordSelector(t *testing.T) {
	tests := []struct {
		name   string
		length int
		combos map[string]int
		lines  []string
		want   map[string]int
	}{
		{
			name:   "aabaa",
			length: 2,
			combos: map[string]int{"aa": 2, "ab": 1, "ba": 1},
			lines:  []string{"aabaa"},
			want:   map[string]int{"aa": 2},
		},
		{
			name:   "tie goes left",
			length: 2,
			combos: map[string]int{"ab": 1, "bc": 1, "cd": 1},
			lines:  []string{"abcd"},
			want:   map[string]int{"ab": 1, "cd": 1},
		},
		{
			name:   "higher count wins over position",
			length: 2,
			combos: map[string]int{"ab": 1, "bc": 5, "cd": 1},
			lines:  []string{"abcd"},
			want:   map[string]int{"bc": 1, "cd": 1},
		},
		{
			name:   "nothing known",
			length: 2,
			combos: map[string]int{},
			lines:  []string{"abcd"},
			want:   map[string]int{},
		},
		{
			name:   "run break flushes",
			length: 2,
			combos: map[string]int{"ab": 2},
			lines:  []string{"ab,ab"},
			want:   map[string]int{"ab": 2},
		},
		{
			name:   "run shorter than length",
			length: 3,
			combos: map[string]int{"abc": 1},
			lines:  []string{"ab cab"},
			want:   map[string]int{},
		},
		{
			name:   "multibyte",
			length: 2,
			combos: map[string]int{"汉字": 2, "字汉": 1},
			lines:  []string{"汉字汉字"},
			want:   map[string]int{"汉字": 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := selectLines(tt.length, notSpace, tt.combos, tt.lines...)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("words = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWordSelectorDeterministic(t *testing.T) {
	combos := map[string]int{"ab": 3, "bc": 3, "ca": 3}
	first := selectLines(2, notSpace, combos, "abcabcabca")
	for i := 0; i < 20; i++ {
		if got := selectLines(2, notSpace, combos, "abcabcabca"); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d: words = %v, want %v", i, got, first)
		}
	}
}

func TestWordSelectorLengthOne(t *testing.T) {
	lines := []string{"hello world", "abc, cba", "zz"}
	combos := countLines(1, notSpace, lines...)
	delete(combos, "z")
	words := selectLines(1, notSpace, combos, lines...)
	if !reflect.DeepEqual(words, combos) {
		t.Errorf("words = %v, want %v", words, combos)
	}
}
