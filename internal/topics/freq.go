package topics

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// profileSize is how many ranked terms a frequency profile keeps.
const profileSize = 50

// minTokenLen: tokens this short carry no topical signal.
const minTokenLen = 3

// FreqCounter accumulates a session's term-frequency profile.
type FreqCounter struct {
	counts map[string]int
	extra  map[string]bool // extra stopwords beyond the built-in set
}

// NewFreqCounter returns a counter; extraStopwords extends the
// built-in noise list (already-lowercased words expected).
func NewFreqCounter(extraStopwords []string) *FreqCounter {
	extra := make(map[string]bool, len(extraStopwords))
	for _, w := range extraStopwords {
		extra[w] = true
	}
	return &FreqCounter{counts: make(map[string]int), extra: extra}
}

// Add tokenizes text on whitespace and counts the meaningful tokens:
// lowercased, stripped of leading/trailing non-alphanumerics, longer
// than two characters, and not in the stopword set.
func (f *FreqCounter) Add(text string) {
	for _, word := range strings.Fields(text) {
		clean := strings.TrimFunc(strings.ToLower(word), func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if len(clean) < minTokenLen || stopwords[clean] || f.extra[clean] {
			continue
		}
		f.counts[clean]++
	}
}

// Profile returns the top terms rendered as "word(count)", descending
// by count. Equal counts order lexicographically so the profile is
// reproducible.
func (f *FreqCounter) Profile() []string {
	type entry struct {
		word  string
		count int
	}
	entries := make([]entry, 0, len(f.counts))
	for w, c := range f.counts {
		entries = append(entries, entry{w, c})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].word < entries[j].word
	})
	if len(entries) > profileSize {
		entries = entries[:profileSize]
	}
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = fmt.Sprintf("%s(%d)", e.word, e.count)
	}
	return out
}
