// Package topics derives short topic phrases around matched search
// terms and a filtered term-frequency profile for a session.
package topics

import (
	"regexp"
	"sort"
	"strings"
)

// Topic length bounds: candidates at or outside these are discarded.
const (
	minTopicLen = 3
	maxTopicLen = 50
)

// selfReferences are the literal substrings that mark a message as
// talking about this tool itself. Such messages are excluded from
// topic extraction and timeline matching so the tool does not keep
// finding logs of conversations about itself; they still count toward
// frequency profiles. Deliberately not generalized beyond these two.
var selfReferences = []string{"session-finder", "session_finder"}

// IsSelfReferential reports whether text mentions this tool by name.
func IsSelfReferential(text string) bool {
	lower := strings.ToLower(text)
	for _, ref := range selfReferences {
		if strings.Contains(lower, ref) {
			return true
		}
	}
	return false
}

// CompileTerm builds the topic pattern for one search term: a
// case-insensitive whole-word match of the term that greedily consumes
// following word and space characters.
func CompileTerm(term string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(term) + `\b[\w\s]*`)
}

// Extractor extracts topic phrases for a fixed set of search terms.
type Extractor struct {
	terms    []string
	patterns []*regexp.Regexp
}

// NewExtractor compiles the per-term topic patterns once.
func NewExtractor(terms []string) *Extractor {
	e := &Extractor{terms: terms}
	for _, t := range terms {
		e.patterns = append(e.patterns, CompileTerm(t))
	}
	return e
}

// FromText returns the topic candidates found in one message's text.
// Self-referential messages yield nothing.
func (e *Extractor) FromText(text string) []string {
	if IsSelfReferential(text) {
		return nil
	}
	lower := strings.ToLower(text)
	var out []string
	for i, term := range e.terms {
		if !strings.Contains(lower, strings.ToLower(term)) {
			continue
		}
		for _, m := range e.patterns[i].FindAllString(text, -1) {
			topic := strings.TrimSpace(m)
			if len(topic) > minTopicLen && len(topic) < maxTopicLen {
				out = append(out, topic)
			}
		}
	}
	return out
}

// Dedupe sorts topics lexicographically and removes duplicates.
func Dedupe(topics []string) []string {
	sort.Strings(topics)
	var out []string
	for i, t := range topics {
		if i == 0 || t != topics[i-1] {
			out = append(out, t)
		}
	}
	return out
}
