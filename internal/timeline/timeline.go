// Package timeline locates matching messages in a session and attaches
// bounded windows of neighboring messages as context.
package timeline

import (
	"strings"

	"github.com/amar/session-finder/internal/classify"
	"github.com/amar/session-finder/internal/parse"
	"github.com/amar/session-finder/internal/topics"
)

// summaryMaxLen is the truncation threshold for context summaries.
const summaryMaxLen = 100

// Entry is one matched message with its classification and the
// summarized neighbors on each side.
type Entry struct {
	MessageIndex  int
	Timestamp     string
	Role          string
	Content       classify.Classified
	ContextBefore []string
	ContextAfter  []string
}

// Extraction is the timeline for one session and query.
type Extraction struct {
	SessionID string
	QueryTerm string
	Entries   []Entry
}

// Build finds every message whose flattened text contains any search
// term (case-insensitive substring, self-referential lines excluded)
// and wraps it with up to contextSize summarized messages per side,
// clipped at the file boundaries.
func Build(messages []parse.Message, searchTerms []string, contextSize int) []Entry {
	var entries []Entry
	for _, idx := range matchIndices(messages, searchTerms) {
		msg := messages[idx]
		entries = append(entries, Entry{
			MessageIndex:  idx,
			Timestamp:     msg.When(),
			Role:          msg.Role,
			Content:       classify.Classify(msg),
			ContextBefore: contextWindow(messages, idx, contextSize, true),
			ContextAfter:  contextWindow(messages, idx, contextSize, false),
		})
	}
	return entries
}

func matchIndices(messages []parse.Message, searchTerms []string) []int {
	var indices []int
	for i, msg := range messages {
		if msg.Content == nil {
			continue
		}
		text := msg.Content.Flatten()
		if topics.IsSelfReferential(text) {
			continue
		}
		lower := strings.ToLower(text)
		for _, term := range searchTerms {
			if strings.Contains(lower, strings.ToLower(term)) {
				indices = append(indices, i)
				break
			}
		}
	}
	return indices
}

// contextWindow summarizes messages [i-size, i) or (i, i+size], in
// increasing index order, with no padding at file boundaries.
func contextWindow(messages []parse.Message, center, size int, before bool) []string {
	var out []string
	if before {
		start := center - size
		if start < 0 {
			start = 0
		}
		for i := start; i < center; i++ {
			out = append(out, SummarizeMessage(messages[i]))
		}
		return out
	}
	end := center + size + 1
	if end > len(messages) {
		end = len(messages)
	}
	for i := center + 1; i < end; i++ {
		out = append(out, SummarizeMessage(messages[i]))
	}
	return out
}

// SummarizeMessage renders a message as "<role>: <text>", truncating
// long text with a trailing ellipsis.
func SummarizeMessage(msg parse.Message) string {
	if msg.Role == "" || msg.Content == nil {
		return "Unknown message"
	}
	return msg.Role + ": " + truncate(msg.Content.Flatten(), summaryMaxLen)
}

// truncate cuts text to maxLen runes, replacing the tail with "..."
// when it does not fit.
func truncate(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen-3]) + "..."
}
