package classify

import (
	"regexp"
	"strings"
)

// toolActions maps tool names to a coarse action type.
var toolActions = map[string]string{
	"Read":      "read",
	"Glob":      "read",
	"Grep":      "read",
	"Edit":      "write",
	"Write":     "write",
	"MultiEdit": "write",
	"Bash":      "execute",
	"LS":        "list",
}

// ToolAction returns the coarse action type for a tool name.
func ToolAction(name string) string {
	if a, ok := toolActions[name]; ok {
		return a
	}
	return "other"
}

// fenceRe matches the first fenced code block: triple backticks with an
// optional language tag on the opening fence and a matching closing
// fence. Only the first pair is considered.
var fenceRe = regexp.MustCompile("(?s)```(\\w+)?\n(.*?)\n```")

// ExtractCodeInfo inspects text for a fenced code block and reports its
// language, line count, and a language-specific completeness verdict.
func ExtractCodeInfo(text string) (CodeInfo, bool) {
	m := fenceRe.FindStringSubmatch(text)
	if m == nil {
		return CodeInfo{}, false
	}
	lang := m[1]
	code := m[2]
	return CodeInfo{
		Language:   lang,
		IsComplete: isCompleteCode(code, lang),
		LineCount:  lineCount(code),
	}, true
}

// lineCount counts lines the way a line iterator would: a trailing
// newline does not start another line, and an empty body has none.
func lineCount(code string) int {
	if code == "" {
		return 0
	}
	n := strings.Count(code, "\n")
	if !strings.HasSuffix(code, "\n") {
		n++
	}
	return n
}

func isCompleteCode(code, lang string) bool {
	switch lang {
	case "rust":
		return strings.Contains(code, "fn ") &&
			strings.Contains(code, "{") && strings.Contains(code, "}")
	case "javascript", "typescript":
		return strings.Contains(code, "function ") ||
			strings.Contains(code, "=>") || strings.Contains(code, "{")
	case "python":
		return strings.Contains(code, "def ") || strings.Contains(code, "class ")
	default:
		return lineCount(code) > 3
	}
}

// errorPattern is one row of the ordered error-detection table. The
// first row whose substrings match wins.
type errorPattern struct {
	substrings []string
	errorType  string
	severity   string
	source     string
}

var errorPatterns = []errorPattern{
	{[]string{"error[E", "cannot find"}, "compilation", "error", "rustc"},
	{[]string{"warning:"}, "compilation", "warning", "rustc"},
	{[]string{"Permission denied", "No such file"}, "tool_error", "error", "system"},
	{[]string{"panicked at", "thread 'main' panicked"}, "runtime", "error", "rust"},
}

// DetectError matches text against the error-pattern table.
func DetectError(text string) (ErrorInfo, bool) {
	for _, p := range errorPatterns {
		for _, sub := range p.substrings {
			if strings.Contains(text, sub) {
				return ErrorInfo{
					ErrorType: p.errorType,
					Severity:  p.severity,
					Source:    p.source,
				}, true
			}
		}
	}
	return ErrorInfo{}, false
}

// successIndicators are positive-outcome words checked case-insensitively.
var successIndicators = []string{
	"works", "perfect", "great", "excellent", "success", "completed",
	"fixed", "solved", "done", "good", "that's it",
}

// IsSuccess reports whether text reads as a positive outcome.
func IsSuccess(text string) bool {
	lower := strings.ToLower(text)
	for _, ind := range successIndicators {
		if strings.Contains(lower, ind) {
			return true
		}
	}
	return false
}
