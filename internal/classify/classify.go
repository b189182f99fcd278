// Package classify assigns each message's content to exactly one
// semantic category. The category tests run in a fixed priority order:
// structurally unambiguous shapes (tool calls, fenced code) are
// detected before the fuzzy lexical heuristics (errors, success
// phrases), which would otherwise misfire on code or tool payloads.
package classify

import (
	"github.com/amar/session-finder/internal/parse"
)

// Kind tags the semantic category of a message's content.
type Kind int

const (
	// KindPlainText marks messages with no content at all.
	KindPlainText Kind = iota
	KindToolCall
	KindCodeBlock
	KindError
	KindSuccess
	KindDiscussion
)

func (k Kind) String() string {
	switch k {
	case KindToolCall:
		return "tool_call"
	case KindCodeBlock:
		return "code_block"
	case KindError:
		return "error"
	case KindSuccess:
		return "success"
	case KindDiscussion:
		return "discussion"
	default:
		return "plain_text"
	}
}

// ToolInfo describes a tool-call message.
type ToolInfo struct {
	ToolName    string
	ActionType  string // "read", "write", "execute", "list", "other"
	TargetFiles []string
}

// CodeInfo describes the first fenced code block of a message.
type CodeInfo struct {
	Language   string // "" when the fence carries no language tag
	IsComplete bool
	LineCount  int
}

// ErrorInfo describes a recognized error message.
type ErrorInfo struct {
	ErrorType string // "compilation", "tool_error", "runtime"
	Severity  string // "error" or "warning"
	Source    string // "rustc", "system", "rust"
}

// Classified is the flattened text of a message plus its category tag.
// Exactly one of Tool, Code, Err is set, matching Kind.
type Classified struct {
	Text string
	Kind Kind
	Tool *ToolInfo
	Code *CodeInfo
	Err  *ErrorInfo
}

// rule is one predicate of the cascade. It returns ok=false to pass
// the message to the next rule.
type rule func(m parse.Message, text string) (Classified, bool)

// cascade holds the rules in priority order.
var cascade = []rule{
	toolCallRule,
	codeBlockRule,
	errorRule,
	successRule,
}

// Classify assigns a message to exactly one category. It is a pure
// function: the same message always yields the same classification.
func Classify(m parse.Message) Classified {
	if m.Content == nil {
		return Classified{Kind: KindPlainText}
	}
	text := m.Content.Flatten()
	for _, r := range cascade {
		if c, ok := r(m, text); ok {
			return c
		}
	}
	return Classified{Text: text, Kind: KindDiscussion}
}

func toolCallRule(m parse.Message, text string) (Classified, bool) {
	for _, b := range m.Content.Blocks() {
		if b.Type != "tool_use" {
			continue
		}
		return Classified{
			Text: text,
			Kind: KindToolCall,
			Tool: &ToolInfo{
				ToolName:    b.Name,
				ActionType:  ToolAction(b.Name),
				TargetFiles: targetFiles(b.Input),
			},
		}, true
	}
	return Classified{}, false
}

func codeBlockRule(_ parse.Message, text string) (Classified, bool) {
	info, ok := ExtractCodeInfo(text)
	if !ok {
		return Classified{}, false
	}
	return Classified{Text: text, Kind: KindCodeBlock, Code: &info}, true
}

func errorRule(_ parse.Message, text string) (Classified, bool) {
	info, ok := DetectError(text)
	if !ok {
		return Classified{}, false
	}
	return Classified{Text: text, Kind: KindError, Err: &info}, true
}

func successRule(_ parse.Message, text string) (Classified, bool) {
	if !IsSuccess(text) {
		return Classified{}, false
	}
	return Classified{Text: text, Kind: KindSuccess}, true
}

// targetFiles reads the file_path and path keys out of a tool's input,
// in that order, including both when both are present.
func targetFiles(input map[string]interface{}) []string {
	var files []string
	if fp := parse.BlockInputString(input, "file_path"); fp != "" {
		files = append(files, fp)
	}
	if p := parse.BlockInputString(input, "path"); p != "" {
		files = append(files, p)
	}
	return files
}
