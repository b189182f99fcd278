package timeline

import (
	"fmt"
	"strings"

	"github.com/amar/session-finder/internal/parse"
)

// ChangeKind tags what sort of code change a message carries.
type ChangeKind int

const (
	// ChangeEdit is an in-place file edit.
	ChangeEdit ChangeKind = iota
	// ChangeWrite is a new-file write.
	ChangeWrite
	// ChangeCodeBlock is an inline fenced code block in discussion.
	ChangeCodeBlock
	// ChangeCommand is an executed shell command.
	ChangeCommand
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeEdit:
		return "edit"
	case ChangeWrite:
		return "write"
	case ChangeCommand:
		return "command"
	default:
		return "code_block"
	}
}

// codeChangeTools maps file-modifying and command-execution tool names
// to their change kind; other tools do not qualify.
var codeChangeTools = map[string]ChangeKind{
	"Edit":      ChangeEdit,
	"MultiEdit": ChangeEdit,
	"Write":     ChangeWrite,
	"Bash":      ChangeCommand,
}

// CodeEntry is one code-change message with extracted code and context.
type CodeEntry struct {
	MessageIndex  int
	Timestamp     string
	Role          string
	CodeContent   string
	Language      string // "" when unknown
	Kind          ChangeKind
	ContextBefore []string
	ContextAfter  []string
}

// BuildCodeDiff locates every code-change message: tool calls using a
// file-modifying or command-execution tool, or messages whose text
// contains a fenced code block. When searchTerms is non-empty, only
// entries whose code or context mentions a term are kept.
func BuildCodeDiff(messages []parse.Message, searchTerms []string, contextSize int) []CodeEntry {
	var entries []CodeEntry
	for i, msg := range messages {
		if !hasCodeContent(msg) {
			continue
		}
		code, lang, kind := extractCode(msg)
		entry := CodeEntry{
			MessageIndex:  i,
			Timestamp:     msg.When(),
			Role:          msg.Role,
			CodeContent:   code,
			Language:      lang,
			Kind:          kind,
			ContextBefore: contextWindow(messages, i, contextSize, true),
			ContextAfter:  contextWindow(messages, i, contextSize, false),
		}
		if matchesTerms(entry, searchTerms) {
			entries = append(entries, entry)
		}
	}
	return entries
}

func hasCodeContent(msg parse.Message) bool {
	if msg.Content == nil {
		return false
	}
	for _, b := range msg.Content.Blocks() {
		if b.Type == "tool_use" {
			if _, ok := codeChangeTools[b.Name]; ok {
				return true
			}
		}
	}
	return strings.Contains(msg.Content.Flatten(), "```")
}

func matchesTerms(entry CodeEntry, searchTerms []string) bool {
	if len(searchTerms) == 0 {
		return true
	}
	for _, term := range searchTerms {
		lower := strings.ToLower(term)
		if strings.Contains(strings.ToLower(entry.CodeContent), lower) {
			return true
		}
		for _, ctx := range entry.ContextBefore {
			if strings.Contains(strings.ToLower(ctx), lower) {
				return true
			}
		}
		for _, ctx := range entry.ContextAfter {
			if strings.Contains(strings.ToLower(ctx), lower) {
				return true
			}
		}
	}
	return false
}

// extractCode pulls the code payload out of a code-change message:
// tool calls are formatted from their input, otherwise the first
// fenced block's body is used.
func extractCode(msg parse.Message) (string, string, ChangeKind) {
	for _, b := range msg.Content.Blocks() {
		if b.Type != "tool_use" {
			continue
		}
		kind, ok := codeChangeTools[b.Name]
		if !ok {
			continue
		}
		return formatToolContent(b.Name, b.Input), "", kind
	}
	if code, lang, ok := extractFencedBlock(msg.Content.Flatten()); ok {
		return code, lang, ChangeCodeBlock
	}
	return "", "", ChangeCodeBlock
}

// extractFencedBlock scans text for the first fenced code block with a
// non-empty body and returns its body and language tag.
func extractFencedBlock(text string) (string, string, bool) {
	lines := strings.Split(text, "\n")
	for i := 0; i < len(lines); i++ {
		if !strings.HasPrefix(lines[i], "```") {
			continue
		}
		lang := strings.TrimSpace(lines[i][3:])
		var body []string
		for i++; i < len(lines) && !strings.HasPrefix(lines[i], "```"); i++ {
			body = append(body, lines[i])
		}
		if len(body) > 0 {
			return strings.Join(body, "\n"), lang, true
		}
	}
	return "", "", false
}

// formatToolContent renders a tool invocation's input as readable code
// content for the diff timeline.
func formatToolContent(toolName string, input map[string]interface{}) string {
	if input == nil {
		return toolName
	}
	switch toolName {
	case "Write":
		filePath := inputString(input, "file_path", "unknown")
		return fmt.Sprintf("Write to %s\n%s", filePath, parse.BlockInputString(input, "content"))
	case "Edit", "MultiEdit":
		filePath := inputString(input, "file_path", "unknown")
		return fmt.Sprintf("Edit %s\n--- Replace:\n%s\n+++ With:\n%s",
			filePath,
			parse.BlockInputString(input, "old_string"),
			parse.BlockInputString(input, "new_string"))
	case "Bash":
		command := parse.BlockInputString(input, "command")
		if desc := parse.BlockInputString(input, "description"); desc != "" {
			return fmt.Sprintf("$ %s (%s)", command, desc)
		}
		return "$ " + command
	default:
		return fmt.Sprintf("%s with input: %v", toolName, input)
	}
}

func inputString(input map[string]interface{}, key, fallback string) string {
	if s := parse.BlockInputString(input, key); s != "" {
		return s
	}
	return fallback
}
