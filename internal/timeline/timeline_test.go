package timeline

import (
	"reflect"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/amar/session-finder/internal/classify"
	"github.com/amar/session-finder/internal/parse"
)

func userMsg(text string) parse.Message {
	return parse.Message{Kind: "user", Role: "user", Content: parse.TextContent(text)}
}

func assistantMsg(text string) parse.Message {
	return parse.Message{Kind: "assistant", Role: "assistant", Content: parse.TextContent(text)}
}

func TestBuild_ContextClippedAtBoundaries(t *testing.T) {
	// Three messages, match in the middle, window of two per side:
	// only one neighbor exists on each side.
	messages := []parse.Message{
		userMsg("before"),
		assistantMsg("the deadlock happens here"),
		userMsg("after"),
	}

	entries := Build(messages, []string{"deadlock"}, 2)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.MessageIndex != 1 {
		t.Errorf("MessageIndex = %d, want 1", e.MessageIndex)
	}
	if want := []string{"user: before"}; !reflect.DeepEqual(e.ContextBefore, want) {
		t.Errorf("ContextBefore = %v, want %v", e.ContextBefore, want)
	}
	if want := []string{"user: after"}; !reflect.DeepEqual(e.ContextAfter, want) {
		t.Errorf("ContextAfter = %v, want %v", e.ContextAfter, want)
	}
}

func TestBuild_MatchSemantics(t *testing.T) {
	tests := []struct {
		name     string
		messages []parse.Message
		terms    []string
		want     []int // matched message indices
	}{
		{
			name: "case insensitive substring",
			messages: []parse.Message{
				userMsg("The DEADLOCK strikes again"),
				userMsg("unrelated"),
			},
			terms: []string{"deadlock"},
			want:  []int{0},
		},
		{
			name: "any of several terms",
			messages: []parse.Message{
				userMsg("about retries"),
				userMsg("about timeouts"),
				userMsg("about neither"),
			},
			terms: []string{"retries", "timeouts"},
			want:  []int{0, 1},
		},
		{
			name: "self referential excluded",
			messages: []parse.Message{
				userMsg("session-finder deadlock in search"),
				userMsg("real deadlock"),
			},
			terms: []string{"deadlock"},
			want:  []int{1},
		},
		{
			name: "absent content skipped",
			messages: []parse.Message{
				{Kind: "summary", Role: "user"},
				userMsg("deadlock"),
			},
			terms: []string{"deadlock"},
			want:  []int{1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := Build(tt.messages, tt.terms, 0)
			var got []int
			for _, e := range entries {
				got = append(got, e.MessageIndex)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("matched indices = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuild_ClassifiesMatch(t *testing.T) {
	messages := []parse.Message{
		assistantMsg("error[E0502]: cannot borrow `x`"),
	}
	entries := Build(messages, []string{"borrow"}, 0)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Content.Kind != classify.KindError {
		t.Errorf("Kind = %v, want error", entries[0].Content.Kind)
	}
}

func TestSummarizeMessage(t *testing.T) {
	long := strings.Repeat("a", 150)

	tests := []struct {
		name string
		msg  parse.Message
		want string
	}{
		{"role and text", userMsg("hello"), "user: hello"},
		{"missing role", parse.Message{Content: parse.TextContent("x")}, "Unknown message"},
		{"missing content", parse.Message{Role: "user"}, "Unknown message"},
		{"long text truncated", userMsg(long), "user: " + strings.Repeat("a", 97) + "..."},
		{"exactly at limit", userMsg(strings.Repeat("b", 100)), "user: " + strings.Repeat("b", 100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SummarizeMessage(tt.msg); got != tt.want {
				t.Errorf("SummarizeMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildCodeDiff_Kinds(t *testing.T) {
	toolMsg := func(name string, input map[string]interface{}) parse.Message {
		return parse.Message{
			Kind: "assistant", Role: "assistant",
			Content: parse.BlockContent(parse.ContentBlock{Type: "tool_use", Name: name, Input: input}),
		}
	}

	messages := []parse.Message{
		toolMsg("Edit", map[string]interface{}{"file_path": "a.go", "old_string": "x", "new_string": "y"}),
		toolMsg("Write", map[string]interface{}{"file_path": "b.go", "content": "package b"}),
		toolMsg("Bash", map[string]interface{}{"command": "go test ./...", "description": "run tests"}),
		assistantMsg("try this:\n```go\nfmt.Println(1)\n```"),
		toolMsg("Read", map[string]interface{}{"file_path": "c.go"}),
		userMsg("no code here"),
	}

	entries := BuildCodeDiff(messages, nil, 0)
	if len(entries) != 4 {
		t.Fatalf("got %d entries, want 4", len(entries))
	}

	wantKinds := []ChangeKind{ChangeEdit, ChangeWrite, ChangeCommand, ChangeCodeBlock}
	for i, want := range wantKinds {
		if entries[i].Kind != want {
			t.Errorf("entry %d Kind = %v, want %v", i, entries[i].Kind, want)
		}
	}

	if want := "Edit a.go\n--- Replace:\nx\n+++ With:\ny"; entries[0].CodeContent != want {
		t.Errorf("edit content = %q, want %q", entries[0].CodeContent, want)
	}
	if want := "Write to b.go\npackage b"; entries[1].CodeContent != want {
		t.Errorf("write content = %q, want %q", entries[1].CodeContent, want)
	}
	if want := "$ go test ./... (run tests)"; entries[2].CodeContent != want {
		t.Errorf("command content = %q, want %q", entries[2].CodeContent, want)
	}
	if entries[3].CodeContent != "fmt.Println(1)" || entries[3].Language != "go" {
		t.Errorf("code block = %q (%q)", entries[3].CodeContent, entries[3].Language)
	}
}

func TestBuildCodeDiff_TermFilter(t *testing.T) {
	messages := []parse.Message{
		userMsg("let's fix the scheduler"),
		assistantMsg("```go\nscheduler.Stop()\n```"),
		assistantMsg("```go\ncache.Flush()\n```"),
	}

	entries := BuildCodeDiff(messages, []string{"scheduler"}, 0)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].MessageIndex != 1 {
		t.Errorf("MessageIndex = %d, want 1", entries[0].MessageIndex)
	}

	// Context also satisfies the filter: the cache block's neighbors
	// mention the scheduler once the window is non-empty.
	entries = BuildCodeDiff(messages, []string{"scheduler"}, 1)
	if len(entries) != 2 {
		t.Fatalf("got %d entries with wide context, want 2", len(entries))
	}
}

func TestExtractFencedBlock(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantCode string
		wantLang string
		wantOK   bool
	}{
		{"tagged block", "```rust\nfn main() {}\n```", "fn main() {}", "rust", true},
		{"untagged block", "```\nplain\n```", "plain", "", true},
		{"empty body skipped", "```go\n```\n```py\nx = 1\n```", "x = 1", "py", true},
		{"no fence", "nothing here", "", "", false},
		{"unterminated fence", "```go\nfmt.Println(1)", "fmt.Println(1)", "go", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, lang, ok := extractFencedBlock(tt.text)
			if ok != tt.wantOK || code != tt.wantCode || lang != tt.wantLang {
				t.Errorf("extractFencedBlock() = (%q, %q, %v), want (%q, %q, %v)",
					code, lang, ok, tt.wantCode, tt.wantLang, tt.wantOK)
			}
		})
	}
}

// TestProperty_ContextWindowBounds verifies windows never cross file
// boundaries or include the matched message itself.
func TestProperty_ContextWindowBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 30).Draw(t, "messages")
		size := rapid.IntRange(0, 10).Draw(t, "context")
		target := rapid.IntRange(0, n-1).Draw(t, "target")

		messages := make([]parse.Message, n)
		for i := range messages {
			messages[i] = userMsg("filler")
		}
		messages[target] = userMsg("needle in message")

		entries := Build(messages, []string{"needle"}, size)
		if len(entries) != 1 {
			t.Fatalf("got %d entries, want 1", len(entries))
		}
		e := entries[0]

		wantBefore := target
		if wantBefore > size {
			wantBefore = size
		}
		if len(e.ContextBefore) != wantBefore {
			t.Fatalf("ContextBefore has %d entries, want %d", len(e.ContextBefore), wantBefore)
		}
		wantAfter := n - target - 1
		if wantAfter > size {
			wantAfter = size
		}
		if len(e.ContextAfter) != wantAfter {
			t.Fatalf("ContextAfter has %d entries, want %d", len(e.ContextAfter), wantAfter)
		}
	})
}

// TestProperty_SummaryNeverExceedsLimit checks truncation against
// arbitrary (including multibyte) text.
func TestProperty_SummaryNeverExceedsLimit(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.StringN(0, 300, 600).Draw(t, "text")
		got := SummarizeMessage(userMsg(text))

		body := strings.TrimPrefix(got, "user: ")
		if n := len([]rune(body)); n > summaryMaxLen {
			t.Fatalf("summary body is %d runes, want <= %d", n, summaryMaxLen)
		}
		if len([]rune(text)) > summaryMaxLen && !strings.HasSuffix(got, "...") {
			t.Fatalf("truncated summary %q missing ellipsis", got)
		}
	})
}
