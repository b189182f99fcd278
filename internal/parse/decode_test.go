package parse

import (
	"fmt"
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int // decoded message count
	}{
		{
			name:  "single user record",
			input: `{"type":"user","message":{"role":"user","content":"hello"},"timestamp":"t1"}`,
			want:  1,
		},
		{
			name: "malformed line skipped",
			input: `{"type":"user","message":{"role":"user","content":"a"}}
not json at all
{"type":"assistant","message":{"role":"assistant","content":"b"}}`,
			want: 2,
		},
		{
			name:  "missing type tag dropped",
			input: `{"message":{"role":"user","content":"a"}}`,
			want:  0,
		},
		{
			name:  "record without message kept",
			input: `{"type":"summary","timestamp":"t1"}`,
			want:  1,
		},
		{
			name:  "malformed inner message drops line",
			input: `{"type":"user","message":"not an object"}`,
			want:  0,
		},
		{
			name: "empty lines ignored",
			input: `{"type":"user","message":{"role":"user","content":"a"}}

{"type":"user","message":{"role":"user","content":"b"}}`,
			want: 2,
		},
		{
			name:  "empty input",
			input: "",
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msgs, err := Decode(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(msgs) != tt.want {
				t.Errorf("decoded %d messages, want %d", len(msgs), tt.want)
			}
		})
	}
}

func TestDecode_Fields(t *testing.T) {
	input := `{"type":"user","message":{"role":"user","content":"I fixed the retry logic"},"timestamp":"t1"}`
	msgs, err := Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("decoded %d messages, want 1", len(msgs))
	}
	m := msgs[0]
	if m.Kind != "user" {
		t.Errorf("Kind = %q, want %q", m.Kind, "user")
	}
	if m.Role != "user" {
		t.Errorf("Role = %q, want %q", m.Role, "user")
	}
	if m.Timestamp != "t1" {
		t.Errorf("Timestamp = %q, want %q", m.Timestamp, "t1")
	}
	if got := m.Text(); got != "I fixed the retry logic" {
		t.Errorf("Text() = %q", got)
	}
}

func TestDecode_SyntheticTimestamp(t *testing.T) {
	// Third line (index 2) has no timestamp.
	input := `{"type":"user","message":{"role":"user","content":"a"},"timestamp":"t0"}
{"type":"assistant","message":{"role":"assistant","content":"b"},"timestamp":"t1"}
{"type":"user","message":{"role":"user","content":"c"}}`
	msgs, err := Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("decoded %d messages, want 3", len(msgs))
	}
	if got := msgs[2].When(); got != "line_2" {
		t.Errorf("When() = %q, want %q", got, "line_2")
	}
	if got := msgs[0].When(); got != "t0" {
		t.Errorf("When() = %q, want %q", got, "t0")
	}
}

func TestContent_Flatten(t *testing.T) {
	tests := []struct {
		name    string
		content *Content
		want    string
	}{
		{
			name:    "string variant verbatim",
			content: TextContent("plain text"),
			want:    "plain text",
		},
		{
			name: "text blocks joined by one space",
			content: BlockContent(
				ContentBlock{Type: "text", Text: "first"},
				ContentBlock{Type: "text", Text: "second"},
			),
			want: "first second",
		},
		{
			name: "non-text blocks ignored",
			content: BlockContent(
				ContentBlock{Type: "text", Text: "before"},
				ContentBlock{Type: "tool_use", Name: "Read", Text: "ignored"},
				ContentBlock{Type: "text", Text: "after"},
			),
			want: "before after",
		},
		{
			name:    "only non-text blocks",
			content: BlockContent(ContentBlock{Type: "tool_use", Name: "Bash"}),
			want:    "",
		},
		{
			name:    "nil content",
			content: nil,
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.content.Flatten(); got != tt.want {
				t.Errorf("Flatten() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestContent_UnmarshalBlockArray(t *testing.T) {
	input := `{"type":"assistant","message":{"role":"assistant","content":[{"type":"tool_use","name":"Write","input":{"file_path":"a.rs","content":"fn main(){}"}}]}}`
	msgs, err := Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("decoded %d messages, want 1", len(msgs))
	}
	blocks := msgs[0].Content.Blocks()
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	b := blocks[0]
	if b.Type != "tool_use" || b.Name != "Write" {
		t.Errorf("block = %+v", b)
	}
	if got := BlockInputString(b.Input, "file_path"); got != "a.rs" {
		t.Errorf("file_path = %q, want %q", got, "a.rs")
	}
}

// TestProperty_DecodeNeverExceedsLineCount verifies that arbitrary
// inputs decode to at most one message per line and never error.
func TestProperty_DecodeNeverExceedsLineCount(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 20).Draw(t, "lines")
		var lines []string
		for i := 0; i < n; i++ {
			if rapid.Bool().Draw(t, fmt.Sprintf("valid_%d", i)) {
				lines = append(lines, `{"type":"user","message":{"role":"user","content":"x"}}`)
			} else {
				lines = append(lines, rapid.StringMatching(`[a-z{}\[\]":,]{0,30}`).Draw(t, fmt.Sprintf("junk_%d", i)))
			}
		}
		msgs, err := Decode(strings.NewReader(strings.Join(lines, "\n")))
		if err != nil {
			t.Fatalf("decode should never fail on short lines: %v", err)
		}
		if len(msgs) > n {
			t.Fatalf("decoded %d messages from %d lines", len(msgs), n)
		}
		for _, m := range msgs {
			if m.LineIndex < 0 || m.LineIndex >= n {
				t.Fatalf("LineIndex %d out of range [0,%d)", m.LineIndex, n)
			}
		}
	})
}
