package parse

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Message is one decoded log record. Records are constructed once per
// input line and never mutated afterwards.
type Message struct {
	// Kind is the record type tag ("user", "assistant", "summary", ...).
	Kind string
	// Role is the inner message role, empty when the record has none.
	Role string
	// Content is nil when the record carries no message content.
	Content *Content
	// Timestamp is the raw timestamp string, empty when absent.
	Timestamp string
	// LineIndex is the 0-based position of the record in its file.
	LineIndex int
}

// When returns the message timestamp, substituting the synthetic
// positional marker "line_<N>" when the record carried none.
func (m Message) When() string {
	if m.Timestamp != "" {
		return m.Timestamp
	}
	return fmt.Sprintf("line_%d", m.LineIndex)
}

// Text returns the flattened content text, or "" when content is absent.
func (m Message) Text() string {
	if m.Content == nil {
		return ""
	}
	return m.Content.Flatten()
}

// Content is the string-or-block-array union a record's content can
// take. All shape branching lives here; callers see a single text view
// through Flatten and the raw blocks through Blocks.
type Content struct {
	text   string
	blocks []ContentBlock
	isText bool
}

// ContentBlock is one structured unit of a block-array content.
type ContentBlock struct {
	Type  string                 `json:"type"`
	Text  string                 `json:"text"`
	Name  string                 `json:"name"`
	Input map[string]interface{} `json:"input"`
}

// TextContent builds a string-variant Content.
func TextContent(s string) *Content {
	return &Content{text: s, isText: true}
}

// BlockContent builds a block-array-variant Content.
func BlockContent(blocks ...ContentBlock) *Content {
	return &Content{blocks: blocks}
}

// IsBlocks reports whether the content is the block-array variant.
func (c *Content) IsBlocks() bool {
	return c != nil && !c.isText
}

// Blocks returns the block sequence, nil for the string variant.
func (c *Content) Blocks() []ContentBlock {
	if c == nil || c.isText {
		return nil
	}
	return c.blocks
}

// Flatten derives the single canonical text view: the string variant
// verbatim, or the text of every "text" block joined by one space.
func (c *Content) Flatten() string {
	if c == nil {
		return ""
	}
	if c.isText {
		return c.text
	}
	var parts []string
	for _, b := range c.blocks {
		if b.Type == "text" {
			parts = append(parts, b.Text)
		}
	}
	return strings.Join(parts, " ")
}

// UnmarshalJSON accepts either a JSON string or an array of blocks.
func (c *Content) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		c.text = s
		c.isText = true
		c.blocks = nil
		return nil
	}
	var blocks []ContentBlock
	if err := json.Unmarshal(data, &blocks); err != nil {
		return err
	}
	c.blocks = blocks
	c.isText = false
	c.text = ""
	return nil
}

// BlockInputString extracts a string-valued key from a tool block's
// structured input, returning "" when absent or not a string.
func BlockInputString(input map[string]interface{}, key string) string {
	if input == nil {
		return ""
	}
	s, ok := input[key].(string)
	if !ok {
		return ""
	}
	return s
}
