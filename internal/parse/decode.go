package parse

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

const maxLineSize = 10 * 1024 * 1024 // 10MB

// record mirrors one JSONL line of a session log. The inner message is
// decoded in a second step so a malformed inner object drops only that
// line, and optional fields simply stay empty.
type record struct {
	Type      string          `json:"type"`
	Message   json.RawMessage `json:"message"`
	Timestamp string          `json:"timestamp"`
}

type innerMessage struct {
	Role    string   `json:"role"`
	Content *Content `json:"content"`
}

// ParseFile decodes a session log into its ordered message sequence.
func ParseFile(path string) ([]Message, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open session %s: %w", path, err)
	}
	defer f.Close()

	msgs, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("read session %s: %w", path, err)
	}
	return msgs, nil
}

// Decode reads JSONL records from r, one message per line that parses.
// Lines that fail to decode are skipped; logs routinely contain lines
// from schema versions this tool does not recognize.
func Decode(r io.Reader) ([]Message, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var msgs []Message
	lineIdx := -1
	for scanner.Scan() {
		lineIdx++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var rec record
		if err := json.Unmarshal(line, &rec); err != nil {
			continue
		}
		if rec.Type == "" {
			continue
		}

		msg := Message{
			Kind:      rec.Type,
			Timestamp: rec.Timestamp,
			LineIndex: lineIdx,
		}

		if len(rec.Message) > 0 && string(rec.Message) != "null" {
			var inner innerMessage
			if err := json.Unmarshal(rec.Message, &inner); err != nil {
				continue
			}
			msg.Role = inner.Role
			msg.Content = inner.Content
		}

		msgs = append(msgs, msg)
	}
	return msgs, scanner.Err()
}
