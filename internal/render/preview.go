package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/amar/session-finder/internal/session"
	"github.com/amar/session-finder/internal/timeline"
)

// PreviewOptions tunes the TUI preview rendering.
type PreviewOptions struct {
	Width int    // wrap width (0 = no wrap)
	Query string // search terms for keyword highlighting
}

// Preview renders one session's summary and match timeline as a single
// string for the TUI preview panel. It returns the content and the
// 0-based line of the first timeline entry (-1 when there is none).
func Preview(s session.Summary, entries []timeline.Entry, opts PreviewOptions) (string, int) {
	var b strings.Builder
	lineCount := 0
	firstHit := -1

	writeLine := func(text string) {
		for _, wl := range wrapLine(text, opts.Width) {
			b.WriteString(wl)
			b.WriteString("\n")
			lineCount++
		}
	}

	writeLine(fmt.Sprintf("%s--- %s [%s] ---%s", colorDim, s.SessionID, s.ProjectPath, colorReset))
	writeLine(fmt.Sprintf("%sModified %s | %d lines | %d bytes%s",
		colorDim, s.LastModified.Format("2006-01-02 15:04"), s.LineCount, s.FileSizeBytes, colorReset))
	writeLine("")

	if len(s.Topics) > 0 {
		writeLine(colorHeading + "Topics" + colorReset)
		writeLine(highlightKeywords(strings.Join(s.Topics, ", "), opts.Query))
		writeLine("")
	}
	if len(s.CommonTerms) > 0 {
		writeLine(colorHeading + "Common terms" + colorReset)
		writeLine(colorDim + strings.Join(s.CommonTerms, ", ") + colorReset)
		writeLine("")
	}

	if len(entries) > 0 {
		writeLine(colorHeading + fmt.Sprintf("Matches (%d)", len(entries)) + colorReset)
		writeLine("")
		for _, e := range entries {
			if firstHit < 0 {
				firstHit = lineCount
			}
			roleColor := colorDim
			switch e.Role {
			case "user":
				roleColor = colorUser
			case "assistant":
				roleColor = colorAssist
			}
			writeLine(fmt.Sprintf("%s[%d] %s%s %s%s%s",
				roleColor, e.MessageIndex, strings.ToUpper(e.Role), colorReset,
				colorDim, e.Timestamp, colorReset))
			writeLine(colorDim + ContentLabel(e.Content) + colorReset)
			for _, ctx := range e.ContextBefore {
				writeLine(colorDim + "  " + ctx + colorReset)
			}
			text := highlightKeywords(e.Content.Text, opts.Query)
			for _, tl := range strings.Split(indentLines(text, "  "), "\n") {
				writeLine(tl)
			}
			for _, ctx := range e.ContextAfter {
				writeLine(colorDim + "  " + ctx + colorReset)
			}
			writeLine("")
		}
	} else {
		writeLine(colorHeading + "First messages" + colorReset)
		for _, m := range s.FirstMessages {
			writeLine("  " + highlightKeywords(m, opts.Query))
		}
		writeLine("")
		writeLine(colorHeading + "Last messages" + colorReset)
		for _, m := range s.LastMessages {
			writeLine("  " + highlightKeywords(m, opts.Query))
		}
	}

	return b.String(), firstHit
}

// highlightKeywords wraps case-insensitive matches of query terms in
// bold red ANSI codes.
func highlightKeywords(text, query string) string {
	terms := strings.Fields(query)
	if len(terms) == 0 {
		return text
	}
	for _, term := range terms {
		lower := strings.ToLower(term)
		i := 0
		for i < len(text) {
			idx := strings.Index(strings.ToLower(text[i:]), lower)
			if idx < 0 {
				break
			}
			pos := i + idx
			orig := text[pos : pos+len(term)]
			replacement := colorBoldRed + orig + colorReset
			text = text[:pos] + replacement + text[pos+len(term):]
			i = pos + len(replacement)
		}
	}
	return text
}

// indentLines prepends each line of text with the given prefix.
func indentLines(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

// wrapLine breaks a single line into lines that fit within maxWidth
// visible columns, skipping ANSI escape sequences when measuring.
func wrapLine(line string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{line}
	}

	var result []string
	var cur strings.Builder
	visW := 0

	i := 0
	for i < len(line) {
		// ANSI escape sequence: ESC[ ... m
		if i+1 < len(line) && line[i] == '\033' && line[i+1] == '[' {
			j := i + 2
			for j < len(line) && line[j] != 'm' {
				j++
			}
			if j < len(line) {
				j++ // include 'm'
			}
			cur.WriteString(line[i:j])
			i = j
			continue
		}

		r, size := utf8.DecodeRuneInString(line[i:])
		rw := runewidth.RuneWidth(r)

		if visW+rw > maxWidth {
			result = append(result, cur.String())
			cur.Reset()
			visW = 0
		}

		cur.WriteRune(r)
		visW += rw
		i += size
	}

	if cur.Len() > 0 {
		result = append(result, cur.String())
	}

	if len(result) == 0 {
		return []string{""}
	}
	return result
}
