// Package render turns analysis results into terminal output. It is
// purely presentational: all structures arrive fully computed.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/amar/session-finder/internal/classify"
	"github.com/amar/session-finder/internal/session"
	"github.com/amar/session-finder/internal/timeline"
)

const (
	colorReset   = "\033[0m"
	colorUser    = "\033[1;34m" // bold blue
	colorAssist  = "\033[1;32m" // bold green
	colorDim     = "\033[2m"
	colorBoldRed = "\033[1;31m" // keyword highlights
	colorHeading = "\033[1m"
)

// Sessions prints the ranked session listing.
func Sessions(w io.Writer, sessions []session.Summary) {
	if len(sessions) == 0 {
		fmt.Fprintln(w, "No sessions found matching your criteria.")
		return
	}

	fmt.Fprintf(w, "Found %d relevant session(s):\n\n", len(sessions))

	for i, s := range sessions {
		fmt.Fprintf(w, "%d. Session: %s\n", i+1, s.SessionID)
		fmt.Fprintf(w, "   File: %s\n", s.Path)
		fmt.Fprintf(w, "   Project: %s\n", s.ProjectPath)
		fmt.Fprintf(w, "   Modified: %s\n", s.LastModified.UTC().Format("2006-01-02 15:04:05 UTC"))
		fmt.Fprintf(w, "   Size: %d bytes, %d lines\n", s.FileSizeBytes, s.LineCount)

		if len(s.Topics) > 0 {
			fmt.Fprintf(w, "   Topics: %s\n", strings.Join(s.Topics, ", "))
		}
		if len(s.FirstMessages) > 0 {
			fmt.Fprintln(w, "   First messages:")
			for _, m := range s.FirstMessages {
				fmt.Fprintf(w, "     %s\n", m)
			}
		}
		if len(s.LastMessages) > 0 {
			fmt.Fprintln(w, "   Last messages:")
			for _, m := range s.LastMessages {
				fmt.Fprintf(w, "     %s\n", m)
			}
		}
		if len(s.CommonTerms) > 0 {
			fmt.Fprintf(w, "   Common terms: %s\n", strings.Join(s.CommonTerms, ", "))
		}

		fmt.Fprintf(w, "   Resume: %s\n\n", s.ResumeCommand())
	}
}

// Timeline prints the match timeline for one session.
func Timeline(w io.Writer, sessionID, query string, entries []timeline.Entry) {
	fmt.Fprintf(w, "=== Timeline for %q in session %s ===\n\n", query, sessionID)

	if len(entries) == 0 {
		fmt.Fprintln(w, "No matching messages.")
		return
	}

	for _, e := range entries {
		fmt.Fprintf(w, "[Message %d - %s] %s: %s\n",
			e.MessageIndex, e.Timestamp, e.Role, ContentLabel(e.Content))

		printContext(w, "Context before:", e.ContextBefore)
		fmt.Fprintf(w, "  -> %s\n", e.Content.Text)
		printContext(w, "Context after:", e.ContextAfter)
		fmt.Fprintln(w)
	}
}

// CodeDiff prints the code-change timeline for one session.
func CodeDiff(w io.Writer, sessionID string, entries []timeline.CodeEntry) {
	fmt.Fprintf(w, "=== Code timeline for session %s ===\n\n", sessionID)

	if len(entries) == 0 {
		fmt.Fprintln(w, "No code changes found.")
		return
	}

	for _, e := range entries {
		lang := e.Language
		if lang == "" {
			lang = "unknown"
		}
		fmt.Fprintf(w, "[Message %d - %s] %s: %s (%s)\n",
			e.MessageIndex, e.Timestamp, e.Role, e.Kind, lang)

		printContext(w, "Context before:", e.ContextBefore)
		fmt.Fprintln(w, "  Code:")
		for _, line := range strings.Split(e.CodeContent, "\n") {
			fmt.Fprintf(w, "    %s\n", line)
		}
		printContext(w, "Context after:", e.ContextAfter)
		fmt.Fprintln(w)
	}
}

func printContext(w io.Writer, heading string, lines []string) {
	if len(lines) == 0 {
		return
	}
	fmt.Fprintf(w, "  %s\n", heading)
	for _, l := range lines {
		fmt.Fprintf(w, "    %s\n", l)
	}
}

// ContentLabel renders a classification as a short display label.
func ContentLabel(c classify.Classified) string {
	switch c.Kind {
	case classify.KindToolCall:
		return fmt.Sprintf("Tool Call (%s -> %s)",
			c.Tool.ToolName, strings.Join(c.Tool.TargetFiles, ", "))
	case classify.KindCodeBlock:
		lang := c.Code.Language
		if lang == "" {
			lang = "unknown"
		}
		return fmt.Sprintf("Code Block (%s, %d lines)", lang, c.Code.LineCount)
	case classify.KindError:
		return fmt.Sprintf("Error (%s)", c.Err.ErrorType)
	case classify.KindSuccess:
		return "Success Response"
	default:
		return "Discussion"
	}
}
