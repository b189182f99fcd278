package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/amar/session-finder/internal/finder"
	"github.com/amar/session-finder/internal/render"
	"github.com/amar/session-finder/internal/session"
)

// previewRenderedMsg is sent when an async preview render completes.
// path and query together identify what was rendered.
type previewRenderedMsg struct {
	path    string
	query   string
	content string
	hitLine int
	err     error
}

// loadPreviewCmd returns a tea.Cmd that renders the session preview
// asynchronously: summary header plus the match timeline for the
// current query terms.
func loadPreviewCmd(fd *finder.Finder, s session.Summary, query string, contextSize, width int) tea.Cmd {
	return func() tea.Msg {
		terms := strings.Fields(query)
		_, entries, err := fd.Timeline(s.Path, terms, contextSize)
		if err != nil {
			return previewRenderedMsg{path: s.Path, query: query, err: err}
		}
		content, hitLine := render.Preview(s, entries, render.PreviewOptions{
			Width: width,
			Query: query,
		})
		return previewRenderedMsg{
			path:    s.Path,
			query:   query,
			content: content,
			hitLine: hitLine,
		}
	}
}

// newViewport creates a viewport model with the given dimensions.
func newViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	vp.Style = stylePanelBorder
	return vp
}
