package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/amar/session-finder/internal/session"
)

// linesPerItem is the number of terminal lines each session occupies.
const linesPerItem = 2

// renderList renders the left panel: ranked sessions with scrolling.
func (m model) renderList(width, height int) string {
	if len(m.sessions) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(colorDim).
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render("No sessions")
		return empty
	}

	var lines []string
	for i, s := range m.sessions {
		if i < m.listOffset {
			continue
		}
		if len(lines)+linesPerItem > height {
			break
		}
		rows := formatSessionLine(s, width, i == m.cursor)
		lines = append(lines, rows...)
	}

	// Pad remaining lines
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}

	return strings.Join(lines, "\n")
}

// formatSessionLine formats one ranked session as two lines:
//
//	line 1: [>] MM-DD topicCount project
//	line 2:    first topic or session id (dimmed)
func formatSessionLine(s session.Summary, width int, selected bool) []string {
	date := s.LastModified.Format("01-02")
	hits := styleTopicCount.Render(fmt.Sprintf("%2d", len(s.Topics)))

	project := s.ProjectPath
	projectMax := width - 2 - 6 - 3 - 2 // prefix + date + count + padding
	if projectMax < 0 {
		projectMax = 0
	}
	if runewidth.StringWidth(project) > projectMax {
		project = runewidth.Truncate(project, projectMax, "")
	}

	line1 := fmt.Sprintf("%s %s %s", hits, date, project)
	if selected {
		line1 = styleListSelected.Render("> ") + line1
	} else {
		line1 = "  " + line1
	}

	detail := s.SessionID
	if len(s.Topics) > 0 {
		detail = s.Topics[0]
	}
	detail = strings.ReplaceAll(detail, "\n", " ")
	detailMax := width - 4 // indent
	if detailMax < 0 {
		detailMax = 0
	}
	if runewidth.StringWidth(detail) > detailMax {
		detail = runewidth.Truncate(detail, detailMax, "")
	}
	line2 := "    " + lipgloss.NewStyle().Foreground(colorDim).Render(detail)

	return []string{line1, line2}
}

// adjustListScroll keeps the cursor visible within the list viewport.
func (m *model) adjustListScroll(listHeight int) {
	visibleItems := listHeight / linesPerItem
	if visibleItems < 1 {
		visibleItems = 1
	}
	if m.cursor < m.listOffset {
		m.listOffset = m.cursor
	}
	if m.cursor >= m.listOffset+visibleItems {
		m.listOffset = m.cursor - visibleItems + 1
	}
}
