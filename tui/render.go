// ABOUTME: Rendering functions for the track table
// ABOUTME: Turns prepared rows into styled lines for the visible window only

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"songlist/songlist"
)

// rowStyle maps a highlight class to its style, nil for plain rows
func rowStyle(h songlist.Highlight) *lipgloss.Style {
	switch h {
	case songlist.HighlightCursor:
		return &cursorStyle
	case songlist.HighlightSelected:
		return &selectedStyle
	case songlist.HighlightPlaying:
		return &playingStyle
	default:
		return nil
	}
}

// renderRow joins a row's fitted cells with the one-cell column gap
func renderRow(r songlist.Row) string {
	line := strings.Join(r.Cells, " ")
	if style := rowStyle(r.Highlight); style != nil {
		return style.Render(line)
	}

	return line
}

// renderHeader renders the column titles
func (m model) renderHeader() string {
	return playlistHeaderStyle.Render(strings.Join(m.list.HeaderCells(), " "))
}

// updateViewportContent renders the rows in the visible window
// The window follows the cursor with cursor-to-middle scrolling
func (m *model) updateViewportContent() {
	vm := NewViewportManager(m.viewport.Height, m.list.Cursor(), m.list.Len())
	top, bottom := vm.Window()

	rows := m.list.Rows(top, bottom, m.currentPlaying())

	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = renderRow(r)
	}

	m.viewport.SetContent(strings.Join(lines, "\n"))
	m.viewport.SetYOffset(0)
}
