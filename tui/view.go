// ABOUTME: Screen composition for the TUI
// ABOUTME: Implements the Bubble Tea View() function with title, table, status and help lines

package tui

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"songlist/playlist"
)

// View renders the TUI
func (m model) View() string {
	defer func() {
		if r := recover(); r != nil {
			m.debugf("[PANIC] View panic: %v", r)
			m.debugf("[PANIC] Stack trace: %s", string(debug.Stack()))
			panic(r) // Re-panic so Bubble Tea can handle it
		}
	}()

	if m.quitting {
		return "Saving config and exiting...\n"
	}

	var b strings.Builder

	b.WriteString(m.renderTitle() + "\n")
	b.WriteString(m.renderHeader() + "\n")
	b.WriteString(m.viewport.View() + "\n")
	b.WriteString(m.renderStatus() + "\n")

	if m.searching {
		b.WriteString(m.search.View())
	} else {
		b.WriteString(m.renderHelp())
	}

	return b.String()
}

// renderTitle shows the list name, size and total length
func (m model) renderTitle() string {
	title := fmt.Sprintf("%s | %d tracks | %s", m.list.Title(), m.list.Len(), formatTotal(m.list.Duration()))
	if m.dryRun {
		title += " [DRY RUN]"
	}

	return titleStyle.Render(title)
}

// renderStatus renders the status bar
func (m model) renderStatus() string {
	if m.statusMsg != "" && time.Since(m.statusMsgAge) < statusMessageDuration {
		return statusStyle.Width(m.width).Render(m.statusMsg)
	}

	parts := []string{fmt.Sprintf("Track %d/%d", min(m.list.Cursor()+1, m.list.Len()), m.list.Len())}

	if sel := m.list.Selection(); sel.Count > 0 {
		parts = append(parts, fmt.Sprintf("Sel %d (%s)", sel.Count, formatTotal(sel.Duration)))
	}

	if playing := m.currentPlaying(); playing != nil {
		parts = append(parts, fmt.Sprintf("Left %d (%s)",
			m.list.RemainingCount(playing), formatTotal(m.list.RemainingDuration(playing))))
	}

	if m.cfg.Get().Repeat {
		parts = append(parts, "repeat")
	}

	parts = append(parts, fmt.Sprintf("U:%d R:%d", m.undoMgr.UndoSize(), m.undoMgr.RedoSize()))

	return statusStyle.Width(m.width).Render(strings.Join(parts, " | "))
}

// renderHelp renders the help text
func (m model) renderHelp() string {
	return helpStyle.Render(m.help.ShortHelpView(keys.ShortHelp()))
}

// formatTotal renders a list total, which may run past an hour
func formatTotal(d time.Duration) string {
	if d <= 0 {
		return "0:00"
	}

	return playlist.FormatDuration(d)
}
