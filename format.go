// ABOUTME: Plain-text rendering of a laid-out track list for CLI output
// ABOUTME: Formats the column table and the one-line list summary

package main

import (
	"fmt"
	"strings"
	"time"

	"songlist/playlist"
	"songlist/songlist"
)

// renderTable returns the header, a rule and one line per track using the
// list's current column layout. Trailing padding is trimmed.
func renderTable(list *songlist.Songlist) []string {
	header := strings.Join(list.HeaderCells(), " ")

	lines := []string{
		strings.TrimRight(header, " "),
		strings.Repeat("-", len([]rune(strings.TrimRight(header, " ")))),
	}

	for _, row := range list.Rows(0, list.Len()-1, nil) {
		lines = append(lines, strings.TrimRight(strings.Join(row.Cells, " "), " "))
	}

	return lines
}

// formatSummary describes a track count and total length, e.g. "3 tracks, 12:04"
func formatSummary(count int, total time.Duration) string {
	noun := "tracks"
	if count == 1 {
		noun = "track"
	}

	length := "0:00"
	if total > 0 {
		length = playlist.FormatDuration(total)
	}

	return fmt.Sprintf("%d %s, %s", count, noun, length)
}
