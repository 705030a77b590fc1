// ABOUTME: Column width balancing and row preparation for the tabular track display
// ABOUTME: Widths start from observed content, then grow or shrink one cell at a time to fit

package songlist

import (
	"github.com/mattn/go-runewidth"

	"songlist/playlist"
)

// Column is one display column bound to a field, with running content statistics
type Column struct {
	Field  playlist.FieldID
	Title  string
	MinLen int // 0 means flexible
	Width  int

	samples int
	sum     int
}

// NewColumn returns an empty column for field using the field table's header and minimum
func NewColumn(field playlist.FieldID) Column {
	info := field.Info()

	return Column{Field: field, Title: info.Header, MinLen: info.MinLen}
}

// AddSample records the display width of one cell
func (c *Column) AddSample(n int) {
	c.samples++
	c.sum += n
}

// Average returns the rounded mean sample width, 0 without samples
func (c *Column) Average() int {
	if c.samples == 0 {
		return 0
	}

	return (c.sum + c.samples/2) / c.samples
}

// EffectiveWidth is the average width, never below the column minimum
func (c *Column) EffectiveWidth() int {
	return max(c.MinLen, c.Average())
}

// ColumnGeometry is what the renderer needs to place one column
type ColumnGeometry struct {
	Header string
	Offset int
	Width  int
}

// Highlight classifies a row for drawing. Higher values win.
type Highlight int

const (
	HighlightNormal Highlight = iota
	HighlightPlaying
	HighlightSelected
	HighlightCursor
)

// Row is one visible line of the table
type Row struct {
	Pos       int
	Cells     []string // each cell fitted to its column
	Highlight Highlight
}

// Layout builds columns for fields, sizes them from the tracks' content and
// balances them so their widths add up to width.
func Layout(fields []playlist.FieldID, width int, tracks []*playlist.Track) []Column {
	if len(fields) == 0 {
		return nil
	}

	cols := make([]Column, len(fields))
	for i, f := range fields {
		cols[i] = NewColumn(f)
	}

	for _, t := range tracks {
		if t == nil {
			continue
		}

		for i := range cols {
			cols[i].AddSample(runewidth.StringWidth(cols[i].Field.Display(t)))
		}
	}

	for i := range cols {
		cols[i].Width = cols[i].EffectiveWidth()
	}

	balance(cols, max(width, 0))

	return cols
}

// balance adjusts widths one cell per column per pass until they sum to target.
// Columns shrink only while above their minimum and only flexible columns grow,
// unless every column is fixed, in which case any column may absorb the slack.
// A pass that changes nothing ends the loop, which happens when every column is
// already at its minimum and still too wide.
func balance(cols []Column, target int) {
	total := 0
	allFixed := true

	for i := range cols {
		total += cols[i].Width
		if cols[i].MinLen == 0 {
			allFixed = false
		}
	}

	for total != target {
		changed := false

		for i := range cols {
			c := &cols[i]

			switch {
			case total > target && c.Width > c.MinLen:
				c.Width--
				total--
				changed = true
			case total < target && (allFixed || c.MinLen == 0):
				c.Width++
				total++
				changed = true
			}

			if total == target {
				break
			}
		}

		if !changed {
			return
		}
	}
}

// SetColumnSize rebuilds the column layout from a space or comma separated
// field list for the given window width. Unknown tokens are ignored.
func (s *Songlist) SetColumnSize(columns string, width int) {
	s.columns = Layout(playlist.ParseFieldList(columns), width, s.tracks)
}

// Columns returns a copy of the current layout
func (s *Songlist) Columns() []Column {
	out := make([]Column, len(s.columns))
	copy(out, s.columns)

	return out
}

// Geometry returns header, left offset and width for each column
func (s *Songlist) Geometry() []ColumnGeometry {
	geo := make([]ColumnGeometry, len(s.columns))
	offset := 0

	for i, c := range s.columns {
		geo[i] = ColumnGeometry{Header: c.Title, Offset: offset, Width: c.Width}
		offset += c.Width
	}

	return geo
}

// HeaderCells returns the column titles fitted like row cells
func (s *Songlist) HeaderCells() []string {
	cells := make([]string, len(s.columns))
	for i, c := range s.columns {
		cells[i] = fitCell(c.Title, cellWidth(i, c.Width))
	}

	return cells
}

// Rows prepares rows top through bottom inclusive, clamped to the list.
// current is the playing track, or nil.
func (s *Songlist) Rows(top, bottom int, current *playlist.Track) []Row {
	top = max(top, 0)
	bottom = min(bottom, len(s.tracks)-1)

	if top > bottom {
		return nil
	}

	rows := make([]Row, 0, bottom-top+1)

	for i := top; i <= bottom; i++ {
		t := s.tracks[i]
		if t == nil {
			continue
		}

		cells := make([]string, len(s.columns))
		for j, c := range s.columns {
			cells[j] = fitCell(c.Field.Display(t), cellWidth(j, c.Width))
		}

		rows = append(rows, Row{Pos: i, Cells: cells, Highlight: s.highlight(i, t, current)})
	}

	return rows
}

// highlight picks the row class: cursor, then selected, then playing
func (s *Songlist) highlight(pos int, t, current *playlist.Track) Highlight {
	switch {
	case pos == s.cursor:
		return HighlightCursor
	case t.Selected:
		return HighlightSelected
	case current == nil:
		return HighlightNormal
	case s.role == RoleQueue && t.ID != playlist.NoID && t.ID == current.ID:
		return HighlightPlaying
	case s.role != RoleQueue && t.Path == current.Path:
		return HighlightPlaying
	default:
		return HighlightNormal
	}
}

// cellWidth leaves one cell of separation before every column but the first
func cellWidth(col, width int) int {
	if col > 0 {
		return max(width-1, 0)
	}

	return width
}

// fitCell truncates s to width terminal cells and pads it out to exactly width
func fitCell(s string, width int) string {
	if width <= 0 {
		return ""
	}

	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}

	return runewidth.FillRight(s, width)
}
