// ABOUTME: Ordered track container with cursor, selection aggregate and running duration
// ABOUTME: Keeps every track's Pos equal to its index across append, insert and remove

// Package songlist is the track-list engine behind the browser: an ordered container
// with positional navigation, a case-insensitive multi-field matcher, a multi-key
// stable sort and a column-width balancer. A Songlist is not safe for concurrent use;
// callers serialize access, typically by owning it from a single goroutine.
package songlist

import (
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"slices"
	"time"

	"songlist/playlist"
)

// Role governs how tracks are identified when looking them up
type Role int

const (
	RoleQueue    Role = iota // live playback queue, identity by id then position
	RoleLibrary              // whole collection, identity by file path
	RolePlaylist             // stored playlist, identity by file path
)

func (r Role) String() string {
	switch r {
	case RoleQueue:
		return "queue"
	case RoleLibrary:
		return "library"
	case RolePlaylist:
		return "playlist"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// ParseRole resolves "queue", "library" or "playlist"
func ParseRole(s string) (Role, bool) {
	for _, r := range []Role{RoleQueue, RoleLibrary, RolePlaylist} {
		if r.String() == s {
			return r, true
		}
	}

	return RolePlaylist, false
}

// Selection summarizes the selected tracks
type Selection struct {
	Count    int
	Duration time.Duration
}

// remainingCache holds the duration after the current track, keyed on what invalidates it
type remainingCache struct {
	valid      bool
	id         int
	size       int
	generation uint64
	duration   time.Duration
	count      int
}

// Songlist is an ordered, owned sequence of tracks
type Songlist struct {
	role     Role
	filename string

	tracks    []*playlist.Track
	cursor    int
	duration  time.Duration // sum of known track durations
	selection Selection

	columns []Column
	rng     *rand.Rand

	generation uint64 // bumped on every mutation that can reorder or resize
	remaining  remainingCache
}

// New creates an empty list. filename names the list for the playlist role.
func New(role Role, filename string) *Songlist {
	return &Songlist{
		role:     role,
		filename: filename,
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// SetRand replaces the random source used by Random
func (s *Songlist) SetRand(r *rand.Rand) {
	s.rng = r
}

// Role returns the list's role
func (s *Songlist) Role() Role {
	return s.role
}

// Title returns a display name for the list
func (s *Songlist) Title() string {
	switch s.role {
	case RoleQueue:
		return "Queue"
	case RoleLibrary:
		return "Library"
	default:
		return filepath.Base(s.filename)
	}
}

// Filename returns the backing file of a playlist-role list
func (s *Songlist) Filename() string {
	return s.filename
}

// Len returns the number of tracks
func (s *Songlist) Len() int {
	return len(s.tracks)
}

// Get returns the track at pos. Out-of-range access is a caller bug and panics.
func (s *Songlist) Get(pos int) *playlist.Track {
	if pos < 0 || pos >= len(s.tracks) {
		panic(fmt.Sprintf("songlist: position %d out of range [0,%d)", pos, len(s.tracks)))
	}

	return s.tracks[pos]
}

// Tracks returns a snapshot of the track pointers in order
func (s *Songlist) Tracks() []*playlist.Track {
	return slices.Clone(s.tracks)
}

// Duration returns the total of all known track durations
func (s *Songlist) Duration() time.Duration {
	return s.duration
}

// Append adds t at the end and returns its position. Any position t carries
// from another list is overwritten; use InsertAt to place a track.
func (s *Songlist) Append(t *playlist.Track) int {
	if t == nil {
		return playlist.NoPos
	}

	t.Pos = len(s.tracks)
	s.tracks = append(s.tracks, t)
	s.account(t)
	s.touch()

	return t.Pos
}

// InsertAt places t at pos. An occupied slot is vacated first, so the track
// currently at pos is replaced. Returns false, leaving the list unchanged, when
// pos is past the end.
func (s *Songlist) InsertAt(pos int, t *playlist.Track) bool {
	if t == nil || pos < 0 || pos > len(s.tracks) {
		return false
	}

	if pos == len(s.tracks) {
		s.Append(t)

		return true
	}

	if !s.RemoveAt(pos) {
		return false
	}

	s.tracks = slices.Insert(s.tracks, pos, t)
	s.renumber(pos)
	s.account(t)
	s.touch()

	return true
}

// RemoveAt deletes the track at pos and renumbers the tracks after it
func (s *Songlist) RemoveAt(pos int) bool {
	if pos < 0 || pos >= len(s.tracks) {
		return false
	}

	t := s.tracks[pos]
	if t != nil {
		s.setSelected(t, false)

		if t.HasDuration() {
			s.duration -= t.Duration
		}
	}

	s.tracks = slices.Delete(s.tracks, pos, pos+1)
	s.renumber(pos)
	s.clampCursor()
	s.touch()

	return true
}

// RemoveTrack resolves t to its position and removes it
func (s *Songlist) RemoveTrack(t *playlist.Track) bool {
	pos, ok := s.FindTrack(t)
	if !ok {
		return false
	}

	return s.RemoveAt(pos)
}

// FindTrack returns t's index in the list. The queue role tries the queue id
// then the position; every role falls back to the file path.
func (s *Songlist) FindTrack(t *playlist.Track) (int, bool) {
	if t == nil {
		return playlist.NoPos, false
	}

	if s.role == RoleQueue {
		if t.ID != playlist.NoID {
			for i, c := range s.tracks {
				if c != nil && c.ID == t.ID {
					return i, true
				}
			}
		}

		if t.Pos >= 0 && t.Pos < len(s.tracks) && s.tracks[t.Pos] != nil {
			return t.Pos, true
		}
	}

	for i, c := range s.tracks {
		if c != nil && c.Path == t.Path {
			return i, true
		}
	}

	return playlist.NoPos, false
}

// Truncate removes tracks from the end until at most maxSize remain
func (s *Songlist) Truncate(maxSize int) {
	if maxSize <= 0 {
		s.Clear()

		return
	}

	for len(s.tracks) > maxSize {
		s.RemoveAt(len(s.tracks) - 1)
	}
}

// Clear removes every track
func (s *Songlist) Clear() {
	s.tracks = nil
	s.duration = 0
	s.selection = Selection{}
	s.cursor = 0
	s.touch()
}

// SetFrom replaces the contents with copies of other's tracks. The copies are
// unselected and lose their queue identity.
func (s *Songlist) SetFrom(other *Songlist) {
	if other == nil {
		return
	}

	s.SetTracks(other.tracks)
}

// SetTracks replaces the contents with copies of tracks, resetting their queue identity
func (s *Songlist) SetTracks(tracks []*playlist.Track) {
	s.Clear()

	for _, t := range tracks {
		if t == nil {
			continue
		}

		c := t.Clone()
		c.ID = playlist.NoID
		c.Selected = false
		s.Append(c)
	}
}

// AppendList appends copies of other's tracks and returns the position of the
// first one, or NoPos when nothing was added.
func (s *Songlist) AppendList(other *Songlist) int {
	first := playlist.NoPos
	if other == nil {
		return first
	}

	for _, t := range other.tracks {
		if t == nil {
			continue
		}

		c := t.Clone()
		c.Selected = false

		pos := s.Append(c)
		if first == playlist.NoPos {
			first = pos
		}
	}

	return first
}

// Cursor returns the cursor position. It is 0 for an empty list.
func (s *Songlist) Cursor() int {
	return s.cursor
}

// SetCursor moves the cursor, clamped to the list bounds
func (s *Songlist) SetCursor(pos int) {
	s.cursor = pos
	s.clampCursor()
}

// MoveCursor moves the cursor by delta, clamped to the list bounds
func (s *Songlist) MoveCursor(delta int) {
	s.SetCursor(s.cursor + delta)
}

// CursorTrack returns the track under the cursor, or nil for an empty list
func (s *Songlist) CursorTrack() *playlist.Track {
	if len(s.tracks) == 0 {
		return nil
	}

	return s.tracks[s.cursor]
}

// SetSelected marks the track at pos selected or not
func (s *Songlist) SetSelected(pos int, selected bool) bool {
	if pos < 0 || pos >= len(s.tracks) || s.tracks[pos] == nil {
		return false
	}

	s.setSelected(s.tracks[pos], selected)

	return true
}

// ToggleSelected flips the selection of the track at pos
func (s *Songlist) ToggleSelected(pos int) bool {
	if pos < 0 || pos >= len(s.tracks) || s.tracks[pos] == nil {
		return false
	}

	return s.SetSelected(pos, !s.tracks[pos].Selected)
}

// ClearSelection deselects every track
func (s *Songlist) ClearSelection() {
	for _, t := range s.tracks {
		if t != nil {
			s.setSelected(t, false)
		}
	}
}

// Selection returns the selected count and their total known duration
func (s *Songlist) Selection() Selection {
	return s.selection
}

// SelectedPositions returns the positions of selected tracks in order
func (s *Songlist) SelectedPositions() []int {
	var positions []int

	for i, t := range s.tracks {
		if t != nil && t.Selected {
			positions = append(positions, i)
		}
	}

	return positions
}

func (s *Songlist) setSelected(t *playlist.Track, selected bool) {
	if t.Selected == selected {
		return
	}

	t.Selected = selected

	delta := 1
	if !selected {
		delta = -1
	}

	s.selection.Count += delta
	if t.HasDuration() {
		s.selection.Duration += time.Duration(delta) * t.Duration
	}
}

// account adds a newly inserted track to the running totals
func (s *Songlist) account(t *playlist.Track) {
	if t.HasDuration() {
		s.duration += t.Duration
	}

	if t.Selected {
		s.selection.Count++
		if t.HasDuration() {
			s.selection.Duration += t.Duration
		}
	}
}

// renumber restores Pos == index from start onwards
func (s *Songlist) renumber(start int) {
	for i := start; i < len(s.tracks); i++ {
		if s.tracks[i] != nil {
			s.tracks[i].Pos = i
		}
	}
}

func (s *Songlist) clampCursor() {
	if s.cursor >= len(s.tracks) {
		s.cursor = len(s.tracks) - 1
	}

	if s.cursor < 0 {
		s.cursor = 0
	}
}

// touch records a structural change
func (s *Songlist) touch() {
	s.generation++
}
