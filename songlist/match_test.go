// ABOUTME: Tests for track matching, circular scans and field jumps
// ABOUTME: Covers contains, exact and regex modes, negation and run boundaries

package songlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"songlist/playlist"
)

func TestMatchText(t *testing.T) {
	tests := []struct {
		name     string
		haystack string
		needle   string
		exact    bool
		want     bool
	}{
		{"contains middle", "Subtle", "btl", false, true},
		{"contains ignores case", "Subtle", "SUB", false, true},
		{"contains tail", "Subtle", "tle", false, true},
		{"needle restart does not retry the mismatched char", "Subtle", "stl", false, false},
		{"overlapping prefix is missed", "aab", "ab", false, false},
		{"exact equal ignoring case", "Abba", "aBBA", true, true},
		{"exact rejects prefix", "Abba", "AB", true, false},
		{"exact rejects longer needle", "Ab", "Abba", true, false},
		{"contains prefix", "Abba", "AB", false, true},
		{"needle longer than haystack", "ab", "abc", false, false},
		{"empty needle contains", "anything", "", false, false},
		{"empty needle exact on empty", "", "", true, true},
		{"empty needle exact on text", "x", "", true, false},
		{"unicode case folding", "Björk", "BJÖRK", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matchText(tt.haystack, tt.needle, tt.exact))
		})
	}
}

func newTrack(path, artist, title, album string) *playlist.Track {
	t := playlist.NewTrack(path)
	t.Artist = artist
	t.Title = title
	t.Album = album

	return t
}

func TestMatchTrackFieldsAndNegation(t *testing.T) {
	tr := newTrack("x.mp3", "Muse", "Uprising", "The Resistance")

	assert.True(t, MatchTrack(tr, NewQuery("muse", Contains)))
	assert.True(t, MatchTrack(tr, NewQuery("muse", Contains, playlist.FieldArtist)))
	assert.False(t, MatchTrack(tr, NewQuery("muse", Contains, playlist.FieldTitle, playlist.FieldAlbum)))

	negated := NewQuery("muse", Contains, playlist.FieldArtist, playlist.FieldTitle)
	negated.Negate = true
	assert.False(t, MatchTrack(tr, negated), "a negated query fails when any field matches")

	negated = NewQuery("radiohead", Contains, playlist.FieldArtist, playlist.FieldTitle)
	negated.Negate = true
	assert.True(t, MatchTrack(tr, negated))

	assert.False(t, MatchTrack(nil, NewQuery("muse", Contains)))
}

func TestMatchTrackNegatedExactArtist(t *testing.T) {
	q := NewQuery("Muse", Exact, playlist.FieldArtist)
	q.Negate = true

	assert.False(t, MatchTrack(newTrack("x.mp3", "Muse", "Uprising", ""), q), "the only field matched")
	assert.True(t, MatchTrack(newTrack("y.mp3", "Radiohead", "Muse", ""), q), "other fields are not consulted")
}

func TestMatchTrackRegex(t *testing.T) {
	tr := newTrack("x.mp3", "Muse", "Uprising", "The Resistance")

	assert.True(t, MatchTrack(tr, NewQuery("^up.*ing$", Regex, playlist.FieldTitle)))
	assert.False(t, MatchTrack(tr, NewQuery("^rising", Regex, playlist.FieldTitle)))
	assert.False(t, MatchTrack(tr, NewQuery("(unclosed", Regex)), "a malformed pattern matches nothing")
}

func TestSearchMode(t *testing.T) {
	assert.Equal(t, Regex, SearchMode(true))
	assert.Equal(t, Contains, SearchMode(false))
	assert.Equal(t, "exact", Exact.String())
}

func albumList(albums ...string) *Songlist {
	s := New(RolePlaylist, "albums.m3u8")
	for i, a := range albums {
		s.Append(newTrack(string(rune('a'+i)), "", "", a))
	}

	return s
}

func TestScanWrapsAndClamps(t *testing.T) {
	s := albumList("X", "Y", "X", "Z")
	q := NewQuery("x", Exact, playlist.FieldAlbum)

	i, ok := s.Scan(q, 1, 0)
	require.True(t, ok)
	assert.Equal(t, 2, i)

	i, ok = s.Scan(q, 3, 1)
	require.True(t, ok)
	assert.Equal(t, 0, i, "scan wraps past the end")

	i, ok = s.Scan(q, 99, 0)
	require.True(t, ok)
	assert.Equal(t, 0, i, "an out-of-range start clamps to the last index")

	_, ok = s.Scan(q, -1, 99)
	assert.False(t, ok, "both bounds clamp to the last index, which is the only candidate")

	_, ok = s.Scan(NewQuery("w", Exact, playlist.FieldAlbum), 0, 3)
	assert.False(t, ok)

	_, ok = New(RolePlaylist, "").Scan(q, 0, 0)
	assert.False(t, ok)
}

func TestScanReverse(t *testing.T) {
	s := albumList("X", "Y", "X", "Z")
	q := NewQuery("x", Exact, playlist.FieldAlbum)
	q.Reverse = true

	// Reverse swaps the bounds: walk from 1 back to 3 through 0
	i, ok := s.Scan(q, 3, 1)
	require.True(t, ok)
	assert.Equal(t, 0, i)

	i, ok = s.Scan(q, 2, 1)
	require.True(t, ok)
	assert.Equal(t, 0, i)
}

func TestSearchStartsAfterCursor(t *testing.T) {
	s := albumList("X", "Y", "X", "Z")
	q := NewQuery("x", Exact, playlist.FieldAlbum)

	s.SetCursor(0)
	i, ok := s.Search(q)
	require.True(t, ok)
	assert.Equal(t, 2, i)

	s.SetCursor(2)
	i, ok = s.Search(q)
	require.True(t, ok)
	assert.Equal(t, 0, i)

	rev := NewQuery("x", Exact, playlist.FieldAlbum)
	rev.Reverse = true
	s.SetCursor(3)
	i, ok = s.Search(rev)
	require.True(t, ok)
	assert.Equal(t, 2, i)

	// The cursor track is the last candidate
	only := albumList("X", "Y")
	only.SetCursor(0)
	i, ok = only.Search(NewQuery("x", Exact, playlist.FieldAlbum))
	require.True(t, ok)
	assert.Equal(t, 0, i)
}

func TestSearchAll(t *testing.T) {
	s := albumList("X", "Y", "X", "Z")

	assert.Equal(t, []int{0, 2}, s.SearchAll(NewQuery("x", Exact, playlist.FieldAlbum)))
	assert.Nil(t, s.SearchAll(NewQuery("nothing", Contains)))
}

func TestFieldJumps(t *testing.T) {
	s := albumList("A", "A", "B", "B", "C")

	tests := []struct {
		name    string
		cursor  int
		reverse bool
		want    int
	}{
		{"next from middle of run", 3, false, 4},
		{"next from start", 0, false, 2},
		{"next from last run wraps", 4, false, 0},
		{"prev from second run", 3, true, 0},
		{"prev from first track of run", 2, true, 0},
		{"prev from first run wraps to last run", 0, true, 4},
		{"prev from last run", 4, true, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.SetCursor(tt.cursor)

			var (
				got int
				ok  bool
			)

			if tt.reverse {
				got, ok = s.FindPrevOf(playlist.FieldAlbum)
			} else {
				got, ok = s.FindNextOf(playlist.FieldAlbum)
			}

			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFieldJumpSingleValue(t *testing.T) {
	s := albumList("A", "A", "A")
	s.SetCursor(1)

	_, ok := s.FindNextOf(playlist.FieldAlbum)
	assert.False(t, ok)

	_, ok = s.FindPrevOf(playlist.FieldAlbum)
	assert.False(t, ok)
}

func TestFieldJumpEmptyListPanics(t *testing.T) {
	s := New(RolePlaylist, "")

	assert.Panics(t, func() { s.FindNextOf(playlist.FieldAlbum) })

	_, ok := s.NextOf("album", Forward)
	assert.False(t, ok, "the token form guards the empty list")
}

func TestNextOfToken(t *testing.T) {
	s := albumList("A", "A", "B")
	s.SetCursor(0)

	i, ok := s.NextOf("album", Forward)
	require.True(t, ok)
	assert.Equal(t, 2, i)

	i, ok = s.NextOf("album", Backward)
	require.True(t, ok)
	assert.Equal(t, 2, i)

	_, ok = s.NextOf("nope", Forward)
	assert.False(t, ok)
}
