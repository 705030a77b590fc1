// ABOUTME: Defines the Track struct and metadata fetching directly from audio files
// ABOUTME: Reads file tags for title, artist, album, sort names, numbering and comments

package playlist

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dhowden/tag"
)

// Sentinels for tracks that are not backed by a live queue or whose length is unknown.
const (
	NoID            = -1
	NoPos           = -1
	UnknownDuration = time.Duration(-1)
)

// Track represents one music item with the descriptive fields used for display, search and sort
type Track struct {
	ID  int // Queue identifier (NoID outside a live queue)
	Pos int // Zero-based position in the owning list (NoPos when untracked)

	Path            string // File path as written in the playlist, always present
	Title           string
	Artist          string
	AlbumArtist     string
	ArtistSort      string
	AlbumArtistSort string
	Album           string
	Track           string // Full track number as tagged (e.g., "3/12")
	TrackShort      string // Track number without the total (e.g., "3")
	Date            string
	Year            string
	Name            string // Stream or display name, used when there is no title
	Genre           string
	Composer        string
	Performer       string
	Disc            string
	Comment         string

	Duration time.Duration // UnknownDuration when not known
	Selected bool
}

// NewTrack returns an untracked track for path with unknown duration
func NewTrack(path string) *Track {
	return &Track{
		ID:       NoID,
		Pos:      NoPos,
		Path:     path,
		Duration: UnknownDuration,
	}
}

// HasDuration reports whether the track carries a known duration
func (t *Track) HasDuration() bool {
	return t.Duration >= 0
}

// Clone returns a copy of the track that shares no state with the original
func (t *Track) Clone() *Track {
	c := *t

	return &c
}

// DisplayTitle returns the title, falling back to the name and then the file path
func (t *Track) DisplayTitle() string {
	switch {
	case t.Title != "":
		return t.Title
	case t.Name != "":
		return t.Name
	default:
		return t.Path
	}
}

// raw tag keys for fields the tag library does not expose directly
var (
	artistSortKeys      = []string{"TSOP", "artistsort", "ARTISTSORT", "soar"}
	albumArtistSortKeys = []string{"TSO2", "albumartistsort", "ALBUMARTISTSORT", "soaa"}
	performerKeys       = []string{"TPE3", "performer", "PERFORMER"}
	dateKeys            = []string{"TDRC", "TYER", "date", "DATE"}
)

// GetTrackMetadata fetches metadata for a track by reading the file directly.
// The trackPath can be absolute or relative. Relative paths are resolved against
// the provided baseDir (typically the playlist's directory).
func GetTrackMetadata(trackPath string, baseDir string) (*Track, error) {
	fullPath := trackPath
	if !filepath.IsAbs(trackPath) && baseDir != "" {
		fullPath = filepath.Join(baseDir, trackPath)
	}

	file, err := os.Open(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	metadata, err := tag.ReadFrom(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}

	t := NewTrack(trackPath)
	t.Title = metadata.Title()
	t.Artist = metadata.Artist()
	t.AlbumArtist = metadata.AlbumArtist()
	t.Album = metadata.Album()
	t.Composer = metadata.Composer()
	t.Genre = metadata.Genre()
	t.Comment = metadata.Comment()

	if n, total := metadata.Track(); n > 0 {
		t.TrackShort = strconv.Itoa(n)
		t.Track = t.TrackShort
		if total > 0 {
			t.Track = fmt.Sprintf("%d/%d", n, total)
		}
	}

	if n, _ := metadata.Disc(); n > 0 {
		t.Disc = strconv.Itoa(n)
	}

	if year := metadata.Year(); year > 0 {
		t.Year = strconv.Itoa(year)
	}

	raw := metadata.Raw()
	t.ArtistSort = rawString(raw, artistSortKeys)
	t.AlbumArtistSort = rawString(raw, albumArtistSortKeys)
	t.Performer = rawString(raw, performerKeys)
	t.Date = rawString(raw, dateKeys)

	if t.Date == "" {
		t.Date = t.Year
	}

	// Untagged files still get something readable in the title column
	if t.Title == "" {
		t.Title = filepath.Base(trackPath)
	}

	return t, nil
}

// rawString returns the first non-empty string value found under any of keys
func rawString(raw map[string]interface{}, keys []string) string {
	if raw == nil {
		return ""
	}

	for _, key := range keys {
		val, exists := raw[key]
		if !exists {
			continue
		}

		switch v := val.(type) {
		case string:
			if v != "" {
				return v
			}
		case int:
			return strconv.Itoa(v)
		case fmt.Stringer:
			if s := v.String(); s != "" {
				return s
			}
		}
	}

	return ""
}

// String returns a formatted string representation of the track
func (t *Track) String() string {
	return fmt.Sprintf("%-30s - %s", t.Artist, t.DisplayTitle())
}
