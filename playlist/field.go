// ABOUTME: Field table mapping each track attribute to its token, header, width and accessor
// ABOUTME: Shared by matching, sorting and column layout so per-field logic lives in one place

package playlist

import (
	"strconv"
	"strings"
	"time"
)

// FieldID identifies a track attribute
type FieldID int

// Track attributes in declaration order. FieldNum and FieldQueueID are pseudo-fields
// derived from the track's place in its list rather than from its tags.
const (
	FieldNum FieldID = iota
	FieldFile
	FieldArtist
	FieldArtistSort
	FieldAlbumArtist
	FieldAlbumArtistSort
	FieldTitle
	FieldAlbum
	FieldTrack
	FieldTrackShort
	FieldLength
	FieldDate
	FieldYear
	FieldName
	FieldGenre
	FieldComposer
	FieldPerformer
	FieldDisc
	FieldComment
	FieldQueueID
	fieldCount
)

// FieldKind selects the comparator used when sorting by a field
type FieldKind int

const (
	KindText     FieldKind = iota // case-folded or byte-wise string compare
	KindNumeric                   // leading integer, unparsable compares as zero
	KindRaw                       // raw string compare, never case-folded
	KindDuration                  // duration scalar
	KindPseudo                    // positional, not sortable
)

// FieldInfo describes one field
type FieldInfo struct {
	Token  string
	Header string
	MinLen int // Minimum column width, 0 means the column is flexible
	Kind   FieldKind

	value   func(*Track) string // value used for matching and comparison
	display func(*Track) string // rendered cell text, defaults to value
}

// Fields is indexed by FieldID
var Fields = [fieldCount]FieldInfo{
	FieldNum: {
		Token: "num", Header: "#", MinLen: 5, Kind: KindPseudo,
		value:   func(t *Track) string { return strconv.Itoa(t.Pos) },
		display: func(t *Track) string { return strconv.Itoa(t.Pos + 1) },
	},
	FieldFile:            {Token: "file", Header: "Filename", Kind: KindText, value: func(t *Track) string { return t.Path }},
	FieldArtist:          {Token: "artist", Header: "Artist", Kind: KindText, value: func(t *Track) string { return t.Artist }},
	FieldArtistSort:      {Token: "artistsort", Header: "Artist sort", Kind: KindText, value: func(t *Track) string { return t.ArtistSort }},
	FieldAlbumArtist:     {Token: "albumartist", Header: "Album artist", Kind: KindText, value: func(t *Track) string { return t.AlbumArtist }},
	FieldAlbumArtistSort: {Token: "albumartistsort", Header: "Album artist sort", Kind: KindText, value: func(t *Track) string { return t.AlbumArtistSort }},
	FieldTitle:           {Token: "title", Header: "Title", Kind: KindText, value: (*Track).DisplayTitle},
	FieldAlbum:           {Token: "album", Header: "Album", Kind: KindText, value: func(t *Track) string { return t.Album }},
	FieldTrack:           {Token: "track", Header: "Track", MinLen: 6, Kind: KindNumeric, value: func(t *Track) string { return t.Track }},
	FieldTrackShort:      {Token: "trackshort", Header: "No", MinLen: 3, Kind: KindNumeric, value: func(t *Track) string { return t.TrackShort }},
	FieldLength: {
		Token: "length", Header: "Length", MinLen: 7, Kind: KindDuration,
		value: func(t *Track) string { return FormatDuration(t.Duration) },
	},
	FieldDate:      {Token: "date", Header: "Date", MinLen: 11, Kind: KindRaw, value: func(t *Track) string { return t.Date }},
	FieldYear:      {Token: "year", Header: "Year", MinLen: 5, Kind: KindRaw, value: func(t *Track) string { return t.Year }},
	FieldName:      {Token: "name", Header: "Name", Kind: KindText, value: func(t *Track) string { return t.Name }},
	FieldGenre:     {Token: "genre", Header: "Genre", Kind: KindText, value: func(t *Track) string { return t.Genre }},
	FieldComposer:  {Token: "composer", Header: "Composer", Kind: KindText, value: func(t *Track) string { return t.Composer }},
	FieldPerformer: {Token: "performer", Header: "Performer", Kind: KindText, value: func(t *Track) string { return t.Performer }},
	FieldDisc:      {Token: "disc", Header: "Disc", MinLen: 5, Kind: KindNumeric, value: func(t *Track) string { return t.Disc }},
	FieldComment:   {Token: "comment", Header: "Comment", Kind: KindText, value: func(t *Track) string { return t.Comment }},
	FieldQueueID: {
		Token: "id", Header: "ID", MinLen: 5, Kind: KindPseudo,
		value: func(t *Track) string { return strconv.Itoa(t.ID) },
	},
}

// tokenAliases are accepted in addition to each field's own token
var tokenAliases = map[string]FieldID{
	"pos":  FieldNum,
	"time": FieldLength,
}

// MatchOrder is the global priority in which a track's fields are tried during a search.
// Fields most likely to be searched come first, positional pseudo-fields last.
var MatchOrder = []FieldID{
	FieldTitle,
	FieldArtist,
	FieldAlbumArtist,
	FieldComposer,
	FieldPerformer,
	FieldAlbum,
	FieldGenre,
	FieldDate,
	FieldComment,
	FieldTrackShort,
	FieldTrack,
	FieldDisc,
	FieldName,
	FieldFile,
	FieldArtistSort,
	FieldAlbumArtistSort,
	FieldYear,
	FieldLength,
	FieldQueueID,
	FieldNum,
}

// LookupField resolves a configuration token such as "artist" or "time"
func LookupField(token string) (FieldID, bool) {
	token = strings.ToLower(strings.TrimSpace(token))
	if id, ok := tokenAliases[token]; ok {
		return id, true
	}

	for i := range Fields {
		if Fields[i].Token == token {
			return FieldID(i), true
		}
	}

	return 0, false
}

// ParseFieldList splits a space or comma separated token list, dropping unknown tokens
func ParseFieldList(s string) []FieldID {
	tokens := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})

	ids := make([]FieldID, 0, len(tokens))
	for _, tok := range tokens {
		if id, ok := LookupField(tok); ok {
			ids = append(ids, id)
		}
	}

	return ids
}

// Info returns the table entry for id
func (id FieldID) Info() FieldInfo {
	return Fields[id]
}

func (id FieldID) String() string {
	if id < 0 || id >= fieldCount {
		return "field(" + strconv.Itoa(int(id)) + ")"
	}

	return Fields[id].Token
}

// Sortable reports whether the field has a comparator
func (id FieldID) Sortable() bool {
	return id >= 0 && id < fieldCount && Fields[id].Kind != KindPseudo
}

// Value returns the field's text used for matching
func (id FieldID) Value(t *Track) string {
	return Fields[id].value(t)
}

// Display returns the field's rendered cell text
func (id FieldID) Display(t *Track) string {
	if f := Fields[id].display; f != nil {
		return f(t)
	}

	return Fields[id].value(t)
}

// Compare orders a and b by the field. Nil tracks sort before any concrete track.
func (id FieldID) Compare(a, b *Track, ignoreCase bool) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	switch Fields[id].Kind {
	case KindNumeric:
		return compareInts(atoi(id.Value(a)), atoi(id.Value(b)))
	case KindDuration:
		return compareInts(int64(a.Duration), int64(b.Duration))
	case KindRaw:
		return strings.Compare(id.Value(a), id.Value(b))
	case KindPseudo:
		return 0
	default:
		if ignoreCase {
			return FoldCompare(id.Value(a), id.Value(b))
		}

		return strings.Compare(id.Value(a), id.Value(b))
	}
}

// FoldCompare compares two strings byte by byte after ASCII lowercasing.
// A string that is a prefix of the other sorts first.
func FoldCompare(a, b string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		ca, cb := lower(a[i]), lower(b[i])
		if ca != cb {
			if ca < cb {
				return -1
			}

			return 1
		}
	}

	return compareInts(len(a), len(b))
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}

	return c
}

// atoi parses a leading integer the way C's atoi does: "3/12" is 3, "x" is 0
func atoi(s string) int {
	s = strings.TrimLeft(s, " \t")
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}

	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}

	return n
}

func compareInts[T int | int64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// FormatDuration renders a track length as m:ss, or h:mm:ss from an hour up.
// Unknown durations render as an empty string.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		return ""
	}

	total := int(d / time.Second)
	h, m, s := total/3600, (total/60)%60, total%60

	if h > 0 {
		return strconv.Itoa(h) + ":" + pad2(m) + ":" + pad2(s)
	}

	return strconv.Itoa(m) + ":" + pad2(s)
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}

	return strconv.Itoa(n)
}
