// ABOUTME: Case-insensitive multi-field matching and circular scans over a Songlist
// ABOUTME: Implements search plus the jump to the next or previous distinct field value

package songlist

import (
	"fmt"
	"regexp"
	"slices"
	"unicode"

	"songlist/playlist"
)

// CompareMode selects the single-field matcher
type CompareMode int

const (
	// Contains walks the haystack once, advancing through the needle on each
	// matching character and restarting the needle on any mismatch. The character
	// that caused the mismatch is not retried against the first needle character,
	// so "aab" does not contain "ab".
	Contains CompareMode = iota
	// Exact requires the whole haystack to equal the needle, ignoring case.
	Exact
	// Regex treats the needle as a case-insensitive regular expression.
	Regex
)

func (m CompareMode) String() string {
	switch m {
	case Contains:
		return "contains"
	case Exact:
		return "exact"
	case Regex:
		return "regex"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// SearchMode is the mode interactive searches use
func SearchMode(regexEnabled bool) CompareMode {
	if regexEnabled {
		return Regex
	}

	return Contains
}

// Query is one match request. It is compiled on first use, so build a new
// Query rather than editing one that has already been matched.
type Query struct {
	Needle  string
	Fields  []playlist.FieldID // fields to search, nil means every field
	Mode    CompareMode
	Negate  bool // succeed only when no selected field matches
	Reverse bool // scan backwards

	compiled bool
	sources  []playlist.FieldID
	re       *regexp.Regexp
}

// NewQuery returns a forward, normal-polarity query
func NewQuery(needle string, mode CompareMode, fields ...playlist.FieldID) *Query {
	return &Query{Needle: needle, Mode: mode, Fields: fields}
}

// compile orders the selected fields by match priority and builds the regexp.
// A malformed pattern leaves re nil, which matches nothing.
func (q *Query) compile() {
	if q.compiled {
		return
	}

	q.compiled = true
	q.sources = q.sources[:0]

	for _, id := range playlist.MatchOrder {
		if q.Fields == nil || slices.Contains(q.Fields, id) {
			q.sources = append(q.sources, id)
		}
	}

	if q.Mode == Regex {
		re, err := regexp.Compile("(?i)" + q.Needle)
		if err == nil {
			q.re = re
		}
	}
}

// MatchTrack evaluates q against one track. Fields are tried in priority order;
// a normal query succeeds on the first matching field, a negated query succeeds
// only when none of them match.
func MatchTrack(t *playlist.Track, q *Query) bool {
	if t == nil {
		return false
	}

	q.compile()

	for _, id := range q.sources {
		if q.matchField(id.Value(t)) {
			return !q.Negate
		}
	}

	return q.Negate
}

func (q *Query) matchField(haystack string) bool {
	switch q.Mode {
	case Exact:
		return matchText(haystack, q.Needle, true)
	case Regex:
		return q.re != nil && q.re.MatchString(haystack)
	default:
		return matchText(haystack, q.Needle, false)
	}
}

// matchText compares haystack and needle with both sides upper-cased. It fails
// as soon as the haystack left is shorter than the needle left.
func matchText(haystack, needle string, exact bool) bool {
	h := []rune(haystack)
	n := []rune(needle)

	matched := exact
	i, j := 0, 0

	for ; i < len(h) && j < len(n); i++ {
		if len(h)-i < len(n)-j {
			return false
		}

		switch {
		case unicode.ToUpper(h[i]) == unicode.ToUpper(n[j]):
			matched = true
			j++
		case exact:
			return false
		default:
			matched = false
			j = 0
		}
	}

	if j != len(n) {
		return false
	}

	if exact && i != len(h) {
		return false
	}

	return matched
}

// Scan walks the list circularly from from to to, inclusive, and returns the
// first matching index. Out-of-range bounds clamp to the last index. A reverse
// query swaps the bounds and walks backwards. Empty slots are skipped.
func (s *Songlist) Scan(q *Query, from, to int) (int, bool) {
	n := len(s.tracks)
	if n == 0 {
		return playlist.NoPos, false
	}

	if from < 0 || from >= n {
		from = n - 1
	}

	if to < 0 || to >= n {
		to = n - 1
	}

	step := 1
	if q.Reverse {
		from, to = to, from
		step = -1
	}

	for i := from; ; i += step {
		switch {
		case i < 0:
			i = n - 1
		case i >= n:
			i = 0
		}

		if t := s.tracks[i]; t != nil && MatchTrack(t, q) {
			return i, true
		}

		if i == to {
			return playlist.NoPos, false
		}
	}
}

// Search looks for q starting just past the cursor and ending on it, so the
// cursor track is the last candidate in either direction.
func (s *Songlist) Search(q *Query) (int, bool) {
	n := len(s.tracks)
	if n == 0 {
		return playlist.NoPos, false
	}

	if q.Reverse {
		return s.Scan(q, s.cursor, (s.cursor-1+n)%n)
	}

	return s.Scan(q, (s.cursor+1)%n, s.cursor)
}

// SearchAll returns every position matching q in list order
func (s *Songlist) SearchAll(q *Query) []int {
	var positions []int

	for i, t := range s.tracks {
		if t != nil && MatchTrack(t, q) {
			positions = append(positions, i)
		}
	}

	return positions
}

// FindNextOf returns the first track after the cursor whose field value differs
// from the cursor track's. It panics when the list is empty.
func (s *Songlist) FindNextOf(field playlist.FieldID) (int, bool) {
	return s.findEntry(field, false)
}

// FindPrevOf returns the first track of the run before the cursor track's run,
// where a run is consecutive tracks sharing the field value. It panics when the
// list is empty.
func (s *Songlist) FindPrevOf(field playlist.FieldID) (int, bool) {
	return s.findEntry(field, true)
}

// NextOf resolves a field token and calls FindNextOf or FindPrevOf.
// Empty or unknown tokens find nothing.
func (s *Songlist) NextOf(token string, dir Direction) (int, bool) {
	field, ok := playlist.LookupField(token)
	if !ok || s.Len() == 0 {
		return playlist.NoPos, false
	}

	return s.findEntry(field, dir == Backward)
}

func (s *Songlist) findEntry(field playlist.FieldID, reverse bool) (int, bool) {
	cur := s.CursorTrack()
	if cur == nil {
		panic("songlist: field jump needs a cursor track")
	}

	differs := func(t *playlist.Track) *Query {
		return &Query{
			Needle:  field.Value(t),
			Fields:  []playlist.FieldID{field},
			Mode:    Exact,
			Negate:  true,
			Reverse: reverse,
		}
	}

	i, ok := s.Scan(differs(cur), s.cursor, s.cursor-1)
	if !ok || !reverse {
		return i, ok
	}

	// Walking backwards lands on the last track of the previous run;
	// scan past that run and step forward onto its first track.
	i, ok = s.Scan(differs(s.tracks[i]), i, i-1)
	if !ok {
		return playlist.NoPos, false
	}

	if i++; i == len(s.tracks) {
		i = 0
	}

	return i, true
}
