// ABOUTME: Multi-key sort over a Songlist using the per-field comparators
// ABOUTME: Keys are applied in turn with stable passes, so the last key ends up most significant

package songlist

import (
	"slices"

	"songlist/playlist"
)

// Sort orders the list by a space or comma separated list of field tokens such
// as "track disc album artist". Unknown and unsortable tokens are skipped.
// Returns false when keys is empty.
func (s *Songlist) Sort(keys string, ignoreCase bool) bool {
	if keys == "" {
		return false
	}

	s.SortFields(playlist.ParseFieldList(keys), ignoreCase)

	return true
}

// SortFields applies each key in turn over the whole list. The first applied key
// uses an unstable sort and every later key a stable one, so each pass keeps the
// order of the previous passes among tracks it considers equal. The last key is
// therefore the primary order. Positions are renumbered afterwards.
func (s *Songlist) SortFields(keys []playlist.FieldID, ignoreCase bool) {
	first := true

	for _, key := range keys {
		if !key.Sortable() {
			continue
		}

		cmp := func(a, b *playlist.Track) int {
			return key.Compare(a, b, ignoreCase)
		}

		if first {
			slices.SortFunc(s.tracks, cmp)
			first = false
		} else {
			slices.SortStableFunc(s.tracks, cmp)
		}
	}

	s.renumber(0)
	s.touch()
}
