// ABOUTME: Next, previous and random track selection relative to the playing track
// ABOUTME: Also computes the cached duration of the tracks left after the playing one

package songlist

import (
	"time"

	"songlist/playlist"
)

// Direction is a step through the list
type Direction int

const (
	Forward  Direction = 1
	Backward Direction = -1
)

// RandMax bounds a single random draw, matching a 31-bit C rand()
const RandMax = 1<<31 - 1

// Next returns the track one step from current in dir. Without a current track
// the first track is returned. Stepping off either end wraps when repeat is set
// and reports not found otherwise.
func (s *Songlist) Next(dir Direction, current *playlist.Track, repeat bool) (*playlist.Track, int, bool) {
	if len(s.tracks) == 0 {
		return nil, playlist.NoPos, false
	}

	if current == nil {
		return s.tracks[0], 0, true
	}

	// An unknown current track behaves as if it sat just before the start
	i, ok := s.FindTrack(current)
	if !ok {
		i = -1
	}

	i += int(dir)
	if i < 0 || i >= len(s.tracks) {
		switch {
		case !repeat:
			return nil, playlist.NoPos, false
		case i < 0:
			i = len(s.tracks) - 1
		default:
			i = 0
		}
	}

	return s.tracks[i], i, s.tracks[i] != nil
}

// Prev is Next in the backward direction
func (s *Songlist) Prev(current *playlist.Track, repeat bool) (*playlist.Track, int, bool) {
	return s.Next(Backward, current, repeat)
}

// Random returns a uniformly drawn track. Draws are accumulated until they cover
// the list length and then reduced modulo it. Landing on current falls back to
// the previous track with wraparound.
func (s *Songlist) Random(current *playlist.Track) (*playlist.Track, int, bool) {
	n := uint64(len(s.tracks))
	if n == 0 {
		return nil, playlist.NoPos, false
	}

	var acc, processed uint64
	for processed < n {
		acc += uint64(s.rng.Int32())
		processed += RandMax
	}

	i := int(acc % n)
	t := s.tracks[i]

	if current != nil && t != nil && s.sameTrack(t, current) {
		return s.Next(Backward, current, true)
	}

	return t, i, t != nil
}

// sameTrack applies the role's identity rule
func (s *Songlist) sameTrack(a, b *playlist.Track) bool {
	if a == b {
		return true
	}

	if s.role == RoleQueue && a.ID != playlist.NoID {
		return a.ID == b.ID
	}

	return a.Path == b.Path
}

// RemainingDuration returns the total known duration of the tracks after current.
// Without a playing queue entry it is the whole list's duration. The result is
// cached until the current track, the list size or the order changes.
func (s *Songlist) RemainingDuration(current *playlist.Track) time.Duration {
	d, _ := s.remainingAfter(current)

	return d
}

// RemainingCount returns how many tracks follow current
func (s *Songlist) RemainingCount(current *playlist.Track) int {
	_, n := s.remainingAfter(current)

	return n
}

func (s *Songlist) remainingAfter(current *playlist.Track) (time.Duration, int) {
	if current == nil || current.ID == playlist.NoID || current.Pos < 0 {
		return s.duration, len(s.tracks)
	}

	c := &s.remaining
	if c.valid && c.id == current.ID && c.size == len(s.tracks) && c.generation == s.generation {
		return c.duration, c.count
	}

	*c = remainingCache{
		valid:      true,
		id:         current.ID,
		size:       len(s.tracks),
		generation: s.generation,
	}

	for i := current.Pos + 1; i < len(s.tracks); i++ {
		t := s.tracks[i]
		if t == nil {
			continue
		}

		if t.HasDuration() {
			c.duration += t.Duration
		}

		c.count++
	}

	return c.duration, c.count
}
