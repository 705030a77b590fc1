// ABOUTME: Handles reading and writing M3U/M3U8 playlist files
// ABOUTME: Loads playlists with tag metadata in parallel and saves lists back to disk

// Package playlist handles M3U8 playlist files and music metadata.
// It reads playlists, extracts metadata directly from audio file tags (ID3, Vorbis, etc.),
// and describes every track field through a single table used for display, search and sort.
package playlist

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"songlist/pool"
)

// ErrEmptyPlaylist is returned when a playlist holds no tracks
var ErrEmptyPlaylist = errors.New("playlist is empty")

const extinfPrefix = "#EXTINF:"

// ReadPlaylist reads an M3U8 playlist file without touching the audio files.
// #EXTINF lines seed the duration, artist and title of the path that follows them.
func ReadPlaylist(path string) ([]*Track, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open playlist: %w", err)
	}

	defer func() {
		_ = file.Close() // Explicitly ignore error for read-only file
	}()

	var (
		tracks  []*Track
		pending *Track
	)

	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(line, extinfPrefix) {
			pending = parseExtinf(line)

			continue
		}

		// Skip empty lines and other comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		t := NewTrack(line)
		if pending != nil {
			t.Duration = pending.Duration
			t.Artist = pending.Artist
			t.Title = pending.Title
			pending = nil
		}

		t.Pos = len(tracks)
		tracks = append(tracks, t)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading playlist: %w", err)
	}

	return tracks, nil
}

// parseExtinf parses "#EXTINF:<seconds>,<artist> - <title>"
func parseExtinf(line string) *Track {
	t := &Track{Duration: UnknownDuration}

	body := strings.TrimPrefix(line, extinfPrefix)
	secs, info, _ := strings.Cut(body, ",")

	// Attributes such as tvg-id may follow the duration
	secs, _, _ = strings.Cut(strings.TrimSpace(secs), " ")
	if n, err := strconv.Atoi(secs); err == nil && n >= 0 {
		t.Duration = time.Duration(n) * time.Second
	}

	if artist, title, ok := strings.Cut(info, " - "); ok {
		t.Artist = strings.TrimSpace(artist)
		t.Title = strings.TrimSpace(title)
	} else {
		t.Title = strings.TrimSpace(info)
	}

	return t
}

// LoadOptions controls how LoadPlaylistWithMetadata treats the audio files
type LoadOptions struct {
	SkipUnreadable bool                  // Drop tracks whose tags cannot be read
	Progress       func(done, total int) // Called after each track, may be nil
	Debugf         func(format string, args ...interface{})
}

// LoadPlaylistWithMetadata reads a playlist and fetches tag metadata for each track.
// Tags are read in parallel; the result keeps playlist order. Tracks whose tags
// cannot be read keep their #EXTINF data unless SkipUnreadable is set.
func LoadPlaylistWithMetadata(path string, opts LoadOptions) ([]*Track, error) {
	tracks, err := ReadPlaylist(path)
	if err != nil {
		return nil, err
	}

	baseDir := filepath.Dir(path)
	loaded := make([]*Track, len(tracks))
	failed := make([]bool, len(tracks))

	var (
		mu   sync.Mutex
		done int
	)

	pool.Each(len(tracks), 0, func(i int) {
		t := tracks[i]
		metadata, err := GetTrackMetadata(t.Path, baseDir)

		mu.Lock()
		defer mu.Unlock()

		if err != nil {
			failed[i] = true
			loaded[i] = t

			if opts.Debugf != nil {
				opts.Debugf("[LOAD] Could not read tags for %s: %v", t.Path, err)
			}
		} else {
			// Playlist-supplied length wins since tags rarely carry one
			metadata.Duration = t.Duration
			loaded[i] = metadata
		}

		done++
		if opts.Progress != nil {
			opts.Progress(done, len(tracks))
		}
	})

	result := make([]*Track, 0, len(loaded))
	for i, t := range loaded {
		if failed[i] && opts.SkipUnreadable {
			continue
		}

		t.Pos = len(result)
		result = append(result, t)
	}

	return result, nil
}

// WritePlaylist writes tracks to an M3U8 playlist file with #EXTINF lines.
// Creates a backup (.bak) of the existing file before overwriting.
func WritePlaylist(path string, tracks []*Track) (err error) {
	if _, statErr := os.Stat(path); statErr == nil {
		backupPath := path + ".bak"
		if err := os.Rename(path, backupPath); err != nil {
			return fmt.Errorf("failed to create backup: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create playlist: %w", err)
	}

	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close playlist file: %w", closeErr)
		}
	}()

	writer := bufio.NewWriter(file)
	if _, err := writer.WriteString("#EXTM3U\n"); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, track := range tracks {
		if track == nil {
			continue
		}

		if _, err := writer.WriteString(extinfLine(track) + track.Path + "\n"); err != nil {
			return fmt.Errorf("failed to write track: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush writer: %w", err)
	}

	return nil
}

// extinfLine returns the #EXTINF line for a track, or "" when there is nothing to say
func extinfLine(t *Track) string {
	if !t.HasDuration() && t.Artist == "" && t.Title == "" {
		return ""
	}

	secs := -1
	if t.HasDuration() {
		secs = int(t.Duration / time.Second)
	}

	info := t.Title
	if t.Artist != "" {
		info = t.Artist + " - " + t.Title
	} else if strings.Contains(t.Title, " - ") {
		// an empty artist keeps the separator so the title is not split on read
		info = " - " + t.Title
	}

	return fmt.Sprintf("%s%d,%s\n", extinfPrefix, secs, info)
}
