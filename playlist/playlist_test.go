// ABOUTME: Tests for M3U8 playlist reading and writing
// ABOUTME: Verifies file I/O, #EXTINF handling, backups and metadata loading fallbacks

package playlist

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestReadPlaylistSkipsCommentsAndBlanks(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"bare paths", "a.mp3\nb.mp3\nc.mp3", []string{"a.mp3", "b.mp3", "c.mp3"}},
		{"comments between paths", "#EXTM3U\n# mixed by hand\na.mp3\n#PLAYLIST:ignored\nb.mp3\n", []string{"a.mp3", "b.mp3"}},
		{"blank and padded lines", "\n  a.mp3  \n\n\tb.mp3\n\n", []string{"a.mp3", "b.mp3"}},
		{"empty file", "", nil},
		{"header only", "#EXTM3U\n", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "list.m3u8", tt.content)

			tracks, err := ReadPlaylist(path)
			if err != nil {
				t.Fatalf("ReadPlaylist() error = %v", err)
			}

			if len(tracks) != len(tt.want) {
				t.Fatalf("ReadPlaylist() returned %d tracks, want %d", len(tracks), len(tt.want))
			}

			for i, track := range tracks {
				if track.Path != tt.want[i] || track.Pos != i {
					t.Errorf("Track %d = %s at %d, want %s at %d", i, track.Path, track.Pos, tt.want[i], i)
				}
			}
		})
	}
}

func TestReadPlaylistMissingFile(t *testing.T) {
	if _, err := ReadPlaylist(filepath.Join(t.TempDir(), "gone.m3u8")); err == nil {
		t.Error("Expected an error for a missing playlist")
	}
}

// paths builds untracked tracks for the given paths
func paths(p ...string) []*Track {
	tracks := make([]*Track, len(p))
	for i := range p {
		tracks[i] = NewTrack(p[i])
	}

	return tracks
}

// writeFile creates a file under dir and returns its path
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to create %s: %v", name, err)
	}

	return path
}

func TestReadPlaylistExtinf(t *testing.T) {
	path := writeFile(t, t.TempDir(), "extinf.m3u8", `#EXTM3U
#EXTINF:215,Calibre - Running
Calibre/Spill/02 Running.mp3
#EXTINF:-1,Just A Title
stream.mp3
plain.mp3
`)

	tracks, err := ReadPlaylist(path)
	if err != nil {
		t.Fatalf("ReadPlaylist() error = %v", err)
	}

	if len(tracks) != 3 {
		t.Fatalf("Expected 3 tracks, got %d", len(tracks))
	}

	if tracks[0].Artist != "Calibre" || tracks[0].Title != "Running" {
		t.Errorf("Track 0 = %q - %q, want Calibre - Running", tracks[0].Artist, tracks[0].Title)
	}

	if tracks[0].Duration != 215*time.Second {
		t.Errorf("Track 0 duration = %v, want 3m35s", tracks[0].Duration)
	}

	if tracks[1].HasDuration() {
		t.Errorf("Track 1 should have unknown duration, got %v", tracks[1].Duration)
	}

	if tracks[1].Title != "Just A Title" {
		t.Errorf("Track 1 title = %q, want %q", tracks[1].Title, "Just A Title")
	}

	if tracks[2].Title != "" || tracks[2].HasDuration() {
		t.Errorf("Track 2 should not inherit #EXTINF data, got %q %v", tracks[2].Title, tracks[2].Duration)
	}
}

func TestWritePlaylistBackup(t *testing.T) {
	path := writeFile(t, t.TempDir(), "list.m3u8", "old.mp3\n")

	if err := WritePlaylist(path, paths("new.mp3")); err != nil {
		t.Fatalf("WritePlaylist() error = %v", err)
	}

	backup, err := ReadPlaylist(path + ".bak")
	if err != nil {
		t.Fatalf("Failed to read backup: %v", err)
	}

	if len(backup) != 1 || backup[0].Path != "old.mp3" {
		t.Errorf("Backup should hold old.mp3, got %v", backup)
	}
}

func TestWritePlaylistMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no", "such", "dir", "list.m3u8")

	if err := WritePlaylist(path, paths("a.mp3")); err == nil {
		t.Error("Expected an error writing into a missing directory")
	}
}

func TestWriteThenRead(t *testing.T) {
	tracks := paths("Boards of Canada/Geogaddi/03 Music Is Math.flac", "untagged.mp3", "Autechre/Amber/01 Foil.flac")
	tracks[0].Artist = "Boards of Canada"
	tracks[0].Title = "Music Is Math"
	tracks[0].Duration = 321 * time.Second
	tracks[2].Title = "Foil"

	path := filepath.Join(t.TempDir(), "out.m3u8")
	if err := WritePlaylist(path, append(tracks, nil)); err != nil {
		t.Fatalf("WritePlaylist() error = %v", err)
	}

	got, err := ReadPlaylist(path)
	if err != nil {
		t.Fatalf("ReadPlaylist() error = %v", err)
	}

	if len(got) != len(tracks) {
		t.Fatalf("Read back %d tracks, want %d (nil entries are skipped)", len(got), len(tracks))
	}

	for i := range tracks {
		if got[i].Path != tracks[i].Path || got[i].Title != tracks[i].Title || got[i].Artist != tracks[i].Artist {
			t.Errorf("Track %d = %+v, want %+v", i, got[i], tracks[i])
		}
	}

	if got[0].Duration != 321*time.Second {
		t.Errorf("Track 0 duration = %v, want 5m21s", got[0].Duration)
	}

	if got[1].HasDuration() || got[2].HasDuration() {
		t.Error("Tracks written without a length should read back as unknown")
	}

	if err := WritePlaylist(path, nil); err != nil {
		t.Fatalf("WritePlaylist(nil) error = %v", err)
	}

	if empty, _ := ReadPlaylist(path); len(empty) != 0 {
		t.Errorf("Expected an empty playlist, got %d tracks", len(empty))
	}
}

func TestWriteThenReadTitleWithSeparator(t *testing.T) {
	tracks := paths("live.mp3", "studio.mp3")
	tracks[0].Title = "Intro - Live"
	tracks[0].Duration = time.Minute
	tracks[1].Artist = "Can"
	tracks[1].Title = "Mother Sky - Edit"

	path := filepath.Join(t.TempDir(), "out.m3u8")
	if err := WritePlaylist(path, tracks); err != nil {
		t.Fatal(err)
	}

	got, err := ReadPlaylist(path)
	if err != nil {
		t.Fatal(err)
	}

	if got[0].Artist != "" || got[0].Title != "Intro - Live" {
		t.Errorf("Track 0 read back as artist %q title %q, want no artist and title %q", got[0].Artist, got[0].Title, "Intro - Live")
	}

	if got[1].Artist != "Can" || got[1].Title != "Mother Sky - Edit" {
		t.Errorf("Track 1 read back as artist %q title %q", got[1].Artist, got[1].Title)
	}
}

// TestLoadPlaylistWithMetadata verifies unreadable files fall back to playlist data
func TestLoadPlaylistWithMetadata(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.mp3", "not really audio")
	writeFile(t, dir, "b.mp3", "not really audio either")

	path := writeFile(t, dir, "list.m3u8", `#EXTINF:60,Someone - First
a.mp3
b.mp3
missing.mp3
`)

	var calls, lastTotal int

	tracks, err := LoadPlaylistWithMetadata(path, LoadOptions{
		Progress: func(done, total int) {
			calls++
			lastTotal = total
		},
	})
	if err != nil {
		t.Fatalf("LoadPlaylistWithMetadata() error = %v", err)
	}

	if len(tracks) != 3 {
		t.Fatalf("Expected 3 tracks, got %d", len(tracks))
	}

	if calls != 3 || lastTotal != 3 {
		t.Errorf("Progress called %d times with total %d, want 3 and 3", calls, lastTotal)
	}

	if tracks[0].Title != "First" || tracks[0].Duration != time.Minute {
		t.Errorf("Track 0 should keep #EXTINF data, got %q %v", tracks[0].Title, tracks[0].Duration)
	}

	for i, track := range tracks {
		if track.Pos != i {
			t.Errorf("Track %d has Pos %d", i, track.Pos)
		}
	}

	skipped, err := LoadPlaylistWithMetadata(path, LoadOptions{SkipUnreadable: true})
	if err != nil {
		t.Fatalf("LoadPlaylistWithMetadata() error = %v", err)
	}

	if len(skipped) != 0 {
		t.Errorf("Expected unreadable tracks to be skipped, got %d", len(skipped))
	}
}
