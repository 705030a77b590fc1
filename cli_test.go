// ABOUTME: Tests for CLI loading, filtering and flag handling
// ABOUTME: Uses temporary M3U8 files whose audio files do not exist, so #EXTINF data is kept

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"songlist/config"
	"songlist/songlist"
)

// writeM3U writes a playlist of "artist - title" entries, one minute each
func writeM3U(t *testing.T, dir, name string, entries ...string) string {
	t.Helper()

	var b strings.Builder
	b.WriteString("#EXTM3U\n")

	for i, e := range entries {
		b.WriteString("#EXTINF:60," + e + "\n")
		b.WriteString(name + "-" + string(rune('a'+i)) + ".mp3\n")
	}

	path := filepath.Join(dir, name+".m3u8")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestLoadSonglistConcatenates(t *testing.T) {
	dir := t.TempDir()
	first := writeM3U(t, dir, "one", "Can - Vitamin C", "Neu! - Hallogallo")
	second := writeM3U(t, dir, "two", "Faust - Jennifer")

	list, err := LoadSonglist(PlaylistOptions{Paths: []string{first, second}, Role: songlist.RolePlaylist})
	if err != nil {
		t.Fatalf("LoadSonglist() error = %v", err)
	}

	if list.Len() != 3 {
		t.Fatalf("Expected 3 tracks, got %d", list.Len())
	}

	for i := range list.Len() {
		if list.Get(i).Pos != i {
			t.Errorf("Track %d has position %d", i, list.Get(i).Pos)
		}
	}

	if list.Get(2).Artist != "Faust" {
		t.Errorf("Expected the second playlist appended last, got %s", list.Get(2).Artist)
	}

	if list.Filename() != first {
		t.Errorf("Expected the list to be named after the first playlist, got %s", list.Filename())
	}
}

func TestLoadSonglistLimit(t *testing.T) {
	path := writeM3U(t, t.TempDir(), "mix", "A - 1", "B - 2", "C - 3")

	list, err := LoadSonglist(PlaylistOptions{Paths: []string{path}, Limit: 2})
	if err != nil {
		t.Fatal(err)
	}

	if list.Len() != 2 {
		t.Errorf("Expected limit to keep 2 tracks, got %d", list.Len())
	}
}

func TestLoadSonglistErrors(t *testing.T) {
	dir := t.TempDir()
	empty := writeM3U(t, dir, "empty")

	if _, err := LoadSonglist(PlaylistOptions{}); err == nil {
		t.Error("Expected an error with no playlists")
	}

	if _, err := LoadSonglist(PlaylistOptions{Paths: []string{empty}}); err == nil {
		t.Error("Expected an error for an empty playlist")
	}

	if _, err := LoadSonglist(PlaylistOptions{Paths: []string{filepath.Join(dir, "missing.m3u8")}}); err == nil {
		t.Error("Expected an error for a missing playlist")
	}
}

func TestFilterList(t *testing.T) {
	path := writeM3U(t, t.TempDir(), "mix", "Can - Mother Sky", "Neu! - Hallogallo", "Can - Halleluhwah")

	list, err := LoadSonglist(PlaylistOptions{Paths: []string{path}})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		opts   RunOptions
		titles []string
	}{
		{"every field", RunOptions{Search: "can"}, []string{"Mother Sky", "Halleluhwah"}},
		{"title only", RunOptions{Search: "hall", SearchFields: "title"}, []string{"Hallogallo", "Halleluhwah"}},
		{"artist only misses titles", RunOptions{Search: "sky", SearchFields: "artist"}, nil},
		{"regex", RunOptions{Search: "^hal+o", Regex: true}, []string{"Hallogallo"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched := filterList(list, tt.opts)

			var got []string
			for i := range matched.Len() {
				got = append(got, matched.Get(i).Title)
			}

			if strings.Join(got, "|") != strings.Join(tt.titles, "|") {
				t.Errorf("filterList() = %v, want %v", got, tt.titles)
			}
		})
	}

	if list.Len() != 3 {
		t.Errorf("filterList should leave the source list alone, got %d tracks", list.Len())
	}
}

func TestApplyFlagOverrides(t *testing.T) {
	base := config.DefaultConfig()

	unchanged := applyFlagOverrides(base, flagOverrides{Limit: -1})
	if unchanged != base {
		t.Errorf("Unset flags changed the config: %+v", unchanged)
	}

	got := applyFlagOverrides(base, flagOverrides{
		Columns:      "title",
		Sort:         "artist",
		SearchFields: "album",
		Regex:        true,
		Limit:        0,
	})

	want := base
	want.Columns = "title"
	want.Sort = "artist"
	want.SearchFields = "album"
	want.RegexSearch = true
	want.Limit = 0

	if got != want {
		t.Errorf("applyFlagOverrides() = %+v, want %+v", got, want)
	}
}

func TestTableWidth(t *testing.T) {
	if got := tableWidth(42); got != 42 {
		t.Errorf("tableWidth(42) = %d, want 42", got)
	}

	if got := tableWidth(0); got <= 0 {
		t.Errorf("tableWidth(0) = %d, want a positive fallback", got)
	}
}

func TestResolveOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		opts    RunOptions
		want    string
		wantErr bool
	}{
		{"plain rewrite overwrites input", RunOptions{PlaylistPaths: []string{"in.m3u8"}, Sort: "artist"}, "in.m3u8", false},
		{"explicit output", RunOptions{PlaylistPaths: []string{"in.m3u8"}, Search: "x", OutputPath: "out.m3u8"}, "out.m3u8", false},
		{"search would drop tracks", RunOptions{PlaylistPaths: []string{"in.m3u8"}, Search: "x"}, "", true},
		{"limit would drop tracks", RunOptions{PlaylistPaths: []string{"in.m3u8"}, Limit: 10}, "", true},
		{"several playlists", RunOptions{PlaylistPaths: []string{"a.m3u8", "b.m3u8"}}, "", true},
		{"dry run writes nothing", RunOptions{PlaylistPaths: []string{"in.m3u8"}, Search: "x", Limit: 3, DryRun: true}, "in.m3u8", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveOutputPath(tt.opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolveOutputPath() error = %v, wantErr %v", err, tt.wantErr)
			}

			if got != tt.want {
				t.Errorf("resolveOutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRunCLISearchKeepsInputIntact(t *testing.T) {
	path := writeM3U(t, t.TempDir(), "mix", "Can - Mother Sky", "Neu! - Hallogallo")

	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := RunCLI(RunOptions{PlaylistPaths: []string{path}, Search: "can", Columns: "title"}); err == nil {
		t.Fatal("Expected -search without -output to be refused")
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if string(after) != string(before) {
		t.Error("The input playlist was rewritten")
	}

	if _, err := os.Stat(path + ".bak"); !os.IsNotExist(err) {
		t.Error("No backup should be made when nothing is written")
	}
}
