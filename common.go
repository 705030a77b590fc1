// ABOUTME: Shared initialization code for CLI and TUI modes
// ABOUTME: Provides the debug log and playlist loading with a tag-reading progress bar

package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"

	"songlist/playlist"
	"songlist/songlist"
)

const debugLogFile = "songlist-debug.log"

var debugLog *log.Logger

// RunOptions contains command-line options for all modes
type RunOptions struct {
	PlaylistPaths []string
	Role          songlist.Role
	Columns       string
	Sort          string
	IgnoreCase    bool
	Search        string
	SearchFields  string
	Regex         bool
	Width         int
	Limit         int
	OutputPath    string
	DryRun        bool
	DebugLog      bool
}

// PlaylistOptions contains options for loading playlists
type PlaylistOptions struct {
	Paths   []string
	Role    songlist.Role
	Limit   int // 0 keeps every track
	Verbose bool
}

// LoadSonglist reads every playlist with tag metadata and concatenates them into one list
func LoadSonglist(opts PlaylistOptions) (*songlist.Songlist, error) {
	if len(opts.Paths) == 0 {
		return nil, errors.New("no playlist given")
	}

	list := songlist.New(opts.Role, opts.Paths[0])

	for _, path := range opts.Paths {
		tracks, err := loadTracks(path, opts.Verbose)
		if err != nil {
			return nil, err
		}

		part := songlist.New(opts.Role, path)
		for _, t := range tracks {
			part.Append(t)
		}

		list.AppendList(part)
	}

	if list.Len() == 0 {
		return nil, playlist.ErrEmptyPlaylist
	}

	if opts.Limit > 0 {
		list.Truncate(opts.Limit)
	}

	return list, nil
}

// LoadPlaylistForMode loads a single playlist for the TUI, which reloads it on change
func LoadPlaylistForMode(path string) ([]*playlist.Track, error) {
	tracks, err := loadTracks(path, false)
	if err != nil {
		return nil, err
	}

	if len(tracks) == 0 {
		return nil, playlist.ErrEmptyPlaylist
	}

	return tracks, nil
}

// loadTracks reads one playlist, drawing a progress bar over tag reading when verbose
func loadTracks(path string, verbose bool) ([]*playlist.Track, error) {
	opts := playlist.LoadOptions{Debugf: debugf}

	if verbose {
		fmt.Printf("Reading playlist: %s\n", path)

		var bar *progressbar.ProgressBar

		opts.Progress = func(done, total int) {
			if bar == nil {
				bar = newLoadBar(total)
			}

			_ = bar.Set(done)
		}

		defer func() {
			if bar != nil {
				_ = bar.Finish()
				fmt.Println()
			}
		}()
	}

	tracks, err := playlist.LoadPlaylistWithMetadata(path, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load playlist: %w", err)
	}

	debugf("[LOAD] %s: %d tracks", path, len(tracks))

	return tracks, nil
}

// newLoadBar creates the tag-reading progress bar
func newLoadBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetTheme(progressbar.ThemeASCII),
		progressbar.OptionFullWidth(),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("Reading tags"),
	)
}

// SetupDebugLog initializes debug logging
func SetupDebugLog(filename string) error {
	if err := InitDebugLog(filename); err != nil {
		return fmt.Errorf("failed to initialize debug log: %w", err)
	}

	if filename == debugLogFile {
		fileInfo, _ := os.Stdout.Stat()
		if (fileInfo.Mode() & os.ModeCharDevice) != 0 {
			fmt.Printf("Debug logging enabled: %s\n", filename)
		}
	}

	return nil
}

// InitDebugLog initializes debug logging
func InitDebugLog(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create debug log file: %w", err)
	}

	debugLog = log.New(f, "", log.Ltime|log.Lmicroseconds)

	return nil
}

// debugf logs debug messages if enabled
func debugf(format string, args ...interface{}) {
	if debugLog != nil {
		debugLog.Printf(format, args...)
	}
}
