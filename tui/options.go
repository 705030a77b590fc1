// ABOUTME: TUI mode configuration and command-line options
// ABOUTME: Defines input parameters and injected dependencies for running the TUI

package tui

import (
	"songlist/playlist"
	"songlist/songlist"
)

// Options contains configuration for running the TUI
type Options struct {
	PlaylistPath string        // Path to input playlist
	OutputPath   string        // Path for saving (defaults to PlaylistPath)
	Role         songlist.Role // How tracks are identified while browsing
	DryRun       bool          // If true, don't save changes to disk
	Watch        bool          // Reload when the playlist file is written by someone else
	ConfigPath   string        // Where options are saved on quit
	PrefsPath    string        // Where last search and cursor are remembered, empty for the default
}

// Dependencies holds the functions the TUI calls out to
type Dependencies struct {
	Config        ConfigProvider
	LoadPlaylist  func(path string) ([]*playlist.Track, error)
	WritePlaylist func(path string, tracks []*playlist.Track) error
	Debugf        func(format string, args ...interface{})
}
