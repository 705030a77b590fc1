// ABOUTME: File watching for the open playlist
// ABOUTME: Turns fsnotify write events into reload messages for the Bubble Tea loop

package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"songlist/playlist"
)

// waitForFileChange returns a command that waits for file system events
func waitForFileChange(watcher *fsnotify.Watcher, debugf func(string, ...interface{})) tea.Cmd {
	if watcher == nil {
		return nil
	}

	return func() tea.Msg {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				// Only react to write events
				if event.Op&fsnotify.Write == fsnotify.Write {
					// Debounce: wait a bit for atomic writes to complete
					time.Sleep(100 * time.Millisecond)
					return fileChangeMsg{}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				debugf("[WATCHER] Error: %v", err)
			}
		}
	}
}

// reloadPlaylist loads the playlist in the background
func reloadPlaylist(path string, load func(string) ([]*playlist.Track, error)) tea.Cmd {
	return func() tea.Msg {
		tracks, err := load(path)

		return reloadCompleteMsg{tracks: tracks, err: err}
	}
}
