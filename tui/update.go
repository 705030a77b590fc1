// ABOUTME: Event handling and state updates for the TUI
// ABOUTME: Implements the Bubble Tea Update() function and key handlers

package tui

import (
	"fmt"
	"runtime/debug"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"songlist/playlist"
	"songlist/songlist"
)

// Update handles messages and updates the model
//
//nolint:ireturn // Bubble Tea framework requires returning tea.Model interface
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			m.debugf("[PANIC] Update panic: %v", r)
			m.debugf("[PANIC] Stack trace: %s", string(debug.Stack()))
			panic(r) // Re-panic so Bubble Tea can handle it
		}
	}()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		m.viewport.Width = max(msg.Width, minViewportWidth)
		m.viewport.Height = max(msg.Height-totalUIChrome, minViewportHeight)
		m.help.Width = msg.Width

		m.relayout()

		return m, nil

	case fileChangeMsg:
		if time.Since(m.lastSave) < selfWriteGrace {
			m.debugf("[WATCHER] Ignoring our own write to %s", m.playlistPath)

			return m, waitForFileChange(m.watcher, m.debugf)
		}

		return m, tea.Batch(
			reloadPlaylist(m.playlistPath, m.loadPlaylist),
			waitForFileChange(m.watcher, m.debugf),
		)

	case reloadCompleteMsg:
		m.handleReload(msg)

		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.handleSearchInput(msg)
		}

		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey dispatches a key press in browsing mode
func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m.handleQuitKey()

	case key.Matches(msg, keys.Up):
		m.moveCursor(m.list.Cursor() - 1)

	case key.Matches(msg, keys.Down):
		m.moveCursor(m.list.Cursor() + 1)

	case key.Matches(msg, keys.PageUp):
		m.moveCursor(m.list.Cursor() - pageJumpSize)

	case key.Matches(msg, keys.PageDown):
		m.moveCursor(m.list.Cursor() + pageJumpSize)

	case key.Matches(msg, keys.Home):
		m.moveCursor(0)

	case key.Matches(msg, keys.End):
		m.moveCursor(m.list.Len() - 1)

	case key.Matches(msg, keys.Search):
		return m, m.startSearch(false)

	case key.Matches(msg, keys.SearchBack):
		return m, m.startSearch(true)

	case key.Matches(msg, keys.NextMatch):
		m.repeatSearch(m.searchReverse)

	case key.Matches(msg, keys.PrevMatch):
		m.repeatSearch(!m.searchReverse)

	case key.Matches(msg, keys.NextOf):
		m.handleJumpKey(songlist.Forward)

	case key.Matches(msg, keys.PrevOf):
		m.handleJumpKey(songlist.Backward)

	case key.Matches(msg, keys.Sort):
		m.sortList()

	case key.Matches(msg, keys.Play):
		m.handlePlayKey()

	case key.Matches(msg, keys.Next):
		m.handleStepKey(songlist.Forward)

	case key.Matches(msg, keys.Prev):
		m.handleStepKey(songlist.Backward)

	case key.Matches(msg, keys.Random):
		m.handleRandomKey()

	case key.Matches(msg, keys.Repeat):
		m.handleRepeatKey()

	case key.Matches(msg, keys.Select):
		m.handleSelectKey()

	case key.Matches(msg, keys.Delete):
		m.deleteTracks()

	case key.Matches(msg, keys.Undo):
		m.undo()

	case key.Matches(msg, keys.Redo):
		m.redo()
	}

	return m, nil
}

// handleQuitKey handles the quit key press
func (m model) handleQuitKey() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.saveState()

	return m, tea.Quit
}

// handleJumpKey moves to the next or previous run of the configured jump field
func (m *model) handleJumpKey(dir songlist.Direction) {
	field := m.cfg.Get().JumpField

	pos, ok := m.list.NextOf(field, dir)
	if !ok {
		m.setStatusMsg("No other " + field)

		return
	}

	m.moveCursor(pos)
}

// handlePlayKey marks the cursor track as playing
func (m *model) handlePlayKey() {
	t := m.list.CursorTrack()
	if t == nil {
		return
	}

	m.playing = t.Clone()
	m.setStatusMsg("Playing: " + t.DisplayTitle())
	m.updateViewportContent()
}

// handleStepKey moves the playing mark one track and follows it with the cursor
func (m *model) handleStepKey(dir songlist.Direction) {
	t, pos, ok := m.list.Next(dir, m.currentPlaying(), m.cfg.Get().Repeat)
	if !ok {
		m.setStatusMsg("End of list")

		return
	}

	m.playing = t.Clone()
	m.moveCursor(pos)
}

// handleRandomKey marks a random track as playing
func (m *model) handleRandomKey() {
	t, pos, ok := m.list.Random(m.currentPlaying())
	if !ok {
		return
	}

	m.playing = t.Clone()
	m.moveCursor(pos)
}

// handleRepeatKey toggles repeat and stores it in the shared options
func (m *model) handleRepeatKey() {
	cfg := m.cfg.Get()
	cfg.Repeat = !cfg.Repeat
	m.cfg.Update(cfg)

	if cfg.Repeat {
		m.setStatusMsg("Repeat on")
	} else {
		m.setStatusMsg("Repeat off")
	}
}

// handleSelectKey toggles the cursor track's selection and steps down
func (m *model) handleSelectKey() {
	if !m.list.ToggleSelected(m.list.Cursor()) {
		return
	}

	m.moveCursor(m.list.Cursor() + 1)
}

// handleReload swaps in a list reloaded from disk, keeping the cursor where it was
func (m *model) handleReload(msg reloadCompleteMsg) {
	if msg.err != nil {
		m.debugf("[WATCHER] Reload failed: %v", msg.err)
		m.setStatusMsg("Reload failed: " + msg.err.Error())

		return
	}

	cursor := m.list.Cursor()
	m.list.SetTracks(msg.tracks)
	m.numberQueue()
	m.list.SetCursor(cursor)
	m.undoMgr.Clear()
	m.relayout()

	m.debugf("[WATCHER] Reloaded %d tracks", m.list.Len())
	m.setStatusMsg(fmt.Sprintf("Reloaded %d tracks", m.list.Len()))
}

// startSearch opens the search prompt
func (m *model) startSearch(reverse bool) tea.Cmd {
	m.searching = true
	m.searchReverse = reverse

	m.search.Prompt = "/"
	if reverse {
		m.search.Prompt = "?"
	}

	m.search.SetValue("")

	return m.search.Focus()
}

// handleSearchInput feeds keys to the prompt until enter or escape
func (m model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		m.searching = false
		m.search.Blur()

		return m, nil

	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()

		if needle := m.search.Value(); needle != "" {
			m.lastSearch = needle
		}

		m.repeatSearch(m.searchReverse)

		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	return m, cmd
}

// repeatSearch looks for the last needle in the given direction
func (m *model) repeatSearch(reverse bool) {
	if m.lastSearch == "" {
		m.setStatusMsg("No previous search")

		return
	}

	cfg := m.cfg.Get()

	q := songlist.NewQuery(m.lastSearch, songlist.SearchMode(cfg.RegexSearch), searchFields(cfg.SearchFields)...)
	q.Reverse = reverse

	pos, ok := m.list.Search(q)
	if !ok {
		m.setStatusMsg("Not found: " + m.lastSearch)

		return
	}

	m.moveCursor(pos)
}

// searchFields turns the configured list into query fields, nil for every field
func searchFields(tokens string) []playlist.FieldID {
	fields := playlist.ParseFieldList(tokens)
	if len(fields) == 0 {
		return nil
	}

	return fields
}
