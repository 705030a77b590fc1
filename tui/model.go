// ABOUTME: Terminal UI model and core state management
// ABOUTME: Bubble Tea model wrapping a Songlist with search, jumps, sorting and playback marks

// Package tui provides an interactive terminal browser for a track list.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"

	"songlist/config"
	"songlist/playlist"
	"songlist/prefs"
	"songlist/songlist"
)

// Layout constants for UI dimensions
const (
	// UI chrome heights (elements that reduce available viewport space)
	titleHeight     = 1 // List title bar
	headerHeight    = 1 // Column headers
	statusBarHeight = 1 // Bottom status bar
	helpHeight      = 1 // Help text or search prompt
	totalUIChrome   = titleHeight + headerHeight + statusBarHeight + helpHeight

	// Minimum viewport dimensions to ensure usability
	minViewportWidth  = 20
	minViewportHeight = 3
)

// Navigation and interaction constants
const (
	pageJumpSize          = 10                     // Number of tracks to jump on PageUp/PageDown
	statusMessageDuration = 5 * time.Second        // How long to show transient status messages
	maxUndoStackSize      = 50                     // Maximum undo/redo history items
	selfWriteGrace        = 500 * time.Millisecond // File events this soon after our own save are ignored
)

// model holds the TUI state
type model struct {
	// Dependencies
	cfg           ConfigProvider
	loadPlaylist  func(string) ([]*playlist.Track, error)
	writePlaylist func(string, []*playlist.Track) error
	debugf        func(string, ...interface{})

	// Persistence
	configPath string
	prefsPath  string
	prefs      prefs.Prefs

	// List state
	list    *songlist.Songlist
	playing *playlist.Track // Marked as currently playing, nil when nothing is

	// File I/O
	playlistPath string
	outputPath   string
	dryRun       bool
	watcher      *fsnotify.Watcher
	lastSave     time.Time

	// UI state
	width        int
	height       int
	quitting     bool
	statusMsg    string
	statusMsgAge time.Time
	viewport     viewport.Model
	help         help.Model
	undoMgr      *UndoManager

	// Search prompt
	search        textinput.Model
	searching     bool
	searchReverse bool   // Direction of the search being typed or last run
	lastSearch    string // Needle repeated by n/N
}

// Key bindings
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	Quit     key.Binding

	Search     key.Binding
	SearchBack key.Binding
	NextMatch  key.Binding
	PrevMatch  key.Binding
	NextOf     key.Binding
	PrevOf     key.Binding

	Sort   key.Binding
	Play   key.Binding
	Next   key.Binding
	Prev   key.Binding
	Random key.Binding
	Repeat key.Binding

	Select key.Binding
	Delete key.Binding
	Undo   key.Binding
	Redo   key.Binding
}

var keys = keyMap{
	Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	PageUp:     key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
	PageDown:   key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
	Home:       key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first track")),
	End:        key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last track")),
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	SearchBack: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "search back")),
	NextMatch:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next match")),
	PrevMatch:  key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "prev match")),
	NextOf:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "next album")),
	PrevOf:     key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "prev album")),
	Sort:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
	Play:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "mark playing")),
	Next:       key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "next track")),
	Prev:       key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "prev track")),
	Random:     key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "random track")),
	Repeat:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "toggle repeat")),
	Select:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
	Delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Undo:       key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
	Redo:       key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "redo")),
}

// ShortHelp returns the bindings shown on the help line
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Down, k.Up, k.Search, k.NextMatch, k.NextOf, k.PrevOf, k.Sort, k.Play,
		k.Next, k.Prev, k.Random, k.Select, k.Delete, k.Undo, k.Redo, k.Repeat, k.Quit,
	}
}

// FullHelp returns every binding grouped by purpose
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End},
		{k.Search, k.SearchBack, k.NextMatch, k.PrevMatch, k.NextOf, k.PrevOf},
		{k.Sort, k.Play, k.Next, k.Prev, k.Random, k.Repeat},
		{k.Select, k.Delete, k.Undo, k.Redo, k.Quit},
	}
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	playlistHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("10"))

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("15")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	cursorStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("240")).
			Foreground(lipgloss.Color("15"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Bold(true)

	playingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14")).
			Bold(true)
)

// fileChangeMsg is sent when the playlist file changes on disk
type fileChangeMsg struct{}

// reloadCompleteMsg carries the result of a background reload
type reloadCompleteMsg struct {
	tracks []*playlist.Track
	err    error
}

// Run starts the TUI mode with injected dependencies
func Run(opts Options, deps Dependencies) error {
	tracks, err := deps.LoadPlaylist(opts.PlaylistPath)
	if err != nil {
		return err
	}

	m := initModel(tracks, opts, deps)

	if opts.Watch {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("failed to create file watcher: %w", err)
		}
		defer watcher.Close()

		if err := watcher.Add(opts.PlaylistPath); err != nil {
			return fmt.Errorf("failed to watch playlist file: %w", err)
		}

		m.watcher = watcher
	}

	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	if m, ok := finalModel.(model); ok && m.dryRun {
		fmt.Println("\n--dry-run mode: playlist not modified")
	}

	return nil
}

// initModel creates the initial model with injected dependencies
func initModel(tracks []*playlist.Track, opts Options, deps Dependencies) model {
	outputPath := opts.PlaylistPath
	if opts.OutputPath != "" {
		outputPath = opts.OutputPath
	}

	debugf := deps.Debugf
	if debugf == nil {
		debugf = func(string, ...interface{}) {}
	}

	p, _ := prefs.Load(opts.PrefsPath)

	search := textinput.New()
	search.Prompt = "/"
	search.CharLimit = 256

	list := songlist.New(opts.Role, opts.PlaylistPath)
	for _, t := range tracks {
		list.Append(t)
	}

	m := model{
		cfg:           deps.Config,
		loadPlaylist:  deps.LoadPlaylist,
		writePlaylist: deps.WritePlaylist,
		debugf:        debugf,

		configPath: opts.ConfigPath,
		prefsPath:  opts.PrefsPath,
		prefs:      p,

		list: list,

		playlistPath: opts.PlaylistPath,
		outputPath:   outputPath,
		dryRun:       opts.DryRun,

		viewport:   viewport.New(0, 0), // Width and height set on first WindowSizeMsg
		help:       help.New(),
		undoMgr:    NewUndoManager(maxUndoStackSize),
		search:     search,
		lastSearch: p.LastSearch,
	}

	m.numberQueue()
	list.SetCursor(p.Cursor(opts.PlaylistPath))

	return m
}

// Init initializes the model
func (m model) Init() tea.Cmd {
	if m.watcher == nil {
		return nil
	}

	return waitForFileChange(m.watcher, m.debugf)
}

// ========== Helper Methods ==========

// numberQueue gives queue entries the ids a player queue would, so playing
// marks and remaining time follow entries rather than files
func (m *model) numberQueue() {
	if m.list.Role() != songlist.RoleQueue {
		return
	}

	for i := 0; i < m.list.Len(); i++ {
		m.list.Get(i).ID = i + 1
	}
}

// setStatusMsg sets a transient status message with current timestamp
func (m *model) setStatusMsg(msg string) {
	m.statusMsg = msg
	m.statusMsgAge = time.Now()
}

// relayout rebalances columns for the current width and redraws
func (m *model) relayout() {
	m.list.SetColumnSize(m.cfg.Get().Columns, m.viewport.Width)
	m.updateViewportContent()
}

// moveCursor places the cursor and keeps it visible
func (m *model) moveCursor(pos int) {
	m.list.SetCursor(pos)
	m.updateViewportContent()
}

// currentPlaying refreshes the playing mark's position after edits and returns it
func (m *model) currentPlaying() *playlist.Track {
	if m.playing == nil {
		return nil
	}

	if pos, ok := m.list.FindTrack(m.playing); ok {
		m.playing.Pos = pos
	} else {
		m.playing.Pos = playlist.NoPos
	}

	return m.playing
}

// state snapshots the list for the undo manager
func (m *model) state() PlaylistState {
	return PlaylistState{Tracks: m.list.Tracks(), CursorPos: m.list.Cursor()}
}

// pushUndo saves current state to undo stack using UndoManager
func (m *model) pushUndo() {
	m.undoMgr.Push(m.state())
}

// restore replaces the list with a snapshot
func (m *model) restore(state PlaylistState) {
	m.list.SetTracks(state.Tracks)
	m.numberQueue()
	m.list.SetCursor(state.CursorPos)
	m.relayout()
}

// deleteTracks removes the selected tracks, or the cursor track when nothing is selected
func (m *model) deleteTracks() {
	if m.list.Len() == 0 {
		return
	}

	positions := m.list.SelectedPositions()
	if len(positions) == 0 {
		positions = []int{m.list.Cursor()}
	}

	m.pushUndo()

	// Highest first so earlier positions stay valid
	for i := len(positions) - 1; i >= 0; i-- {
		m.list.RemoveAt(positions[i])
	}

	m.setStatusMsg(fmt.Sprintf("Deleted %d track(s) (Undo: %d, Redo: %d)", len(positions), m.undoMgr.UndoSize(), m.undoMgr.RedoSize()))
	m.relayout()
	m.autoSave()
}

// undo restores previous state from undo stack using UndoManager
func (m *model) undo() {
	state, ok := m.undoMgr.Undo(m.state())
	if !ok {
		m.setStatusMsg("Nothing to undo")

		return
	}

	m.restore(state)
	m.setStatusMsg(fmt.Sprintf("Undo (Undo: %d, Redo: %d)", m.undoMgr.UndoSize(), m.undoMgr.RedoSize()))
	m.autoSave()
}

// redo restores next state from redo stack using UndoManager
func (m *model) redo() {
	state, ok := m.undoMgr.Redo(m.state())
	if !ok {
		m.setStatusMsg("Nothing to redo")

		return
	}

	m.restore(state)
	m.setStatusMsg(fmt.Sprintf("Redo (Undo: %d, Redo: %d)", m.undoMgr.UndoSize(), m.undoMgr.RedoSize()))
	m.autoSave()
}

// sortList applies the configured sort keys
func (m *model) sortList() {
	cfg := m.cfg.Get()
	if m.list.Len() < 2 {
		return
	}

	if len(playlist.ParseFieldList(cfg.Sort)) == 0 {
		m.setStatusMsg("No sort keys configured")

		return
	}

	m.pushUndo()
	m.list.Sort(cfg.Sort, cfg.IgnoreCase)

	m.debugf("[TUI] Sorted %d tracks by %q", m.list.Len(), cfg.Sort)
	m.setStatusMsg("Sorted by " + cfg.Sort)
	m.relayout()
	m.autoSave()
}

// autoSave writes current tracks to disk
func (m *model) autoSave() {
	if m.dryRun || m.writePlaylist == nil {
		return
	}

	m.lastSave = time.Now()

	if err := m.writePlaylist(m.outputPath, m.list.Tracks()); err != nil {
		m.debugf("[TUI] Auto-save failed: %v", err)
		m.setStatusMsg("Save failed: " + err.Error())
	} else {
		m.debugf("[TUI] Auto-saved %d tracks to %s", m.list.Len(), m.outputPath)
	}
}

// saveState persists options and prefs on the way out
func (m *model) saveState() {
	if m.configPath != "" {
		m.saveToggles()
	}

	m.prefs.LastSearch = m.lastSearch
	m.prefs.SetCursor(m.playlistPath, m.list.Cursor())

	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.debugf("[TUI] Failed to save prefs on quit: %v", err)
	}
}

// saveToggles writes settings changed inside the TUI over the config file as
// it is on disk, so one-off command-line overrides are not made permanent
func (m *model) saveToggles() {
	onDisk, err := config.LoadConfig(m.configPath)
	if err != nil {
		m.debugf("[TUI] Not saving config, cannot read %s: %v", m.configPath, err)

		return
	}

	onDisk.Repeat = m.cfg.Get().Repeat

	if err := config.SaveConfig(m.configPath, onDisk); err != nil {
		m.debugf("[TUI] Failed to save config on quit: %v", err)
	}
}
