// ABOUTME: Undo/redo stack manager for playlist editing
// ABOUTME: Keeps deep copies of the track list so later edits cannot leak into history

package tui

import "songlist/playlist"

// PlaylistState captures a snapshot of the list for undo/redo
type PlaylistState struct {
	Tracks    []*playlist.Track
	CursorPos int
}

// clone copies every track so the snapshot owns its data
func (s PlaylistState) clone() PlaylistState {
	tracks := make([]*playlist.Track, 0, len(s.Tracks))
	for _, t := range s.Tracks {
		if t != nil {
			tracks = append(tracks, t.Clone())
		}
	}

	return PlaylistState{Tracks: tracks, CursorPos: s.CursorPos}
}

// UndoManager manages undo/redo stacks with maximum size limit
type UndoManager struct {
	undoStack []PlaylistState
	redoStack []PlaylistState
	maxSize   int
}

// NewUndoManager creates a new undo manager with the specified max stack size
func NewUndoManager(maxSize int) *UndoManager {
	return &UndoManager{
		undoStack: []PlaylistState{},
		redoStack: []PlaylistState{},
		maxSize:   maxSize,
	}
}

// Push saves a new state to the undo stack
// Clears the redo stack (you can't redo after a new action)
func (um *UndoManager) Push(state PlaylistState) {
	um.undoStack = pushBounded(um.undoStack, state.clone(), um.maxSize)
	um.redoStack = []PlaylistState{}
}

// Undo restores the previous state
// Returns the state and true if undo was successful, or zero value and false if nothing to undo
func (um *UndoManager) Undo(currentState PlaylistState) (PlaylistState, bool) {
	if len(um.undoStack) == 0 {
		return PlaylistState{}, false
	}

	um.redoStack = pushBounded(um.redoStack, currentState.clone(), um.maxSize)

	state := um.undoStack[len(um.undoStack)-1]
	um.undoStack = um.undoStack[:len(um.undoStack)-1]

	return state, true
}

// Redo restores the next state
// Returns the state and true if redo was successful, or zero value and false if nothing to redo
func (um *UndoManager) Redo(currentState PlaylistState) (PlaylistState, bool) {
	if len(um.redoStack) == 0 {
		return PlaylistState{}, false
	}

	um.undoStack = pushBounded(um.undoStack, currentState.clone(), um.maxSize)

	state := um.redoStack[len(um.redoStack)-1]
	um.redoStack = um.redoStack[:len(um.redoStack)-1]

	return state, true
}

// UndoSize returns the number of items in the undo stack
func (um *UndoManager) UndoSize() int {
	return len(um.undoStack)
}

// RedoSize returns the number of items in the redo stack
func (um *UndoManager) RedoSize() int {
	return len(um.redoStack)
}

// Clear clears both stacks
func (um *UndoManager) Clear() {
	um.undoStack = []PlaylistState{}
	um.redoStack = []PlaylistState{}
}

// pushBounded appends state and drops the oldest entry once the stack exceeds maxSize
func pushBounded(stack []PlaylistState, state PlaylistState, maxSize int) []PlaylistState {
	stack = append(stack, state)
	if len(stack) > maxSize {
		stack = stack[1:]
	}

	return stack
}
