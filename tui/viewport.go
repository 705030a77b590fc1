// ABOUTME: Viewport manager for cursor-to-middle scrolling over long track lists
// ABOUTME: Computes which slice of rows is on screen so only those get rendered

package tui

// ViewportManager handles cursor visibility and viewport scrolling
// Implements vim/less style scrolling: cursor moves to middle, then content scrolls
type ViewportManager struct {
	height     int // Viewport height in lines
	cursorPos  int // Current cursor position
	totalItems int // Total number of items
}

// NewViewportManager creates a new viewport manager
func NewViewportManager(height, cursorPos, totalItems int) *ViewportManager {
	return &ViewportManager{
		height:     height,
		cursorPos:  cursorPos,
		totalItems: totalItems,
	}
}

// ScrollPhase describes where the cursor sits relative to the scrolling window
type ScrollPhase int

const (
	TopPhase    ScrollPhase = iota // Cursor moves, viewport at top
	MiddlePhase                    // Cursor at middle, content scrolls
	BottomPhase                    // Viewport at bottom, cursor moves
)

// Phase returns the current scrolling phase
func (vm *ViewportManager) Phase() ScrollPhase {
	if vm.totalItems == 0 || vm.height < 1 {
		return TopPhase
	}

	middle := vm.height / 2
	if vm.cursorPos < middle {
		return TopPhase
	}

	if vm.cursorPos < vm.totalItems-vm.height+middle {
		return MiddlePhase
	}

	return BottomPhase
}

// CalculateOffset returns the index of the first visible row
func (vm *ViewportManager) CalculateOffset() int {
	switch vm.Phase() {
	case TopPhase:
		return 0
	case MiddlePhase:
		return vm.cursorPos - vm.height/2
	default:
		return max(vm.totalItems-vm.height, 0)
	}
}

// Window returns the first and last visible row, inclusive.
// An empty list or a zero-height viewport gives an empty range (bottom < top).
func (vm *ViewportManager) Window() (top, bottom int) {
	if vm.totalItems == 0 || vm.height < 1 {
		return 0, -1
	}

	top = vm.CalculateOffset()
	bottom = min(top+vm.height, vm.totalItems) - 1

	return top, bottom
}
