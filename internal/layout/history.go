package layout

// History is the linear undo stack: an ordered run of full layout snapshots
// plus a cursor. Every snapshot is taken immediately before a mutation, one
// per discrete user action, so one undo reverts exactly one visible change.
// There is no branching; pushing after an undo discards the redo run.
type History struct {
	stack []*Layout
	index int // cursor; stack[:index] are undoable snapshots
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{}
}

// Push records the pre-mutation snapshot. Any redo entries beyond the cursor
// are discarded, then the snapshot is appended and the cursor advanced. The
// snapshot must already be an independent deep copy (Store.Layout provides
// one); History never clones on the way in.
func (h *History) Push(snap *Layout) {
	h.stack = append(h.stack[:h.index], snap)
	h.index++
}

// CanUndo reports whether there is a snapshot behind the cursor.
func (h *History) CanUndo() bool { return h.index > 0 }

// CanRedo reports whether an undone snapshot is still reachable ahead of the
// cursor.
func (h *History) CanRedo() bool { return h.index < len(h.stack)-1 }

// Undo steps the cursor back and returns a copy of the snapshot to restore.
// The first undo stashes the caller's current state on the stack so a redo
// can come back to it. Returns false, with no state change, when there is
// nothing to undo.
func (h *History) Undo(current *Layout) (*Layout, bool) {
	if h.index <= 0 {
		return nil, false
	}
	if h.index == len(h.stack) {
		h.stack = append(h.stack, current.Clone())
	}
	h.index--
	return h.stack[h.index].Clone(), true
}

// Redo steps the cursor forward and returns a copy of the snapshot to
// restore. Returns false when the cursor is already at the newest state.
func (h *History) Redo() (*Layout, bool) {
	if h.index >= len(h.stack)-1 {
		return nil, false
	}
	h.index++
	return h.stack[h.index].Clone(), true
}

// Len returns the number of stored snapshots.
func (h *History) Len() int { return len(h.stack) }
