package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func layoutWith(labels ...string) *Layout {
	l := &Layout{}
	for _, lbl := range labels {
		l.Seats = append(l.Seats, Seat{ID: NewID(), Label: lbl})
	}
	return l
}

func TestHistoryUndoRedoWalk(t *testing.T) {
	h := NewHistory()
	l0 := layoutWith()
	l1 := layoutWith("A1")
	l2 := layoutWith("A1", "A2")

	h.Push(l0.Clone()) // before first mutation
	h.Push(l1.Clone()) // before second mutation

	snap, ok := h.Undo(l2.Clone()) // current live state is l2
	require.True(t, ok)
	assert.Equal(t, l1, snap)

	snap, ok = h.Undo(snap)
	require.True(t, ok)
	assert.Equal(t, l0, snap)

	_, ok = h.Undo(snap)
	assert.False(t, ok, "bottom of the stack")

	snap, ok = h.Redo()
	require.True(t, ok)
	assert.Equal(t, l1, snap)

	snap, ok = h.Redo()
	require.True(t, ok)
	assert.Equal(t, l2, snap, "redo walks forward to the stashed live state")

	_, ok = h.Redo()
	assert.False(t, ok)
}

func TestHistoryPushDiscardsRedoRun(t *testing.T) {
	h := NewHistory()
	h.Push(layoutWith())
	h.Push(layoutWith("A1"))

	_, ok := h.Undo(layoutWith("A1", "A2"))
	require.True(t, ok)
	require.True(t, h.CanRedo())

	h.Push(layoutWith("A1", "B1"))
	assert.False(t, h.CanRedo())
	_, ok = h.Redo()
	assert.False(t, ok)
}

func TestHistorySnapshotsAreIsolated(t *testing.T) {
	h := NewHistory()
	live := layoutWith("A1")
	h.Push(live.Clone())

	// mutating the live layout must not bleed into the stored snapshot
	live.Seats[0].Label = "Z9"
	snap, ok := h.Undo(live)
	require.True(t, ok)
	assert.Equal(t, "A1", snap.Seats[0].Label)

	// and mutating a restored copy must not corrupt the stack either
	snap.Seats[0].Label = "Q0"
	again, ok := h.Redo()
	require.True(t, ok)
	_ = again
	restored, ok := h.Undo(again)
	require.True(t, ok)
	assert.Equal(t, "A1", restored.Seats[0].Label)
}
