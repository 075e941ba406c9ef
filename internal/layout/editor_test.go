package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEditor(t *testing.T) *Editor {
	t.Helper()
	return NewEditor(DefaultRegistry())
}

func seatByLabel(t *testing.T, e *Editor, label string) Seat {
	t.Helper()
	for _, s := range e.Store().Seats() {
		if s.Label == label {
			return s
		}
	}
	t.Fatalf("no seat labelled %q", label)
	return Seat{}
}

func TestUndoRedoInverseLaw(t *testing.T) {
	e := newTestEditor(t)
	e.AddGrid(2, 3)
	l0 := e.Layout()

	// a run of mutating operations, one history step each
	s := e.AddSeat(300, 300)
	e.MoveSeat(s.ID, 321, 321, false)
	e.AddRow(5)
	e.DeleteRow("A")
	e.SelectAll()
	e.CopySelected()
	e.Paste()
	nOps := 5 // AddSeat, MoveSeat, AddRow, DeleteRow, Paste

	lN := e.Layout()

	for i := 0; i < nOps; i++ {
		require.True(t, e.Undo(), "undo %d must succeed", i+1)
	}
	assert.Equal(t, l0, e.Layout(), "N undos must restore the initial layout exactly")

	for i := 0; i < nOps; i++ {
		require.True(t, e.Redo(), "redo %d must succeed", i+1)
	}
	assert.Equal(t, lN, e.Layout(), "N redos must restore the final layout exactly")
}

func TestUndoClearsSelection(t *testing.T) {
	e := newTestEditor(t)
	s := e.AddSeat(0, 0)
	assert.Equal(t, []string{s.ID}, e.Selection().IDs())

	require.True(t, e.Undo())
	assert.Equal(t, 0, e.Selection().Len())
}

func TestRedoBranchDiscard(t *testing.T) {
	e := newTestEditor(t)
	e.AddSeat(0, 0)
	e.AddSeat(50, 0)

	require.True(t, e.Undo())
	require.True(t, e.CanRedo())

	// a fresh mutation after undo throws the redo branch away
	e.AddSeat(100, 0)
	afterNew := e.Layout()

	assert.False(t, e.CanRedo())
	assert.False(t, e.Redo())
	assert.Equal(t, afterNew, e.Layout(), "a discarded branch must be unreachable")
}

func TestUndoOnEmptyHistoryIsNoop(t *testing.T) {
	e := newTestEditor(t)
	assert.False(t, e.CanUndo())
	assert.False(t, e.Undo())
	assert.False(t, e.Redo())
}

func TestRowDeletionIsAtomic(t *testing.T) {
	e := newTestEditor(t)
	e.AddGrid(3, 10) // rows A, B, C with 10 seats each
	require.Equal(t, 30, e.Store().Len())

	removed := e.DeleteRow("B")
	assert.Equal(t, 10, removed)
	assert.Equal(t, 20, e.Store().Len())
	for _, s := range e.Store().Seats() {
		assert.NotEqual(t, "B", s.Row())
	}

	// a single undo restores all ten seats
	require.True(t, e.Undo())
	assert.Equal(t, 30, e.Store().Len())
}

func TestDeleteColumnAcrossRows(t *testing.T) {
	e := newTestEditor(t)
	e.AddGrid(3, 4)

	removed := e.DeleteColumn("2")
	assert.Equal(t, 3, removed)
	for _, s := range e.Store().Seats() {
		assert.NotEqual(t, "2", s.ColumnSuffix())
	}

	// unknown suffixes no-op and leave no history entry
	before := e.hist.Len()
	assert.Equal(t, 0, e.DeleteColumn("99"))
	assert.Equal(t, before, e.hist.Len())
}

func TestDeleteRowKeysOffLabelPrefix(t *testing.T) {
	e := newTestEditor(t)
	e.AddGrid(2, 2)
	// row membership is the label's first character, nothing else, so a
	// relabelled seat changes rows and gets swept up by the new row's delete
	b1 := seatByLabel(t, e, "B1")
	lbl := "A9"
	e.UpdateSeat(b1.ID, SeatPatch{Label: &lbl})

	removed := e.DeleteRow("A")
	assert.Equal(t, 3, removed, "the relabelled seat now belongs to row A")
	assert.Equal(t, 1, e.Store().Len())
}

func TestPasteOffsetAndFreshIDs(t *testing.T) {
	e := newTestEditor(t)
	a := e.AddSeat(10, 10)
	b := e.AddSeat(20, 10)
	c := e.AddSeat(30, 10)
	e.Selection().Replace([]string{a.ID, b.ID, c.ID})

	require.Equal(t, 3, e.CopySelected())
	pasted := e.Paste()
	require.Len(t, pasted, 3)

	assert.Equal(t, 60.0, pasted[0].X)
	assert.Equal(t, 60.0, pasted[0].Y)
	assert.Equal(t, 70.0, pasted[1].X)
	assert.Equal(t, 80.0, pasted[2].X)

	seen := map[string]bool{a.ID: true, b.ID: true, c.ID: true}
	for _, p := range pasted {
		assert.False(t, seen[p.ID], "pasted seat must carry a previously-unseen id")
		seen[p.ID] = true
	}

	// pasted seats become the selection
	ids := make([]string, len(pasted))
	for i, p := range pasted {
		ids[i] = p.ID
	}
	assert.Equal(t, ids, e.Selection().IDs())
}

func TestIDUniquenessAcrossGenerativeOps(t *testing.T) {
	e := newTestEditor(t)
	e.AddGrid(4, 6)
	e.AddSeat(500, 500)
	e.SelectAll()
	e.CopySelected()
	e.Paste()
	e.Paste() // pasting twice must still mint fresh ids
	e.AddRow(8)

	seen := map[string]bool{}
	for _, s := range e.Store().Seats() {
		assert.False(t, seen[s.ID], "duplicate id %s", s.ID)
		seen[s.ID] = true
	}
}

func TestCopyIsNotAnAlias(t *testing.T) {
	e := newTestEditor(t)
	a := e.AddSeat(10, 10)
	e.Selection().Replace([]string{a.ID})
	e.CopySelected()

	// mutating the original after copy must not affect what gets pasted
	e.MoveSeat(a.ID, 400, 400, false)
	pasted := e.Paste()
	require.Len(t, pasted, 1)
	assert.Equal(t, 60.0, pasted[0].X)
	assert.Equal(t, 60.0, pasted[0].Y)
}

func TestPasteWithEmptyClipboardIsNoop(t *testing.T) {
	e := newTestEditor(t)
	before := e.hist.Len()
	assert.Nil(t, e.Paste())
	assert.Equal(t, before, e.hist.Len())
}

func TestCategoryBulkReassignment(t *testing.T) {
	e := newTestEditor(t)
	e.AddGrid(2, 2)
	a1 := seatByLabel(t, e, "A1")
	a2 := seatByLabel(t, e, "A2")
	e.Selection().Replace([]string{a1.ID, a2.ID})

	vip, ok := e.Categories().Get("vip")
	require.True(t, ok)

	assert.Equal(t, 2, e.SetCategoryForSelection("vip"))

	for _, s := range e.Store().Seats() {
		switch s.ID {
		case a1.ID, a2.ID:
			assert.Equal(t, "vip", s.Category)
			assert.Equal(t, vip.Color, s.Color)
			assert.Equal(t, vip.Price, s.Price)
		default:
			assert.Equal(t, "standard", s.Category, "unselected seats stay untouched")
		}
	}

	// the whole reassignment is one history step
	require.True(t, e.Undo())
	assert.Equal(t, "standard", seatByLabel(t, e, "A1").Category)
}

func TestSetCategoryUnknownOrEmptySelectionIsNoop(t *testing.T) {
	e := newTestEditor(t)
	e.AddGrid(1, 2)
	before := e.hist.Len()

	assert.Equal(t, 0, e.SetCategoryForSelection("vip")) // nothing selected
	e.SelectAll()
	assert.Equal(t, 0, e.SetCategoryForSelection("no-such-category"))
	assert.Equal(t, before, e.hist.Len())
}

func TestAddRowProgression(t *testing.T) {
	e := newTestEditor(t)
	first := e.AddRow(0) // zero falls back to the default count
	require.Len(t, first, DefaultRowCount)
	assert.Equal(t, "A1", first[0].Label)
	assert.Equal(t, "A10", first[9].Label)

	second := e.AddRow(4)
	require.Len(t, second, 4)
	assert.Equal(t, "B1", second[0].Label)
	assert.Greater(t, second[0].Y, first[0].Y, "new row lands below the existing layout")
}

func TestAddRowUsesActiveCategory(t *testing.T) {
	e := newTestEditor(t)
	require.True(t, e.SetActiveCategory("vip"))
	row := e.AddRow(3)
	vip, _ := e.Categories().Get("vip")
	for _, s := range row {
		assert.Equal(t, "vip", s.Category)
		assert.Equal(t, vip.Color, s.Color)
		assert.Equal(t, vip.Price, s.Price)
	}
}

func TestAddColumnExtendsEveryRow(t *testing.T) {
	e := newTestEditor(t)
	_, err := e.AddColumn()
	assert.ErrorIs(t, err, ErrNoRows)

	e.AddGrid(2, 2)
	added, err := e.AddColumn()
	require.NoError(t, err)
	require.Len(t, added, 2)
	assert.Equal(t, "A3", added[0].Label)
	assert.Equal(t, "B3", added[1].Label)

	a2 := seatByLabel(t, e, "A2")
	assert.Equal(t, a2.X+a2.Size+SeatGap, added[0].X, "new seat sits one step right of the row end")
	assert.Equal(t, a2.Y, added[0].Y)
}

func TestActiveRowAndColumn(t *testing.T) {
	e := newTestEditor(t)
	_, ok := e.ActiveRow()
	assert.False(t, ok, "empty selection disables row operations")

	e.AddGrid(3, 8)
	b7 := seatByLabel(t, e, "B7")
	e.ToggleSelect(b7.ID)

	row, ok := e.ActiveRow()
	require.True(t, ok)
	assert.Equal(t, "B", row)

	col, ok := e.ActiveColumn()
	require.True(t, ok)
	assert.Equal(t, "7", col)
}

func TestMoveAbsentSeatLeavesHistoryClean(t *testing.T) {
	e := newTestEditor(t)
	e.MoveSeat("ghost", 10, 10, false)
	e.UpdateSeat("ghost", SeatPatch{})
	assert.False(t, e.CanUndo(), "no-ops must not create undo steps")
}

func TestRemoveSelectedClearsSelection(t *testing.T) {
	e := newTestEditor(t)
	e.AddGrid(1, 3)
	e.SelectAll()
	assert.Equal(t, 3, e.RemoveSelected())
	assert.Equal(t, 0, e.Store().Len())
	assert.Equal(t, 0, e.Selection().Len())

	assert.Equal(t, 0, e.RemoveSelected(), "empty selection no-ops")
}

func TestMarqueeThroughEditor(t *testing.T) {
	e := newTestEditor(t)
	a := e.AddSeat(0, 0)
	b := e.AddSeat(50, 50)
	e.AddSeat(200, 200)

	e.MarqueeSelect(60, 60, 0, 0)
	assert.Equal(t, []string{a.ID, b.ID}, e.Selection().IDs())
}

func TestTableLifecycleWithHistory(t *testing.T) {
	e := newTestEditor(t)
	tbl := e.AddTable(100, 100, 6)
	require.Len(t, e.Store().Tables(), 1)
	assert.Equal(t, "T1", tbl.Label)

	e.MoveTable(tbl.ID, 240, 100, true)
	assert.Equal(t, 240.0, e.Store().Tables()[0].X)

	e.MoveTableSeat(tbl.ID, tbl.Seats[0].ID, 500, 500, false)
	assert.True(t, e.Store().Tables()[0].Seats[0].Detached)

	// three actions, three undo steps
	require.True(t, e.Undo())
	assert.False(t, e.Store().Tables()[0].Seats[0].Detached)
	require.True(t, e.Undo())
	assert.Equal(t, 100.0, e.Store().Tables()[0].X)
	require.True(t, e.Undo())
	assert.Empty(t, e.Store().Tables())
}

func TestLoadResetsEditorState(t *testing.T) {
	e := newTestEditor(t)
	e.AddGrid(1, 2)
	e.SelectAll()
	e.CopySelected()

	e.Load(DefaultTheatre(e.Categories(), 2, 3))
	assert.Equal(t, 6, e.Store().Len())
	assert.False(t, e.CanUndo())
	assert.Equal(t, 0, e.Selection().Len())
	assert.Equal(t, 0, e.ClipboardLen())
}

func TestDefaultTheatreShape(t *testing.T) {
	l := DefaultTheatre(DefaultRegistry(), 8, 12)
	require.Len(t, l.Seats, 96)
	assert.Equal(t, "A1", l.Seats[0].Label)
	assert.Equal(t, "H12", l.Seats[95].Label)
	assert.Equal(t, "standard", l.Seats[0].Category)
}
