package layout

import "github.com/seatkit/layout-designer/internal/geometry"

// Editor wires the store, selection, history and clipboard into the
// intent-level operations the designer UI dispatches. Every mutating intent
// follows the same order: snapshot current state into history, apply the
// mutation, update the selection. Selection-only intents never snapshot.
type Editor struct {
	store  *Store
	sel    *Selection
	hist   *History
	clip   []Seat // seat snapshots carrying fresh ids, ready to paste
	cats   *Registry
	active Category
}

// NewEditor builds an editor over an empty store. The first registry
// category becomes the active one.
func NewEditor(cats *Registry) *Editor {
	return NewEditorWith(NewStore(), cats)
}

// NewEditorWith builds an editor over an existing store, usually one sized
// from config.
func NewEditorWith(store *Store, cats *Registry) *Editor {
	e := &Editor{
		store: store,
		sel:   NewSelection(),
		hist:  NewHistory(),
		cats:  cats,
	}
	if first, ok := cats.First(); ok {
		e.active = first
	}
	return e
}

// checkpoint pushes a pre-mutation snapshot. Exactly one checkpoint per
// user-visible action, however many seats the action touches.
func (e *Editor) checkpoint() {
	e.hist.Push(e.store.Layout())
}

// Store exposes the underlying store for read access.
func (e *Editor) Store() *Store { return e.store }

// Selection exposes the live selection for read access.
func (e *Editor) Selection() *Selection { return e.sel }

// Categories returns the category registry the editor styles seats from.
func (e *Editor) Categories() *Registry { return e.cats }

// ActiveCategory returns the category applied to newly created seats.
func (e *Editor) ActiveCategory() Category { return e.active }

// SetActiveCategory switches the active category. Unknown ids are ignored.
func (e *Editor) SetActiveCategory(id string) bool {
	c, ok := e.cats.Get(id)
	if !ok {
		return false
	}
	e.active = c
	return true
}

// AddSeat creates one seat at (x, y) with the active category and makes it
// the sole selection.
func (e *Editor) AddSeat(x, y float64) Seat {
	e.checkpoint()
	s := e.store.AddSeat(x, y, e.active)
	e.sel.Replace([]string{s.ID})
	return s
}

// UpdateSeat applies a partial update to one seat. Absent ids are a silent
// no-op and leave no history entry.
func (e *Editor) UpdateSeat(id string, p SeatPatch) {
	if _, ok := e.store.Get(id); !ok {
		return
	}
	e.checkpoint()
	e.store.UpdateSeat(id, p)
}

// MoveSeat handles one drag-stop: one history entry, optional grid snap.
// Absent ids no-op without polluting history.
func (e *Editor) MoveSeat(id string, x, y float64, snap bool) {
	if _, ok := e.store.Get(id); !ok {
		return
	}
	e.checkpoint()
	e.store.MoveSeat(id, x, y, snap)
}

// RemoveSelected deletes every selected seat in one history step and clears
// the selection. No-op when nothing is selected.
func (e *Editor) RemoveSelected() int {
	ids := e.sel.Set()
	if len(ids) == 0 {
		return 0
	}
	e.checkpoint()
	n := e.store.RemoveSeats(ids)
	e.sel.Clear()
	return n
}

// ToggleSelect flips one seat in or out of the selection.
func (e *Editor) ToggleSelect(id string) {
	e.sel.Toggle(id)
}

// MarqueeSelect replaces the selection with the seats overlapped by the
// rubber-band rectangle spanned by the two drag points, in either order.
func (e *Editor) MarqueeSelect(x1, y1, x2, y2 float64) {
	e.sel.Marquee(e.store.seats, geometry.NewRect(x1, y1, x2, y2))
}

// SelectAll selects every seat in layout order.
func (e *Editor) SelectAll() {
	ids := make([]string, len(e.store.seats))
	for i, s := range e.store.seats {
		ids[i] = s.ID
	}
	e.sel.Replace(ids)
}

// ClearSelection empties the selection.
func (e *Editor) ClearSelection() {
	e.sel.Clear()
}

// ActiveRow returns the row letter of the first selected seat. The second
// return is false on an empty selection, which disables row operations in
// the UI.
func (e *Editor) ActiveRow() (string, bool) {
	id, ok := e.sel.First()
	if !ok {
		return "", false
	}
	s, ok := e.store.Get(id)
	if !ok || s.Row() == "" {
		return "", false
	}
	return s.Row(), true
}

// ActiveColumn returns the column suffix of the first selected seat's label.
func (e *Editor) ActiveColumn() (string, bool) {
	id, ok := e.sel.First()
	if !ok {
		return "", false
	}
	s, ok := e.store.Get(id)
	if !ok || s.ColumnSuffix() == "" {
		return "", false
	}
	return s.ColumnSuffix(), true
}

// AddTable places a table with the given number of surrounding seats,
// labelled T{n+1}, styled from the active category.
func (e *Editor) AddTable(x, y float64, seatCount int) Table {
	e.checkpoint()
	label := nextTableLabel(e.store.tables)
	return e.store.AddTable(x, y, label, seatCount, e.active)
}

// MoveTable handles a table drag-stop; attached seats follow the anchor.
func (e *Editor) MoveTable(id string, x, y float64, snap bool) {
	if !e.hasTable(id) {
		return
	}
	e.checkpoint()
	e.store.MoveTable(id, x, y, snap)
}

// MoveTableSeat handles an individual table-seat drag-stop; the seat is
// detached from its table and pinned at the dropped position.
func (e *Editor) MoveTableSeat(tableID, seatID string, x, y float64, snap bool) {
	if !e.hasTable(tableID) {
		return
	}
	e.checkpoint()
	e.store.MoveTableSeat(tableID, seatID, x, y, snap)
}

// RemoveTable deletes a table with all of its seats in one history step.
func (e *Editor) RemoveTable(id string) {
	if !e.hasTable(id) {
		return
	}
	e.checkpoint()
	e.store.RemoveTable(id)
}

func (e *Editor) hasTable(id string) bool {
	for _, t := range e.store.tables {
		if t.ID == id {
			return true
		}
	}
	return false
}

// CanUndo reports whether an undo step is available.
func (e *Editor) CanUndo() bool { return e.hist.CanUndo() }

// CanRedo reports whether a redo step is available.
func (e *Editor) CanRedo() bool { return e.hist.CanRedo() }

// Undo rewinds one user action and clears the selection, which may be
// pointing at seats that no longer exist in the restored state.
func (e *Editor) Undo() bool {
	snap, ok := e.hist.Undo(e.store.Layout())
	if !ok {
		return false
	}
	e.store.Restore(snap)
	e.sel.Clear()
	return true
}

// Redo reapplies one undone action and clears the selection.
func (e *Editor) Redo() bool {
	snap, ok := e.hist.Redo()
	if !ok {
		return false
	}
	e.store.Restore(snap)
	e.sel.Clear()
	return true
}

// Layout returns a deep-copy snapshot of the current layout, the unit handed
// to the persistence adapter on save.
func (e *Editor) Layout() *Layout {
	return e.store.Layout()
}

// Load replaces the editor contents from a persisted layout and resets
// selection, history and clipboard. Called once at editor mount.
func (e *Editor) Load(l *Layout) {
	e.store.Restore(l)
	e.sel.Clear()
	e.hist = NewHistory()
	e.clip = nil
}
