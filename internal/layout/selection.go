package layout

import "github.com/seatkit/layout-designer/internal/geometry"

// Selection tracks the set of currently selected seat ids in the order they
// were selected. It is derived state: never persisted, never a source of
// truth, and cleared whenever history rewinds the layout under it.
type Selection struct {
	ids   map[string]struct{}
	order []string
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{ids: make(map[string]struct{})}
}

// Toggle adds the id when absent and removes it when present. Toggling is
// additive: it never clears the rest of the selection, so click-selecting
// several seats in turn builds a multi-selection.
func (sel *Selection) Toggle(id string) {
	if _, ok := sel.ids[id]; ok {
		delete(sel.ids, id)
		for i, v := range sel.order {
			if v == id {
				sel.order = append(sel.order[:i], sel.order[i+1:]...)
				break
			}
		}
		return
	}
	sel.ids[id] = struct{}{}
	sel.order = append(sel.order, id)
}

// Replace throws away the current selection and selects exactly ids, in the
// given order.
func (sel *Selection) Replace(ids []string) {
	sel.ids = make(map[string]struct{}, len(ids))
	sel.order = sel.order[:0]
	for _, id := range ids {
		if _, dup := sel.ids[id]; dup {
			continue
		}
		sel.ids[id] = struct{}{}
		sel.order = append(sel.order, id)
	}
}

// Marquee replaces the selection with every seat whose square hit-region
// overlaps the rubber-band rectangle. Unlike Toggle, a marquee drag is not
// additive; it defines the whole new selection.
func (sel *Selection) Marquee(seats []Seat, r geometry.Rect) {
	hits := make([]string, 0, len(seats))
	for _, s := range seats {
		if r.OverlapsSquare(s.X, s.Y, s.Size) {
			hits = append(hits, s.ID)
		}
	}
	sel.Replace(hits)
}

// Clear empties the selection.
func (sel *Selection) Clear() {
	sel.ids = make(map[string]struct{})
	sel.order = sel.order[:0]
}

// Has reports whether the id is selected.
func (sel *Selection) Has(id string) bool {
	_, ok := sel.ids[id]
	return ok
}

// Len returns the number of selected ids.
func (sel *Selection) Len() int { return len(sel.order) }

// IDs returns the selected ids in selection order. The slice is a copy.
func (sel *Selection) IDs() []string {
	out := make([]string, len(sel.order))
	copy(out, sel.order)
	return out
}

// First returns the earliest-selected id. Row/column derivations key off the
// first selected seat's label.
func (sel *Selection) First() (string, bool) {
	if len(sel.order) == 0 {
		return "", false
	}
	return sel.order[0], true
}

// Set returns the selection as an id set, the shape RemoveSeats consumes.
func (sel *Selection) Set() map[string]struct{} {
	out := make(map[string]struct{}, len(sel.ids))
	for id := range sel.ids {
		out[id] = struct{}{}
	}
	return out
}

// Drop removes any of the given ids from the selection. Called after seats
// are deleted so the selection never references departed seats.
func (sel *Selection) Drop(ids map[string]struct{}) {
	kept := sel.order[:0]
	for _, id := range sel.order {
		if _, gone := ids[id]; gone {
			delete(sel.ids, id)
			continue
		}
		kept = append(kept, id)
	}
	sel.order = kept
}
