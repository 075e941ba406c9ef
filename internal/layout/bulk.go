package layout

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoRows is reported by AddColumn when the layout has no labelled rows to
// extend. It is the only bulk operation with a precondition worth surfacing;
// everything else degrades to a silent no-op.
var ErrNoRows = errors.New("layout has no rows")

// DefaultRowCount is how many seats AddRow lays out when the caller does not
// say otherwise.
const DefaultRowCount = 10

// AddRow generates a fresh row of count seats below the current layout. The
// row letter is one past the maximum row letter already present (A for an
// empty layout); seats are laid out horizontally with the standard gap and
// inherit the active category's color and price. One history step.
func (e *Editor) AddRow(count int) []Seat {
	if count <= 0 {
		count = DefaultRowCount
	}
	e.checkpoint()
	letter := nextRowLetter(e.store.seats)
	size := e.store.seatSize
	baseY := SeatGap
	if len(e.store.seats) > 0 {
		baseY = e.store.MaxY() + size + SeatGap
	}
	added := make([]Seat, 0, count)
	for i := 0; i < count; i++ {
		s := Seat{
			ID:       NewID(),
			Label:    fmt.Sprintf("%s%d", letter, i+1),
			X:        SeatGap + float64(i)*(size+SeatGap),
			Y:        baseY,
			Color:    e.active.Color,
			Category: e.active.ID,
			Size:     size,
			Type:     e.active.ID,
			Price:    e.active.Price,
			Status:   StatusAvailable,
		}
		added = append(added, s)
	}
	e.store.Append(added...)
	return added
}

// AddColumn appends one seat to the right end of every existing row. The new
// seat sits one seat step right of the row's rightmost seat, is labelled
// {row}{len+1}, and inherits the rightmost seat's styling so the row stays
// uniform. Returns ErrNoRows when there is nothing to extend.
func (e *Editor) AddColumn() ([]Seat, error) {
	rows := make(map[string][]Seat)
	for _, s := range e.store.seats {
		if r := s.Row(); r != "" {
			rows[r] = append(rows[r], s)
		}
	}
	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	e.checkpoint()
	letters := make([]string, 0, len(rows))
	for r := range rows {
		letters = append(letters, r)
	}
	SortRowLetters(letters)
	size := e.store.seatSize
	added := make([]Seat, 0, len(letters))
	for _, letter := range letters {
		rowSeats := rows[letter]
		right := rowSeats[0]
		for _, s := range rowSeats[1:] {
			if s.X > right.X {
				right = s
			}
		}
		added = append(added, Seat{
			ID:       NewID(),
			Label:    fmt.Sprintf("%s%d", letter, len(rowSeats)+1),
			X:        right.X + size + SeatGap,
			Y:        right.Y,
			Color:    right.Color,
			Category: right.Category,
			Size:     size,
			Type:     right.Type,
			Price:    right.Price,
			Status:   StatusAvailable,
		})
	}
	e.store.Append(added...)
	return added, nil
}

// AddGrid generates a dense rows by cols block of seats below the current
// layout, labelled {rowletter}{colnumber}, all styled from the active
// category. One history step for the whole block.
func (e *Editor) AddGrid(rows, cols int) []Seat {
	if rows <= 0 || cols <= 0 {
		return nil
	}
	e.checkpoint()
	size := e.store.seatSize
	baseY := SeatGap
	if len(e.store.seats) > 0 {
		baseY = e.store.MaxY() + size + SeatGap
	}
	added := gridSeats(rows, cols, SeatGap, baseY, size, e.active)
	e.store.Append(added...)
	return added
}

// gridSeats builds the seats of a rectangular block without touching any
// store. Shared by AddGrid and the default theatre generation.
func gridSeats(rows, cols int, baseX, baseY, size float64, cat Category) []Seat {
	out := make([]Seat, 0, rows*cols)
	for r := 0; r < rows; r++ {
		letter := RowLabel(r)
		for c := 0; c < cols; c++ {
			out = append(out, Seat{
				ID:       NewID(),
				Label:    fmt.Sprintf("%s%d", letter, c+1),
				X:        baseX + float64(c)*(size+SeatGap),
				Y:        baseY + float64(r)*(size+SeatGap),
				Color:    cat.Color,
				Category: cat.ID,
				Size:     size,
				Type:     cat.ID,
				Price:    cat.Price,
				Status:   StatusAvailable,
			})
		}
	}
	return out
}

// DefaultTheatre builds the fallback layout used when a venue has no
// persisted document: a plain rows by cols grid in the registry's first
// category.
func DefaultTheatre(cats *Registry, rows, cols int) *Layout {
	cat, _ := cats.First()
	return &Layout{Seats: gridSeats(rows, cols, SeatGap, SeatGap, DefaultSeatSize, cat)}
}

// DeleteRow removes every seat whose label starts with the given row letter,
// in one atomic history step. Unknown letters no-op without a history entry.
func (e *Editor) DeleteRow(letter string) int {
	letter = strings.ToUpper(strings.TrimSpace(letter))
	if letter == "" {
		return 0
	}
	ids := make(map[string]struct{})
	for _, s := range e.store.seats {
		if s.Row() == letter {
			ids[s.ID] = struct{}{}
		}
	}
	if len(ids) == 0 {
		return 0
	}
	e.checkpoint()
	n := e.store.RemoveSeats(ids)
	e.sel.Drop(ids)
	return n
}

// DeleteColumn removes every seat whose label carries the given column
// suffix, across all rows, in one atomic history step.
func (e *Editor) DeleteColumn(suffix string) int {
	suffix = strings.TrimSpace(suffix)
	if suffix == "" {
		return 0
	}
	ids := make(map[string]struct{})
	for _, s := range e.store.seats {
		if s.ColumnSuffix() == suffix {
			ids[s.ID] = struct{}{}
		}
	}
	if len(ids) == 0 {
		return 0
	}
	e.checkpoint()
	n := e.store.RemoveSeats(ids)
	e.sel.Drop(ids)
	return n
}

// CopySelected snapshots the selected seats into the clipboard in selection
// order. Each snapshot gets a fresh id immediately, so clipboard entries are
// never aliases of the seats they came from. Copying does not mutate the
// layout and leaves no history entry.
func (e *Editor) CopySelected() int {
	ids := e.sel.IDs()
	if len(ids) == 0 {
		return 0
	}
	clip := make([]Seat, 0, len(ids))
	for _, id := range ids {
		if s, ok := e.store.Get(id); ok {
			s.ID = NewID()
			clip = append(clip, s)
		}
	}
	e.clip = clip
	return len(clip)
}

// Paste inserts the clipboard contents offset by (PasteOffsetX, PasteOffsetY)
// from their copied positions and selects exactly the pasted seats. The
// clipboard keeps its contents but re-mints its ids so a second paste cannot
// duplicate an identifier.
func (e *Editor) Paste() []Seat {
	if len(e.clip) == 0 {
		return nil
	}
	e.checkpoint()
	pasted := make([]Seat, len(e.clip))
	ids := make([]string, len(e.clip))
	for i, s := range e.clip {
		s.X += PasteOffsetX
		s.Y += PasteOffsetY
		pasted[i] = s
		ids[i] = s.ID
		e.clip[i].ID = NewID()
	}
	e.store.Append(pasted...)
	e.sel.Replace(ids)
	return pasted
}

// ClipboardLen returns the number of seats held in the clipboard.
func (e *Editor) ClipboardLen() int { return len(e.clip) }

// SetCategoryForSelection restyles every selected seat from the target
// category: category reference, color and price move together, in a single
// history step. Empty selections and unknown categories no-op.
func (e *Editor) SetCategoryForSelection(categoryID string) int {
	cat, ok := e.cats.Get(categoryID)
	if !ok || e.sel.Len() == 0 {
		return 0
	}
	e.checkpoint()
	n := 0
	for _, id := range e.sel.IDs() {
		if _, exists := e.store.Get(id); !exists {
			continue
		}
		e.store.UpdateSeat(id, SeatPatch{
			Category: &cat.ID,
			Color:    &cat.Color,
			Price:    &cat.Price,
		})
		n++
	}
	return n
}
