package layout

import (
	"fmt"

	"github.com/seatkit/layout-designer/internal/geometry"
)

// Editor tuning defaults. GridSize and SeatSize can be overridden per store
// through config; the paste offset and the gap between generated seats are
// fixed conventions of the designer.
const (
	DefaultGridSize = 10.0
	DefaultSeatSize = 40.0
	SeatGap         = 10.0
	PasteOffsetX    = 50.0
	PasteOffsetY    = 50.0
)

// SeatPatch is a partial seat update. Nil fields are left untouched. The id,
// and only the id, can never be patched.
type SeatPatch struct {
	Label    *string
	X        *float64
	Y        *float64
	Color    *string
	Category *string
	Size     *float64
	Price    *float64
	Status   *SeatStatus
}

// Store is the authoritative in-memory layout model: the ordered seat and
// table collections plus their create/update/delete mutations. It never
// touches history or selection itself; callers snapshot before mutating so
// the store stays a plain, unit-testable data structure.
type Store struct {
	seats    []Seat
	tables   []Table
	grid     float64 // snap grid step
	seatSize float64 // edge length for newly created seats
}

// NewStore returns an empty store with the default grid and seat size.
func NewStore() *Store {
	return &Store{grid: DefaultGridSize, seatSize: DefaultSeatSize}
}

// NewStoreWith returns an empty store with an explicit grid step and seat
// size. Non-positive values fall back to the defaults.
func NewStoreWith(grid, seatSize float64) *Store {
	if grid <= 0 {
		grid = DefaultGridSize
	}
	if seatSize <= 0 {
		seatSize = DefaultSeatSize
	}
	return &Store{grid: grid, seatSize: seatSize}
}

// Grid returns the snap grid step.
func (st *Store) Grid() float64 { return st.grid }

// SeatSize returns the default edge length for new seats.
func (st *Store) SeatSize() float64 { return st.seatSize }

// Len returns the number of standalone seats (table seats not included).
func (st *Store) Len() int { return len(st.seats) }

// Seats returns a copy of the seat collection in insertion order.
func (st *Store) Seats() []Seat {
	out := make([]Seat, len(st.seats))
	copy(out, st.seats)
	return out
}

// Tables returns a deep copy of the table collection.
func (st *Store) Tables() []Table {
	out := make([]Table, len(st.tables))
	for i, t := range st.tables {
		out[i] = t.clone()
	}
	return out
}

// Get returns the seat with the given id.
func (st *Store) Get(id string) (Seat, bool) {
	for _, s := range st.seats {
		if s.ID == id {
			return s, true
		}
	}
	return Seat{}, false
}

// AddSeat creates a seat at the given position with a fresh id and the
// default label S{n+1}, copies the category's color and price onto it, and
// appends it to the collection. The label is not guaranteed unique when
// seats were deleted earlier; that laxity is accepted.
func (st *Store) AddSeat(x, y float64, cat Category) Seat {
	s := Seat{
		ID:       NewID(),
		Label:    fmt.Sprintf("S%d", len(st.seats)+1),
		X:        x,
		Y:        y,
		Color:    cat.Color,
		Category: cat.ID,
		Size:     st.seatSize,
		Type:     cat.ID,
		Price:    cat.Price,
		Status:   StatusAvailable,
	}
	st.seats = append(st.seats, s)
	return s
}

// Append inserts already-built seats at the end of the collection. Used by
// bulk generation and paste, which mint ids themselves.
func (st *Store) Append(seats ...Seat) {
	st.seats = append(st.seats, seats...)
}

// UpdateSeat applies a partial update to the seat with the given id. An
// absent id is a silent no-op: a drag-stop can race a deletion issued in the
// same tick, and that must never surface as an error. When the patch changes
// the category the Type mirror follows it.
func (st *Store) UpdateSeat(id string, p SeatPatch) {
	for i := range st.seats {
		if st.seats[i].ID != id {
			continue
		}
		s := &st.seats[i]
		if p.Label != nil {
			s.Label = *p.Label
		}
		if p.X != nil {
			s.X = *p.X
		}
		if p.Y != nil {
			s.Y = *p.Y
		}
		if p.Color != nil {
			s.Color = *p.Color
		}
		if p.Category != nil {
			s.Category = *p.Category
			s.Type = *p.Category
		}
		if p.Size != nil {
			s.Size = *p.Size
		}
		if p.Price != nil {
			s.Price = *p.Price
		}
		if p.Status != nil {
			s.Status = *p.Status
		}
		return
	}
}

// MoveSeat is the drag-stop entry point: it optionally snaps the dropped
// position to the grid and applies it. Snapping happens only at drag end,
// never during the drag, so the seat does not jitter under the pointer.
func (st *Store) MoveSeat(id string, x, y float64, snap bool) {
	if snap {
		x = geometry.Snap(x, st.grid)
		y = geometry.Snap(y, st.grid)
	}
	st.UpdateSeat(id, SeatPatch{X: &x, Y: &y})
}

// RemoveSeats filters out every seat whose id is in ids and reports how many
// were removed.
func (st *Store) RemoveSeats(ids map[string]struct{}) int {
	if len(ids) == 0 {
		return 0
	}
	kept := st.seats[:0]
	removed := 0
	for _, s := range st.seats {
		if _, hit := ids[s.ID]; hit {
			removed++
			continue
		}
		kept = append(kept, s)
	}
	st.seats = kept
	return removed
}

// MaxY returns the largest seat y coordinate, or 0 when the store is empty.
func (st *Store) MaxY() float64 {
	max := 0.0
	for _, s := range st.seats {
		if s.Y > max {
			max = s.Y
		}
	}
	return max
}

// AddTable creates a table at (x, y) with count seats spread evenly around
// it, all carrying the category's color and price. Table seats are labelled
// {table label}-{n}.
func (st *Store) AddTable(x, y float64, label string, count int, cat Category) Table {
	t := Table{
		ID:    NewID(),
		Label: label,
		X:     x,
		Y:     y,
		Size:  st.seatSize * 2,
	}
	for i, off := range circleOffsets(count, t.Size) {
		t.Seats = append(t.Seats, TableSeat{
			ID:       NewID(),
			Label:    fmt.Sprintf("%s-%d", label, i+1),
			OffsetX:  off[0],
			OffsetY:  off[1],
			Color:    cat.Color,
			Category: cat.ID,
			Price:    cat.Price,
			Status:   StatusAvailable,
		})
	}
	st.tables = append(st.tables, t)
	return t
}

// MoveTable moves a table's anchor, dragging every still-attached seat with
// it. Detached seats keep their absolute positions. Absent ids no-op.
func (st *Store) MoveTable(id string, x, y float64, snap bool) {
	if snap {
		x = geometry.Snap(x, st.grid)
		y = geometry.Snap(y, st.grid)
	}
	for i := range st.tables {
		if st.tables[i].ID == id {
			st.tables[i].X = x
			st.tables[i].Y = y
			return
		}
	}
}

// MoveTableSeat drags one of a table's seats individually. The seat is
// promoted to a detached absolute position and stops following the table.
// Absent ids no-op.
func (st *Store) MoveTableSeat(tableID, seatID string, x, y float64, snap bool) {
	if snap {
		x = geometry.Snap(x, st.grid)
		y = geometry.Snap(y, st.grid)
	}
	for i := range st.tables {
		if st.tables[i].ID != tableID {
			continue
		}
		for j := range st.tables[i].Seats {
			if st.tables[i].Seats[j].ID == seatID {
				st.tables[i].Seats[j].Detached = true
				st.tables[i].Seats[j].X = x
				st.tables[i].Seats[j].Y = y
				return
			}
		}
		return
	}
}

// RemoveTable deletes a table and all of its seats. Absent ids no-op.
func (st *Store) RemoveTable(id string) {
	kept := st.tables[:0]
	for _, t := range st.tables {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	st.tables = kept
}

// Layout returns a deep-copy snapshot of the full store contents. The result
// is safe to hand to the history stack or the persistence adapter.
func (st *Store) Layout() *Layout {
	l := &Layout{Seats: st.seats, Tables: st.tables}
	return l.Clone()
}

// Restore replaces the store contents from a snapshot. The snapshot is
// deep-copied in, so the caller's copy stays independent.
func (st *Store) Restore(l *Layout) {
	cp := l.Clone()
	st.seats = cp.Seats
	st.tables = cp.Tables
}
