package layout

import "math"

// TableSeat is a seat owned by a table. While attached it has no position of
// its own: it is placed at the table anchor plus its offset, so dragging the
// table moves the whole party rigidly. Dragging the seat individually
// detaches it to an absolute position that no longer follows the table.
type TableSeat struct {
	ID       string     `json:"id"`
	Label    string     `json:"label"`
	OffsetX  float64    `json:"offset_x"`
	OffsetY  float64    `json:"offset_y"`
	Detached bool       `json:"detached,omitempty"`
	X        float64    `json:"x,omitempty"` // absolute position, meaningful only when Detached
	Y        float64    `json:"y,omitempty"`
	Color    string     `json:"color"`
	Category string     `json:"category"`
	Price    float64    `json:"price"`
	Status   SeatStatus `json:"status"`
}

// Table groups a set of seats around a shared anchor point.
type Table struct {
	ID     string      `json:"id"`
	Label  string      `json:"label"`
	X      float64     `json:"x"`
	Y      float64     `json:"y"`
	Size   float64     `json:"size"` // edge length of the table's square
	Seats  []TableSeat `json:"seats"`
}

func (t Table) clone() Table {
	cp := t
	if t.Seats != nil {
		cp.Seats = make([]TableSeat, len(t.Seats))
		copy(cp.Seats, t.Seats)
	}
	return cp
}

// SeatPosition resolves the canvas position of one of the table's seats:
// anchor plus offset while attached, the stored absolute position once
// detached.
func (t Table) SeatPosition(s TableSeat) (float64, float64) {
	if s.Detached {
		return s.X, s.Y
	}
	return t.X + s.OffsetX, t.Y + s.OffsetY
}

// circleOffsets spreads n seats evenly on a circle around a table of the
// given size, starting at twelve o'clock.
func circleOffsets(n int, size float64) [][2]float64 {
	if n <= 0 {
		return nil
	}
	radius := size/2 + size*0.6
	center := size / 2
	out := make([][2]float64, n)
	for i := 0; i < n; i++ {
		angle := 2*math.Pi*float64(i)/float64(n) - math.Pi/2
		out[i] = [2]float64{
			center + radius*math.Cos(angle),
			center + radius*math.Sin(angle),
		}
	}
	return out
}
