// Package layout implements the seat/table layout designer engine: the
// in-memory seat collection, selection tracking, snapshot history for
// undo/redo, clipboard copy/paste and the row/column bulk operations. The
// package is independent of any transport or storage; internal/session and
// internal/repository wire it to HTTP and MySQL.
package layout

// SeatStatus is the commercial state of a seat. The editor never changes it;
// it is carried through load/save so the designer can render sold seats
// differently.
type SeatStatus string

const (
	StatusAvailable SeatStatus = "available"
	StatusReserved  SeatStatus = "reserved"
	StatusSold      SeatStatus = "sold"
)

// ValidStatus reports whether s is one of the three known seat statuses.
func ValidStatus(s SeatStatus) bool {
	return s == StatusAvailable || s == StatusReserved || s == StatusSold
}

// Seat is the addressable unit of a layout. The JSON tags form the persisted
// record contract: Type mirrors Category for older readers of the document.
//
// The label convention is load-bearing: its first character is the row and
// the remaining characters are the column number. Labels are not required to
// be unique; duplicate labels are tolerated and never deduplicated, so a
// mislabeled seat can never cause an unrelated seat to be deleted.
type Seat struct {
	ID       string     `json:"id"`    // opaque unique identifier, immutable
	Label    string     `json:"label"` // e.g. "A1"; row letter + column number
	X        float64    `json:"x"`
	Y        float64    `json:"y"`
	Color    string     `json:"color"`    // hex, denormalized from the category
	Category string     `json:"category"` // category id
	Size     float64    `json:"size"`     // edge length of the square hit-region
	Type     string     `json:"type"`     // category id mirrored for legacy documents
	Price    float64    `json:"price"`    // denormalized category price at assignment time
	Status   SeatStatus `json:"status"`
}

// Row returns the row grouping character of the seat's label, or "" when the
// label is empty.
func (s Seat) Row() string {
	if s.Label == "" {
		return ""
	}
	return s.Label[:1]
}

// ColumnSuffix returns everything after the row character of the label. It is
// the raw string form; callers that need a number parse it themselves.
func (s Seat) ColumnSuffix() string {
	if len(s.Label) < 2 {
		return ""
	}
	return s.Label[1:]
}

// Layout is the persistence unit: the full seat collection plus any tables.
type Layout struct {
	Seats  []Seat  `json:"seats"`
	Tables []Table `json:"tables,omitempty"`
}

// Clone returns a fully independent deep copy. History snapshots and
// restores must go through Clone; sharing slices between the live store and
// a stored snapshot would let later edits corrupt prior history entries.
func (l *Layout) Clone() *Layout {
	cp := &Layout{}
	if l.Seats != nil {
		cp.Seats = make([]Seat, len(l.Seats))
		copy(cp.Seats, l.Seats)
	}
	if l.Tables != nil {
		cp.Tables = make([]Table, len(l.Tables))
		for i, t := range l.Tables {
			cp.Tables[i] = t.clone()
		}
	}
	return cp
}
