package layout

import (
	"encoding/json"
	"errors"
)

// ErrInvalidDocument is reported when a persisted layout is not a JSON
// object. Callers route it through the same fallback path as a missing
// layout rather than letting a corrupt row crash the editor.
var ErrInvalidDocument = errors.New("layout document is not a JSON object")

// fallbackColor styles seats whose document carries neither a color nor a
// known category.
const fallbackColor = "#9e9e9e"

// seatDoc is the wire form of a seat. Optionals are pointers so a missing
// field can be told apart from a zero one and defaulted.
type seatDoc struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Color    string   `json:"color"`
	Category string   `json:"category"`
	Size     *float64 `json:"size"`
	Type     string   `json:"type"`
	Price    *float64 `json:"price"`
	Status   string   `json:"status"`
}

type tableSeatDoc struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	OffsetX  float64  `json:"offset_x"`
	OffsetY  float64  `json:"offset_y"`
	Detached bool     `json:"detached"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Color    string   `json:"color"`
	Category string   `json:"category"`
	Price    *float64 `json:"price"`
	Status   string   `json:"status"`
}

type tableDoc struct {
	ID    string         `json:"id"`
	Label string         `json:"label"`
	X     float64        `json:"x"`
	Y     float64        `json:"y"`
	Size  *float64       `json:"size"`
	Seats []tableSeatDoc `json:"seats"`
}

type layoutDoc struct {
	Seats  []seatDoc  `json:"seats"`
	Tables []tableDoc `json:"tables"`
}

// EncodeLayout serializes a layout into the persisted document shape.
func EncodeLayout(l *Layout) ([]byte, error) {
	return json.Marshal(l)
}

// DecodeLayout parses a persisted layout document. Unknown fields are
// ignored and missing optional fields are defaulted, against the given
// registry where a seat names a known category: size falls back to the
// default seat size, price and color to the category's values, status to
// available. Only a document whose top level is not an object fails.
func DecodeLayout(data []byte, cats *Registry) (*Layout, error) {
	var doc layoutDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, ErrInvalidDocument
	}
	out := &Layout{}
	for _, d := range doc.Seats {
		out.Seats = append(out.Seats, decodeSeat(d, cats))
	}
	for _, d := range doc.Tables {
		out.Tables = append(out.Tables, decodeTable(d, cats))
	}
	return out, nil
}

func decodeSeat(d seatDoc, cats *Registry) Seat {
	s := Seat{
		ID:       d.ID,
		Label:    d.Label,
		X:        d.X,
		Y:        d.Y,
		Color:    d.Color,
		Category: d.Category,
		Type:     d.Type,
		Status:   SeatStatus(d.Status),
	}
	if s.ID == "" {
		s.ID = NewID()
	}
	// category and its legacy type mirror complete each other
	if s.Category == "" {
		s.Category = s.Type
	}
	if s.Type == "" {
		s.Type = s.Category
	}
	cat, known := cats.Get(s.Category)
	if d.Size != nil && *d.Size > 0 {
		s.Size = *d.Size
	} else {
		s.Size = DefaultSeatSize
	}
	if d.Price != nil {
		s.Price = *d.Price
	} else if known {
		s.Price = cat.Price
	}
	if s.Color == "" {
		if known {
			s.Color = cat.Color
		} else {
			s.Color = fallbackColor
		}
	}
	if !ValidStatus(s.Status) {
		s.Status = StatusAvailable
	}
	return s
}

func decodeTable(d tableDoc, cats *Registry) Table {
	t := Table{
		ID:    d.ID,
		Label: d.Label,
		X:     d.X,
		Y:     d.Y,
	}
	if t.ID == "" {
		t.ID = NewID()
	}
	if d.Size != nil && *d.Size > 0 {
		t.Size = *d.Size
	} else {
		t.Size = DefaultSeatSize * 2
	}
	for _, sd := range d.Seats {
		ts := TableSeat{
			ID:       sd.ID,
			Label:    sd.Label,
			OffsetX:  sd.OffsetX,
			OffsetY:  sd.OffsetY,
			Detached: sd.Detached,
			X:        sd.X,
			Y:        sd.Y,
			Color:    sd.Color,
			Category: sd.Category,
			Status:   SeatStatus(sd.Status),
		}
		if ts.ID == "" {
			ts.ID = NewID()
		}
		cat, known := cats.Get(ts.Category)
		if sd.Price != nil {
			ts.Price = *sd.Price
		} else if known {
			ts.Price = cat.Price
		}
		if ts.Color == "" {
			if known {
				ts.Color = cat.Color
			} else {
				ts.Color = fallbackColor
			}
		}
		if !ValidStatus(ts.Status) {
			ts.Status = StatusAvailable
		}
		t.Seats = append(t.Seats, ts)
	}
	return t
}
