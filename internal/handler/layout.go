package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/seatkit/layout-designer/internal/layout"
	"github.com/seatkit/layout-designer/internal/repository"
)

// LayoutHandler serves read-only views of persisted layouts. The GET route
// sits behind the Redis cache middleware; the editor's save invalidates it.
type LayoutHandler struct {
	Layouts *repository.LayoutRepo
}

func NewLayoutHandler(layouts *repository.LayoutRepo) *LayoutHandler {
	return &LayoutHandler{Layouts: layouts}
}

// layoutPath is the concrete URL of a venue's layout read, shared with the
// cache invalidation in the save path.
func layoutPath(venueID uint64) string {
	return fmt.Sprintf("/v1/venues/%d/layout", venueID)
}

type rowSummary struct {
	Row   string `json:"row"`
	Seats int    `json:"seats"`
}

type layoutResp struct {
	VenueID uint64         `json:"venue_id"`
	Layout  *layout.Layout `json:"layout"`
	Rows    []rowSummary   `json:"rows"`
}

// Get returns the persisted layout of a venue together with a per-row seat
// summary. Venues that were never saved answer 404.
func (h *LayoutHandler) Get(c echo.Context) error {
	venueID, ok := venueIDParam(c)
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	l, err := h.Layouts.Load(ctx, venueID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrLayoutNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "layout not found"})
		case errors.Is(err, repository.ErrLayoutCorrupt):
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "layout document corrupt"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
	}

	return c.JSON(http.StatusOK, layoutResp{
		VenueID: venueID,
		Layout:  l,
		Rows:    summarizeRows(l.Seats),
	})
}

// summarizeRows groups seats by row letter in theatre order (A, B, ... Z,
// AA, AB, ...).
func summarizeRows(seats []layout.Seat) []rowSummary {
	counts := make(map[string]int)
	for _, s := range seats {
		if r := s.Row(); r != "" {
			counts[r]++
		}
	}
	letters := make([]string, 0, len(counts))
	for r := range counts {
		letters = append(letters, r)
	}
	layout.SortRowLetters(letters)
	out := make([]rowSummary, 0, len(letters))
	for _, r := range letters {
		out = append(out, rowSummary{Row: r, Seats: counts[r]})
	}
	return out
}
