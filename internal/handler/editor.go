package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/seatkit/layout-designer/internal/config"
	"github.com/seatkit/layout-designer/internal/layout"
	"github.com/seatkit/layout-designer/internal/middleware"
	"github.com/seatkit/layout-designer/internal/queue"
	queue_publisher "github.com/seatkit/layout-designer/internal/service"
	"github.com/seatkit/layout-designer/internal/session"
)

// EditorHandler exposes the editing session over HTTP. Every mutation is a
// single intent posted to the session; the handler binds it, runs it under
// the session lock, and answers with the full editor view so the client can
// re-render without tracking deltas.
type EditorHandler struct {
	Cfg      config.Config
	Sessions *session.Manager
	Layouts  session.LayoutStore
	Rdb      *redis.Client
	CacheCfg config.CacheConfig
}

func NewEditorHandler(cfg config.Config, m *session.Manager, layouts session.LayoutStore, rdb *redis.Client, cacheCfg config.CacheConfig) *EditorHandler {
	return &EditorHandler{Cfg: cfg, Sessions: m, Layouts: layouts, Rdb: rdb, CacheCfg: cacheCfg}
}

// ----- intent DTO -----

// intentReq is the tagged union posted to the intent endpoint. Type selects
// the operation; the other fields are read only where they apply. Pointer
// fields distinguish "absent" from zero.
type intentReq struct {
	Type string `json:"type"`

	// target ids
	ID      string `json:"id,omitempty"`
	TableID string `json:"table_id,omitempty"`
	SeatID  string `json:"seat_id,omitempty"`

	// coordinates: X/Y for placements and moves, X2/Y2 for the marquee's
	// opposite corner
	X  *float64 `json:"x,omitempty"`
	Y  *float64 `json:"y,omitempty"`
	X2 *float64 `json:"x2,omitempty"`
	Y2 *float64 `json:"y2,omitempty"`

	// Snap defaults to true when omitted
	Snap *bool `json:"snap,omitempty"`

	// bulk shape parameters
	Count  *int   `json:"count,omitempty"`
	Rows   *int   `json:"rows,omitempty"`
	Cols   *int   `json:"cols,omitempty"`
	Row    string `json:"row,omitempty"`
	Column string `json:"column,omitempty"`

	Category string `json:"category,omitempty"`

	// update_seat patch fields
	Label  *string  `json:"label,omitempty"`
	Color  *string  `json:"color,omitempty"`
	Size   *float64 `json:"size,omitempty"`
	Price  *float64 `json:"price,omitempty"`
	Status *string  `json:"status,omitempty"`
}

// editorView is the render state returned after every editor call.
type editorView struct {
	VenueID        uint64            `json:"venue_id"`
	Seats          []layout.Seat     `json:"seats"`
	Tables         []layout.Table    `json:"tables"`
	Selection      []string          `json:"selection"`
	ActiveCategory string            `json:"active_category"`
	Categories     []layout.Category `json:"categories"`
	CanUndo        bool              `json:"can_undo"`
	CanRedo        bool              `json:"can_redo"`
	ClipboardSize  int               `json:"clipboard_size"`
}

func buildView(venueID uint64, e *layout.Editor) editorView {
	return editorView{
		VenueID:        venueID,
		Seats:          e.Store().Seats(),
		Tables:         e.Store().Tables(),
		Selection:      e.Selection().IDs(),
		ActiveCategory: e.ActiveCategory().ID,
		Categories:     e.Categories().All(),
		CanUndo:        e.CanUndo(),
		CanRedo:        e.CanRedo(),
		ClipboardSize:  e.ClipboardLen(),
	}
}

// Open creates (or resumes) the editing session for a venue and returns the
// current editor view. A venue with no stored layout opens on the generated
// default theatre.
func (h *EditorHandler) Open(c echo.Context) error {
	venueID, ok := venueIDParam(c)
	if !ok {
		return nil
	}
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	sess, err := h.Sessions.Open(ctx, venueID, uid)
	if err != nil {
		if errors.Is(err, session.ErrForbidden) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "venue belongs to another owner"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "open session failed"})
	}

	var view editorView
	sess.Do(func(e *layout.Editor) { view = buildView(venueID, e) })
	return c.JSON(http.StatusOK, view)
}

// Intent applies one editing operation to the open session and returns the
// resulting editor view.
func (h *EditorHandler) Intent(c echo.Context) error {
	sess, ok := h.session(c)
	if !ok {
		return nil
	}

	var req intentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	var (
		applyErr error
		view     editorView
	)
	sess.Do(func(e *layout.Editor) {
		applyErr = applyIntent(e, &req)
		view = buildView(sess.VenueID(), e)
	})
	if applyErr != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": applyErr.Error()})
	}
	return c.JSON(http.StatusOK, view)
}

var errUnknownIntent = errors.New("unknown intent type")

func applyIntent(e *layout.Editor, req *intentReq) error {
	f := func(p *float64) float64 {
		if p == nil {
			return 0
		}
		return *p
	}
	snap := true
	if req.Snap != nil {
		snap = *req.Snap
	}

	switch req.Type {
	case "add_seat":
		e.AddSeat(f(req.X), f(req.Y))
	case "update_seat":
		if req.ID == "" {
			return errors.New("id required")
		}
		var status *layout.SeatStatus
		if req.Status != nil {
			s := layout.SeatStatus(*req.Status)
			if !layout.ValidStatus(s) {
				return errors.New("invalid status")
			}
			status = &s
		}
		var cat *string
		if req.Category != "" {
			cat = &req.Category
		}
		e.UpdateSeat(req.ID, layout.SeatPatch{
			Label:    req.Label,
			Color:    req.Color,
			Category: cat,
			Size:     req.Size,
			Price:    req.Price,
			Status:   status,
		})
	case "move_seat":
		if req.ID == "" {
			return errors.New("id required")
		}
		e.MoveSeat(req.ID, f(req.X), f(req.Y), snap)
	case "remove_selected":
		e.RemoveSelected()
	case "toggle_select":
		if req.ID == "" {
			return errors.New("id required")
		}
		e.ToggleSelect(req.ID)
	case "marquee":
		e.MarqueeSelect(f(req.X), f(req.Y), f(req.X2), f(req.Y2))
	case "select_all":
		e.SelectAll()
	case "clear_selection":
		e.ClearSelection()
	case "set_active_category":
		if !e.SetActiveCategory(req.Category) {
			return errors.New("unknown category")
		}
	case "add_row":
		count := layout.DefaultRowCount
		if req.Count != nil {
			count = *req.Count
		}
		e.AddRow(count)
	case "add_column":
		if _, err := e.AddColumn(); err != nil {
			return err
		}
	case "add_grid":
		rows, cols := 0, 0
		if req.Rows != nil {
			rows = *req.Rows
		}
		if req.Cols != nil {
			cols = *req.Cols
		}
		if rows <= 0 || cols <= 0 {
			return errors.New("rows and cols must be positive")
		}
		e.AddGrid(rows, cols)
	case "delete_row":
		if req.Row == "" {
			return errors.New("row required")
		}
		e.DeleteRow(req.Row)
	case "delete_column":
		if req.Column == "" {
			return errors.New("column required")
		}
		e.DeleteColumn(req.Column)
	case "copy":
		e.CopySelected()
	case "paste":
		e.Paste()
	case "set_category":
		if req.Category == "" {
			return errors.New("category required")
		}
		if _, ok := e.Categories().Get(req.Category); !ok {
			return errors.New("unknown category")
		}
		e.SetCategoryForSelection(req.Category)
	case "add_table":
		count := 4
		if req.Count != nil {
			count = *req.Count
		}
		if count <= 0 {
			return errors.New("count must be positive")
		}
		e.AddTable(f(req.X), f(req.Y), count)
	case "move_table":
		if req.ID == "" {
			return errors.New("id required")
		}
		e.MoveTable(req.ID, f(req.X), f(req.Y), snap)
	case "move_table_seat":
		if req.TableID == "" || req.SeatID == "" {
			return errors.New("table_id and seat_id required")
		}
		e.MoveTableSeat(req.TableID, req.SeatID, f(req.X), f(req.Y), snap)
	case "remove_table":
		if req.ID == "" {
			return errors.New("id required")
		}
		e.RemoveTable(req.ID)
	default:
		return errUnknownIntent
	}
	return nil
}

// Undo steps the session one checkpoint back.
func (h *EditorHandler) Undo(c echo.Context) error {
	return h.step(c, func(e *layout.Editor) bool { return e.Undo() })
}

// Redo reapplies the last undone checkpoint.
func (h *EditorHandler) Redo(c echo.Context) error {
	return h.step(c, func(e *layout.Editor) bool { return e.Redo() })
}

func (h *EditorHandler) step(c echo.Context, fn func(*layout.Editor) bool) error {
	sess, ok := h.session(c)
	if !ok {
		return nil
	}
	var (
		applied bool
		view    editorView
	)
	sess.Do(func(e *layout.Editor) {
		applied = fn(e)
		view = buildView(sess.VenueID(), e)
	})
	return c.JSON(http.StatusOK, echo.Map{"applied": applied, "editor": view})
}

// Save persists the session's current layout, invalidates the cached read
// and publishes a layout.saved event. A save issued while another one is
// running is refused with 409; local editing continues either way.
func (h *EditorHandler) Save(c echo.Context) error {
	sess, ok := h.session(c)
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	snap, err := sess.Save(ctx, h.Layouts)
	if err != nil {
		if errors.Is(err, session.ErrSaveInFlight) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "save already in progress"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save failed"})
	}

	h.invalidateLayoutCache(sess.VenueID())

	ev := queue.LayoutSavedEvent{
		VenueID:    sess.VenueID(),
		OwnerID:    sess.OwnerID(),
		SeatCount:  len(snap.Seats),
		TableCount: len(snap.Tables),
		SavedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	// Best effort: a broker outage must not fail the save.
	go func() {
		pctx, pcancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer pcancel()
		_ = queue_publisher.PublishLayoutSaved(pctx, ev)
	}()

	return c.JSON(http.StatusOK, echo.Map{
		"saved_at":    ev.SavedAt,
		"seat_count":  ev.SeatCount,
		"table_count": ev.TableCount,
	})
}

// CloseSession drops the venue's editor session. Unsaved edits are discarded.
func (h *EditorHandler) CloseSession(c echo.Context) error {
	sess, ok := h.session(c)
	if !ok {
		return nil
	}
	h.Sessions.Close(sess.VenueID())
	return c.NoContent(http.StatusNoContent)
}

// session resolves the open session for the request's venue and user; on
// failure it writes the error response itself and reports !ok.
func (h *EditorHandler) session(c echo.Context) (*session.Session, bool) {
	venueID, ok := venueIDParam(c)
	if !ok {
		return nil, false
	}
	uid, ok := currentUserID(c)
	if !ok {
		_ = c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		return nil, false
	}
	sess, err := h.Sessions.Get(venueID, uid)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrNoSession):
			_ = c.JSON(http.StatusConflict, echo.Map{"error": "editor session not open"})
		case errors.Is(err, session.ErrForbidden):
			_ = c.JSON(http.StatusForbidden, echo.Map{"error": "venue belongs to another owner"})
		default:
			_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "session lookup failed"})
		}
		return nil, false
	}
	return sess, true
}

func (h *EditorHandler) invalidateLayoutCache(venueID uint64) {
	if h.Rdb == nil || !h.CacheCfg.Enabled {
		return
	}
	path := layoutPath(venueID)
	key := middleware.CacheKey(h.CacheCfg, http.MethodGet, path, "")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = h.Rdb.Del(ctx, key).Err()
}
