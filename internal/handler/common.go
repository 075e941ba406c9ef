// Package handler contains the HTTP handlers of the layout designer service.
package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// currentUserID extracts the authenticated user's numeric ID from the values
// JWTAuth stored in the context. JSON claim numbers arrive as float64; some
// tokens carry the subject as a string.
func currentUserID(c echo.Context) (uint64, bool) {
	switch v := c.Get("user_id").(type) {
	case float64:
		return uint64(v), true
	case uint64:
		return v, true
	case string:
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

// venueIDParam parses the :id route parameter. A malformed ID is answered
// with 400 directly; callers only proceed when ok is true.
func venueIDParam(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
		return 0, false
	}
	return id, true
}
