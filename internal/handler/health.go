package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is a plain health-check endpoint for load balancers and monitoring.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
