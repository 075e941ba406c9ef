// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/seatkit/layout-designer/internal/handler"
	"github.com/seatkit/layout-designer/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers authentication routes. Register and login live
// under /v1/auth and need no token; /v1/me sits behind JWTAuth.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterEditor registers the editing session routes. Every route requires
// an OWNER access token; the intent route additionally goes through the rate
// limiter so a runaway client cannot flood the session with mutations.
func RegisterEditor(e *echo.Echo, h *handler.EditorHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	g := e.Group("/v1/venues/:id/editor")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("OWNER"))

	g.POST("/open", h.Open)
	g.POST("/intent", h.Intent, limiter)
	g.POST("/undo", h.Undo)
	g.POST("/redo", h.Redo)
	g.POST("/save", h.Save)
	g.DELETE("", h.CloseSession)
}

// RegisterLayouts registers the public layout read. The cache middleware
// replays recent responses from Redis; a save invalidates the venue's entry.
func RegisterLayouts(e *echo.Echo, h *handler.LayoutHandler, cache echo.MiddlewareFunc) {
	e.GET("/v1/venues/:id/layout", h.Get, cache)
}
