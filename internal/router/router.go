// Package router defines how HTTP routes are registered for the API.
package router

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/cabin-rental/internal/handler"
)

// RegisterRoutes registers routes that sit outside the rate-limited
// API group.  Currently that is only the health check used by load
// balancers and monitoring.
func RegisterRoutes(e *echo.Echo) {
    e.GET("/healthz", handler.Health)
}

// RegisterAPI registers the booking API under /v1.  The supplied
// middleware (typically the Redis token bucket) is applied to the
// whole group.
func RegisterAPI(e *echo.Echo, a *handler.AvailabilityHandler, s *handler.SessionHandler, b *handler.BookingHandler, mw ...echo.MiddlewareFunc) {
    g := e.Group("/v1", mw...)

    // Calendar view of occupied days.
    g.GET("/availability", a.GetAvailability)

    // Selection sessions: create, inspect, pick a day, restart.
    g.POST("/sessions", s.Create)
    g.GET("/sessions/:id", s.Get)
    g.POST("/sessions/:id/pick", s.Pick)
    g.DELETE("/sessions/:id", s.Restart)

    // Confirmation turns the session's range into a ledger record.
    g.POST("/sessions/:id/confirm", b.Confirm)

    // Ledger listing and the CSV download tool.
    g.GET("/bookings", b.List)
    g.GET("/bookings/export", b.ExportCSV)

    // Reset tool: clears ledger and booked dates together.
    g.POST("/admin/reset", b.Reset)
}
