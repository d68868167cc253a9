package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/cabin-rental/internal/calendar"
    "github.com/iliyamo/cabin-rental/internal/repository"
)

// AvailabilityHandler serves read-only views of the booked-date set so
// the calendar UI can render occupied days.
type AvailabilityHandler struct {
    Availability *repository.AvailabilityRepo
}

// NewAvailabilityHandler constructs the handler.  The repository must
// be non-nil.
func NewAvailabilityHandler(availability *repository.AvailabilityRepo) *AvailabilityHandler {
    if availability == nil {
        panic("nil repository passed to NewAvailabilityHandler")
    }
    return &AvailabilityHandler{Availability: availability}
}

// GetAvailability handles GET /v1/availability.  Without parameters it
// returns every booked day.  The optional from/to query parameters
// (YYYY-MM-DD, half-open window) narrow the result for a calendar
// month view.  Malformed dates yield 400.
func (h *AvailabilityHandler) GetAvailability(c echo.Context) error {
    var from, to calendar.DateKey
    if s := c.QueryParam("from"); s != "" {
        k, err := calendar.ParseKey(s)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid from date, expected YYYY-MM-DD"})
        }
        from = k
    }
    if s := c.QueryParam("to"); s != "" {
        k, err := calendar.ParseKey(s)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid to date, expected YYYY-MM-DD"})
        }
        to = k
    }

    booked := h.Availability.Snapshot()
    if from != "" || to != "" {
        filtered := make([]calendar.DateKey, 0, len(booked))
        for _, k := range booked {
            if from != "" && k < from {
                continue
            }
            if to != "" && k >= to {
                continue
            }
            filtered = append(filtered, k)
        }
        booked = filtered
    }
    return c.JSON(http.StatusOK, echo.Map{"booked": booked})
}
