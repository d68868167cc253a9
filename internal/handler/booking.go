package handler

import (
    "bytes"
    "errors"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/cabin-rental/internal/export"
    "github.com/iliyamo/cabin-rental/internal/repository"
    "github.com/iliyamo/cabin-rental/internal/service"
)

// BookingHandler exposes the confirmation flow, ledger listing, the
// CSV export tool and the combined reset tool.
type BookingHandler struct {
    Service *service.BookingService
    Ledger  *repository.LedgerRepo
}

// NewBookingHandler constructs the handler.  All dependencies must be
// non-nil.
func NewBookingHandler(svc *service.BookingService, ledger *repository.LedgerRepo) *BookingHandler {
    if svc == nil || ledger == nil {
        panic("nil dependency passed to NewBookingHandler")
    }
    return &BookingHandler{Service: svc, Ledger: ledger}
}

// Confirm handles POST /v1/sessions/:id/confirm.  The body carries the
// guest contact details; the dates come from the selection session.
// Validation failures are reported inline with the specific violated
// precondition so the client can show the message next to the form.
func (h *BookingHandler) Confirm(c echo.Context) error {
    var body struct {
        Name               string `json:"name"`
        Email              string `json:"email"`
        Phone              string `json:"phone"`
        Notes              string `json:"notes"`
        PricePerNightCents uint32 `json:"price_per_night_cents"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    rec, err := h.Service.Confirm(c.Request().Context(), c.Param("id"), service.GuestDetails{
        Name:               body.Name,
        Email:              body.Email,
        Phone:              body.Phone,
        Notes:              body.Notes,
        PricePerNightCents: body.PricePerNightCents,
    })
    switch {
    case err == nil:
        return c.JSON(http.StatusCreated, rec)
    case errors.Is(err, service.ErrSessionNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
    case errors.Is(err, repository.ErrDateConflict):
        return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
    case errors.Is(err, service.ErrDatesNotChosen),
        errors.Is(err, service.ErrMissingContact),
        errors.Is(err, service.ErrEmptyStay):
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    default:
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "confirmation failed"})
    }
}

// List handles GET /v1/bookings and returns the full ledger in append
// order.  An empty ledger is an empty array, not an error.
func (h *BookingHandler) List(c echo.Context) error {
    return c.JSON(http.StatusOK, echo.Map{"bookings": h.Ledger.All()})
}

// ExportCSV handles GET /v1/bookings/export.  It streams the ledger as
// a CSV attachment named reservas_<date>.csv.  An empty ledger yields
// 409 with a "nothing to export" message instead of a header-only
// file.
func (h *BookingHandler) ExportCSV(c echo.Context) error {
    records, err := h.Ledger.ExportAll()
    if err != nil {
        if errors.Is(err, repository.ErrNothingToExport) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "nothing to export"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "export failed"})
    }
    var buf bytes.Buffer
    if err := export.WriteCSV(&buf, records); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "export failed"})
    }
    filename := export.Filename(time.Now())
    c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
    return c.Blob(http.StatusOK, export.MIMEType, buf.Bytes())
}

// Reset handles POST /v1/admin/reset, the "reset local data" tool: it
// clears the ledger and the booked-date set together.
func (h *BookingHandler) Reset(c echo.Context) error {
    if err := h.Service.ResetAll(c.Request().Context()); err != nil {
        if errors.Is(err, repository.ErrStorage) {
            return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "storage unavailable, local state cleared"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reset failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"status": "cleared"})
}
