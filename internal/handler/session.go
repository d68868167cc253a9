package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/cabin-rental/internal/calendar"
    "github.com/iliyamo/cabin-rental/internal/session"
)

// SessionHandler manages the per-guest selection sessions: creation,
// inspection, date picks and restarts.
type SessionHandler struct {
    Sessions *session.Store
}

// NewSessionHandler constructs the handler.  The store must be
// non-nil.
func NewSessionHandler(sessions *session.Store) *SessionHandler {
    if sessions == nil {
        panic("nil session store passed to NewSessionHandler")
    }
    return &SessionHandler{Sessions: sessions}
}

// sessionView is the JSON shape returned for a session snapshot.
type sessionView struct {
    ID       string `json:"id"`
    State    string `json:"state"`
    CheckIn  string `json:"check_in,omitempty"`
    CheckOut string `json:"check_out,omitempty"`
    Nights   int    `json:"nights"`
}

func viewOf(s *session.Session) sessionView {
    v := sessionView{ID: s.ID(), State: string(s.State()), Nights: s.Nights()}
    if in, ok := s.CheckIn(); ok {
        v.CheckIn = string(in)
    }
    if in, out, ok := s.Range(); ok {
        v.CheckIn = string(in)
        v.CheckOut = string(out)
    }
    return v
}

// Create handles POST /v1/sessions and returns a fresh empty session.
func (h *SessionHandler) Create(c echo.Context) error {
    s := h.Sessions.Create()
    return c.JSON(http.StatusCreated, viewOf(s))
}

// Get handles GET /v1/sessions/:id and returns the session snapshot
// including derived values.
func (h *SessionHandler) Get(c echo.Context) error {
    s, ok := h.Sessions.Get(c.Param("id"))
    if !ok {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
    }
    return c.JSON(http.StatusOK, viewOf(s))
}

// Pick handles POST /v1/sessions/:id/pick.  The body carries the
// clicked day; the selection rule decides whether it becomes the new
// check-in or the checkout.
func (h *SessionHandler) Pick(c echo.Context) error {
    s, ok := h.Sessions.Get(c.Param("id"))
    if !ok {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
    }
    var body struct {
        Date string `json:"date"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    key, err := calendar.ParseKey(body.Date)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected YYYY-MM-DD"})
    }
    s.Pick(key)
    return c.JSON(http.StatusOK, viewOf(s))
}

// Restart handles DELETE /v1/sessions/:id.  It resets the selection to
// Empty but keeps the session alive so the client can continue picking.
func (h *SessionHandler) Restart(c echo.Context) error {
    s, ok := h.Sessions.Get(c.Param("id"))
    if !ok {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
    }
    s.Reset()
    return c.JSON(http.StatusOK, viewOf(s))
}
