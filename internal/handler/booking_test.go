package handler

import (
    "context"
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/cabin-rental/internal/calendar"
    "github.com/iliyamo/cabin-rental/internal/repository"
    "github.com/iliyamo/cabin-rental/internal/service"
    "github.com/iliyamo/cabin-rental/internal/session"
    "github.com/iliyamo/cabin-rental/internal/store"
)

type testEnv struct {
    e            *echo.Echo
    availability *repository.AvailabilityRepo
    ledger       *repository.LedgerRepo
    sessions     *session.Store
    booking      *BookingHandler
}

func newTestEnv(t *testing.T) *testEnv {
    t.Helper()
    ctx := context.Background()
    kv := store.NewMemory()
    if err := kv.Set(ctx, repository.BookedDatesKey, `[]`); err != nil {
        t.Fatal(err)
    }
    availability := repository.NewAvailabilityRepo(kv)
    if err := availability.Load(ctx); err != nil {
        t.Fatal(err)
    }
    ledger := repository.NewLedgerRepo(kv)
    if err := ledger.Load(ctx); err != nil {
        t.Fatal(err)
    }
    sessions := session.NewStore(0)
    svc := service.NewBookingService(availability, ledger, sessions, 55000, nil)
    return &testEnv{
        e:            echo.New(),
        availability: availability,
        ledger:       ledger,
        sessions:     sessions,
        booking:      NewBookingHandler(svc, ledger),
    }
}

func (env *testEnv) confirmRequest(t *testing.T, sessionID, body string) *httptest.ResponseRecorder {
    t.Helper()
    req := httptest.NewRequest(http.MethodPost, "/v1/sessions/"+sessionID+"/confirm", strings.NewReader(body))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()
    c := env.e.NewContext(req, rec)
    c.SetPath("/v1/sessions/:id/confirm")
    c.SetParamNames("id")
    c.SetParamValues(sessionID)
    if err := env.booking.Confirm(c); err != nil {
        t.Fatalf("Confirm handler: %v", err)
    }
    return rec
}

func TestConfirmEndpoint(t *testing.T) {
    env := newTestEnv(t)
    s := env.sessions.Create()
    s.Pick("2025-01-10")
    s.Pick("2025-01-13")

    rec := env.confirmRequest(t, s.ID(),
        `{"name":"Ana Rojas","email":"ana@example.com","phone":"+56912345678","price_per_night_cents":55000}`)
    if rec.Code != http.StatusCreated {
        t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
    }
    var out struct {
        Code   string `json:"code"`
        Nights uint32 `json:"nights"`
        Total  uint64 `json:"total"`
    }
    if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
        t.Fatalf("decode response: %v", err)
    }
    if out.Nights != 3 || out.Total != 165000 {
        t.Errorf("response = %+v", out)
    }
    if !env.availability.IsBooked("2025-01-12") {
        t.Error("confirmed range was not committed")
    }
}

func TestConfirmEndpointValidationStatuses(t *testing.T) {
    env := newTestEnv(t)

    if rec := env.confirmRequest(t, "unknown", `{}`); rec.Code != http.StatusNotFound {
        t.Errorf("unknown session status = %d, want 404", rec.Code)
    }

    s := env.sessions.Create()
    if rec := env.confirmRequest(t, s.ID(), `{"name":"A","email":"a@b.c","phone":"1"}`); rec.Code != http.StatusBadRequest {
        t.Errorf("no dates status = %d, want 400", rec.Code)
    }

    s.Pick("2025-01-10")
    s.Pick("2025-01-13")
    if rec := env.confirmRequest(t, s.ID(), `{"name":"A","email":"","phone":"1"}`); rec.Code != http.StatusBadRequest {
        t.Errorf("missing email status = %d, want 400", rec.Code)
    }

    // Book the range, then try to double-book it from a second session.
    if rec := env.confirmRequest(t, s.ID(), `{"name":"A","email":"a@b.c","phone":"1"}`); rec.Code != http.StatusCreated {
        t.Fatalf("first booking status = %d", rec.Code)
    }
    s2 := env.sessions.Create()
    s2.Pick("2025-01-11")
    s2.Pick("2025-01-14")
    if rec := env.confirmRequest(t, s2.ID(), `{"name":"B","email":"b@c.d","phone":"2"}`); rec.Code != http.StatusConflict {
        t.Errorf("overlap status = %d, want 409", rec.Code)
    }
}

func TestExportEndpoint(t *testing.T) {
    env := newTestEnv(t)

    req := httptest.NewRequest(http.MethodGet, "/v1/bookings/export", nil)
    rec := httptest.NewRecorder()
    if err := env.booking.ExportCSV(env.e.NewContext(req, rec)); err != nil {
        t.Fatalf("ExportCSV: %v", err)
    }
    if rec.Code != http.StatusConflict {
        t.Errorf("empty export status = %d, want 409", rec.Code)
    }

    s := env.sessions.Create()
    s.Pick("2025-02-01")
    s.Pick("2025-02-04")
    if out := env.confirmRequest(t, s.ID(), `{"name":"Ana","email":"a@b.c","phone":"1"}`); out.Code != http.StatusCreated {
        t.Fatalf("setup booking failed: %d", out.Code)
    }

    rec = httptest.NewRecorder()
    if err := env.booking.ExportCSV(env.e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/bookings/export", nil), rec)); err != nil {
        t.Fatalf("ExportCSV: %v", err)
    }
    if rec.Code != http.StatusOK {
        t.Fatalf("export status = %d", rec.Code)
    }
    if cd := rec.Header().Get(echo.HeaderContentDisposition); !strings.Contains(cd, "reservas_") || !strings.Contains(cd, ".csv") {
        t.Errorf("Content-Disposition = %q", cd)
    }
    body := rec.Body.String()
    if !strings.HasPrefix(body, "code,name,email,phone,checkIn,checkOut,nights,price,total,notes,createdAt") {
        t.Errorf("export body = %s", body)
    }
    if !strings.Contains(body, "2025-02-01,2025-02-04,3,55000,165000") {
        t.Errorf("export row missing expected values: %s", body)
    }
}

func TestResetEndpoint(t *testing.T) {
    env := newTestEnv(t)
    ctx := context.Background()
    if err := env.availability.Commit(ctx, []calendar.DateKey{"2025-03-01"}); err != nil {
        t.Fatal(err)
    }
    s := env.sessions.Create()
    s.Pick("2025-04-01")
    s.Pick("2025-04-02")
    if rec := env.confirmRequest(t, s.ID(), `{"name":"A","email":"a@b.c","phone":"1"}`); rec.Code != http.StatusCreated {
        t.Fatalf("setup booking failed: %d", rec.Code)
    }

    req := httptest.NewRequest(http.MethodPost, "/v1/admin/reset", nil)
    rec := httptest.NewRecorder()
    if err := env.booking.Reset(env.e.NewContext(req, rec)); err != nil {
        t.Fatalf("Reset: %v", err)
    }
    if rec.Code != http.StatusOK {
        t.Errorf("reset status = %d", rec.Code)
    }
    if env.ledger.Count() != 0 || len(env.availability.Snapshot()) != 0 {
        t.Error("reset must clear both the ledger and the booked set")
    }
}
