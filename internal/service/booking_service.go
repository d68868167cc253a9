// Package service implements the confirmation flow that ties the
// selection session, the availability set and the booking ledger
// together.  Validation happens fully before any mutation: check
// fully, then commit, never a partial commit on partial validation.
package service

import (
    "context"
    "crypto/rand"
    "encoding/binary"
    "errors"
    "fmt"
    "log"
    "strings"
    "sync"
    "time"

    "github.com/iliyamo/cabin-rental/internal/calendar"
    "github.com/iliyamo/cabin-rental/internal/model"
    "github.com/iliyamo/cabin-rental/internal/queue"
    "github.com/iliyamo/cabin-rental/internal/repository"
    "github.com/iliyamo/cabin-rental/internal/session"
)

// Validation errors reported by Confirm, in the order the
// preconditions are checked.  The first failing condition wins and the
// session is left untouched.
var (
    ErrSessionNotFound = errors.New("selection session not found")
    ErrDatesNotChosen  = errors.New("check-in and check-out dates must be chosen")
    ErrMissingContact  = errors.New("name, email and phone are required")
    ErrEmptyStay       = errors.New("stay must cover at least one night")
)

// PublishFunc sends a confirmation event to the broker.  It is a
// field on the service so tests can record events instead of dialing
// RabbitMQ.
type PublishFunc func(ctx context.Context, event queue.BookingConfirmedEvent) error

// GuestDetails carries the form fields submitted at confirmation time.
// PricePerNightCents may be zero, in which case the configured default
// nightly rate applies.
type GuestDetails struct {
    Name               string
    Email              string
    Phone              string
    Notes              string
    PricePerNightCents uint32
}

// BookingService validates and executes booking confirmations and owns
// the combined reset of ledger and availability.  A mutex serializes
// Confirm and ResetAll: the conflict check and the subsequent commit
// must not interleave between concurrent requests.
type BookingService struct {
    mu           sync.Mutex
    availability *repository.AvailabilityRepo
    ledger       *repository.LedgerRepo
    sessions     *session.Store
    defaultRate  uint32
    publish      PublishFunc
}

// NewBookingService wires the service.  publish may be nil, in which
// case no events are emitted.
func NewBookingService(availability *repository.AvailabilityRepo, ledger *repository.LedgerRepo, sessions *session.Store, defaultRateCents uint32, publish PublishFunc) *BookingService {
    if availability == nil || ledger == nil || sessions == nil {
        panic("nil dependency passed to NewBookingService")
    }
    return &BookingService{
        availability: availability,
        ledger:       ledger,
        sessions:     sessions,
        defaultRate:  defaultRateCents,
        publish:      publish,
    }
}

// Confirm validates the session's selection and the guest details,
// then creates the BookingRecord, appends it to the ledger, commits
// the occupied days into the availability set, publishes the
// confirmation event and resets the session.  Preconditions are
// checked in a fixed order and the first violation is returned with no
// state changed.  Persistence failures after validation are logged and
// swallowed: the in-memory state is authoritative for the interaction
// and the booking stands.
func (s *BookingService) Confirm(ctx context.Context, sessionID string, guest GuestDetails) (*model.BookingRecord, error) {
    sess, ok := s.sessions.Get(sessionID)
    if !ok {
        return nil, ErrSessionNotFound
    }

    s.mu.Lock()
    defer s.mu.Unlock()

    checkIn, checkOut, chosen := sess.Range()
    if !chosen {
        return nil, ErrDatesNotChosen
    }
    if strings.TrimSpace(guest.Name) == "" ||
        strings.TrimSpace(guest.Email) == "" ||
        strings.TrimSpace(guest.Phone) == "" {
        return nil, ErrMissingContact
    }
    nights := calendar.NightCount(checkIn.Time(), checkOut.Time())
    if nights <= 0 {
        return nil, ErrEmptyStay
    }
    stay := calendar.EnumerateRange(checkIn.Time(), checkOut.Time())
    if s.availability.HasConflict(stay) {
        return nil, repository.ErrDateConflict
    }

    rate := guest.PricePerNightCents
    if rate == 0 {
        rate = s.defaultRate
    }
    now := time.Now().UTC()
    rec := model.BookingRecord{
        Code:               newBookingCode(now),
        Name:               strings.TrimSpace(guest.Name),
        Email:              strings.TrimSpace(guest.Email),
        Phone:              strings.TrimSpace(guest.Phone),
        CheckIn:            checkIn,
        CheckOut:           checkOut,
        Nights:             uint32(nights),
        PricePerNightCents: rate,
        TotalCents:         uint64(nights) * uint64(rate),
        Notes:              guest.Notes,
        CreatedAt:          now,
    }

    if err := s.ledger.Append(ctx, rec); err != nil {
        log.Printf("booking: ledger persist failed for %s: %v", rec.Code, err)
    }
    if err := s.availability.Commit(ctx, stay); err != nil {
        log.Printf("booking: availability persist failed for %s: %v", rec.Code, err)
    }
    if s.publish != nil {
        ev := queue.BookingConfirmedEvent{
            Code:        rec.Code,
            GuestName:   rec.Name,
            GuestEmail:  rec.Email,
            CheckIn:     string(rec.CheckIn),
            CheckOut:    string(rec.CheckOut),
            Nights:      rec.Nights,
            PriceCents:  rec.PricePerNightCents,
            TotalCents:  rec.TotalCents,
            ConfirmedAt: now.Format(time.RFC3339),
        }
        if err := s.publish(ctx, ev); err != nil {
            log.Printf("booking: publish confirmed event failed for %s: %v", rec.Code, err)
        }
    }
    sess.Reset()
    return &rec, nil
}

// ResetAll empties the ledger and the booked-date set together.  The
// two stores are cleared as a single user-initiated operation, never
// independently.  The next availability Load re-triggers the demo
// seed.
func (s *BookingService) ResetAll(ctx context.Context) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    if err := s.ledger.Clear(ctx); err != nil {
        return err
    }
    return s.availability.Clear(ctx)
}

// newBookingCode builds a code of the form R-<year>-<4 digits>.  The
// numeric part comes from crypto/rand.  This is a best-effort
// human-readable identifier, not a unique key: collisions are possible
// and no uniqueness check is performed.
func newBookingCode(t time.Time) string {
    var b [4]byte
    n := uint32(1000)
    if _, err := rand.Read(b[:]); err == nil {
        n = binary.BigEndian.Uint32(b[:]) % 10000
    }
    return fmt.Sprintf("R-%d-%04d", t.Year(), n)
}
