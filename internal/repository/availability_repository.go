package repository

import (
    "context"
    "encoding/json"
    "fmt"
    "sort"
    "sync"
    "time"

    "github.com/iliyamo/cabin-rental/internal/calendar"
    "github.com/iliyamo/cabin-rental/internal/store"
)

// BookedDatesKey is the storage key holding the serialized booked-date
// set: a JSON array of DateKey strings, persisted in sorted order on
// every mutation.
const BookedDatesKey = "cabin:booked_dates"

// Demo seed window applied on first run: today+10 through today+14,
// exclusive of the end.  This is an explicit bootstrap policy so the
// calendar is never empty on a fresh install, not silent magic.
const (
    seedOffsetDays = 10
    seedLengthDays = 4
)

// AvailabilityRepo owns the set of booked days for the cabin.  The set
// is held in memory and mirrored in full to the key-value store on
// every commit.  Days are only ever added in normal operation; there
// is no cancellation flow.  The in-memory set remains authoritative
// when a persist fails (see ErrStorage).
type AvailabilityRepo struct {
    kv     store.KV
    mu     sync.RWMutex
    booked map[calendar.DateKey]struct{}
}

// NewAvailabilityRepo returns an AvailabilityRepo bound to the given
// key-value store.  Call Load before serving queries.
func NewAvailabilityRepo(kv store.KV) *AvailabilityRepo {
    if kv == nil {
        panic("nil store passed to NewAvailabilityRepo")
    }
    return &AvailabilityRepo{kv: kv, booked: make(map[calendar.DateKey]struct{})}
}

// Load reads the persisted booked-date set.  When no set has been
// persisted yet (fresh install or after a reset) it seeds the demo
// window and persists it immediately.
func (r *AvailabilityRepo) Load(ctx context.Context) error {
    raw, ok, err := r.kv.Get(ctx, BookedDatesKey)
    if err != nil {
        return fmt.Errorf("%w: load booked dates: %v", ErrStorage, err)
    }
    if !ok || raw == "" {
        return r.seed(ctx)
    }
    var keys []calendar.DateKey
    if err := json.Unmarshal([]byte(raw), &keys); err != nil {
        return fmt.Errorf("%w: decode booked dates: %v", ErrStorage, err)
    }
    r.mu.Lock()
    r.booked = make(map[calendar.DateKey]struct{}, len(keys))
    for _, k := range keys {
        r.booked[k] = struct{}{}
    }
    r.mu.Unlock()
    return nil
}

// seed populates the demo range and persists it.
func (r *AvailabilityRepo) seed(ctx context.Context) error {
    start := calendar.AddDays(time.Now(), seedOffsetDays)
    end := calendar.AddDays(start, seedLengthDays)
    keys := calendar.EnumerateRange(start, end)
    r.mu.Lock()
    r.booked = make(map[calendar.DateKey]struct{}, len(keys))
    for _, k := range keys {
        r.booked[k] = struct{}{}
    }
    r.mu.Unlock()
    return r.persist(ctx)
}

// IsBooked reports whether the given day is occupied.
func (r *AvailabilityRepo) IsBooked(key calendar.DateKey) bool {
    r.mu.RLock()
    defer r.mu.RUnlock()
    _, ok := r.booked[key]
    return ok
}

// HasConflict reports whether any day in the prospective range is
// already booked.  It is used to validate a booking before any
// mutation happens.
func (r *AvailabilityRepo) HasConflict(keys []calendar.DateKey) bool {
    r.mu.RLock()
    defer r.mu.RUnlock()
    for _, k := range keys {
        if _, ok := r.booked[k]; ok {
            return true
        }
    }
    return false
}

// Commit unions the given days into the booked set and persists the
// resulting set in full.  Committing already-present days is a no-op
// for those days, so repeating a commit is idempotent.
func (r *AvailabilityRepo) Commit(ctx context.Context, keys []calendar.DateKey) error {
    r.mu.Lock()
    for _, k := range keys {
        r.booked[k] = struct{}{}
    }
    r.mu.Unlock()
    return r.persist(ctx)
}

// Clear empties the booked set and removes the persisted copy.  A
// subsequent Load re-triggers the demo seed.
func (r *AvailabilityRepo) Clear(ctx context.Context) error {
    r.mu.Lock()
    r.booked = make(map[calendar.DateKey]struct{})
    r.mu.Unlock()
    if err := r.kv.Remove(ctx, BookedDatesKey); err != nil {
        return fmt.Errorf("%w: clear booked dates: %v", ErrStorage, err)
    }
    return nil
}

// Snapshot returns the booked days in chronological order.
func (r *AvailabilityRepo) Snapshot() []calendar.DateKey {
    r.mu.RLock()
    keys := make([]calendar.DateKey, 0, len(r.booked))
    for k := range r.booked {
        keys = append(keys, k)
    }
    r.mu.RUnlock()
    sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
    return keys
}

// persist writes the full set as a sorted JSON array.
func (r *AvailabilityRepo) persist(ctx context.Context) error {
    keys := r.Snapshot()
    body, err := json.Marshal(keys)
    if err != nil {
        return fmt.Errorf("%w: encode booked dates: %v", ErrStorage, err)
    }
    if err := r.kv.Set(ctx, BookedDatesKey, string(body)); err != nil {
        return fmt.Errorf("%w: persist booked dates: %v", ErrStorage, err)
    }
    return nil
}
