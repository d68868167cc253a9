package repository

import (
    "context"
    "encoding/json"
    "fmt"
    "sync"

    "github.com/iliyamo/cabin-rental/internal/model"
    "github.com/iliyamo/cabin-rental/internal/store"
)

// LedgerKey is the storage key holding the serialized booking ledger:
// a JSON array of BookingRecord objects in append order.
const LedgerKey = "cabin:ledger"

// LedgerRepo is the append-only sequence of confirmed bookings.  The
// full ledger is held in memory and rewritten to the key-value store
// on every append.  Records are never edited or removed except by
// Clear, the user-initiated reset tool.
type LedgerRepo struct {
    kv      store.KV
    mu      sync.RWMutex
    records []model.BookingRecord
}

// NewLedgerRepo returns a LedgerRepo bound to the given key-value
// store.  Call Load before serving queries.
func NewLedgerRepo(kv store.KV) *LedgerRepo {
    if kv == nil {
        panic("nil store passed to NewLedgerRepo")
    }
    return &LedgerRepo{kv: kv}
}

// Load reads the persisted ledger.  An absent key means an empty
// ledger; unlike the availability set there is no seeding.
func (r *LedgerRepo) Load(ctx context.Context) error {
    raw, ok, err := r.kv.Get(ctx, LedgerKey)
    if err != nil {
        return fmt.Errorf("%w: load ledger: %v", ErrStorage, err)
    }
    if !ok || raw == "" {
        r.mu.Lock()
        r.records = nil
        r.mu.Unlock()
        return nil
    }
    var records []model.BookingRecord
    if err := json.Unmarshal([]byte(raw), &records); err != nil {
        return fmt.Errorf("%w: decode ledger: %v", ErrStorage, err)
    }
    r.mu.Lock()
    r.records = records
    r.mu.Unlock()
    return nil
}

// Append adds a record to the end of the ledger and persists the full
// sequence.  On a persistence failure the in-memory ledger keeps the
// record and the error is reported as ErrStorage.
func (r *LedgerRepo) Append(ctx context.Context, rec model.BookingRecord) error {
    r.mu.Lock()
    r.records = append(r.records, rec)
    r.mu.Unlock()
    return r.persist(ctx)
}

// ExportAll returns the full record sequence for serialization by an
// export sink.  An empty ledger yields ErrNothingToExport so callers
// never produce a header-only file.
func (r *LedgerRepo) ExportAll() ([]model.BookingRecord, error) {
    r.mu.RLock()
    defer r.mu.RUnlock()
    if len(r.records) == 0 {
        return nil, ErrNothingToExport
    }
    out := make([]model.BookingRecord, len(r.records))
    copy(out, r.records)
    return out, nil
}

// All returns a copy of the ledger in append order.  Unlike ExportAll
// an empty ledger is not an error here; listings may be empty.
func (r *LedgerRepo) All() []model.BookingRecord {
    r.mu.RLock()
    defer r.mu.RUnlock()
    out := make([]model.BookingRecord, len(r.records))
    copy(out, r.records)
    return out
}

// Count returns the number of recorded bookings.
func (r *LedgerRepo) Count() int {
    r.mu.RLock()
    defer r.mu.RUnlock()
    return len(r.records)
}

// Clear empties the ledger and removes the persisted copy.
func (r *LedgerRepo) Clear(ctx context.Context) error {
    r.mu.Lock()
    r.records = nil
    r.mu.Unlock()
    if err := r.kv.Remove(ctx, LedgerKey); err != nil {
        return fmt.Errorf("%w: clear ledger: %v", ErrStorage, err)
    }
    return nil
}

// persist rewrites the full ledger as a JSON array.
func (r *LedgerRepo) persist(ctx context.Context) error {
    r.mu.RLock()
    body, err := json.Marshal(r.records)
    r.mu.RUnlock()
    if err != nil {
        return fmt.Errorf("%w: encode ledger: %v", ErrStorage, err)
    }
    if err := r.kv.Set(ctx, LedgerKey, string(body)); err != nil {
        return fmt.Errorf("%w: persist ledger: %v", ErrStorage, err)
    }
    return nil
}
