// Package session implements the per-guest date selection state
// machine.  A session moves through three states: Empty (nothing
// chosen), CheckInChosen (arrival picked) and RangeChosen (both ends
// picked).  Modelling the states as a tagged value instead of two
// independently nullable dates makes invalid combinations (a checkout
// without a check-in, a checkout at or before the check-in)
// unrepresentable.
package session

import (
    "sync"
    "time"

    "github.com/google/uuid"

    "github.com/iliyamo/cabin-rental/internal/calendar"
)

// State names the position of a session in the selection flow.
type State string

const (
    StateEmpty         State = "EMPTY"
    StateCheckInChosen State = "CHECK_IN_CHOSEN"
    StateRangeChosen   State = "RANGE_CHOSEN"
)

// Session tracks one guest's in-progress selection.  All methods are
// safe for concurrent use; HTTP delivery is concurrent even though
// each individual session is normally driven by a single client.
type Session struct {
    id string

    mu       sync.Mutex
    state    State
    checkIn  calendar.DateKey
    checkOut calendar.DateKey
    touched  time.Time
}

// ID returns the session identifier handed to the client.
func (s *Session) ID() string { return s.id }

// Pick applies the selection rule for a clicked day d:
//
//   - From Empty, or whenever d is at or before the current check-in,
//     the selection re-anchors: check-in becomes d, any previously
//     chosen checkout is discarded and the state is CheckInChosen.
//   - Otherwise d becomes the checkout and the state is RangeChosen.
//     Picking a later day while a range is already chosen replaces the
//     checkout rather than restarting.
func (s *Session) Pick(d calendar.DateKey) {
    s.mu.Lock()
    defer s.mu.Unlock()
    s.touched = time.Now()
    if s.state == StateEmpty || d <= s.checkIn {
        s.checkIn = d
        s.checkOut = ""
        s.state = StateCheckInChosen
        return
    }
    s.checkOut = d
    s.state = StateRangeChosen
}

// Reset returns the session to Empty, discarding both dates.  Called
// after a successful confirmation and by the restart endpoint.
func (s *Session) Reset() {
    s.mu.Lock()
    defer s.mu.Unlock()
    s.state = StateEmpty
    s.checkIn = ""
    s.checkOut = ""
    s.touched = time.Now()
}

// State returns the current selection state.
func (s *Session) State() State {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.state
}

// Range returns both dates; ok is true only in RangeChosen.
func (s *Session) Range() (checkIn, checkOut calendar.DateKey, ok bool) {
    s.mu.Lock()
    defer s.mu.Unlock()
    if s.state != StateRangeChosen {
        return "", "", false
    }
    return s.checkIn, s.checkOut, true
}

// CheckIn returns the chosen arrival day; ok is false in Empty.
func (s *Session) CheckIn() (calendar.DateKey, bool) {
    s.mu.Lock()
    defer s.mu.Unlock()
    if s.state == StateEmpty {
        return "", false
    }
    return s.checkIn, true
}

// Nights returns the derived night count, zero unless a full range is
// chosen.
func (s *Session) Nights() int {
    in, out, ok := s.Range()
    if !ok {
        return 0
    }
    return calendar.NightCount(in.Time(), out.Time())
}

// Store holds the live sessions keyed by UUID.  Sessions are held in
// process memory only; they are transient by design and carry no state
// worth persisting.  Idle sessions are swept lazily on access.
type Store struct {
    mu       sync.Mutex
    sessions map[string]*Session
    ttl      time.Duration
}

// NewStore returns a Store that expires sessions idle longer than ttl.
// A non-positive ttl disables expiry.
func NewStore(ttl time.Duration) *Store {
    return &Store{sessions: make(map[string]*Session), ttl: ttl}
}

// Create registers a new empty session and returns it.
func (st *Store) Create() *Session {
    s := &Session{
        id:      uuid.New().String(),
        state:   StateEmpty,
        touched: time.Now(),
    }
    st.mu.Lock()
    st.sweepLocked()
    st.sessions[s.id] = s
    st.mu.Unlock()
    return s
}

// Get returns the session with the given ID, or false when it does not
// exist or has expired.
func (st *Store) Get(id string) (*Session, bool) {
    st.mu.Lock()
    defer st.mu.Unlock()
    st.sweepLocked()
    s, ok := st.sessions[id]
    return s, ok
}

// Delete removes a session.  Removing an unknown ID is a no-op.
func (st *Store) Delete(id string) {
    st.mu.Lock()
    delete(st.sessions, id)
    st.mu.Unlock()
}

// Len reports the number of live sessions.
func (st *Store) Len() int {
    st.mu.Lock()
    defer st.mu.Unlock()
    return len(st.sessions)
}

// sweepLocked drops sessions idle longer than the TTL.  Caller holds
// st.mu.
func (st *Store) sweepLocked() {
    if st.ttl <= 0 {
        return
    }
    cutoff := time.Now().Add(-st.ttl)
    for id, s := range st.sessions {
        s.mu.Lock()
        idle := s.touched.Before(cutoff)
        s.mu.Unlock()
        if idle {
            delete(st.sessions, id)
        }
    }
}
