// Package calendar provides day-granularity date arithmetic for the
// booking core.  All functions are pure and operate on calendar days in
// UTC.  A day is identified by its DateKey, the canonical "YYYY-MM-DD"
// form; two dates denote the same day iff their keys are equal.
package calendar

import (
    "fmt"
    "time"
)

// KeyLayout is the canonical DateKey format.
const KeyLayout = "2006-01-02"

// DateKey identifies a calendar day at day granularity.  It never
// carries time-of-day information.  Because of the fixed-width layout,
// lexicographic comparison of keys matches chronological order.
type DateKey string

// KeyOf returns the DateKey for the calendar day containing t (UTC).
func KeyOf(t time.Time) DateKey {
    return DateKey(NormalizeToDay(t).Format(KeyLayout))
}

// ParseKey validates s against the canonical layout and returns the
// corresponding DateKey.  Inputs that parse but do not round-trip to
// the same string (e.g. "2025-1-2" or "2025-02-30") are rejected.
func ParseKey(s string) (DateKey, error) {
    t, err := time.Parse(KeyLayout, s)
    if err != nil {
        return "", fmt.Errorf("invalid date %q: %w", s, err)
    }
    if t.Format(KeyLayout) != s {
        return "", fmt.Errorf("invalid date %q: not in YYYY-MM-DD form", s)
    }
    return DateKey(s), nil
}

// Time converts the key back to the start of its day in UTC.  An
// invalid key yields the zero time; keys produced by KeyOf or ParseKey
// always convert cleanly.
func (k DateKey) Time() time.Time {
    t, err := time.Parse(KeyLayout, string(k))
    if err != nil {
        return time.Time{}
    }
    return t
}

// NormalizeToDay strips the time-of-day from t and returns the start of
// that calendar day in UTC.
func NormalizeToDay(t time.Time) time.Time {
    u := t.UTC()
    return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// AddDays returns the start of the day n days after t.  n may be
// negative to step backwards.
func AddDays(t time.Time, n int) time.Time {
    return NormalizeToDay(t).AddDate(0, 0, n)
}

// EnumerateRange produces every day in the half-open interval
// [start, end).  The half-open shape is deliberate: a guest's checkout
// day is never itself marked as occupied.  The result is empty when
// end <= start or when either bound is the zero time.
func EnumerateRange(start, end time.Time) []DateKey {
    if start.IsZero() || end.IsZero() {
        return nil
    }
    from := NormalizeToDay(start)
    to := NormalizeToDay(end)
    if !from.Before(to) {
        return nil
    }
    keys := make([]DateKey, 0, NightCount(from, to))
    for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
        keys = append(keys, KeyOf(d))
    }
    return keys
}

// NightCount returns the number of nights between check-in and
// check-out, never negative.  A same-day or inverted pair counts as
// zero nights.
func NightCount(checkIn, checkOut time.Time) int {
    from := NormalizeToDay(checkIn)
    to := NormalizeToDay(checkOut)
    n := int(to.Sub(from).Hours() / 24)
    if n < 0 {
        return 0
    }
    return n
}
