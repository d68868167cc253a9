// Package repository defines error types that are reused across the
// availability and ledger repositories.  These sentinel values allow
// higher layers such as handlers to distinguish between failure
// scenarios without string matching.
package repository

import "errors"

// ErrDateConflict is returned when a prospective booking range overlaps
// a day that is already booked.  Handlers should translate this into an
// HTTP 409 response.
var ErrDateConflict = errors.New("selected dates conflict with an existing booking")

// ErrNothingToExport is returned by the ledger when an export is
// requested while no bookings have been recorded.  The caller must not
// produce a header-only file in this case.
var ErrNothingToExport = errors.New("nothing to export")

// ErrStorage wraps failures of the underlying key-value store.  The
// in-memory state of a repository remains authoritative for the
// current interaction even when persistence fails, so callers should
// surface this as a non-fatal notice rather than abort.
var ErrStorage = errors.New("storage error")
