// Package store abstracts the persistent key-value storage used by the
// availability and ledger repositories.  The service keeps exactly two
// logical keys: one holding the serialized booked-date set and one
// holding the serialized booking ledger.  Abstracting the store behind
// an interface lets tests substitute an in-memory implementation for
// Redis.
package store

import "context"

// KV is the minimal key-value contract the repositories depend on.
// Get reports whether the key was present; a missing key is not an
// error.  Set overwrites any previous value.  Remove is a no-op for
// absent keys.
type KV interface {
    Get(ctx context.Context, key string) (string, bool, error)
    Set(ctx context.Context, key, value string) error
    Remove(ctx context.Context, key string) error
}
