// Package store provides the device-local key-value store backing accounts
// and the persisted session. Contents are untrusted input: readers must
// treat missing or malformed values as absent rather than failing.
package store

import "context"

// Logical keys. The names are kept from the browser build of the portal so a
// Redis-backed store can be inspected with the same key names.
const (
	AccountsKey    = "cstd_users"
	CurrentUserKey = "cstd_current_user"
	CurrentRoleKey = "cstd_current_role"
)

// KV is a minimal device-scoped key-value store.
type KV interface {
	// Get returns the stored value, or nil if the key is absent or the
	// store is unreadable.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key. No partial-write recovery is attempted.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
