// Package vault provides the tab-scoped key/value store the flow persists
// its CSRF state and token in across the popup or redirect round trip.
package vault

import (
	"context"
	"errors"
)

const (
	// StateKey is the slot holding the pending CSRF state.
	StateKey = "oauth_state"

	// TokenKey is the slot holding the obtained token record. Never shared
	// with the state slot.
	TokenKey = "oauth_token"
)

// ErrUnavailable indicates the backing store could not be read or written.
var ErrUnavailable = errors.New("storage unavailable")

// Vault is a minimal key/value capability scoped to the browsing tab or
// session. Absent keys read as empty strings, not errors. Slots are
// independently keyed; concurrent writes to the same slot are
// last-write-wins.
type Vault interface {
	// Get returns the value stored under key, or "" when nothing is stored.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any prior value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
