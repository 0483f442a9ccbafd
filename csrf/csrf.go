// Package csrf mints and consumes the per-attempt CSRF state token that
// proves a callback corresponds to a request this client initiated.
package csrf

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/google/uuid"

	"github.com/wrale/oauth2-popup-client/vault"
)

// NewState mints an unguessable state token for one authorization attempt.
func NewState() string {
	return uuid.NewString()
}

// Save persists state under the state slot, replacing any earlier attempt's
// value. At most one state is live per vault at a time.
func Save(ctx context.Context, v vault.Vault, state string) error {
	if err := v.Set(ctx, vault.StateKey, state); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}
	return nil
}

// Consume reads and deletes the stored state in one step, so a stored value
// can validate at most one callback. It returns "" when no state is stored.
func Consume(ctx context.Context, v vault.Vault) (string, error) {
	stored, err := v.Get(ctx, vault.StateKey)
	if err != nil {
		return "", fmt.Errorf("reading state: %w", err)
	}
	if stored == "" {
		return "", nil
	}
	if err := v.Delete(ctx, vault.StateKey); err != nil {
		return "", fmt.Errorf("clearing state: %w", err)
	}
	return stored, nil
}

// Match compares a callback state against the stored value in constant
// time. The value either matches exactly or it does not.
func Match(got, stored string) bool {
	return subtle.ConstantTimeCompare([]byte(got), []byte(stored)) == 1
}
