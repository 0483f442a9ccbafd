// Package exchange implements the final step of the authorization code
// flow: swapping a validated code for a token record at the provider's
// token endpoint, and persisting the result in the vault's token slot.
package exchange

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/wrale/oauth2-popup-client/vault"
)

// ErrExchangeFailed indicates the token endpoint could not be reached,
// rejected the code, or returned an unparseable body.
var ErrExchangeFailed = errors.New("token exchange failed")

// HTTP request timeout for token requests.
const defaultTimeout = 10 * time.Second

// TokenRecord is the provider-defined token payload, treated as opaque.
type TokenRecord struct {
	Raw json.RawMessage
}

// AccessToken extracts the bearer token from the record on a best-effort
// basis, returning "" when the record does not carry one.
func (r *TokenRecord) AccessToken() string {
	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(r.Raw, &body); err != nil {
		return ""
	}
	return body.AccessToken
}

// Exchanger swaps an authorization code for a token record.
type Exchanger interface {
	Exchange(ctx context.Context, code string) (*TokenRecord, error)
}

// fail wraps a stage message with ErrExchangeFailed so callers can classify
// the failure with errors.Is.
func fail(stage string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%s: %w", stage, ErrExchangeFailed)
	}
	return fmt.Errorf("%s: %w: %v", stage, ErrExchangeFailed, cause)
}

// persist writes the record into the vault's token slot. The token slot is
// written only after a successful exchange, never on failure.
func persist(ctx context.Context, v vault.Vault, record *TokenRecord) error {
	if v == nil {
		return nil
	}
	if err := v.Set(ctx, vault.TokenKey, string(record.Raw)); err != nil {
		return fmt.Errorf("storing token: %w", err)
	}
	return nil
}
