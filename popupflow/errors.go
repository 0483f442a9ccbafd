package popupflow

import (
	"errors"
	"fmt"
)

// Errors raised by callback validation and client construction. Popup,
// storage, and exchange failures carry window.ErrBlocked,
// vault.ErrUnavailable, and exchange.ErrExchangeFailed respectively.
var (
	// ErrInvalidConfig indicates a required configuration field is missing.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrMissingParams indicates the callback carried neither a provider
	// error nor a complete code/state pair.
	ErrMissingParams = errors.New("callback missing code or state")

	// ErrStateExpired indicates no stored state was found for the callback,
	// either because it was already consumed or because the session context
	// was lost.
	ErrStateExpired = errors.New("stored state expired or missing")

	// ErrStateMismatch indicates the callback's state does not match the
	// stored value.
	ErrStateMismatch = errors.New("state mismatch")
)

// ProviderError reports that the provider itself rejected the
// authorization request.
type ProviderError struct {
	// Code is the provider's error code, e.g. "access_denied".
	Code string

	// Description is the provider's human-readable reason, when present.
	Description string
}

func (e *ProviderError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("provider error: %s", e.Description)
	}
	return fmt.Sprintf("provider error: %s", e.Code)
}

// ReauthRequired reports whether err indicates the session context was
// lost and the user should simply authenticate again, as opposed to a hard
// failure.
func ReauthRequired(err error) bool {
	return errors.Is(err, ErrStateExpired) || errors.Is(err, ErrStateMismatch)
}
