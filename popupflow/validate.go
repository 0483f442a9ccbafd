package popupflow

import (
	"context"

	"github.com/wrale/oauth2-popup-client/csrf"
)

// validateCallback applies the ordered callback checks. A provider error
// takes precedence over missing parameters; the stored state is consumed
// on first use so a replayed callback can never validate twice. Both the
// popup and redirect variants go through this path.
func (c *Client) validateCallback(ctx context.Context, params CallbackParams) (string, error) {
	if params.Error != "" {
		return "", &ProviderError{Code: params.Error, Description: params.ErrorDescription}
	}
	if params.Code == "" || params.State == "" {
		return "", ErrMissingParams
	}

	stored, err := csrf.Consume(ctx, c.vault)
	if err != nil {
		return "", err
	}
	if stored == "" {
		return "", ErrStateExpired
	}
	if !csrf.Match(params.State, stored) {
		return "", ErrStateMismatch
	}
	return params.Code, nil
}
