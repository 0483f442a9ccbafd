package popupflow

import (
	"context"
	"fmt"
	"net/url"

	"github.com/wrale/oauth2-popup-client/csrf"
)

// AuthorizationURL mints a fresh CSRF state, persists it in the vault's
// state slot, and builds the provider authorization URL. The vault write
// comes first: a state that was never stored could never be validated, so
// a failed write aborts before any URL is returned.
func (c *Client) AuthorizationURL(ctx context.Context) (authURL, state string, err error) {
	state = csrf.NewState()
	if err := csrf.Save(ctx, c.vault, state); err != nil {
		return "", "", fmt.Errorf("generating authorization url: %w", err)
	}

	u, err := url.Parse(c.cfg.AuthEndpoint)
	if err != nil {
		return "", "", fmt.Errorf("generating authorization url: parsing auth endpoint: %w", err)
	}
	q := u.Query()
	q.Set("client_id", c.cfg.ClientID)
	q.Set("redirect_uri", c.cfg.RedirectURI)
	q.Set("response_type", "code")
	q.Set("state", state)
	if c.cfg.Scope != "" {
		q.Set("scope", c.cfg.Scope)
	}
	u.RawQuery = q.Encode()
	return u.String(), state, nil
}
