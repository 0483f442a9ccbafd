package popupflow

import (
	"context"
	"net/url"
)

// BuildRedirectURL returns the authorization URL for the full-page
// redirect variant of the flow. State handling is identical to the popup
// path.
func (c *Client) BuildRedirectURL(ctx context.Context) (string, error) {
	authURL, _, err := c.AuthorizationURL(ctx)
	return authURL, err
}

// HandleRedirect completes the redirect variant from the query string the
// provider appended to the redirect URI. It runs the same validation and
// exchange pipeline as the popup flow; the CSRF defense is not
// flow-specific.
func (c *Client) HandleRedirect(ctx context.Context, query url.Values) (*Result, error) {
	return c.completeCallback(ctx, ParamsFromQuery(query))
}
