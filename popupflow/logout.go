package popupflow

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/wrale/oauth2-popup-client/exchange"
	"github.com/wrale/oauth2-popup-client/vault"
)

// Logout clears the state and token slots, navigates to the configured
// logout endpoint when a navigator is available, and notifies registered
// listeners.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.vault.Delete(ctx, vault.StateKey); err != nil {
		return fmt.Errorf("logging out: clearing state slot: %w", err)
	}
	if err := c.vault.Delete(ctx, vault.TokenKey); err != nil {
		return fmt.Errorf("logging out: clearing token slot: %w", err)
	}
	if c.cfg.LogoutEndpoint != "" && c.navigator != nil {
		if err := c.navigator.Navigate(c.cfg.LogoutEndpoint); err != nil {
			return fmt.Errorf("logging out: navigating to logout endpoint: %w", err)
		}
	}
	for _, fn := range c.logoutNotify {
		fn()
	}
	return nil
}

// StoredToken returns the token record currently held in the vault's token
// slot, or nil when none is stored.
func (c *Client) StoredToken(ctx context.Context) (*exchange.TokenRecord, error) {
	raw, err := c.vault.Get(ctx, vault.TokenKey)
	if err != nil {
		return nil, fmt.Errorf("reading token slot: %w", err)
	}
	if raw == "" {
		return nil, nil
	}
	return &exchange.TokenRecord{Raw: json.RawMessage(raw)}, nil
}
