package exchange

import (
	"context"
	"encoding/json"

	"golang.org/x/oauth2"

	"github.com/wrale/oauth2-popup-client/vault"
)

// OAuth2Exchanger performs the standard form-encoded token request via
// golang.org/x/oauth2, for providers that do not accept the JSON body
// contract. The resulting token is marshaled into an opaque record.
type OAuth2Exchanger struct {
	config *oauth2.Config
	vault  vault.Vault
}

// NewOAuth2 creates an exchanger backed by cfg that persists successful
// records into v's token slot. A nil v skips persistence.
func NewOAuth2(cfg *oauth2.Config, v vault.Vault) *OAuth2Exchanger {
	return &OAuth2Exchanger{config: cfg, vault: v}
}

// Exchange swaps code for a token record using the standard OAuth2 token
// request.
func (e *OAuth2Exchanger) Exchange(ctx context.Context, code string) (*TokenRecord, error) {
	token, err := e.config.Exchange(ctx, code)
	if err != nil {
		return nil, fail("exchanging code", err)
	}

	raw, err := json.Marshal(token)
	if err != nil {
		return nil, fail("encoding token record", err)
	}

	record := &TokenRecord{Raw: raw}
	if err := persist(ctx, e.vault, record); err != nil {
		return nil, err
	}
	return record, nil
}
