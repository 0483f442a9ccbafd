package exchange

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/wrale/oauth2-popup-client/vault"
)

// JSONExchanger POSTs the code as a JSON body to the token endpoint and
// treats the response body as an opaque token record.
type JSONExchanger struct {
	endpoint string
	client   *http.Client
	vault    vault.Vault
}

// Option configures a JSONExchanger.
type Option func(*JSONExchanger)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(e *JSONExchanger) {
		e.client = c
	}
}

// NewJSON creates an exchanger for endpoint that persists successful
// records into v's token slot. A nil v skips persistence.
func NewJSON(endpoint string, v vault.Vault, opts ...Option) *JSONExchanger {
	e := &JSONExchanger{
		endpoint: endpoint,
		client:   &http.Client{Timeout: defaultTimeout},
		vault:    v,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Exchange swaps code for a token record. Any transport failure, non-2xx
// status, or unparseable body fails with ErrExchangeFailed and leaves the
// token slot unwritten.
func (e *JSONExchanger) Exchange(ctx context.Context, code string) (*TokenRecord, error) {
	payload, err := json.Marshal(struct {
		Code string `json:"code"`
	}{Code: code})
	if err != nil {
		return nil, fail("encoding token request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fail("creating token request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fail("sending token request", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fail("reading token response", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fail(fmt.Sprintf("token endpoint returned %s", resp.Status), nil)
	}
	if !json.Valid(body) {
		return nil, fail("parsing token response", nil)
	}

	record := &TokenRecord{Raw: body}
	if err := persist(ctx, e.vault, record); err != nil {
		return nil, err
	}
	return record, nil
}
