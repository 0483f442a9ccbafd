package popupflow

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/wrale/oauth2-popup-client/exchange"
	"github.com/wrale/oauth2-popup-client/vault"
	"github.com/wrale/oauth2-popup-client/window"
)

// Client runs the popup-based authorization code flow against one
// provider. A client supports one authorization attempt in flight at a
// time: starting a second attempt supersedes the first's stored state, and
// the first's eventual callback then fails validation.
type Client struct {
	cfg            Config
	vault          vault.Vault
	opener         window.Opener
	strategy       Strategy
	pollInterval   time.Duration
	exchangeOn     bool
	exchanger      exchange.Exchanger
	navigator      Navigator
	logoutNotify   []func()
	redirectOrigin string
}

// New validates cfg and builds a client. Construction fails naming the
// first missing required field.
func New(cfg Config, v vault.Vault, opener window.Opener, opts ...Option) (*Client, error) {
	c := &Client{
		cfg:          cfg,
		vault:        v,
		opener:       opener,
		pollInterval: DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(c)
	}

	if cfg.ClientID == "" {
		return nil, fmt.Errorf("%w: clientId is required", ErrInvalidConfig)
	}
	if cfg.RedirectURI == "" {
		return nil, fmt.Errorf("%w: redirectUri is required", ErrInvalidConfig)
	}
	if cfg.AuthEndpoint == "" {
		return nil, fmt.Errorf("%w: authEndpoint is required", ErrInvalidConfig)
	}
	if c.exchangeOn && c.exchanger == nil && cfg.TokenEndpoint == "" {
		return nil, fmt.Errorf("%w: tokenEndpoint is required for token exchange", ErrInvalidConfig)
	}
	if v == nil {
		return nil, fmt.Errorf("%w: a state vault is required", ErrInvalidConfig)
	}

	redirect, err := url.Parse(cfg.RedirectURI)
	if err != nil || !redirect.IsAbs() {
		return nil, fmt.Errorf("%w: redirectUri must be an absolute URL", ErrInvalidConfig)
	}
	c.redirectOrigin = window.Origin(redirect)

	if c.exchangeOn && c.exchanger == nil {
		c.exchanger = exchange.NewJSON(cfg.TokenEndpoint, v)
	}
	if c.strategy == nil {
		c.strategy = &PollingStrategy{Interval: c.pollInterval}
	}
	return c, nil
}

// RedirectOrigin returns the origin of the configured redirect URI, the
// value callback detection compares message and location origins against.
func (c *Client) RedirectOrigin() string {
	return c.redirectOrigin
}

// Authorize runs one full authorization attempt: build the URL, open the
// popup, wait for a terminal outcome, validate the callback, and exchange
// the code when configured. A nil Result with a nil error means the user
// cancelled by closing the popup (or the context expired while waiting).
func (c *Client) Authorize(ctx context.Context) (*Result, error) {
	if c.opener == nil {
		return nil, fmt.Errorf("%w: a window opener is required for the popup flow", ErrInvalidConfig)
	}

	authURL, _, err := c.AuthorizationURL(ctx)
	if err != nil {
		return nil, err
	}

	popup, err := window.Open(ctx, c.opener, authURL)
	if err != nil {
		return nil, fmt.Errorf("starting authorization: %w", err)
	}
	defer popup.Close()

	out := c.strategy.Wait(ctx, popup, c.redirectOrigin)
	switch out.State {
	case StateClosedByUser:
		return nil, nil
	case StateAborted:
		return nil, fmt.Errorf("watching popup: %w", out.Err)
	}
	return c.completeCallback(ctx, out.Params)
}

// completeCallback runs the validation and exchange pipeline shared by the
// popup and redirect variants.
func (c *Client) completeCallback(ctx context.Context, params CallbackParams) (*Result, error) {
	code, err := c.validateCallback(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("handling callback: %w", err)
	}

	result := &Result{Code: code}
	if c.exchanger != nil {
		token, err := c.exchanger.Exchange(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("exchanging code: %w", err)
		}
		result.Token = token
	}
	return result, nil
}
