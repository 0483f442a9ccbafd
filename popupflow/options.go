package popupflow

import (
	"time"

	"github.com/wrale/oauth2-popup-client/exchange"
)

// DefaultPollInterval is the interval between popup probes.
const DefaultPollInterval = 500 * time.Millisecond

// Option configures a Client.
type Option func(*Client)

// WithStrategy selects the callback detection strategy. The default is
// polling at DefaultPollInterval.
func WithStrategy(s Strategy) Option {
	return func(c *Client) {
		c.strategy = s
	}
}

// WithPollInterval sets the probe interval for the default polling
// strategy.
func WithPollInterval(d time.Duration) Option {
	return func(c *Client) {
		c.pollInterval = d
	}
}

// WithTokenExchange enables the token exchange step after a validated
// callback, using the JSON exchanger against Config.TokenEndpoint.
func WithTokenExchange() Option {
	return func(c *Client) {
		c.exchangeOn = true
	}
}

// WithExchanger enables token exchange with a caller-supplied exchanger.
func WithExchanger(e exchange.Exchanger) Option {
	return func(c *Client) {
		c.exchangeOn = true
		c.exchanger = e
	}
}

// WithNavigator supplies the top-level navigation primitive used to reach
// the logout endpoint.
func WithNavigator(n Navigator) Option {
	return func(c *Client) {
		c.navigator = n
	}
}

// WithLogoutNotify registers fn to run after a completed logout.
func WithLogoutNotify(fn func()) Option {
	return func(c *Client) {
		c.logoutNotify = append(c.logoutNotify, fn)
	}
}
