// Package popupflow implements the popup-based OAuth2 Authorization Code
// flow: CSRF-safe state handling, popup lifecycle, asynchronous callback
// detection, callback validation, and the optional token exchange step.
package popupflow

import (
	"context"
	"net/url"

	"github.com/wrale/oauth2-popup-client/exchange"
	"github.com/wrale/oauth2-popup-client/window"
)

// Config holds the immutable client configuration. ClientID, RedirectURI
// and AuthEndpoint are required; TokenEndpoint is required only when token
// exchange is enabled.
type Config struct {
	// ClientID is the application's identifier at the provider.
	ClientID string

	// RedirectURI is the absolute URL the provider sends the user back to.
	// Its origin is the trust anchor for callback detection.
	RedirectURI string

	// AuthEndpoint is the provider's authorization endpoint URL.
	AuthEndpoint string

	// Scope is an optional space-delimited list of requested permissions.
	Scope string

	// TokenEndpoint is the provider's token endpoint URL.
	TokenEndpoint string

	// LogoutEndpoint is an optional URL to navigate to on logout.
	LogoutEndpoint string
}

// CallbackParams carries the values the provider returns on the callback
// leg. Error takes precedence over Code and State when both appear.
type CallbackParams struct {
	Code             string
	State            string
	Error            string
	ErrorDescription string
}

// ParamsFromQuery extracts callback parameters from a redirect query string.
func ParamsFromQuery(q url.Values) CallbackParams {
	return CallbackParams{
		Code:             q.Get("code"),
		State:            q.Get("state"),
		Error:            q.Get("error"),
		ErrorDescription: q.Get("error_description"),
	}
}

// State of the callback detector. StateWaiting is the sole non-terminal
// state.
type State int

const (
	StateWaiting State = iota
	StateClosedByUser
	StateNavigatedHome
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateWaiting:
		return "waiting"
	case StateClosedByUser:
		return "closed_by_user"
	case StateNavigatedHome:
		return "navigated_home"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Outcome is the terminal result of one detection wait.
type Outcome struct {
	// State is the terminal state the detector reached.
	State State

	// Params is populated only when State is StateNavigatedHome.
	Params CallbackParams

	// Err is populated only when State is StateAborted.
	Err error
}

// Strategy detects completion of the authorization attempt in the popup.
// Wait returns exactly once with a terminal outcome and must release any
// timer or subscription it acquired on every exit path. Context
// cancellation counts as user cancellation, not an error.
type Strategy interface {
	Wait(ctx context.Context, popup *window.Popup, origin string) Outcome
}

// MessageType tags cross-document payloads carrying an OAuth callback.
const MessageType = "oauth_callback"

// Message is one cross-document message observed by the hosting page.
type Message struct {
	// Origin the message was sent from, as a scheme://host string.
	Origin string

	// Type of the payload. Only MessageType payloads are callbacks.
	Type string

	Params CallbackParams
}

// MessageSource subscribes to cross-document messages. The returned cancel
// func detaches the listener and must be safe to call more than once.
type MessageSource interface {
	Subscribe(ctx context.Context) (<-chan Message, func(), error)
}

// Navigator performs a full top-level navigation, used on logout.
type Navigator interface {
	Navigate(rawURL string) error
}

// Result of a completed authorization attempt. Token is set only when the
// client was configured with an exchanger.
type Result struct {
	Code  string
	Token *exchange.TokenRecord
}
