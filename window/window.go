// Package window models the child browsing context the popup flow runs in.
// The host environment supplies an Opener; the package owns the popup
// handle's lifecycle from open to close.
package window

import (
	"context"
	"errors"
	"net/url"
)

var (
	// ErrBlocked indicates the host environment refused to open the popup,
	// typically an ad or popup blocker. Reported synchronously from Open.
	ErrBlocked = errors.New("popup blocked")

	// ErrCrossOrigin indicates the popup's location cannot be read because
	// the popup sits on a foreign origin. This is the expected state for
	// the whole provider leg of the flow, never a fatal condition.
	ErrCrossOrigin = errors.New("cross-origin access restricted")
)

// Bounds describes the opener window's position and outer size in logical
// pixels.
type Bounds struct {
	ScreenX     int
	ScreenY     int
	OuterWidth  int
	OuterHeight int
}

// Features describes the placement of a child window.
type Features struct {
	Left   int
	Top    int
	Width  int
	Height int
}

// Window is one child browsing context.
type Window interface {
	// Closed reports whether the window has been closed.
	Closed() bool

	// Location returns the window's current URL. Returns ErrCrossOrigin
	// while the window is on a foreign origin.
	Location() (*url.URL, error)

	// Close closes the window. Closing an already closed window is a no-op.
	Close()
}

// Opener opens child browsing contexts. Open must fail with an error
// wrapping ErrBlocked when the environment refuses the popup, so callers
// can distinguish a blocked open from later detection failures.
type Opener interface {
	// Bounds reports the opener window's own placement, used to center
	// the popup.
	Bounds() Bounds

	Open(ctx context.Context, rawURL string, features Features) (Window, error)
}

// Origin returns the scheme://host origin of u. The redirect URI's origin is
// the trust anchor callback detection compares against.
func Origin(u *url.URL) string {
	if u == nil {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
