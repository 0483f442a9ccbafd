package window

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
)

// Popup target dimensions in logical pixels.
const (
	Width  = 500
	Height = 600
)

// Center computes placement centering a w x h child window over the opener.
func Center(b Bounds, w, h int) Features {
	return Features{
		Left:   b.ScreenX + (b.OuterWidth-w)/2,
		Top:    b.ScreenY + (b.OuterHeight-h)/2,
		Width:  w,
		Height: h,
	}
}

// Popup owns the handle to one child window for its lifetime. Once the
// popup has been closed, every probe is a no-op, never an error.
type Popup struct {
	mu     sync.Mutex
	win    Window
	closed bool
}

// Open opens rawURL in a new popup centered over the opener. It fails with
// an error wrapping ErrBlocked when the environment refused the window.
func Open(ctx context.Context, opener Opener, rawURL string) (*Popup, error) {
	win, err := opener.Open(ctx, rawURL, Center(opener.Bounds(), Width, Height))
	if err != nil {
		return nil, fmt.Errorf("opening popup: %w", err)
	}
	if win == nil {
		return nil, fmt.Errorf("opening popup: %w", ErrBlocked)
	}
	return &Popup{win: win}, nil
}

// Closed reports whether the popup is gone, whether closed by the user or
// through Close.
func (p *Popup) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return true
	}
	return p.win.Closed()
}

// Location returns the popup's current URL. It returns ErrCrossOrigin while
// the popup is on a foreign origin, and nil with no error once the popup
// has been closed.
func (p *Popup) Location() (*url.URL, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, nil
	}
	return p.win.Location()
}

// NavigatedToOrigin reports whether the popup has navigated back to origin.
// Cross-origin location probes report false with no error: that is the
// expected state while the popup is still on the provider's domain.
func (p *Popup) NavigatedToOrigin(origin string) (bool, error) {
	loc, err := p.Location()
	if errors.Is(err, ErrCrossOrigin) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("probing popup location: %w", err)
	}
	if loc == nil {
		return false, nil
	}
	return Origin(loc) == origin, nil
}

// Close closes the underlying window. Idempotent.
func (p *Popup) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	p.win.Close()
}
