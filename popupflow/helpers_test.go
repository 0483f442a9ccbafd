package popupflow

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"testing"

	"github.com/wrale/oauth2-popup-client/exchange"
	"github.com/wrale/oauth2-popup-client/vault"
	"github.com/wrale/oauth2-popup-client/window"
)

// fakeWindow implements window.Window for testing
type fakeWindow struct {
	mu     sync.Mutex
	loc    *url.URL
	locErr error
	closed bool
}

func (w *fakeWindow) Closed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

func (w *fakeWindow) Location() (*url.URL, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.locErr != nil {
		return nil, w.locErr
	}
	if w.loc == nil {
		return nil, window.ErrCrossOrigin
	}
	return w.loc, nil
}

func (w *fakeWindow) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
}

func (w *fakeWindow) navigateTo(t *testing.T, raw string) {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parsing %q: %v", raw, err)
	}
	w.mu.Lock()
	w.loc = u
	w.mu.Unlock()
}

func (w *fakeWindow) failProbes(err error) {
	w.mu.Lock()
	w.locErr = err
	w.mu.Unlock()
}

// fakeOpener implements window.Opener. onOpen, when set, observes the
// authorization URL the popup was opened with.
type fakeOpener struct {
	win    *fakeWindow
	err    error
	onOpen func(rawURL string)
}

func (o *fakeOpener) Bounds() window.Bounds {
	return window.Bounds{OuterWidth: 1280, OuterHeight: 800}
}

func (o *fakeOpener) Open(ctx context.Context, rawURL string, _ window.Features) (window.Window, error) {
	if o.err != nil {
		return nil, o.err
	}
	if o.onOpen != nil {
		o.onOpen(rawURL)
	}
	return o.win, nil
}

// failingVault fails selected operations with the storage sentinel.
type failingVault struct {
	inner      vault.Vault
	failSet    bool
	failGet    bool
	failDelete bool
}

func (v *failingVault) Get(ctx context.Context, key string) (string, error) {
	if v.failGet {
		return "", fmt.Errorf("reading slot %q: %w", key, vault.ErrUnavailable)
	}
	return v.inner.Get(ctx, key)
}

func (v *failingVault) Set(ctx context.Context, key, value string) error {
	if v.failSet {
		return fmt.Errorf("writing slot %q: %w", key, vault.ErrUnavailable)
	}
	return v.inner.Set(ctx, key, value)
}

func (v *failingVault) Delete(ctx context.Context, key string) error {
	if v.failDelete {
		return fmt.Errorf("clearing slot %q: %w", key, vault.ErrUnavailable)
	}
	return v.inner.Delete(ctx, key)
}

// stubExchanger implements exchange.Exchanger without a network
type stubExchanger struct {
	record *exchange.TokenRecord
	err    error
	codes  []string
}

func (e *stubExchanger) Exchange(ctx context.Context, code string) (*exchange.TokenRecord, error) {
	e.codes = append(e.codes, code)
	if e.err != nil {
		return nil, e.err
	}
	return e.record, nil
}

// fakeSource implements MessageSource over a plain channel
type fakeSource struct {
	ch        chan Message
	subErr    error
	cancelled int
}

func newFakeSource() *fakeSource {
	return &fakeSource{ch: make(chan Message, 4)}
}

func (s *fakeSource) Subscribe(ctx context.Context) (<-chan Message, func(), error) {
	if s.subErr != nil {
		return nil, nil, s.subErr
	}
	return s.ch, func() { s.cancelled++ }, nil
}

func validConfig() Config {
	return Config{
		ClientID:     "c1",
		RedirectURI:  "https://app.test/cb",
		AuthEndpoint: "https://idp.test/auth",
	}
}
