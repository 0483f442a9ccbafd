package main

import (
	"context"
	"net/http"
	"net/url"
	"sync"

	"github.com/wrale/oauth2-popup-client/window"
)

// headlessWindow simulates the popup by performing the provider's redirect
// hop over plain HTTP. Until the hop completes its location reads as
// cross-origin, exactly like a real popup sitting on the provider's
// domain.
type headlessWindow struct {
	mu     sync.Mutex
	loc    *url.URL
	closed bool
}

func (w *headlessWindow) Closed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

func (w *headlessWindow) Location() (*url.URL, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.loc == nil {
		return nil, window.ErrCrossOrigin
	}
	return w.loc, nil
}

func (w *headlessWindow) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
}

func (w *headlessWindow) navigate(ctx context.Context, client *http.Client, rawURL string) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return
	}
	resp, err := client.Do(req)
	if err != nil {
		return
	}
	defer resp.Body.Close()

	loc, err := url.Parse(resp.Header.Get("Location"))
	if err != nil {
		return
	}
	w.mu.Lock()
	w.loc = loc
	w.mu.Unlock()
}

// headlessOpener implements window.Opener without a real browser.
type headlessOpener struct {
	client *http.Client
}

func newHeadlessOpener() *headlessOpener {
	return &headlessOpener{
		// Stop at the provider's redirect so the callback URL can be
		// observed as the window's final location.
		client: &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (o *headlessOpener) Bounds() window.Bounds {
	return window.Bounds{OuterWidth: 1280, OuterHeight: 800}
}

func (o *headlessOpener) Open(ctx context.Context, rawURL string, _ window.Features) (window.Window, error) {
	win := &headlessWindow{}
	go win.navigate(ctx, o.client, rawURL)
	return win, nil
}
