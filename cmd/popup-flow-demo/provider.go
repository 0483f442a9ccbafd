package main

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/url"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// provider is an in-process authorization server that auto-approves every
// request, used to drive the flow end to end.
type provider struct {
	mu     sync.Mutex
	codes  map[string]bool
	router *chi.Mux
}

func newProvider() *provider {
	p := &provider{codes: make(map[string]bool)}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Get("/authorize", p.handleAuthorize)
	r.Post("/token", p.handleToken)
	r.Get("/callback", p.handleCallback)
	p.router = r

	return p
}

func (p *provider) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.router.ServeHTTP(w, r)
}

// handleAuthorize issues a code and immediately bounces the user agent
// back to the redirect URI, carrying the state through unchanged.
func (p *provider) handleAuthorize(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	redirectURI := q.Get("redirect_uri")
	state := q.Get("state")
	if q.Get("client_id") == "" || redirectURI == "" || state == "" {
		http.Error(w, "missing client_id, redirect_uri or state", http.StatusBadRequest)
		return
	}

	code, err := generateCode()
	if err != nil {
		http.Error(w, "generating code", http.StatusInternalServerError)
		return
	}
	p.mu.Lock()
	p.codes[code] = true
	p.mu.Unlock()

	target, err := url.Parse(redirectURI)
	if err != nil {
		http.Error(w, "invalid redirect_uri", http.StatusBadRequest)
		return
	}
	cb := target.Query()
	cb.Set("code", code)
	cb.Set("state", state)
	target.RawQuery = cb.Encode()

	http.Redirect(w, r, target.String(), http.StatusFound)
}

// handleToken accepts the JSON exchange contract and returns a bearer
// token for any code this provider issued.
func (p *provider) handleToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	p.mu.Lock()
	issued := p.codes[req.Code]
	delete(p.codes, req.Code)
	p.mu.Unlock()

	if !issued {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_grant"})
		return
	}

	token, err := generateCode()
	if err != nil {
		http.Error(w, "generating token", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_in":   3600,
	})
}

// handleCallback is the redirect target. The headless window never fetches
// it, but a real user agent landing here gets a terminal page.
func (p *provider) handleCallback(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("authorization complete, you can close this window\n"))
}

func generateCode() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
