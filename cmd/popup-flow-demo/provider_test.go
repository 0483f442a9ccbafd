package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestProviderAuthorize(t *testing.T) {
	srv := httptest.NewServer(newProvider())
	defer srv.Close()

	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	t.Run("issues a code and carries the state through", func(t *testing.T) {
		resp, err := client.Get(srv.URL + "/authorize?client_id=c1&redirect_uri=" +
			url.QueryEscape("https://app.test/cb") + "&response_type=code&state=S1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusFound {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusFound)
		}
		loc, err := url.Parse(resp.Header.Get("Location"))
		if err != nil {
			t.Fatalf("parsing location: %v", err)
		}
		if loc.Query().Get("state") != "S1" {
			t.Errorf("state = %q, want %q", loc.Query().Get("state"), "S1")
		}
		if loc.Query().Get("code") == "" {
			t.Error("expected a code")
		}
	})

	t.Run("rejects requests without state", func(t *testing.T) {
		resp, err := client.Get(srv.URL + "/authorize?client_id=c1&redirect_uri=" +
			url.QueryEscape("https://app.test/cb"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
		}
	})
}

func TestProviderToken(t *testing.T) {
	srv := httptest.NewServer(newProvider())
	defer srv.Close()

	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	issueCode := func(t *testing.T) string {
		t.Helper()
		resp, err := client.Get(srv.URL + "/authorize?client_id=c1&redirect_uri=" +
			url.QueryEscape("https://app.test/cb") + "&state=S1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer resp.Body.Close()
		loc, _ := url.Parse(resp.Header.Get("Location"))
		return loc.Query().Get("code")
	}

	t.Run("exchanges an issued code once", func(t *testing.T) {
		code := issueCode(t)
		body := strings.NewReader(`{"code":"` + code + `"}`)
		resp, err := http.Post(srv.URL+"/token", "application/json", body)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
		var token struct {
			AccessToken string `json:"access_token"`
			TokenType   string `json:"token_type"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if token.AccessToken == "" || token.TokenType != "Bearer" {
			t.Errorf("token = %+v", token)
		}

		// A second exchange of the same code must fail
		resp2, err := http.Post(srv.URL+"/token", "application/json",
			strings.NewReader(`{"code":"`+code+`"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer resp2.Body.Close()
		if resp2.StatusCode != http.StatusBadRequest {
			t.Errorf("replayed code status = %d, want %d", resp2.StatusCode, http.StatusBadRequest)
		}
	})

	t.Run("rejects unknown codes", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/token", "application/json",
			strings.NewReader(`{"code":"never-issued"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
		}
	})
}
