// Command popup-flow-demo runs the popup authorization code flow end to
// end against an in-process provider, using a headless window in place of
// a real browser popup.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/redis/go-redis/v9"

	"github.com/wrale/oauth2-popup-client/popupflow"
	"github.com/wrale/oauth2-popup-client/vault"
)

func main() {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	// Pick the vault backend
	var store vault.Vault = vault.NewMemory()
	if cfg.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Error parsing Redis URL: %v", err)
		}
		redisClient := redis.NewClient(redisOpts)
		defer redisClient.Close()

		rv := vault.NewRedis(redisClient, cfg.VaultTTL)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rv.CheckHealth(ctx); err != nil {
			cancel()
			log.Fatalf("Error connecting to Redis: %v", err)
		}
		cancel()
		store = rv
	}

	// Start the in-process provider
	base := fmt.Sprintf("http://127.0.0.1:%d", cfg.Port)
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           newProvider(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting provider: %v", err)
		}
	}()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down provider: %v", err)
		}
	}()

	client, err := popupflow.New(popupflow.Config{
		ClientID:      cfg.ClientID,
		RedirectURI:   base + "/callback",
		AuthEndpoint:  base + "/authorize",
		Scope:         cfg.Scope,
		TokenEndpoint: base + "/token",
	}, store, newHeadlessOpener(),
		popupflow.WithPollInterval(cfg.PollInterval),
		popupflow.WithTokenExchange(),
		popupflow.WithLogoutNotify(func() {
			log.Println("Logged out")
		}),
	)
	if err != nil {
		log.Fatalf("Error creating client: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.FlowTimeout)
	defer cancel()

	result, err := client.Authorize(ctx)
	if err != nil {
		log.Fatalf("Authorization failed: %v", err)
	}
	if result == nil {
		log.Println("Authorization cancelled")
		return
	}

	log.Printf("Authorized: code=%s", result.Code)
	if result.Token != nil {
		log.Printf("Access token: %s", result.Token.AccessToken())
	}

	stored, err := client.StoredToken(ctx)
	if err != nil {
		log.Fatalf("Error reading stored token: %v", err)
	}
	if stored != nil {
		log.Printf("Token persisted in vault (%d bytes)", len(stored.Raw))
	}

	if err := client.Logout(ctx); err != nil {
		log.Fatalf("Logout failed: %v", err)
	}
}
