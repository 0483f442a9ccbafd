package main

import "time"

// Config holds demo configuration loaded from environment variables. When
// REDIS_URL is set the flow state lives in Redis; otherwise an in-memory
// vault is used.
type Config struct {
	Port         int           `envconfig:"PORT" default:"9096"`
	RedisURL     string        `envconfig:"REDIS_URL"`
	ClientID     string        `envconfig:"CLIENT_ID" default:"demo-client"`
	Scope        string        `envconfig:"SCOPE" default:"openid profile"`
	PollInterval time.Duration `envconfig:"POLL_INTERVAL" default:"100ms"`
	VaultTTL     time.Duration `envconfig:"VAULT_TTL" default:"10m"`
	FlowTimeout  time.Duration `envconfig:"FLOW_TIMEOUT" default:"30s"`
}
