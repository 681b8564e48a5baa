// Copyright (c) 2026 Passage. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, Mailer) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/caarlos0/env/v11"
)

// minSecretLength is the shortest accepted session signing secret.
const minSecretLength = 16

// # Configuration Schema

// Config holds all runtime configuration for the Passage API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8000"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL      string `env:"DATABASE_URL,required,notEmpty"`
	DatabaseMaxConns int32  `env:"DATABASE_MAX_CONNS" envDefault:"10"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Store (Redis) holding password reset tokens
	RedisURL      string `env:"REDIS_URL,required,notEmpty"`
	RedisPoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"10"`

	// JWTSecret signs and verifies session tokens (HS256).
	JWTSecret string `env:"JWT_SECRET,required,notEmpty"`

	// FrontendURL is the base of the reset link sent by email.
	FrontendURL string `env:"FRONTEND_URL,required,notEmpty"`

	// Outbound mail (SMTP)
	EmailHost     string `env:"EMAIL_HOST,required,notEmpty"`
	EmailPort     int    `env:"EMAIL_PORT"     envDefault:"587"`
	EmailUser     string `env:"EMAIL_USER"`
	EmailPassword string `env:"EMAIL_PASS"`

	// Cross-Origin Resource Sharing
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks cross-field constraints that struct tags cannot express.
func (c *Config) Validate() error {
	if len(c.JWTSecret) < minSecretLength {
		return fmt.Errorf("config: JWT_SECRET must be at least %d characters", minSecretLength)
	}

	parsed, err := url.Parse(c.FrontendURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return errors.New("config: FRONTEND_URL must be an absolute URL")
	}

	if c.DatabaseMaxConns < 1 || c.RedisPoolSize < 1 {
		return errors.New("config: DATABASE_MAX_CONNS and REDIS_POOL_SIZE must be positive")
	}

	if c.EmailPort <= 0 || c.EmailPort > 65535 {
		return fmt.Errorf("config: EMAIL_PORT %d is out of range", c.EmailPort)
	}

	return nil
}

// ResetBaseURL returns the frontend base URL without a trailing slash.
func (c *Config) ResetBaseURL() string {
	return strings.TrimRight(c.FrontendURL, "/")
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsOriginAllowed reports whether origin appears in the configured allow-list.
func (c *Config) IsOriginAllowed(origin string) bool {
	for _, allowed := range c.AllowedOrigins {
		if strings.EqualFold(strings.TrimSpace(allowed), origin) {
			return true
		}
	}
	return false
}
