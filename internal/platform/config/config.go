// Copyright (c) 2026 Kritika. All rights reserved.
// Author: dev@kritika.app

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
  - DI-Friendly: Passed to core components (DB, Redis, Auth Flow) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Kritika API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value store (Redis) for volatile exchange-attempt counters
	RedisURL string `env:"REDIS_URL,required"`

	// Shared secret for bearer access token signing (HS256)
	JWTSecret string `env:"JWT_SECRET,required"`

	// Outbound mail (confirmation codes)
	MailFrom     string `env:"MAIL_FROM"     envDefault:"noreply@kritika.app"`
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     string `env:"SMTP_PORT"     envDefault:"587"`
	SMTPPassword string `env:"SMTP_PASSWORD"`

	// Confirmation-code shape
	ConfirmationCodeLength   int    `env:"CONFIRMATION_CODE_LENGTH"   envDefault:"10"`
	ConfirmationCodeAlphabet string `env:"CONFIRMATION_CODE_ALPHABET" envDefault:"ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"`

	// ProfileAlias is the reserved /users path segment referring to the
	// caller's own record; forbidden as a literal username.
	ProfileAlias string `env:"PROFILE_ALIAS" envDefault:"me"`

	// Field length limits
	MaxUsernameLength int `env:"MAX_USERNAME_LENGTH" envDefault:"150"`
	MaxEmailLength    int `env:"MAX_EMAIL_LENGTH"    envDefault:"254"`
	MaxNameLength     int `env:"MAX_NAME_LENGTH"     envDefault:"256"`
	MaxSlugLength     int `env:"MAX_SLUG_LENGTH"     envDefault:"50"`

	// Review score bounds (inclusive). The review table carries a matching
	// CHECK constraint with the default bounds, so a non-default value here
	// needs a schema migration alongside it.
	ScoreMin int `env:"SCORE_MIN" envDefault:"1"`
	ScoreMax int `env:"SCORE_MAX" envDefault:"10"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
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

	if cfg.ScoreMin > cfg.ScoreMax {
		return nil, fmt.Errorf("config: SCORE_MIN (%d) must not exceed SCORE_MAX (%d)", cfg.ScoreMin, cfg.ScoreMax)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
