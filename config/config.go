package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - auth.go: Token signing and password hashing configuration
//   - database.go: Database, Redis, and login throttle configuration
//   - http.go: HTTP server configuration
type AppConfig struct {
	// IsDev controls development mode behavior (insecure fallbacks, seeding).
	// Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// Authentication configuration
	Auth AuthConfig

	// Database configuration
	Postgres DBConfig    `envPrefix:"DB_"`
	Redis    RedisConfig `envPrefix:"REDIS_"`

	// Login throttle configuration
	Throttle ThrottleConfig `envPrefix:"LOGIN_"`

	// HTTP server configuration
	HTTP HTTPConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.Auth.Sanitize()
	c.Throttle.Sanitize()
	c.HTTP.Sanitize()

	// Check NODE_ENV for dev mode
	c.detectDevMode()
}

// Validate enforces the settings that must be explicit in production.
// It assumes Sanitize has already run.
func (c *AppConfig) Validate() error {
	return c.Auth.Validate(c.IsDev)
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// This is called by Sanitize() to ensure IsDev is set correctly.
// NODE_ENV is checked as a fallback (common in frontend tooling).
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}

// ThrottleEnabled reports whether the Redis-backed login throttle should run.
func (c *AppConfig) ThrottleEnabled() bool {
	return strings.TrimSpace(c.Redis.URI) != ""
}
