package config

import (
	"errors"
	"time"
)

// InsecureDevSecret is the built-in signing secret used only when DEV mode is
// on and JWT_SECRET is unset. Startup refuses it everywhere else.
const InsecureDevSecret = "insecure-dev-secret-do-not-use"

const defaultTokenTTL = 24 * time.Hour

// AuthConfig groups token signing and password hashing configuration.
type AuthConfig struct {
	// JWTSecret is the HMAC signing key for access tokens.
	// Required outside development mode.
	JWTSecret string `env:"JWT_SECRET"`

	// JWTTTL is the lifetime of issued access tokens.
	JWTTTL time.Duration `env:"JWT_TTL" envDefault:"24h"`

	// JWTIssuer is stamped into the iss claim of issued tokens.
	JWTIssuer string `env:"JWT_ISSUER" envDefault:"finledger"`

	// BcryptCost is the bcrypt work factor for password hashing.
	// Values outside bcrypt's valid range are clamped by the hasher.
	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.JWTTTL <= 0 {
		a.JWTTTL = defaultTokenTTL
	}
}

// Validate enforces the signing secret requirement. Development mode may fall
// back to the insecure built-in secret; everywhere else a missing JWT_SECRET
// is a startup failure.
func (a *AuthConfig) Validate(isDev bool) error {
	if a.JWTSecret != "" {
		return nil
	}
	if isDev {
		a.JWTSecret = InsecureDevSecret
		return nil
	}
	return errors.New("JWT_SECRET is required outside development mode")
}
