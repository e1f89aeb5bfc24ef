package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/finledger/finledger/internal/domain/auth"
)

// TokenService issues and validates signed access tokens.
type TokenService interface {
	// Issue signs a token for the given subject (user id) and email.
	Issue(subject, email string) (string, error)

	// Validate parses and verifies a raw token, returning its claims.
	// Failures return one of the adapter's sentinel errors; callers must
	// collapse them to a single external outcome.
	Validate(raw string) (*domainauth.Claims, error)
}

// PasswordHasher hashes and verifies credential secrets.
type PasswordHasher interface {
	Hash(password string) (string, error)

	// Compare reports whether the password matches the hash. A mismatch is
	// (false, nil); an error means the hash itself is unusable.
	Compare(hash, password string) (bool, error)
}

// LoginThrottle counts failed login attempts per principal. Implementations
// are best-effort; a nil throttle disables throttling entirely.
type LoginThrottle interface {
	// Allowed reports whether the principal may attempt a login.
	Allowed(ctx context.Context, key string) (bool, error)

	// RecordFailure bumps the failure counter for the principal.
	RecordFailure(ctx context.Context, key string) error

	// Reset clears the counter after a successful login.
	Reset(ctx context.Context, key string) error
}
