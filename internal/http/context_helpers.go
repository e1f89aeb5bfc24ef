package httpx

import (
	"context"

	domainauth "github.com/finledger/finledger/internal/domain/auth"
)

// claimsKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same key.
type claimsKey struct{}

// SetClaimsInContext returns a child context that carries the given claims.
// If claims is nil, the original ctx is returned unchanged.
func SetClaimsInContext(ctx context.Context, claims *domainauth.Claims) context.Context {
	if claims == nil {
		return ctx
	}
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromContext returns the authenticated claims from context and a
// boolean indicating presence.
func ClaimsFromContext(ctx context.Context) (*domainauth.Claims, bool) {
	if claims, ok := ctx.Value(claimsKey{}).(*domainauth.Claims); ok && claims != nil {
		return claims, true
	}
	return nil, false
}
