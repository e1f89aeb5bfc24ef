package auth

// Package auth contains domain-level types for authentication.
// It is pure and free of framework/adapter concerns.

import "time"

// Claims is the authenticated principal reconstructed from a validated
// access token. Subject is the owning user's id; nothing here is looked up
// server-side on a per-request basis.
type Claims struct {
	Subject   string    `json:"sub"`
	Email     string    `json:"email"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
}

// Expired reports whether the claims are past their expiry at the given instant.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}
