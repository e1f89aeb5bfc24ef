package auth

import "errors"

// Sentinel errors for the distinct token rejection paths. They exist for
// logging and tests only; every one of them must surface to clients as the
// same generic unauthorized outcome.
var (
	ErrTokenMissing   = errors.New("token missing")
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenSignature = errors.New("token signature invalid")
	ErrTokenExpired   = errors.New("token expired")
)
