package password

// Package password implements the PasswordHasher port with bcrypt.

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DummyHash is a valid bcrypt hash of a random throwaway value. Credential
// checks against unknown principals compare against this so the missing-user
// path costs roughly the same as a real mismatch.
const DummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Hasher hashes and verifies passwords with bcrypt at a fixed cost.
type Hasher struct {
	cost int
}

// NewHasher creates a Hasher. Cost is clamped to bcrypt's valid range;
// zero or negative selects the default cost.
func NewHasher(cost int) *Hasher {
	switch {
	case cost <= 0:
		cost = bcrypt.DefaultCost
	case cost < bcrypt.MinCost:
		cost = bcrypt.MinCost
	case cost > bcrypt.MaxCost:
		cost = bcrypt.MaxCost
	}
	return &Hasher{cost: cost}
}

// Hash returns the bcrypt hash of the password.
func (h *Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Compare reports whether the password matches the hash. A mismatch is
// (false, nil); any other failure means the hash itself is unusable.
func (h *Hasher) Compare(hash, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("compare password: %w", err)
}

// Cost returns the configured bcrypt cost.
func (h *Hasher) Cost() int { return h.cost }
