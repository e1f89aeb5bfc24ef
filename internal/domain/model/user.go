//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxEmailLen    = 255
	maxNameLen     = 255
	minPasswordLen = 8
	maxPasswordLen = 72 // bcrypt input limit
)

// User represents an account identity. PasswordHash never serializes and
// must not leave the data/auth boundary.
type User struct {
	ID           string    `json:"id"             db:"id"`
	Email        string    `json:"email"          db:"email"`
	PasswordHash string    `json:"-"              db:"password_hash"`
	Name         *string   `json:"name,omitempty" db:"name"`
	CreatedAt    time.Time `json:"created_at"     db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"     db:"updated_at"`
}

// CreateUserRequest represents parameters to create a User. The password
// arrives in the clear and is hashed before it reaches the store.
type CreateUserRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Name     *string `json:"name,omitempty"`
}

// Validate validates CreateUserRequest.
func (r *CreateUserRequest) Validate() error {
	email := strings.TrimSpace(r.Email)
	if email == "" {
		return errors.New("email is required and cannot be empty")
	}
	if utf8.RuneCountInString(email) > maxEmailLen {
		return errors.New("email cannot exceed 255 characters")
	}
	// Minimal shape check; the unique index is the real gatekeeper.
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return errors.New("email must be a valid address")
	}
	if len(r.Password) < minPasswordLen {
		return errors.New("password must be at least 8 characters")
	}
	if len(r.Password) > maxPasswordLen {
		return errors.New("password cannot exceed 72 bytes")
	}
	if r.Name != nil && utf8.RuneCountInString(strings.TrimSpace(*r.Name)) > maxNameLen {
		return errors.New("name cannot exceed 255 characters")
	}
	r.Email = email
	return nil
}

// Sanitized returns a copy of the user safe to hand out of the auth boundary.
func (u *User) Sanitized() *User {
	clone := *u
	clone.PasswordHash = ""
	return &clone
}
