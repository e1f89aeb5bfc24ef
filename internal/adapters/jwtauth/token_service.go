package jwtauth

// Package jwtauth implements the TokenService port with HS256-signed JWTs.

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	domainauth "github.com/finledger/finledger/internal/domain/auth"
)

// Options configures the token service.
type Options struct {
	// Secret is the HMAC signing key. Must be non-empty.
	Secret []byte
	// TTL is the lifetime of issued tokens.
	TTL time.Duration
	// Issuer is stamped into the iss claim when non-empty.
	Issuer string
	// Now overrides the clock (useful for tests). Defaults to time.Now.
	Now func() time.Time
}

// TokenService issues and validates HS256 access tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

type tokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// New creates a TokenService from options.
func New(opts Options) (*TokenService, error) {
	if len(opts.Secret) == 0 {
		return nil, errors.New("jwtauth: signing secret is required")
	}
	if opts.TTL <= 0 {
		return nil, errors.New("jwtauth: token TTL must be positive")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &TokenService{
		secret: opts.Secret,
		ttl:    opts.TTL,
		issuer: opts.Issuer,
		now:    now,
	}, nil
}

// Issue signs a token carrying the subject (user id) and email.
func (s *TokenService) Issue(subject, email string) (string, error) {
	if subject == "" {
		return "", errors.New("jwtauth: subject is required")
	}

	now := s.now()
	claims := tokenClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("jwtauth: sign token: %w", err)
	}
	return signed, nil
}

// Validate parses and verifies a raw token. Only HMAC-signed tokens are
// accepted; an RS256 token with a matching payload fails at the method check.
func (s *TokenService) Validate(raw string) (*domainauth.Claims, error) {
	if raw == "" {
		return nil, domainauth.ErrTokenMissing
	}

	var claims tokenClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, domainauth.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, domainauth.ErrTokenSignature
		default:
			return nil, domainauth.ErrTokenMalformed
		}
	}
	if !token.Valid {
		return nil, domainauth.ErrTokenMalformed
	}

	out := &domainauth.Claims{
		Subject: claims.Subject,
		Email:   claims.Email,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	// A token without an exp claim would never expire; reject it outright.
	if claims.ExpiresAt == nil || out.Expired(s.now()) {
		return nil, domainauth.ErrTokenExpired
	}
	return out, nil
}
