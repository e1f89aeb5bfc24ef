package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/finledger/finledger/internal/adapters/password"
	"github.com/finledger/finledger/internal/core"
	"github.com/finledger/finledger/internal/domain/model"
	apperrors "github.com/finledger/finledger/internal/errors"
	"github.com/finledger/finledger/internal/ports"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Users    core.UserRepository
	Tokens   ports.TokenService
	Hasher   ports.PasswordHasher
	Throttle ports.LoginThrottle // optional; nil disables throttling
	Logger   *slog.Logger
}

// AuthService orchestrates registration, credential validation, and token
// issuance. All failure modes that reveal whether an email is registered are
// collapsed before they leave this layer.
type AuthService struct {
	users    core.UserRepository
	tokens   ports.TokenService
	hasher   ports.PasswordHasher
	throttle ports.LoginThrottle
	logger   *slog.Logger
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		users:    opts.Users,
		tokens:   opts.Tokens,
		hasher:   opts.Hasher,
		throttle: opts.Throttle,
		logger:   logger.With("component", "auth_service"),
	}
}

// Register creates a new account and logs it in, returning an access token.
// A duplicate email fails with Conflict whether it is caught by the pre-check
// or by the unique index during a concurrent race.
func (s *AuthService) Register(ctx context.Context, req model.CreateUserRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", apperrors.Validation(err.Error())
	}

	exists, err := s.users.EmailExists(ctx, req.Email)
	if err != nil {
		return "", err
	}
	if exists {
		return "", apperrors.Conflict("email already registered")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to hash password")
	}

	user, err := s.users.Create(ctx, core.CreateUserParams{
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
	})
	if err != nil {
		// The unique index closes the pre-check race; same Conflict either way.
		if apperrors.IsConflict(err) {
			return "", apperrors.Conflict("email already registered")
		}
		return "", err
	}

	return s.IssueToken(user)
}

// ValidateCredentials checks an email/password pair. Both the unknown-email
// and wrong-password paths return (nil, nil): absence of a user is never
// distinguishable from a bad password. The unknown-email path still burns a
// bcrypt compare against a dummy hash to keep the two paths computationally
// similar.
func (s *AuthService) ValidateCredentials(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, nil
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			s.compareDummy(password)
			return nil, nil
		}
		return nil, err
	}

	ok, err := s.hasher.Compare(user.PasswordHash, password)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to compare password")
	}
	if !ok {
		return nil, nil
	}

	return user.Sanitized(), nil
}

// Login validates credentials and returns an access token. Every failure is
// the same Unauthorized; the internal reason is logged only.
func (s *AuthService) Login(ctx context.Context, email, pass string) (string, error) {
	email = strings.TrimSpace(email)

	if !s.throttleAllows(ctx, email) {
		s.logger.WarnContext(ctx, "login throttled", "email", email)
		return "", apperrors.Unauthorized("invalid credentials")
	}

	user, err := s.ValidateCredentials(ctx, email, pass)
	if err != nil {
		return "", err
	}
	if user == nil {
		s.recordThrottleFailure(ctx, email)
		return "", apperrors.Unauthorized("invalid credentials")
	}

	s.resetThrottle(ctx, email)

	return s.IssueToken(user)
}

// IssueToken signs an access token for the user.
func (s *AuthService) IssueToken(user *model.User) (string, error) {
	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to issue token")
	}
	return token, nil
}

// compareDummy burns one bcrypt comparison so the unknown-email path does not
// return measurably faster than a wrong-password one.
func (s *AuthService) compareDummy(pass string) {
	_, _ = s.hasher.Compare(password.DummyHash, pass)
}

// throttleAllows is best-effort: a throttle backend failure fails open and is
// logged rather than locking everyone out.
func (s *AuthService) throttleAllows(ctx context.Context, email string) bool {
	if s.throttle == nil {
		return true
	}
	ok, err := s.throttle.Allowed(ctx, email)
	if err != nil {
		s.logger.WarnContext(ctx, "throttle check failed", "err", err)
		return true
	}
	return ok
}

func (s *AuthService) recordThrottleFailure(ctx context.Context, email string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, email); err != nil {
		s.logger.WarnContext(ctx, "throttle record failed", "err", err)
	}
}

func (s *AuthService) resetThrottle(ctx context.Context, email string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.Reset(ctx, email); err != nil {
		s.logger.WarnContext(ctx, "throttle reset failed", "err", err)
	}
}
