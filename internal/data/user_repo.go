package data

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/finledger/finledger/internal/core"
	"github.com/finledger/finledger/internal/data/pgxutil"
	"github.com/finledger/finledger/internal/domain/model"
	apperrors "github.com/finledger/finledger/internal/errors"
)

// UserRepo provides database operations for user identities.
type UserRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewUserRepo creates a new UserRepo with real time provider.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewUserRepoWithTimeProvider creates a new UserRepo with a custom time provider (useful for tests).
func NewUserRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *UserRepo {
	return &UserRepo{DB: db, timeProvider: tp}
}

const userColumns = "id, email, password_hash, name, created_at, updated_at"

// Create inserts a new user. The email unique index turns a concurrent
// duplicate insert into a Conflict, same as the service-level pre-check.
func (r *UserRepo) Create(ctx context.Context, params core.CreateUserParams) (*model.User, error) {
	if params.Email == "" || params.PasswordHash == "" {
		return nil, apperrors.Validation("email and password hash are required")
	}

	createdAt := r.timeProvider.Now().UTC()
	var out model.User
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO users (email, password_hash, name, created_at)
			VALUES ($1, $2, $3, $4)
			RETURNING `+userColumns,
			params.Email,
			params.PasswordHash,
			params.Name,
			createdAt,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves a user by ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.getByQuery(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByEmail retrieves a user by exact, case-sensitive email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getByQuery(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

// EmailExists reports whether a user with the exact email is stored.
func (r *UserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email,
		).Scan(&exists)
	})
	if err != nil {
		return false, apperrors.MapDBError(err)
	}
	return exists, nil
}

func (r *UserRepo) getByQuery(ctx context.Context, q string, args ...any) (*model.User, error) {
	var user model.User
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		user, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &user, nil
}
