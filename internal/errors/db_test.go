package errors

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapDBError_Nil(t *testing.T) {
	assert.NoError(t, MapDBError(nil))
}

func TestMapDBError_NoRows(t *testing.T) {
	err := MapDBError(pgx.ErrNoRows)
	assert.True(t, IsNotFound(err))
}

func TestMapDBError_ContextErrors(t *testing.T) {
	timeout := MapDBError(context.DeadlineExceeded)
	assert.Equal(t, ErrCodeTimeout, GetCode(timeout))

	canceled := MapDBError(context.Canceled)
	assert.Equal(t, ErrCodeCanceled, GetCode(canceled))
}

func TestMapDBError_UniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:   pgerrcode.UniqueViolation,
		Detail: "Key (email)=(a@x.com) already exists.",
	}

	err := MapDBError(pgErr)
	require.True(t, IsConflict(err))
	assert.Equal(t, "email", GetField(err))
}

func TestMapDBError_UniqueViolation_ConstraintFallback(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           pgerrcode.UniqueViolation,
		ConstraintName: "users_email_key",
	}

	err := MapDBError(pgErr)
	require.True(t, IsConflict(err))
	assert.Equal(t, "email", GetField(err))
}

func TestMapDBError_NotNullViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:       pgerrcode.NotNullViolation,
		ColumnName: "category",
	}

	err := MapDBError(pgErr)
	require.True(t, IsValidation(err))
	assert.Equal(t, "category", GetField(err))
}

func TestMapDBError_CheckViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: pgerrcode.CheckViolation}
	assert.True(t, IsValidation(MapDBError(pgErr)))
}

func TestMapDBError_UnknownPgError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: pgerrcode.AdminShutdown}
	err := MapDBError(pgErr)
	assert.True(t, IsInternal(err))
	require.ErrorIs(t, err, pgErr)
}

func TestMapDBError_PassthroughUnknown(t *testing.T) {
	plain := stderrors.New("not a db error")
	assert.Equal(t, plain, MapDBError(plain))
}
