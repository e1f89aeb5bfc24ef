package pgxutil_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finledger/finledger/internal/data/pgxutil"
	"github.com/finledger/finledger/internal/testutil"
)

func TestToPgxTxOptions(t *testing.T) {
	assert.Equal(t, pgx.TxOptions{}, pgxutil.ToPgxTxOptions(nil))

	opts := pgxutil.ToPgxTxOptions(&sql.TxOptions{ReadOnly: true})
	assert.Equal(t, pgx.ReadOnly, opts.AccessMode)

	tests := []struct {
		level sql.IsolationLevel
		want  pgx.TxIsoLevel
	}{
		{sql.LevelDefault, pgx.TxIsoLevel("")},
		{sql.LevelSerializable, pgx.Serializable},
		{sql.LevelRepeatableRead, pgx.RepeatableRead},
		{sql.LevelReadCommitted, pgx.ReadCommitted},
		{sql.LevelReadUncommitted, pgx.ReadUncommitted},
	}
	for _, tc := range tests {
		got := pgxutil.ToPgxTxOptions(&sql.TxOptions{Isolation: tc.level})
		assert.Equalf(t, tc.want, got.IsoLevel, "isolation %v", tc.level)
		assert.Equal(t, pgx.ReadWrite, got.AccessMode)
	}
}

func TestWithPgxTx_CommitAndRollback(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()

		_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS tx_probe_rows (n INT)`)
		require.NoError(t, err)
		defer func() {
			_, _ = db.ExecContext(context.Background(), `DROP TABLE IF EXISTS tx_probe_rows`)
		}()

		err = pgxutil.WithPgxTx(ctx, db, pgxutil.TxConfig{
			Fn: func(tx pgx.Tx) error {
				_, execErr := tx.Exec(ctx, `INSERT INTO tx_probe_rows (n) VALUES (1)`)
				return execErr
			},
		})
		require.NoError(t, err)

		var count int
		require.NoError(t, db.QueryRowContext(ctx, `SELECT count(*) FROM tx_probe_rows`).Scan(&count))
		assert.Equal(t, 1, count)

		wantErr := errors.New("abort")
		err = pgxutil.WithPgxTx(ctx, db, pgxutil.TxConfig{
			Fn: func(tx pgx.Tx) error {
				if _, execErr := tx.Exec(ctx, `INSERT INTO tx_probe_rows (n) VALUES (2)`); execErr != nil {
					return execErr
				}
				return wantErr
			},
		})
		require.ErrorIs(t, err, wantErr)

		require.NoError(t, db.QueryRowContext(ctx, `SELECT count(*) FROM tx_probe_rows`).Scan(&count))
		assert.Equal(t, 1, count, "rolled-back insert must not be visible")
	})
}
