package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/finledger/finledger/internal/core"
	"github.com/finledger/finledger/internal/data/database"
	"github.com/finledger/finledger/internal/data/pgxutil"
	"github.com/finledger/finledger/internal/domain/model"
	apperrors "github.com/finledger/finledger/internal/errors"
)

const defaultListLimit = 50

// TransactionRepo provides database operations for transactions. Every query
// filters by user_id so rows can never cross owner boundaries.
type TransactionRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewTransactionRepo creates a new TransactionRepo with real time provider.
func NewTransactionRepo(db *sql.DB) *TransactionRepo {
	return &TransactionRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewTransactionRepoWithTimeProvider creates a new TransactionRepo with a custom time provider.
func NewTransactionRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *TransactionRepo {
	return &TransactionRepo{DB: db, timeProvider: tp}
}

func transactionColumns() []string {
	return []string{
		"id",
		"user_id",
		"amount",
		"kind",
		"category",
		"note",
		"occurred_at",
		"created_at",
		"updated_at",
	}
}

const transactionColumnList = "id, user_id, amount, kind, category, note, occurred_at, created_at, updated_at"

// Create inserts a new transaction owned by ownerID.
func (r *TransactionRepo) Create(
	ctx context.Context,
	ownerID string,
	req *model.CreateTransactionRequest,
) (*model.Transaction, error) {
	if req == nil {
		return nil, apperrors.Validation("create transaction request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	createdAt := r.timeProvider.Now().UTC()
	var out model.Transaction
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO transactions (user_id, amount, kind, category, note, occurred_at, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING `+transactionColumnList,
			ownerID,
			req.Amount,
			req.Kind,
			req.Category,
			req.Note,
			req.OccurredAt.UTC(),
			createdAt,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Transaction])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves one transaction scoped to ownerID. A row owned by someone
// else is indistinguishable from an absent one.
func (r *TransactionRepo) GetByID(ctx context.Context, id, ownerID string) (*model.Transaction, error) {
	var tx model.Transaction
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+transactionColumnList+` FROM transactions WHERE id = $1 AND user_id = $2`,
			id, ownerID)
		if err != nil {
			return err
		}
		defer rows.Close()
		tx, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Transaction])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("transaction not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &tx, nil
}

// ListForOwner retrieves the owner's transactions with optional filters,
// newest occurred_at first.
func (r *TransactionRepo) ListForOwner(
	ctx context.Context,
	ownerID string,
	opts *model.TransactionsListOptions,
) ([]*model.Transaction, error) {
	if opts == nil {
		opts = &model.TransactionsListOptions{}
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	offset := max(opts.Offset, 0)

	query, args := database.BuildListQuery(r.buildListOptions(ownerID, opts, limit, offset))

	var rowsOut []model.Transaction
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Transaction])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}

	res := make([]*model.Transaction, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

func (r *TransactionRepo) buildListOptions(
	ownerID string,
	opts *model.TransactionsListOptions,
	limit, offset int,
) *database.ListQueryOptions {
	queryOpts := []database.ListQueryOption{
		database.WithColumns(transactionColumns()...),
		database.WithCondition(database.WhereCond("user_id", database.Equal, ownerID)),
		database.WithOrderBy("occurred_at", "DESC"),
		database.WithLimit(limit),
		database.WithOffset(offset),
	}

	if opts.Kind != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("kind", database.Equal, string(*opts.Kind)),
		))
	}
	if opts.Category != nil && strings.TrimSpace(*opts.Category) != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("category", database.Equal, strings.TrimSpace(*opts.Category)),
		))
	}
	if opts.From != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("occurred_at", database.GreaterThanOrEqual, opts.From.UTC()),
		))
	}
	if opts.To != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("occurred_at", database.LessThanOrEqual, opts.To.UTC()),
		))
	}

	return database.NewListQueryOptions("transactions", queryOpts...)
}

// Update updates fields of an owned transaction. Updating a row that is
// absent or owned by someone else returns NotFound.
func (r *TransactionRepo) Update(
	ctx context.Context,
	id, ownerID string,
	req *model.UpdateTransactionRequest,
) (*model.Transaction, error) {
	if req == nil {
		return nil, apperrors.Validation("update transaction request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	setClause, args := r.buildUpdateClause(req)
	args = append(args, id, ownerID)
	query := "UPDATE transactions SET " + setClause +
		" WHERE id = $" + strconv.Itoa(len(args)-1) +
		" AND user_id = $" + strconv.Itoa(len(args)) +
		" RETURNING " + transactionColumnList

	var out model.Transaction
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Transaction])
		return e
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("transaction not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// buildUpdateClause builds the SQL SET clause and args for updating a transaction.
func (r *TransactionRepo) buildUpdateClause(req *model.UpdateTransactionRequest) (string, []any) {
	setParts := make([]string, 0, 6)
	args := make([]any, 0, 6)
	nextIdx := func() int { return len(args) + 1 }

	if req.Amount != nil {
		setParts = append(setParts, fmt.Sprintf("amount = $%d", nextIdx()))
		args = append(args, *req.Amount)
	}
	if req.Kind != nil {
		setParts = append(setParts, fmt.Sprintf("kind = $%d", nextIdx()))
		args = append(args, *req.Kind)
	}
	if req.Category != nil {
		setParts = append(setParts, fmt.Sprintf("category = $%d", nextIdx()))
		args = append(args, *req.Category)
	}
	if req.Note != nil {
		if *req.Note == "" {
			setParts = append(setParts, "note = NULL")
		} else {
			setParts = append(setParts, fmt.Sprintf("note = $%d", nextIdx()))
			args = append(args, *req.Note)
		}
	}
	if req.OccurredAt != nil {
		setParts = append(setParts, fmt.Sprintf("occurred_at = $%d", nextIdx()))
		args = append(args, req.OccurredAt.UTC())
	}

	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())

	return strings.Join(setParts, ", "), args
}

// Delete deletes an owned transaction. Returns false when the row is absent
// or owned by someone else.
func (r *TransactionRepo) Delete(ctx context.Context, id, ownerID string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx,
			`DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, ownerID)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, apperrors.MapDBError(err)
	}
	return rows > 0, nil
}

// SumByKind totals the owner's transactions in [period.From, period.To) grouped by kind.
func (r *TransactionRepo) SumByKind(
	ctx context.Context,
	ownerID string,
	period core.Period,
) ([]model.KindTotal, error) {
	var totals []model.KindTotal
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT kind, COALESCE(SUM(amount), 0) AS total
			FROM transactions
			WHERE user_id = $1 AND occurred_at >= $2 AND occurred_at < $3
			GROUP BY kind
			ORDER BY kind`,
			ownerID, period.From.UTC(), period.To.UTC())
		if err != nil {
			return err
		}
		defer rows.Close()
		totals, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.KindTotal])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return totals, nil
}

// SumByCategory totals the owner's transactions in [period.From, period.To)
// grouped by category, largest total first.
func (r *TransactionRepo) SumByCategory(
	ctx context.Context,
	ownerID string,
	period core.Period,
) ([]model.CategoryTotal, error) {
	var totals []model.CategoryTotal
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT category, COALESCE(SUM(amount), 0) AS total
			FROM transactions
			WHERE user_id = $1 AND occurred_at >= $2 AND occurred_at < $3
			GROUP BY category
			ORDER BY total DESC, category`,
			ownerID, period.From.UTC(), period.To.UTC())
		if err != nil {
			return err
		}
		defer rows.Close()
		totals, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.CategoryTotal])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return totals, nil
}
