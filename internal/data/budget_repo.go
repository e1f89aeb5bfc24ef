package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/finledger/finledger/internal/data/database"
	"github.com/finledger/finledger/internal/data/pgxutil"
	"github.com/finledger/finledger/internal/domain/model"
	apperrors "github.com/finledger/finledger/internal/errors"
)

// BudgetRepo provides database operations for budgets. Every query filters
// by user_id so rows can never cross owner boundaries.
type BudgetRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewBudgetRepo creates a new BudgetRepo with real time provider.
func NewBudgetRepo(db *sql.DB) *BudgetRepo {
	return &BudgetRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewBudgetRepoWithTimeProvider creates a new BudgetRepo with a custom time provider.
func NewBudgetRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *BudgetRepo {
	return &BudgetRepo{DB: db, timeProvider: tp}
}

func budgetColumns() []string {
	return []string{
		"id",
		"user_id",
		"year",
		"month",
		"category",
		"limit_amount",
		"created_at",
		"updated_at",
	}
}

const budgetColumnList = "id, user_id, year, month, category, limit_amount, created_at, updated_at"

// Create inserts a new budget owned by ownerID.
func (r *BudgetRepo) Create(
	ctx context.Context,
	ownerID string,
	req *model.CreateBudgetRequest,
) (*model.Budget, error) {
	if req == nil {
		return nil, apperrors.Validation("create budget request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	createdAt := r.timeProvider.Now().UTC()
	var out model.Budget
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO budgets (user_id, year, month, category, limit_amount, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING `+budgetColumnList,
			ownerID,
			req.Year,
			req.Month,
			req.Category,
			req.LimitAmount,
			createdAt,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Budget])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves one budget scoped to ownerID.
func (r *BudgetRepo) GetByID(ctx context.Context, id, ownerID string) (*model.Budget, error) {
	var b model.Budget
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+budgetColumnList+` FROM budgets WHERE id = $1 AND user_id = $2`,
			id, ownerID)
		if err != nil {
			return err
		}
		defer rows.Close()
		b, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Budget])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("budget not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &b, nil
}

// ListForOwner retrieves the owner's budgets with optional year/month filters.
func (r *BudgetRepo) ListForOwner(
	ctx context.Context,
	ownerID string,
	opts *model.BudgetsListOptions,
) ([]*model.Budget, error) {
	if opts == nil {
		opts = &model.BudgetsListOptions{}
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	offset := max(opts.Offset, 0)

	queryOpts := []database.ListQueryOption{
		database.WithColumns(budgetColumns()...),
		database.WithCondition(database.WhereCond("user_id", database.Equal, ownerID)),
		database.WithOrderBy("year", "DESC"),
		database.WithLimit(limit),
		database.WithOffset(offset),
	}
	if opts.Year != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("year", database.Equal, *opts.Year),
		))
	}
	if opts.Month != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("month", database.Equal, *opts.Month),
		))
	}

	query, args := database.BuildListQuery(database.NewListQueryOptions("budgets", queryOpts...))

	var rowsOut []model.Budget
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Budget])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}

	res := make([]*model.Budget, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update updates fields of an owned budget. Updating a row that is absent or
// owned by someone else returns NotFound.
func (r *BudgetRepo) Update(
	ctx context.Context,
	id, ownerID string,
	req *model.UpdateBudgetRequest,
) (*model.Budget, error) {
	if req == nil {
		return nil, apperrors.Validation("update budget request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	setClause, args := r.buildUpdateClause(req)
	args = append(args, id, ownerID)
	query := "UPDATE budgets SET " + setClause +
		" WHERE id = $" + strconv.Itoa(len(args)-1) +
		" AND user_id = $" + strconv.Itoa(len(args)) +
		" RETURNING " + budgetColumnList

	var out model.Budget
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Budget])
		return e
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("budget not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// buildUpdateClause builds the SQL SET clause and args for updating a budget.
func (r *BudgetRepo) buildUpdateClause(req *model.UpdateBudgetRequest) (string, []any) {
	setParts := make([]string, 0, 5)
	args := make([]any, 0, 5)
	nextIdx := func() int { return len(args) + 1 }

	if req.Year != nil {
		setParts = append(setParts, fmt.Sprintf("year = $%d", nextIdx()))
		args = append(args, *req.Year)
	}
	if req.Month != nil {
		setParts = append(setParts, fmt.Sprintf("month = $%d", nextIdx()))
		args = append(args, *req.Month)
	}
	if req.Category != nil {
		setParts = append(setParts, fmt.Sprintf("category = $%d", nextIdx()))
		args = append(args, *req.Category)
	}
	if req.LimitAmount != nil {
		setParts = append(setParts, fmt.Sprintf("limit_amount = $%d", nextIdx()))
		args = append(args, *req.LimitAmount)
	}

	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())

	return strings.Join(setParts, ", "), args
}

// Delete deletes an owned budget. Returns false when the row is absent or
// owned by someone else.
func (r *BudgetRepo) Delete(ctx context.Context, id, ownerID string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx,
			`DELETE FROM budgets WHERE id = $1 AND user_id = $2`, id, ownerID)
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
