package data

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finledger/finledger/internal/domain/model"
	apperrors "github.com/finledger/finledger/internal/errors"
	"github.com/finledger/finledger/internal/testutil"
)

func createTestBudget(
	t *testing.T,
	repo *BudgetRepo,
	ownerID string,
	req model.CreateBudgetRequest,
) *model.Budget {
	t.Helper()
	b, err := repo.Create(context.Background(), ownerID, &req)
	require.NoError(t, err)
	return b
}

func TestBudgetRepo_CreateAndGet(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		owner := createTestUser(t, db, "budget-owner@example.com")
		repo := NewBudgetRepo(db)

		b := createTestBudget(t, repo, owner, model.CreateBudgetRequest{
			Year: 2026, Month: 4, Category: "groceries", LimitAmount: 450,
		})

		require.NotEmpty(t, b.ID)
		assert.Equal(t, owner, b.UserID)
		assert.Equal(t, 2026, b.Year)
		assert.Equal(t, 4, b.Month)

		got, err := repo.GetByID(context.Background(), b.ID, owner)
		require.NoError(t, err)
		assert.InDelta(t, 450.0, got.LimitAmount, 0.001)
	})
}

func TestBudgetRepo_OwnerIsolation(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		alice := createTestUser(t, db, "budget-alice@example.com")
		mallory := createTestUser(t, db, "budget-mallory@example.com")
		repo := NewBudgetRepo(db)
		ctx := context.Background()

		b := createTestBudget(t, repo, alice, model.CreateBudgetRequest{
			Year: 2026, Month: 5, Category: "travel", LimitAmount: 800,
		})

		_, err := repo.GetByID(ctx, b.ID, mallory)
		assert.True(t, apperrors.IsNotFound(err))

		limit := 1.0
		_, err = repo.Update(ctx, b.ID, mallory, &model.UpdateBudgetRequest{LimitAmount: &limit})
		assert.True(t, apperrors.IsNotFound(err))

		deleted, err := repo.Delete(ctx, b.ID, mallory)
		require.NoError(t, err)
		assert.False(t, deleted)

		got, err := repo.GetByID(ctx, b.ID, alice)
		require.NoError(t, err)
		assert.InDelta(t, 800.0, got.LimitAmount, 0.001)
	})
}

func TestBudgetRepo_ListFilters(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		owner := createTestUser(t, db, "budget-filters@example.com")
		repo := NewBudgetRepo(db)
		ctx := context.Background()

		createTestBudget(t, repo, owner, model.CreateBudgetRequest{
			Year: 2025, Month: 12, Category: "gifts", LimitAmount: 300,
		})
		createTestBudget(t, repo, owner, model.CreateBudgetRequest{
			Year: 2026, Month: 1, Category: "groceries", LimitAmount: 400,
		})
		createTestBudget(t, repo, owner, model.CreateBudgetRequest{
			Year: 2026, Month: 2, Category: "groceries", LimitAmount: 420,
		})

		t.Run("by year", func(t *testing.T) {
			list, err := repo.ListForOwner(ctx, owner, &model.BudgetsListOptions{Year: testutil.IntPtr(2026)})
			require.NoError(t, err)
			assert.Len(t, list, 2)
		})

		t.Run("by year and month", func(t *testing.T) {
			list, err := repo.ListForOwner(ctx, owner, &model.BudgetsListOptions{
				Year: testutil.IntPtr(2026), Month: testutil.IntPtr(2),
			})
			require.NoError(t, err)
			require.Len(t, list, 1)
			assert.InDelta(t, 420.0, list[0].LimitAmount, 0.001)
		})

		t.Run("no filters returns all", func(t *testing.T) {
			list, err := repo.ListForOwner(ctx, owner, nil)
			require.NoError(t, err)
			assert.Len(t, list, 3)
		})
	})
}

func TestBudgetRepo_UpdateAndDelete(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		owner := createTestUser(t, db, "budget-update@example.com")
		repo := NewBudgetRepo(db)
		ctx := context.Background()

		b := createTestBudget(t, repo, owner, model.CreateBudgetRequest{
			Year: 2026, Month: 6, Category: "dining", LimitAmount: 200,
		})

		newLimit := 250.0
		updated, err := repo.Update(ctx, b.ID, owner, &model.UpdateBudgetRequest{LimitAmount: &newLimit})
		require.NoError(t, err)
		assert.InDelta(t, 250.0, updated.LimitAmount, 0.001)

		deleted, err := repo.Delete(ctx, b.ID, owner)
		require.NoError(t, err)
		assert.True(t, deleted)

		_, err = repo.GetByID(ctx, b.ID, owner)
		assert.True(t, apperrors.IsNotFound(err))

		// A second delete reports nothing to remove.
		deleted, err = repo.Delete(ctx, b.ID, owner)
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}
