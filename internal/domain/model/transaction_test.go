package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTransactionKind(t *testing.T) {
	kind, ok := ParseTransactionKind("  Income ")
	require.True(t, ok)
	assert.Equal(t, TransactionKindIncome, kind)

	kind, ok = ParseTransactionKind("expense")
	require.True(t, ok)
	assert.Equal(t, TransactionKindExpense, kind)

	_, ok = ParseTransactionKind("transfer")
	assert.False(t, ok)

	_, ok = ParseTransactionKind("")
	assert.False(t, ok)
}

func TestCreateTransactionRequest_Validate(t *testing.T) {
	now := time.Now()

	valid := func() CreateTransactionRequest {
		return CreateTransactionRequest{
			Amount:     42.50,
			Kind:       TransactionKindExpense,
			Category:   "groceries",
			OccurredAt: now,
		}
	}

	t.Run("valid", func(t *testing.T) {
		req := valid()
		assert.NoError(t, req.Validate())
	})

	t.Run("zero amount", func(t *testing.T) {
		req := valid()
		req.Amount = 0
		assert.ErrorContains(t, req.Validate(), "amount must be > 0")
	})

	t.Run("negative amount", func(t *testing.T) {
		req := valid()
		req.Amount = -5
		assert.ErrorContains(t, req.Validate(), "amount must be > 0")
	})

	t.Run("bad kind", func(t *testing.T) {
		req := valid()
		req.Kind = "transfer"
		assert.ErrorContains(t, req.Validate(), "income or expense")
	})

	t.Run("kind normalized", func(t *testing.T) {
		req := valid()
		req.Kind = " INCOME "
		require.NoError(t, req.Validate())
		assert.Equal(t, TransactionKindIncome, req.Kind)
	})

	t.Run("blank category", func(t *testing.T) {
		req := valid()
		req.Category = "  "
		assert.ErrorContains(t, req.Validate(), "category is required")
	})

	t.Run("zero occurred_at", func(t *testing.T) {
		req := valid()
		req.OccurredAt = time.Time{}
		assert.ErrorContains(t, req.Validate(), "occurred_at is required")
	})
}

func TestUpdateTransactionRequest_Validate(t *testing.T) {
	t.Run("empty update rejected", func(t *testing.T) {
		req := UpdateTransactionRequest{}
		assert.False(t, req.HasUpdates())
		assert.ErrorContains(t, req.Validate(), "at least one field")
	})

	t.Run("single field ok", func(t *testing.T) {
		amount := 10.0
		req := UpdateTransactionRequest{Amount: &amount}
		assert.True(t, req.HasUpdates())
		assert.NoError(t, req.Validate())
	})

	t.Run("category trimmed", func(t *testing.T) {
		c := "  rent "
		req := UpdateTransactionRequest{Category: &c}
		require.NoError(t, req.Validate())
		assert.Equal(t, "rent", *req.Category)
	})

	t.Run("bad kind rejected", func(t *testing.T) {
		k := TransactionKind("loan")
		req := UpdateTransactionRequest{Kind: &k}
		assert.ErrorContains(t, req.Validate(), "income or expense")
	})
}
