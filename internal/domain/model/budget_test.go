package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBudgetRequest_Validate(t *testing.T) {
	valid := func() CreateBudgetRequest {
		return CreateBudgetRequest{Year: 2026, Month: 8, Category: "groceries", LimitAmount: 400}
	}

	t.Run("valid", func(t *testing.T) {
		req := valid()
		assert.NoError(t, req.Validate())
	})

	t.Run("month out of range", func(t *testing.T) {
		for _, m := range []int{0, 13, -1} {
			req := valid()
			req.Month = m
			assert.ErrorContains(t, req.Validate(), "month must be between 1 and 12")
		}
	})

	t.Run("year out of range", func(t *testing.T) {
		req := valid()
		req.Year = 1899
		assert.ErrorContains(t, req.Validate(), "year must be between")
	})

	t.Run("blank category", func(t *testing.T) {
		req := valid()
		req.Category = " "
		assert.ErrorContains(t, req.Validate(), "category is required")
	})

	t.Run("non-positive limit", func(t *testing.T) {
		req := valid()
		req.LimitAmount = 0
		assert.ErrorContains(t, req.Validate(), "limit_amount must be > 0")
	})
}

func TestUpdateBudgetRequest_Validate(t *testing.T) {
	t.Run("empty update rejected", func(t *testing.T) {
		req := UpdateBudgetRequest{}
		assert.ErrorContains(t, req.Validate(), "at least one field")
	})

	t.Run("month bounds", func(t *testing.T) {
		m := 12
		req := UpdateBudgetRequest{Month: &m}
		assert.NoError(t, req.Validate())

		m = 13
		assert.ErrorContains(t, req.Validate(), "month must be between 1 and 12")
	})

	t.Run("category trimmed", func(t *testing.T) {
		c := " travel "
		req := UpdateBudgetRequest{Category: &c}
		require.NoError(t, req.Validate())
		assert.Equal(t, "travel", *req.Category)
	})
}
