package service

import (
	"context"

	"github.com/finledger/finledger/internal/core"
	"github.com/finledger/finledger/internal/domain/model"
	apperrors "github.com/finledger/finledger/internal/errors"
)

// BudgetServiceOptions groups dependencies for BudgetService.
type BudgetServiceOptions struct {
	Budgets core.BudgetRepository
}

// BudgetService orchestrates budget CRUD, owner-scoped like everything else.
type BudgetService struct {
	budgets core.BudgetRepository
}

// NewBudgetService constructs a new BudgetService.
func NewBudgetService(opts BudgetServiceOptions) *BudgetService {
	return &BudgetService{budgets: opts.Budgets}
}

// Create records a new budget for the owner.
func (s *BudgetService) Create(
	ctx context.Context,
	ownerID string,
	req *model.CreateBudgetRequest,
) (*model.Budget, error) {
	if req == nil {
		return nil, apperrors.Validation("request body is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	return s.budgets.Create(ctx, ownerID, req)
}

// ListForOwner returns the owner's budgets with optional filters.
func (s *BudgetService) ListForOwner(
	ctx context.Context,
	ownerID string,
	opts *model.BudgetsListOptions,
) ([]*model.Budget, error) {
	return s.budgets.ListForOwner(ctx, ownerID, opts)
}

// Update modifies an owned budget. An absent or not-owned id is NotFound.
func (s *BudgetService) Update(
	ctx context.Context,
	id, ownerID string,
	req *model.UpdateBudgetRequest,
) (*model.Budget, error) {
	if req == nil {
		return nil, apperrors.Validation("request body is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	if !validRecordID(id) {
		return nil, apperrors.NotFound("budget not found")
	}
	return s.budgets.Update(ctx, id, ownerID, req)
}

// Delete removes an owned budget. An absent or not-owned id is NotFound.
func (s *BudgetService) Delete(ctx context.Context, id, ownerID string) error {
	if !validRecordID(id) {
		return apperrors.NotFound("budget not found")
	}
	deleted, err := s.budgets.Delete(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NotFound("budget not found")
	}
	return nil
}
