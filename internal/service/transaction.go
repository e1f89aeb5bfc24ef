package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/finledger/finledger/internal/core"
	"github.com/finledger/finledger/internal/domain/model"
	apperrors "github.com/finledger/finledger/internal/errors"
)

// TransactionServiceOptions groups dependencies for TransactionService.
type TransactionServiceOptions struct {
	Transactions core.TransactionRepository
}

// TransactionService orchestrates transaction CRUD. The owner id always
// comes from validated request claims, never from client input.
type TransactionService struct {
	transactions core.TransactionRepository
}

// NewTransactionService constructs a new TransactionService.
func NewTransactionService(opts TransactionServiceOptions) *TransactionService {
	return &TransactionService{transactions: opts.Transactions}
}

// validRecordID rejects ids that cannot be uuids before they reach the
// database. A malformed id behaves like an absent record.
func validRecordID(id string) bool {
	return uuid.Validate(id) == nil
}

// Create records a new transaction for the owner.
func (s *TransactionService) Create(
	ctx context.Context,
	ownerID string,
	req *model.CreateTransactionRequest,
) (*model.Transaction, error) {
	if req == nil {
		return nil, apperrors.Validation("request body is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	return s.transactions.Create(ctx, ownerID, req)
}

// ListForOwner returns the owner's transactions with optional filters.
func (s *TransactionService) ListForOwner(
	ctx context.Context,
	ownerID string,
	opts *model.TransactionsListOptions,
) ([]*model.Transaction, error) {
	return s.transactions.ListForOwner(ctx, ownerID, opts)
}

// Update modifies an owned transaction. An absent or not-owned id is NotFound.
func (s *TransactionService) Update(
	ctx context.Context,
	id, ownerID string,
	req *model.UpdateTransactionRequest,
) (*model.Transaction, error) {
	if req == nil {
		return nil, apperrors.Validation("request body is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	if !validRecordID(id) {
		return nil, apperrors.NotFound("transaction not found")
	}
	return s.transactions.Update(ctx, id, ownerID, req)
}

// Delete removes an owned transaction. An absent or not-owned id is NotFound.
func (s *TransactionService) Delete(ctx context.Context, id, ownerID string) error {
	if !validRecordID(id) {
		return apperrors.NotFound("transaction not found")
	}
	deleted, err := s.transactions.Delete(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NotFound("transaction not found")
	}
	return nil
}
