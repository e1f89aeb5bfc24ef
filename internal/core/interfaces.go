package core

import (
	"context"
	"time"

	"github.com/finledger/finledger/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// These interfaces define the contracts between the service layer and data layer.
// Service implementations should depend on these interfaces, not concrete implementations.

// UserRepository defines the interface for user identity data operations.
type UserRepository interface {
	// Create inserts the user and returns the stored record. A duplicate
	// email surfaces as a Conflict from the unique index.
	Create(ctx context.Context, params CreateUserParams) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	// GetByEmail looks up a user by exact, case-sensitive email match.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// EmailExists reports whether a user with the exact email is stored.
	EmailExists(ctx context.Context, email string) (bool, error)
}

// CreateUserParams groups parameters for UserRepository.Create (≤3 params rule).
// PasswordHash is already bcrypt-hashed by the caller.
type CreateUserParams struct {
	Email        string
	PasswordHash string
	Name         *string
}

// TransactionRepository defines the interface for transaction data operations.
// Every method scopes to one owner; no call can cross user boundaries.
type TransactionRepository interface {
	Create(ctx context.Context, ownerID string, req *model.CreateTransactionRequest) (*model.Transaction, error)
	GetByID(ctx context.Context, id, ownerID string) (*model.Transaction, error)
	ListForOwner(ctx context.Context, ownerID string, opts *model.TransactionsListOptions) ([]*model.Transaction, error)
	Update(ctx context.Context, id, ownerID string, req *model.UpdateTransactionRequest) (*model.Transaction, error)
	Delete(ctx context.Context, id, ownerID string) (bool, error)

	// SumByKind totals the owner's transactions in [from, to) grouped by kind.
	SumByKind(ctx context.Context, ownerID string, period Period) ([]model.KindTotal, error)
	// SumByCategory totals the owner's transactions in [from, to) grouped by
	// category, largest total first.
	SumByCategory(ctx context.Context, ownerID string, period Period) ([]model.CategoryTotal, error)
}

// Period is a half-open time range [From, To) for aggregate queries.
type Period struct {
	From time.Time
	To   time.Time
}

// BudgetRepository defines the interface for budget data operations.
type BudgetRepository interface {
	Create(ctx context.Context, ownerID string, req *model.CreateBudgetRequest) (*model.Budget, error)
	GetByID(ctx context.Context, id, ownerID string) (*model.Budget, error)
	ListForOwner(ctx context.Context, ownerID string, opts *model.BudgetsListOptions) ([]*model.Budget, error)
	Update(ctx context.Context, id, ownerID string, req *model.UpdateBudgetRequest) (*model.Budget, error)
	Delete(ctx context.Context, id, ownerID string) (bool, error)
}
