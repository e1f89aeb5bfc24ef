// Package devseed populates a development database with a demo account and
// sample ledger data. It is only invoked in dev mode.
package devseed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/finledger/finledger/internal/bootstrap"
	"github.com/finledger/finledger/internal/data"
	"github.com/finledger/finledger/internal/domain/model"
	apperrors "github.com/finledger/finledger/internal/errors"
)

const (
	demoEmail    = "demo@finledger.local"
	demoPassword = "demo-password"
)

// Seed creates the demo user with a handful of transactions and budgets.
// Seeding is idempotent: if the demo user already exists nothing is written.
func Seed(ctx context.Context, db *sql.DB, services bootstrap.ServiceContainer, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	users := data.NewUserRepo(db)
	exists, err := users.EmailExists(ctx, demoEmail)
	if err != nil {
		return fmt.Errorf("check demo user: %w", err)
	}
	if exists {
		logger.InfoContext(ctx, "dev seed skipped", "reason", "demo user already present")
		return nil
	}

	if _, err = services.Auth.Register(ctx, model.CreateUserRequest{
		Email:    demoEmail,
		Password: demoPassword,
	}); err != nil && !apperrors.IsConflict(err) {
		return fmt.Errorf("register demo user: %w", err)
	}

	demo, err := users.GetByEmail(ctx, demoEmail)
	if err != nil {
		return fmt.Errorf("load demo user: %w", err)
	}

	if err = seedTransactions(ctx, services, demo.ID); err != nil {
		return err
	}
	if err = seedBudgets(ctx, services, demo.ID); err != nil {
		return err
	}

	logger.InfoContext(ctx, "dev seed completed", "email", demoEmail)
	return nil
}

func seedTransactions(ctx context.Context, services bootstrap.ServiceContainer, ownerID string) error {
	now := time.Now().UTC()
	note := "seeded for development"
	samples := []*model.CreateTransactionRequest{
		{Amount: 3200, Kind: model.TransactionKindIncome, Category: "salary", OccurredAt: now.AddDate(0, 0, -20)},
		{Amount: 950, Kind: model.TransactionKindExpense, Category: "rent", OccurredAt: now.AddDate(0, 0, -18)},
		{Amount: 64.30, Kind: model.TransactionKindExpense, Category: "groceries", Note: &note, OccurredAt: now.AddDate(0, 0, -10)},
		{Amount: 28.50, Kind: model.TransactionKindExpense, Category: "transport", OccurredAt: now.AddDate(0, 0, -3)},
	}

	for _, req := range samples {
		if _, err := services.Transactions.Create(ctx, ownerID, req); err != nil {
			return fmt.Errorf("seed transaction %s: %w", req.Category, err)
		}
	}
	return nil
}

func seedBudgets(ctx context.Context, services bootstrap.ServiceContainer, ownerID string) error {
	now := time.Now().UTC()
	samples := []*model.CreateBudgetRequest{
		{Year: now.Year(), Month: int(now.Month()), Category: "groceries", LimitAmount: 400},
		{Year: now.Year(), Month: int(now.Month()), Category: "transport", LimitAmount: 120},
	}

	for _, req := range samples {
		if _, err := services.Budgets.Create(ctx, ownerID, req); err != nil {
			return fmt.Errorf("seed budget %s: %w", req.Category, err)
		}
	}
	return nil
}
