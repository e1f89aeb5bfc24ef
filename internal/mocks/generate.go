// Package mocks provides mock implementations for testing the finledger backend.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our repository
// and port interfaces. The mocks are generated using go:generate directives and provide a
// fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockUserRepository(ctrl)
//	mockRepo.EXPECT().GetByEmail(gomock.Any(), "a@x.com").Return(user, nil)
package mocks

// Generate mock for UserRepository interface from internal/core package.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=user_repository_mock.go github.com/finledger/finledger/internal/core UserRepository

// Generate mock for TransactionRepository interface from internal/core package.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=transaction_repository_mock.go github.com/finledger/finledger/internal/core TransactionRepository

// Generate mock for BudgetRepository interface from internal/core package.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=budget_repository_mock.go github.com/finledger/finledger/internal/core BudgetRepository

// Generate mocks for the auth ports (TokenService, PasswordHasher, LoginThrottle).
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=auth_ports_mock.go github.com/finledger/finledger/internal/ports TokenService,PasswordHasher,LoginThrottle
