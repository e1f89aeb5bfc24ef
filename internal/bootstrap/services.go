package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/finledger/finledger/config"
	"github.com/finledger/finledger/internal/adapters/jwtauth"
	"github.com/finledger/finledger/internal/adapters/password"
	redisadapter "github.com/finledger/finledger/internal/adapters/redis"
	"github.com/finledger/finledger/internal/data"
	"github.com/finledger/finledger/internal/ports"
	"github.com/finledger/finledger/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth         *service.AuthService
	Transactions *service.TransactionService
	Budgets      *service.BudgetService
	Reports      *service.ReportService
	Tokens       ports.TokenService
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient goredis.UniversalClient // optional; enables the login throttle
	Logger      *slog.Logger
}

// serviceRepositories groups data adapters backing service ports.
type serviceRepositories struct {
	Users        *data.UserRepo
	Transactions *data.TransactionRepo
	Budgets      *data.BudgetRepo
}

func buildRepositories(db *sql.DB) serviceRepositories {
	return serviceRepositories{
		Users:        data.NewUserRepo(db),
		Transactions: data.NewTransactionRepo(db),
		Budgets:      data.NewBudgetRepo(db),
	}
}

func buildLoginThrottle(deps *ServiceDeps) (ports.LoginThrottle, error) {
	if deps.RedisClient == nil {
		return nil, nil
	}
	throttle, err := redisadapter.NewLoginThrottle(deps.RedisClient, redisadapter.ThrottleOptions{
		MaxAttempts: deps.Config.Throttle.MaxAttempts,
		Window:      deps.Config.Throttle.AttemptWindow,
	})
	if err != nil {
		return nil, fmt.Errorf("build login throttle: %w", err)
	}
	return throttle, nil
}

// NewServices wires repositories, adapters, and business services.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tokens, err := jwtauth.New(jwtauth.Options{
		Secret: []byte(deps.Config.Auth.JWTSecret),
		TTL:    deps.Config.Auth.JWTTTL,
		Issuer: deps.Config.Auth.JWTIssuer,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build token service: %w", err)
	}

	throttle, err := buildLoginThrottle(deps)
	if err != nil {
		return ServiceContainer{}, err
	}

	repos := buildRepositories(deps.DB)
	hasher := password.NewHasher(deps.Config.Auth.BcryptCost)

	auth := service.NewAuthService(service.AuthServiceOptions{
		Users:    repos.Users,
		Tokens:   tokens,
		Hasher:   hasher,
		Throttle: throttle,
		Logger:   logger,
	})

	return ServiceContainer{
		Auth:         auth,
		Transactions: service.NewTransactionService(service.TransactionServiceOptions{Transactions: repos.Transactions}),
		Budgets:      service.NewBudgetService(service.BudgetServiceOptions{Budgets: repos.Budgets}),
		Reports:      service.NewReportService(service.ReportServiceOptions{Transactions: repos.Transactions}),
		Tokens:       tokens,
	}, nil
}
