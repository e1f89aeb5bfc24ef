package httpx

import (
	"log/slog"
	"net/http"

	"github.com/finledger/finledger/internal/ports"
	"github.com/finledger/finledger/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth         *service.AuthService
	Transactions *service.TransactionService
	Budgets      *service.BudgetService
	Reports      *service.ReportService
	Tokens       ports.TokenService
	Logger       *slog.Logger // Logger for middleware and HTTP errors (optional)
}

// NewRouter creates and configures the HTTP router. Every route under the
// protected surface is registered through the RequireAuth gate; there is no
// other path to those handlers.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	authHandlers := &AuthHandlers{Svc: services.Auth}
	txHandlers := &TransactionHandlers{Svc: services.Transactions}
	budgetHandlers := &BudgetHandlers{Svc: services.Budgets}
	reportHandlers := &ReportHandlers{Svc: services.Reports}

	guard := RequireAuth(services.Tokens, logger)

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	registerAuthRoutes(mux, authHandlers, guard)
	registerOwnedCRUD(mux, ownedCRUDRoutes{
		Base:   "/api/transactions",
		Create: txHandlers.Create,
		List:   txHandlers.List,
		Update: txHandlers.Update,
		Delete: txHandlers.Delete,
		Guard:  guard,
	})
	registerOwnedCRUD(mux, ownedCRUDRoutes{
		Base:   "/api/budgets",
		Create: budgetHandlers.Create,
		List:   budgetHandlers.List,
		Update: budgetHandlers.Update,
		Delete: budgetHandlers.Delete,
		Guard:  guard,
	})
	mux.Handle("GET /api/reports/monthly", guard(http.HandlerFunc(reportHandlers.Monthly)))

	return Recover(logger)(Logging(logger)(mux))
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers, guard func(http.Handler) http.Handler) {
	mux.HandleFunc("POST /api/auth/register", h.Register)
	mux.HandleFunc("POST /api/auth/login", h.Login)
	mux.Handle("GET /api/auth/me", guard(http.HandlerFunc(h.Me)))
}

// ownedCRUDRoutes describes the standard owner-scoped routes for a resource
// base path. The guard is mandatory.
type ownedCRUDRoutes struct {
	Base   string
	Create http.HandlerFunc
	List   http.HandlerFunc
	Update http.HandlerFunc
	Delete http.HandlerFunc
	Guard  func(http.Handler) http.Handler
}

func registerOwnedCRUD(mux *http.ServeMux, cfg ownedCRUDRoutes) {
	if cfg.Base == "" || cfg.Guard == nil {
		panic("registerOwnedCRUD: base and guard are required") //nolint:forbidigo // Fail fast during server setup.
	}
	if cfg.Create == nil || cfg.List == nil || cfg.Update == nil || cfg.Delete == nil {
		panic("registerOwnedCRUD: nil handler for base " + cfg.Base) //nolint:forbidigo // Fail fast during server setup.
	}

	mux.Handle("POST "+cfg.Base, cfg.Guard(cfg.Create))
	mux.Handle("GET "+cfg.Base, cfg.Guard(cfg.List))
	mux.Handle("PUT "+cfg.Base+"/{id}", cfg.Guard(cfg.Update))
	mux.Handle("DELETE "+cfg.Base+"/{id}", cfg.Guard(cfg.Delete))
}
