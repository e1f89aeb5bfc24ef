package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/finledger/finledger/config"
	httpx "github.com/finledger/finledger/internal/http"
)

// HTTPServerConfig contains configuration for the HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// StartHTTPServer creates and starts the HTTP server.
// Returns the server instance for graceful shutdown.
func StartHTTPServer(cfg *HTTPServerConfig) *http.Server {
	if cfg == nil {
		return nil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	handler := httpx.NewRouter(httpx.RouterServices{
		Auth:         cfg.Services.Auth,
		Transactions: cfg.Services.Transactions,
		Budgets:      cfg.Services.Budgets,
		Reports:      cfg.Services.Reports,
		Tokens:       cfg.Services.Tokens,
		Logger:       logger,
	})

	addr := ":8080"
	if cfg.Config != nil && cfg.Config.HTTP.Addr != "" {
		addr = cfg.Config.HTTP.Addr
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", "error", err)
		}
	}()

	return server
}

// ShutdownConfig contains dependencies for HTTP server shutdown.
type ShutdownConfig struct {
	Context context.Context
	Server  *http.Server
	Timeout time.Duration
	Logger  *slog.Logger
}

// ShutdownHTTPServer gracefully shuts down the HTTP server, bounding the
// drain of in-flight requests.
func ShutdownHTTPServer(cfg ShutdownConfig) error {
	if cfg.Server == nil {
		return nil
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("shutting down HTTP server")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(cfg.Context, timeout)
	defer cancel()

	if err := cfg.Server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("HTTP server stopped")
	}

	return nil
}

// RunWithShutdown starts the HTTP server and blocks until SIGINT or SIGTERM,
// then drains it.
func RunWithShutdown(cfg *HTTPServerConfig) error {
	if cfg == nil {
		return errors.New("http server config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	server := StartHTTPServer(cfg)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	<-quit
	logger.Info("shutting down...")

	var timeout time.Duration
	if cfg.Config != nil {
		timeout = cfg.Config.HTTP.ShutdownTimeout
	}
	if err := ShutdownHTTPServer(ShutdownConfig{
		Context: context.Background(),
		Server:  server,
		Timeout: timeout,
		Logger:  logger,
	}); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	return nil
}
