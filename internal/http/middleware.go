package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	domainauth "github.com/finledger/finledger/internal/domain/auth"
	"github.com/finledger/finledger/internal/ports"
)

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth returns a middleware that gates a handler behind a valid bearer
// token. Every rejection produces the same 401 body regardless of whether the
// token was missing, malformed, badly signed, or expired; the specific reason
// is only logged. On success the token's claims are attached to the request
// context.
func RequireAuth(tokens ports.TokenService, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := bearerToken(r)
			if err != nil {
				logRejection(logger, r, err)
				writeUnauthorized(w)
				return
			}

			claims, err := tokens.Validate(raw)
			if err != nil {
				logRejection(logger, r, err)
				writeUnauthorized(w)
				return
			}

			ctx := SetClaimsInContext(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Any other shape is treated as a missing credential.
func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", domainauth.ErrTokenMissing
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", domainauth.ErrTokenMalformed
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", domainauth.ErrTokenMissing
	}
	return token, nil
}

func logRejection(logger *slog.Logger, r *http.Request, err error) {
	if logger == nil {
		return
	}
	logger.Warn("request rejected",
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.String("reason", err.Error()),
	)
}

// writeUnauthorized emits the single rejection body used for every auth
// failure. Callers must not vary the message per failure mode.
func writeUnauthorized(w http.ResponseWriter) {
	WriteError(w, ErrorParams{
		Code:    http.StatusUnauthorized,
		ErrCode: "unauthorized",
		Err:     errors.New("authentication required"),
	})
}
