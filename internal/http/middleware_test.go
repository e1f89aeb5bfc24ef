package httpx

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finledger/finledger/internal/adapters/jwtauth"
	domainauth "github.com/finledger/finledger/internal/domain/auth"
)

const testSigningSecret = "handler-test-signing-secret"

func newTestTokens(t *testing.T) *jwtauth.TokenService {
	t.Helper()
	svc, err := jwtauth.New(jwtauth.Options{
		Secret: []byte(testSigningSecret),
		TTL:    time.Hour,
	})
	require.NoError(t, err)
	return svc
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func claimsEchoHandler(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		require.True(t, ok)
		WriteJSON(w, http.StatusOK, map[string]string{"sub": claims.Subject})
	})
}

func TestRequireAuth_ValidToken(t *testing.T) {
	tokens := newTestTokens(t)
	token, err := tokens.Issue("user-1", "alice@example.com")
	require.NoError(t, err)

	handler := RequireAuth(tokens, discardLogger())(claimsEchoHandler(t))

	req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"sub":"user-1"}`, rec.Body.String())
}

func TestBearerToken_SentinelErrors(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := bearerToken(req)
	assert.ErrorIs(t, err, domainauth.ErrTokenMissing)

	req.Header.Set("Authorization", "Basic abc123")
	_, err = bearerToken(req)
	assert.ErrorIs(t, err, domainauth.ErrTokenMalformed)

	req.Header.Set("Authorization", "Bearer ")
	_, err = bearerToken(req)
	assert.ErrorIs(t, err, domainauth.ErrTokenMissing)
}

func TestRequireAuth_RejectionIsUniform(t *testing.T) {
	tokens := newTestTokens(t)

	otherKey, err := jwtauth.New(jwtauth.Options{Secret: []byte("some other secret"), TTL: time.Hour})
	require.NoError(t, err)
	wrongKeyToken, err := otherKey.Issue("user-1", "alice@example.com")
	require.NoError(t, err)

	past := time.Now().Add(-2 * time.Hour)
	expiredIssuer, err := jwtauth.New(jwtauth.Options{
		Secret: []byte(testSigningSecret),
		TTL:    time.Minute,
		Now:    func() time.Time { return past },
	})
	require.NoError(t, err)
	expiredToken, err := expiredIssuer.Issue("user-1", "alice@example.com")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{name: "no header", header: ""},
		{name: "wrong scheme", header: "Basic abc123"},
		{name: "empty token", header: "Bearer "},
		{name: "garbage token", header: "Bearer not.a.jwt"},
		{name: "wrong key", header: "Bearer " + wrongKeyToken},
		{name: "expired", header: "Bearer " + expiredToken},
	}

	handler := RequireAuth(tokens, discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatal("protected handler must not run")
	}))

	// Every rejection produces the exact same status and body.
	const wantBody = `{"error":"unauthorized","message":"authentication required"}`
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, wantBody, rec.Body.String())
		})
	}
}

func TestRequireAuth_BearerSchemeIsCaseInsensitive(t *testing.T) {
	tokens := newTestTokens(t)
	token, err := tokens.Issue("user-1", "alice@example.com")
	require.NoError(t, err)

	handler := RequireAuth(tokens, discardLogger())(claimsEchoHandler(t))

	req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
	req.Header.Set("Authorization", "bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRecover_PanicBecomes500(t *testing.T) {
	handler := Recover(discardLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestLogging_PassesThrough(t *testing.T) {
	handler := Logging(discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
}
