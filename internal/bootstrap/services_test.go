package bootstrap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finledger/finledger/config"
)

func testAppConfig() *config.AppConfig {
	cfg := &config.AppConfig{
		Auth: config.AuthConfig{
			JWTSecret:  "test-signing-secret",
			JWTTTL:     time.Hour,
			BcryptCost: 4,
		},
	}
	cfg.Sanitize()
	return cfg
}

func TestNewServices(t *testing.T) {
	services, err := NewServices(&ServiceDeps{
		Config: testAppConfig(),
	})
	require.NoError(t, err)

	assert.NotNil(t, services.Auth)
	assert.NotNil(t, services.Transactions)
	assert.NotNil(t, services.Budgets)
	assert.NotNil(t, services.Reports)
	assert.NotNil(t, services.Tokens)
}

func TestNewServices_RequiresSecret(t *testing.T) {
	cfg := testAppConfig()
	cfg.Auth.JWTSecret = ""

	_, err := NewServices(&ServiceDeps{Config: cfg})
	assert.Error(t, err)
}

func TestNewServices_TokenRoundTrip(t *testing.T) {
	services, err := NewServices(&ServiceDeps{Config: testAppConfig()})
	require.NoError(t, err)

	token, err := services.Tokens.Issue("user-1", "alice@example.com")
	require.NoError(t, err)

	claims, err := services.Tokens.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "alice@example.com", claims.Email)
}
