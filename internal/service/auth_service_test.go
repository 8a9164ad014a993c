package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invex/internal/config"
	"invex/internal/domain"
	"invex/internal/service"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "unit-test-secret",
		AccessTokenExpiry: time.Hour,
		Issuer:            "invex",
	}
}

func TestAuthService_IssueAndValidate(t *testing.T) {
	svc := service.NewAuthService(testJWTConfig(), config.AuthConfig{APIKey: "k-123"})

	token, err := svc.IssueToken(service.TokenInput{APIKey: "k-123"})
	require.NoError(t, err)
	require.NotEmpty(t, token.AccessToken)
	assert.WithinDuration(t, time.Now().Add(time.Hour), token.ExpiresAt, time.Minute)

	claims, err := svc.ValidateToken(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "invex", claims.Issuer)
	assert.Equal(t, "api-client", claims.Subject)
}

func TestAuthService_WrongAPIKey(t *testing.T) {
	svc := service.NewAuthService(testJWTConfig(), config.AuthConfig{APIKey: "k-123"})

	_, err := svc.IssueToken(service.TokenInput{APIKey: "k-999"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_UnsetAPIKeyDisablesIssuance(t *testing.T) {
	svc := service.NewAuthService(testJWTConfig(), config.AuthConfig{})

	_, err := svc.IssueToken(service.TokenInput{APIKey: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_ValidateRejectsGarbage(t *testing.T) {
	svc := service.NewAuthService(testJWTConfig(), config.AuthConfig{APIKey: "k-123"})

	_, err := svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_ValidateRejectsWrongSecret(t *testing.T) {
	issuer := service.NewAuthService(testJWTConfig(), config.AuthConfig{APIKey: "k-123"})
	token, err := issuer.IssueToken(service.TokenInput{APIKey: "k-123"})
	require.NoError(t, err)

	other := testJWTConfig()
	other.Secret = "different-secret"
	validator := service.NewAuthService(other, config.AuthConfig{APIKey: "k-123"})

	_, err = validator.ValidateToken(token.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_ValidateRejectsExpired(t *testing.T) {
	cfg := testJWTConfig()
	cfg.AccessTokenExpiry = -time.Hour
	svc := service.NewAuthService(cfg, config.AuthConfig{APIKey: "k-123"})

	token, err := svc.IssueToken(service.TokenInput{APIKey: "k-123"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(token.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
