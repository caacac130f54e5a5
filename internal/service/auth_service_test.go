package service_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carbex/internal/config"
	"carbex/internal/domain"
	"carbex/internal/service"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		AccessTokenExpiry: time.Hour,
		Issuer:            "carbex-test",
	}
}

func TestAuthService_IssueAndValidate(t *testing.T) {
	svc := service.NewAuthService(testJWTConfig())

	input := service.IssueTokenInput{
		OrganizationID: uuid.New(),
		UserID:         uuid.New(),
		Email:          "jane@example.fr",
		Role:           domain.RoleAdmin,
	}
	token, expiry, err := svc.IssueToken(input)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiry, time.Minute)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, input.OrganizationID, claims.OrganizationID)
	assert.Equal(t, input.UserID, claims.UserID)
	assert.Equal(t, input.Email, claims.Email)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestAuthService_IssueToken_RejectsUnknownRole(t *testing.T) {
	svc := service.NewAuthService(testJWTConfig())

	_, _, err := svc.IssueToken(service.IssueTokenInput{
		OrganizationID: uuid.New(),
		UserID:         uuid.New(),
		Role:           domain.UserRole("superuser"),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAuthService_ValidateToken_WrongSecret(t *testing.T) {
	issuer := service.NewAuthService(config.JWTConfig{Secret: "other", AccessTokenExpiry: time.Hour, Issuer: "carbex-test"})
	token, _, err := issuer.IssueToken(service.IssueTokenInput{
		OrganizationID: uuid.New(),
		UserID:         uuid.New(),
		Role:           domain.RoleMember,
	})
	require.NoError(t, err)

	_, err = service.NewAuthService(testJWTConfig()).ValidateToken(token)
	assert.Error(t, err)
}

func TestAuthService_ValidateToken_Expired(t *testing.T) {
	svc := service.NewAuthService(config.JWTConfig{Secret: "test-secret", AccessTokenExpiry: -time.Minute, Issuer: "carbex-test"})
	token, _, err := svc.IssueToken(service.IssueTokenInput{
		OrganizationID: uuid.New(),
		UserID:         uuid.New(),
		Role:           domain.RoleViewer,
	})
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestAuthService_ValidateToken_WrongAudience(t *testing.T) {
	cfg := testJWTConfig()
	claims := &service.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			Audience:  jwt.ClaimStrings{"refresh"},
		},
		OrganizationID: uuid.New(),
		UserID:         uuid.New(),
		Role:           domain.RoleOwner,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
	require.NoError(t, err)

	_, err = service.NewAuthService(cfg).ValidateToken(token)
	assert.Error(t, err)
}

func TestAuthService_ValidateToken_RejectsNoneAlgorithm(t *testing.T) {
	cfg := testJWTConfig()
	claims := &service.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			Audience:  jwt.ClaimStrings{"access"},
		},
		OrganizationID: uuid.New(),
		UserID:         uuid.New(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = service.NewAuthService(cfg).ValidateToken(token)
	assert.Error(t, err)
}
