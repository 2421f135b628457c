package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/printdesk/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	accessSecret  = "balcao-access-secret-32-characters"
	refreshSecret = "balcao-refresh-secret-32-character"
)

func jwtConfig(mutate ...func(*config.JWTConfig)) config.JWTConfig {
	cfg := config.JWTConfig{
		Secret:                 accessSecret,
		RefreshSecret:          refreshSecret,
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "printdesk-test",
		MaxRefreshCount:        10,
	}
	for _, m := range mutate {
		m(&cfg)
	}
	return cfg
}

func TestNewJWTService_RefreshSecretFallsBack(t *testing.T) {
	svc := NewJWTService(jwtConfig(func(c *config.JWTConfig) { c.RefreshSecret = "" }))

	assert.Equal(t, []byte(accessSecret), svc.refresh.secret)
	assert.Equal(t, 15*time.Minute, svc.AccessTTL())
	assert.Equal(t, 7*24*time.Hour, svc.RefreshTTL())
}

func TestIssueTokenPair(t *testing.T) {
	svc := NewJWTService(jwtConfig())
	userID := uuid.New()

	pair, err := svc.IssueTokenPair(userID, "balcao")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.True(t, pair.RefreshTokenExpiresAt.After(pair.AccessTokenExpiresAt))

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "balcao", claims.Username)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.False(t, claims.IssuedAtTime().IsZero())
	assert.Greater(t, claims.RemainingTTL(), 14*time.Minute)

	parsed, err := claims.UserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)

	refresh, err := svc.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, claims.ID, refresh.ID)
	assert.Zero(t, refresh.RefreshCount)
}

func TestValidateAccessToken_Rejections(t *testing.T) {
	svc := NewJWTService(jwtConfig())
	valid, err := svc.IssueTokenPair(uuid.New(), "balcao")
	require.NoError(t, err)

	expired, err := NewJWTService(jwtConfig(func(c *config.JWTConfig) {
		c.AccessTokenExpiration = -time.Hour
	})).IssueTokenPair(uuid.New(), "balcao")
	require.NoError(t, err)

	foreign, err := NewJWTService(jwtConfig(func(c *config.JWTConfig) {
		c.Secret = "another-shop-secret-with-32-chars!"
	})).IssueTokenPair(uuid.New(), "balcao")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"garbage", "not-a-jwt", ErrInvalidToken},
		{"expired", expired.AccessToken, ErrExpiredToken},
		{"signed with another secret", foreign.AccessToken, ErrInvalidToken},
		{"refresh token used as access", valid.RefreshToken, ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateAccessToken(tt.token)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestValidate_WrongTokenTypeWithSharedSecret(t *testing.T) {
	svc := NewJWTService(jwtConfig(func(c *config.JWTConfig) { c.RefreshSecret = c.Secret }))

	pair, err := svc.IssueTokenPair(uuid.New(), "balcao")
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidTokenType)

	_, err = svc.ValidateRefreshToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidTokenType)

	_, err = svc.RefreshTokenPair(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidTokenType)
}

func TestRefreshTokenPair_CountsUpToLimit(t *testing.T) {
	svc := NewJWTService(jwtConfig(func(c *config.JWTConfig) { c.MaxRefreshCount = 2 }))

	pair, err := svc.IssueTokenPair(uuid.New(), "balcao")
	require.NoError(t, err)

	for want := 1; want <= 2; want++ {
		next, err := svc.RefreshTokenPair(pair.RefreshToken)
		require.NoError(t, err)
		assert.NotEqual(t, pair.AccessToken, next.AccessToken)

		claims, err := svc.ValidateRefreshToken(next.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, want, claims.RefreshCount)
		assert.Equal(t, "balcao", claims.Username)
		pair = next
	}

	_, err = svc.RefreshTokenPair(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrMaxRefreshExceeded)
}

func TestClaims_RemainingTTL(t *testing.T) {
	assert.Zero(t, (&Claims{}).RemainingTTL())
	assert.True(t, (&Claims{}).IssuedAtTime().IsZero())
}
