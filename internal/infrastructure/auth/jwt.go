package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/printdesk/backend/internal/infrastructure/config"
)

// TokenType tells access and refresh tokens apart
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
	ErrInvalidTokenType   = errors.New("invalid token type")
	ErrInvalidClaims      = errors.New("invalid token claims")
	ErrTokenNotYetValid   = errors.New("token is not yet valid")
	ErrMissingUserID      = errors.New("missing user_id in claims")
	ErrMaxRefreshExceeded = errors.New("maximum refresh count exceeded")
	ErrTokenBlacklisted   = errors.New("token has been revoked")
)

// Claims are the JWT claims of a PrintDesk session
type Claims struct {
	jwt.RegisteredClaims
	UserID       string    `json:"user_id"`
	Username     string    `json:"username"`
	TokenType    TokenType `json:"token_type"`
	RefreshCount int       `json:"refresh_count,omitempty"`
}

// UserUUID parses the user id claim
func (c *Claims) UserUUID() (uuid.UUID, error) {
	return uuid.Parse(c.UserID)
}

// IssuedAtTime is the zero time when the token has no iat claim
func (c *Claims) IssuedAtTime() time.Time {
	if c.IssuedAt == nil {
		return time.Time{}
	}
	return c.IssuedAt.Time
}

// RemainingTTL is how long the token stays valid, never negative
func (c *Claims) RemainingTTL() time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return max(time.Until(c.ExpiresAt.Time), 0)
}

// TokenPair is returned by login and refresh
type TokenPair struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// signingKey is the HS256 secret and lifetime of one token type
type signingKey struct {
	typ    TokenType
	secret []byte
	ttl    time.Duration
}

// JWTService issues and validates HS256 token pairs
type JWTService struct {
	access          signingKey
	refresh         signingKey
	issuer          string
	maxRefreshCount int
}

// NewJWTService builds the service from config. Refresh tokens fall back to
// the access secret when no refresh secret is set.
func NewJWTService(cfg config.JWTConfig) *JWTService {
	refreshSecret := cfg.RefreshSecret
	if refreshSecret == "" {
		refreshSecret = cfg.Secret
	}
	return &JWTService{
		access:          signingKey{typ: TokenTypeAccess, secret: []byte(cfg.Secret), ttl: cfg.AccessTokenExpiration},
		refresh:         signingKey{typ: TokenTypeRefresh, secret: []byte(refreshSecret), ttl: cfg.RefreshTokenExpiration},
		issuer:          cfg.Issuer,
		maxRefreshCount: cfg.MaxRefreshCount,
	}
}

// AccessTTL is the configured access token lifetime
func (s *JWTService) AccessTTL() time.Duration { return s.access.ttl }

// RefreshTTL is the configured refresh token lifetime
func (s *JWTService) RefreshTTL() time.Duration { return s.refresh.ttl }

// IssueTokenPair signs a fresh access and refresh token for a user
func (s *JWTService) IssueTokenPair(userID uuid.UUID, username string) (*TokenPair, error) {
	return s.issue(userID, username, 0)
}

func (s *JWTService) issue(userID uuid.UUID, username string, refreshCount int) (*TokenPair, error) {
	now := time.Now()

	access, err := s.sign(s.access, now, &Claims{UserID: userID.String(), Username: username})
	if err != nil {
		return nil, err
	}
	refresh, err := s.sign(s.refresh, now, &Claims{UserID: userID.String(), Username: username, RefreshCount: refreshCount})
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:           access,
		RefreshToken:          refresh,
		AccessTokenExpiresAt:  now.Add(s.access.ttl),
		RefreshTokenExpiresAt: now.Add(s.refresh.ttl),
		TokenType:             "Bearer",
	}, nil
}

// sign fills the registered claims and token type, then signs with key
func (s *JWTService) sign(key signingKey, now time.Time, claims *Claims) (string, error) {
	claims.TokenType = key.typ
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    s.issuer,
		Subject:   claims.UserID,
		Audience:  jwt.ClaimStrings{s.issuer},
		ExpiresAt: jwt.NewNumericDate(now.Add(key.ttl)),
		NotBefore: jwt.NewNumericDate(now),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key.secret)
}

// ValidateAccessToken returns the claims of a valid access token
func (s *JWTService) ValidateAccessToken(token string) (*Claims, error) {
	return s.parse(token, s.access)
}

// ValidateRefreshToken returns the claims of a valid refresh token
func (s *JWTService) ValidateRefreshToken(token string) (*Claims, error) {
	return s.parse(token, s.refresh)
}

func (s *JWTService) parse(raw string, key signingKey) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return key.secret, nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return nil, ErrTokenNotYetValid
	case err != nil:
		return nil, ErrInvalidToken
	case !token.Valid:
		return nil, ErrInvalidClaims
	case claims.TokenType != key.typ:
		return nil, ErrInvalidTokenType
	case claims.UserID == "":
		return nil, ErrMissingUserID
	}
	return claims, nil
}

// RefreshTokenPair trades a refresh token for a new pair. Each refresh bumps
// the chain's counter; past maxRefreshCount the user has to log in again.
func (s *JWTService) RefreshTokenPair(refreshToken string) (*TokenPair, error) {
	claims, err := s.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.RefreshCount >= s.maxRefreshCount {
		return nil, ErrMaxRefreshExceeded
	}
	userID, err := claims.UserUUID()
	if err != nil {
		return nil, ErrInvalidClaims
	}
	return s.issue(userID, claims.Username, claims.RefreshCount+1)
}
