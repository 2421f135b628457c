package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/printdesk/backend/internal/domain/identity"
	"github.com/printdesk/backend/internal/domain/shared"
	"github.com/printdesk/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// Token errors surfaced to the HTTP layer as 401
var (
	ErrTokenExpired = shared.NewDomainError("TOKEN_EXPIRED", "Token has expired")
	ErrTokenInvalid = shared.NewDomainError("INVALID_TOKEN", "Invalid token")
	ErrTokenRevoked = shared.NewDomainError("TOKEN_REVOKED", "Token has been revoked")
	ErrMaxRefresh   = shared.NewDomainError("TOKEN_EXPIRED", "Maximum token refresh count exceeded. Please log in again")
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if blacklist == nil {
		blacklist = auth.NewInMemoryTokenBlacklist()
	}
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
	}
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Login for unknown user", zap.String("username", input.Username), zap.String("ip", input.IP))
			return nil, identity.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := user.Authenticate(input.Password); err != nil {
		s.logger.Warn("Login rejected",
			zap.String("username", input.Username),
			zap.String("ip", input.IP),
			zap.String("reason", shared.CodeOf(err)))
		return nil, err
	}

	tokenPair, err := s.jwtService.IssueTokenPair(user.ID, user.Username)
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, err
	}

	user.RecordLogin()
	if err := s.userRepo.Save(ctx, user); err != nil {
		// the login itself succeeded
		s.logger.Error("Failed to record login", zap.String("user_id", user.ID.String()), zap.Error(err))
	}

	s.logger.Info("User logged in",
		zap.String("username", user.Username),
		zap.String("user_id", user.ID.String()))

	return &LoginResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
		User:                  ToUserInfo(user),
	}, nil
}

// RefreshToken exchanges a refresh token for a new token pair.
// The old refresh token is revoked so it cannot be replayed.
func (s *AuthService) RefreshToken(ctx context.Context, input RefreshTokenInput) (*RefreshTokenResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		s.logger.Warn("Refresh token validation failed", zap.Error(err))
		return nil, mapTokenError(err)
	}

	if err := s.checkRevocation(ctx, claims); err != nil {
		return nil, err
	}

	userID, err := claims.UserUUID()
	if err != nil {
		return nil, ErrTokenInvalid
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrTokenInvalid
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, identity.ErrInactiveUser
	}

	tokenPair, err := s.jwtService.RefreshTokenPair(input.RefreshToken)
	if err != nil {
		s.logger.Warn("Token refresh failed", zap.Error(err))
		return nil, mapTokenError(err)
	}

	if err := s.blacklist.Revoke(ctx, claims.ID, claims.RemainingTTL()); err != nil {
		s.logger.Error("Failed to revoke rotated refresh token", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Token refreshed", zap.String("user_id", userID.String()))

	return &RefreshTokenResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
	}, nil
}

// Logout revokes the access token and, when given, the refresh token
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if input.TokenJTI != "" {
		if err := s.blacklist.Revoke(ctx, input.TokenJTI, positiveTTL(input.TokenTTL, s.jwtService.AccessTTL())); err != nil {
			s.logger.Error("Failed to revoke access token", zap.Error(err))
			return err
		}
	}

	if input.RefreshToken != "" {
		claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
		switch {
		case err != nil:
			s.logger.Debug("Ignoring invalid refresh token on logout", zap.Error(err))
		case claims.UserID != input.UserID.String():
			s.logger.Warn("Refresh token of another user sent on logout", zap.String("user_id", input.UserID.String()))
		default:
			if err := s.blacklist.Revoke(ctx, claims.ID, claims.RemainingTTL()); err != nil {
				s.logger.Error("Failed to revoke refresh token", zap.Error(err))
				return err
			}
		}
	}

	s.logger.Info("User logged out", zap.String("user_id", input.UserID.String()))
	return nil
}

// GetCurrentUser retrieves the current user's information
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	info := ToUserInfo(user)
	return &info, nil
}

// UpdateProfile updates the current user's profile fields
func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := user.UpdateProfile(identity.ProfileInput{
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Phone:       req.Phone,
	}); err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	info := ToUserInfo(user)
	return &info, nil
}

// ChangePassword changes the user's password and invalidates every earlier token of the user
func (s *AuthService) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return err
	}

	if err := user.ChangePassword(input.OldPassword, input.NewPassword); err != nil {
		return err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to save user after password change", zap.Error(err))
		return err
	}

	if err := s.blacklist.RevokeUser(ctx, user.ID.String(), s.jwtService.RefreshTTL()); err != nil {
		s.logger.Error("Failed to invalidate user tokens", zap.Error(err))
		return err
	}
	// Invalidation has second granularity, so the token used for this call is revoked explicitly
	if input.TokenJTI != "" {
		if err := s.blacklist.Revoke(ctx, input.TokenJTI, positiveTTL(input.TokenTTL, s.jwtService.AccessTTL())); err != nil {
			s.logger.Error("Failed to revoke current token", zap.Error(err))
			return err
		}
	}

	s.logger.Info("User password changed", zap.String("user_id", input.UserID.String()))
	return nil
}

// ValidateAccessToken validates an access token and checks it against the blacklist
func (s *AuthService) ValidateAccessToken(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.jwtService.ValidateAccessToken(token)
	if err != nil {
		return nil, mapTokenError(err)
	}
	if err := s.checkRevocation(ctx, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// EnsureBootstrapAdmin creates the first user when the user table is empty
func (s *AuthService) EnsureBootstrapAdmin(ctx context.Context, username, password string) error {
	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if password == "" {
		s.logger.Warn("No users exist and no bootstrap password is configured; login is impossible until a user is created")
		return nil
	}

	user, err := identity.NewUser(username, password)
	if err != nil {
		return err
	}
	user.DisplayName = "Administrator"

	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}

	s.logger.Info("Bootstrap user created", zap.String("username", user.Username))
	return nil
}

func (s *AuthService) checkRevocation(ctx context.Context, claims *auth.Claims) error {
	blacklisted, err := s.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return err
	}
	if blacklisted {
		return ErrTokenRevoked
	}

	invalidated, err := s.blacklist.RevokedForUser(ctx, claims.UserID, claims.IssuedAtTime())
	if err != nil {
		return err
	}
	if invalidated {
		return ErrTokenRevoked
	}
	return nil
}

func mapTokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return ErrTokenExpired
	case errors.Is(err, auth.ErrMaxRefreshExceeded):
		return ErrMaxRefresh
	case errors.Is(err, auth.ErrTokenBlacklisted):
		return ErrTokenRevoked
	default:
		return ErrTokenInvalid
	}
}

func positiveTTL(ttl, fallback time.Duration) time.Duration {
	if ttl > 0 {
		return ttl
	}
	return fallback
}
