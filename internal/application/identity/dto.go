package identity

import (
	"time"

	"github.com/google/uuid"
	partnerapp "github.com/printdesk/backend/internal/application/partner"
	"github.com/printdesk/backend/internal/domain/identity"
)

// =============================================================================
// Auth DTOs
// =============================================================================

// LoginInput contains the input for user login
type LoginInput struct {
	Username string
	Password string
	IP       string // Client IP for login tracking
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
	User                  UserInfo  `json:"user"`
}

// UserInfo contains the public fields of a user
type UserInfo struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	DisplayName string     `json:"display_name"`
	Email       string     `json:"email,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// ToUserInfo converts a domain user to UserInfo
func ToUserInfo(u *identity.User) UserInfo {
	return UserInfo{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.GetDisplayNameOrUsername(),
		Email:       u.Email,
		Phone:       u.Phone,
		LastLoginAt: u.LastLoginAt,
	}
}

// RefreshTokenInput contains the input for token refresh
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenResult contains the result of a token refresh
type RefreshTokenResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// LogoutInput contains the input for user logout
type LogoutInput struct {
	UserID       uuid.UUID
	TokenJTI     string        // JWT ID of the access token
	TokenTTL     time.Duration // remaining lifetime of the access token
	RefreshToken string        // optional, revoked too when valid
}

// ChangePasswordInput contains the input for password change
type ChangePasswordInput struct {
	UserID      uuid.UUID
	OldPassword string
	NewPassword string
	TokenJTI    string
	TokenTTL    time.Duration
}

// UpdateProfileRequest represents a request to update the current user's profile
type UpdateProfileRequest struct {
	Email       string `json:"email" binding:"omitempty,email,max=254"`
	DisplayName string `json:"display_name" binding:"max=200"`
	Phone       string `json:"phone" binding:"max=20"`
}

// =============================================================================
// Company DTOs
// =============================================================================

// UpdateCompanyRequest represents a request to update the company profile
type UpdateCompanyRequest struct {
	TradeName      string                `json:"trade_name" binding:"required,min=1,max=200"`
	LegalName      string                `json:"legal_name" binding:"max=200"`
	TaxID          string                `json:"tax_id" binding:"max=18"`
	Email          string                `json:"email" binding:"omitempty,email,max=254"`
	Phone          string                `json:"phone" binding:"max=20"`
	Website        string                `json:"website" binding:"max=255"`
	Address        partnerapp.AddressDTO `json:"address"`
	PrimaryColor   string                `json:"primary_color" binding:"omitempty,hexcolor"`
	DocumentFooter string                `json:"document_footer" binding:"max=500"`
}

// UploadLogoInput carries an uploaded logo file
type UploadLogoInput struct {
	Filename    string
	ContentType string
	Data        []byte
}

// CompanyResponse represents the company profile in API responses
type CompanyResponse struct {
	ID             uuid.UUID             `json:"id"`
	TradeName      string                `json:"trade_name"`
	LegalName      string                `json:"legal_name"`
	TaxID          string                `json:"tax_id"`
	Email          string                `json:"email"`
	Phone          string                `json:"phone"`
	Website        string                `json:"website"`
	Address        partnerapp.AddressDTO `json:"address"`
	PrimaryColor   string                `json:"primary_color"`
	DocumentFooter string                `json:"document_footer"`
	HasLogo        bool                  `json:"has_logo"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

// ToCompanyResponse converts the domain profile to a response DTO
func ToCompanyResponse(c *identity.CompanyProfile) CompanyResponse {
	return CompanyResponse{
		ID:             c.ID,
		TradeName:      c.TradeName,
		LegalName:      c.LegalName,
		TaxID:          c.TaxID,
		Email:          c.Email,
		Phone:          c.Phone,
		Website:        c.Website,
		Address:        partnerapp.ToAddressDTO(c.Address),
		PrimaryColor:   c.PrimaryColor,
		DocumentFooter: c.DocumentFooter,
		HasLogo:        c.HasLogo(),
		UpdatedAt:      c.UpdatedAt,
	}
}

// BrandingResponse is the public subset of the company profile
type BrandingResponse struct {
	TradeName    string `json:"trade_name"`
	PrimaryColor string `json:"primary_color"`
	LogoURL      string `json:"logo_url,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
	Website      string `json:"website,omitempty"`
}
