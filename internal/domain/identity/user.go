package identity

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/printdesk/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_\-.]+$`)

// Authentication errors
var (
	ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	ErrInactiveUser       = shared.NewDomainError("FORBIDDEN", "User account is inactive")
	ErrWrongPassword      = shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
)

// User is an operator of the back office
type User struct {
	shared.BaseEntity
	Username          string
	Email             string
	DisplayName       string
	Phone             string
	PasswordHash      string
	IsActive          bool
	LastLoginAt       *time.Time
	PasswordChangedAt *time.Time
}

// NewUser creates an active user with a hashed password
func NewUser(username, password string) (*User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &User{
		BaseEntity:        shared.NewBaseEntity(),
		Username:          strings.ToLower(strings.TrimSpace(username)),
		PasswordHash:      passwordHash,
		IsActive:          true,
		PasswordChangedAt: &now,
	}, nil
}

// ProfileInput carries the self-editable profile fields
type ProfileInput struct {
	Email       string
	DisplayName string
	Phone       string
}

// UpdateProfile replaces the profile fields; blank values clear them
func (u *User) UpdateProfile(input ProfileInput) error {
	email, err := shared.NormalizeEmail(input.Email)
	if err != nil {
		return err
	}
	displayName := strings.TrimSpace(input.DisplayName)
	phone := strings.TrimSpace(input.Phone)
	if err := shared.MaxLength("INVALID_DISPLAY_NAME", "Display name", displayName, 200); err != nil {
		return err
	}
	if err := shared.MaxLength("INVALID_PHONE", "Phone", phone, 20); err != nil {
		return err
	}

	u.Email, u.DisplayName, u.Phone = email, displayName, phone
	u.Touch()
	return nil
}

// ChangePassword changes the user's password after checking the current one
func (u *User) ChangePassword(oldPassword, newPassword string) error {
	if !u.VerifyPassword(oldPassword) {
		return ErrWrongPassword
	}
	return u.SetPassword(newPassword)
}

// SetPassword replaces the password without asking for the current one
func (u *User) SetPassword(newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}

	now := time.Now()
	u.PasswordHash = passwordHash
	u.PasswordChangedAt = &now
	u.UpdatedAt = now
	return nil
}

func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Authenticate checks the password and the active flag
func (u *User) Authenticate(password string) error {
	if !u.VerifyPassword(password) {
		return ErrInvalidCredentials
	}
	if !u.IsActive {
		return ErrInactiveUser
	}
	return nil
}

// RecordLogin stamps the last successful login
func (u *User) RecordLogin() {
	now := time.Now()
	u.LastLoginAt = &now
	u.UpdatedAt = now
}

// Deactivate blocks the user from logging in
func (u *User) Deactivate() {
	u.IsActive = false
	u.Touch()
}

// GetDisplayNameOrUsername is the name shown in the UI
func (u *User) GetDisplayNameOrUsername() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}

func invalidUsername(msg string) error { return shared.NewDomainError("INVALID_USERNAME", msg) }
func invalidPassword(msg string) error { return shared.NewDomainError("INVALID_PASSWORD", msg) }

// Usernames are 3 to 100 characters of letters, digits, '_', '-' and '.'.
func validateUsername(username string) error {
	username = strings.TrimSpace(username)
	switch {
	case len(username) < 3:
		return invalidUsername("Username must be at least 3 characters")
	case len(username) > 100:
		return invalidUsername("Username cannot exceed 100 characters")
	case !usernamePattern.MatchString(username):
		return invalidUsername("Username may only use letters, digits, '_', '-' and '.'")
	}
	return nil
}

// Passwords are 8 to 72 bytes, the bcrypt input limit, with at least one
// letter and one digit.
func validatePassword(password string) error {
	switch {
	case len(password) < 8:
		return invalidPassword("Password must be at least 8 characters")
	case len(password) > 72:
		return invalidPassword("Password cannot exceed 72 characters")
	case !strings.ContainsFunc(password, unicode.IsLetter) || !strings.ContainsFunc(password, unicode.IsDigit):
		return invalidPassword("Password needs at least one letter and one digit")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	return string(hash), nil
}
