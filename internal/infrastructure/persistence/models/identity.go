package models

import (
	"time"

	"github.com/printdesk/backend/internal/domain/identity"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	BaseModel
	Username          string `gorm:"type:varchar(100);not null;uniqueIndex:idx_users_username"`
	Email             string `gorm:"type:varchar(200)"`
	DisplayName       string `gorm:"type:varchar(200)"`
	Phone             string `gorm:"type:varchar(50)"`
	PasswordHash      string `gorm:"type:varchar(255);not null"`
	IsActive          bool   `gorm:"not null"`
	LastLoginAt       *time.Time
	PasswordChangedAt *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity:        m.Entity(),
		Username:          m.Username,
		Email:             m.Email,
		DisplayName:       m.DisplayName,
		Phone:             m.Phone,
		PasswordHash:      m.PasswordHash,
		IsActive:          m.IsActive,
		LastLoginAt:       m.LastLoginAt,
		PasswordChangedAt: m.PasswordChangedAt,
	}
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.setEntity(u.BaseEntity)
	m.Username = u.Username
	m.Email = u.Email
	m.DisplayName = u.DisplayName
	m.Phone = u.Phone
	m.PasswordHash = u.PasswordHash
	m.IsActive = u.IsActive
	m.LastLoginAt = u.LastLoginAt
	m.PasswordChangedAt = u.PasswordChangedAt
}

// UserModelFromDomain creates a new persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}

// CompanyProfileModel is the persistence model for the singleton company profile.
type CompanyProfileModel struct {
	BaseModel
	TradeName      string         `gorm:"type:varchar(200);not null"`
	LegalName      string         `gorm:"type:varchar(200)"`
	TaxID          string         `gorm:"type:varchar(20)"`
	Email          string         `gorm:"type:varchar(200)"`
	Phone          string         `gorm:"type:varchar(50)"`
	Website        string         `gorm:"type:varchar(200)"`
	Address        AddressColumns `gorm:"embedded"`
	LogoKey        string         `gorm:"type:varchar(500)"`
	PrimaryColor   string         `gorm:"type:varchar(7)"`
	DocumentFooter string         `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CompanyProfileModel) TableName() string {
	return "company_profile"
}

// ToDomain converts the persistence model to a domain CompanyProfile.
func (m *CompanyProfileModel) ToDomain() *identity.CompanyProfile {
	return &identity.CompanyProfile{
		BaseEntity:     m.Entity(),
		TradeName:      m.TradeName,
		LegalName:      m.LegalName,
		TaxID:          m.TaxID,
		Email:          m.Email,
		Phone:          m.Phone,
		Website:        m.Website,
		Address:        m.Address.ToDomain(),
		LogoKey:        m.LogoKey,
		PrimaryColor:   m.PrimaryColor,
		DocumentFooter: m.DocumentFooter,
	}
}

// FromDomain populates the persistence model from a domain CompanyProfile.
func (m *CompanyProfileModel) FromDomain(p *identity.CompanyProfile) {
	m.setEntity(p.BaseEntity)
	m.TradeName = p.TradeName
	m.LegalName = p.LegalName
	m.TaxID = p.TaxID
	m.Email = p.Email
	m.Phone = p.Phone
	m.Website = p.Website
	m.Address = AddressColumnsFromDomain(p.Address)
	m.LogoKey = p.LogoKey
	m.PrimaryColor = p.PrimaryColor
	m.DocumentFooter = p.DocumentFooter
}

// CompanyProfileModelFromDomain creates a new persistence model from a domain CompanyProfile.
func CompanyProfileModelFromDomain(p *identity.CompanyProfile) *CompanyProfileModel {
	m := &CompanyProfileModel{}
	m.FromDomain(p)
	return m
}
