package identity

import (
	"regexp"
	"strings"

	"github.com/printdesk/backend/internal/domain/partner"
	"github.com/printdesk/backend/internal/domain/shared"
)

var colorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// DefaultPrimaryColor is used on documents until the company picks one
const DefaultPrimaryColor = "#1f2937"

// CompanyProfile is the singleton record with the business identity used on
// documents and the public branding endpoint.
type CompanyProfile struct {
	shared.BaseEntity
	TradeName      string
	LegalName      string
	TaxID          string
	Email          string
	Phone          string
	Website        string
	Address        partner.Address
	LogoKey        string // object storage key, empty when no logo was uploaded
	PrimaryColor   string
	DocumentFooter string
}

// CompanyInput carries the editable company fields. The logo is managed separately.
type CompanyInput struct {
	TradeName      string
	LegalName      string
	TaxID          string
	Email          string
	Phone          string
	Website        string
	Address        partner.Address
	PrimaryColor   string
	DocumentFooter string
}

// NewDefaultCompanyProfile creates the profile written on first start
func NewDefaultCompanyProfile(tradeName string) *CompanyProfile {
	if strings.TrimSpace(tradeName) == "" {
		tradeName = "PrintDesk"
	}
	return &CompanyProfile{
		BaseEntity:   shared.NewBaseEntity(),
		TradeName:    strings.TrimSpace(tradeName),
		PrimaryColor: DefaultPrimaryColor,
	}
}

// Update replaces the editable fields of the profile
func (c *CompanyProfile) Update(input CompanyInput) error {
	tradeName := strings.TrimSpace(input.TradeName)
	if tradeName == "" {
		return shared.NewDomainError("INVALID_NAME", "Trade name cannot be empty")
	}
	if len(tradeName) > 200 || len(strings.TrimSpace(input.LegalName)) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Company names cannot exceed 200 characters")
	}
	email, err := shared.NormalizeEmail(input.Email)
	if err != nil {
		return err
	}
	if err := shared.MaxLength("INVALID_TAX_ID", "Tax ID", strings.TrimSpace(input.TaxID), 18); err != nil {
		return err
	}
	color := strings.TrimSpace(input.PrimaryColor)
	if color == "" {
		color = DefaultPrimaryColor
	}
	if !colorRegex.MatchString(color) {
		return shared.NewDomainError("INVALID_COLOR", "Primary color must be a hex color like #1f2937")
	}
	address := input.Address.Normalized()
	if err := address.Validate(); err != nil {
		return err
	}

	c.TradeName = tradeName
	c.LegalName = strings.TrimSpace(input.LegalName)
	c.TaxID = strings.TrimSpace(input.TaxID)
	c.Email = email
	c.Phone = strings.TrimSpace(input.Phone)
	c.Website = strings.TrimSpace(input.Website)
	c.Address = address
	c.PrimaryColor = strings.ToLower(color)
	c.DocumentFooter = strings.TrimSpace(input.DocumentFooter)
	c.Touch()
	return nil
}

// SetLogo records the storage key of the uploaded logo
func (c *CompanyProfile) SetLogo(key string) {
	c.LogoKey = key
	c.Touch()
}

// HasLogo reports whether a logo has been uploaded
func (c *CompanyProfile) HasLogo() bool {
	return c.LogoKey != ""
}

// DisplayName returns the legal name when set, otherwise the trade name
func (c *CompanyProfile) DisplayName() string {
	if c.LegalName != "" {
		return c.LegalName
	}
	return c.TradeName
}
