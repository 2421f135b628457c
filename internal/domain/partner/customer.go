package partner

import (
	"regexp"
	"strings"

	"github.com/printdesk/backend/internal/domain/shared"
)

var stateRegex = regexp.MustCompile(`^[A-Z]{2}$`)

// Address is the postal address block shared by customers and the company profile.
type Address struct {
	PostalCode string
	Street     string
	Number     string
	District   string
	City       string
	State      string // two-letter state code
}

// Validate checks the address field lengths and the state code.
func (a Address) Validate() error {
	if len(a.PostalCode) > 10 {
		return shared.NewDomainError("INVALID_POSTAL_CODE", "Postal code cannot exceed 10 characters")
	}
	if len(a.Street) > 255 {
		return shared.NewDomainError("INVALID_STREET", "Street cannot exceed 255 characters")
	}
	if len(a.Number) > 10 {
		return shared.NewDomainError("INVALID_NUMBER", "Number cannot exceed 10 characters")
	}
	if len(a.District) > 100 || len(a.City) > 100 {
		return shared.NewDomainError("INVALID_ADDRESS", "District and city cannot exceed 100 characters")
	}
	if a.State != "" && !stateRegex.MatchString(a.State) {
		return shared.NewDomainError("INVALID_STATE_CODE", "State must be a two-letter code")
	}
	return nil
}

// Normalized trims every field and upper-cases the state.
func (a Address) Normalized() Address {
	return Address{
		PostalCode: strings.TrimSpace(a.PostalCode),
		Street:     strings.TrimSpace(a.Street),
		Number:     strings.TrimSpace(a.Number),
		District:   strings.TrimSpace(a.District),
		City:       strings.TrimSpace(a.City),
		State:      strings.ToUpper(strings.TrimSpace(a.State)),
	}
}

// Customer represents a customer (person or company) of the print shop.
// TaxID holds the CPF/CNPJ and is unique among customers when present.
type Customer struct {
	shared.BaseEntity
	Name    string
	Email   string
	Phone   string
	TaxID   string
	Notes   string
	Address Address
}

// CustomerInput carries the writable customer fields.
type CustomerInput struct {
	Name    string
	Email   string
	Phone   string
	TaxID   string
	Notes   string
	Address Address
}

// NewCustomer creates a new customer
func NewCustomer(input CustomerInput) (*Customer, error) {
	c := &Customer{BaseEntity: shared.NewBaseEntity()}
	if err := c.apply(input); err != nil {
		return nil, err
	}
	return c, nil
}

// Update replaces the customer's writable fields.
func (c *Customer) Update(input CustomerInput) error {
	if err := c.apply(input); err != nil {
		return err
	}
	c.Touch()
	return nil
}

// HasTaxID reports whether a tax id is set.
func (c *Customer) HasTaxID() bool {
	return c.TaxID != ""
}

func (c *Customer) apply(input CustomerInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot exceed 200 characters")
	}

	email, err := shared.NormalizeEmail(input.Email)
	if err != nil {
		return err
	}

	phone := strings.TrimSpace(input.Phone)
	if err := shared.MaxLength("INVALID_PHONE", "Phone", phone, 20); err != nil {
		return err
	}

	taxID := NormalizeTaxID(input.TaxID)
	if err := shared.MaxLength("INVALID_TAX_ID", "Tax id", taxID, 18); err != nil {
		return err
	}

	addr := input.Address.Normalized()
	if err := addr.Validate(); err != nil {
		return err
	}

	c.Name = name
	c.Email = email
	c.Phone = phone
	c.TaxID = taxID
	c.Notes = strings.TrimSpace(input.Notes)
	c.Address = addr
	return nil
}

// NormalizeTaxID trims surrounding whitespace. Punctuation is kept as typed
// so "123.456.789-00" round-trips unchanged.
func NormalizeTaxID(taxID string) string {
	return strings.TrimSpace(taxID)
}

// ErrDuplicateTaxID is returned when another customer already uses the tax id.
var ErrDuplicateTaxID = shared.NewDomainError("DUPLICATE_TAX_ID", "A customer with this tax id already exists")

// ErrCustomerInUse is returned when deleting a customer that quotes or orders reference.
var ErrCustomerInUse = shared.NewDomainError("CUSTOMER_IN_USE", "Customer is referenced by quotes or orders and cannot be deleted")
