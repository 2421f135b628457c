package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/printdesk/backend/internal/domain/partner"
)

// =============================================================================
// Customer DTOs
// =============================================================================

// AddressDTO is the postal address block of requests and responses
type AddressDTO struct {
	PostalCode string `json:"postal_code" binding:"max=10"`
	Street     string `json:"street" binding:"max=255"`
	Number     string `json:"number" binding:"max=10"`
	District   string `json:"district" binding:"max=100"`
	City       string `json:"city" binding:"max=100"`
	State      string `json:"state" binding:"omitempty,len=2"`
}

// ToDomain converts the DTO to a domain address
func (a AddressDTO) ToDomain() partner.Address {
	return partner.Address{
		PostalCode: a.PostalCode,
		Street:     a.Street,
		Number:     a.Number,
		District:   a.District,
		City:       a.City,
		State:      a.State,
	}
}

// ToAddressDTO converts a domain address to its DTO
func ToAddressDTO(a partner.Address) AddressDTO {
	return AddressDTO{
		PostalCode: a.PostalCode,
		Street:     a.Street,
		Number:     a.Number,
		District:   a.District,
		City:       a.City,
		State:      a.State,
	}
}

// CreateCustomerRequest represents a request to create a new customer
type CreateCustomerRequest struct {
	Name    string     `json:"name" binding:"required,min=1,max=200"`
	Email   string     `json:"email" binding:"omitempty,email,max=254"`
	Phone   string     `json:"phone" binding:"max=20"`
	TaxID   string     `json:"tax_id" binding:"max=18"`
	Notes   string     `json:"notes"`
	Address AddressDTO `json:"address"`
}

// UpdateCustomerRequest represents a request to update a customer.
// Nil fields keep their current value.
type UpdateCustomerRequest struct {
	Name    *string     `json:"name" binding:"omitempty,min=1,max=200"`
	Email   *string     `json:"email" binding:"omitempty,max=254"`
	Phone   *string     `json:"phone" binding:"omitempty,max=20"`
	TaxID   *string     `json:"tax_id" binding:"omitempty,max=18"`
	Notes   *string     `json:"notes"`
	Address *AddressDTO `json:"address"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	TaxID     string     `json:"tax_id"`
	Notes     string     `json:"notes"`
	Address   AddressDTO `json:"address"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CustomerListFilter represents filter options for customer list
type CustomerListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by" binding:"omitempty,oneof=name created_at updated_at tax_id"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToCustomerResponse converts a domain Customer to CustomerResponse
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		TaxID:     c.TaxID,
		Notes:     c.Notes,
		Address:   ToAddressDTO(c.Address),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToCustomerResponses converts a slice of domain Customers to responses
func ToCustomerResponses(customers []partner.Customer) []CustomerResponse {
	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = ToCustomerResponse(&customers[i])
	}
	return responses
}
