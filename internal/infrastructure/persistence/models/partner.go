package models

import (
	"github.com/printdesk/backend/internal/domain/partner"
)

// AddressColumns holds the postal address columns shared by customers and the company profile.
type AddressColumns struct {
	PostalCode string `gorm:"type:varchar(20)"`
	Street     string `gorm:"type:varchar(200)"`
	Number     string `gorm:"type:varchar(20)"`
	District   string `gorm:"type:varchar(100)"`
	City       string `gorm:"type:varchar(100)"`
	State      string `gorm:"type:varchar(2)"`
}

// ToDomain converts the address columns to a domain Address
func (a AddressColumns) ToDomain() partner.Address {
	return partner.Address{
		PostalCode: a.PostalCode,
		Street:     a.Street,
		Number:     a.Number,
		District:   a.District,
		City:       a.City,
		State:      a.State,
	}
}

// AddressColumnsFromDomain copies a domain Address into columns
func AddressColumnsFromDomain(a partner.Address) AddressColumns {
	return AddressColumns{
		PostalCode: a.PostalCode,
		Street:     a.Street,
		Number:     a.Number,
		District:   a.District,
		City:       a.City,
		State:      a.State,
	}
}

// CustomerModel is the persistence model for the Customer domain entity.
// TaxID is NULL when absent so that the unique index only covers filled values.
type CustomerModel struct {
	BaseModel
	Name    string         `gorm:"type:varchar(200);not null;index"`
	Email   string         `gorm:"type:varchar(200);index"`
	Phone   string         `gorm:"type:varchar(50)"`
	TaxID   *string        `gorm:"type:varchar(20);uniqueIndex:idx_customers_tax_id"`
	Notes   string         `gorm:"type:text"`
	Address AddressColumns `gorm:"embedded"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		BaseEntity: m.Entity(),
		Name:       m.Name,
		Email:      m.Email,
		Phone:      m.Phone,
		TaxID:      stringValue(m.TaxID),
		Notes:      m.Notes,
		Address:    m.Address.ToDomain(),
	}
}

// FromDomain populates the persistence model from a domain Customer entity.
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.setEntity(c.BaseEntity)
	m.Name = c.Name
	m.Email = c.Email
	m.Phone = c.Phone
	m.TaxID = nullableString(c.TaxID)
	m.Notes = c.Notes
	m.Address = AddressColumnsFromDomain(c.Address)
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer entity.
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}
