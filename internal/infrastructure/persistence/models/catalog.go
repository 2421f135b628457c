package models

import (
	"github.com/printdesk/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product domain entity.
type ProductModel struct {
	BaseModel
	Name          string              `gorm:"type:varchar(200);not null;index"`
	Description   string              `gorm:"type:text"`
	PricingMode   catalog.PricingMode `gorm:"type:varchar(10);not null;default:'UNIT';index"`
	UnitPrice     decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	Cost          decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	StockQuantity *int
	MinimumStock  *int
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseEntity:    m.Entity(),
		Name:          m.Name,
		Description:   m.Description,
		PricingMode:   m.PricingMode,
		UnitPrice:     m.UnitPrice,
		Cost:          m.Cost,
		StockQuantity: m.StockQuantity,
		MinimumStock:  m.MinimumStock,
	}
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.setEntity(p.BaseEntity)
	m.Name = p.Name
	m.Description = p.Description
	m.PricingMode = p.PricingMode
	m.UnitPrice = p.UnitPrice
	m.Cost = p.Cost
	m.StockQuantity = p.StockQuantity
	m.MinimumStock = p.MinimumStock
}

// ProductModelFromDomain creates a new persistence model from a domain Product entity.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}
