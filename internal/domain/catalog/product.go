package catalog

import (
	"strings"

	"github.com/printdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PricingMode defines how a product's unit price is applied to a line
type PricingMode string

const (
	PricingModeUnit PricingMode = "UNIT" // price per piece
	PricingModeArea PricingMode = "AREA" // price per square meter
)

// IsValid checks if the pricing mode is a known value
func (m PricingMode) IsValid() bool {
	switch m {
	case PricingModeUnit, PricingModeArea:
		return true
	}
	return false
}

// String returns the string representation of PricingMode
func (m PricingMode) String() string {
	return string(m)
}

// Product represents a product or service offered by the shop
type Product struct {
	shared.BaseEntity
	Name          string
	Description   string
	PricingMode   PricingMode
	UnitPrice     decimal.Decimal // per piece or per m², depending on PricingMode
	Cost          decimal.Decimal
	StockQuantity *int
	MinimumStock  *int
}

// ProductInput carries the writable product fields.
type ProductInput struct {
	Name          string
	Description   string
	PricingMode   PricingMode
	UnitPrice     decimal.Decimal
	Cost          decimal.Decimal
	StockQuantity *int
	MinimumStock  *int
}

// NewProduct creates a new product
func NewProduct(input ProductInput) (*Product, error) {
	p := &Product{BaseEntity: shared.NewBaseEntity()}
	if err := p.apply(input); err != nil {
		return nil, err
	}
	return p, nil
}

// Update replaces the product's writable fields.
// Existing lines keep their stored subtotals until they are saved again.
func (p *Product) Update(input ProductInput) error {
	if err := p.apply(input); err != nil {
		return err
	}
	p.Touch()
	return nil
}

// IsAreaPriced reports whether the product is priced per square meter
func (p *Product) IsAreaPriced() bool {
	return p.PricingMode == PricingModeArea
}

// IsLowStock reports whether stock is tracked and at or below the minimum
func (p *Product) IsLowStock() bool {
	if p.StockQuantity == nil || p.MinimumStock == nil {
		return false
	}
	return *p.StockQuantity <= *p.MinimumStock
}

func (p *Product) apply(input ProductInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 100 characters")
	}

	mode := input.PricingMode
	if mode == "" {
		mode = PricingModeUnit
	}
	if !mode.IsValid() {
		return shared.NewDomainError("INVALID_PRICING_MODE", "Pricing mode must be UNIT or AREA")
	}
	if input.UnitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if input.Cost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Cost cannot be negative")
	}
	if input.StockQuantity != nil && *input.StockQuantity < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock quantity cannot be negative")
	}
	if input.MinimumStock != nil && *input.MinimumStock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Minimum stock cannot be negative")
	}

	p.Name = name
	p.Description = strings.TrimSpace(input.Description)
	p.PricingMode = mode
	p.UnitPrice = input.UnitPrice
	p.Cost = input.Cost
	p.StockQuantity = input.StockQuantity
	p.MinimumStock = input.MinimumStock
	return nil
}

// ErrProductInUse is returned when deleting a product that lines reference.
var ErrProductInUse = shared.NewDomainError("PRODUCT_IN_USE", "Product is referenced by quote or order lines and cannot be deleted")
