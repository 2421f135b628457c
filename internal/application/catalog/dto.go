package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/printdesk/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name          string          `json:"name" binding:"required,min=1,max=100"`
	Description   string          `json:"description"`
	PricingMode   string          `json:"pricing_mode" binding:"omitempty,oneof=UNIT AREA"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Cost          decimal.Decimal `json:"cost"`
	StockQuantity *int            `json:"stock_quantity" binding:"omitempty,min=0"`
	MinimumStock  *int            `json:"minimum_stock" binding:"omitempty,min=0"`
}

// UpdateProductRequest represents a request to update a product.
// Nil fields keep their current value.
type UpdateProductRequest struct {
	Name          *string          `json:"name" binding:"omitempty,min=1,max=100"`
	Description   *string          `json:"description"`
	PricingMode   *string          `json:"pricing_mode" binding:"omitempty,oneof=UNIT AREA"`
	UnitPrice     *decimal.Decimal `json:"unit_price"`
	Cost          *decimal.Decimal `json:"cost"`
	StockQuantity *int             `json:"stock_quantity" binding:"omitempty,min=0"`
	MinimumStock  *int             `json:"minimum_stock" binding:"omitempty,min=0"`
	ClearStock    bool             `json:"clear_stock"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	PricingMode   string          `json:"pricing_mode"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Cost          decimal.Decimal `json:"cost"`
	StockQuantity *int            `json:"stock_quantity"`
	MinimumStock  *int            `json:"minimum_stock"`
	LowStock      bool            `json:"low_stock"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListFilter represents filter options for product list
type ProductListFilter struct {
	Search      string `form:"search"`
	PricingMode string `form:"pricing_mode" binding:"omitempty,oneof=UNIT AREA"`
	LowStock    bool   `form:"low_stock"`
	Page        int    `form:"page" binding:"omitempty,min=1"`
	PageSize    int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy     string `form:"order_by" binding:"omitempty,oneof=name unit_price created_at updated_at"`
	OrderDir    string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		PricingMode:   p.PricingMode.String(),
		UnitPrice:     p.UnitPrice,
		Cost:          p.Cost,
		StockQuantity: p.StockQuantity,
		MinimumStock:  p.MinimumStock,
		LowStock:      p.IsLowStock(),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ToProductResponses converts a slice of domain Products to responses
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}
