package trade

import (
	"github.com/printdesk/backend/internal/domain/catalog"
	"github.com/printdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Pricing errors
var (
	ErrInvalidDimensions = shared.NewDomainError("INVALID_DIMENSIONS", "Width and height are required and must be positive for area-priced products")
	ErrInvalidQuantity   = shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	ErrInvalidSubtotal   = shared.NewDomainError("INVALID_SUBTOTAL", "Subtotal cannot be negative")
)

// CalculateSubtotal prices a line from its product, quantity and dimensions.
//
//   - no product: 0
//   - UNIT: unit_price × quantity
//   - AREA: unit_price × width × height × quantity, width and height > 0
//
// Missing dimensions on an area-priced product always fail with
// ErrInvalidDimensions. The result is rounded to the currency minor unit.
func CalculateSubtotal(product *catalog.Product, quantity int, width, height *decimal.Decimal) (decimal.Decimal, error) {
	if quantity < 0 {
		return decimal.Zero, ErrInvalidQuantity
	}
	if product == nil {
		return decimal.Zero, nil
	}

	qty := decimal.NewFromInt(int64(quantity))
	switch product.PricingMode {
	case catalog.PricingModeArea:
		if !positive(width) || !positive(height) {
			return decimal.Zero, ErrInvalidDimensions
		}
		return shared.RoundMoney(product.UnitPrice.Mul(*width).Mul(*height).Mul(qty)), nil
	default:
		return shared.RoundMoney(product.UnitPrice.Mul(qty)), nil
	}
}

func positive(d *decimal.Decimal) bool {
	return d != nil && d.IsPositive()
}
