package catalog

import (
	"testing"

	"github.com/printdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestPricingMode_IsValid(t *testing.T) {
	tests := []struct {
		mode PricingMode
		want bool
	}{
		{PricingModeUnit, true},
		{PricingModeArea, true},
		{PricingMode("M2"), false},
		{PricingMode(""), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.mode.IsValid())
		})
	}
}

func TestNewProduct(t *testing.T) {
	t.Run("defaults to unit pricing", func(t *testing.T) {
		p, err := NewProduct(ProductInput{Name: "Cartão de visita", UnitPrice: decimal.NewFromFloat(0.35)})

		require.NoError(t, err)
		assert.Equal(t, PricingModeUnit, p.PricingMode)
		assert.False(t, p.IsAreaPriced())
	})

	t.Run("area priced product", func(t *testing.T) {
		p, err := NewProduct(ProductInput{
			Name:        "Banner em lona",
			PricingMode: PricingModeArea,
			UnitPrice:   decimal.NewFromInt(45),
			Cost:        decimal.NewFromInt(18),
		})

		require.NoError(t, err)
		assert.True(t, p.IsAreaPriced())
		assert.True(t, p.Cost.Equal(decimal.NewFromInt(18)))
	})

	t.Run("rejects unknown pricing mode", func(t *testing.T) {
		_, err := NewProduct(ProductInput{Name: "X", PricingMode: "M2"})
		assert.Equal(t, "INVALID_PRICING_MODE", shared.CodeOf(err))
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewProduct(ProductInput{Name: "X", UnitPrice: decimal.NewFromInt(-1)})
		assert.Equal(t, "INVALID_PRICE", shared.CodeOf(err))
	})

	t.Run("rejects negative stock", func(t *testing.T) {
		_, err := NewProduct(ProductInput{Name: "X", StockQuantity: intPtr(-2)})
		assert.Equal(t, "INVALID_STOCK", shared.CodeOf(err))
	})
}

func TestProduct_IsLowStock(t *testing.T) {
	tests := []struct {
		name  string
		stock *int
		min   *int
		want  bool
	}{
		{"untracked", nil, nil, false},
		{"no minimum", intPtr(3), nil, false},
		{"below minimum", intPtr(2), intPtr(5), true},
		{"at minimum", intPtr(5), intPtr(5), true},
		{"above minimum", intPtr(6), intPtr(5), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Product{StockQuantity: tt.stock, MinimumStock: tt.min}
			assert.Equal(t, tt.want, p.IsLowStock())
		})
	}
}
