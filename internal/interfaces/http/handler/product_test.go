package handler_test

import (
	"net/http"
	"testing"

	catalogapp "github.com/printdesk/backend/internal/application/catalog"
	"github.com/printdesk/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductHandler_CRUD(t *testing.T) {
	env := newTestEnv(t)

	created := env.createProduct(t, map[string]any{
		"name":         "Lona 440g",
		"pricing_mode": "AREA",
		"unit_price":   "45.50",
		"cost":         "20",
	})
	assert.Equal(t, "AREA", created.PricingMode)
	assert.True(t, decimal.RequireFromString("45.50").Equal(created.UnitPrice))

	path := "/api/v1/products/" + created.ID.String()

	w := env.do(t, http.MethodPut, path, map[string]any{"unit_price": "50"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[catalogapp.ProductResponse](t, w)
	assert.True(t, decimal.NewFromInt(50).Equal(updated.UnitPrice))
	assert.Equal(t, "Lona 440g", updated.Name)

	w = env.do(t, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductHandler_ListFilters(t *testing.T) {
	env := newTestEnv(t)
	env.createProduct(t, map[string]any{"name": "Banner", "pricing_mode": "AREA", "unit_price": "60"})
	env.createProduct(t, map[string]any{"name": "Adesivo", "pricing_mode": "AREA", "unit_price": "35"})
	env.createProduct(t, map[string]any{
		"name": "Caneca", "pricing_mode": "UNIT", "unit_price": "25",
		"stock_quantity": 2, "minimum_stock": 5,
	})
	env.createProduct(t, map[string]any{
		"name": "Camiseta", "pricing_mode": "UNIT", "unit_price": "40",
		"stock_quantity": 50, "minimum_stock": 5,
	})

	w := env.do(t, http.MethodGet, "/api/v1/products?pricing_mode=AREA&order_by=name", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	area := decode[[]catalogapp.ProductResponse](t, w)
	require.Len(t, area, 2)
	assert.Equal(t, "Adesivo", area[0].Name)

	w = env.do(t, http.MethodGet, "/api/v1/products?low_stock=true", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	low := decode[[]catalogapp.ProductResponse](t, w)
	require.Len(t, low, 1)
	assert.Equal(t, "Caneca", low[0].Name)
	assert.True(t, low[0].LowStock)
}

func TestProductHandler_InvalidPricingMode(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/products", map[string]any{
		"name":         "Folder",
		"pricing_mode": "WEIGHT",
		"unit_price":   "1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeValidation, errorCode(t, w))

	w = env.do(t, http.MethodGet, "/api/v1/products?pricing_mode=WEIGHT", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductHandler_DeleteReferencedProduct(t *testing.T) {
	env := newTestEnv(t)
	customer := env.createCustomer(t, "Cliente", "")
	product := env.createProduct(t, map[string]any{"name": "Flyer A5", "unit_price": "0.35"})

	w := env.do(t, http.MethodPost, "/api/v1/quotes", map[string]any{
		"customer_id": customer.ID.String(),
		"lines":       []map[string]any{{"product_id": product.ID.String(), "quantity": 1000}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = env.do(t, http.MethodDelete, "/api/v1/products/"+product.ID.String(), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "PRODUCT_IN_USE", errorCode(t, w))
}
