//go:build integration

package integration

import (
	"net/http"
	"testing"
	"time"

	tradeapp "github.com/printdesk/backend/internal/application/trade"
	"github.com/printdesk/backend/internal/domain/report"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createOrder places a direct order of qty units of a new product priced unitPrice
func createOrder(t *testing.T, srv *TestServer, customerID, productName, unitPrice string, qty int, cost string) tradeapp.OrderResponse {
	t.Helper()
	product := createProduct(t, srv, map[string]any{"name": productName, "unit_price": unitPrice})
	w := srv.Do(t, http.MethodPost, "/api/v1/orders", map[string]any{
		"customer_id":     customerID,
		"production_cost": cost,
		"lines":           []map[string]any{{"product_id": product.ID.String(), "quantity": qty}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return Decode[tradeapp.OrderResponse](t, w)
}

func TestRevenueTrendGroupsByMonth(t *testing.T) {
	srv := NewTestServer(t)

	customer := createCustomer(t, srv, "Cliente")
	order := createOrder(t, srv, customer.ID.String(), "Folder", "100", 3, "0")

	now := time.Now()
	lastMonth := time.Date(now.Year(), now.Month(), 1, 12, 0, 0, 0, time.Local).AddDate(0, -1, 0)
	w := srv.Do(t, http.MethodPost, "/api/v1/orders/"+order.ID.String()+"/payments",
		map[string]any{"amount": "120", "method": "PIX", "paid_at": lastMonth})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = srv.Do(t, http.MethodPost, "/api/v1/orders/"+order.ID.String()+"/payments",
		map[string]any{"amount": "80", "method": "BOLETO"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = srv.Do(t, http.MethodGet, "/api/v1/reports/revenue-trend?months=2", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	trend := Decode[[]report.MonthlyRevenue](t, w)

	require.Len(t, trend, 2)
	assert.Equal(t, lastMonth.Format("2006-01"), trend[0].Month)
	assert.True(t, decimal.NewFromInt(120).Equal(trend[0].Total), trend[0].Total.String())
	assert.Equal(t, now.Format("2006-01"), trend[1].Month)
	assert.True(t, decimal.NewFromInt(80).Equal(trend[1].Total), trend[1].Total.String())
}

func TestRankingsAndMargins(t *testing.T) {
	srv := NewTestServer(t)

	ana := createCustomer(t, srv, "Ana")
	bruno := createCustomer(t, srv, "Bruno")
	createOrder(t, srv, ana.ID.String(), "Caneca", "30", 10, "120")
	createOrder(t, srv, bruno.ID.String(), "Camiseta", "40", 2, "20")

	w := srv.Do(t, http.MethodGet, "/api/v1/reports/top-customers", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	customers := Decode[[]report.TopCustomer](t, w)
	require.Len(t, customers, 2)
	assert.Equal(t, "Ana", customers[0].CustomerName)
	assert.True(t, decimal.NewFromInt(300).Equal(customers[0].Total), customers[0].Total.String())

	w = srv.Do(t, http.MethodGet, "/api/v1/reports/top-products", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	products := Decode[[]report.TopProduct](t, w)
	require.NotEmpty(t, products)
	assert.Equal(t, "Caneca", products[0].ProductName)
	assert.Equal(t, int64(10), products[0].Quantity)

	w = srv.Do(t, http.MethodGet, "/api/v1/reports/profit-margins", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	margins := Decode[report.ProfitMargins](t, w)
	assert.Len(t, margins.Orders, 2)
	assert.True(t, decimal.NewFromInt(380).Equal(margins.TotalRevenue), margins.TotalRevenue.String())
	assert.True(t, decimal.NewFromInt(140).Equal(margins.TotalCost), margins.TotalCost.String())
	assert.True(t, decimal.NewFromInt(240).Equal(margins.TotalProfit), margins.TotalProfit.String())
}
