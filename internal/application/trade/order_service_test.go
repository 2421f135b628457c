package trade

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/printdesk/backend/internal/domain/catalog"
	"github.com/printdesk/backend/internal/domain/shared"
	"github.com/printdesk/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOrderService_Create_Success(t *testing.T) {
	f := newFixture()
	metrics := new(MockMetrics)
	service := NewOrderService(f.orders, f.payments, f.customers, f.products, f.scope, nil)
	service.SetMetrics(metrics)
	ctx := context.Background()
	customer := newCustomer(t)
	product := newProduct(t, catalog.PricingModeArea, "40")

	f.customers.On("FindByID", ctx, customer.ID).Return(customer, nil)
	f.products.On("FindByIDs", ctx, []uuid.UUID{product.ID}).Return([]catalog.Product{*product}, nil)
	f.orders.On("Save", ctx, mock.AnythingOfType("*trade.Order")).Return(nil)
	metrics.On("RecordOrderCreated", ctx, OrderSourceDirect, mock.Anything).Return()

	result, err := service.Create(ctx, CreateOrderRequest{
		CustomerID:     customer.ID,
		ProductionCost: dec("30"),
		Lines: []LineRequest{
			{ProductID: &product.ID, Width: decPtr("1.2"), Height: decPtr("0.8")},
			{Description: "Instalação", Subtotal: decPtr("60")},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "Awaiting", result.ProductionStatus)
	assert.Equal(t, "PENDING", result.PaymentStatus)
	assert.Equal(t, "98.40", result.Total.StringFixed(2))
	assert.Equal(t, "68.40", result.Profit.StringFixed(2))
	assert.Equal(t, "98.40", result.Receivable.StringFixed(2))
	assert.Nil(t, result.QuoteID)
	metrics.AssertExpectations(t)
}

func TestOrderService_Create_UnknownCustomer(t *testing.T) {
	f := newFixture()
	service := NewOrderService(f.orders, f.payments, f.customers, f.products, f.scope, nil)
	ctx := context.Background()
	id := uuid.New()

	f.customers.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

	_, err := service.Create(ctx, CreateOrderRequest{CustomerID: id})

	assert.Equal(t, "INVALID_CUSTOMER", shared.CodeOf(err))
}

func TestOrderService_GetByID_IncludesBalance(t *testing.T) {
	f := newFixture()
	service := NewOrderService(f.orders, f.payments, f.customers, f.products, f.scope, nil)
	ctx := context.Background()
	customer := newCustomer(t)
	order := newOrder(t, customer.ID, "100")

	f.orders.On("FindByID", ctx, order.ID).Return(order, nil)
	f.payments.On("SumByOrder", ctx, order.ID).Return(dec("40"), nil)
	f.customers.On("FindByID", ctx, customer.ID).Return(customer, nil)

	result, err := service.GetByID(ctx, order.ID)

	require.NoError(t, err)
	assert.Equal(t, "40.00", result.Paid.StringFixed(2))
	assert.Equal(t, "60.00", result.Receivable.StringFixed(2))
	assert.Equal(t, customer.Name, result.CustomerName)
}

func TestOrderService_AddLine_RepricesAndRederivesPaymentStatus(t *testing.T) {
	f := newFixture()
	service := NewOrderService(f.orders, f.payments, f.customers, f.products, f.scope, nil)
	ctx := context.Background()
	customer := newCustomer(t)
	order := newOrder(t, customer.ID, "100")
	order.ApplyPayments(dec("100"))
	require.Equal(t, trade.PaymentStatusPaid, order.PaymentStatus)
	product := newProduct(t, catalog.PricingModeUnit, "25")

	f.orders.On("FindByIDForUpdate", ctx, order.ID).Return(order, nil)
	f.products.On("FindByIDs", ctx, []uuid.UUID{product.ID}).Return([]catalog.Product{*product}, nil)
	f.payments.On("SumByOrder", ctx, order.ID).Return(dec("100"), nil)
	f.orders.On("Save", ctx, order).Return(nil)
	f.customers.On("FindByID", ctx, customer.ID).Return(customer, nil)

	qty := 2
	result, err := service.AddLine(ctx, order.ID, LineRequest{ProductID: &product.ID, Quantity: &qty})

	require.NoError(t, err)
	assert.Equal(t, "150.00", result.Total.StringFixed(2))
	assert.Equal(t, "PARTIAL", result.PaymentStatus)
	assert.Equal(t, "50.00", result.Receivable.StringFixed(2))
}

func TestOrderService_RemoveLine_RepricesRemainingLines(t *testing.T) {
	f := newFixture()
	service := NewOrderService(f.orders, f.payments, f.customers, f.products, f.scope, nil)
	ctx := context.Background()
	customer := newCustomer(t)
	product := newProduct(t, catalog.PricingModeUnit, "10")

	order, err := trade.NewOrder(trade.OrderInput{CustomerID: customer.ID})
	require.NoError(t, err)
	_, err = order.AddLine(trade.LineInput{ProductID: &product.ID, Quantity: 3}, product)
	require.NoError(t, err)
	extra, err := order.AddLine(trade.LineInput{Description: "Frete", Quantity: 1, Subtotal: decPtr("15")}, nil)
	require.NoError(t, err)
	extraID := extra.ID

	// price raised after the line was priced
	raised := *product
	raised.UnitPrice = dec("12")

	f.orders.On("FindByIDForUpdate", ctx, order.ID).Return(order, nil)
	f.products.On("FindByIDs", ctx, []uuid.UUID{product.ID}).Return([]catalog.Product{raised}, nil)
	f.payments.On("SumByOrder", ctx, order.ID).Return(decimal.Zero, nil)
	f.orders.On("Save", ctx, order).Return(nil)
	f.customers.On("FindByID", ctx, customer.ID).Return(customer, nil)

	result, err := service.RemoveLine(ctx, order.ID, extraID)

	require.NoError(t, err)
	assert.Equal(t, 1, result.LineCount)
	assert.Equal(t, "36.00", result.Total.StringFixed(2))
	assert.Equal(t, "PENDING", result.PaymentStatus)
}

func TestOrderService_Update_ReplacesLines(t *testing.T) {
	f := newFixture()
	service := NewOrderService(f.orders, f.payments, f.customers, f.products, f.scope, nil)
	ctx := context.Background()
	customer := newCustomer(t)
	order := newOrder(t, customer.ID, "100")

	f.orders.On("FindByIDForUpdate", ctx, order.ID).Return(order, nil)
	f.payments.On("SumByOrder", ctx, order.ID).Return(dec("80"), nil)
	f.orders.On("Save", ctx, order).Return(nil)
	f.customers.On("FindByID", ctx, customer.ID).Return(customer, nil)

	lines := []LineRequest{{Description: "Arte nova", Subtotal: decPtr("80")}}
	notes := "Cliente aprovou por telefone"
	result, err := service.Update(ctx, order.ID, UpdateOrderRequest{Notes: &notes, Lines: &lines})

	require.NoError(t, err)
	assert.Equal(t, 1, result.LineCount)
	assert.Equal(t, "80.00", result.Total.StringFixed(2))
	assert.Equal(t, "PAID", result.PaymentStatus)
	assert.Equal(t, notes, result.Notes)
}

func TestOrderService_Update_HeaderOnlyKeepsTotal(t *testing.T) {
	f := newFixture()
	service := NewOrderService(f.orders, f.payments, f.customers, f.products, f.scope, nil)
	ctx := context.Background()
	customer := newCustomer(t)
	order := newOrder(t, customer.ID, "100")

	f.orders.On("FindByIDForUpdate", ctx, order.ID).Return(order, nil)
	f.payments.On("SumByOrder", ctx, order.ID).Return(decimal.Zero, nil)
	f.orders.On("Save", ctx, order).Return(nil)
	f.customers.On("FindByID", ctx, customer.ID).Return(customer, nil)

	status := "Printing"
	result, err := service.Update(ctx, order.ID, UpdateOrderRequest{ProductionStatus: &status})

	require.NoError(t, err)
	assert.Equal(t, "Printing", result.ProductionStatus)
	assert.Equal(t, "100.00", result.Total.StringFixed(2))
	f.products.AssertNotCalled(t, "FindByIDs", mock.Anything, mock.Anything)
}

func TestOrderService_SetProductionStatus_DeliveredStampsDate(t *testing.T) {
	f := newFixture()
	service := NewOrderService(f.orders, f.payments, f.customers, f.products, f.scope, nil)
	ctx := context.Background()
	customer := newCustomer(t)
	order := newOrder(t, customer.ID, "100")

	f.orders.On("FindByID", ctx, order.ID).Return(order, nil)
	f.orders.On("Save", ctx, order).Return(nil)
	f.payments.On("SumByOrder", ctx, order.ID).Return(decimal.Zero, nil)
	f.customers.On("FindByID", ctx, customer.ID).Return(customer, nil)

	result, err := service.SetProductionStatus(ctx, order.ID, ProductionStatusRequest{Status: "Delivered"})

	require.NoError(t, err)
	assert.Equal(t, "Delivered", result.ProductionStatus)
	assert.NotNil(t, result.DeliveredAt)
}

func TestOrderService_List_Filters(t *testing.T) {
	f := newFixture()
	service := NewOrderService(f.orders, f.payments, f.customers, f.products, f.scope, nil)
	ctx := context.Background()

	f.orders.On("FindAll", ctx, mock.MatchedBy(func(filter shared.Filter) bool {
		return filter.Filters["payment_status"] == trade.PaymentStatusPartial &&
			filter.Filters["production_status"] == "Printing"
	})).Return([]trade.Order{}, nil)
	f.orders.On("Count", ctx, mock.Anything).Return(int64(0), nil)

	results, total, err := service.List(ctx, OrderListFilter{PaymentStatus: "PARTIAL", ProductionStatus: "Printing"})

	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Equal(t, int64(0), total)
	f.customers.AssertNotCalled(t, "FindByIDs", mock.Anything, mock.Anything)
}

func TestOrderService_Delete(t *testing.T) {
	f := newFixture()
	service := NewOrderService(f.orders, f.payments, f.customers, f.products, f.scope, nil)
	ctx := context.Background()
	order := newOrder(t, uuid.New(), "10")

	f.orders.On("FindByID", ctx, order.ID).Return(order, nil)
	f.orders.On("Delete", ctx, order.ID).Return(nil)

	require.NoError(t, service.Delete(ctx, order.ID))
	f.orders.AssertExpectations(t)
}
