package trade

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/printdesk/backend/internal/domain/catalog"
	"github.com/printdesk/backend/internal/domain/partner"
	"github.com/printdesk/backend/internal/domain/shared"
	"github.com/printdesk/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockQuoteRepository is a mock implementation of QuoteRepository
type MockQuoteRepository struct {
	mock.Mock
}

func (m *MockQuoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Quote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Quote), args.Error(1)
}

func (m *MockQuoteRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Quote, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]trade.Quote), args.Error(1)
}

func (m *MockQuoteRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuoteRepository) Save(ctx context.Context, quote *trade.Quote) error {
	args := m.Called(ctx, quote)
	return args.Error(0)
}

func (m *MockQuoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockOrderRepository is a mock implementation of OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByQuoteID(ctx context.Context, quoteID uuid.UUID) (*trade.Order, error) {
	args := m.Called(ctx, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Order), args.Error(1)
}

func (m *MockOrderRepository) ExistsByQuoteID(ctx context.Context, quoteID uuid.UUID) (bool, error) {
	args := m.Called(ctx, quoteID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Order, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]trade.Order), args.Error(1)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPaymentRepository is a mock implementation of PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]trade.Payment, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]trade.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindAll(ctx context.Context, filter trade.PaymentFilter, page shared.Filter) ([]trade.Payment, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).([]trade.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Count(ctx context.Context, filter trade.PaymentFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPaymentRepository) SumByOrder(ctx context.Context, orderID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPaymentRepository) Save(ctx context.Context, payment *trade.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCustomerRepository is a mock implementation of CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]partner.Customer, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) ExistsByTaxID(ctx context.Context, taxID string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, taxID, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerRepository) CountReferences(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) CountReferences(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockMetrics records business metric calls
type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) RecordOrderCreated(ctx context.Context, source string, total decimal.Decimal) {
	m.Called(ctx, source, total)
}

func (m *MockMetrics) RecordQuoteConverted(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockMetrics) RecordPayment(ctx context.Context, method string, amount decimal.Decimal) {
	m.Called(ctx, method, amount)
}

// =============================================================================
// Fixtures
// =============================================================================

type fixture struct {
	quotes    *MockQuoteRepository
	orders    *MockOrderRepository
	payments  *MockPaymentRepository
	customers *MockCustomerRepository
	products  *MockProductRepository
	scope     *NoOpTransactionScope
}

func newFixture() *fixture {
	f := &fixture{
		quotes:    new(MockQuoteRepository),
		orders:    new(MockOrderRepository),
		payments:  new(MockPaymentRepository),
		customers: new(MockCustomerRepository),
		products:  new(MockProductRepository),
	}
	f.scope = NewNoOpTransactionScope(f.quotes, f.orders, f.payments, f.products)
	return f
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func newCustomer(t *testing.T) *partner.Customer {
	t.Helper()
	c, err := partner.NewCustomer(partner.CustomerInput{Name: "Gráfica Rápida Ltda"})
	require.NoError(t, err)
	return c
}

func newProduct(t *testing.T, mode catalog.PricingMode, price string) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(catalog.ProductInput{Name: "Banner", PricingMode: mode, UnitPrice: dec(price)})
	require.NoError(t, err)
	return p
}

// newQuoteWithLines builds an open quote with one 100.00 locked line
func newQuoteWithLines(t *testing.T, customerID uuid.UUID) *trade.Quote {
	t.Helper()
	q, err := trade.NewQuote(customerID, "", nil)
	require.NoError(t, err)
	_, err = q.AddLine(trade.LineInput{Description: "Arte", Quantity: 1, Subtotal: decPtr("100")}, nil)
	require.NoError(t, err)
	q.RecalculateTotal()
	return q
}

func newOrder(t *testing.T, customerID uuid.UUID, total string) *trade.Order {
	t.Helper()
	o, err := trade.NewOrder(trade.OrderInput{CustomerID: customerID})
	require.NoError(t, err)
	_, err = o.AddLine(trade.LineInput{Description: "Serviço", Quantity: 1, Subtotal: decPtr(total)}, nil)
	require.NoError(t, err)
	_, err = o.RecalculateTotal(nil)
	require.NoError(t, err)
	return o
}
