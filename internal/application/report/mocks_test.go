package report

import (
	"context"
	"time"

	"github.com/printdesk/backend/internal/domain/report"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockReportRepository is a mock implementation of report.Repository
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) SumPayments(ctx context.Context, p report.Period) (decimal.Decimal, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReportRepository) SumExpenses(ctx context.Context, p report.Period) (decimal.Decimal, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReportRepository) SumProductionCosts(ctx context.Context, p report.Period) (decimal.Decimal, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReportRepository) Receivable(ctx context.Context, p *report.Period) (decimal.Decimal, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReportRepository) CountQuotesByStatus(ctx context.Context, p *report.Period) ([]report.StatusCount, error) {
	args := m.Called(ctx, p)
	return args.Get(0).([]report.StatusCount), args.Error(1)
}

func (m *MockReportRepository) CountConvertedQuotes(ctx context.Context, p *report.Period) (int64, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReportRepository) CountOrdersByProductionStatus(ctx context.Context) ([]report.StatusCount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]report.StatusCount), args.Error(1)
}

func (m *MockReportRepository) ListExpenses(ctx context.Context, p report.Period) ([]report.ExpenseEntry, error) {
	args := m.Called(ctx, p)
	return args.Get(0).([]report.ExpenseEntry), args.Error(1)
}

func (m *MockReportRepository) ListProductionCosts(ctx context.Context, p report.Period) ([]report.ExpenseEntry, error) {
	args := m.Called(ctx, p)
	return args.Get(0).([]report.ExpenseEntry), args.Error(1)
}

func (m *MockReportRepository) RecentOrders(ctx context.Context, limit int) ([]report.RecentOrder, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]report.RecentOrder), args.Error(1)
}

func (m *MockReportRepository) RevenueByMethod(ctx context.Context, p report.Period) ([]report.RevenueByMethod, error) {
	args := m.Called(ctx, p)
	return args.Get(0).([]report.RevenueByMethod), args.Error(1)
}

func (m *MockReportRepository) MonthlyRevenue(ctx context.Context, p report.Period) ([]report.MonthlyRevenue, error) {
	args := m.Called(ctx, p)
	return args.Get(0).([]report.MonthlyRevenue), args.Error(1)
}

func (m *MockReportRepository) TopProducts(ctx context.Context, since time.Time, limit int) ([]report.TopProduct, error) {
	args := m.Called(ctx, since, limit)
	return args.Get(0).([]report.TopProduct), args.Error(1)
}

func (m *MockReportRepository) TopCustomers(ctx context.Context, p *report.Period, limit int) ([]report.TopCustomer, error) {
	args := m.Called(ctx, p, limit)
	return args.Get(0).([]report.TopCustomer), args.Error(1)
}

func (m *MockReportRepository) InactiveCustomers(ctx context.Context, since time.Time) ([]report.InactiveCustomer, error) {
	args := m.Called(ctx, since)
	return args.Get(0).([]report.InactiveCustomer), args.Error(1)
}

func (m *MockReportRepository) OverdueOrders(ctx context.Context, now time.Time) ([]report.OverdueOrder, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]report.OverdueOrder), args.Error(1)
}

func (m *MockReportRepository) OrderMargins(ctx context.Context, p report.Period) ([]report.OrderMargin, error) {
	args := m.Called(ctx, p)
	return args.Get(0).([]report.OrderMargin), args.Error(1)
}

func (m *MockReportRepository) ProductDemand(ctx context.Context, since time.Time) ([]report.ProductDemand, error) {
	args := m.Called(ctx, since)
	return args.Get(0).([]report.ProductDemand), args.Error(1)
}
