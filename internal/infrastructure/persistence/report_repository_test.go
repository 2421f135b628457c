package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/printdesk/backend/internal/domain/catalog"
	"github.com/printdesk/backend/internal/domain/finance"
	"github.com/printdesk/backend/internal/domain/partner"
	"github.com/printdesk/backend/internal/domain/report"
	"github.com/printdesk/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// reportFixture is a small shop history centered on March 2024
type reportFixture struct {
	repo     *GormReportRepository
	march    report.Period
	ana      *partner.Customer
	bia      *partner.Customer
	caio     *partner.Customer
	duda     *partner.Customer
	adesivo  *catalog.Product
	banner   *catalog.Product
	caneca   *catalog.Product
	anaOrder *trade.Order
	biaOrder *trade.Order
}

func setupReportFixture(t *testing.T) *reportFixture {
	t.Helper()
	db := setupTestDB(t)
	ctx := context.Background()
	orders := NewGormOrderRepository(db)

	f := &reportFixture{
		repo:  NewGormReportRepository(db),
		march: report.Period{From: day(2024, 3, 1), To: time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC)},
	}
	f.ana = seedCustomer(t, db, "Ana", "")
	f.bia = seedCustomer(t, db, "Bia", "")
	f.caio = seedCustomer(t, db, "Caio", "")
	f.duda = seedCustomer(t, db, "Duda", "")
	f.adesivo = seedProduct(t, db, "Adesivo", catalog.PricingModeUnit, "2")
	f.banner = seedProduct(t, db, "Banner", catalog.PricingModeUnit, "10")
	f.caneca = seedProduct(t, db, "Caneca", catalog.PricingModeUnit, "25")

	// quote approved and converted into Ana's order, plus one still open
	approved := seedQuote(t, db, f.ana, trade.QuoteStatusApproved)
	seedQuote(t, db, f.bia, trade.QuoteStatusOpen)

	f.anaOrder = seedOrder(t, db, f.ana, day(2024, 3, 5), map[*catalog.Product]int{f.adesivo: 10})
	f.anaOrder.QuoteID = &approved.ID
	f.anaOrder.ProductionCost = decimal.NewFromInt(8)
	seedPayment(t, db, f.anaOrder.ID, "20", trade.PaymentMethodPix, day(2024, 3, 6))
	f.anaOrder.ApplyPayments(decimal.NewFromInt(20))
	require.NoError(t, orders.Save(ctx, f.anaOrder))

	f.biaOrder = seedOrder(t, db, f.bia, day(2024, 3, 10), map[*catalog.Product]int{f.banner: 10})
	due := day(2024, 3, 15)
	f.biaOrder.DueDate = &due
	seedPayment(t, db, f.biaOrder.ID, "10", trade.PaymentMethodCash, day(2024, 3, 12))
	f.biaOrder.ApplyPayments(decimal.NewFromInt(10))
	require.NoError(t, orders.Save(ctx, f.biaOrder))

	dudaOrder := seedOrder(t, db, f.duda, day(2023, 12, 1), map[*catalog.Product]int{f.adesivo: 5})
	seedPayment(t, db, dudaOrder.ID, "5", trade.PaymentMethodCard, day(2024, 2, 20))
	dudaOrder.ApplyPayments(decimal.NewFromInt(5))
	require.NoError(t, orders.Save(ctx, dudaOrder))

	seedExpense(t, db, "Aluguel", "100", day(2024, 3, 2))
	seedExpense(t, db, "Tinta", "40", day(2024, 4, 1))

	return f
}

func seedQuote(t *testing.T, db *gorm.DB, customer *partner.Customer, status trade.QuoteStatus) *trade.Quote {
	t.Helper()
	q, err := trade.NewQuote(customer.ID, "", nil)
	require.NoError(t, err)
	require.NoError(t, q.ChangeStatus(status))
	require.NoError(t, NewGormQuoteRepository(db).Save(context.Background(), q))
	return q
}

func seedExpense(t *testing.T, db *gorm.DB, description, amount string, date time.Time) {
	t.Helper()
	e, err := finance.NewExpense(finance.ExpenseInput{
		Description: description,
		Amount:      decimal.RequireFromString(amount),
		Date:        &date,
		Category:    "Geral",
	})
	require.NoError(t, err)
	require.NoError(t, NewGormExpenseRepository(db).Save(context.Background(), e))
}

func TestGormReportRepository_Sums(t *testing.T) {
	f := setupReportFixture(t)
	ctx := context.Background()

	payments, err := f.repo.SumPayments(ctx, f.march)
	require.NoError(t, err)
	assert.Equal(t, "30.00", payments.StringFixed(2))

	expenses, err := f.repo.SumExpenses(ctx, f.march)
	require.NoError(t, err)
	assert.Equal(t, "100.00", expenses.StringFixed(2))

	production, err := f.repo.SumProductionCosts(ctx, f.march)
	require.NoError(t, err)
	assert.Equal(t, "8.00", production.StringFixed(2))

	t.Run("empty period sums to zero", func(t *testing.T) {
		empty := report.Period{From: day(2020, 1, 1), To: day(2020, 1, 31)}
		sum, err := f.repo.SumPayments(ctx, empty)
		require.NoError(t, err)
		assert.True(t, sum.IsZero())
	})
}

func TestGormReportRepository_Receivable(t *testing.T) {
	f := setupReportFixture(t)
	ctx := context.Background()

	global, err := f.repo.Receivable(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "95.00", global.StringFixed(2))

	month, err := f.repo.Receivable(ctx, &f.march)
	require.NoError(t, err)
	assert.Equal(t, "90.00", month.StringFixed(2))
}

func TestGormReportRepository_Counts(t *testing.T) {
	f := setupReportFixture(t)
	ctx := context.Background()

	quotes, err := f.repo.CountQuotesByStatus(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, []report.StatusCount{{Status: "Approved", Count: 1}, {Status: "Open", Count: 1}}, quotes)

	converted, err := f.repo.CountConvertedQuotes(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), converted)

	production, err := f.repo.CountOrdersByProductionStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, []report.StatusCount{{Status: trade.ProductionStatusAwaiting, Count: 3}}, production)
}

func TestGormReportRepository_ExpenseLists(t *testing.T) {
	f := setupReportFixture(t)
	ctx := context.Background()

	expenses, err := f.repo.ListExpenses(ctx, f.march)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, report.SourceExpense, expenses[0].Source)
	assert.Equal(t, "Aluguel", expenses[0].Description)

	costs, err := f.repo.ListProductionCosts(ctx, f.march)
	require.NoError(t, err)
	require.Len(t, costs, 1)
	assert.Equal(t, report.SourceProduction, costs[0].Source)
	assert.Equal(t, f.anaOrder.ID, costs[0].ReferenceID)
	assert.Equal(t, "Ana", costs[0].Description)
	assert.Equal(t, "8.00", costs[0].Amount.StringFixed(2))
}

func TestGormReportRepository_Revenue(t *testing.T) {
	f := setupReportFixture(t)
	ctx := context.Background()

	byMethod, err := f.repo.RevenueByMethod(ctx, f.march)
	require.NoError(t, err)
	require.Len(t, byMethod, 2)
	assert.Equal(t, "PIX", byMethod[0].Method)
	assert.Equal(t, int64(1), byMethod[0].Count)
	assert.Equal(t, "20.00", byMethod[0].Total.StringFixed(2))
	assert.Equal(t, "CASH", byMethod[1].Method)

	monthly, err := f.repo.MonthlyRevenue(ctx, report.Period{From: day(2024, 1, 1), To: f.march.To})
	require.NoError(t, err)
	require.Len(t, monthly, 2)
	assert.Equal(t, "2024-02", monthly[0].Month)
	assert.Equal(t, "5.00", monthly[0].Total.StringFixed(2))
	assert.Equal(t, "2024-03", monthly[1].Month)
	assert.Equal(t, "30.00", monthly[1].Total.StringFixed(2))
}

func TestGormReportRepository_TopProducts(t *testing.T) {
	f := setupReportFixture(t)

	products, err := f.repo.TopProducts(context.Background(), f.march.From, 5)
	require.NoError(t, err)
	require.Len(t, products, 2)

	// tied on quantity, the earliest first sale wins
	assert.Equal(t, "Adesivo", products[0].ProductName)
	assert.Equal(t, int64(10), products[0].Quantity)
	assert.True(t, day(2024, 3, 5).Equal(products[0].FirstSoldAt))
	assert.Equal(t, "Banner", products[1].ProductName)

	limited, err := f.repo.TopProducts(context.Background(), f.march.From, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestGormReportRepository_Customers(t *testing.T) {
	f := setupReportFixture(t)
	ctx := context.Background()

	top, err := f.repo.TopCustomers(ctx, nil, 10)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, "Bia", top[0].CustomerName)
	assert.Equal(t, "100.00", top[0].Total.StringFixed(2))
	assert.Equal(t, int64(1), top[0].OrderCount)
	assert.Equal(t, "Ana", top[1].CustomerName)

	inactive, err := f.repo.InactiveCustomers(ctx, day(2024, 1, 1))
	require.NoError(t, err)
	require.Len(t, inactive, 2)
	assert.Equal(t, "Caio", inactive[0].Name)
	assert.Nil(t, inactive[0].LastOrderAt)
	assert.Equal(t, "Duda", inactive[1].Name)
	require.NotNil(t, inactive[1].LastOrderAt)
	assert.True(t, day(2023, 12, 1).Equal(*inactive[1].LastOrderAt))
}

func TestGormReportRepository_OverdueAndMargins(t *testing.T) {
	f := setupReportFixture(t)
	ctx := context.Background()

	overdue, err := f.repo.OverdueOrders(ctx, day(2024, 3, 20))
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, f.biaOrder.ID, overdue[0].OrderID)
	assert.Equal(t, "Bia", overdue[0].CustomerName)
	assert.Equal(t, "10.00", overdue[0].Paid.StringFixed(2))

	notYet, err := f.repo.OverdueOrders(ctx, day(2024, 3, 14))
	require.NoError(t, err)
	assert.Empty(t, notYet)

	margins, err := f.repo.OrderMargins(ctx, f.march)
	require.NoError(t, err)
	require.Len(t, margins, 2)
	assert.Equal(t, f.biaOrder.ID, margins[0].OrderID)
	assert.Equal(t, "8.00", margins[1].ProductionCost.StringFixed(2))

	recent, err := f.repo.RecentOrders(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, f.biaOrder.ID, recent[0].OrderID)
	assert.Equal(t, "PARTIAL", recent[0].PaymentStatus)
}

func TestGormReportRepository_ProductDemand(t *testing.T) {
	f := setupReportFixture(t)

	demand, err := f.repo.ProductDemand(context.Background(), f.march.From)
	require.NoError(t, err)
	require.Len(t, demand, 3)

	assert.Equal(t, "Caneca", demand[0].ProductName)
	assert.Zero(t, demand[0].QuantitySold)
	assert.Nil(t, demand[0].LastSoldAt)

	assert.Equal(t, "Adesivo", demand[1].ProductName)
	assert.Equal(t, int64(10), demand[1].QuantitySold)
	require.NotNil(t, demand[1].LastSoldAt)
	assert.True(t, day(2024, 3, 5).Equal(*demand[1].LastSoldAt))
	assert.Equal(t, "Banner", demand[2].ProductName)
}
