package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Repository defines the aggregate queries behind the reports.
// Period bounds are inclusive.
type Repository interface {
	// SumPayments totals payments received in the period, by paid_at
	SumPayments(ctx context.Context, p Period) (decimal.Decimal, error)

	// SumExpenses totals general expenses in the period, by date
	SumExpenses(ctx context.Context, p Period) (decimal.Decimal, error)

	// SumProductionCosts totals order production costs, by order created_at
	SumProductionCosts(ctx context.Context, p Period) (decimal.Decimal, error)

	// Receivable returns Σ total − Σ payments over orders that are not PAID.
	// A nil period covers every order, otherwise orders created in the period.
	Receivable(ctx context.Context, p *Period) (decimal.Decimal, error)

	// CountQuotesByStatus counts quotes per status. A nil period covers every quote.
	CountQuotesByStatus(ctx context.Context, p *Period) ([]StatusCount, error)

	// CountConvertedQuotes counts quotes created in the period that have an order
	CountConvertedQuotes(ctx context.Context, p *Period) (int64, error)

	// CountOrdersByProductionStatus counts orders per production status
	CountOrdersByProductionStatus(ctx context.Context) ([]StatusCount, error)

	// ListExpenses returns general expenses in the period
	ListExpenses(ctx context.Context, p Period) ([]ExpenseEntry, error)

	// ListProductionCosts returns orders created in the period with production_cost > 0
	ListProductionCosts(ctx context.Context, p Period) ([]ExpenseEntry, error)

	// RecentOrders returns the latest orders with customer names
	RecentOrders(ctx context.Context, limit int) ([]RecentOrder, error)

	// RevenueByMethod groups payments in the period by method
	RevenueByMethod(ctx context.Context, p Period) ([]RevenueByMethod, error)

	// MonthlyRevenue groups payments in the period by YYYY-MM.
	// Months without payments are absent.
	MonthlyRevenue(ctx context.Context, p Period) ([]MonthlyRevenue, error)

	// TopProducts ranks products by quantity sold on orders created since the given time.
	// Ties go to the earliest first sale, then the product name.
	TopProducts(ctx context.Context, since time.Time, limit int) ([]TopProduct, error)

	// TopCustomers ranks customers by Σ order total. A nil period covers every order.
	TopCustomers(ctx context.Context, p *Period, limit int) ([]TopCustomer, error)

	// InactiveCustomers returns customers without orders since the given time
	InactiveCustomers(ctx context.Context, since time.Time) ([]InactiveCustomer, error)

	// OverdueOrders returns orders due before now whose production is still open
	OverdueOrders(ctx context.Context, now time.Time) ([]OverdueOrder, error)

	// OrderMargins returns total and production cost for orders created in the period
	OrderMargins(ctx context.Context, p Period) ([]OrderMargin, error)

	// ProductDemand returns every product with its quantity sold on orders created since the given time
	ProductDemand(ctx context.Context, since time.Time) ([]ProductDemand, error)
}
