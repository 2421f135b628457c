package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense entry sources
const (
	SourceExpense    = "EXPENSE"
	SourceProduction = "PRODUCTION"
)

// DashboardSummary is the month-to-date overview
type DashboardSummary struct {
	Period             Period          `json:"period"`
	MonthRevenue       decimal.Decimal `json:"month_revenue"`
	MonthExpenses      decimal.Decimal `json:"month_expenses"`
	MonthProfit        decimal.Decimal `json:"month_profit"`
	MonthReceivable    decimal.Decimal `json:"month_receivable"`
	GlobalReceivable   decimal.Decimal `json:"global_receivable"`
	OpenQuotes         int64           `json:"open_quotes"`
	OrdersInProduction int64           `json:"orders_in_production"`
}

// ExpenseEntry is one row of the consolidated expense list
type ExpenseEntry struct {
	Source      string          `json:"source"`
	ReferenceID uuid.UUID       `json:"reference_id"`
	Description string          `json:"description"`
	Category    string          `json:"category,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
}

// ConsolidatedExpenses merges general expenses with order production costs
type ConsolidatedExpenses struct {
	Period          Period          `json:"period"`
	Entries         []ExpenseEntry  `json:"entries"`
	TotalExpenses   decimal.Decimal `json:"total_expenses"`
	TotalProduction decimal.Decimal `json:"total_production"`
	Total           decimal.Decimal `json:"total"`
}

// RecentOrder is a row of the recent orders widget
type RecentOrder struct {
	OrderID          uuid.UUID       `json:"order_id"`
	CustomerID       uuid.UUID       `json:"customer_id"`
	CustomerName     string          `json:"customer_name"`
	Total            decimal.Decimal `json:"total"`
	ProductionStatus string          `json:"production_status"`
	PaymentStatus    string          `json:"payment_status"`
	CreatedAt        time.Time       `json:"created_at"`
}

// RevenueByMethod is the cash received through one payment method
type RevenueByMethod struct {
	Method string          `json:"method"`
	Count  int64           `json:"count"`
	Total  decimal.Decimal `json:"total"`
}

// MonthlyRevenue is the cash received in one YYYY-MM month
type MonthlyRevenue struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// StatusCount counts records sharing a status label
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// TopProduct ranks a product by quantity sold
type TopProduct struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int64     `json:"quantity"`
	FirstSoldAt time.Time `json:"first_sold_at"`
}

// TopCustomer ranks a customer by ordered value
type TopCustomer struct {
	CustomerID   uuid.UUID       `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	OrderCount   int64           `json:"order_count"`
	Total        decimal.Decimal `json:"total"`
}

// InactiveCustomer is a customer without recent orders.
// LastOrderAt is nil when the customer never ordered.
type InactiveCustomer struct {
	CustomerID   uuid.UUID  `json:"customer_id"`
	Name         string     `json:"name"`
	Email        string     `json:"email,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	LastOrderAt  *time.Time `json:"last_order_at"`
	DaysInactive *int       `json:"days_inactive"`
}

// OverdueOrder is an order past its due date that is still in production
type OverdueOrder struct {
	OrderID          uuid.UUID       `json:"order_id"`
	CustomerID       uuid.UUID       `json:"customer_id"`
	CustomerName     string          `json:"customer_name"`
	DueDate          time.Time       `json:"due_date"`
	ProductionStatus string          `json:"production_status"`
	DaysOverdue      int             `json:"days_overdue"`
	Total            decimal.Decimal `json:"total"`
	Paid             decimal.Decimal `json:"paid"`
	Receivable       decimal.Decimal `json:"receivable"`
}

// OrderMargin is the profit of one order
type OrderMargin struct {
	OrderID        uuid.UUID       `json:"order_id"`
	CustomerName   string          `json:"customer_name"`
	CreatedAt      time.Time       `json:"created_at"`
	Total          decimal.Decimal `json:"total"`
	ProductionCost decimal.Decimal `json:"production_cost"`
	Profit         decimal.Decimal `json:"profit"`
	MarginPercent  decimal.Decimal `json:"margin_percent"`
}

// ProfitMargins lists order margins with overall totals
type ProfitMargins struct {
	Period        Period          `json:"period"`
	Orders        []OrderMargin   `json:"orders"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	TotalProfit   decimal.Decimal `json:"total_profit"`
	MarginPercent decimal.Decimal `json:"margin_percent"`
}

// ProductDemand is the quantity sold of a product over a window
type ProductDemand struct {
	ProductID    uuid.UUID  `json:"product_id"`
	ProductName  string     `json:"product_name"`
	PricingMode  string     `json:"pricing_mode"`
	QuantitySold int64      `json:"quantity_sold"`
	LastSoldAt   *time.Time `json:"last_sold_at"`
}

// QuoteConversion summarizes how many quotes turned into orders
type QuoteConversion struct {
	Period         Period          `json:"period"`
	Total          int64           `json:"total"`
	Open           int64           `json:"open"`
	Approved       int64           `json:"approved"`
	Rejected       int64           `json:"rejected"`
	Converted      int64           `json:"converted"`
	ConversionRate decimal.Decimal `json:"conversion_rate"`
}

// RevenueReport is the content of the revenue PDF
type RevenueReport struct {
	Period   Period               `json:"period"`
	Revenue  decimal.Decimal      `json:"revenue"`
	ByMethod []RevenueByMethod    `json:"by_method"`
	Trend    []MonthlyRevenue     `json:"trend"`
	Expenses ConsolidatedExpenses `json:"expenses"`
	Profit   decimal.Decimal      `json:"profit"`
}

// MarginPercent returns profit / revenue × 100 rounded to 2 places, or 0 for zero revenue
func MarginPercent(profit, revenue decimal.Decimal) decimal.Decimal {
	if revenue.IsZero() {
		return decimal.Zero
	}
	return profit.Div(revenue).Mul(decimal.NewFromInt(100)).Round(2)
}
