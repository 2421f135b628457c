package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/printdesk/backend/internal/domain/report"
	"github.com/printdesk/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormReportRepository implements the report queries using GORM.
// Aggregation happens in SQL; money sums come back as decimals.
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// closedProductionStatuses end the production workflow
var closedProductionStatuses = []string{trade.ProductionStatusFinished, trade.ProductionStatusDelivered}

// SumPayments totals payments received in the period, by paid_at
func (r *GormReportRepository) SumPayments(ctx context.Context, p report.Period) (decimal.Decimal, error) {
	return r.sum(r.db.WithContext(ctx).Table("payments").
		Select("COALESCE(SUM(amount), 0) as total").
		Where("paid_at BETWEEN ? AND ?", p.From, p.To))
}

// SumExpenses totals general expenses in the period, by date
func (r *GormReportRepository) SumExpenses(ctx context.Context, p report.Period) (decimal.Decimal, error) {
	return r.sum(r.db.WithContext(ctx).Table("expenses").
		Select("COALESCE(SUM(amount), 0) as total").
		Where("date BETWEEN ? AND ?", p.From, p.To))
}

// SumProductionCosts totals order production costs, by order created_at
func (r *GormReportRepository) SumProductionCosts(ctx context.Context, p report.Period) (decimal.Decimal, error) {
	return r.sum(r.db.WithContext(ctx).Table("orders").
		Select("COALESCE(SUM(production_cost), 0) as total").
		Where("created_at BETWEEN ? AND ?", p.From, p.To))
}

// Receivable returns Σ total − Σ payments over orders that are not PAID
func (r *GormReportRepository) Receivable(ctx context.Context, p *report.Period) (decimal.Decimal, error) {
	db := r.db.WithContext(ctx)
	query := db.Table("orders o").
		Select("COALESCE(SUM(o.total - COALESCE(paid.amount, 0)), 0) as total").
		Joins("LEFT JOIN (?) paid ON paid.order_id = o.id", r.paidByOrder(db)).
		Where("o.payment_status <> ?", string(trade.PaymentStatusPaid))
	if p != nil {
		query = query.Where("o.created_at BETWEEN ? AND ?", p.From, p.To)
	}
	return r.sum(query)
}

// CountQuotesByStatus counts quotes per status
func (r *GormReportRepository) CountQuotesByStatus(ctx context.Context, p *report.Period) ([]report.StatusCount, error) {
	query := r.db.WithContext(ctx).Table("quotes").
		Select("status, COUNT(*) as count").
		Group("status").
		Order("status ASC")
	if p != nil {
		query = query.Where("created_at BETWEEN ? AND ?", p.From, p.To)
	}

	var counts []report.StatusCount
	if err := query.Scan(&counts).Error; err != nil {
		return nil, err
	}
	return counts, nil
}

// CountConvertedQuotes counts quotes created in the period that have an order
func (r *GormReportRepository) CountConvertedQuotes(ctx context.Context, p *report.Period) (int64, error) {
	query := r.db.WithContext(ctx).Table("quotes q").
		Joins("JOIN orders o ON o.quote_id = q.id")
	if p != nil {
		query = query.Where("q.created_at BETWEEN ? AND ?", p.From, p.To)
	}

	var count int64
	if err := query.Distinct("q.id").Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountOrdersByProductionStatus counts orders per production status
func (r *GormReportRepository) CountOrdersByProductionStatus(ctx context.Context) ([]report.StatusCount, error) {
	var counts []report.StatusCount
	if err := r.db.WithContext(ctx).Table("orders").
		Select("production_status as status, COUNT(*) as count").
		Group("production_status").
		Order("production_status ASC").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	return counts, nil
}

// ListExpenses returns general expenses in the period, newest first
func (r *GormReportRepository) ListExpenses(ctx context.Context, p report.Period) ([]report.ExpenseEntry, error) {
	type expenseRow struct {
		ID          uuid.UUID
		Description string
		Category    string
		Amount      decimal.Decimal
		Date        time.Time
	}

	var rows []expenseRow
	if err := r.db.WithContext(ctx).Table("expenses").
		Select("id, description, category, amount, date").
		Where("date BETWEEN ? AND ?", p.From, p.To).
		Order("date DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]report.ExpenseEntry, len(rows))
	for i, row := range rows {
		entries[i] = report.ExpenseEntry{
			Source:      report.SourceExpense,
			ReferenceID: row.ID,
			Description: row.Description,
			Category:    row.Category,
			Amount:      row.Amount,
			Date:        row.Date,
		}
	}
	return entries, nil
}

// ListProductionCosts returns orders created in the period with a production cost.
// The entry description is the customer name.
func (r *GormReportRepository) ListProductionCosts(ctx context.Context, p report.Period) ([]report.ExpenseEntry, error) {
	type costRow struct {
		ID             uuid.UUID
		CustomerName   string
		ProductionCost decimal.Decimal
		CreatedAt      time.Time
	}

	var rows []costRow
	if err := r.db.WithContext(ctx).Table("orders o").
		Select("o.id, c.name as customer_name, o.production_cost, o.created_at").
		Joins("JOIN customers c ON c.id = o.customer_id").
		Where("o.production_cost > 0").
		Where("o.created_at BETWEEN ? AND ?", p.From, p.To).
		Order("o.created_at DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]report.ExpenseEntry, len(rows))
	for i, row := range rows {
		entries[i] = report.ExpenseEntry{
			Source:      report.SourceProduction,
			ReferenceID: row.ID,
			Description: row.CustomerName,
			Amount:      row.ProductionCost,
			Date:        row.CreatedAt,
		}
	}
	return entries, nil
}

// RecentOrders returns the latest orders with customer names
func (r *GormReportRepository) RecentOrders(ctx context.Context, limit int) ([]report.RecentOrder, error) {
	var orders []report.RecentOrder
	if err := r.db.WithContext(ctx).Table("orders o").
		Select(`o.id as order_id, o.customer_id, c.name as customer_name, o.total,
			o.production_status, o.payment_status, o.created_at`).
		Joins("JOIN customers c ON c.id = o.customer_id").
		Order("o.created_at DESC").
		Order("o.id ASC").
		Limit(limit).
		Scan(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// RevenueByMethod groups payments in the period by method, largest total first
func (r *GormReportRepository) RevenueByMethod(ctx context.Context, p report.Period) ([]report.RevenueByMethod, error) {
	var rows []report.RevenueByMethod
	if err := r.db.WithContext(ctx).Table("payments").
		Select("method, COUNT(*) as count, COALESCE(SUM(amount), 0) as total").
		Where("paid_at BETWEEN ? AND ?", p.From, p.To).
		Group("method").
		Order("total DESC").
		Order("method ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// MonthlyRevenue groups payments in the period by YYYY-MM
func (r *GormReportRepository) MonthlyRevenue(ctx context.Context, p report.Period) ([]report.MonthlyRevenue, error) {
	db := r.db.WithContext(ctx)
	month := monthExpression(db, "paid_at")

	var rows []report.MonthlyRevenue
	if err := db.Table("payments").
		Select(month+" as month, COALESCE(SUM(amount), 0) as total").
		Where("paid_at BETWEEN ? AND ?", p.From, p.To).
		Group(month).
		Order("month ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// TopProducts ranks products by quantity sold on orders created since the given time
func (r *GormReportRepository) TopProducts(ctx context.Context, since time.Time, limit int) ([]report.TopProduct, error) {
	type productRow struct {
		ProductID   uuid.UUID
		ProductName string
		Quantity    int64
		FirstSoldAt nullTime
	}

	var rows []productRow
	if err := r.db.WithContext(ctx).Table("order_lines ol").
		Select(`p.id as product_id, p.name as product_name,
			COALESCE(SUM(ol.quantity), 0) as quantity, MIN(o.created_at) as first_sold_at`).
		Joins("JOIN orders o ON o.id = ol.order_id").
		Joins("JOIN products p ON p.id = ol.product_id").
		Where("o.created_at >= ?", since).
		Group("p.id, p.name").
		Order("quantity DESC").
		Order("first_sold_at ASC").
		Order("p.name ASC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	products := make([]report.TopProduct, len(rows))
	for i, row := range rows {
		products[i] = report.TopProduct{
			ProductID:   row.ProductID,
			ProductName: row.ProductName,
			Quantity:    row.Quantity,
			FirstSoldAt: row.FirstSoldAt.Time,
		}
	}
	return products, nil
}

// TopCustomers ranks customers by Σ order total
func (r *GormReportRepository) TopCustomers(ctx context.Context, p *report.Period, limit int) ([]report.TopCustomer, error) {
	query := r.db.WithContext(ctx).Table("orders o").
		Select("c.id as customer_id, c.name as customer_name, COUNT(o.id) as order_count, COALESCE(SUM(o.total), 0) as total").
		Joins("JOIN customers c ON c.id = o.customer_id")
	if p != nil {
		query = query.Where("o.created_at BETWEEN ? AND ?", p.From, p.To)
	}

	var customers []report.TopCustomer
	if err := query.
		Group("c.id, c.name").
		Order("total DESC").
		Order("c.name ASC").
		Limit(limit).
		Scan(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// InactiveCustomers returns customers without orders since the given time,
// those who never ordered first, then the longest inactive
func (r *GormReportRepository) InactiveCustomers(ctx context.Context, since time.Time) ([]report.InactiveCustomer, error) {
	type customerRow struct {
		CustomerID  uuid.UUID
		Name        string
		Email       string
		Phone       string
		LastOrderAt nullTime
	}

	db := r.db.WithContext(ctx)
	lastOrders := db.Table("orders").
		Select("customer_id, MAX(created_at) as last_order_at").
		Group("customer_id")

	var rows []customerRow
	if err := db.Table("customers c").
		Select("c.id as customer_id, c.name, c.email, c.phone, lo.last_order_at").
		Joins("LEFT JOIN (?) lo ON lo.customer_id = c.id", lastOrders).
		Where("lo.last_order_at IS NULL OR lo.last_order_at < ?", since).
		Order("CASE WHEN lo.last_order_at IS NULL THEN 0 ELSE 1 END").
		Order("lo.last_order_at ASC").
		Order("c.name ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	customers := make([]report.InactiveCustomer, len(rows))
	for i, row := range rows {
		customers[i] = report.InactiveCustomer{
			CustomerID:  row.CustomerID,
			Name:        row.Name,
			Email:       row.Email,
			Phone:       row.Phone,
			LastOrderAt: row.LastOrderAt.Ptr(),
		}
	}
	return customers, nil
}

// OverdueOrders returns orders due before now whose production is still open, oldest due date first
func (r *GormReportRepository) OverdueOrders(ctx context.Context, now time.Time) ([]report.OverdueOrder, error) {
	db := r.db.WithContext(ctx)

	var orders []report.OverdueOrder
	if err := db.Table("orders o").
		Select(`o.id as order_id, o.customer_id, c.name as customer_name, o.due_date,
			o.production_status, o.total, COALESCE(paid.amount, 0) as paid`).
		Joins("JOIN customers c ON c.id = o.customer_id").
		Joins("LEFT JOIN (?) paid ON paid.order_id = o.id", r.paidByOrder(db)).
		Where("o.due_date IS NOT NULL AND o.due_date < ?", now).
		Where("o.production_status NOT IN ?", closedProductionStatuses).
		Order("o.due_date ASC").
		Scan(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// OrderMargins returns total and production cost for orders created in the period, newest first
func (r *GormReportRepository) OrderMargins(ctx context.Context, p report.Period) ([]report.OrderMargin, error) {
	var margins []report.OrderMargin
	if err := r.db.WithContext(ctx).Table("orders o").
		Select("o.id as order_id, c.name as customer_name, o.created_at, o.total, o.production_cost").
		Joins("JOIN customers c ON c.id = o.customer_id").
		Where("o.created_at BETWEEN ? AND ?", p.From, p.To).
		Order("o.created_at DESC").
		Scan(&margins).Error; err != nil {
		return nil, err
	}
	return margins, nil
}

// ProductDemand returns every product with its quantity sold on orders created since the given time.
// LastSoldAt is the latest sale ever, so products idle for the whole window still show it.
func (r *GormReportRepository) ProductDemand(ctx context.Context, since time.Time) ([]report.ProductDemand, error) {
	type demandRow struct {
		ProductID    uuid.UUID
		ProductName  string
		PricingMode  string
		QuantitySold int64
		LastSoldAt   nullTime
	}

	var rows []demandRow
	if err := r.db.WithContext(ctx).Table("products p").
		Select(`p.id as product_id, p.name as product_name, p.pricing_mode,
			COALESCE(SUM(CASE WHEN o.created_at >= ? THEN ol.quantity ELSE 0 END), 0) as quantity_sold,
			MAX(o.created_at) as last_sold_at`, since).
		Joins("LEFT JOIN order_lines ol ON ol.product_id = p.id").
		Joins("LEFT JOIN orders o ON o.id = ol.order_id").
		Group("p.id, p.name, p.pricing_mode").
		Order("quantity_sold ASC").
		Order("p.name ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	demand := make([]report.ProductDemand, len(rows))
	for i, row := range rows {
		demand[i] = report.ProductDemand{
			ProductID:    row.ProductID,
			ProductName:  row.ProductName,
			PricingMode:  row.PricingMode,
			QuantitySold: row.QuantitySold,
			LastSoldAt:   row.LastSoldAt.Ptr(),
		}
	}
	return demand, nil
}

// paidByOrder is the subquery of cumulative payments per order
func (r *GormReportRepository) paidByOrder(db *gorm.DB) *gorm.DB {
	return db.Table("payments").
		Select("order_id, SUM(amount) as amount").
		Group("order_id")
}

func (r *GormReportRepository) sum(query *gorm.DB) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := query.Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// monthExpression returns the SQL that formats a timestamp column as YYYY-MM.
// SQLite stores timestamps as text that starts with the date.
func monthExpression(db *gorm.DB, column string) string {
	if db.Dialector.Name() == "sqlite" {
		return "substr(" + column + ", 1, 7)"
	}
	return "to_char(" + column + ", 'YYYY-MM')"
}

// Ensure GormReportRepository implements report.Repository
var _ report.Repository = (*GormReportRepository)(nil)
