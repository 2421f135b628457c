package report

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/printdesk/backend/internal/domain/report"
	"github.com/printdesk/backend/internal/domain/shared"
	"github.com/printdesk/backend/internal/domain/trade"
	"github.com/printdesk/backend/internal/infrastructure/cache"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const dashboardCacheKey = "report:dashboard"

// Defaults for the report parameters
const (
	DefaultRecentOrders      = 5
	DefaultTopLimit          = 5
	DefaultTrendMonths       = 6
	DefaultInactiveDays      = 90
	DefaultLowDemandDays     = 30
	DefaultLowDemandMaxUnits = 0
)

// ReportServiceConfig holds the report service settings
type ReportServiceConfig struct {
	DashboardTTL time.Duration
}

// ReportService answers the dashboard and report queries
type ReportService struct {
	repo   report.Repository
	cache  cache.Cache
	config ReportServiceConfig
	logger *zap.Logger
	now    func() time.Time
}

// NewReportService creates a new ReportService
func NewReportService(repo report.Repository, c cache.Cache, config ReportServiceConfig, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if c == nil {
		c = cache.NewInMemoryCache()
	}
	return &ReportService{
		repo:   repo,
		cache:  c,
		config: config,
		logger: logger,
		now:    time.Now,
	}
}

// Dashboard returns the month-to-date overview. Results are cached for DashboardTTL.
func (s *ReportService) Dashboard(ctx context.Context) (*report.DashboardSummary, error) {
	if s.config.DashboardTTL > 0 {
		var cached report.DashboardSummary
		found, err := s.cache.Get(ctx, dashboardCacheKey, &cached)
		if err != nil {
			s.logger.Warn("Dashboard cache read failed", zap.Error(err))
		}
		if found {
			return &cached, nil
		}
	}

	period := report.ThisMonth(s.now())

	revenue, err := s.repo.SumPayments(ctx, period)
	if err != nil {
		return nil, err
	}
	expenses, err := s.monthExpenses(ctx, period)
	if err != nil {
		return nil, err
	}
	monthReceivable, err := s.repo.Receivable(ctx, &period)
	if err != nil {
		return nil, err
	}
	globalReceivable, err := s.repo.Receivable(ctx, nil)
	if err != nil {
		return nil, err
	}
	quoteCounts, err := s.repo.CountQuotesByStatus(ctx, nil)
	if err != nil {
		return nil, err
	}
	productionCounts, err := s.repo.CountOrdersByProductionStatus(ctx)
	if err != nil {
		return nil, err
	}

	summary := &report.DashboardSummary{
		Period:           period,
		MonthRevenue:     shared.RoundMoney(revenue),
		MonthExpenses:    shared.RoundMoney(expenses),
		MonthProfit:      shared.RoundMoney(revenue.Sub(expenses)),
		MonthReceivable:  shared.RoundMoney(monthReceivable),
		GlobalReceivable: shared.RoundMoney(globalReceivable),
		OpenQuotes:       countOf(quoteCounts, string(trade.QuoteStatusOpen)),
	}
	for _, c := range productionCounts {
		if !isClosedProduction(c.Status) {
			summary.OrdersInProduction += c.Count
		}
	}

	if s.config.DashboardTTL > 0 {
		if err := s.cache.Set(ctx, dashboardCacheKey, summary, s.config.DashboardTTL); err != nil {
			s.logger.Warn("Dashboard cache write failed", zap.Error(err))
		}
	}
	return summary, nil
}

func (s *ReportService) monthExpenses(ctx context.Context, period report.Period) (decimal.Decimal, error) {
	general, err := s.repo.SumExpenses(ctx, period)
	if err != nil {
		return decimal.Zero, err
	}
	production, err := s.repo.SumProductionCosts(ctx, period)
	if err != nil {
		return decimal.Zero, err
	}
	return general.Add(production), nil
}

// Expenses merges general expenses and order production costs, newest first
func (s *ReportService) Expenses(ctx context.Context, filter PeriodFilter) (*report.ConsolidatedExpenses, error) {
	return s.consolidatedExpenses(ctx, filter.Resolve(s.now()))
}

func (s *ReportService) consolidatedExpenses(ctx context.Context, period report.Period) (*report.ConsolidatedExpenses, error) {
	general, err := s.repo.ListExpenses(ctx, period)
	if err != nil {
		return nil, err
	}
	production, err := s.repo.ListProductionCosts(ctx, period)
	if err != nil {
		return nil, err
	}

	result := &report.ConsolidatedExpenses{
		Period:          period,
		Entries:         make([]report.ExpenseEntry, 0, len(general)+len(production)),
		TotalExpenses:   decimal.Zero,
		TotalProduction: decimal.Zero,
	}
	for _, e := range general {
		e.Source = report.SourceExpense
		result.TotalExpenses = result.TotalExpenses.Add(e.Amount)
		result.Entries = append(result.Entries, e)
	}
	for _, e := range production {
		e.Source = report.SourceProduction
		result.TotalProduction = result.TotalProduction.Add(e.Amount)
		result.Entries = append(result.Entries, e)
	}

	sort.SliceStable(result.Entries, func(i, j int) bool {
		return result.Entries[i].Date.After(result.Entries[j].Date)
	})

	result.TotalExpenses = shared.RoundMoney(result.TotalExpenses)
	result.TotalProduction = shared.RoundMoney(result.TotalProduction)
	result.Total = result.TotalExpenses.Add(result.TotalProduction)
	return result, nil
}

// RecentOrders returns the latest orders
func (s *ReportService) RecentOrders(ctx context.Context, limit int) ([]report.RecentOrder, error) {
	return s.repo.RecentOrders(ctx, limitOrDefault(limit, DefaultRecentOrders))
}

// RevenueByMethod groups payments received in the period by method
func (s *ReportService) RevenueByMethod(ctx context.Context, filter PeriodFilter) ([]report.RevenueByMethod, error) {
	return s.repo.RevenueByMethod(ctx, filter.Resolve(s.now()))
}

// RevenueTrend returns payments per month for the last n months, oldest first.
// Months without payments are reported as zero.
func (s *ReportService) RevenueTrend(ctx context.Context, months int) ([]report.MonthlyRevenue, error) {
	months = limitOrDefault(months, DefaultTrendMonths)
	now := s.now()
	period := report.Period{
		From: report.MonthStart(now).AddDate(0, -(months - 1), 0),
		To:   now,
	}
	return s.trend(ctx, period, report.LastMonths(now, months))
}

func (s *ReportService) trend(ctx context.Context, period report.Period, keys []string) ([]report.MonthlyRevenue, error) {
	rows, err := s.repo.MonthlyRevenue(ctx, period)
	if err != nil {
		return nil, err
	}

	byMonth := make(map[string]decimal.Decimal, len(rows))
	for _, r := range rows {
		byMonth[r.Month] = byMonth[r.Month].Add(r.Total)
	}

	trend := make([]report.MonthlyRevenue, len(keys))
	for i, key := range keys {
		trend[i] = report.MonthlyRevenue{Month: key, Total: shared.RoundMoney(byMonth[key])}
	}
	return trend, nil
}

// ProductionStatus counts orders per production status
func (s *ReportService) ProductionStatus(ctx context.Context) ([]report.StatusCount, error) {
	counts, err := s.repo.CountOrdersByProductionStatus(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return productionRank(counts[i].Status) < productionRank(counts[j].Status)
	})
	return counts, nil
}

// TopProducts ranks products sold on orders created this month by quantity
func (s *ReportService) TopProducts(ctx context.Context, limit int) ([]report.TopProduct, error) {
	return s.repo.TopProducts(ctx, report.MonthStart(s.now()), limitOrDefault(limit, DefaultTopLimit))
}

// TopCustomers ranks customers by ordered value, optionally within a period
func (s *ReportService) TopCustomers(ctx context.Context, filter TopCustomersFilter) ([]report.TopCustomer, error) {
	return s.repo.TopCustomers(ctx, filter.Optional(s.now()), limitOrDefault(filter.Limit, DefaultTopLimit))
}

// InactiveCustomers lists customers with no order in the last n days, including those who never ordered
func (s *ReportService) InactiveCustomers(ctx context.Context, days int) ([]report.InactiveCustomer, error) {
	days = limitOrDefault(days, DefaultInactiveDays)
	now := s.now()

	customers, err := s.repo.InactiveCustomers(ctx, now.AddDate(0, 0, -days))
	if err != nil {
		return nil, err
	}
	for i := range customers {
		if last := customers[i].LastOrderAt; last != nil {
			d := daysBetween(*last, now)
			customers[i].DaysInactive = &d
		}
	}
	return customers, nil
}

// OverdueOrders lists orders past their due date whose production is not finished
func (s *ReportService) OverdueOrders(ctx context.Context) ([]report.OverdueOrder, error) {
	now := s.now()
	orders, err := s.repo.OverdueOrders(ctx, now)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].DaysOverdue = daysBetween(orders[i].DueDate, now)
		orders[i].Receivable = shared.RoundMoney(orders[i].Total.Sub(orders[i].Paid))
	}
	return orders, nil
}

// ProfitMargins computes profit and margin per order created in the period, with totals
func (s *ReportService) ProfitMargins(ctx context.Context, filter PeriodFilter) (*report.ProfitMargins, error) {
	period := filter.Resolve(s.now())
	orders, err := s.repo.OrderMargins(ctx, period)
	if err != nil {
		return nil, err
	}

	result := &report.ProfitMargins{
		Period:       period,
		Orders:       orders,
		TotalRevenue: decimal.Zero,
		TotalCost:    decimal.Zero,
	}
	for i := range result.Orders {
		o := &result.Orders[i]
		o.Profit = shared.RoundMoney(o.Total.Sub(o.ProductionCost))
		o.MarginPercent = report.MarginPercent(o.Profit, o.Total)
		result.TotalRevenue = result.TotalRevenue.Add(o.Total)
		result.TotalCost = result.TotalCost.Add(o.ProductionCost)
	}
	result.TotalRevenue = shared.RoundMoney(result.TotalRevenue)
	result.TotalCost = shared.RoundMoney(result.TotalCost)
	result.TotalProfit = result.TotalRevenue.Sub(result.TotalCost)
	result.MarginPercent = report.MarginPercent(result.TotalProfit, result.TotalRevenue)
	return result, nil
}

// LowDemandProducts lists products whose quantity sold in the last n days is at most threshold, least sold first
func (s *ReportService) LowDemandProducts(ctx context.Context, filter LowDemandFilter) ([]report.ProductDemand, error) {
	days := limitOrDefault(filter.Days, DefaultLowDemandDays)
	threshold := int64(DefaultLowDemandMaxUnits)
	if filter.Threshold != nil {
		threshold = *filter.Threshold
	}

	demand, err := s.repo.ProductDemand(ctx, s.now().AddDate(0, 0, -days))
	if err != nil {
		return nil, err
	}

	low := make([]report.ProductDemand, 0, len(demand))
	for _, d := range demand {
		if d.QuantitySold <= threshold {
			low = append(low, d)
		}
	}
	sort.SliceStable(low, func(i, j int) bool {
		if low[i].QuantitySold != low[j].QuantitySold {
			return low[i].QuantitySold < low[j].QuantitySold
		}
		return strings.ToLower(low[i].ProductName) < strings.ToLower(low[j].ProductName)
	})
	return low, nil
}

// QuoteConversion counts quotes per status and how many became orders
func (s *ReportService) QuoteConversion(ctx context.Context, filter PeriodFilter) (*report.QuoteConversion, error) {
	period := filter.Optional(s.now())

	counts, err := s.repo.CountQuotesByStatus(ctx, period)
	if err != nil {
		return nil, err
	}
	converted, err := s.repo.CountConvertedQuotes(ctx, period)
	if err != nil {
		return nil, err
	}

	result := &report.QuoteConversion{
		Open:      countOf(counts, string(trade.QuoteStatusOpen)),
		Approved:  countOf(counts, string(trade.QuoteStatusApproved)),
		Rejected:  countOf(counts, string(trade.QuoteStatusRejected)),
		Converted: converted,
	}
	if period != nil {
		result.Period = *period
	}
	for _, c := range counts {
		result.Total += c.Count
	}
	result.ConversionRate = report.MarginPercent(decimal.NewFromInt(converted), decimal.NewFromInt(result.Total))
	return result, nil
}

// RevenueReport gathers the content of the revenue PDF for the period
func (s *ReportService) RevenueReport(ctx context.Context, filter PeriodFilter) (*report.RevenueReport, error) {
	period := filter.Resolve(s.now())

	revenue, err := s.repo.SumPayments(ctx, period)
	if err != nil {
		return nil, err
	}
	byMethod, err := s.repo.RevenueByMethod(ctx, period)
	if err != nil {
		return nil, err
	}
	trend, err := s.trend(ctx, period, monthsCovering(period))
	if err != nil {
		return nil, err
	}
	expenses, err := s.consolidatedExpenses(ctx, period)
	if err != nil {
		return nil, err
	}

	revenue = shared.RoundMoney(revenue)
	return &report.RevenueReport{
		Period:   period,
		Revenue:  revenue,
		ByMethod: byMethod,
		Trend:    trend,
		Expenses: *expenses,
		Profit:   revenue.Sub(expenses.Total),
	}, nil
}

func countOf(counts []report.StatusCount, status string) int64 {
	for _, c := range counts {
		if c.Status == status {
			return c.Count
		}
	}
	return 0
}

func isClosedProduction(status string) bool {
	return status == trade.ProductionStatusFinished || status == trade.ProductionStatusDelivered
}

// productionRank orders the known production statuses along the workflow; custom labels go last
func productionRank(status string) int {
	switch status {
	case trade.ProductionStatusAwaiting:
		return 0
	case trade.ProductionStatusInProduction:
		return 1
	case trade.ProductionStatusFinished:
		return 2
	case trade.ProductionStatusDelivered:
		return 3
	default:
		return 4
	}
}

func limitOrDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func daysBetween(from, to time.Time) int {
	if !to.After(from) {
		return 0
	}
	return int(to.Sub(from).Hours() / 24)
}

// monthsCovering returns the YYYY-MM keys from the period start month to the end month
func monthsCovering(p report.Period) []string {
	var keys []string
	end := report.MonthStart(p.To)
	for m := report.MonthStart(p.From); !m.After(end); m = m.AddDate(0, 1, 0) {
		keys = append(keys, report.MonthKey(m))
		if len(keys) >= 120 {
			break
		}
	}
	return keys
}
