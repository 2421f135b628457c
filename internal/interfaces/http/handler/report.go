package handler

import (
	"github.com/gin-gonic/gin"
	printingapp "github.com/printdesk/backend/internal/application/printing"
	reportapp "github.com/printdesk/backend/internal/application/report"
)

// ReportHandler handles dashboard and report endpoints
type ReportHandler struct {
	BaseHandler
	reportService   *reportapp.ReportService
	documentService *printingapp.DocumentService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService, documentService *printingapp.DocumentService) *ReportHandler {
	return &ReportHandler{
		reportService:   reportService,
		documentService: documentService,
	}
}

// Dashboard godoc
// @ID           getDashboard
// @Summary      Month-to-date dashboard
// @Description  Revenue, expenses, profit and receivables for this month, plus open quotes and orders in production
// @Tags         reports
// @Produce      json
// @Success      200 {object} APIResponse[report.DashboardSummary]
// @Security     BearerAuth
// @Router       /reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *gin.Context) {
	summary, err := h.reportService.Dashboard(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, summary)
}

// Expenses godoc
// @ID           getConsolidatedExpenses
// @Summary      Consolidated expenses
// @Description  General expenses and order production costs in one list, newest first. Defaults to this month.
// @Tags         reports
// @Produce      json
// @Param        from query string false "First day, YYYY-MM-DD"
// @Param        to query string false "Last day, YYYY-MM-DD"
// @Success      200 {object} APIResponse[report.ConsolidatedExpenses]
// @Failure      400 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /reports/expenses [get]
func (h *ReportHandler) Expenses(c *gin.Context) {
	period, ok := h.bindPeriod(c)
	if !ok {
		return
	}

	expenses, err := h.reportService.Expenses(c.Request.Context(), period)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, expenses)
}

// RecentOrders godoc
// @ID           getRecentOrders
// @Summary      Latest orders
// @Tags         reports
// @Produce      json
// @Param        limit query int false "Number of orders" default(5) maximum(100)
// @Success      200 {object} APIResponse[[]report.RecentOrder]
// @Failure      400 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /reports/recent-orders [get]
func (h *ReportHandler) RecentOrders(c *gin.Context) {
	var filter reportapp.LimitFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	orders, err := h.reportService.RecentOrders(c.Request.Context(), filter.Limit)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, orders)
}

// RevenueByMethod godoc
// @ID           getRevenueByMethod
// @Summary      Revenue by payment method
// @Description  Payments received in the period grouped by method. Defaults to this month.
// @Tags         reports
// @Produce      json
// @Param        from query string false "First day, YYYY-MM-DD"
// @Param        to query string false "Last day, YYYY-MM-DD"
// @Success      200 {object} APIResponse[[]report.RevenueByMethod]
// @Failure      400 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /reports/revenue-by-method [get]
func (h *ReportHandler) RevenueByMethod(c *gin.Context) {
	period, ok := h.bindPeriod(c)
	if !ok {
		return
	}

	rows, err := h.reportService.RevenueByMethod(c.Request.Context(), period)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, rows)
}

// RevenueTrend godoc
// @ID           getRevenueTrend
// @Summary      Monthly revenue trend
// @Description  Payments per month for the last N months, oldest first. Empty months are zero.
// @Tags         reports
// @Produce      json
// @Param        months query int false "Number of months" default(6) maximum(36)
// @Success      200 {object} APIResponse[[]report.MonthlyRevenue]
// @Failure      400 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /reports/revenue-trend [get]
func (h *ReportHandler) RevenueTrend(c *gin.Context) {
	var filter reportapp.TrendFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	trend, err := h.reportService.RevenueTrend(c.Request.Context(), filter.Months)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, trend)
}

// ProductionStatus godoc
// @ID           getProductionStatusCounts
// @Summary      Orders per production status
// @Tags         reports
// @Produce      json
// @Success      200 {object} APIResponse[[]report.StatusCount]
// @Security     BearerAuth
// @Router       /reports/production-status [get]
func (h *ReportHandler) ProductionStatus(c *gin.Context) {
	counts, err := h.reportService.ProductionStatus(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, counts)
}

// TopProducts godoc
// @ID           getTopProducts
// @Summary      Best selling products this month
// @Tags         reports
// @Produce      json
// @Param        limit query int false "Number of products" default(5) maximum(100)
// @Success      200 {object} APIResponse[[]report.TopProduct]
// @Failure      400 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /reports/top-products [get]
func (h *ReportHandler) TopProducts(c *gin.Context) {
	var filter reportapp.LimitFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	products, err := h.reportService.TopProducts(c.Request.Context(), filter.Limit)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, products)
}

// TopCustomers godoc
// @ID           getTopCustomers
// @Summary      Customers by ordered value
// @Tags         reports
// @Produce      json
// @Param        limit query int false "Number of customers" default(5) maximum(100)
// @Param        from query string false "First day, YYYY-MM-DD"
// @Param        to query string false "Last day, YYYY-MM-DD"
// @Success      200 {object} APIResponse[[]report.TopCustomer]
// @Failure      400 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /reports/top-customers [get]
func (h *ReportHandler) TopCustomers(c *gin.Context) {
	var limit reportapp.LimitFilter
	if err := c.ShouldBindQuery(&limit); err != nil {
		h.ValidationError(c, err)
		return
	}
	period, ok := h.bindPeriod(c)
	if !ok {
		return
	}

	customers, err := h.reportService.TopCustomers(c.Request.Context(), reportapp.TopCustomersFilter{
		PeriodFilter: period,
		Limit:        limit.Limit,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, customers)
}

// InactiveCustomers godoc
// @ID           getInactiveCustomers
// @Summary      Customers without recent orders
// @Description  Includes customers who never ordered
// @Tags         reports
// @Produce      json
// @Param        days query int false "Days without orders" default(90)
// @Success      200 {object} APIResponse[[]report.InactiveCustomer]
// @Failure      400 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /reports/inactive-customers [get]
func (h *ReportHandler) InactiveCustomers(c *gin.Context) {
	var filter reportapp.InactiveCustomersFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	customers, err := h.reportService.InactiveCustomers(c.Request.Context(), filter.Days)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, customers)
}

// OverdueOrders godoc
// @ID           getOverdueOrders
// @Summary      Orders past their due date
// @Description  Excludes orders whose production is Finished or Delivered
// @Tags         reports
// @Produce      json
// @Success      200 {object} APIResponse[[]report.OverdueOrder]
// @Security     BearerAuth
// @Router       /reports/overdue-orders [get]
func (h *ReportHandler) OverdueOrders(c *gin.Context) {
	orders, err := h.reportService.OverdueOrders(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, orders)
}

// ProfitMargins godoc
// @ID           getProfitMargins
// @Summary      Profit margin per order
// @Tags         reports
// @Produce      json
// @Param        from query string false "First day, YYYY-MM-DD"
// @Param        to query string false "Last day, YYYY-MM-DD"
// @Success      200 {object} APIResponse[report.ProfitMargins]
// @Failure      400 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /reports/profit-margins [get]
func (h *ReportHandler) ProfitMargins(c *gin.Context) {
	period, ok := h.bindPeriod(c)
	if !ok {
		return
	}

	margins, err := h.reportService.ProfitMargins(c.Request.Context(), period)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, margins)
}

// LowDemandProducts godoc
// @ID           getLowDemandProducts
// @Summary      Products that barely sell
// @Description  Products whose quantity sold in the last N days is at most threshold, least sold first
// @Tags         reports
// @Produce      json
// @Param        days query int false "Window in days" default(30)
// @Param        threshold query int false "Maximum quantity sold" default(0)
// @Success      200 {object} APIResponse[[]report.ProductDemand]
// @Failure      400 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /reports/low-demand-products [get]
func (h *ReportHandler) LowDemandProducts(c *gin.Context) {
	var filter reportapp.LowDemandFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	products, err := h.reportService.LowDemandProducts(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, products)
}

// QuoteConversion godoc
// @ID           getQuoteConversion
// @Summary      Quote conversion rate
// @Tags         reports
// @Produce      json
// @Param        from query string false "First day, YYYY-MM-DD"
// @Param        to query string false "Last day, YYYY-MM-DD"
// @Success      200 {object} APIResponse[report.QuoteConversion]
// @Failure      400 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /reports/quote-conversion [get]
func (h *ReportHandler) QuoteConversion(c *gin.Context) {
	period, ok := h.bindPeriod(c)
	if !ok {
		return
	}

	conversion, err := h.reportService.QuoteConversion(c.Request.Context(), period)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, conversion)
}

// RevenuePDF godoc
// @ID           getRevenueReportPdf
// @Summary      Revenue report as PDF
// @Description  Payments by method, monthly trend, expenses and profit for the period. Defaults to this month.
// @Tags         reports
// @Produce      application/pdf
// @Param        from query string false "First day, YYYY-MM-DD"
// @Param        to query string false "Last day, YYYY-MM-DD"
// @Success      200 {file} binary
// @Failure      400 {object} dto.ErrorResponse
// @Failure      503 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /reports/revenue/pdf [get]
func (h *ReportHandler) RevenuePDF(c *gin.Context) {
	period, ok := h.bindPeriod(c)
	if !ok {
		return
	}

	doc, err := h.documentService.RevenuePDF(c.Request.Context(), period)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.sendPDF(c, doc.FileName, printingapp.ContentType, doc.Content)
}
