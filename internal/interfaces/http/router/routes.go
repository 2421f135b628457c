package router

import (
	"github.com/gin-gonic/gin"
	"github.com/printdesk/backend/internal/interfaces/http/handler"
)

// Handlers holds every HTTP handler served under the API prefix
type Handlers struct {
	Auth     *handler.AuthHandler
	Customer *handler.CustomerHandler
	Product  *handler.ProductHandler
	Quote    *handler.QuoteHandler
	Order    *handler.OrderHandler
	Payment  *handler.PaymentHandler
	Expense  *handler.ExpenseHandler
	Company  *handler.CompanyHandler
	Report   *handler.ReportHandler
	Health   *handler.HealthHandler
}

type crudHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	GetByID(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

// crud returns the five standard routes of a resource followed by extra
func crud(h crudHandler, extra ...Route) []Route {
	return append([]Route{
		get("", h.List),
		post("", h.Create),
		get("/:id", h.GetByID),
		put("/:id", h.Update),
		remove("/:id", h.Delete),
	}, extra...)
}

type lineHandler interface {
	ListLines(c *gin.Context)
	AddLine(c *gin.Context)
	UpdateLine(c *gin.Context)
	RemoveLine(c *gin.Context)
}

func lines(h lineHandler) []Route {
	return []Route{
		get("/:id/lines", h.ListLines),
		post("/:id/lines", h.AddLine),
		put("/:id/lines/:line_id", h.UpdateLine),
		remove("/:id/lines/:line_id", h.RemoveLine),
	}
}

// Groups lists every API resource. Public endpoints are exempted inside
// the JWT middleware, not here.
func Groups(h Handlers) []Group {
	quoteRoutes := crud(h.Quote,
		patch("/:id/status", h.Quote.ChangeStatus),
		post("/:id/convert", h.Quote.Convert),
		get("/:id/pdf", h.Quote.PDF),
	)
	orderRoutes := crud(h.Order,
		patch("/:id/production-status", h.Order.SetProductionStatus),
		get("/:id/pdf", h.Order.PDF),
		get("/:id/payments", h.Payment.ListByOrder),
		post("/:id/payments", h.Payment.Record),
		remove("/:id/payments/:payment_id", h.Payment.Delete),
	)

	return []Group{
		{Prefix: "/auth", Routes: []Route{
			post("/login", h.Auth.Login),
			post("/refresh", h.Auth.RefreshToken),
			post("/logout", h.Auth.Logout),
			get("/me", h.Auth.GetCurrentUser),
			put("/me", h.Auth.UpdateProfile),
			put("/password", h.Auth.ChangePassword),
		}},
		{Prefix: "/customers", Routes: crud(h.Customer, post("/import", h.Customer.Import))},
		{Prefix: "/products", Routes: crud(h.Product)},
		{Prefix: "/quotes", Routes: append(quoteRoutes, lines(h.Quote)...)},
		{Prefix: "/orders", Routes: append(orderRoutes, lines(h.Order)...)},
		{Prefix: "/payments", Routes: []Route{get("", h.Payment.List)}},
		{Prefix: "/expenses", Routes: crud(h.Expense)},
		{Prefix: "/company", Routes: []Route{
			get("", h.Company.Get),
			put("", h.Company.Update),
			put("/logo", h.Company.UploadLogo),
		}},
		{Prefix: "/public", Routes: []Route{get("/branding", h.Company.Branding)}},
		{Prefix: "/reports", Routes: []Route{
			get("/dashboard", h.Report.Dashboard),
			get("/expenses", h.Report.Expenses),
			get("/recent-orders", h.Report.RecentOrders),
			get("/revenue-by-method", h.Report.RevenueByMethod),
			get("/revenue-trend", h.Report.RevenueTrend),
			get("/production-status", h.Report.ProductionStatus),
			get("/top-products", h.Report.TopProducts),
			get("/top-customers", h.Report.TopCustomers),
			get("/inactive-customers", h.Report.InactiveCustomers),
			get("/overdue-orders", h.Report.OverdueOrders),
			get("/profit-margins", h.Report.ProfitMargins),
			get("/low-demand-products", h.Report.LowDemandProducts),
			get("/quote-conversion", h.Report.QuoteConversion),
			get("/revenue/pdf", h.Report.RevenuePDF),
		}},
		{Prefix: "/health", Routes: []Route{get("", h.Health.Health)}},
	}
}

// RegisterHandlers mounts Groups(h)
func (r *Router) RegisterHandlers(h Handlers) *Router {
	return r.Mount(Groups(h)...)
}
