package printing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	reportapp "github.com/printdesk/backend/internal/application/report"
	"github.com/printdesk/backend/internal/domain/identity"
	"github.com/printdesk/backend/internal/domain/partner"
	"github.com/printdesk/backend/internal/domain/printing"
	"github.com/printdesk/backend/internal/domain/report"
	"github.com/printdesk/backend/internal/domain/shared"
	"github.com/printdesk/backend/internal/domain/trade"
	infra "github.com/printdesk/backend/internal/infrastructure/printing"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrPrintingDisabled is returned when no PDF renderer is configured
var ErrPrintingDisabled = shared.NewDomainError("PRINTING_DISABLED", "PDF generation is not enabled on this server")

// QuoteSource loads quote aggregates
type QuoteSource interface {
	GetDomain(ctx context.Context, quoteID uuid.UUID) (*trade.Quote, error)
}

// OrderSource loads order aggregates with the amount paid so far
type OrderSource interface {
	GetDomain(ctx context.Context, orderID uuid.UUID) (*trade.Order, decimal.Decimal, error)
}

// PaymentFinder lists the payments of an order
type PaymentFinder interface {
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]trade.Payment, error)
}

// CustomerFinder loads a customer
type CustomerFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error)
}

// CompanySource provides the branding printed on documents
type CompanySource interface {
	Profile(ctx context.Context) (*identity.CompanyProfile, error)
	LogoURL(ctx context.Context, profile *identity.CompanyProfile) string
}

// RevenueSource builds the revenue report content
type RevenueSource interface {
	RevenueReport(ctx context.Context, filter reportapp.PeriodFilter) (*report.RevenueReport, error)
}

// HTMLRenderer renders a document template to HTML
type HTMLRenderer interface {
	Render(docType printing.DocType, data any) (string, error)
}

// Archiver stores rendered PDFs
type Archiver interface {
	Store(ctx context.Context, docType printing.DocType, id string, pdf []byte) (string, error)
}

// Metrics receives document counters. telemetry.BusinessMetrics implements it.
type Metrics interface {
	RecordDocumentRendered(ctx context.Context, docType string, duration time.Duration)
}

type noopMetrics struct{}

func (noopMetrics) RecordDocumentRendered(context.Context, string, time.Duration) {}

// Sources groups the data the documents are built from
type Sources struct {
	Quotes    QuoteSource
	Orders    OrderSource
	Payments  PaymentFinder
	Customers CustomerFinder
	Company   CompanySource
	Revenue   RevenueSource
}

// DocumentService renders quotes, orders and the revenue report to PDF
type DocumentService struct {
	sources  Sources
	engine   HTMLRenderer
	renderer infra.PDFRenderer
	archive  Archiver
	metrics  Metrics
	logger   *zap.Logger
	now      func() time.Time
}

// NewDocumentService creates a DocumentService.
// A nil renderer disables PDF generation; a nil archive skips archiving.
func NewDocumentService(
	sources Sources,
	engine HTMLRenderer,
	renderer infra.PDFRenderer,
	archive Archiver,
	logger *zap.Logger,
) *DocumentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentService{
		sources:  sources,
		engine:   engine,
		renderer: renderer,
		archive:  archive,
		metrics:  noopMetrics{},
		logger:   logger,
		now:      time.Now,
	}
}

// SetMetrics sets the business metrics recorder
func (s *DocumentService) SetMetrics(m Metrics) {
	if m != nil {
		s.metrics = m
	}
}

// Enabled reports whether PDFs can be generated
func (s *DocumentService) Enabled() bool {
	return s.renderer != nil
}

// QuotePDF renders a quote with its customer and the company branding
func (s *DocumentService) QuotePDF(ctx context.Context, quoteID uuid.UUID) (*Document, error) {
	if !s.Enabled() {
		return nil, ErrPrintingDisabled
	}

	quote, err := s.sources.Quotes.GetDomain(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	customer, err := s.customerBlock(ctx, quote.CustomerID)
	if err != nil {
		return nil, err
	}
	company, err := s.companyHeader(ctx)
	if err != nil {
		return nil, err
	}

	data := infra.QuoteDocument{
		Company:     company,
		Customer:    customer,
		ID:          quote.ID,
		Status:      quote.Status.String(),
		IssuedAt:    quote.CreatedAt,
		ValidUntil:  quote.ValidUntil,
		Notes:       quote.Notes,
		Lines:       lineItems(quote.Lines),
		Total:       quote.Total,
		GeneratedAt: s.now(),
	}

	return s.render(ctx, printing.DocTypeQuote, quote.ID.String(), printing.DocTypeQuote.FileName(quote.ID), data)
}

// OrderPDF renders an order with its payments and the amount still receivable
func (s *DocumentService) OrderPDF(ctx context.Context, orderID uuid.UUID) (*Document, error) {
	if !s.Enabled() {
		return nil, ErrPrintingDisabled
	}

	order, paid, err := s.sources.Orders.GetDomain(ctx, orderID)
	if err != nil {
		return nil, err
	}
	payments, err := s.sources.Payments.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}
	customer, err := s.customerBlock(ctx, order.CustomerID)
	if err != nil {
		return nil, err
	}
	company, err := s.companyHeader(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]infra.PaymentItem, 0, len(payments))
	for _, p := range payments {
		items = append(items, infra.PaymentItem{
			PaidAt: p.PaidAt,
			Method: p.Method.String(),
			Amount: p.Amount,
			Notes:  p.Notes,
		})
	}

	data := infra.OrderDocument{
		Company:          company,
		Customer:         customer,
		ID:               order.ID,
		QuoteID:          order.QuoteID,
		IssuedAt:         order.CreatedAt,
		DueDate:          order.DueDate,
		ProductionStatus: order.ProductionStatus,
		PaymentStatus:    order.PaymentStatus.String(),
		Shipping: infra.ShippingBlock{
			Method:       order.Shipping.Method,
			Address:      order.Shipping.Address,
			Cost:         order.Shipping.Cost,
			TrackingCode: order.Shipping.TrackingCode,
		},
		Notes:       order.Notes,
		Lines:       lineItems(order.Lines),
		Total:       order.Total,
		Payments:    items,
		Paid:        paid,
		Receivable:  order.Receivable(paid),
		GeneratedAt: s.now(),
	}

	return s.render(ctx, printing.DocTypeOrder, order.ID.String(), printing.DocTypeOrder.FileName(order.ID), data)
}

// RevenuePDF renders the revenue report of a period
func (s *DocumentService) RevenuePDF(ctx context.Context, filter reportapp.PeriodFilter) (*Document, error) {
	if !s.Enabled() {
		return nil, ErrPrintingDisabled
	}

	content, err := s.sources.Revenue.RevenueReport(ctx, filter)
	if err != nil {
		return nil, err
	}
	company, err := s.companyHeader(ctx)
	if err != nil {
		return nil, err
	}

	data := infra.RevenueDocument{
		Company:     company,
		Report:      *content,
		Margin:      report.MarginPercent(content.Profit, content.Revenue),
		GeneratedAt: s.now(),
	}

	archiveID := content.Period.From.Format("2006-01-02") + "_" + content.Period.To.Format("2006-01-02")
	return s.render(ctx, printing.DocTypeRevenueReport, archiveID, printing.DocTypeRevenueReport.FileName(uuid.Nil), data)
}

func (s *DocumentService) render(ctx context.Context, docType printing.DocType, id, fileName string, data any) (*Document, error) {
	html, err := s.engine.Render(docType, data)
	if err != nil {
		return nil, fmt.Errorf("failed to render %s template: %w", docType, err)
	}

	result, err := s.renderer.Render(ctx, &infra.RenderRequest{
		HTML:       html,
		Layout:     printing.LayoutFor(docType),
		Title:      docType.DisplayName(),
		FooterHTML: pageFooter,
	})
	if err != nil {
		var renderErr *infra.RenderError
		if errors.As(err, &renderErr) {
			s.logger.Error("PDF rendering failed",
				zap.String("doc_type", docType.String()),
				zap.String("document_id", id),
				zap.String("code", renderErr.Code),
				zap.Error(err))
		}
		return nil, fmt.Errorf("failed to render %s PDF: %w", docType, err)
	}

	doc := &Document{
		DocType:   docType,
		FileName:  fileName,
		Content:   result.PDFData,
		PageCount: result.PageCount,
	}

	if s.archive != nil {
		key, err := s.archive.Store(ctx, docType, id, result.PDFData)
		if err != nil {
			s.logger.Warn("Failed to archive document",
				zap.String("doc_type", docType.String()),
				zap.String("document_id", id),
				zap.Error(err))
		} else {
			doc.ArchiveKey = key
		}
	}

	s.metrics.RecordDocumentRendered(ctx, docType.String(), result.RenderDuration)
	s.logger.Info("Document rendered",
		zap.String("doc_type", docType.String()),
		zap.String("document_id", id),
		zap.Int("pages", result.PageCount),
		zap.Int("bytes", len(result.PDFData)),
		zap.Duration("duration", result.RenderDuration))

	return doc, nil
}

// pageFooter is printed by Chrome on every page
const pageFooter = `<div style="width:100%;font-size:8px;color:#6b7280;text-align:center;">` +
	`<span class="pageNumber"></span> / <span class="totalPages"></span></div>`

func (s *DocumentService) companyHeader(ctx context.Context) (infra.CompanyHeader, error) {
	profile, err := s.sources.Company.Profile(ctx)
	if err != nil {
		return infra.CompanyHeader{}, fmt.Errorf("failed to load company profile: %w", err)
	}
	tradeName := profile.TradeName
	if tradeName == "" {
		tradeName = profile.DisplayName()
	}
	return infra.CompanyHeader{
		TradeName:    tradeName,
		LegalName:    profile.LegalName,
		TaxID:        profile.TaxID,
		Email:        profile.Email,
		Phone:        profile.Phone,
		Website:      profile.Website,
		AddressLine:  addressLine(profile.Address),
		LogoURL:      s.sources.Company.LogoURL(ctx, profile),
		PrimaryColor: profile.PrimaryColor,
		Footer:       profile.DocumentFooter,
	}, nil
}

func (s *DocumentService) customerBlock(ctx context.Context, customerID uuid.UUID) (infra.CustomerBlock, error) {
	customer, err := s.sources.Customers.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Document customer not found", zap.String("customer_id", customerID.String()))
			return infra.CustomerBlock{Name: "-"}, nil
		}
		return infra.CustomerBlock{}, fmt.Errorf("failed to load customer: %w", err)
	}
	return infra.CustomerBlock{
		Name:        customer.Name,
		TaxID:       customer.TaxID,
		Email:       customer.Email,
		Phone:       customer.Phone,
		AddressLine: addressLine(customer.Address),
	}, nil
}

// lineItems converts trade lines to printed lines with their unit price
func lineItems(lines []trade.Line) []infra.LineItem {
	items := make([]infra.LineItem, 0, len(lines))
	for _, l := range lines {
		unit := l.Subtotal
		if l.Quantity > 0 {
			unit = l.Subtotal.Div(decimal.NewFromInt(int64(l.Quantity))).Round(2)
		}
		items = append(items, infra.LineItem{
			Description: lineDescription(l),
			Quantity:    l.Quantity,
			Width:       l.Width,
			Height:      l.Height,
			UnitPrice:   unit,
			Subtotal:    l.Subtotal,
		})
	}
	return items
}

func lineDescription(l trade.Line) string {
	name := strings.TrimSpace(l.ProductName)
	desc := strings.TrimSpace(l.Description)
	switch {
	case name == "":
		return desc
	case desc == "" || desc == name:
		return name
	default:
		return name + " - " + desc
	}
}

// addressLine formats an address as "Street, Number - District, City/UF, CEP 00000-000"
func addressLine(a partner.Address) string {
	var parts []string

	street := strings.TrimSpace(a.Street)
	if n := strings.TrimSpace(a.Number); street != "" && n != "" {
		street += ", " + n
	}
	if d := strings.TrimSpace(a.District); d != "" {
		if street != "" {
			street += " - " + d
		} else {
			street = d
		}
	}
	if street != "" {
		parts = append(parts, street)
	}

	city := strings.TrimSpace(a.City)
	if uf := strings.TrimSpace(a.State); uf != "" {
		if city != "" {
			city += "/" + uf
		} else {
			city = uf
		}
	}
	if city != "" {
		parts = append(parts, city)
	}

	if cep := strings.TrimSpace(a.PostalCode); cep != "" {
		parts = append(parts, "CEP "+cep)
	}
	return strings.Join(parts, ", ")
}
