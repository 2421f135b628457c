package printing

import (
	"time"

	"github.com/google/uuid"
	"github.com/printdesk/backend/internal/domain/report"
	"github.com/shopspring/decimal"
)

// CompanyHeader is the branding block printed at the top of every document
type CompanyHeader struct {
	TradeName    string
	LegalName    string
	TaxID        string
	Email        string
	Phone        string
	Website      string
	AddressLine  string
	LogoURL      string
	PrimaryColor string
	Footer       string
}

// CustomerBlock identifies the customer on quotes and orders
type CustomerBlock struct {
	Name        string
	TaxID       string
	Email       string
	Phone       string
	AddressLine string
}

// LineItem is one printed line of a quote or order
type LineItem struct {
	Description string
	Quantity    int
	Width       *decimal.Decimal
	Height      *decimal.Decimal
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// QuoteDocument is the data bound to the quote template
type QuoteDocument struct {
	Company     CompanyHeader
	Customer    CustomerBlock
	ID          uuid.UUID
	Status      string
	IssuedAt    time.Time
	ValidUntil  *time.Time
	Notes       string
	Lines       []LineItem
	Total       decimal.Decimal
	GeneratedAt time.Time
}

// PaymentItem is one payment printed on an order
type PaymentItem struct {
	PaidAt time.Time
	Method string
	Amount decimal.Decimal
	Notes  string
}

// ShippingBlock is the delivery section of an order
type ShippingBlock struct {
	Method       string
	Address      string
	Cost         decimal.Decimal
	TrackingCode string
}

// OrderDocument is the data bound to the order template
type OrderDocument struct {
	Company          CompanyHeader
	Customer         CustomerBlock
	ID               uuid.UUID
	QuoteID          *uuid.UUID
	IssuedAt         time.Time
	DueDate          *time.Time
	ProductionStatus string
	PaymentStatus    string
	Shipping         ShippingBlock
	Notes            string
	Lines            []LineItem
	Total            decimal.Decimal
	Payments         []PaymentItem
	Paid             decimal.Decimal
	Receivable       decimal.Decimal
	GeneratedAt      time.Time
}

// RevenueDocument is the data bound to the revenue report template
type RevenueDocument struct {
	Company     CompanyHeader
	Report      report.RevenueReport
	Margin      decimal.Decimal
	GeneratedAt time.Time
}
