package trade

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/printdesk/backend/internal/domain/catalog"
	"github.com/printdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentStatus is derived from cumulative payments against the order total
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPartial PaymentStatus = "PARTIAL"
	PaymentStatusPaid    PaymentStatus = "PAID"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPartial, PaymentStatusPaid:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// DerivePaymentStatus classifies an order from what has been paid so far.
// Nothing paid is PENDING, even for a zero total; otherwise paid ≥ total is
// PAID and anything less is PARTIAL.
func DerivePaymentStatus(paid, total decimal.Decimal) PaymentStatus {
	if !paid.IsPositive() {
		return PaymentStatusPending
	}
	if paid.GreaterThanOrEqual(total) {
		return PaymentStatusPaid
	}
	return PaymentStatusPartial
}

// Well-known production statuses. Production status is free-form; these
// are the values the reports understand.
const (
	ProductionStatusAwaiting     = "Awaiting"
	ProductionStatusInProduction = "In production"
	ProductionStatusFinished     = "Finished"
	ProductionStatusDelivered    = "Delivered"
)

// IsProductionClosed reports whether a production status ends the workflow
func IsProductionClosed(status string) bool {
	return status == ProductionStatusFinished || status == ProductionStatusDelivered
}

// OrderLine is a line of an order
type OrderLine = Line

// Shipping holds delivery metadata. Cost is informational and is not part of Total.
type Shipping struct {
	Method       string
	Address      string
	Cost         decimal.Decimal
	TrackingCode string
}

// Order is a confirmed sale tracked through production and payment.
type Order struct {
	shared.BaseEntity
	CustomerID       uuid.UUID
	QuoteID          *uuid.UUID
	ProductionStatus string
	PaymentStatus    PaymentStatus
	Total            decimal.Decimal
	ProductionCost   decimal.Decimal
	Shipping         Shipping
	DueDate          *time.Time
	DeliveredAt      *time.Time
	Notes            string
	Lines            []OrderLine
}

// OrderInput carries the writable header fields of an order
type OrderInput struct {
	CustomerID       uuid.UUID
	ProductionStatus string
	ProductionCost   decimal.Decimal
	Shipping         Shipping
	DueDate          *time.Time
	Notes            string
}

// NewOrder creates an order awaiting production with no payments
func NewOrder(input OrderInput) (*Order, error) {
	o := &Order{
		BaseEntity:       shared.NewBaseEntity(),
		ProductionStatus: ProductionStatusAwaiting,
		PaymentStatus:    PaymentStatusPending,
		Total:            decimal.Zero,
		Lines:            make([]OrderLine, 0),
	}
	if err := o.apply(input); err != nil {
		return nil, err
	}
	return o, nil
}

// NewOrderFromQuote builds the order for a quote conversion. Every quote
// line is copied with its subtotal locked, so the order total matches the
// quoted total even if product prices changed since.
func NewOrderFromQuote(q *Quote) (*Order, error) {
	if err := q.CheckConvertible(); err != nil {
		return nil, err
	}
	o, err := NewOrder(OrderInput{CustomerID: q.CustomerID})
	if err != nil {
		return nil, err
	}
	quoteID := q.ID
	o.QuoteID = &quoteID

	now := time.Now()
	for _, ql := range q.Lines {
		o.Lines = append(o.Lines, Line{
			ID:          uuid.New(),
			ProductID:   ql.ProductID,
			ProductName: ql.ProductName,
			Description: ql.Description,
			Quantity:    ql.Quantity,
			Width:       ql.Width,
			Height:      ql.Height,
			Subtotal:    ql.Subtotal,
			PriceLocked: true,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	return o, nil
}

// Update changes the header fields of the order
func (o *Order) Update(input OrderInput) error {
	if err := o.apply(input); err != nil {
		return err
	}
	o.Touch()
	return nil
}

func (o *Order) apply(input OrderInput) error {
	if input.CustomerID == uuid.Nil {
		return shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if input.ProductionCost.IsNegative() {
		return shared.NewDomainError("INVALID_PRODUCTION_COST", "Production cost cannot be negative")
	}
	if input.Shipping.Cost.IsNegative() {
		return shared.NewDomainError("INVALID_SHIPPING_COST", "Shipping cost cannot be negative")
	}
	o.CustomerID = input.CustomerID
	o.ProductionCost = shared.RoundMoney(input.ProductionCost)
	o.Shipping = Shipping{
		Method:       strings.TrimSpace(input.Shipping.Method),
		Address:      strings.TrimSpace(input.Shipping.Address),
		Cost:         shared.RoundMoney(input.Shipping.Cost),
		TrackingCode: strings.TrimSpace(input.Shipping.TrackingCode),
	}
	o.DueDate = input.DueDate
	o.Notes = strings.TrimSpace(input.Notes)
	if strings.TrimSpace(input.ProductionStatus) != "" {
		return o.SetProductionStatus(input.ProductionStatus)
	}
	return nil
}

// SetProductionStatus changes the free-form production label.
// Moving to Delivered stamps DeliveredAt.
func (o *Order) SetProductionStatus(status string) error {
	status = strings.TrimSpace(status)
	if status == "" {
		return shared.NewDomainError("INVALID_PRODUCTION_STATUS", "Production status cannot be empty")
	}
	if len(status) > 50 {
		return shared.NewDomainError("INVALID_PRODUCTION_STATUS", "Production status cannot exceed 50 characters")
	}
	if status == ProductionStatusDelivered && o.DeliveredAt == nil {
		now := time.Now()
		o.DeliveredAt = &now
	}
	o.ProductionStatus = status
	o.Touch()
	return nil
}

// AddLine prices and appends a line. The total is not refreshed.
func (o *Order) AddLine(input LineInput, product *catalog.Product) (*OrderLine, error) {
	l, err := newLine(input, product)
	if err != nil {
		return nil, err
	}
	o.Lines = append(o.Lines, l)
	o.Touch()
	return &o.Lines[len(o.Lines)-1], nil
}

// UpdateLine re-prices an existing line with new inputs
func (o *Order) UpdateLine(lineID uuid.UUID, input LineInput, product *catalog.Product) (*OrderLine, error) {
	idx := findLine(o.Lines, lineID)
	if idx < 0 {
		return nil, ErrLineNotFound
	}
	if err := o.Lines[idx].apply(input, product); err != nil {
		return nil, err
	}
	o.Touch()
	return &o.Lines[idx], nil
}

// RemoveLine removes a line from the order
func (o *Order) RemoveLine(lineID uuid.UUID) error {
	idx := findLine(o.Lines, lineID)
	if idx < 0 {
		return ErrLineNotFound
	}
	o.Lines = append(o.Lines[:idx], o.Lines[idx+1:]...)
	o.Touch()
	return nil
}

// ReplaceLines swaps the whole line set
func (o *Order) ReplaceLines(lines []OrderLine) {
	o.Lines = lines
	o.Touch()
}

// GetLine returns the line with the given id, or nil
func (o *Order) GetLine(lineID uuid.UUID) *OrderLine {
	if idx := findLine(o.Lines, lineID); idx >= 0 {
		return &o.Lines[idx]
	}
	return nil
}

// RecalculateTotal re-prices every unlocked product line from the given
// products, then sets Total to the sum of all line subtotals.
func (o *Order) RecalculateTotal(products map[uuid.UUID]*catalog.Product) (decimal.Decimal, error) {
	for i := range o.Lines {
		if err := o.Lines[i].Reprice(lookupProduct(products, o.Lines[i].ProductID)); err != nil {
			return decimal.Zero, err
		}
	}
	o.Total = sumLines(o.Lines)
	return o.Total, nil
}

// ApplyPayments derives PaymentStatus from the cumulative amount paid
func (o *Order) ApplyPayments(paid decimal.Decimal) PaymentStatus {
	o.PaymentStatus = DerivePaymentStatus(paid, o.Total)
	o.Touch()
	return o.PaymentStatus
}

// Receivable returns total − paid. Overpayment yields a negative amount.
func (o *Order) Receivable(paid decimal.Decimal) decimal.Decimal {
	return shared.RoundMoney(o.Total.Sub(paid))
}

// Profit returns total − production cost
func (o *Order) Profit() decimal.Decimal {
	return shared.RoundMoney(o.Total.Sub(o.ProductionCost))
}

// IsOverdue reports whether the due date has passed while production is still open
func (o *Order) IsOverdue(now time.Time) bool {
	return o.DueDate != nil && o.DueDate.Before(now) && !IsProductionClosed(o.ProductionStatus)
}

// IsFromQuote reports whether the order was converted from a quote
func (o *Order) IsFromQuote() bool {
	return o.QuoteID != nil
}
