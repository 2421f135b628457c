package trade

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/printdesk/backend/internal/domain/catalog"
	"github.com/printdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// QuoteStatus represents the status of a quote
type QuoteStatus string

const (
	QuoteStatusOpen     QuoteStatus = "Open"
	QuoteStatusApproved QuoteStatus = "Approved"
	QuoteStatusRejected QuoteStatus = "Rejected"
)

// IsValid checks if the status is a valid QuoteStatus
func (s QuoteStatus) IsValid() bool {
	switch s {
	case QuoteStatusOpen, QuoteStatusApproved, QuoteStatusRejected:
		return true
	}
	return false
}

// String returns the string representation of QuoteStatus
func (s QuoteStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s QuoteStatus) CanTransitionTo(target QuoteStatus) bool {
	switch s {
	case QuoteStatusOpen:
		return target == QuoteStatusApproved || target == QuoteStatusRejected
	case QuoteStatusRejected:
		return target == QuoteStatusOpen
	case QuoteStatusApproved:
		return false
	}
	return false
}

// QuoteLine is a line of a quote
type QuoteLine = Line

// Conversion errors
var (
	ErrQuoteAlreadyConverted = shared.NewDomainError("QUOTE_ALREADY_CONVERTED", "This quote has already been converted into an order")
	ErrQuoteEmpty            = shared.NewDomainError("QUOTE_EMPTY", "A quote without lines cannot be converted")
	ErrQuoteRejected         = shared.NewDomainError("QUOTE_REJECTED", "A rejected quote cannot be converted")
)

// Quote is a priced proposal for a customer.
// Total is a cached sum of line subtotals, refreshed by RecalculateTotal.
type Quote struct {
	shared.BaseEntity
	CustomerID uuid.UUID
	Status     QuoteStatus
	Total      decimal.Decimal
	Notes      string
	ValidUntil *time.Time
	Lines      []QuoteLine
}

// NewQuote creates an open quote for a customer
func NewQuote(customerID uuid.UUID, notes string, validUntil *time.Time) (*Quote, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	return &Quote{
		BaseEntity: shared.NewBaseEntity(),
		CustomerID: customerID,
		Status:     QuoteStatusOpen,
		Total:      decimal.Zero,
		Notes:      strings.TrimSpace(notes),
		ValidUntil: validUntil,
		Lines:      make([]QuoteLine, 0),
	}, nil
}

// Update changes the header fields of the quote
func (q *Quote) Update(customerID uuid.UUID, notes string, validUntil *time.Time) error {
	if customerID == uuid.Nil {
		return shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	q.CustomerID = customerID
	q.Notes = strings.TrimSpace(notes)
	q.ValidUntil = validUntil
	q.Touch()
	return nil
}

// AddLine prices and appends a line. The total is not refreshed.
func (q *Quote) AddLine(input LineInput, product *catalog.Product) (*QuoteLine, error) {
	l, err := newLine(input, product)
	if err != nil {
		return nil, err
	}
	q.Lines = append(q.Lines, l)
	q.Touch()
	return &q.Lines[len(q.Lines)-1], nil
}

// UpdateLine re-prices an existing line with new inputs
func (q *Quote) UpdateLine(lineID uuid.UUID, input LineInput, product *catalog.Product) (*QuoteLine, error) {
	idx := findLine(q.Lines, lineID)
	if idx < 0 {
		return nil, ErrLineNotFound
	}
	if err := q.Lines[idx].apply(input, product); err != nil {
		return nil, err
	}
	q.Touch()
	return &q.Lines[idx], nil
}

// RemoveLine removes a line from the quote
func (q *Quote) RemoveLine(lineID uuid.UUID) error {
	idx := findLine(q.Lines, lineID)
	if idx < 0 {
		return ErrLineNotFound
	}
	q.Lines = append(q.Lines[:idx], q.Lines[idx+1:]...)
	q.Touch()
	return nil
}

// GetLine returns the line with the given id, or nil
func (q *Quote) GetLine(lineID uuid.UUID) *QuoteLine {
	if idx := findLine(q.Lines, lineID); idx >= 0 {
		return &q.Lines[idx]
	}
	return nil
}

// RecalculateTotal sets Total to the sum of the stored line subtotals.
// Lines are not re-priced.
func (q *Quote) RecalculateTotal() decimal.Decimal {
	q.Total = sumLines(q.Lines)
	return q.Total
}

// ChangeStatus moves the quote to another status
func (q *Quote) ChangeStatus(target QuoteStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Quote status must be Open, Approved or Rejected")
	}
	if q.Status == target {
		return nil
	}
	if !q.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION",
			"Cannot change quote status from "+q.Status.String()+" to "+target.String())
	}
	q.Status = target
	q.Touch()
	return nil
}

// CheckConvertible verifies the quote can become an order.
// Whether an order already exists is checked by the caller.
func (q *Quote) CheckConvertible() error {
	if q.Status == QuoteStatusRejected {
		return ErrQuoteRejected
	}
	if len(q.Lines) == 0 {
		return ErrQuoteEmpty
	}
	return nil
}

// MarkApproved flags the quote as consumed by a conversion
func (q *Quote) MarkApproved() {
	q.Status = QuoteStatusApproved
	q.Touch()
}

// LineCount returns the number of lines
func (q *Quote) LineCount() int {
	return len(q.Lines)
}
