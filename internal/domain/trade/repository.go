package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/printdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// QuoteRepository defines the interface for quote persistence.
// Recognized Filter.Filters keys: "status" and "customer_id".
type QuoteRepository interface {
	// FindByID finds a quote by ID with its lines loaded
	FindByID(ctx context.Context, id uuid.UUID) (*Quote, error)

	// FindAll finds quotes matching the filter, without lines
	FindAll(ctx context.Context, filter shared.Filter) ([]Quote, error)

	// Count counts quotes matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates or updates a quote and synchronizes its lines
	Save(ctx context.Context, quote *Quote) error

	// Delete deletes a quote and its lines
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderRepository defines the interface for order persistence.
// Recognized Filter.Filters keys: "payment_status", "production_status" and "customer_id".
type OrderRepository interface {
	// FindByID finds an order by ID with its lines loaded
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByIDForUpdate loads an order and locks its row for the rest of
	// the surrounding transaction
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByQuoteID finds the order converted from a quote
	FindByQuoteID(ctx context.Context, quoteID uuid.UUID) (*Order, error)

	// ExistsByQuoteID reports whether a quote already has an order
	ExistsByQuoteID(ctx context.Context, quoteID uuid.UUID) (bool, error)

	// FindAll finds orders matching the filter, without lines
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// Count counts orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates or updates an order and synchronizes its lines
	Save(ctx context.Context, order *Order) error

	// Delete deletes an order with its lines and payments
	Delete(ctx context.Context, id uuid.UUID) error
}

// PaymentFilter narrows payment listings
type PaymentFilter struct {
	OrderID *uuid.UUID
	Method  PaymentMethod
	From    *time.Time
	To      *time.Time
}

// PaymentRepository defines the interface for payment persistence
type PaymentRepository interface {
	// FindByID finds a payment by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)

	// FindByOrder lists payments of an order, oldest first
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]Payment, error)

	// FindAll lists payments matching the filter, newest first
	FindAll(ctx context.Context, filter PaymentFilter, page shared.Filter) ([]Payment, error)

	// Count counts payments matching the filter
	Count(ctx context.Context, filter PaymentFilter) (int64, error)

	// SumByOrder returns the cumulative amount paid against an order
	SumByOrder(ctx context.Context, orderID uuid.UUID) (decimal.Decimal, error)

	// Save creates a payment
	Save(ctx context.Context, payment *Payment) error

	// Delete deletes a payment
	Delete(ctx context.Context, id uuid.UUID) error
}
