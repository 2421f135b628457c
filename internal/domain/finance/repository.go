package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/printdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ExpenseFilter narrows expense listings
type ExpenseFilter struct {
	Category string
	From     *time.Time
	To       *time.Time
}

// ExpenseRepository defines the interface for expense persistence
type ExpenseRepository interface {
	// FindByID finds an expense by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Expense, error)

	// FindAll lists expenses matching the filter, newest first
	FindAll(ctx context.Context, filter ExpenseFilter, page shared.Filter) ([]Expense, error)

	// Count counts expenses matching the filter
	Count(ctx context.Context, filter ExpenseFilter) (int64, error)

	// SumAmount totals expenses matching the filter
	SumAmount(ctx context.Context, filter ExpenseFilter) (decimal.Decimal, error)

	// Save creates or updates an expense
	Save(ctx context.Context, expense *Expense) error

	// Delete deletes an expense
	Delete(ctx context.Context, id uuid.UUID) error
}
