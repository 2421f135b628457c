package finance

import (
	"strings"
	"time"

	"github.com/printdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Expense is a general business expense (rent, supplies, utilities).
// Production costs live on orders and are merged in by the reports.
type Expense struct {
	shared.BaseEntity
	Description string
	Amount      decimal.Decimal
	Date        time.Time
	Category    string
}

// ExpenseInput carries the writable fields of an expense
type ExpenseInput struct {
	Description string
	Amount      decimal.Decimal
	Date        *time.Time
	Category    string
}

// NewExpense creates an expense. Date defaults to today.
func NewExpense(input ExpenseInput) (*Expense, error) {
	e := &Expense{BaseEntity: shared.NewBaseEntity()}
	if err := e.apply(input); err != nil {
		return nil, err
	}
	return e, nil
}

// Update replaces the writable fields of the expense
func (e *Expense) Update(input ExpenseInput) error {
	if err := e.apply(input); err != nil {
		return err
	}
	e.Touch()
	return nil
}

func (e *Expense) apply(input ExpenseInput) error {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Expense description cannot be empty")
	}
	if len(description) > 255 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Expense description cannot exceed 255 characters")
	}
	if input.Amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Expense amount cannot be negative")
	}
	category := strings.TrimSpace(input.Category)
	if len(category) > 50 {
		return shared.NewDomainError("INVALID_CATEGORY", "Expense category cannot exceed 50 characters")
	}

	date := time.Now()
	if input.Date != nil && !input.Date.IsZero() {
		date = *input.Date
	} else if !e.Date.IsZero() {
		date = e.Date
	}

	e.Description = description
	e.Amount = shared.RoundMoney(input.Amount)
	e.Date = date
	e.Category = category
	return nil
}
