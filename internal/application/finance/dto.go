package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/printdesk/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest represents a request to record an expense
type CreateExpenseRequest struct {
	Description string          `json:"description" binding:"required,max=255"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Date        *time.Time      `json:"date"`
	Category    string          `json:"category" binding:"max=50"`
}

// UpdateExpenseRequest represents a request to update an expense.
// Omitted fields keep their current value.
type UpdateExpenseRequest struct {
	Description *string          `json:"description" binding:"omitempty,max=255"`
	Amount      *decimal.Decimal `json:"amount"`
	Date        *time.Time       `json:"date"`
	Category    *string          `json:"category" binding:"omitempty,max=50"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Category    string          `json:"category"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ExpenseListFilter represents filter options for the expense list
type ExpenseListFilter struct {
	Category string     `form:"category"`
	From     *time.Time `form:"from" time_format:"2006-01-02"`
	To       *time.Time `form:"to" time_format:"2006-01-02"`
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ExpenseListResult is a page of expenses plus the sum over the whole filter
type ExpenseListResult struct {
	Items       []ExpenseResponse
	Total       int64
	TotalAmount decimal.Decimal
}

// ToExpenseResponse converts a domain Expense to ExpenseResponse
func ToExpenseResponse(e *finance.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount,
		Date:        e.Date,
		Category:    e.Category,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
