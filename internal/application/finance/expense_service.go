package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/printdesk/backend/internal/domain/finance"
	"github.com/printdesk/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ExpenseService handles general business expenses
type ExpenseService struct {
	expenseRepo finance.ExpenseRepository
	logger      *zap.Logger
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenseRepo finance.ExpenseRepository, logger *zap.Logger) *ExpenseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExpenseService{
		expenseRepo: expenseRepo,
		logger:      logger,
	}
}

// Create records a new expense
func (s *ExpenseService) Create(ctx context.Context, req CreateExpenseRequest) (*ExpenseResponse, error) {
	expense, err := finance.NewExpense(finance.ExpenseInput{
		Description: req.Description,
		Amount:      req.Amount,
		Date:        req.Date,
		Category:    req.Category,
	})
	if err != nil {
		return nil, err
	}
	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}

	response := ToExpenseResponse(expense)
	return &response, nil
}

// GetByID retrieves an expense by ID
func (s *ExpenseService) GetByID(ctx context.Context, id uuid.UUID) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToExpenseResponse(expense)
	return &response, nil
}

// List retrieves expenses newest first. The To date is inclusive.
func (s *ExpenseService) List(ctx context.Context, filter ExpenseListFilter) (*ExpenseListResult, error) {
	page := shared.DefaultFilter()
	if filter.Page > 0 {
		page.Page = filter.Page
	}
	if filter.PageSize > 0 {
		page.PageSize = filter.PageSize
	}
	page.OrderBy = "date"

	ef := finance.ExpenseFilter{Category: filter.Category, From: filter.From}
	if filter.To != nil {
		end := endOfDay(*filter.To)
		ef.To = &end
	}

	expenses, err := s.expenseRepo.FindAll(ctx, ef, page)
	if err != nil {
		return nil, err
	}
	total, err := s.expenseRepo.Count(ctx, ef)
	if err != nil {
		return nil, err
	}
	sum, err := s.expenseRepo.SumAmount(ctx, ef)
	if err != nil {
		return nil, err
	}

	items := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		items[i] = ToExpenseResponse(&expenses[i])
	}
	return &ExpenseListResult{Items: items, Total: total, TotalAmount: sum}, nil
}

// Update updates an expense
func (s *ExpenseService) Update(ctx context.Context, id uuid.UUID, req UpdateExpenseRequest) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	input := finance.ExpenseInput{
		Description: expense.Description,
		Amount:      expense.Amount,
		Category:    expense.Category,
		Date:        req.Date,
	}
	if req.Description != nil {
		input.Description = *req.Description
	}
	if req.Amount != nil {
		input.Amount = *req.Amount
	}
	if req.Category != nil {
		input.Category = *req.Category
	}

	if err := expense.Update(input); err != nil {
		return nil, err
	}
	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}

	response := ToExpenseResponse(expense)
	return &response, nil
}

// Delete deletes an expense
func (s *ExpenseService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.expenseRepo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.expenseRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Expense deleted", zap.String("expense_id", id.String()))
	return nil
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
