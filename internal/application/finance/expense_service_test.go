package finance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/printdesk/backend/internal/domain/finance"
	"github.com/printdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockExpenseRepository is a mock implementation of ExpenseRepository
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Expense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindAll(ctx context.Context, filter finance.ExpenseFilter, page shared.Filter) ([]finance.Expense, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).([]finance.Expense), args.Error(1)
}

func (m *MockExpenseRepository) Count(ctx context.Context, filter finance.ExpenseFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockExpenseRepository) SumAmount(ctx context.Context, filter finance.ExpenseFilter) (decimal.Decimal, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockExpenseRepository) Save(ctx context.Context, expense *finance.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestExpense(t *testing.T) *finance.Expense {
	t.Helper()
	date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local)
	e, err := finance.NewExpense(finance.ExpenseInput{
		Description: "Aluguel",
		Amount:      decimal.NewFromInt(1800),
		Date:        &date,
		Category:    "Fixed",
	})
	require.NoError(t, err)
	return e
}

func TestExpenseService_Create(t *testing.T) {
	repo := new(MockExpenseRepository)
	service := NewExpenseService(repo, nil)
	ctx := context.Background()

	repo.On("Save", ctx, mock.AnythingOfType("*finance.Expense")).Return(nil)

	result, err := service.Create(ctx, CreateExpenseRequest{
		Description: "Tinta ciano",
		Amount:      decimal.RequireFromString("259.9"),
		Category:    "Supplies",
	})

	require.NoError(t, err)
	assert.Equal(t, "Tinta ciano", result.Description)
	assert.Equal(t, "259.90", result.Amount.StringFixed(2))
	assert.False(t, result.Date.IsZero())
	repo.AssertExpectations(t)
}

func TestExpenseService_Create_NegativeAmount(t *testing.T) {
	repo := new(MockExpenseRepository)
	service := NewExpenseService(repo, nil)

	_, err := service.Create(context.Background(), CreateExpenseRequest{
		Description: "Estorno",
		Amount:      decimal.NewFromInt(-1),
	})

	assert.Equal(t, "INVALID_AMOUNT", shared.CodeOf(err))
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestExpenseService_List_InclusiveEndDate(t *testing.T) {
	repo := new(MockExpenseRepository)
	service := NewExpenseService(repo, nil)
	ctx := context.Background()
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.Local)
	expense := newTestExpense(t)

	matchFilter := mock.MatchedBy(func(f finance.ExpenseFilter) bool {
		return f.Category == "Fixed" && f.From.Equal(from) &&
			f.To.Year() == 2024 && f.To.Day() == 31 && f.To.Hour() == 23
	})
	repo.On("FindAll", ctx, matchFilter, mock.MatchedBy(func(p shared.Filter) bool {
		return p.OrderBy == "date" && p.OrderDir == "desc"
	})).Return([]finance.Expense{*expense}, nil)
	repo.On("Count", ctx, matchFilter).Return(int64(1), nil)
	repo.On("SumAmount", ctx, matchFilter).Return(decimal.NewFromInt(1800), nil)

	result, err := service.List(ctx, ExpenseListFilter{Category: "Fixed", From: &from, To: &to})

	require.NoError(t, err)
	assert.Len(t, result.Items, 1)
	assert.Equal(t, int64(1), result.Total)
	assert.Equal(t, "1800.00", result.TotalAmount.StringFixed(2))
}

func TestExpenseService_Update_KeepsDateWhenOmitted(t *testing.T) {
	repo := new(MockExpenseRepository)
	service := NewExpenseService(repo, nil)
	ctx := context.Background()
	expense := newTestExpense(t)
	originalDate := expense.Date

	repo.On("FindByID", ctx, expense.ID).Return(expense, nil)
	repo.On("Save", ctx, expense).Return(nil)

	amount := decimal.NewFromInt(2000)
	result, err := service.Update(ctx, expense.ID, UpdateExpenseRequest{Amount: &amount})

	require.NoError(t, err)
	assert.Equal(t, "2000.00", result.Amount.StringFixed(2))
	assert.True(t, originalDate.Equal(result.Date))
	assert.Equal(t, "Aluguel", result.Description)
}

func TestExpenseService_Delete_NotFound(t *testing.T) {
	repo := new(MockExpenseRepository)
	service := NewExpenseService(repo, nil)
	ctx := context.Background()
	id := uuid.New()

	repo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

	err := service.Delete(ctx, id)

	assert.ErrorIs(t, err, shared.ErrNotFound)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
