package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/printdesk/backend/internal/domain/finance"
	"github.com/printdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormExpenseRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormExpenseRepository(db)
	ctx := context.Background()

	for _, e := range []struct {
		description, amount, category string
		day                           int
	}{
		{"Aluguel", "1500", "Fixas", 1},
		{"Energia", "320.45", "Fixas", 10},
		{"Papel A4", "89.90", "Insumos", 15},
	} {
		date := day(2024, 5, e.day)
		expense, err := finance.NewExpense(finance.ExpenseInput{
			Description: e.description,
			Amount:      decimal.RequireFromString(e.amount),
			Date:        &date,
			Category:    e.category,
		})
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, expense))
	}

	t.Run("lists newest first", func(t *testing.T) {
		expenses, err := repo.FindAll(ctx, finance.ExpenseFilter{}, shared.Filter{Page: 1, PageSize: 10})
		require.NoError(t, err)
		require.Len(t, expenses, 3)
		assert.Equal(t, "Papel A4", expenses[0].Description)
		assert.Equal(t, "Aluguel", expenses[2].Description)
	})

	t.Run("filters by category and sums", func(t *testing.T) {
		filter := finance.ExpenseFilter{Category: "Fixas"}

		count, err := repo.Count(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)

		sum, err := repo.SumAmount(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, "1820.45", sum.StringFixed(2))
	})

	t.Run("filters by date range", func(t *testing.T) {
		from, to := day(2024, 5, 5), day(2024, 5, 31)
		expenses, err := repo.FindAll(ctx, finance.ExpenseFilter{From: &from, To: &to}, shared.Filter{})
		require.NoError(t, err)
		assert.Len(t, expenses, 2)
	})

	t.Run("update and delete", func(t *testing.T) {
		expenses, err := repo.FindAll(ctx, finance.ExpenseFilter{Category: "Insumos"}, shared.Filter{})
		require.NoError(t, err)
		require.Len(t, expenses, 1)
		expense := expenses[0]

		require.NoError(t, expense.Update(finance.ExpenseInput{
			Description: "Papel A3",
			Amount:      decimal.NewFromInt(120),
			Date:        &expense.Date,
			Category:    "Insumos",
		}))
		require.NoError(t, repo.Save(ctx, &expense))

		found, err := repo.FindByID(ctx, expense.ID)
		require.NoError(t, err)
		assert.Equal(t, "Papel A3", found.Description)
		assert.Equal(t, "120.00", found.Amount.StringFixed(2))

		require.NoError(t, repo.Delete(ctx, expense.ID))
		assert.ErrorIs(t, repo.Delete(ctx, expense.ID), shared.ErrNotFound)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
