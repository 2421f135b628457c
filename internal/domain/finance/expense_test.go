package finance

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExpense(t *testing.T) {
	t.Run("valid expense", func(t *testing.T) {
		date := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
		e, err := NewExpense(ExpenseInput{
			Description: "  Tinta solvente ",
			Amount:      decimal.RequireFromString("320.456"),
			Date:        &date,
			Category:    "Insumos",
		})

		require.NoError(t, err)
		assert.Equal(t, "Tinta solvente", e.Description)
		assert.Equal(t, "320.46", e.Amount.StringFixed(2))
		assert.Equal(t, date, e.Date)
		assert.Equal(t, "Insumos", e.Category)
	})

	t.Run("date defaults to now", func(t *testing.T) {
		e, err := NewExpense(ExpenseInput{Description: "Aluguel", Amount: decimal.NewFromInt(1500)})
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now(), e.Date, time.Minute)
	})

	t.Run("zero amount allowed", func(t *testing.T) {
		_, err := NewExpense(ExpenseInput{Description: "Brinde", Amount: decimal.Zero})
		assert.NoError(t, err)
	})

	tests := []struct {
		name  string
		input ExpenseInput
	}{
		{"empty description", ExpenseInput{Description: " ", Amount: decimal.NewFromInt(1)}},
		{"long description", ExpenseInput{Description: strings.Repeat("a", 256), Amount: decimal.NewFromInt(1)}},
		{"negative amount", ExpenseInput{Description: "Luz", Amount: decimal.NewFromInt(-1)}},
		{"long category", ExpenseInput{Description: "Luz", Category: strings.Repeat("c", 51)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewExpense(tt.input)
			assert.Error(t, err)
		})
	}
}

func TestExpense_UpdateKeepsDate(t *testing.T) {
	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	e, err := NewExpense(ExpenseInput{Description: "Luz", Amount: decimal.NewFromInt(200), Date: &date})
	require.NoError(t, err)

	require.NoError(t, e.Update(ExpenseInput{Description: "Energia", Amount: decimal.NewFromInt(210)}))

	assert.Equal(t, "Energia", e.Description)
	assert.Equal(t, date, e.Date)
}
