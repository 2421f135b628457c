package models

import (
	"time"

	"github.com/printdesk/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// ExpenseModel is the persistence model for the Expense domain entity.
type ExpenseModel struct {
	BaseModel
	Description string          `gorm:"type:varchar(500);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Date        time.Time       `gorm:"not null;index"`
	Category    string          `gorm:"type:varchar(100);index"`
}

// TableName returns the table name for GORM
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToDomain converts the persistence model to a domain Expense entity.
func (m *ExpenseModel) ToDomain() *finance.Expense {
	return &finance.Expense{
		BaseEntity:  m.Entity(),
		Description: m.Description,
		Amount:      m.Amount,
		Date:        m.Date,
		Category:    m.Category,
	}
}

// FromDomain populates the persistence model from a domain Expense entity.
func (m *ExpenseModel) FromDomain(e *finance.Expense) {
	m.setEntity(e.BaseEntity)
	m.Description = e.Description
	m.Amount = e.Amount
	m.Date = e.Date
	m.Category = e.Category
}

// ExpenseModelFromDomain creates a new persistence model from a domain Expense entity.
func ExpenseModelFromDomain(e *finance.Expense) *ExpenseModel {
	m := &ExpenseModel{}
	m.FromDomain(e)
	return m
}
