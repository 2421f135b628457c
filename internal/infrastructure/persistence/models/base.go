package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/printdesk/backend/internal/domain/shared"
)

// BaseModel holds the id and timestamps every table carries
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (m *BaseModel) Entity() shared.BaseEntity {
	return shared.BaseEntity{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}
}

func (m *BaseModel) setEntity(e shared.BaseEntity) {
	m.ID, m.CreatedAt, m.UpdatedAt = e.ID, e.CreatedAt, e.UpdatedAt
}

// nullableString maps an empty string to NULL so unique indexes ignore it
func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// All lists the models parents first, the order AutoMigrate needs
func All() []any {
	return []any{
		&UserModel{},
		&CompanyProfileModel{},
		&CustomerModel{},
		&ProductModel{},
		&QuoteModel{},
		&QuoteLineModel{},
		&OrderModel{},
		&OrderLineModel{},
		&PaymentModel{},
		&ExpenseModel{},
	}
}
