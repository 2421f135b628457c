package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/printdesk/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// LineColumns holds the columns shared by quote lines and order lines.
type LineColumns struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key"`
	ProductID   *uuid.UUID       `gorm:"type:uuid;index"`
	ProductName string           `gorm:"type:varchar(200)"`
	Description string           `gorm:"type:varchar(500)"`
	Quantity    int              `gorm:"not null"`
	Width       *decimal.Decimal `gorm:"type:decimal(18,4)"`
	Height      *decimal.Decimal `gorm:"type:decimal(18,4)"`
	Subtotal    decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	PriceLocked bool             `gorm:"not null;default:false"`
	Position    int              `gorm:"not null;default:0"`
	CreatedAt   time.Time        `gorm:"not null"`
	UpdatedAt   time.Time        `gorm:"not null"`
}

// ToDomain converts the line columns to a domain Line
func (c *LineColumns) ToDomain() trade.Line {
	return trade.Line{
		ID:          c.ID,
		ProductID:   c.ProductID,
		ProductName: c.ProductName,
		Description: c.Description,
		Quantity:    c.Quantity,
		Width:       c.Width,
		Height:      c.Height,
		Subtotal:    c.Subtotal,
		PriceLocked: c.PriceLocked,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// LineColumnsFromDomain copies a domain Line into columns.
// position keeps the line order of the document.
func LineColumnsFromDomain(l *trade.Line, position int) LineColumns {
	return LineColumns{
		ID:          l.ID,
		ProductID:   l.ProductID,
		ProductName: l.ProductName,
		Description: l.Description,
		Quantity:    l.Quantity,
		Width:       l.Width,
		Height:      l.Height,
		Subtotal:    l.Subtotal,
		PriceLocked: l.PriceLocked,
		Position:    position,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

// QuoteModel is the persistence model for the Quote aggregate root.
// The belongs-to pointers are never loaded; they give AutoMigrate the
// same foreign keys as the SQL migrations.
type QuoteModel struct {
	BaseModel
	CustomerID uuid.UUID         `gorm:"type:uuid;not null;index"`
	Status     trade.QuoteStatus `gorm:"type:varchar(20);not null;default:'Open';index"`
	Total      decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	Notes      string            `gorm:"type:text"`
	ValidUntil *time.Time
	Lines      []QuoteLineModel `gorm:"foreignKey:QuoteID;references:ID"`
	Customer   *CustomerModel   `gorm:"foreignKey:CustomerID;constraint:OnDelete:RESTRICT"`
}

// TableName returns the table name for GORM
func (QuoteModel) TableName() string {
	return "quotes"
}

// ToDomain converts the persistence model to a domain Quote.
func (m *QuoteModel) ToDomain() *trade.Quote {
	q := &trade.Quote{
		BaseEntity: m.Entity(),
		CustomerID: m.CustomerID,
		Status:     m.Status,
		Total:      m.Total,
		Notes:      m.Notes,
		ValidUntil: m.ValidUntil,
		Lines:      make([]trade.QuoteLine, len(m.Lines)),
	}
	for i := range m.Lines {
		q.Lines[i] = m.Lines[i].ToDomain()
	}
	return q
}

// FromDomain populates the persistence model from a domain Quote.
func (m *QuoteModel) FromDomain(q *trade.Quote) {
	m.setEntity(q.BaseEntity)
	m.CustomerID = q.CustomerID
	m.Status = q.Status
	m.Total = q.Total
	m.Notes = q.Notes
	m.ValidUntil = q.ValidUntil
	m.Lines = make([]QuoteLineModel, len(q.Lines))
	for i := range q.Lines {
		m.Lines[i] = QuoteLineModel{
			LineColumns: LineColumnsFromDomain(&q.Lines[i], i),
			QuoteID:     q.ID,
		}
	}
}

// QuoteModelFromDomain creates a new persistence model from a domain Quote.
func QuoteModelFromDomain(q *trade.Quote) *QuoteModel {
	m := &QuoteModel{}
	m.FromDomain(q)
	return m
}

// QuoteLineModel is the persistence model for a quote line.
type QuoteLineModel struct {
	LineColumns
	QuoteID uuid.UUID     `gorm:"type:uuid;not null;index"`
	Product *ProductModel `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
}

// TableName returns the table name for GORM
func (QuoteLineModel) TableName() string {
	return "quote_lines"
}

// LineID returns the primary key of the line
func (m QuoteLineModel) LineID() uuid.UUID {
	return m.ID
}

// OrderModel is the persistence model for the Order aggregate root.
// QuoteID is unique so a quote converts into at most one order.
type OrderModel struct {
	BaseModel
	CustomerID       uuid.UUID           `gorm:"type:uuid;not null;index"`
	QuoteID          *uuid.UUID          `gorm:"type:uuid;uniqueIndex:idx_orders_quote_id"`
	ProductionStatus string              `gorm:"type:varchar(50);not null;default:'Awaiting';index"`
	PaymentStatus    trade.PaymentStatus `gorm:"type:varchar(10);not null;default:'PENDING';index"`
	Total            decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	ProductionCost   decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	ShippingMethod   string              `gorm:"type:varchar(100)"`
	ShippingAddress  string              `gorm:"type:varchar(500)"`
	ShippingCost     decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	TrackingCode     string              `gorm:"type:varchar(100)"`
	DueDate          *time.Time          `gorm:"index"`
	DeliveredAt      *time.Time
	Notes            string           `gorm:"type:text"`
	Lines            []OrderLineModel `gorm:"foreignKey:OrderID;references:ID"`
	Customer         *CustomerModel   `gorm:"foreignKey:CustomerID;constraint:OnDelete:RESTRICT"`
	Quote            *QuoteModel      `gorm:"foreignKey:QuoteID;constraint:OnDelete:SET NULL"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order.
func (m *OrderModel) ToDomain() *trade.Order {
	o := &trade.Order{
		BaseEntity:       m.Entity(),
		CustomerID:       m.CustomerID,
		QuoteID:          m.QuoteID,
		ProductionStatus: m.ProductionStatus,
		PaymentStatus:    m.PaymentStatus,
		Total:            m.Total,
		ProductionCost:   m.ProductionCost,
		Shipping: trade.Shipping{
			Method:       m.ShippingMethod,
			Address:      m.ShippingAddress,
			Cost:         m.ShippingCost,
			TrackingCode: m.TrackingCode,
		},
		DueDate:     m.DueDate,
		DeliveredAt: m.DeliveredAt,
		Notes:       m.Notes,
		Lines:       make([]trade.OrderLine, len(m.Lines)),
	}
	for i := range m.Lines {
		o.Lines[i] = m.Lines[i].ToDomain()
	}
	return o
}

// FromDomain populates the persistence model from a domain Order.
func (m *OrderModel) FromDomain(o *trade.Order) {
	m.setEntity(o.BaseEntity)
	m.CustomerID = o.CustomerID
	m.QuoteID = o.QuoteID
	m.ProductionStatus = o.ProductionStatus
	m.PaymentStatus = o.PaymentStatus
	m.Total = o.Total
	m.ProductionCost = o.ProductionCost
	m.ShippingMethod = o.Shipping.Method
	m.ShippingAddress = o.Shipping.Address
	m.ShippingCost = o.Shipping.Cost
	m.TrackingCode = o.Shipping.TrackingCode
	m.DueDate = o.DueDate
	m.DeliveredAt = o.DeliveredAt
	m.Notes = o.Notes
	m.Lines = make([]OrderLineModel, len(o.Lines))
	for i := range o.Lines {
		m.Lines[i] = OrderLineModel{
			LineColumns: LineColumnsFromDomain(&o.Lines[i], i),
			OrderID:     o.ID,
		}
	}
}

// OrderModelFromDomain creates a new persistence model from a domain Order.
func OrderModelFromDomain(o *trade.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// OrderLineModel is the persistence model for an order line.
type OrderLineModel struct {
	LineColumns
	OrderID uuid.UUID     `gorm:"type:uuid;not null;index"`
	Product *ProductModel `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
}

// TableName returns the table name for GORM
func (OrderLineModel) TableName() string {
	return "order_lines"
}

// LineID returns the primary key of the line
func (m OrderLineModel) LineID() uuid.UUID {
	return m.ID
}

// PaymentModel is the persistence model for the Payment entity.
type PaymentModel struct {
	BaseModel
	OrderID uuid.UUID           `gorm:"type:uuid;not null;index"`
	Amount  decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	Method  trade.PaymentMethod `gorm:"type:varchar(10);not null;index"`
	PaidAt  time.Time           `gorm:"not null;index"`
	Notes   string              `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment.
func (m *PaymentModel) ToDomain() *trade.Payment {
	return &trade.Payment{
		BaseEntity: m.Entity(),
		OrderID:    m.OrderID,
		Amount:     m.Amount,
		Method:     m.Method,
		PaidAt:     m.PaidAt,
		Notes:      m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Payment.
func (m *PaymentModel) FromDomain(p *trade.Payment) {
	m.setEntity(p.BaseEntity)
	m.OrderID = p.OrderID
	m.Amount = p.Amount
	m.Method = p.Method
	m.PaidAt = p.PaidAt
	m.Notes = p.Notes
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment.
func PaymentModelFromDomain(p *trade.Payment) *PaymentModel {
	m := &PaymentModel{}
	m.FromDomain(p)
	return m
}
