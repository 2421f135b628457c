package trade

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/printdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentMethod enumerates accepted payment methods
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "CASH"
	PaymentMethodCard   PaymentMethod = "CARD"
	PaymentMethodPix    PaymentMethod = "PIX"
	PaymentMethodBoleto PaymentMethod = "BOLETO"
)

// IsValid checks if the method is a valid PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodPix, PaymentMethodBoleto:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// AllPaymentMethods returns every payment method in display order
func AllPaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentMethodCash, PaymentMethodCard, PaymentMethodPix, PaymentMethodBoleto}
}

// ErrInvalidAmount is returned for zero or negative payments
var ErrInvalidAmount = shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be greater than zero")

// Payment is money received against an order
type Payment struct {
	shared.BaseEntity
	OrderID uuid.UUID
	Amount  decimal.Decimal
	Method  PaymentMethod
	PaidAt  time.Time
	Notes   string
}

// NewPayment creates a payment. paidAt defaults to now.
func NewPayment(orderID uuid.UUID, amount decimal.Decimal, method PaymentMethod, paidAt *time.Time, notes string) (*Payment, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	method = PaymentMethod(strings.ToUpper(string(method)))
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method must be CASH, CARD, PIX or BOLETO")
	}

	p := &Payment{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    orderID,
		Amount:     shared.RoundMoney(amount),
		Method:     method,
		PaidAt:     time.Now(),
		Notes:      strings.TrimSpace(notes),
	}
	if paidAt != nil && !paidAt.IsZero() {
		p.PaidAt = *paidAt
	}
	return p, nil
}
