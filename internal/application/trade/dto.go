package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/printdesk/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// ==================== Line DTOs ====================

// LineRequest is a quote or order line in create and update requests.
// A non-null subtotal is stored verbatim and locks the line price.
type LineRequest struct {
	ProductID   *uuid.UUID       `json:"product_id"`
	Description string           `json:"description" binding:"max=255"`
	Quantity    *int             `json:"quantity" binding:"omitempty,min=0"`
	Width       *decimal.Decimal `json:"width"`
	Height      *decimal.Decimal `json:"height"`
	Subtotal    *decimal.Decimal `json:"subtotal"`
}

// ToInput converts the request to a domain line input. Quantity defaults to 1.
func (r LineRequest) ToInput() trade.LineInput {
	qty := 1
	if r.Quantity != nil {
		qty = *r.Quantity
	}
	return trade.LineInput{
		ProductID:   r.ProductID,
		Description: r.Description,
		Quantity:    qty,
		Width:       r.Width,
		Height:      r.Height,
		Subtotal:    r.Subtotal,
	}
}

// LineResponse represents a quote or order line in API responses
type LineResponse struct {
	ID          uuid.UUID        `json:"id"`
	ProductID   *uuid.UUID       `json:"product_id"`
	ProductName string           `json:"product_name"`
	Description string           `json:"description"`
	Quantity    int              `json:"quantity"`
	Width       *decimal.Decimal `json:"width"`
	Height      *decimal.Decimal `json:"height"`
	Subtotal    decimal.Decimal  `json:"subtotal"`
	PriceLocked bool             `json:"price_locked"`
}

// ==================== Quote DTOs ====================

// CreateQuoteRequest represents a request to create a quote with its lines
type CreateQuoteRequest struct {
	CustomerID uuid.UUID     `json:"customer_id" binding:"required"`
	Notes      string        `json:"notes"`
	ValidUntil *time.Time    `json:"valid_until"`
	Lines      []LineRequest `json:"lines" binding:"dive"`
}

// UpdateQuoteRequest represents a request to update quote header fields
type UpdateQuoteRequest struct {
	CustomerID *uuid.UUID `json:"customer_id"`
	Notes      *string    `json:"notes"`
	ValidUntil *time.Time `json:"valid_until"`
}

// ChangeQuoteStatusRequest represents a request to change a quote's status
type ChangeQuoteStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Open Approved Rejected"`
}

// QuoteResponse represents a quote in API responses
type QuoteResponse struct {
	ID           uuid.UUID       `json:"id"`
	CustomerID   uuid.UUID       `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	Status       string          `json:"status"`
	Total        decimal.Decimal `json:"total"`
	Notes        string          `json:"notes"`
	ValidUntil   *time.Time      `json:"valid_until"`
	LineCount    int             `json:"line_count"`
	Lines        []LineResponse  `json:"lines,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// QuoteListFilter represents filter options for quote list
type QuoteListFilter struct {
	Status     string     `form:"status" binding:"omitempty,oneof=Open Approved Rejected"`
	CustomerID *uuid.UUID `form:"customer_id"`
	Search     string     `form:"search"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by" binding:"omitempty,oneof=created_at total status"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ==================== Order DTOs ====================

// ShippingDTO carries shipping metadata
type ShippingDTO struct {
	Method       string          `json:"method" binding:"max=50"`
	Address      string          `json:"address"`
	Cost         decimal.Decimal `json:"cost"`
	TrackingCode string          `json:"tracking_code" binding:"max=100"`
}

// CreateOrderRequest represents a request to create an order directly
type CreateOrderRequest struct {
	CustomerID       uuid.UUID       `json:"customer_id" binding:"required"`
	ProductionStatus string          `json:"production_status" binding:"max=50"`
	ProductionCost   decimal.Decimal `json:"production_cost"`
	Shipping         ShippingDTO     `json:"shipping"`
	DueDate          *time.Time      `json:"due_date"`
	Notes            string          `json:"notes"`
	Lines            []LineRequest   `json:"lines" binding:"dive"`
}

// UpdateOrderRequest represents a request to update an order.
// When Lines is present every existing line is replaced.
type UpdateOrderRequest struct {
	CustomerID       *uuid.UUID       `json:"customer_id"`
	ProductionStatus *string          `json:"production_status" binding:"omitempty,max=50"`
	ProductionCost   *decimal.Decimal `json:"production_cost"`
	Shipping         *ShippingDTO     `json:"shipping"`
	DueDate          *time.Time       `json:"due_date"`
	Notes            *string          `json:"notes"`
	Lines            *[]LineRequest   `json:"lines"`
}

// ProductionStatusRequest represents a request to change the production status
type ProductionStatusRequest struct {
	Status string `json:"status" binding:"required,max=50"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID               uuid.UUID        `json:"id"`
	CustomerID       uuid.UUID        `json:"customer_id"`
	CustomerName     string           `json:"customer_name"`
	QuoteID          *uuid.UUID       `json:"quote_id"`
	ProductionStatus string           `json:"production_status"`
	PaymentStatus    string           `json:"payment_status"`
	Total            decimal.Decimal  `json:"total"`
	Paid             *decimal.Decimal `json:"paid,omitempty"`
	Receivable       *decimal.Decimal `json:"receivable,omitempty"`
	ProductionCost   decimal.Decimal  `json:"production_cost"`
	Profit           decimal.Decimal  `json:"profit"`
	Shipping         ShippingDTO      `json:"shipping"`
	DueDate          *time.Time       `json:"due_date"`
	DeliveredAt      *time.Time       `json:"delivered_at"`
	Notes            string           `json:"notes"`
	LineCount        int              `json:"line_count"`
	Lines            []LineResponse   `json:"lines,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// OrderListFilter represents filter options for order list
type OrderListFilter struct {
	PaymentStatus    string     `form:"payment_status" binding:"omitempty,oneof=PENDING PARTIAL PAID"`
	ProductionStatus string     `form:"production_status"`
	CustomerID       *uuid.UUID `form:"customer_id"`
	Page             int        `form:"page" binding:"omitempty,min=1"`
	PageSize         int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy          string     `form:"order_by" binding:"omitempty,oneof=created_at total due_date"`
	OrderDir         string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ==================== Payment DTOs ====================

// RecordPaymentRequest represents a request to record a payment against an order
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Method string          `json:"method" binding:"required,oneof=CASH CARD PIX BOLETO cash card pix boleto"`
	PaidAt *time.Time      `json:"paid_at"`
	Notes  string          `json:"notes"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID        uuid.UUID       `json:"id"`
	OrderID   uuid.UUID       `json:"order_id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	PaidAt    time.Time       `json:"paid_at"`
	Notes     string          `json:"notes"`
	CreatedAt time.Time       `json:"created_at"`
}

// PaymentResult is returned after a payment is recorded or deleted
type PaymentResult struct {
	Payment       *PaymentResponse `json:"payment,omitempty"`
	OrderID       uuid.UUID        `json:"order_id"`
	PaymentStatus string           `json:"payment_status"`
	Total         decimal.Decimal  `json:"total"`
	Paid          decimal.Decimal  `json:"paid"`
	Receivable    decimal.Decimal  `json:"receivable"`
}

// OrderPaymentsResponse lists the payments of one order with its balance
type OrderPaymentsResponse struct {
	Payments      []PaymentResponse `json:"payments"`
	PaymentStatus string            `json:"payment_status"`
	Total         decimal.Decimal   `json:"total"`
	Paid          decimal.Decimal   `json:"paid"`
	Receivable    decimal.Decimal   `json:"receivable"`
}

// PaymentListFilter represents filter options for the payment list
type PaymentListFilter struct {
	OrderID  *uuid.UUID `form:"order_id"`
	Method   string     `form:"method" binding:"omitempty,oneof=CASH CARD PIX BOLETO"`
	From     *time.Time `form:"from" time_format:"2006-01-02"`
	To       *time.Time `form:"to" time_format:"2006-01-02"`
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ==================== Converters ====================

// ToLineResponse converts a domain line to LineResponse
func ToLineResponse(l *trade.Line) LineResponse {
	return LineResponse{
		ID:          l.ID,
		ProductID:   l.ProductID,
		ProductName: l.ProductName,
		Description: l.Description,
		Quantity:    l.Quantity,
		Width:       l.Width,
		Height:      l.Height,
		Subtotal:    l.Subtotal,
		PriceLocked: l.PriceLocked,
	}
}

// ToLineResponses converts domain lines to responses
func ToLineResponses(lines []trade.Line) []LineResponse {
	responses := make([]LineResponse, len(lines))
	for i := range lines {
		responses[i] = ToLineResponse(&lines[i])
	}
	return responses
}

// ToQuoteResponse converts a domain Quote to QuoteResponse with lines
func ToQuoteResponse(q *trade.Quote) QuoteResponse {
	resp := ToQuoteListResponse(q)
	resp.Lines = ToLineResponses(q.Lines)
	return resp
}

// ToQuoteListResponse converts a domain Quote to QuoteResponse without lines
func ToQuoteListResponse(q *trade.Quote) QuoteResponse {
	return QuoteResponse{
		ID:         q.ID,
		CustomerID: q.CustomerID,
		Status:     q.Status.String(),
		Total:      q.Total,
		Notes:      q.Notes,
		ValidUntil: q.ValidUntil,
		LineCount:  q.LineCount(),
		CreatedAt:  q.CreatedAt,
		UpdatedAt:  q.UpdatedAt,
	}
}

// ToOrderResponse converts a domain Order to OrderResponse with lines
func ToOrderResponse(o *trade.Order) OrderResponse {
	resp := ToOrderListResponse(o)
	resp.Lines = ToLineResponses(o.Lines)
	return resp
}

// ToOrderListResponse converts a domain Order to OrderResponse without lines
func ToOrderListResponse(o *trade.Order) OrderResponse {
	return OrderResponse{
		ID:               o.ID,
		CustomerID:       o.CustomerID,
		QuoteID:          o.QuoteID,
		ProductionStatus: o.ProductionStatus,
		PaymentStatus:    o.PaymentStatus.String(),
		Total:            o.Total,
		ProductionCost:   o.ProductionCost,
		Profit:           o.Profit(),
		Shipping: ShippingDTO{
			Method:       o.Shipping.Method,
			Address:      o.Shipping.Address,
			Cost:         o.Shipping.Cost,
			TrackingCode: o.Shipping.TrackingCode,
		},
		DueDate:     o.DueDate,
		DeliveredAt: o.DeliveredAt,
		Notes:       o.Notes,
		LineCount:   len(o.Lines),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

// ToPaymentResponse converts a domain Payment to PaymentResponse
func ToPaymentResponse(p *trade.Payment) PaymentResponse {
	return PaymentResponse{
		ID:        p.ID,
		OrderID:   p.OrderID,
		Amount:    p.Amount,
		Method:    p.Method.String(),
		PaidAt:    p.PaidAt,
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
	}
}

// ToPaymentResponses converts domain payments to responses
func ToPaymentResponses(payments []trade.Payment) []PaymentResponse {
	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToPaymentResponse(&payments[i])
	}
	return responses
}

func (s ShippingDTO) toDomain() trade.Shipping {
	return trade.Shipping{
		Method:       s.Method,
		Address:      s.Address,
		Cost:         s.Cost,
		TrackingCode: s.TrackingCode,
	}
}

func toLineInputs(reqs []LineRequest) []trade.LineInput {
	inputs := make([]trade.LineInput, len(reqs))
	for i, r := range reqs {
		inputs[i] = r.ToInput()
	}
	return inputs
}
