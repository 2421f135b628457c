package handler

import (
	"github.com/gin-gonic/gin"
	tradeapp "github.com/printdesk/backend/internal/application/trade"
)

// PaymentHandler handles payment endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService *tradeapp.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *tradeapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

type paymentListQuery struct {
	Method   string `form:"method" binding:"omitempty,oneof=CASH CARD PIX BOLETO"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// Record godoc
// @ID           recordPayment
// @Summary      Record a payment on an order
// @Description  Recomputes the payment status. Overpayment is allowed and yields a negative receivable.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        request body tradeapp.RecordPaymentRequest true "Payment"
// @Success      201 {object} APIResponse[tradeapp.PaymentResult]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /orders/{id}/payments [post]
func (h *PaymentHandler) Record(c *gin.Context) {
	orderID, ok := h.parseID(c, "id", "order")
	if !ok {
		return
	}

	var req tradeapp.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.paymentService.Record(c.Request.Context(), orderID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, result)
}

// ListByOrder godoc
// @ID           listOrderPayments
// @Summary      List the payments of an order
// @Tags         payments
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} APIResponse[tradeapp.OrderPaymentsResponse]
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /orders/{id}/payments [get]
func (h *PaymentHandler) ListByOrder(c *gin.Context) {
	orderID, ok := h.parseID(c, "id", "order")
	if !ok {
		return
	}

	payments, err := h.paymentService.ListByOrder(c.Request.Context(), orderID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, payments)
}

// Delete godoc
// @ID           deletePayment
// @Summary      Delete a payment
// @Description  Returns the order balance after removal
// @Tags         payments
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        payment_id path string true "Payment ID" format(uuid)
// @Success      200 {object} APIResponse[tradeapp.PaymentResult]
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /orders/{id}/payments/{payment_id} [delete]
func (h *PaymentHandler) Delete(c *gin.Context) {
	orderID, ok := h.parseID(c, "id", "order")
	if !ok {
		return
	}
	paymentID, ok := h.parseID(c, "payment_id", "payment")
	if !ok {
		return
	}

	result, err := h.paymentService.Delete(c.Request.Context(), orderID, paymentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}

// List godoc
// @ID           listPayments
// @Summary      List payments across orders
// @Tags         payments
// @Produce      json
// @Param        order_id query string false "Order ID" format(uuid)
// @Param        method query string false "Method" Enums(CASH, CARD, PIX, BOLETO)
// @Param        from query string false "First day, YYYY-MM-DD"
// @Param        to query string false "Last day, YYYY-MM-DD"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]tradeapp.PaymentResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /payments [get]
func (h *PaymentHandler) List(c *gin.Context) {
	var query paymentListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.ValidationError(c, err)
		return
	}
	orderID, err := queryUUID(c, "order_id")
	if err != nil {
		h.InvalidID(c, "Invalid order ID format")
		return
	}
	period, ok := h.bindPeriod(c)
	if !ok {
		return
	}

	filter := tradeapp.PaymentListFilter{
		OrderID:  orderID,
		Method:   query.Method,
		From:     period.From,
		To:       period.To,
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	payments, total, err := h.paymentService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, payments, total, filter.Page, filter.PageSize)
}
