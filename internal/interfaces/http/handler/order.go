package handler

import (
	"github.com/gin-gonic/gin"
	printingapp "github.com/printdesk/backend/internal/application/printing"
	tradeapp "github.com/printdesk/backend/internal/application/trade"
)

// OrderHandler handles order and order line endpoints
type OrderHandler struct {
	BaseHandler
	orderService    *tradeapp.OrderService
	documentService *printingapp.DocumentService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *tradeapp.OrderService, documentService *printingapp.DocumentService) *OrderHandler {
	return &OrderHandler{
		orderService:    orderService,
		documentService: documentService,
	}
}

type orderListQuery struct {
	PaymentStatus    string `form:"payment_status" binding:"omitempty,oneof=PENDING PARTIAL PAID"`
	ProductionStatus string `form:"production_status" binding:"max=50"`
	CustomerID       string `form:"customer_id"`
	Page             int    `form:"page" binding:"omitempty,min=1"`
	PageSize         int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy          string `form:"order_by" binding:"omitempty,oneof=created_at total due_date"`
	OrderDir         string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// Create godoc
// @ID           createOrder
// @Summary      Create an order without a quote
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request body tradeapp.CreateOrderRequest true "Order"
// @Success      201 {object} APIResponse[tradeapp.OrderResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var req tradeapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, order)
}

// GetByID godoc
// @ID           getOrderById
// @Summary      Get an order with its lines and balance
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} APIResponse[tradeapp.OrderResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "id", "order")
	if !ok {
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, order)
}

// List godoc
// @ID           listOrders
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Param        payment_status query string false "Payment status" Enums(PENDING, PARTIAL, PAID)
// @Param        production_status query string false "Production status"
// @Param        customer_id query string false "Customer ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Param        order_by query string false "Sort field" Enums(created_at, total, due_date)
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]tradeapp.OrderResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	var query orderListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.ValidationError(c, err)
		return
	}
	customerID, err := queryUUID(c, "customer_id")
	if err != nil {
		h.InvalidID(c, "Invalid customer ID format")
		return
	}

	filter := tradeapp.OrderListFilter{
		PaymentStatus:    query.PaymentStatus,
		ProductionStatus: query.ProductionStatus,
		CustomerID:       customerID,
		Page:             query.Page,
		PageSize:         query.PageSize,
		OrderBy:          query.OrderBy,
		OrderDir:         query.OrderDir,
	}
	orders, total, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}

// Update godoc
// @ID           updateOrder
// @Summary      Update an order
// @Description  When lines is present every existing line is replaced and the total recalculated
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        request body tradeapp.UpdateOrderRequest true "Changes"
// @Success      200 {object} APIResponse[tradeapp.OrderResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /orders/{id} [put]
func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "id", "order")
	if !ok {
		return
	}

	var req tradeapp.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	order, err := h.orderService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, order)
}

// SetProductionStatus godoc
// @ID           setOrderProductionStatus
// @Summary      Change the production status
// @Description  Moving to Delivered records the delivery time
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        request body tradeapp.ProductionStatusRequest true "Status"
// @Success      200 {object} APIResponse[tradeapp.OrderResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /orders/{id}/production-status [patch]
func (h *OrderHandler) SetProductionStatus(c *gin.Context) {
	id, ok := h.parseID(c, "id", "order")
	if !ok {
		return
	}

	var req tradeapp.ProductionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	order, err := h.orderService.SetProductionStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, order)
}

// Delete godoc
// @ID           deleteOrder
// @Summary      Delete an order with its lines and payments
// @Tags         orders
// @Param        id path string true "Order ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /orders/{id} [delete]
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id", "order")
	if !ok {
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// PDF godoc
// @ID           getOrderPdf
// @Summary      Render an order as PDF
// @Tags         orders
// @Produce      application/pdf
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {file} binary
// @Failure      404 {object} dto.ErrorResponse
// @Failure      503 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /orders/{id}/pdf [get]
func (h *OrderHandler) PDF(c *gin.Context) {
	id, ok := h.parseID(c, "id", "order")
	if !ok {
		return
	}

	doc, err := h.documentService.OrderPDF(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.sendPDF(c, doc.FileName, printingapp.ContentType, doc.Content)
}

// ListLines godoc
// @ID           listOrderLines
// @Summary      List the lines of an order
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} APIResponse[[]tradeapp.LineResponse]
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /orders/{id}/lines [get]
func (h *OrderHandler) ListLines(c *gin.Context) {
	id, ok := h.parseID(c, "id", "order")
	if !ok {
		return
	}

	lines, err := h.orderService.ListLines(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, lines)
}

// AddLine godoc
// @ID           addOrderLine
// @Summary      Add a line to an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        request body tradeapp.LineRequest true "Line"
// @Success      201 {object} APIResponse[tradeapp.OrderResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /orders/{id}/lines [post]
func (h *OrderHandler) AddLine(c *gin.Context) {
	id, ok := h.parseID(c, "id", "order")
	if !ok {
		return
	}

	var req tradeapp.LineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	order, err := h.orderService.AddLine(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, order)
}

// UpdateLine godoc
// @ID           updateOrderLine
// @Summary      Update an order line
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        line_id path string true "Line ID" format(uuid)
// @Param        request body tradeapp.LineRequest true "Line"
// @Success      200 {object} APIResponse[tradeapp.OrderResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /orders/{id}/lines/{line_id} [put]
func (h *OrderHandler) UpdateLine(c *gin.Context) {
	id, ok := h.parseID(c, "id", "order")
	if !ok {
		return
	}
	lineID, ok := h.parseID(c, "line_id", "line")
	if !ok {
		return
	}

	var req tradeapp.LineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	order, err := h.orderService.UpdateLine(c.Request.Context(), id, lineID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, order)
}

// RemoveLine godoc
// @ID           removeOrderLine
// @Summary      Remove an order line
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        line_id path string true "Line ID" format(uuid)
// @Success      200 {object} APIResponse[tradeapp.OrderResponse]
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /orders/{id}/lines/{line_id} [delete]
func (h *OrderHandler) RemoveLine(c *gin.Context) {
	id, ok := h.parseID(c, "id", "order")
	if !ok {
		return
	}
	lineID, ok := h.parseID(c, "line_id", "line")
	if !ok {
		return
	}

	order, err := h.orderService.RemoveLine(c.Request.Context(), id, lineID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, order)
}
