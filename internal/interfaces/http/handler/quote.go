package handler

import (
	"github.com/gin-gonic/gin"
	printingapp "github.com/printdesk/backend/internal/application/printing"
	tradeapp "github.com/printdesk/backend/internal/application/trade"
)

// QuoteHandler handles quote, quote line and conversion endpoints
type QuoteHandler struct {
	BaseHandler
	quoteService      *tradeapp.QuoteService
	conversionService *tradeapp.ConversionService
	documentService   *printingapp.DocumentService
}

// NewQuoteHandler creates a new QuoteHandler
func NewQuoteHandler(
	quoteService *tradeapp.QuoteService,
	conversionService *tradeapp.ConversionService,
	documentService *printingapp.DocumentService,
) *QuoteHandler {
	return &QuoteHandler{
		quoteService:      quoteService,
		conversionService: conversionService,
		documentService:   documentService,
	}
}

// quoteListQuery is the raw query of the quote list
type quoteListQuery struct {
	Status     string `form:"status" binding:"omitempty,oneof=Open Approved Rejected"`
	CustomerID string `form:"customer_id"`
	Search     string `form:"search"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string `form:"order_by" binding:"omitempty,oneof=created_at total status"`
	OrderDir   string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// Create godoc
// @ID           createQuote
// @Summary      Create a quote
// @Description  Creates the quote with its lines. Line subtotals are priced from the product unless a subtotal is given.
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        request body tradeapp.CreateQuoteRequest true "Quote"
// @Success      201 {object} APIResponse[tradeapp.QuoteResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /quotes [post]
func (h *QuoteHandler) Create(c *gin.Context) {
	var req tradeapp.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	quote, err := h.quoteService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, quote)
}

// GetByID godoc
// @ID           getQuoteById
// @Summary      Get a quote with its lines
// @Tags         quotes
// @Produce      json
// @Param        id path string true "Quote ID" format(uuid)
// @Success      200 {object} APIResponse[tradeapp.QuoteResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /quotes/{id} [get]
func (h *QuoteHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "id", "quote")
	if !ok {
		return
	}

	quote, err := h.quoteService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, quote)
}

// List godoc
// @ID           listQuotes
// @Summary      List quotes
// @Tags         quotes
// @Produce      json
// @Param        status query string false "Status" Enums(Open, Approved, Rejected)
// @Param        customer_id query string false "Customer ID" format(uuid)
// @Param        search query string false "Search in customer name and notes"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Param        order_by query string false "Sort field" Enums(created_at, total, status)
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]tradeapp.QuoteResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /quotes [get]
func (h *QuoteHandler) List(c *gin.Context) {
	var query quoteListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.ValidationError(c, err)
		return
	}
	customerID, err := queryUUID(c, "customer_id")
	if err != nil {
		h.InvalidID(c, "Invalid customer ID format")
		return
	}

	filter := tradeapp.QuoteListFilter{
		Status:     query.Status,
		CustomerID: customerID,
		Search:     query.Search,
		Page:       query.Page,
		PageSize:   query.PageSize,
		OrderBy:    query.OrderBy,
		OrderDir:   query.OrderDir,
	}
	quotes, total, err := h.quoteService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, quotes, total, filter.Page, filter.PageSize)
}

// Update godoc
// @ID           updateQuote
// @Summary      Update quote header fields
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        id path string true "Quote ID" format(uuid)
// @Param        request body tradeapp.UpdateQuoteRequest true "Changes"
// @Success      200 {object} APIResponse[tradeapp.QuoteResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /quotes/{id} [put]
func (h *QuoteHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "id", "quote")
	if !ok {
		return
	}

	var req tradeapp.UpdateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	quote, err := h.quoteService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, quote)
}

// ChangeStatus godoc
// @ID           changeQuoteStatus
// @Summary      Change a quote's status
// @Description  Open and Rejected can be swapped, Open can become Approved. Approved is final.
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        id path string true "Quote ID" format(uuid)
// @Param        request body tradeapp.ChangeQuoteStatusRequest true "New status"
// @Success      200 {object} APIResponse[tradeapp.QuoteResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /quotes/{id}/status [patch]
func (h *QuoteHandler) ChangeStatus(c *gin.Context) {
	id, ok := h.parseID(c, "id", "quote")
	if !ok {
		return
	}

	var req tradeapp.ChangeQuoteStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	quote, err := h.quoteService.ChangeStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, quote)
}

// Delete godoc
// @ID           deleteQuote
// @Summary      Delete a quote
// @Tags         quotes
// @Param        id path string true "Quote ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /quotes/{id} [delete]
func (h *QuoteHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id", "quote")
	if !ok {
		return
	}

	if err := h.quoteService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// Convert godoc
// @ID           convertQuote
// @Summary      Convert a quote into an order
// @Description  Copies every line and the total to a new order and approves the quote. A quote converts at most once.
// @Tags         quotes
// @Produce      json
// @Param        id path string true "Quote ID" format(uuid)
// @Success      201 {object} APIResponse[tradeapp.OrderResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /quotes/{id}/convert [post]
func (h *QuoteHandler) Convert(c *gin.Context) {
	id, ok := h.parseID(c, "id", "quote")
	if !ok {
		return
	}

	order, err := h.conversionService.Convert(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, order)
}

// PDF godoc
// @ID           getQuotePdf
// @Summary      Render a quote as PDF
// @Tags         quotes
// @Produce      application/pdf
// @Param        id path string true "Quote ID" format(uuid)
// @Success      200 {file} binary
// @Failure      404 {object} dto.ErrorResponse
// @Failure      503 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /quotes/{id}/pdf [get]
func (h *QuoteHandler) PDF(c *gin.Context) {
	id, ok := h.parseID(c, "id", "quote")
	if !ok {
		return
	}

	doc, err := h.documentService.QuotePDF(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.sendPDF(c, doc.FileName, printingapp.ContentType, doc.Content)
}

// ListLines godoc
// @ID           listQuoteLines
// @Summary      List the lines of a quote
// @Tags         quotes
// @Produce      json
// @Param        id path string true "Quote ID" format(uuid)
// @Success      200 {object} APIResponse[[]tradeapp.LineResponse]
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /quotes/{id}/lines [get]
func (h *QuoteHandler) ListLines(c *gin.Context) {
	id, ok := h.parseID(c, "id", "quote")
	if !ok {
		return
	}

	lines, err := h.quoteService.ListLines(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, lines)
}

// AddLine godoc
// @ID           addQuoteLine
// @Summary      Add a line to a quote
// @Description  Returns the quote with its recalculated total
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        id path string true "Quote ID" format(uuid)
// @Param        request body tradeapp.LineRequest true "Line"
// @Success      201 {object} APIResponse[tradeapp.QuoteResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /quotes/{id}/lines [post]
func (h *QuoteHandler) AddLine(c *gin.Context) {
	id, ok := h.parseID(c, "id", "quote")
	if !ok {
		return
	}

	var req tradeapp.LineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	quote, err := h.quoteService.AddLine(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, quote)
}

// UpdateLine godoc
// @ID           updateQuoteLine
// @Summary      Update a quote line
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        id path string true "Quote ID" format(uuid)
// @Param        line_id path string true "Line ID" format(uuid)
// @Param        request body tradeapp.LineRequest true "Line"
// @Success      200 {object} APIResponse[tradeapp.QuoteResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /quotes/{id}/lines/{line_id} [put]
func (h *QuoteHandler) UpdateLine(c *gin.Context) {
	id, ok := h.parseID(c, "id", "quote")
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

	quote, err := h.quoteService.UpdateLine(c.Request.Context(), id, lineID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, quote)
}

// RemoveLine godoc
// @ID           removeQuoteLine
// @Summary      Remove a quote line
// @Tags         quotes
// @Produce      json
// @Param        id path string true "Quote ID" format(uuid)
// @Param        line_id path string true "Line ID" format(uuid)
// @Success      200 {object} APIResponse[tradeapp.QuoteResponse]
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /quotes/{id}/lines/{line_id} [delete]
func (h *QuoteHandler) RemoveLine(c *gin.Context) {
	id, ok := h.parseID(c, "id", "quote")
	if !ok {
		return
	}
	lineID, ok := h.parseID(c, "line_id", "line")
	if !ok {
		return
	}

	quote, err := h.quoteService.RemoveLine(c.Request.Context(), id, lineID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, quote)
}
