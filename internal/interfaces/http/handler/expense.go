package handler

import (
	"github.com/gin-gonic/gin"
	financeapp "github.com/printdesk/backend/internal/application/finance"
	"github.com/shopspring/decimal"
)

// ExpenseHandler handles general expense endpoints
type ExpenseHandler struct {
	BaseHandler
	expenseService *financeapp.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService *financeapp.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

type expenseListQuery struct {
	Category string `form:"category" binding:"max=50"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ExpenseListData is a page of expenses with the sum over the whole filter
// @Description Expense page with the filtered total amount
type ExpenseListData struct {
	Items       []financeapp.ExpenseResponse `json:"items"`
	TotalAmount decimal.Decimal              `json:"total_amount" swaggertype:"string" example:"1250.00"`
}

// Create godoc
// @ID           createExpense
// @Summary      Record an expense
// @Description  The date defaults to today
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        request body financeapp.CreateExpenseRequest true "Expense"
// @Success      201 {object} APIResponse[financeapp.ExpenseResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req financeapp.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	expense, err := h.expenseService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, expense)
}

// GetByID godoc
// @ID           getExpenseById
// @Summary      Get an expense
// @Tags         expenses
// @Produce      json
// @Param        id path string true "Expense ID" format(uuid)
// @Success      200 {object} APIResponse[financeapp.ExpenseResponse]
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /expenses/{id} [get]
func (h *ExpenseHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "id", "expense")
	if !ok {
		return
	}

	expense, err := h.expenseService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, expense)
}

// List godoc
// @ID           listExpenses
// @Summary      List expenses
// @Tags         expenses
// @Produce      json
// @Param        category query string false "Category"
// @Param        from query string false "First day, YYYY-MM-DD"
// @Param        to query string false "Last day, YYYY-MM-DD"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[ExpenseListData]
// @Failure      400 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	var query expenseListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.ValidationError(c, err)
		return
	}
	period, ok := h.bindPeriod(c)
	if !ok {
		return
	}

	filter := financeapp.ExpenseListFilter{
		Category: query.Category,
		From:     period.From,
		To:       period.To,
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	result, err := h.expenseService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, ExpenseListData{Items: result.Items, TotalAmount: result.TotalAmount},
		result.Total, filter.Page, filter.PageSize)
}

// Update godoc
// @ID           updateExpense
// @Summary      Update an expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        id path string true "Expense ID" format(uuid)
// @Param        request body financeapp.UpdateExpenseRequest true "Changes"
// @Success      200 {object} APIResponse[financeapp.ExpenseResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /expenses/{id} [put]
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "id", "expense")
	if !ok {
		return
	}

	var req financeapp.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	expense, err := h.expenseService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, expense)
}

// Delete godoc
// @ID           deleteExpense
// @Summary      Delete an expense
// @Tags         expenses
// @Param        id path string true "Expense ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id", "expense")
	if !ok {
		return
	}

	if err := h.expenseService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
