package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/printdesk/backend/internal/domain/shared"
	"github.com/printdesk/backend/internal/infrastructure/logger"
	"github.com/printdesk/backend/internal/interfaces/http/dto"
	"github.com/printdesk/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

const unexpectedError = "An unexpected error occurred"

// BaseHandler writes the dto envelope for every handler. Failure bodies
// always carry the request id.
type BaseHandler struct{}

func getUserID(c *gin.Context) (uuid.UUID, error) {
	if id, ok := middleware.GetJWTUserUUID(c); ok {
		return id, nil
	}
	return uuid.Nil, errors.New("no authenticated user on the request")
}

func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta adds the paging block for list endpoints
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func (h *BaseHandler) Error(c *gin.Context, status int, code, message string) {
	c.JSON(status, dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

func (h *BaseHandler) InvalidID(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidID, message)
}

func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// ValidationError reports a binding failure with per-field details
func (h *BaseHandler) ValidationError(c *gin.Context, err error) {
	middleware.HandleValidationError(c, err)
}

// HandleDomainError answers with the status mapped from a DomainError code.
// Any other error is a 500 whose message is withheld; 5xx answers are logged.
func (h *BaseHandler) HandleDomainError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	code, status, message := dto.ErrCodeInternal, http.StatusInternalServerError, unexpectedError

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code = dto.NormalizeErrorCode(domainErr.Code)
		status = dto.GetHTTPStatus(code)
		message = domainErr.Message
	}
	if status >= http.StatusInternalServerError {
		h.logFailure(c, err, status)
	}
	h.Error(c, status, code, message)
}

func (h *BaseHandler) logFailure(c *gin.Context, err error, status int) {
	logger.GetGinLogger(c).Error("Request failed",
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.String("method", c.Request.Method),
		zap.String("route", c.FullPath()),
		zap.Int("status", status),
		zap.Error(err),
	)
}

// parseID reads a UUID path parameter. When it returns false the 400 has
// been written.
func (h *BaseHandler) parseID(c *gin.Context, param, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		h.InvalidID(c, "Invalid "+label+" ID format")
		return uuid.Nil, false
	}
	return id, true
}

func (h *BaseHandler) sendPDF(c *gin.Context, fileName, contentType string, content []byte) {
	c.Header("Content-Disposition", `inline; filename="`+fileName+`"`)
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, contentType, content)
}
