package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/printdesk/backend/internal/interfaces/http/dto"
)

var setupValidatorOnce sync.Once

// SetupValidator makes validation errors report JSON (or form) field names
func SetupValidator() {
	setupValidatorOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(func(fld reflect.StructField) string {
				name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name == "" {
					name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
				}
				return name
			})
		}
	})
}

// ValidationDetails lists the offending fields of a binding error
func ValidationDetails(err error) []dto.ValidationDetail {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		details := make([]dto.ValidationDetail, 0, len(validationErrors))
		for _, e := range validationErrors {
			details = append(details, dto.ValidationDetail{
				Field:   fieldPath(e),
				Message: fieldMessage(e),
			})
		}
		return details
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return []dto.ValidationDetail{{
			Field:   typeErr.Field,
			Message: "Must be of type " + typeErr.Type.String(),
		}}
	}
	return nil
}

// HandleValidationError answers a failed ShouldBind call.
// Oversized bodies get 413, malformed JSON gets INVALID_JSON, the rest gets field details.
func HandleValidationError(c *gin.Context, err error) {
	requestID := GetRequestID(c)

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeBodyTooLarge, "Request body exceeds maximum allowed size", requestID))
		return
	}

	details := ValidationDetails(err)
	if len(details) == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeInvalidJSON, "Malformed request: "+err.Error(), requestID))
		return
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
		"Request validation failed", requestID, details))
}

// fieldPath drops the top-level struct name from the namespace: "lines[0].quantity"
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return e.Field()
}

// fieldMessages holds one text per validator tag; %s is the tag parameter.
// Length tags on strings read as characters.
var fieldMessages = map[string]string{
	"required": "This field is required",
	"email":    "Invalid email format",
	"min":      "Must be at least %s",
	"max":      "Must be at most %s",
	"len":      "Must be exactly %s characters",
	"uuid":     "Invalid UUID format",
	"oneof":    "Must be one of: %s",
	"gte":      "Must be greater than or equal to %s",
	"lte":      "Must be less than or equal to %s",
	"gt":       "Must be greater than %s",
	"lt":       "Must be less than %s",
	"hexcolor": "Must be a hex color such as #1A2B3C",
	"url":      "Invalid URL format",
	"numeric":  "Must be numeric",
}

func fieldMessage(e validator.FieldError) string {
	format, ok := fieldMessages[e.Tag()]
	if !ok {
		return "Invalid value"
	}
	if !strings.Contains(format, "%s") {
		return format
	}
	msg := fmt.Sprintf(format, e.Param())
	if (e.Tag() == "min" || e.Tag() == "max") && e.Kind() == reflect.String {
		msg += " characters"
	}
	return msg
}
