package dto

import (
	"net/http"
	"strings"
)

// Error codes returned in the error envelope. Domain errors keep their own
// codes; these cover failures raised by the HTTP layer itself.
const (
	ErrCodeInternal       = "INTERNAL_ERROR"
	ErrCodeBadRequest     = "BAD_REQUEST"
	ErrCodeInvalidInput   = "INVALID_INPUT"
	ErrCodeInvalidJSON    = "INVALID_JSON"
	ErrCodeInvalidID      = "INVALID_ID"
	ErrCodeValidation     = "VALIDATION_ERROR"
	ErrCodeValidations    = "VALIDATION_ERRORS"
	ErrCodeUnauthorized   = "UNAUTHORIZED"
	ErrCodeForbidden      = "FORBIDDEN"
	ErrCodeTokenExpired   = "TOKEN_EXPIRED"
	ErrCodeTokenInvalid   = "INVALID_TOKEN"
	ErrCodeTokenRevoked   = "TOKEN_REVOKED"
	ErrCodeCredentials    = "INVALID_CREDENTIALS"
	ErrCodeNotFound       = "NOT_FOUND"
	ErrCodeAlreadyExists  = "ALREADY_EXISTS"
	ErrCodeConflict       = "CONFLICT"
	ErrCodeReferenced     = "REFERENCED"
	ErrCodeInvalidState   = "INVALID_STATE"
	ErrCodeRateLimited    = "RATE_LIMITED"
	ErrCodeBodyTooLarge   = "REQUEST_TOO_LARGE"
	ErrCodePrintDisabled  = "PRINTING_DISABLED"
	ErrCodeStoreDisabled  = "STORAGE_DISABLED"
	ErrCodeDuplicateTaxID = "DUPLICATE_TAX_ID"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes.
// Codes missing here fall back to the INVALID_ prefix rule, then to 500.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal: http.StatusInternalServerError,

	// 400
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,
	ErrCodeInvalidID:    http.StatusBadRequest,
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeValidations:  http.StatusBadRequest,
	ErrCodeInvalidState: http.StatusBadRequest,
	"QUOTE_EMPTY":       http.StatusBadRequest,
	"QUOTE_REJECTED":    http.StatusBadRequest,

	// 401
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,
	ErrCodeTokenRevoked: http.StatusUnauthorized,
	ErrCodeCredentials:  http.StatusUnauthorized,

	// 403
	ErrCodeForbidden: http.StatusForbidden,

	// 404
	ErrCodeNotFound: http.StatusNotFound,

	// 409
	ErrCodeAlreadyExists:      http.StatusConflict,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeReferenced:         http.StatusConflict,
	ErrCodeDuplicateTaxID:     http.StatusConflict,
	"QUOTE_ALREADY_CONVERTED": http.StatusConflict,
	"CUSTOMER_IN_USE":         http.StatusConflict,
	"PRODUCT_IN_USE":          http.StatusConflict,

	// 413
	ErrCodeBodyTooLarge: http.StatusRequestEntityTooLarge,

	// 429
	ErrCodeRateLimited: http.StatusTooManyRequests,

	// 503
	ErrCodePrintDisabled: http.StatusServiceUnavailable,
	ErrCodeStoreDisabled: http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status code for an error code
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// aliasErrorCodes folds alternative spellings raised by lower layers
var aliasErrorCodes = map[string]string{
	ErrCodeValidations: ErrCodeValidation,
}

// NormalizeErrorCode converts an alias error code to its canonical spelling.
// Unknown codes are returned as-is.
func NormalizeErrorCode(code string) string {
	if c, ok := aliasErrorCodes[code]; ok {
		return c
	}
	return code
}
