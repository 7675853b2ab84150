package dto

import (
	"net/http"
	"strings"
)

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
	// ErrCodeConcurrencyConflict is used when optimistic locking fails
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
	// ErrCodeRequestTooLarge is used when the body exceeds the configured limit
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
)

// Rate limiting error codes
const (
	// ErrCodeRateLimited is used when rate limit is exceeded
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// Order error codes. These are the domain codes, passed through unchanged.
const (
	ErrCodeInvalidOrderNumber   = "INVALID_ORDER_NUMBER"
	ErrCodeSequenceOverflow     = "ORDER_NUMBER_SEQUENCE_OVERFLOW"
	ErrCodeCollisionExhausted   = "ORDER_NUMBER_COLLISION_EXHAUSTED"
	ErrCodeDuplicateOrderNumber = "DUPLICATE_ORDER_NUMBER"
	ErrCodeStoreUnavailable     = "STORE_UNAVAILABLE"
	ErrCodeCorruptOrderNumber   = "CORRUPT_ORDER_NUMBER"
	ErrCodeDuplicateRequest     = "DUPLICATE_REQUEST"
	ErrCodeInvalidCustomerName  = "INVALID_CUSTOMER_NAME"
	ErrCodeInvalidCustomerEmail = "INVALID_CUSTOMER_EMAIL"
	ErrCodeNoItems              = "NO_ITEMS"
	ErrCodeDuplicateProduct     = "DUPLICATE_PRODUCT"
	ErrCodeInvalidProduct       = "INVALID_PRODUCT"
	ErrCodeInvalidProductName   = "INVALID_PRODUCT_NAME"
	ErrCodeInvalidQuantity      = "INVALID_QUANTITY"
	ErrCodeInvalidPrice         = "INVALID_PRICE"
	ErrCodeInvalidReason        = "INVALID_REASON"
	ErrCodeInvalidStatus        = "INVALID_STATUS"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation: http.StatusBadRequest,

	// Resource errors
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	ErrCodeInvalidState: http.StatusUnprocessableEntity,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeInvalidJSON:     http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,

	ErrCodeRateLimited: http.StatusTooManyRequests,

	// Allocation failures are retryable by the client
	ErrCodeSequenceOverflow:   http.StatusServiceUnavailable,
	ErrCodeCollisionExhausted: http.StatusServiceUnavailable,
	ErrCodeStoreUnavailable:   http.StatusServiceUnavailable,

	// Bad data already in the store; retrying will not help
	ErrCodeCorruptOrderNumber: http.StatusInternalServerError,

	ErrCodeDuplicateOrderNumber: http.StatusConflict,
	ErrCodeDuplicateRequest:     http.StatusConflict,

	ErrCodeInvalidOrderNumber:   http.StatusBadRequest,
	ErrCodeInvalidCustomerName:  http.StatusBadRequest,
	ErrCodeInvalidCustomerEmail: http.StatusBadRequest,
	ErrCodeNoItems:              http.StatusBadRequest,
	ErrCodeDuplicateProduct:     http.StatusBadRequest,
	ErrCodeInvalidProduct:       http.StatusBadRequest,
	ErrCodeInvalidProductName:   http.StatusBadRequest,
	ErrCodeInvalidQuantity:      http.StatusBadRequest,
	ErrCodeInvalidPrice:         http.StatusBadRequest,
	ErrCodeInvalidReason:        http.StatusBadRequest,
	ErrCodeInvalidStatus:        http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unlisted INVALID_* codes are client errors; anything else is a 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// LegacyErrorCodeMapping maps the generic shared domain codes to ERR_* codes
var LegacyErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"INVALID_INPUT":        ErrCodeInvalidInput,
	"INVALID_STATE":        ErrCodeInvalidState,
	"CONCURRENCY_CONFLICT": ErrCodeConcurrencyConflict,
	"VALIDATION_ERROR":     ErrCodeValidation,
	"BAD_REQUEST":          ErrCodeBadRequest,
	"INTERNAL_ERROR":       ErrCodeInternal,
}

// NormalizeErrorCode converts a legacy error code to the standardized format
// If the code is already in the new format or unknown, returns it as-is
func NormalizeErrorCode(code string) string {
	if newCode, ok := LegacyErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
