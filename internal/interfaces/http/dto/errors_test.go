package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeUnknown, http.StatusInternalServerError},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeConcurrencyConflict, http.StatusConflict},
		{ErrCodeInvalidState, http.StatusUnprocessableEntity},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		{ErrCodeRequestTooLarge, http.StatusRequestEntityTooLarge},
		{ErrCodeSequenceOverflow, http.StatusServiceUnavailable},
		{ErrCodeCollisionExhausted, http.StatusServiceUnavailable},
		{ErrCodeStoreUnavailable, http.StatusServiceUnavailable},
		{ErrCodeCorruptOrderNumber, http.StatusInternalServerError},
		{ErrCodeInvalidOrderNumber, http.StatusBadRequest},
		{ErrCodeDuplicateOrderNumber, http.StatusConflict},
		{ErrCodeDuplicateRequest, http.StatusConflict},
		{ErrCodeNoItems, http.StatusBadRequest},
		{ErrCodeDuplicateProduct, http.StatusBadRequest},
		{ErrCodeInvalidCustomerEmail, http.StatusBadRequest},
		{"INVALID_SOMETHING_NEW", http.StatusBadRequest},
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"NOT_FOUND", ErrCodeNotFound},
		{"INVALID_INPUT", ErrCodeInvalidInput},
		{"INVALID_STATE", ErrCodeInvalidState},
		{"CONCURRENCY_CONFLICT", ErrCodeConcurrencyConflict},
		{"ALREADY_EXISTS", "ALREADY_EXISTS"},
		// domain codes pass through unchanged
		{ErrCodeCollisionExhausted, ErrCodeCollisionExhausted},
		{ErrCodeInvalidStatus, ErrCodeInvalidStatus},
		{ErrCodeNotFound, ErrCodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeErrorCode(tt.input))
		})
	}
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID("NOT_FOUND", "Resource not found", "req-123")

	assert.False(t, resp.Success)
	assert.Nil(t, resp.Data)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "Resource not found", resp.Error.Message)
	assert.Equal(t, "req-123", resp.Error.RequestID)
}

func TestNewValidationErrorResponse(t *testing.T) {
	details := []ValidationDetail{
		{Field: "customer_email", Message: "Invalid email format"},
		{Field: "items", Message: "This field is required"},
	}

	resp := NewValidationErrorResponse("Request validation failed", "req-789", details)

	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "req-789", resp.Error.RequestID)
	assert.Len(t, resp.Error.Details, 2)
	assert.Equal(t, "customer_email", resp.Error.Details[0].Field)
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]string{"a"}, 41, 2, 20)

	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(41), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)

	resp = NewSuccessResponseWithMeta(nil, 5, 1, 0)
	assert.Equal(t, DefaultPageSize, resp.Meta.PageSize)
	assert.Equal(t, 1, resp.Meta.TotalPages)
}

func TestErrorResponseJSON(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeDuplicateRequest, "already processed", "req-1")

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	assert.Equal(t, false, raw["success"])
	assert.NotContains(t, raw, "data")
	errObj := raw["error"].(map[string]any)
	assert.Equal(t, "DUPLICATE_REQUEST", errObj["code"])
	assert.Equal(t, "req-1", errObj["request_id"])
	assert.NotContains(t, errObj, "details")
}
