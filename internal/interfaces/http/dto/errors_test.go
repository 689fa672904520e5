package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodeInvalidState, http.StatusConflict},
		{ErrCodeUnitOccupied, http.StatusConflict},
		{ErrCodeHasPayments, http.StatusConflict},
		{ErrCodeInvalidCredentials, http.StatusUnauthorized},
		{ErrCodeForbidden, http.StatusForbidden},
		{ErrCodeInvalidInput, http.StatusBadRequest},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeInternal, http.StatusInternalServerError},
		{"SOMETHING_UNMAPPED", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GetHTTPStatus(tt.code), "code %s", tt.code)
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		domain string
		want   string
	}{
		{"NOT_FOUND", ErrCodeNotFound},
		{"ALREADY_EXISTS", ErrCodeAlreadyExists},
		{"INVALID_STATE", ErrCodeInvalidState},
		{"UNIT_OCCUPIED", ErrCodeUnitOccupied},
		{"HAS_PAYMENTS", ErrCodeHasPayments},
		{"INVALID_CREDENTIALS", ErrCodeInvalidCredentials},
		// Field validation codes collapse to invalid input
		{"INVALID_NAME", ErrCodeInvalidInput},
		{"INVALID_AMOUNT", ErrCodeInvalidInput},
		{"INVALID_PERIOD", ErrCodeInvalidInput},
		{"INVALID_PAYMENT_DAY", ErrCodeInvalidInput},
		// Already-normalized and unknown codes pass through untouched
		{ErrCodeNotFound, ErrCodeNotFound},
		{"SOMETHING_ELSE", "SOMETHING_ELSE"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeErrorCode(tt.domain), "code %s", tt.domain)
	}
}

func TestDomainErrorMappingRoundTrip(t *testing.T) {
	// Every domain code in the mapping must resolve to a non-500 status,
	// otherwise a business failure masquerades as a server bug
	for domainCode, apiCode := range DomainErrorCodeMapping {
		if domainCode == "INTERNAL_ERROR" {
			continue
		}
		status := GetHTTPStatus(apiCode)
		assert.NotEqual(t, http.StatusInternalServerError, status,
			"domain code %s maps to 500 via %s", domainCode, apiCode)
	}
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeNotFound, "Lease not found", "req-123")
	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "Lease not found", resp.Error.Message)
	assert.Equal(t, "req-123", resp.Error.RequestID)
}

func TestNewValidationErrorResponse(t *testing.T) {
	details := []ValidationDetail{
		{Field: "monthly_rent", Message: "must be greater than zero"},
		{Field: "payment_day", Message: "must be between 1 and 28"},
	}
	resp := NewValidationErrorResponse("Request validation failed", "req-456", details)
	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Len(t, resp.Error.Details, 2)
	assert.Equal(t, "req-456", resp.Error.RequestID)
}
