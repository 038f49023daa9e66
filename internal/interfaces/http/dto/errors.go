package dto

import (
	"net/http"
	"strings"
)

// General error codes
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "NOT_FOUND"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "INVALID_INPUT"
)

// domainErrorHTTPStatus maps domain error codes to HTTP status codes.
// Codes not listed here fall through to the INVALID_ prefix rule, then
// to 500.
var domainErrorHTTPStatus = map[string]int{
	ErrCodeNotFound:                http.StatusNotFound,
	"STATUS_DESCRIPTION_NOT_FOUND": http.StatusNotFound,
	"PAYMENT_PREFERENCE_NOT_FOUND": http.StatusNotFound,

	// state and posting rule violations
	"INVALID_STATE":        http.StatusUnprocessableEntity,
	"INVALID_PAYMENT_TYPE": http.StatusUnprocessableEntity,

	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInternal:     http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// INVALID_* codes that are not listed are validation failures and map
// to 400; anything else unknown maps to 500.
func GetHTTPStatus(code string) int {
	if status, ok := domainErrorHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
