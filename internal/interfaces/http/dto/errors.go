package dto

import (
	"net/http"
	"strings"
)

// Transport-level error codes for failures that never reach the domain
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// DomainCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes not listed fall back to the prefix rules in GetHTTPStatus.
var DomainCodeHTTPStatus = map[string]int{
	// Resource lookups
	"NOT_FOUND":               http.StatusNotFound,
	"CARD_NOT_FOUND":          http.StatusNotFound,
	"CUSTOMER_NOT_FOUND":      http.StatusNotFound,
	"CUSTOMER_CARD_NOT_FOUND": http.StatusNotFound,
	"PAYMENT_NOT_FOUND":       http.StatusNotFound,
	"BRANCH_NOT_FOUND":        http.StatusNotFound,
	"WORKER_NOT_FOUND":        http.StatusNotFound,

	// Business rule rejections
	"OVERPAYMENT_REJECTED":     http.StatusUnprocessableEntity,
	"CARD_NOT_ACTIVE":          http.StatusUnprocessableEntity,
	"CARD_COMPLETED":           http.StatusUnprocessableEntity,
	"CARD_TEMPLATE_INACTIVE":   http.StatusUnprocessableEntity,
	"CUSTOMER_COMPLETED":       http.StatusUnprocessableEntity,
	"PAYMENT_ALREADY_REVERSED": http.StatusUnprocessableEntity,
	"INVALID_PRICING":          http.StatusUnprocessableEntity,
	"INVALID_STATE":            http.StatusUnprocessableEntity,
	"BRANCH_INACTIVE":          http.StatusUnprocessableEntity,
	"WORKER_INACTIVE":          http.StatusUnprocessableEntity,
	"WORKER_BRANCH_MISMATCH":   http.StatusUnprocessableEntity,

	// Tenancy and authorization
	"MISSING_TENANT_CONTEXT": http.StatusUnauthorized,
	"UNAUTHORIZED":           http.StatusForbidden,

	// Concurrency
	"CONCURRENCY_CONFLICT": http.StatusConflict,
	"ALREADY_EXISTS":       http.StatusConflict,

	// Stored state violated an invariant; the client cannot fix this
	"LEDGER_CORRUPTION": http.StatusInternalServerError,
	"INTERNAL_ERROR":    http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// Unlisted INVALID_* codes are treated as bad input; everything else
// unknown is an internal error.
func GetHTTPStatus(code string) int {
	if status, ok := DomainCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
