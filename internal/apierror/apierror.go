// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, storage errors, etc.).
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// Validation wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "validation failed", Fields: fields}
}

// BlockedError reports a transition refused because other orders are still
// awaiting payment.
type BlockedError struct {
	Detail       string `json:"detail"`
	PendingCount int    `json:"pending_count"`
}

func NewBlocked(msg string, pending int) *BlockedError {
	return &BlockedError{Detail: msg, PendingCount: pending}
}
