// Package handlers defines HTTP-layer error codes used across all API
// endpoints. These symbolic constants supplement the human-readable
// `error` string in the envelope with a stable, machine-readable taxonomy
// clients can branch on.
package handlers

const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeNotFound     = "not_found"
	ErrCodeRateLimited  = "too_many_requests"
	ErrCodeInternal     = "internal_error"

	// Domain-specific:
	ErrCodeQuoteFailed      = "quote_failed"
	ErrCodeCleanupFailed    = "cleanup_failed"
	ErrCodeMethodNotAllowed = "method_not_allowed"
)
