// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the standard response utilities used across all
// endpoints. Every response is wrapped in one of two envelopes:
//
//	HTTP/1.1 200 OK
//	{ "success": true, "data": { ... } }
//
//	HTTP/1.1 400 Bad Request
//	{ "success": false, "error": "id query parameter is required",
//	  "code": "bad_request", "request_id": "..." }
//
// fail() centralizes error formatting and ensures 5xx responses are logged
// with request context for observability.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/secondspin/go-buyback-backend/internal/http/middleware"
)

// SuccessResponse is the standard success envelope returned by all
// endpoints.
type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
	Data    any  `json:"data"`
}

// ErrorResponse is the standard error envelope returned by all endpoints.
//
// Error is a human-readable description safe for operators; Code is a
// stable machine-readable string (see errors.go); RequestID correlates
// server logs with client-side errors.
type ErrorResponse struct {
	Success   bool   `json:"success" example:"false"`
	Error     string `json:"error" example:"id query parameter is required"`
	Code      string `json:"code,omitempty" example:"bad_request"`
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
}

// fail aborts the request with a structured error envelope. Server errors
// (>= 500) are logged with the request-scoped logger.
func fail(c *gin.Context, status int, code, msg string) {
	resp := ErrorResponse{
		Success:   false,
		Error:     msg,
		Code:      code,
		RequestID: c.Writer.Header().Get("X-Request-ID"),
	}

	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail(). External packages (e.g., router
// setup) should call Fail to return consistent error envelopes without
// depending on unexported helpers.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// ok writes a success envelope with the given HTTP status code.
func ok(c *gin.Context, status int, data any) {
	c.JSON(status, SuccessResponse{Success: true, Data: data})
}
