// Cache maintenance HTTP handlers.
//
// This file exposes the operator-facing endpoints for the quote cache:
//   - POST   /cache/cleanup        (bulk-purge expired entries)
//   - GET    /cache/cleanup        (health + stats)
//   - DELETE /cache/cleanup?id=    (remove a single entry)
//
// Handlers are transport-thin: they validate input, delegate to the cache
// service, and translate results into the standard envelopes. Unlike the
// hot quote path, failures here surface as explicit 5xx statuses because
// the caller is an operator and the failure is actionable.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/secondspin/go-buyback-backend/internal/domain"
	"github.com/secondspin/go-buyback-backend/internal/services"
)

// CacheService defines the quote-cache maintenance operations consumed by
// HTTP handlers. Implementations must be safe for concurrent use and honor
// the provided context.
type CacheService interface {
	// Remove deletes the entry for a raw identifier; absent entries are not
	// an error.
	Remove(ctx context.Context, rawID string) error
	// PurgeExpired bulk-deletes entries past their TTL and returns the
	// count removed.
	PurgeExpired(ctx context.Context) (int64, error)
	// Stats returns total/expired/valid entry counts.
	Stats(ctx context.Context) (services.CacheStats, error)
	// HealthCheck reports whether the backing store is reachable.
	HealthCheck(ctx context.Context) bool
	// ListPage returns a page of entries plus the total count.
	ListPage(ctx context.Context, page, pageSize int) ([]domain.QuoteEntry, int64, error)
}

// CleanupResponse is the payload for a successful bulk purge.
type CleanupResponse struct {
	BeforeStats  services.CacheStats `json:"beforeStats"`
	AfterStats   services.CacheStats `json:"afterStats"`
	DeletedCount int64               `json:"deletedCount"`
	Message      string              `json:"message"`
}

// CacheStatusResponse is the payload for the status probe.
type CacheStatusResponse struct {
	Stats       services.CacheStats `json:"stats"`
	CacheHealth bool                `json:"cacheHealth"`
	Message     string              `json:"message"`
}

// CleanupCache godoc
// @ID          cleanupCache
// @Summary     Purge expired quote cache entries
// @Description Bulk-deletes every cached quote past its TTL and reports before/after stats.
// @Tags        Cache
// @Produce     json
// @Param       Authorization header string false "Bearer token (required when CACHE_CLEANUP_TOKEN is set)"
// @Success     200 {object} handlers.SuccessResponse
// @Failure     401 {object} handlers.ErrorResponse "Missing or invalid token"
// @Failure     500 {object} handlers.ErrorResponse "Purge failed"
// @Router      /cache/cleanup [post]
func (h *Handlers) CleanupCache(c *gin.Context) {
	ctx := c.Request.Context()

	before, err := h.cache.Stats(ctx)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeCleanupFailed, "failed to read cache stats")
		return
	}

	deleted, err := h.cache.PurgeExpired(ctx)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeCleanupFailed, "failed to purge expired entries")
		return
	}

	after, err := h.cache.Stats(ctx)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeCleanupFailed, "failed to read cache stats")
		return
	}

	ok(c, http.StatusOK, CleanupResponse{
		BeforeStats:  before,
		AfterStats:   after,
		DeletedCount: deleted,
		Message:      fmt.Sprintf("removed %d expired entries", deleted),
	})
}

// CacheStatus godoc
// @ID          cacheStatus
// @Summary     Quote cache health and statistics
// @Tags        Cache
// @Produce     json
// @Success     200 {object} handlers.SuccessResponse
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /cache/cleanup [get]
func (h *Handlers) CacheStatus(c *gin.Context) {
	ctx := c.Request.Context()

	healthy := h.cache.HealthCheck(ctx)
	stats, err := h.cache.Stats(ctx)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "failed to read cache stats")
		return
	}

	msg := "cache operational"
	if !healthy {
		msg = "cache backend unreachable"
	}
	ok(c, http.StatusOK, CacheStatusResponse{
		Stats:       stats,
		CacheHealth: healthy,
		Message:     msg,
	})
}

// RemoveCacheEntry godoc
// @ID          removeCacheEntry
// @Summary     Remove a single cached quote
// @Description Deletes the cache entry for the given raw identifier. Removing an absent entry succeeds.
// @Tags        Cache
// @Produce     json
// @Param       id query string true "Raw ISBN/UPC/ASIN" example(978-0-13-468599-1)
// @Success     200 {object} handlers.SuccessResponse
// @Failure     400 {object} handlers.ErrorResponse "Missing or invalid id"
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /cache/cleanup [delete]
func (h *Handlers) RemoveCacheEntry(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "id query parameter is required")
		return
	}

	if err := h.cache.Remove(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrInvalidIdentifier) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "id is not a valid identifier")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "failed to remove cache entry")
		return
	}

	ok(c, http.StatusOK, gin.H{"message": fmt.Sprintf("cache entry for %q removed", id)})
}
