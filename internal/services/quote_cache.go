// Package services – QuoteCache
//
// This file implements the TTL-expiring quote cache over the repository
// layer. The cache is a pure optimization: the pricing flow must stay
// correct with the cache disabled entirely, so every hot-path operation is
// best-effort and fails open. A backend fault on Lookup degrades to a miss
// (the caller recomputes), a fault on Store is logged and swallowed.
//
// Expiry is lazy on read: a lookup that discovers an entry past its TTL
// deletes it and reports a miss. PurgeExpired is the separate bulk-cleanup
// path for periodic storage reclamation; both are intentional and serve
// different operational needs.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/secondspin/go-buyback-backend/internal/domain"
	"github.com/secondspin/go-buyback-backend/internal/pricing"
	"github.com/secondspin/go-buyback-backend/internal/repo"
)

// DefaultQuoteTTL is the validity window for a cached pricing decision.
const DefaultQuoteTTL = 10 * 24 * time.Hour

// CacheStats is a point-in-time summary of the cache contents.
type CacheStats struct {
	// Total is the number of stored entries, expired or not.
	Total int64 `json:"total"`
	// Expired counts entries past their TTL that no lookup or purge has
	// removed yet.
	Expired int64 `json:"expired"`
	// Valid is Total minus Expired.
	Valid int64 `json:"valid"`
}

// QuoteCache memoizes pricing decisions against normalized identifiers
// with a fixed TTL. It is stateless apart from the injected DB handle and
// safe for concurrent use. Concurrent stores for the same identifier are
// last-write-wins; a stale overwrite only costs an extra recomputation on
// a later read.
type QuoteCache struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// TTL is the validity window applied at write time.
	TTL time.Duration

	// now is a seam for tests; defaults to UTC wall time.
	now func() time.Time
}

// NewQuoteCache constructs a QuoteCache. A non-positive ttl falls back to
// DefaultQuoteTTL.
func NewQuoteCache(db *gorm.DB, ttl time.Duration) *QuoteCache {
	if ttl <= 0 {
		ttl = DefaultQuoteTTL
	}
	return &QuoteCache{DB: db, TTL: ttl, now: func() time.Time { return time.Now().UTC() }}
}

// clock returns the cache's time source, tolerating zero-value construction.
func (c *QuoteCache) clock() time.Time {
	if c.now != nil {
		return c.now()
	}
	return time.Now().UTC()
}

// Lookup resolves rawID to a cached entry. The second return value reports
// a hit. Misses, expired entries, and backend failures all report false;
// an expired entry is deleted as a side effect. Lookup never returns an
// error: the cache fails open.
func (c *QuoteCache) Lookup(ctx context.Context, rawID string) (*domain.QuoteEntry, bool) {
	id := domain.NormalizeIdentifier(rawID)
	if id == "" {
		cacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}

	entry, err := repo.GetQuote(ctx, c.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		cacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}
	if err != nil {
		log.Warn().Err(err).Str("identifier", id).Msg("quote cache read failed, treating as miss")
		cacheLookups.WithLabelValues("error").Inc()
		return nil, false
	}

	if entry.Expired(c.clock()) {
		// Lazy expiry: drop the stale row and report a miss.
		if err := repo.DeleteQuote(ctx, c.DB, id); err != nil {
			log.Warn().Err(err).Str("identifier", id).Msg("failed to delete expired quote entry")
		}
		cacheLookups.WithLabelValues("expired").Inc()
		return nil, false
	}

	cacheLookups.WithLabelValues("hit").Inc()
	return entry, true
}

// Store writes a quote entry for rawID, overwriting any existing entry for
// the same key in full. CreatedAt and UpdatedAt are set to now and
// ExpiresAt to now + TTL; callers cannot set them independently. Write
// failures are logged and swallowed: caching must never fail the caller's
// request. The built entry is returned either way.
func (c *QuoteCache) Store(
	ctx context.Context,
	rawID string,
	idType domain.IdentifierType,
	product domain.ProductSnapshot,
	decision pricing.Decision,
	message string,
	debug *domain.DebugInfo,
) *domain.QuoteEntry {
	now := c.clock()
	entry := &domain.QuoteEntry{
		Identifier:     domain.NormalizeIdentifier(rawID),
		IdentifierType: idType,
		Product:        product,
		Pricing:        decision,
		Message:        message,
		Debug:          debug,
		CreatedAt:      now,
		UpdatedAt:      now,
		ExpiresAt:      now.Add(c.TTL),
	}
	if entry.Identifier == "" {
		log.Warn().Str("raw", rawID).Msg("refusing to cache quote with empty identifier")
		return entry
	}

	if err := repo.PutQuote(ctx, c.DB, entry); err != nil {
		log.Warn().Err(err).Str("identifier", entry.Identifier).Msg("quote cache write failed")
		cacheStores.WithLabelValues("error").Inc()
		return entry
	}
	cacheStores.WithLabelValues("ok").Inc()
	return entry
}

// Remove deletes the entry for rawID. Removing an absent entry succeeds.
// Unlike the hot-path operations this is operator-invoked, so backend
// errors are returned for the maintenance surface to report.
func (c *QuoteCache) Remove(ctx context.Context, rawID string) error {
	id := domain.NormalizeIdentifier(rawID)
	if id == "" {
		return ErrInvalidIdentifier
	}
	return repo.DeleteQuote(ctx, c.DB, id)
}

// PurgeExpired bulk-deletes every entry whose expiry has passed and
// returns the count removed. Entries still within their TTL are left
// untouched. It is safe to run concurrently with lookups and stores.
func (c *QuoteCache) PurgeExpired(ctx context.Context) (int64, error) {
	deleted, err := repo.DeleteExpired(ctx, c.DB, c.clock())
	if err != nil {
		return 0, err
	}
	cachePurged.Add(float64(deleted))
	if deleted > 0 {
		log.Info().Int64("deleted", deleted).Msg("purged expired quote cache entries")
	}
	return deleted, nil
}

// Stats returns total/expired/valid entry counts. Read-only.
func (c *QuoteCache) Stats(ctx context.Context) (CacheStats, error) {
	now := c.clock()
	total, err := repo.CountQuotes(ctx, c.DB)
	if err != nil {
		return CacheStats{}, err
	}
	expired, err := repo.CountExpired(ctx, c.DB, now)
	if err != nil {
		return CacheStats{}, err
	}
	return CacheStats{Total: total, Expired: expired, Valid: total - expired}, nil
}

// HealthCheck reports whether the backing store answers a trivial read.
// Failures are swallowed into false.
func (c *QuoteCache) HealthCheck(ctx context.Context) bool {
	if err := repo.Ping(ctx, c.DB); err != nil {
		log.Warn().Err(err).Msg("quote cache health check failed")
		return false
	}
	return true
}

// ListPage returns a page of cache entries plus the total count, most
// recently updated first. Used by the admin listing endpoint.
func (c *QuoteCache) ListPage(ctx context.Context, page, pageSize int) ([]domain.QuoteEntry, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	total, err := repo.CountQuotes(ctx, c.DB)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.QuoteEntry{}, 0, nil
	}
	items, err := repo.ListQuotesPage(ctx, c.DB, (page-1)*pageSize, pageSize)
	return items, total, err
}
