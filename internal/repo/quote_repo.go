// Package repo implements the quote-cache persistence layer, backed by
// GORM. This file provides repository functions for QuoteEntry rows.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. They
// follow the "thin repository" approach: no expiry or pricing logic, only
// CRUD persistence and query composition. TTL semantics (lazy expiry,
// fail-open behavior) live in services.QuoteCache.
//
// Error semantics:
//   - When an entry is not found, GetQuote returns ErrNotFound.
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/secondspin/go-buyback-backend/internal/domain"
)

// ErrNotFound is returned when a requested cache entry does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// GetQuote fetches the cache entry for a normalized identifier, or
// ErrNotFound if absent. It performs no expiry check.
func GetQuote(ctx context.Context, db *gorm.DB, identifier string) (*domain.QuoteEntry, error) {
	var e domain.QuoteEntry
	err := db.WithContext(ctx).First(&e, "identifier = ?", identifier).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// PutQuote writes an entry, replacing any existing row for the same
// identifier in full. Last write wins; there is no compare-and-swap.
func PutQuote(ctx context.Context, db *gorm.DB, e *domain.QuoteEntry) error {
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "identifier"}},
			UpdateAll: true,
		}).
		Create(e).Error
}

// DeleteQuote removes the entry for a normalized identifier. Deleting an
// absent entry is not an error.
func DeleteQuote(ctx context.Context, db *gorm.DB, identifier string) error {
	return db.WithContext(ctx).
		Delete(&domain.QuoteEntry{}, "identifier = ?", identifier).Error
}

// DeleteExpired bulk-deletes every entry whose expiry is strictly before
// now and returns the number of rows removed.
func DeleteExpired(ctx context.Context, db *gorm.DB, now time.Time) (int64, error) {
	res := db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&domain.QuoteEntry{})
	return res.RowsAffected, res.Error
}

// CountQuotes returns the total number of cached entries.
func CountQuotes(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.QuoteEntry{}).Count(&total).Error
	return total, err
}

// CountExpired returns the number of entries whose expiry is strictly
// before now ("expired but not yet purged").
func CountExpired(ctx context.Context, db *gorm.DB, now time.Time) (int64, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.QuoteEntry{}).
		Where("expires_at < ?", now).
		Count(&n).Error
	return n, err
}

// ListQuotesPage returns a paginated slice of cache entries, most recently
// updated first. Use CountQuotes to obtain the total for pagination
// metadata.
//
// The caller is responsible for computing offset and limit (e.g., (page-1)*pageSize).
func ListQuotesPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.QuoteEntry, error) {
	var out []domain.QuoteEntry
	err := db.WithContext(ctx).
		Order("updated_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// Ping issues a trivial query to verify the backing store is reachable.
func Ping(ctx context.Context, db *gorm.DB) error {
	var one int
	return db.WithContext(ctx).Raw("SELECT 1").Scan(&one).Error
}
