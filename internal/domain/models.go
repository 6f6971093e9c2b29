// Package domain defines the persistence model for cached buy-back quotes.
// The single QuoteEntry type is mapped with GORM and shared across the
// repository and service layers.
package domain

import (
	"time"

	"github.com/secondspin/go-buyback-backend/internal/pricing"
)

// ProductSnapshot captures the source-marketplace listing data a quote was
// computed from. It is persisted verbatim alongside the decision so a cached
// quote can be rendered without re-fetching the listing.
type ProductSnapshot struct {
	Title     string  `json:"title"`
	Image     string  `json:"image,omitempty"`
	Price     float64 `json:"price,omitempty"`
	SalesRank int     `json:"sales_rank,omitempty"`
	Category  string  `json:"category,omitempty"`
	ASIN      string  `json:"asin,omitempty"`
}

// DebugInfo carries optional diagnostic metadata about how a quote was
// produced. It is never shown to sellers.
type DebugInfo struct {
	// LookupMethod records how the entry was produced ("cache" on a hit,
	// "computed" on a fresh evaluation).
	LookupMethod string `json:"lookupMethod,omitempty"`
	// UpstreamCalls counts source-marketplace API calls the caller made to
	// assemble the product snapshot.
	UpstreamCalls int `json:"upstreamCalls,omitempty"`
	// HasRank flags whether the snapshot carried a sales rank.
	HasRank bool `json:"hasRank"`
}

// QuoteEntry is one cached pricing decision, keyed by the normalized item
// identifier (ISBN/UPC/ASIN).
//
// Invariants:
//   - ExpiresAt is always CreatedAt + the configured TTL at write time;
//     UpdatedAt and ExpiresAt are never set independently.
//   - Writes replace the whole row; there are no partial updates.
//
// Timestamps are managed by the repository rather than by GORM so the
// UpdatedAt/ExpiresAt invariant holds exactly.
type QuoteEntry struct {
	Identifier     string           `json:"identifier"     gorm:"type:varchar(32);primaryKey"`
	IdentifierType IdentifierType   `json:"identifierType" gorm:"type:varchar(16);not null"`
	Product        ProductSnapshot  `json:"product"        gorm:"serializer:json"`
	Pricing        pricing.Decision `json:"pricing"        gorm:"serializer:json"`
	Message        string           `json:"message"        gorm:"type:text;not null"`
	Debug          *DebugInfo       `json:"debug,omitempty" gorm:"serializer:json"`
	CreatedAt      time.Time        `json:"createdAt"      gorm:"autoCreateTime:false"`
	UpdatedAt      time.Time        `json:"updatedAt"      gorm:"autoUpdateTime:false"`
	ExpiresAt      time.Time        `json:"expiresAt"      gorm:"index"`
}

// TableName returns the database table name for QuoteEntry.
func (QuoteEntry) TableName() string { return "quote_cache" }

// Expired reports whether the entry's validity window has passed at now.
func (q *QuoteEntry) Expired(now time.Time) bool {
	return now.After(q.ExpiresAt)
}
