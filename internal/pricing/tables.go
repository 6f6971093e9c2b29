// Package pricing implements the buy-back rate-acceptance engine. Given a
// product category, a source marketplace price, and a popularity (sales)
// rank, it deterministically decides whether the marketplace buys the item
// and at what offer price.
//
// The engine is pure: no I/O, no randomness, no error channel. Every input,
// however malformed, resolves to an accept/reject Decision.
//
// This file holds the decision tables as injectable configuration data.
// The numeric thresholds are hand-tuned business constants carried over
// from the production pricing policy; do not change them without a policy
// decision.
package pricing

// Category is the normalized product category used by the decision tables.
type Category string

// Supported categories. Anything that cannot be classified maps to
// CategoryUnknown and is rejected by the engine.
const (
	CategoryBooks   Category = "books"
	CategoryCDs     Category = "cds"
	CategoryDVDs    Category = "dvds"
	CategoryGames   Category = "games"
	CategoryUnknown Category = "unknown"
)

// PriceBand maps a half-open price interval to an offer amount.
//
// The lower bound is inclusive unless MinExclusive is set. The upper bound
// is always exclusive; Max == 0 means unbounded above.
type PriceBand struct {
	Min          float64
	MinExclusive bool
	Max          float64
	Offer        float64
}

// RankBand groups the price bands that apply up to (and including) a sales
// rank ceiling. Bands are evaluated in order; the first band whose MaxRank
// covers the input rank wins.
type RankBand struct {
	MaxRank int
	Bands   []PriceBand
}

// CategoryRules holds the complete decision table for one category.
type CategoryRules struct {
	// RankCeiling is the hard rank limit: anything above is rejected
	// regardless of price.
	RankCeiling int

	// RankBands are ordered by ascending MaxRank and cover (0, RankCeiling].
	RankBands []RankBand

	// NoPriceMaxRank and NoPriceOffer drive the fallback path used when the
	// source listing carries no usable price: accept at the fixed offer up
	// to the rank ceiling, reject above it.
	NoPriceMaxRank int
	NoPriceOffer   float64
}

// Config is the full rule set the engine evaluates against. Categories
// absent from the map are rejected as unsupported.
type Config struct {
	Rules map[Category]CategoryRules
}

// DefaultConfig returns the production decision tables.
//
// CDs, DVDs, and games share one table; only the category label on the
// resulting decision differs.
func DefaultConfig() Config {
	books := CategoryRules{
		RankCeiling: 2_000_000,
		RankBands: []RankBand{
			{
				MaxRank: 1_000_000,
				Bands: []PriceBand{
					{Min: 28, MinExclusive: true, Max: 36, Offer: 1.50},
					{Min: 36, Max: 46, Offer: 2.50},
					{Min: 46, Max: 56, Offer: 3.50},
					{Min: 56, Max: 66, Offer: 4.50},
					{Min: 66, Max: 96, Offer: 5.50},
					{Min: 96, Max: 126, Offer: 6.50},
					{Min: 126, Offer: 7.50},
				},
			},
			{
				MaxRank: 2_000_000,
				Bands: []PriceBand{
					{Min: 56, Max: 66, Offer: 2.50},
					{Min: 66, Max: 96, Offer: 3.50},
					{Min: 96, Max: 126, Offer: 4.50},
					{Min: 126, Offer: 5.50},
				},
			},
		},
		NoPriceMaxRank: 500_000,
		NoPriceOffer:   2.00,
	}

	media := CategoryRules{
		RankCeiling: 300_000,
		RankBands: []RankBand{
			{
				MaxRank: 100_000,
				Bands: []PriceBand{
					{Min: 28, MinExclusive: true, Max: 40, Offer: 1.50},
					{Min: 40, Max: 51, Offer: 2.50},
					{Min: 51, Max: 62, Offer: 3.50},
					{Min: 62, Offer: 4.50},
				},
			},
			{
				MaxRank: 200_000,
				Bands: []PriceBand{
					{Min: 28, MinExclusive: true, Max: 51, Offer: 1.50},
					{Min: 51, Max: 62, Offer: 2.50},
					{Min: 62, Offer: 3.50},
				},
			},
			{
				MaxRank: 300_000,
				Bands: []PriceBand{
					{Min: 55, Offer: 1.50},
				},
			},
		},
		NoPriceMaxRank: 50_000,
		NoPriceOffer:   2.00,
	}

	return Config{
		Rules: map[Category]CategoryRules{
			CategoryBooks: books,
			CategoryCDs:   media,
			CategoryDVDs:  media,
			CategoryGames: media,
		},
	}
}
