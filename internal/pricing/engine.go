// Package pricing – Engine
//
// This file implements category detection and the decision evaluation over
// the tables in tables.go. The evaluation order is fixed and load-bearing:
//
//  1. Rank gate: a missing or non-positive sales rank rejects immediately,
//     independent of category or price.
//  2. Category gate: unknown/unsupported categories reject.
//  3. No-price fallback: a missing or non-positive price switches to the
//     category's fixed-offer path.
//  4. Rank ceiling, then the first matching (rank band, price band) pair.
//
// Boundary semantics are half-open exactly as configured; clients depend on
// the specific breakpoints.
package pricing

import (
	"fmt"
	"strings"
)

// Reject reasons surfaced on decisions. These are stable strings persisted
// with cached quotes.
const (
	ReasonCriteria    = "does not meet purchasing criteria"
	ReasonUnsupported = "unsupported category"
)

// Input carries the source marketplace data a decision is computed from.
// Price and SalesRank use zero to mean "absent".
type Input struct {
	Category  Category
	Price     float64
	SalesRank int
}

// Decision is the immutable outcome of one evaluation. OfferPrice is only
// meaningful when Accepted is true; Reason only when it is false.
// PriceRange and RankRange are diagnostic labels for the matched bands, not
// authoritative data.
type Decision struct {
	Accepted   bool     `json:"accepted"`
	OfferPrice float64  `json:"ourPrice,omitempty"`
	Reason     string   `json:"reason,omitempty"`
	Category   Category `json:"category"`
	PriceRange string   `json:"priceRange,omitempty"`
	RankRange  string   `json:"rankRange,omitempty"`
}

// categoryRule pairs an ordered list of substrings with the category they
// classify to. First match wins.
type categoryRule struct {
	needles  []string
	category Category
}

// Detection order matters: "music" must not be shadowed by "movie" and the
// books rule runs first so "audio book cd" classifies as books.
var categoryRules = []categoryRule{
	{[]string{"book", "kindle"}, CategoryBooks},
	{[]string{"cd", "vinyl", "music"}, CategoryCDs},
	{[]string{"dvd", "blu-ray", "movie", "tv"}, CategoryDVDs},
	{[]string{"game"}, CategoryGames},
}

// DetectCategory classifies a raw source-marketplace category string by
// case-insensitive substring matching. Unmatched strings map to
// CategoryUnknown.
func DetectCategory(raw string) Category {
	s := strings.ToLower(raw)
	for _, rule := range categoryRules {
		for _, n := range rule.needles {
			if strings.Contains(s, n) {
				return rule.category
			}
		}
	}
	return CategoryUnknown
}

// Engine evaluates pricing decisions against an injected rule Config.
// It is stateless and safe for concurrent use.
type Engine struct {
	cfg Config
}

// NewEngine returns an Engine bound to cfg. Use DefaultConfig() for the
// production tables.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Evaluate maps an Input to a Decision. It never returns an error: every
// input, however malformed, resolves to an accept or reject value. Calling
// it twice with identical input yields an identical decision.
func (e *Engine) Evaluate(in Input) Decision {
	// Rank gate first: without a sales rank there is no demand signal,
	// regardless of category or price.
	if in.SalesRank <= 0 {
		return reject(in.Category, ReasonCriteria)
	}

	rules, ok := e.cfg.Rules[in.Category]
	if !ok {
		return reject(in.Category, ReasonUnsupported)
	}

	// No usable price: fixed-offer fallback path.
	if in.Price <= 0 {
		if in.SalesRank <= rules.NoPriceMaxRank {
			return Decision{
				Accepted:   true,
				OfferPrice: rules.NoPriceOffer,
				Category:   in.Category,
				RankRange:  fmt.Sprintf("<=%d (no price)", rules.NoPriceMaxRank),
			}
		}
		return reject(in.Category, ReasonCriteria)
	}

	if in.SalesRank > rules.RankCeiling {
		return reject(in.Category, ReasonCriteria)
	}

	for _, rb := range rules.RankBands {
		if in.SalesRank > rb.MaxRank {
			continue
		}
		for _, pb := range rb.Bands {
			if pb.matches(in.Price) {
				return Decision{
					Accepted:   true,
					OfferPrice: pb.Offer,
					Category:   in.Category,
					PriceRange: pb.label(),
					RankRange:  fmt.Sprintf("<=%d", rb.MaxRank),
				}
			}
		}
		// Inside the rank band but below/between price bands.
		return reject(in.Category, ReasonCriteria)
	}

	// Unreachable when RankBands cover (0, RankCeiling], kept as a total
	// fallback.
	return reject(in.Category, ReasonCriteria)
}

func reject(cat Category, reason string) Decision {
	return Decision{Accepted: false, Reason: reason, Category: cat}
}

// matches reports whether price falls inside the band's half-open interval.
func (b PriceBand) matches(price float64) bool {
	if b.MinExclusive {
		if price <= b.Min {
			return false
		}
	} else if price < b.Min {
		return false
	}
	return b.Max == 0 || price < b.Max
}

// label renders the interval in mathematical notation for diagnostics,
// e.g. "(28,36)", "[36,46)", "[126,inf)".
func (b PriceBand) label() string {
	open := "["
	if b.MinExclusive {
		open = "("
	}
	if b.Max == 0 {
		return fmt.Sprintf("%s%g,inf)", open, b.Min)
	}
	return fmt.Sprintf("%s%g,%g)", open, b.Min, b.Max)
}
