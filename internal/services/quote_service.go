// Package services – QuoteService
//
// This file implements the quote orchestration the listing-creation flow
// calls into: check the cache first, evaluate the pricing tables on a
// miss, write the result back best-effort, and derive the seller-facing
// message. The pricing engine itself is pure; everything fallible here is
// confined to the cache, which fails open.
package services

import (
	"context"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/secondspin/go-buyback-backend/internal/domain"
	"github.com/secondspin/go-buyback-backend/internal/pricing"
)

// Seller-facing messages. Rejections never expose internal detail.
const (
	msgRejected    = "DOES NOT MEET OUR PURCHASING CRITERIA"
	msgUnsupported = "WE DO NOT CURRENTLY PURCHASE THIS CATEGORY"
)

// offerPrinter renders offer amounts for the accepted-quote message.
var offerPrinter = message.NewPrinter(language.AmericanEnglish)

// QuoteRequest is the input to a quote computation: the raw product code
// plus the source-marketplace snapshot supplied by the caller.
type QuoteRequest struct {
	Identifier string
	Product    domain.ProductSnapshot
	// UpstreamCalls optionally records how many source-marketplace API
	// calls the caller made to assemble the snapshot (diagnostic only).
	UpstreamCalls int
}

// QuoteResult is a computed or cached quote. Cached reports whether the
// entry was served from the cache rather than evaluated fresh.
type QuoteResult struct {
	Entry  *domain.QuoteEntry
	Cached bool
}

// QuoteService resolves buy-back quotes, cache-first.
type QuoteService struct {
	// Cache is the TTL quote cache consulted before any evaluation.
	Cache *QuoteCache
	// Engine evaluates the pricing decision tables.
	Engine *pricing.Engine
}

// NewQuoteService constructs a QuoteService over the given cache and the
// production pricing tables.
func NewQuoteService(cache *QuoteCache) *QuoteService {
	return &QuoteService{
		Cache:  cache,
		Engine: pricing.NewEngine(pricing.DefaultConfig()),
	}
}

// Quote returns the pricing decision for req.Identifier.
//
// The identifier is normalized; if nothing alphanumeric remains,
// ErrInvalidIdentifier is returned. Otherwise the call cannot fail: a
// cache hit is returned as-is, and on a miss the engine evaluates the
// snapshot, the result is written back best-effort, and the fresh entry is
// returned even when the write-back did not stick.
func (s *QuoteService) Quote(ctx context.Context, req QuoteRequest) (*QuoteResult, error) {
	id := domain.NormalizeIdentifier(req.Identifier)
	if id == "" {
		return nil, ErrInvalidIdentifier
	}

	if entry, ok := s.Cache.Lookup(ctx, id); ok {
		return &QuoteResult{Entry: entry, Cached: true}, nil
	}

	decision := s.Engine.Evaluate(pricing.Input{
		Category:  pricing.DetectCategory(req.Product.Category),
		Price:     req.Product.Price,
		SalesRank: req.Product.SalesRank,
	})

	debug := &domain.DebugInfo{
		LookupMethod:  "computed",
		UpstreamCalls: req.UpstreamCalls,
		HasRank:       req.Product.SalesRank > 0,
	}

	entry := s.Cache.Store(ctx, id, domain.DetectIdentifierType(id),
		req.Product, decision, humanMessage(decision), debug)
	return &QuoteResult{Entry: entry, Cached: false}, nil
}

// humanMessage derives the static seller-facing display text for a
// decision.
func humanMessage(d pricing.Decision) string {
	if !d.Accepted {
		if d.Reason == pricing.ReasonUnsupported {
			return msgUnsupported
		}
		return msgRejected
	}
	return offerPrinter.Sprintf("WE WILL PAY YOU $%.2f", d.OfferPrice)
}
