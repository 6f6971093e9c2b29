package services

import (
	"context"
	"errors"
	"testing"

	"github.com/secondspin/go-buyback-backend/internal/domain"
	"github.com/secondspin/go-buyback-backend/internal/pricing"
)

func newQuoteService(t *testing.T) *QuoteService {
	t.Helper()
	return NewQuoteService(NewQuoteCache(newTestDB(t), 0))
}

func TestQuote_InvalidIdentifier(t *testing.T) {
	svc := newQuoteService(t)
	_, err := svc.Quote(context.Background(), QuoteRequest{Identifier: "--//--"})
	if !errors.Is(err, ErrInvalidIdentifier) {
		t.Fatalf("expected ErrInvalidIdentifier, got %v", err)
	}
}

func TestQuote_ComputesAndCaches(t *testing.T) {
	svc := newQuoteService(t)
	ctx := context.Background()

	req := QuoteRequest{
		Identifier: "978-0-13-468599-1",
		Product: domain.ProductSnapshot{
			Title:     "The Pragmatic Programmer",
			Price:     38.50,
			SalesRank: 1200,
			Category:  "Books",
		},
		UpstreamCalls: 2,
	}

	res, err := svc.Quote(ctx, req)
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if res.Cached {
		t.Fatalf("first call reported cached")
	}
	e := res.Entry
	if e.Identifier != "9780134685991" {
		t.Fatalf("identifier: %q", e.Identifier)
	}
	if e.IdentifierType != domain.IdentifierISBN {
		t.Fatalf("identifier type: %q", e.IdentifierType)
	}
	if !e.Pricing.Accepted || e.Pricing.OfferPrice != 2.50 {
		t.Fatalf("decision: %+v", e.Pricing)
	}
	if e.Message != "WE WILL PAY YOU $2.50" {
		t.Fatalf("message: %q", e.Message)
	}
	if e.Debug == nil || e.Debug.LookupMethod != "computed" || !e.Debug.HasRank || e.Debug.UpstreamCalls != 2 {
		t.Fatalf("debug: %+v", e.Debug)
	}

	// Second call for a different raw form of the same code: cache hit.
	res2, err := svc.Quote(ctx, QuoteRequest{Identifier: "9780134685991", Product: req.Product})
	if err != nil {
		t.Fatalf("second Quote: %v", err)
	}
	if !res2.Cached {
		t.Fatalf("second call not served from cache")
	}
	if res2.Entry.Identifier != e.Identifier {
		t.Fatalf("cache returned a different entry: %q", res2.Entry.Identifier)
	}
}

func TestQuote_RejectionMessages(t *testing.T) {
	svc := newQuoteService(t)
	ctx := context.Background()

	// Unknown category.
	res, err := svc.Quote(ctx, QuoteRequest{
		Identifier: "B00X4WHP5E",
		Product:    domain.ProductSnapshot{Category: "Garden Tools", Price: 50, SalesRank: 10},
	})
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if res.Entry.Pricing.Accepted {
		t.Fatalf("unsupported category accepted")
	}
	if res.Entry.Message != msgUnsupported {
		t.Fatalf("message: %q", res.Entry.Message)
	}

	// Missing rank.
	res, err = svc.Quote(ctx, QuoteRequest{
		Identifier: "0743273565",
		Product:    domain.ProductSnapshot{Category: "Books", Price: 50},
	})
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if res.Entry.Pricing.Accepted {
		t.Fatalf("rankless item accepted")
	}
	if res.Entry.Message != msgRejected {
		t.Fatalf("message: %q", res.Entry.Message)
	}
	if res.Entry.Debug == nil || res.Entry.Debug.HasRank {
		t.Fatalf("debug rank flag: %+v", res.Entry.Debug)
	}
}

func TestQuote_NoPriceDefaultOffer(t *testing.T) {
	svc := newQuoteService(t)

	res, err := svc.Quote(context.Background(), QuoteRequest{
		Identifier: "5012345678900",
		Product:    domain.ProductSnapshot{Category: "CDs & Vinyl", SalesRank: 40_000},
	})
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	d := res.Entry.Pricing
	if !d.Accepted || d.OfferPrice != 2.00 {
		t.Fatalf("no-price default: %+v", d)
	}
	if d.Category != pricing.CategoryCDs {
		t.Fatalf("category: %q", d.Category)
	}
	if res.Entry.Message != "WE WILL PAY YOU $2.00" {
		t.Fatalf("message: %q", res.Entry.Message)
	}
}
