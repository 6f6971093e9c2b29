package repo

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/secondspin/go-buyback-backend/internal/domain"
	"github.com/secondspin/go-buyback-backend/internal/pricing"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:quoterepo_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.QuoteEntry{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func testEntry(id string, expiresAt time.Time) *domain.QuoteEntry {
	now := expiresAt.Add(-240 * time.Hour)
	return &domain.QuoteEntry{
		Identifier:     id,
		IdentifierType: domain.IdentifierISBN,
		Product: domain.ProductSnapshot{
			Title:     "The Pragmatic Programmer",
			Price:     38.50,
			SalesRank: 1200,
			Category:  "Books",
		},
		Pricing: pricing.Decision{
			Accepted:   true,
			OfferPrice: 2.50,
			Category:   pricing.CategoryBooks,
			PriceRange: "[36,46)",
			RankRange:  "<=1000000",
		},
		Message:   "WE WILL PAY YOU $2.50",
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: expiresAt,
	}
}

func TestPutGetQuote_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	want := testEntry("9780134685991", time.Now().UTC().Add(240*time.Hour))
	if err := PutQuote(ctx, db, want); err != nil {
		t.Fatalf("PutQuote: %v", err)
	}

	got, err := GetQuote(ctx, db, "9780134685991")
	if err != nil {
		t.Fatalf("GetQuote: %v", err)
	}
	if got.IdentifierType != domain.IdentifierISBN {
		t.Fatalf("identifier type: %q", got.IdentifierType)
	}
	if got.Product.Title != want.Product.Title || got.Product.SalesRank != want.Product.SalesRank {
		t.Fatalf("product snapshot mismatch: %+v", got.Product)
	}
	if !got.Pricing.Accepted || got.Pricing.OfferPrice != 2.50 {
		t.Fatalf("pricing decision mismatch: %+v", got.Pricing)
	}
	if got.Message != want.Message {
		t.Fatalf("message mismatch: %q", got.Message)
	}
}

func TestGetQuote_NotFound(t *testing.T) {
	db := newTestDB(t)
	if _, err := GetQuote(context.Background(), db, "MISSING"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPutQuote_ReplacesWholeRow(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	first := testEntry("030640615X", time.Now().UTC().Add(240*time.Hour))
	if err := PutQuote(ctx, db, first); err != nil {
		t.Fatalf("first PutQuote: %v", err)
	}

	second := testEntry("030640615X", time.Now().UTC().Add(480*time.Hour))
	second.Pricing = pricing.Decision{
		Accepted: false,
		Reason:   pricing.ReasonCriteria,
		Category: pricing.CategoryBooks,
	}
	second.Message = "DOES NOT MEET OUR PURCHASING CRITERIA"
	if err := PutQuote(ctx, db, second); err != nil {
		t.Fatalf("second PutQuote: %v", err)
	}

	got, err := GetQuote(ctx, db, "030640615X")
	if err != nil {
		t.Fatalf("GetQuote: %v", err)
	}
	if got.Pricing.Accepted {
		t.Fatalf("expected second write to win: %+v", got.Pricing)
	}
	if !got.ExpiresAt.After(first.ExpiresAt) {
		t.Fatalf("expiry not replaced: %v", got.ExpiresAt)
	}

	total, err := CountQuotes(ctx, db)
	if err != nil {
		t.Fatalf("CountQuotes: %v", err)
	}
	if total != 1 {
		t.Fatalf("expected a single row after overwrite, got %d", total)
	}
}

func TestDeleteQuote_Idempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	e := testEntry("B00X4WHP5E", time.Now().UTC().Add(time.Hour))
	if err := PutQuote(ctx, db, e); err != nil {
		t.Fatalf("PutQuote: %v", err)
	}
	if err := DeleteQuote(ctx, db, "B00X4WHP5E"); err != nil {
		t.Fatalf("DeleteQuote: %v", err)
	}
	// Absent entry: still no error.
	if err := DeleteQuote(ctx, db, "B00X4WHP5E"); err != nil {
		t.Fatalf("DeleteQuote on absent entry: %v", err)
	}
}

func TestDeleteExpired_OnlyPastEntries(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	if err := PutQuote(ctx, db, testEntry("EXPIRED1", now.Add(-time.Minute))); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := PutQuote(ctx, db, testEntry("EXPIRED2", now.Add(-time.Hour))); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := PutQuote(ctx, db, testEntry("FRESH0001", now.Add(time.Hour))); err != nil {
		t.Fatalf("seed: %v", err)
	}

	deleted, err := DeleteExpired(ctx, db, now)
	if err != nil {
		t.Fatalf("DeleteExpired: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("deleted = %d, want 2", deleted)
	}

	if _, err := GetQuote(ctx, db, "FRESH0001"); err != nil {
		t.Fatalf("fresh entry removed: %v", err)
	}
	if _, err := GetQuote(ctx, db, "EXPIRED1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expired entry survived purge")
	}
}

func TestCounts(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	if err := PutQuote(ctx, db, testEntry("A000000001", now.Add(-time.Minute))); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := PutQuote(ctx, db, testEntry("A000000002", now.Add(time.Minute))); err != nil {
		t.Fatalf("seed: %v", err)
	}

	total, err := CountQuotes(ctx, db)
	if err != nil || total != 2 {
		t.Fatalf("CountQuotes = %d, %v", total, err)
	}
	expired, err := CountExpired(ctx, db, now)
	if err != nil || expired != 1 {
		t.Fatalf("CountExpired = %d, %v", expired, err)
	}
}

func TestListQuotesPage(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	base := time.Now().UTC()

	for i := 0; i < 5; i++ {
		e := testEntry(fmt.Sprintf("LIST%06d", i), base.Add(240*time.Hour))
		e.UpdatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := PutQuote(ctx, db, e); err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}

	page, err := ListQuotesPage(ctx, db, 0, 2)
	if err != nil {
		t.Fatalf("ListQuotesPage: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("page size = %d, want 2", len(page))
	}
	// Most recently updated first.
	if page[0].Identifier != "LIST000004" {
		t.Fatalf("order: got %q first", page[0].Identifier)
	}
}

func TestPing(t *testing.T) {
	db := newTestDB(t)
	if err := Ping(context.Background(), db); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}
