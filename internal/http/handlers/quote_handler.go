// Quote HTTP handlers.
//
// This file exposes the endpoints the listing-creation flow calls:
//   - POST /quotes  (compute or fetch a buy-back quote)
//   - GET  /quotes  (paginated admin listing of cached quotes)
//
// Handlers are transport-thin: they validate input, call the quote
// service, and translate results into the standard envelopes. Rejected
// items are a successful response carrying a rejected decision, never an
// HTTP error.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/secondspin/go-buyback-backend/internal/domain"
	"github.com/secondspin/go-buyback-backend/internal/services"
	"github.com/secondspin/go-buyback-backend/internal/utils"
)

// QuoteService defines the quote computation consumed by HTTP handlers.
// Implementations must be safe for concurrent use and honor the provided
// context.
type QuoteService interface {
	// Quote resolves a buy-back quote for a raw identifier, cache-first.
	Quote(ctx context.Context, req services.QuoteRequest) (*services.QuoteResult, error)
}

// Handlers groups the HTTP endpoints for quotes and cache maintenance.
// It depends on abstract service interfaces to keep transport concerns
// separate from business logic.
type Handlers struct {
	quotes QuoteService
	cache  CacheService
}

// New constructs a Handlers instance bound to the given services.
func New(quotes QuoteService, cache CacheService) *Handlers {
	return &Handlers{quotes: quotes, cache: cache}
}

//
// DTOs
//

// QuoteProductRequest mirrors the source-marketplace snapshot fields a
// caller supplies with a quote request.
type QuoteProductRequest struct {
	Title     string  `json:"title" example:"The Pragmatic Programmer"`
	Image     string  `json:"image,omitempty" example:"https://images.example/81g.jpg"`
	Price     float64 `json:"price,omitempty" example:"38.50"`
	SalesRank int     `json:"sales_rank,omitempty" example:"1200"`
	Category  string  `json:"category,omitempty" example:"Books"`
	ASIN      string  `json:"asin,omitempty" example:"B00X4WHP5E"`
}

// CreateQuoteRequest is the JSON payload for computing a quote.
type CreateQuoteRequest struct {
	// Identifier is the raw ISBN/UPC/ASIN as pasted by the seller.
	Identifier string              `json:"identifier" binding:"required" example:"978-0-13-468599-1"`
	Product    QuoteProductRequest `json:"product"`
	// UpstreamCalls optionally records source-marketplace API calls made
	// by the caller (diagnostic only).
	UpstreamCalls int `json:"upstream_calls,omitempty" example:"2"`
}

// QuoteResponse wraps a quote entry with its cache provenance.
type QuoteResponse struct {
	Quote  *domain.QuoteEntry `json:"quote"`
	Cached bool               `json:"cached"`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// ListQuotesResponse wraps a page of cached quotes and pagination
// information.
type ListQuotesResponse struct {
	Quotes     []domain.QuoteEntry `json:"quotes"`
	Pagination Pagination          `json:"pagination"`
}

// CreateQuote godoc
// @ID          createQuote
// @Summary     Compute a buy-back quote
// @Description Returns the cached pricing decision for an identifier, or evaluates the pricing tables and caches the result.
// @Tags        Quotes
// @Accept      json
// @Produce     json
// @Param       body body handlers.CreateQuoteRequest true "Quote request"
// @Success     200 {object} handlers.SuccessResponse
// @Failure     400 {object} handlers.ErrorResponse "Missing or invalid identifier"
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /quotes [post]
func (h *Handlers) CreateQuote(c *gin.Context) {
	var req CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "identifier is required")
		return
	}

	res, err := h.quotes.Quote(c.Request.Context(), services.QuoteRequest{
		Identifier: req.Identifier,
		Product: domain.ProductSnapshot{
			Title:     req.Product.Title,
			Image:     req.Product.Image,
			Price:     req.Product.Price,
			SalesRank: req.Product.SalesRank,
			Category:  req.Product.Category,
			ASIN:      req.Product.ASIN,
		},
		UpstreamCalls: req.UpstreamCalls,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidIdentifier) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "identifier is not a valid product code")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeQuoteFailed, "failed to compute quote")
		return
	}

	ok(c, http.StatusOK, QuoteResponse{Quote: res.Entry, Cached: res.Cached})
}

// ListQuotes godoc
// @ID          listQuotes
// @Summary     List cached quotes
// @Description Paginated admin view of the quote cache, most recently updated first.
// @Tags        Quotes
// @Produce     json
// @Param       page      query int false "Page (1-based)"  default(1)
// @Param       page_size query int false "Page size"       default(20)
// @Success     200 {object} handlers.SuccessResponse
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /quotes [get]
func (h *Handlers) ListQuotes(c *gin.Context) {
	page := utils.AtoiDefault(c.Query("page"), 1)
	pageSize := utils.ClampPageSize(utils.AtoiDefault(c.Query("page_size"), 20))

	items, total, err := h.cache.ListPage(c.Request.Context(), page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "failed to list cached quotes")
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	ok(c, http.StatusOK, ListQuotesResponse{
		Quotes: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}
