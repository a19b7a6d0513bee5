package http

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Lakeram21/RSP-precurement/internal/domain"
	"github.com/Lakeram21/RSP-precurement/internal/infrastructure/cache"
)

// PartSearcher is what the handler needs from the search layer
type PartSearcher interface {
	Aggregate(ctx context.Context, query domain.Query, enabled []string) (*domain.SearchResponse, error)
	Rescrape(ctx context.Context, provider string, query domain.Query) (*domain.ProviderResult, error)
}

// SearchRequest is the body of POST /api/v1/parts/search. Providers is an
// optional override of the configured provider set.
type SearchRequest struct {
	MPN          string   `json:"mpn" binding:"required"`
	Manufacturer string   `json:"manufacturer"`
	Providers    []string `json:"providers"`
}

// RescrapeRequest is the body of POST /api/v1/parts/rescrape
type RescrapeRequest struct {
	Provider     string `json:"provider" binding:"required"`
	MPN          string `json:"mpn" binding:"required"`
	Manufacturer string `json:"manufacturer"`
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	searcher  PartSearcher
	responses domain.SearchCache
	providers []string
	cacheTTL  time.Duration
}

// NewHandler creates a new HTTP handler. providers is the default
// provider set used when a request does not name its own.
func NewHandler(searcher PartSearcher, responses domain.SearchCache, providers []string, cacheTTL time.Duration) *Handler {
	return &Handler{
		searcher:  searcher,
		responses: responses,
		providers: providers,
		cacheTTL:  cacheTTL,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "rsp-backend",
		"version": "1.0.0",
	})
}

// SearchParts handles part availability searches across providers
func (h *Handler) SearchParts(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mpn is required"})
		return
	}

	enabled := req.Providers
	if len(enabled) == 0 {
		enabled = h.providers
	}

	query := domain.Query{MPN: req.MPN, Manufacturer: req.Manufacturer}
	key := cache.ResponseKey(query, enabled)

	if h.responses != nil {
		if cached, err := h.responses.Get(c.Request.Context(), key); err == nil {
			c.Header("X-Cache", "HIT")
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	response, err := h.searcher.Aggregate(c.Request.Context(), query, enabled)
	if err != nil {
		h.writeError(c, err)
		return
	}

	if h.responses != nil {
		if err := h.responses.Set(c.Request.Context(), key, response, h.cacheTTL); err != nil {
			log.Printf("[HANDLER] failed to cache response for %q: %v", req.MPN, err)
		}
	}

	c.Header("X-Cache", "MISS")
	c.JSON(http.StatusOK, response)
}

// RescrapeParts refreshes one provider's row for a part and drops the
// cached response so the next search reflects it
func (h *Handler) RescrapeParts(c *gin.Context) {
	var req RescrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "provider and mpn are required"})
		return
	}

	query := domain.Query{MPN: req.MPN, Manufacturer: req.Manufacturer}

	result, err := h.searcher.Rescrape(c.Request.Context(), req.Provider, query)
	if err != nil {
		h.writeError(c, err)
		return
	}

	if h.responses != nil {
		key := cache.ResponseKey(query, h.providers)
		if err := h.responses.Delete(c.Request.Context(), key); err != nil {
			log.Printf("[HANDLER] failed to invalidate cache for %q: %v", req.MPN, err)
		}
	}

	if result == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "provider returned no result"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// writeError maps service errors onto HTTP statuses
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest),
		errors.Is(err, domain.ErrNoProvidersEnabled),
		errors.Is(err, domain.ErrUnknownProvider):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrCredentialFailure):
		c.JSON(http.StatusBadGateway, gin.H{"error": "provider credentials rejected"})
	case errors.Is(err, domain.ErrProviderFailure):
		c.JSON(http.StatusBadGateway, gin.H{"error": "provider temporarily unavailable"})
	default:
		log.Printf("[HANDLER] unexpected error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
