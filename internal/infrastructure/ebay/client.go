package ebay

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/Lakeram21/RSP-precurement/internal/domain"
)

// ItemSummary is the slice of a Browse API listing the adapter reads.
// Image and ReturnTerms stay pointers: the API frequently omits them, and
// absence carries meaning for the filter rules.
type ItemSummary struct {
	Title      string `json:"title"`
	ItemWebURL string `json:"itemWebUrl"`
	Image      *struct {
		ImageURL string `json:"imageUrl"`
	} `json:"image,omitempty"`
	Price struct {
		Value    string `json:"value"`
		Currency string `json:"currency"`
	} `json:"price"`
	Seller struct {
		FeedbackPercentage string `json:"feedbackPercentage"`
	} `json:"seller"`
	ReturnTerms *struct {
		ReturnsAccepted *bool `json:"returnsAccepted"`
	} `json:"returnTerms,omitempty"`
}

// SearchResponse is the Browse API item_summary/search payload.
type SearchResponse struct {
	ItemSummaries []ItemSummary `json:"itemSummaries"`
}

// Client handles communication with the eBay Browse API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	tokens      *TokenCache
	rateLimiter *rate.Limiter
}

// NewClient creates a Browse API client. eBay's application-level quota
// is 5000 calls/day for the default keyset; 5000/86400 ≈ 0.058 req/sec.
func NewClient(tokens *TokenCache, baseURL string) *Client {
	limiter := rate.NewLimiter(rate.Limit(0.058), 5) // burst of 5 requests

	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		baseURL:     baseURL,
		tokens:      tokens,
		rateLimiter: limiter,
	}
}

// SearchItems queries item_summary/search for new-condition US listings
// matching the quoted MPN.
func (c *Client) SearchItems(ctx context.Context, mpn string) (*SearchResponse, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/buy/browse/v1/item_summary/search", c.baseURL)
	params := url.Values{}
	params.Set("q", fmt.Sprintf("%q", mpn)) // quoted for exact-phrase search
	params.Set("limit", "50")
	params.Set("filter", "conditionIds:{1000},itemLocationCountry:US")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status %d, body: %s", domain.ErrCredentialFailure, resp.StatusCode, string(body))
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status %d, body: %s", domain.ErrProviderFailure, resp.StatusCode, string(body))
	}

	var searchResp SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &searchResp, nil
}
