package ebay

import (
	"context"
	"strconv"

	"github.com/Lakeram21/RSP-precurement/internal/domain"
	"github.com/Lakeram21/RSP-precurement/internal/matching"
)

// minFeedbackPercentage is the seller-quality floor. Listings from
// sellers below it are dropped even when the title matches exactly.
const minFeedbackPercentage = 98.0

// Adapter converts Browse API listings into normalized results.
// Implements domain.Provider.
type Adapter struct {
	client *Client
}

// NewAdapter returns the eBay provider adapter.
func NewAdapter(client *Client) *Adapter {
	return &Adapter{client: client}
}

// Name returns the supplier name rows are tagged with.
func (a *Adapter) Name() string { return "eBay" }

// Fetch searches the marketplace and applies the listing filter rules:
//   - the listing must carry at least one image
//   - seller feedback must be at least 98.0%
//   - an explicit returnsAccepted=false rejects; an absent field does not
//
// Marketplace sellers do not expose inventory counts, so stock is always
// a confirmed 0 (the listing exists, quantity unknown beyond "for sale").
// Exact match requires a title token equal to the MPN; containment only
// records the token as the scraped SKU.
func (a *Adapter) Fetch(ctx context.Context, query domain.Query) ([]domain.ProviderResult, error) {
	resp, err := a.client.SearchItems(ctx, query.MPN)
	if err != nil {
		return nil, err
	}

	var results []domain.ProviderResult
	for _, item := range resp.ItemSummaries {
		if item.Title == "" {
			continue
		}
		if item.Image == nil || item.Image.ImageURL == "" {
			continue
		}
		if feedback, err := strconv.ParseFloat(item.Seller.FeedbackPercentage, 64); err != nil || feedback < minFeedbackPercentage {
			continue
		}
		if item.ReturnTerms != nil && item.ReturnTerms.ReturnsAccepted != nil && !*item.ReturnTerms.ReturnsAccepted {
			continue
		}

		sku, outcome := matching.BestToken(query.MPN, matching.ExtractSKUTokens(item.Title))

		price := 0.0
		if v, err := strconv.ParseFloat(item.Price.Value, 64); err == nil {
			price = v
		}

		results = append(results, domain.ProviderResult{
			Supplier:   a.Name(),
			PartNumber: query.MPN,
			Stock:      domain.Int(0),
			Price:      domain.Float(price),
			URL:        item.ItemWebURL,
			ExactMatch: outcome == matching.Exact,
			ScrapedSKU: sku,
		})
	}

	if len(results) == 0 {
		return []domain.ProviderResult{domain.NotFoundResult(a.Name(), query.MPN)}, nil
	}
	return results, nil
}
