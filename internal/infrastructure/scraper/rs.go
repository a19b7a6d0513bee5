package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/Lakeram21/RSP-precurement/internal/domain"
	"github.com/Lakeram21/RSP-precurement/internal/matching"
)

const (
	rsSiteURL         = "https://us.rs-online.com"
	rsDefaultPageSize = 20
	rsMaxPages        = 3
)

// RS queries the RS search endpoint directly: the site backs its results
// page with a JSON service, so no page navigation is needed. The session
// cookie jar keeps anti-bot cookies across paginated calls. Implements
// domain.Provider.
type RS struct {
	client   *http.Client
	siteURL  string
	pageSize int
	maxPages int
}

// NewRS returns the RS provider adapter with a cookie-aware HTTP client.
func NewRS(timeout time.Duration) *RS {
	jar, _ := cookiejar.New(nil)
	return &RS{
		client: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
		siteURL:  rsSiteURL,
		pageSize: rsDefaultPageSize,
		maxPages: rsMaxPages,
	}
}

// Name returns the supplier name rows are tagged with.
func (p *RS) Name() string { return "RS Electric" }

// rsSearchPage mirrors the slice of the search payload the adapter reads.
type rsSearchPage struct {
	Records []struct {
		AllMeta struct {
			Title      string   `json:"title"`
			Brands     []string `json:"brands"`
			URI        string   `json:"uri"`
			Attributes struct {
				ManufacturerPartNumber struct {
					Text []string `json:"text"`
				} `json:"manufacturer_part_number"`
				AvailableQty struct {
					Numbers []float64 `json:"numbers"`
				} `json:"available_qty"`
			} `json:"attributes"`
			PriceInfo struct {
				Price float64 `json:"price"`
			} `json:"priceInfo"`
		} `json:"allMeta"`
	} `json:"records"`
}

// Fetch walks up to maxPages of search results and returns the first
// record whose declared part number relates to the MPN. Only strict
// equality marks the row exact; containment keeps the scraped SKU for
// review with exact_match=false.
func (p *RS) Fetch(ctx context.Context, query domain.Query) ([]domain.ProviderResult, error) {
	searchURL := fmt.Sprintf("%s/catalogsearch/result/?q=%s", p.siteURL, url.QueryEscape(query.MPN))

	for pageNum := 1; pageNum <= p.maxPages; pageNum++ {
		page, err := p.searchPage(ctx, query.MPN, pageNum)
		if err != nil {
			return nil, fmt.Errorf("%s page %d: %w", p.Name(), pageNum, err)
		}

		for _, rec := range page.Records {
			meta := rec.AllMeta
			declared := ""
			if texts := meta.Attributes.ManufacturerPartNumber.Text; len(texts) > 0 {
				declared = texts[0]
			}

			outcome := matching.Classify(query.MPN, declared)
			if outcome == matching.None {
				continue
			}

			result := domain.ProviderResult{
				Supplier:     p.Name(),
				PartNumber:   query.MPN,
				Manufacturer: strings.Join(meta.Brands, ", "),
				Price:        domain.Float(meta.PriceInfo.Price),
				URL:          meta.URI,
				ExactMatch:   outcome == matching.Exact,
				ScrapedSKU:   declared,
			}
			if result.URL == "" {
				result.URL = searchURL
			}
			if qty := meta.Attributes.AvailableQty.Numbers; len(qty) > 0 {
				result.Stock = domain.Int(int(qty[0]))
			}
			return []domain.ProviderResult{result}, nil
		}
	}

	// Searched every page, nothing related: keep the search URL so a
	// reviewer can look at what RS did return.
	return []domain.ProviderResult{{
		Supplier:   p.Name(),
		PartNumber: query.MPN,
		Stock:      domain.Int(0),
		Price:      domain.Float(0),
		URL:        searchURL,
		ExactMatch: false,
	}}, nil
}

// searchPage fetches one page of the JSON search endpoint.
func (p *RS) searchPage(ctx context.Context, mpn string, pageNum int) (*rsSearchPage, error) {
	endpoint := fmt.Sprintf("%s/groupby/search/endpoint", p.siteURL)
	params := url.Values{}
	params.Set("page", fmt.Sprintf("%d", pageNum))
	params.Set("page_size", fmt.Sprintf("%d", p.pageSize))
	params.Set("query", mpn)
	params.Set("in_stock", "0")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	req.Header.Set("Referer", fmt.Sprintf("%s/catalogsearch/result/?q=%s&page=%d", p.siteURL, url.QueryEscape(mpn), pageNum))

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status %d, body: %s", domain.ErrProviderFailure, resp.StatusCode, string(body))
	}

	var page rsSearchPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &page, nil
}
