package scraper

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Lakeram21/RSP-precurement/internal/domain"
	"github.com/Lakeram21/RSP-precurement/internal/matching"
)

const digikeyBaseURL = "https://www.digikey.com"

// digikeyRules implements the Digi-Key site policy. Digi-Key is the one
// supplier with an explicit exact-match banner on its results page, and
// its product pages expose one pricing block per packaging option.
type digikeyRules struct {
	baseURL string
}

// NewDigiKey returns the Digi-Key provider adapter.
func NewDigiKey(transport domain.PageTransport) *SiteAdapter {
	return NewSiteAdapter(&digikeyRules{baseURL: digikeyBaseURL}, transport)
}

func (r *digikeyRules) Name() string { return "DigiKey" }

func (r *digikeyRules) SearchURL(query domain.Query) string {
	return fmt.Sprintf("%s/en/products/result?keywords=%s", r.baseURL, url.QueryEscape(query.MPN))
}

func (r *digikeyRules) DetectShape(doc *goquery.Document) pageShape {
	if doc.Find(`div[data-evg="price-procurement-wrapper"]`).Length() > 0 {
		return shapeProduct
	}
	if doc.Find(`div[data-testid="category-exact-match"]`).Length() > 0 {
		return shapeExactBanner
	}
	if doc.Find(`div[data-testid="sb-content-container"] tbody tr`).Length() > 0 {
		return shapeResultsList
	}
	return shapeUnknown
}

// ParseProduct emits one row per pricing block. Stock comes from the
// "In-Stock" span inside each block; price is the minimum unit price
// across the quantity-break table.
func (r *digikeyRules) ParseProduct(doc *goquery.Document, query domain.Query, pageURL string) []domain.ProviderResult {
	blocks := doc.Find(`div[data-evg="price-procurement-wrapper"]`)
	if blocks.Length() == 0 {
		return []domain.ProviderResult{domain.NotFoundResult(r.Name(), query.MPN)}
	}

	manufacturer := strings.TrimSpace(doc.Find(`tr[data-testid="overview-manufacturer"]`).Text())

	var results []domain.ProviderResult
	blocks.Each(func(_ int, block *goquery.Selection) {
		result := domain.ProviderResult{
			Supplier:     r.Name(),
			PartNumber:   query.MPN,
			Manufacturer: manufacturer,
			URL:          pageURL,
			ExactMatch:   true, // page-asserted: Digi-Key resolved the MPN to this product
		}

		block.Find("span").EachWithBreak(func(_ int, span *goquery.Selection) bool {
			if strings.Contains(span.Text(), "In-Stock") {
				result.Stock = domain.Int(parseInt(span.Text()))
				return false
			}
			return true
		})

		var tiers []float64
		block.Find("table.MuiTable-root td.MuiTableCell-body:nth-of-type(2)").Each(func(_ int, td *goquery.Selection) {
			tiers = append(tiers, parsePrice(td.Text()))
		})
		if len(tiers) > 0 {
			result.Price = domain.Float(minTierPrice(tiers))
		}

		results = append(results, result)
	})

	return results
}

func (r *digikeyRules) ExactMatchURL(doc *goquery.Document) (string, bool) {
	href, ok := doc.Find(`div[data-testid="category-exact-match"] a[href]`).First().Attr("href")
	if !ok {
		return "", false
	}
	return absoluteURL(r.baseURL, href), true
}

func (r *digikeyRules) CandidateURL(doc *goquery.Document, query domain.Query) (string, bool) {
	var productURL string
	doc.Find(`div[data-testid="sb-content-container"] tbody tr`).EachWithBreak(func(_ int, row *goquery.Selection) bool {
		skuBlock := row.Find(`div[class*="mfrProdNumHeader"]`).First()
		if skuBlock.Length() == 0 {
			return true
		}
		if matching.Classify(query.MPN, skuBlock.Text()) != matching.Exact {
			return true
		}
		if href, ok := skuBlock.Find("a[href]").First().Attr("href"); ok {
			productURL = absoluteURL(r.baseURL, href)
			return false
		}
		return true
	})
	return productURL, productURL != ""
}

// ListFallback: a results list with no matching part number means
// Digi-Key does not carry the MPN.
func (r *digikeyRules) ListFallback(query domain.Query, searchURL string) domain.ProviderResult {
	return domain.NotFoundResult(r.Name(), query.MPN)
}
