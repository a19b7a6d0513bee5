package scraper

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Lakeram21/RSP-precurement/internal/domain"
	"github.com/Lakeram21/RSP-precurement/internal/matching"
)

const galcoBaseURL = "https://www.galco.com"

// galcoRules implements the Galco site policy. Galco is the only supplier
// with a dedicated no-results marker, and the only one whose result cards
// carry a brand attribute used to fill the manufacturer column.
type galcoRules struct {
	baseURL string
}

// NewGalco returns the Galco provider adapter.
func NewGalco(transport domain.PageTransport) *SiteAdapter {
	return NewSiteAdapter(&galcoRules{baseURL: galcoBaseURL}, transport)
}

func (r *galcoRules) Name() string { return "Galco" }

func (r *galcoRules) SearchURL(query domain.Query) string {
	return fmt.Sprintf("%s/catalogsearch/result/?q=%s", r.baseURL, url.QueryEscape(query.MPN))
}

func (r *galcoRules) DetectShape(doc *goquery.Document) pageShape {
	if doc.Find("div.no-results").Length() > 0 {
		return shapeNoResults
	}
	if doc.Find("div.product-info-main").Length() > 0 {
		return shapeProduct
	}
	if doc.Find("div.product.main-details").Length() > 0 {
		return shapeResultsList
	}
	return shapeUnknown
}

func (r *galcoRules) ParseProduct(doc *goquery.Document, query domain.Query, pageURL string) []domain.ProviderResult {
	result := domain.ProviderResult{
		Supplier:     r.Name(),
		PartNumber:   query.MPN,
		Manufacturer: query.Manufacturer,
		URL:          pageURL,
		ExactMatch:   true,
	}

	if brand := strings.TrimSpace(doc.Find("div.product.attribute.brand").First().Text()); brand != "" {
		result.Manufacturer = brand
	}
	if stock := doc.Find("span.stock-number").First(); stock.Length() > 0 {
		result.Stock = domain.Int(parseInt(stock.Text()))
	}
	if price := doc.Find("span.price").First(); price.Length() > 0 {
		result.Price = domain.Float(parsePrice(price.Text()))
	}

	return []domain.ProviderResult{result}
}

// ExactMatchURL: Galco has no exact-match banner shape.
func (r *galcoRules) ExactMatchURL(doc *goquery.Document) (string, bool) {
	return "", false
}

func (r *galcoRules) CandidateURL(doc *goquery.Document, query domain.Query) (string, bool) {
	var productURL string
	doc.Find("div.product.main-details").EachWithBreak(func(_ int, card *goquery.Selection) bool {
		scrapedMPN := strings.TrimSpace(card.Find("div.mfg-item-number div.value").First().Text())
		if matching.Classify(query.MPN, scrapedMPN) != matching.Exact {
			return true
		}
		if href, ok := card.Find("a.product-item-link[href]").First().Attr("href"); ok {
			productURL = absoluteURL(r.baseURL, href)
			return false
		}
		return true
	})
	return productURL, productURL != ""
}

// ListFallback: results existed but none declared the MPN; keep the
// search-results URL so a reviewer can inspect the near misses.
func (r *galcoRules) ListFallback(query domain.Query, searchURL string) domain.ProviderResult {
	return domain.ProviderResult{
		Supplier:   r.Name(),
		PartNumber: query.MPN,
		Stock:      domain.Int(0),
		Price:      domain.Float(0),
		URL:        searchURL,
		ExactMatch: false,
	}
}
