package scraper

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Lakeram21/RSP-precurement/internal/domain"
	"github.com/Lakeram21/RSP-precurement/internal/matching"
)

const radwellBaseURL = "https://www.radwell.com"

// radwellRules implements the Radwell site policy. Radwell sells the same
// part in several conditions; only the factory-new buying option (FNFP)
// is quoted. Stock text reading "call for availability" normalizes to a
// confirmed zero, never a parsed number.
type radwellRules struct {
	baseURL string
}

// NewRadwell returns the Radwell provider adapter.
func NewRadwell(transport domain.PageTransport) *SiteAdapter {
	return NewSiteAdapter(&radwellRules{baseURL: radwellBaseURL}, transport)
}

func (r *radwellRules) Name() string { return "Radwell" }

func (r *radwellRules) SearchURL(query domain.Query) string {
	return fmt.Sprintf("%s/Search/?q=%s", r.baseURL, url.QueryEscape(query.MPN))
}

func (r *radwellRules) DetectShape(doc *goquery.Document) pageShape {
	if doc.Find("div.rd-buyOpts").Length() > 0 {
		return shapeProduct
	}
	if doc.Find("#searchResults").Length() > 0 {
		return shapeResultsList
	}
	return shapeUnknown
}

func (r *radwellRules) ParseProduct(doc *goquery.Document, query domain.Query, pageURL string) []domain.ProviderResult {
	result := domain.ProviderResult{
		Supplier:     r.Name(),
		PartNumber:   query.MPN,
		Manufacturer: strings.TrimSpace(doc.Find("div.manufacturer-container").First().Text()),
		URL:          pageURL,
		ExactMatch:   true,
	}

	var newOption *goquery.Selection
	doc.Find("div.option").EachWithBreak(func(_ int, opt *goquery.Selection) bool {
		if opt.AttrOr("data-id", "") == "FNFP" {
			newOption = opt
			return false
		}
		return true
	})
	if newOption == nil {
		// Page resolved but no factory-new option: stock and price are
		// unknown, not zero.
		return []domain.ProviderResult{result}
	}

	if stockEl := newOption.Find("div.option__stock__v2").First(); stockEl.Length() > 0 {
		stockText := strings.TrimSpace(stockEl.Text())
		if strings.Contains(strings.ToLower(stockText), "call") {
			result.Stock = domain.Int(0)
		} else {
			result.Stock = domain.Int(parseInt(stockText))
		}
	}
	if priceEl := newOption.Find("span.ActualPrice").First(); priceEl.Length() > 0 {
		result.Price = domain.Float(parsePrice(priceEl.Text()))
	}

	return []domain.ProviderResult{result}
}

// ExactMatchURL: Radwell has no exact-match banner shape.
func (r *radwellRules) ExactMatchURL(doc *goquery.Document) (string, bool) {
	return "", false
}

func (r *radwellRules) CandidateURL(doc *goquery.Document, query domain.Query) (string, bool) {
	var productURL string
	doc.Find("#searchResults a.taglink").EachWithBreak(func(_ int, item *goquery.Selection) bool {
		title := item.Find("div.partno").First().AttrOr("title", "")
		if matching.Classify(query.MPN, title) != matching.Exact {
			return true
		}
		if href, ok := item.Attr("href"); ok {
			productURL = absoluteURL(r.baseURL, href)
			return false
		}
		return true
	})
	return productURL, productURL != ""
}

func (r *radwellRules) ListFallback(query domain.Query, searchURL string) domain.ProviderResult {
	return domain.ProviderResult{
		Supplier:   r.Name(),
		PartNumber: query.MPN,
		Stock:      domain.Int(0),
		Price:      domain.Float(0),
		URL:        searchURL,
		ExactMatch: false,
	}
}
