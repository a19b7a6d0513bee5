package scraper

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Lakeram21/RSP-precurement/internal/domain"
	"github.com/Lakeram21/RSP-precurement/internal/matching"
)

const mouserBaseURL = "https://www.mouser.com"

// mfrPartPrefix strips the "Mfr. Part #" label Mouser prepends to the
// part number cell in search-result rows.
var mfrPartPrefix = regexp.MustCompile(`(?i)^mfr\. part #\s*`)

// mouserRules implements the Mouser site policy. Product pages carrying a
// "Restricted Availability" notice are treated as not found regardless of
// any pricing content.
type mouserRules struct {
	baseURL string
}

// NewMouser returns the Mouser provider adapter.
func NewMouser(transport domain.PageTransport) *SiteAdapter {
	return NewSiteAdapter(&mouserRules{baseURL: mouserBaseURL}, transport)
}

func (r *mouserRules) Name() string { return "Mouser" }

func (r *mouserRules) SearchURL(query domain.Query) string {
	return fmt.Sprintf("%s/c/?q=%s", r.baseURL, url.QueryEscape(query.MPN))
}

func (r *mouserRules) DetectShape(doc *goquery.Document) pageShape {
	if doc.Find("#pdpPricingAvailability").Length() > 0 {
		return shapeProduct
	}
	if doc.Find("tr[data-partnumber]").Length() > 0 {
		return shapeResultsList
	}
	return shapeUnknown
}

func (r *mouserRules) ParseProduct(doc *goquery.Document, query domain.Query, pageURL string) []domain.ProviderResult {
	restricted := doc.Find(`[data-testid="RestrictedAvailabilityTrigger"]`).First()
	if restricted.Length() > 0 && strings.Contains(restricted.Text(), "Restricted Availability") {
		return []domain.ProviderResult{domain.NotFoundResult(r.Name(), query.MPN)}
	}

	scrapedSKU := strings.TrimSpace(doc.Find("span#spnManufacturerPartNumber").First().Text())

	result := domain.ProviderResult{
		Supplier:     r.Name(),
		PartNumber:   query.MPN,
		Manufacturer: strings.TrimSpace(doc.Find("a#lnkManufacturerName").First().Text()),
		URL:          pageURL,
		ExactMatch:   matching.Classify(query.MPN, scrapedSKU) == matching.Exact,
		ScrapedSKU:   scrapedSKU,
	}
	if scrapedSKU != "" {
		result.PartNumber = scrapedSKU
	}

	if stock := doc.Find(`h2[data-testid="PricingAvailabilityHeader"]`).First(); stock.Length() > 0 {
		result.Stock = domain.Int(parseInt(stock.Text()))
	}

	var tiers []float64
	doc.Find(`tr[data-testid="PricingTablePriceBreakRow"]`).Each(func(_ int, row *goquery.Selection) {
		tiers = append(tiers, parsePrice(row.Find("td").First().Text()))
	})
	if len(tiers) > 0 {
		result.Price = domain.Float(minTierPrice(tiers))
	}

	return []domain.ProviderResult{result}
}

// ExactMatchURL: Mouser has no exact-match banner shape.
func (r *mouserRules) ExactMatchURL(doc *goquery.Document) (string, bool) {
	return "", false
}

func (r *mouserRules) CandidateURL(doc *goquery.Document, query domain.Query) (string, bool) {
	var productURL string
	doc.Find("tr[data-partnumber]").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		skuCell := row.Find("div.mfr-part-num").First()
		if skuCell.Length() == 0 {
			return true
		}
		scraped := mfrPartPrefix.ReplaceAllString(strings.TrimSpace(skuCell.Text()), "")
		if matching.Classify(query.MPN, scraped) != matching.Exact {
			return true
		}
		if href, ok := skuCell.Find("a[href]").First().Attr("href"); ok {
			productURL = absoluteURL(r.baseURL, href)
			return false
		}
		return true
	})
	return productURL, productURL != ""
}

func (r *mouserRules) ListFallback(query domain.Query, searchURL string) domain.ProviderResult {
	return domain.ProviderResult{
		Supplier:   r.Name(),
		PartNumber: query.MPN,
		Stock:      domain.Int(0),
		Price:      domain.Float(0),
		URL:        searchURL,
		ExactMatch: false,
	}
}
