package scraper

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	nonPriceChars = regexp.MustCompile(`[^0-9.]`)
	nonDigitChars = regexp.MustCompile(`[^0-9]`)
)

// parsePrice extracts a float from strings like "$7.57" or "USD 12.50".
func parsePrice(text string) float64 {
	cleaned := nonPriceChars.ReplaceAllString(text, "")
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

// parseInt extracts an integer from text like "In Stock: 1,234".
func parseInt(text string) int {
	cleaned := nonDigitChars.ReplaceAllString(text, "")
	if cleaned == "" {
		return 0
	}
	v, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0
	}
	return v
}

// minTierPrice returns the lowest unit price across a quantity-break
// table. Best-available pricing: the reported price is the minimum tier,
// not the first tier. Zero-valued tiers (unparseable cells) are skipped.
func minTierPrice(tiers []float64) float64 {
	min := 0.0
	for _, p := range tiers {
		if p <= 0 {
			continue
		}
		if min == 0 || p < min {
			min = p
		}
	}
	return min
}

// absoluteURL prefixes site-relative hrefs with the supplier's base URL.
func absoluteURL(baseURL, href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return baseURL + href
}
