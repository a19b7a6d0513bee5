package domain

import "time"

// NotFoundURL is the sentinel URL recorded when a provider searched and
// found no matching product. It distinguishes "searched, found nothing"
// from "provider did not run".
const NotFoundURL = "Not Found"

// Query identifies one aggregation run. Immutable once the run starts.
type Query struct {
	MPN          string `json:"mpn"`
	Manufacturer string `json:"manufacturer,omitempty"`
}

// ProviderResult is the normalized, provider-agnostic record every adapter
// emits. Stock and Price are pointers: nil means unknown, a value of 0
// means confirmed zero. Adapters that cannot determine stock must leave it
// nil, never report 0.
//
// Price is in the supplier's native currency with no currency field;
// every configured supplier quotes USD.
type ProviderResult struct {
	Supplier     string   `json:"supplier"`
	PartNumber   string   `json:"part_number"`
	Manufacturer string   `json:"manufacturer,omitempty"`
	Stock        *int     `json:"stock"`
	Price        *float64 `json:"price"`
	URL          string   `json:"url,omitempty"`
	ExactMatch   bool     `json:"exact_match"`
	ScrapedSKU   string   `json:"scraped_sku,omitempty"`
}

// ProviderStatus reports the outcome of one provider within a run.
type ProviderStatus struct {
	Provider string `json:"provider"`
	Status   string `json:"status"` // "ok", "not_found", or "error"
	Message  string `json:"message,omitempty"`
}

// SearchResponse is the aggregated output of one run: the merged result
// set partitioned on ExactMatch, plus per-provider statuses.
type SearchResponse struct {
	Query        Query            `json:"query"`
	Timestamp    time.Time        `json:"timestamp"`
	Exact        []ProviderResult `json:"exact"`
	Alternatives []ProviderResult `json:"alternatives"`
	Statuses     []ProviderStatus `json:"statuses"`
}

// Int returns a pointer to n, for ProviderResult stock fields.
func Int(n int) *int { return &n }

// Float returns a pointer to f, for ProviderResult price fields.
func Float(f float64) *float64 { return &f }

// NotFoundResult builds the sentinel record a provider emits when it
// determined with reasonable confidence that no matching product exists.
// Every provider query yields at least one result, so the orchestrator
// never has to distinguish "returned nothing" from "still pending".
func NotFoundResult(supplier, mpn string) ProviderResult {
	return ProviderResult{
		Supplier:   supplier,
		PartNumber: mpn,
		Stock:      Int(0),
		Price:      Float(0),
		URL:        NotFoundURL,
		ExactMatch: false,
	}
}
