// Package scraper implements the HTML-page provider adapters. Every site
// shares one search state machine; the files per supplier hold only the
// selectors and matching policy that differ between them.
package scraper

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Lakeram21/RSP-precurement/internal/domain"
)

// pageShape is the recognized layout of a fetched page.
type pageShape int

const (
	shapeUnknown pageShape = iota
	shapeNoResults
	shapeProduct
	shapeExactBanner
	shapeResultsList
)

func (s pageShape) String() string {
	switch s {
	case shapeNoResults:
		return "no_results"
	case shapeProduct:
		return "product"
	case shapeExactBanner:
		return "exact_banner"
	case shapeResultsList:
		return "results_list"
	default:
		return "unknown"
	}
}

// siteRules captures everything supplier-specific about an HTML provider:
// shape detection, link extraction, and product-page parsing.
type siteRules interface {
	Name() string
	SearchURL(query domain.Query) string

	// DetectShape classifies the fetched page. First recognized shape
	// wins; shapeUnknown triggers the bounded reload retry.
	DetectShape(doc *goquery.Document) pageShape

	// ParseProduct converts a resolved product page into results.
	ParseProduct(doc *goquery.Document, query domain.Query, pageURL string) []domain.ProviderResult

	// ExactMatchURL extracts the product link from an exact-match banner.
	// Sites without a banner shape never see this called.
	ExactMatchURL(doc *goquery.Document) (string, bool)

	// CandidateURL scans a results list for the first candidate whose
	// seller-declared identifier equals the query MPN (case-insensitive)
	// and returns its product-page URL. First equality wins; remaining
	// candidates are not evaluated.
	CandidateURL(doc *goquery.Document, query domain.Query) (string, bool)

	// ListFallback builds the row emitted when a results list holds no
	// matching candidate.
	ListFallback(query domain.Query, searchURL string) domain.ProviderResult
}

// SiteAdapter drives a siteRules implementation through the shared search
// state machine. It implements domain.Provider.
type SiteAdapter struct {
	rules     siteRules
	transport domain.PageTransport
}

// NewSiteAdapter wires a site's rules to a page transport. The transport
// is caller-supplied and never closed by the adapter.
func NewSiteAdapter(rules siteRules, transport domain.PageTransport) *SiteAdapter {
	return &SiteAdapter{rules: rules, transport: transport}
}

// Name returns the supplier name rows are tagged with.
func (a *SiteAdapter) Name() string { return a.rules.Name() }

// Fetch runs the search state machine:
//
//	load search page -> branch on shape (product page, exact-match
//	banner, results list, no results) -> resolve to a product page or a
//	sentinel. An unrecognized page earns exactly one reload before being
//	treated as not found.
//
// Faults never escape as panics; they return as errors for the
// orchestrator to record.
func (a *SiteAdapter) Fetch(ctx context.Context, query domain.Query) ([]domain.ProviderResult, error) {
	searchURL := a.rules.SearchURL(query)

	handle, err := a.transport.Navigate(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("%s search: %w", a.rules.Name(), err)
	}

	doc, err := a.document(ctx, handle)
	if err != nil {
		return nil, err
	}

	shape := a.rules.DetectShape(doc)
	if shape == shapeUnknown {
		// One bounded retry: a single reload, never recursive.
		if err := a.transport.Reload(ctx, handle); err != nil {
			return nil, fmt.Errorf("%s reload: %w", a.rules.Name(), err)
		}
		if doc, err = a.document(ctx, handle); err != nil {
			return nil, err
		}
		if shape = a.rules.DetectShape(doc); shape == shapeUnknown {
			// Ambiguous even after retry: treated as not found.
			return []domain.ProviderResult{domain.NotFoundResult(a.rules.Name(), query.MPN)}, nil
		}
	}

	switch shape {
	case shapeNoResults:
		return []domain.ProviderResult{domain.NotFoundResult(a.rules.Name(), query.MPN)}, nil

	case shapeProduct:
		return a.rules.ParseProduct(doc, query, handle.URL()), nil

	case shapeExactBanner:
		productURL, ok := a.rules.ExactMatchURL(doc)
		if !ok {
			return []domain.ProviderResult{domain.NotFoundResult(a.rules.Name(), query.MPN)}, nil
		}
		return a.followProduct(ctx, query, productURL)

	case shapeResultsList:
		productURL, ok := a.rules.CandidateURL(doc, query)
		if !ok {
			return []domain.ProviderResult{a.rules.ListFallback(query, searchURL)}, nil
		}
		return a.followProduct(ctx, query, productURL)
	}

	return nil, fmt.Errorf("%s: %w", a.rules.Name(), domain.ErrAmbiguousPage)
}

// followProduct navigates to a resolved product page and parses it.
func (a *SiteAdapter) followProduct(ctx context.Context, query domain.Query, url string) ([]domain.ProviderResult, error) {
	handle, err := a.transport.Navigate(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%s product page: %w", a.rules.Name(), err)
	}
	doc, err := a.document(ctx, handle)
	if err != nil {
		return nil, err
	}
	return a.rules.ParseProduct(doc, query, handle.URL()), nil
}

// document reads a page's HTML into a goquery document.
func (a *SiteAdapter) document(ctx context.Context, h domain.PageHandle) (*goquery.Document, error) {
	html, err := a.transport.Content(ctx, h)
	if err != nil {
		return nil, fmt.Errorf("%s content: %w", a.rules.Name(), err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("%s parse: %w", a.rules.Name(), err)
	}
	return doc, nil
}
