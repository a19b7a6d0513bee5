package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Lakeram21/RSP-precurement/internal/domain"
)

// SearchServiceConfig holds configuration for the search service
type SearchServiceConfig struct {
	ProviderTimeout time.Duration
}

// SearchService fans a part query out to the enabled provider set and
// merges the results into one classified response.
type SearchService struct {
	providers map[string]domain.Provider
	order     []string
	timeout   time.Duration
}

// NewSearchService creates a search service over a fixed provider
// registry. Registration order is the iteration order results are merged
// in; it never changes between runs.
func NewSearchService(config SearchServiceConfig, providers ...domain.Provider) *SearchService {
	timeout := config.ProviderTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	s := &SearchService{
		providers: make(map[string]domain.Provider, len(providers)),
		timeout:   timeout,
	}
	for _, p := range providers {
		if _, exists := s.providers[p.Name()]; exists {
			continue
		}
		s.providers[p.Name()] = p
		s.order = append(s.order, p.Name())
	}
	return s
}

// ProviderNames lists the configured providers in registration order.
func (s *SearchService) ProviderNames() []string {
	names := make([]string, len(s.order))
	copy(names, s.order)
	return names
}

// Aggregate queries every enabled provider concurrently, each under its
// own timeout, and partitions the merged results on exact_match.
//
// One provider's failure never aborts the batch: the failure becomes a
// per-provider status and the run continues. Partitioning happens after
// all providers join, and within each partition rows keep provider
// registration order, so the output is stable for a given input.
func (s *SearchService) Aggregate(ctx context.Context, query domain.Query, enabled []string) (*domain.SearchResponse, error) {
	if query.MPN == "" {
		return nil, domain.ErrInvalidRequest
	}
	if len(enabled) == 0 {
		return nil, domain.ErrNoProvidersEnabled
	}

	// Configuration errors surface before any work begins.
	enabledSet := make(map[string]bool, len(enabled))
	for _, name := range enabled {
		if _, ok := s.providers[name]; !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownProvider, name)
		}
		enabledSet[name] = true
	}

	var run []domain.Provider
	for _, name := range s.order {
		if enabledSet[name] {
			run = append(run, s.providers[name])
		}
	}

	slots := make([][]domain.ProviderResult, len(run))
	errs := make([]error, len(run))

	var g errgroup.Group
	for i, provider := range run {
		i, provider := i, provider
		g.Go(func() error {
			pctx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()
			slots[i], errs[i] = s.fetchSafe(pctx, provider, query)
			return nil
		})
	}
	g.Wait()

	response := &domain.SearchResponse{
		Query:     query,
		Timestamp: time.Now().UTC(),
	}

	for i, provider := range run {
		if errs[i] != nil {
			// Logged once here, not by every adapter independently.
			log.Printf("[AGGREGATE] %s failed for %q: %v", provider.Name(), query.MPN, errs[i])
			response.Statuses = append(response.Statuses, domain.ProviderStatus{
				Provider: provider.Name(),
				Status:   "error",
				Message:  errs[i].Error(),
			})
			continue
		}

		response.Statuses = append(response.Statuses, domain.ProviderStatus{
			Provider: provider.Name(),
			Status:   statusFor(slots[i]),
		})

		for _, result := range slots[i] {
			if result.ExactMatch {
				response.Exact = append(response.Exact, result)
			} else {
				response.Alternatives = append(response.Alternatives, result)
			}
		}
	}

	return response, nil
}

// Rescrape re-queries a single provider to refresh one row after an
// initial aggregation. Returns nil when the provider resolved nothing.
func (s *SearchService) Rescrape(ctx context.Context, providerName string, query domain.Query) (*domain.ProviderResult, error) {
	if query.MPN == "" {
		return nil, domain.ErrInvalidRequest
	}
	provider, ok := s.providers[providerName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownProvider, providerName)
	}

	pctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	results, err := s.fetchSafe(pctx, provider, query)
	if err != nil {
		log.Printf("[AGGREGATE] rescrape %s failed for %q: %v", providerName, query.MPN, err)
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return &results[0], nil
}

// fetchSafe invokes one adapter and converts panics into provider
// failures, keeping the isolation guarantee even against a misbehaving
// adapter.
func (s *SearchService) fetchSafe(ctx context.Context, provider domain.Provider, query domain.Query) (results []domain.ProviderResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			results = nil
			err = fmt.Errorf("%w: panic: %v", domain.ErrProviderFailure, r)
		}
	}()
	return provider.Fetch(ctx, query)
}

// statusFor distinguishes a resolved row set from a lone not-found sentinel.
func statusFor(results []domain.ProviderResult) string {
	if len(results) == 1 && results[0].URL == domain.NotFoundURL {
		return "not_found"
	}
	return "ok"
}
