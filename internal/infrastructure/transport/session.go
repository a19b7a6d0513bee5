// Package transport provides the page-fetch collaborator consumed by the
// HTML provider adapters. The Session implementation here rides a plain
// cookie-aware HTTP client with browser-like headers; a browser-automation
// transport can be substituted behind the same interface without touching
// any adapter.
package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"sync"
	"time"

	"github.com/Lakeram21/RSP-precurement/internal/domain"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/142.0.0.0 Safari/537.36"

// page is the handle for one fetched document.
type page struct {
	url  string
	body string
}

func (p *page) URL() string { return p.url }

// Session implements domain.PageTransport over net/http. Cookies persist
// across navigations within the session. One navigation is in flight at a
// time; concurrent providers should each hold their own Session.
type Session struct {
	client    *http.Client
	userAgent string
	mu        sync.Mutex
}

// NewSession creates a session with a fresh cookie jar. An empty
// userAgent selects a browser-like default.
func NewSession(timeout time.Duration, userAgent string) *Session {
	jar, _ := cookiejar.New(nil)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Session{
		client: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
		userAgent: userAgent,
	}
}

// Navigate fetches the given URL and returns a handle to the loaded page.
func (s *Session) Navigate(ctx context.Context, url string) (domain.PageHandle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetch(ctx, url)
}

// Content returns the HTML of a previously navigated page.
func (s *Session) Content(ctx context.Context, h domain.PageHandle) (string, error) {
	p, ok := h.(*page)
	if !ok {
		return "", fmt.Errorf("%w: foreign page handle", domain.ErrProviderFailure)
	}
	return p.body, nil
}

// Evaluate is unsupported: there is no script engine behind a plain HTTP
// fetch. Adapters treat this the same as a script returning nothing.
func (s *Session) Evaluate(ctx context.Context, h domain.PageHandle, script string) (string, error) {
	return "", domain.ErrEvaluateUnsupported
}

// Reload re-fetches the page in place. Used for the single bounded retry
// when a page yields no recognizable shape.
func (s *Session) Reload(ctx context.Context, h domain.PageHandle) error {
	p, ok := h.(*page)
	if !ok {
		return fmt.Errorf("%w: foreign page handle", domain.ErrProviderFailure)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	fresh, err := s.fetch(ctx, p.url)
	if err != nil {
		return err
	}
	*p = *fresh.(*page)
	return nil
}

// Close releases idle connections. Only the session's creator calls this.
func (s *Session) Close() {
	s.client.CloseIdleConnections()
}

// fetch performs one GET with browser-like headers. Callers hold s.mu.
func (s *Session) fetch(ctx context.Context, url string) (domain.PageHandle, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", domain.ErrProviderFailure, err)
	}

	return &page{
		url:  resp.Request.URL.String(),
		body: string(body),
	}, nil
}
