package domain

import "context"

// Provider is the common capability every supplier adapter implements.
//
// Fetch is bounded by the caller's context deadline and never panics past
// its own boundary. Return conventions:
//   - one or more results: the provider resolved the query (the sentinel
//     from NotFoundResult counts as a resolved "searched, found nothing")
//   - nil results with a non-nil error: the provider failed; the
//     orchestrator records the error and continues with the rest
type Provider interface {
	Name() string
	Fetch(ctx context.Context, query Query) ([]ProviderResult, error)
}

// PageHandle identifies one loaded page within a transport session.
type PageHandle interface {
	// URL reports the page's current address, after any redirects.
	URL() string
}

// PageTransport is the browser/page-fetch collaborator HTML-based
// adapters consume. Implementations must tolerate being invoked against a
// page that has not finished rendering; callers impose their own settle
// waits. A single session supports one navigation in flight at a time.
//
// Session ownership: a caller-supplied transport is never closed by an
// adapter; an adapter that creates its own transport closes it on every
// path, including errors.
type PageTransport interface {
	Navigate(ctx context.Context, url string) (PageHandle, error)
	Content(ctx context.Context, h PageHandle) (string, error)
	Evaluate(ctx context.Context, h PageHandle, script string) (string, error)
	Reload(ctx context.Context, h PageHandle) error
}
