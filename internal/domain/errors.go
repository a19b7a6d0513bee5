package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrNoProvidersEnabled is returned when an aggregation is requested
	// with an empty provider set
	ErrNoProvidersEnabled = errors.New("no providers enabled")

	// ErrUnknownProvider is returned when a requested provider name is not configured
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrProviderFailure is returned when an adapter fails at its boundary
	// (network, timeout, navigation); the run continues without it
	ErrProviderFailure = errors.New("provider request failed")

	// ErrCredentialFailure is returned when a token exchange is rejected;
	// fatal for that provider's run only
	ErrCredentialFailure = errors.New("credential exchange failed")

	// ErrAmbiguousPage is returned when a fetched page matches no known
	// shape even after the bounded retry
	ErrAmbiguousPage = errors.New("page shape not recognized")

	// ErrEvaluateUnsupported is returned by transports that cannot run
	// scripts against a page
	ErrEvaluateUnsupported = errors.New("script evaluation not supported by transport")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
