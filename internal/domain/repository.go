package domain

import (
	"context"
	"time"
)

// SearchCache caches assembled search responses so repeated lookups for
// the same part do not re-hit every provider. Keys are built from the
// normalized query and the enabled provider set.
type SearchCache interface {
	Get(ctx context.Context, key string) (*SearchResponse, error)
	Set(ctx context.Context, key string, response *SearchResponse, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
