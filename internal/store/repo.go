package store

import (
	"context"

	"github.com/custsvc/interactions-api/internal/core/query"
)

// Store executes interaction range queries.
type Store interface {
	// Query runs d once and returns the page it produced. Failures wrap
	// ErrStoreUnavailable or ErrStoreQueryFailed.
	Query(ctx context.Context, d query.Descriptor) (*Page, error)
}
