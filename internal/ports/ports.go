package ports

import (
	"context"

	"github.com/jqwang17/MediaSearch-API/internal/domain"
)

// MediaProvider defines the contract that every upstream data source adapter
// must implement. This is the primary driven port of the hexagonal
// architecture.
//
// Search returns the provider's best candidates for the query, already
// converted to canonical records. Per-item upstream problems (a malformed
// entry, a failed detail fetch) degrade only that item; an error return means
// the whole provider branch produced nothing and the caller decides how to
// recover.
type MediaProvider interface {
	Search(ctx context.Context, query string) ([]domain.Record, error)

	// Name returns the provider identifier (e.g., "tmdb", "douban").
	Name() string
}

// SearchService defines the driving port for the aggregated search use case.
type SearchService interface {
	// Search fans out to the provider set selected by mediaType, merges
	// duplicate titles across providers, and returns the ranked result list.
	// A provider failure never fails the aggregate request.
	Search(ctx context.Context, query string, mediaType string) ([]domain.RecordView, error)
}
