package app

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/jqwang17/MediaSearch-API/internal/adapters"
	"github.com/jqwang17/MediaSearch-API/internal/domain"
	"github.com/jqwang17/MediaSearch-API/internal/ports"
)

// Service implements ports.SearchService: it fans out to the provider set
// selected by the media type hint, joins all branches, merges duplicate
// titles, and ranks the unified result set against the query.
type Service struct {
	registry      *adapters.ProviderRegistry
	branchTimeout time.Duration
}

// NewService creates a new search service. branchTimeout bounds each provider
// branch; a timed-out branch is treated like any other upstream failure.
func NewService(registry *adapters.ProviderRegistry, branchTimeout time.Duration) *Service {
	if branchTimeout <= 0 {
		branchTimeout = 8 * time.Second
	}
	return &Service{
		registry:      registry,
		branchTimeout: branchTimeout,
	}
}

// providerOrder maps the request type hint to the provider fan-out set. The
// order is the concatenation priority before merge: it makes the merge
// engine's stable tie-breaking deterministic.
func providerOrder(mediaType string) []string {
	switch mediaType {
	case "anime":
		return []string{string(domain.SourceAgedm)}
	case "movie":
		return []string{
			string(domain.SourceTMDB),
			string(domain.SourceMaoyan),
			string(domain.SourceDouban),
		}
	default:
		return []string{
			string(domain.SourceAgedm),
			string(domain.SourceTMDB),
			string(domain.SourceMaoyan),
			string(domain.SourceDouban),
		}
	}
}

func (s *Service) Search(ctx context.Context, query string, mediaType string) ([]domain.RecordView, error) {
	names := providerOrder(mediaType)
	batches := make([][]domain.Record, len(names))

	var wg sync.WaitGroup
	for i, name := range names {
		provider, err := s.registry.Get(name)
		if err != nil {
			log.Printf("[search] %v", err)
			continue
		}

		wg.Add(1)
		go func(i int, p ports.MediaProvider) {
			defer wg.Done()

			branchCtx, cancel := context.WithTimeout(ctx, s.branchTimeout)
			defer cancel()

			records, err := p.Search(branchCtx, query)
			if err != nil {
				// One upstream outage never fails the aggregate request.
				log.Printf("[search] provider %s failed: %v", p.Name(), err)
				return
			}
			batches[i] = records
		}(i, provider)
	}
	wg.Wait()

	var all []domain.Record
	for _, batch := range batches {
		all = append(all, batch...)
	}

	merged := Merge(all)
	ranked := Rank(merged, query)

	log.Printf("[search] query=%q type=%q: %d raw, %d merged, %d ranked",
		query, mediaType, len(all), len(merged), len(ranked))

	views := make([]domain.RecordView, 0, len(ranked))
	for _, r := range ranked {
		views = append(views, r.Render())
	}
	return views, nil
}
