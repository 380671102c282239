package lookup

import (
	"context"
	"log/slog"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"github.com/heartmarshall/rhymebook-backend/internal/provider"
)

type wordProvider interface {
	Rhymes(ctx context.Context, word string) ([]provider.WordResult, error)
	MeansLike(ctx context.Context, word string) ([]provider.WordResult, error)
}

// Service performs word lookups against the external word API, caches
// responses, and shapes results for rendering.
type Service struct {
	words         wordProvider
	maxWordLength int

	// flight collapses identical concurrent upstream lookups into one
	// outstanding request.
	flight singleflight.Group
	cache  *expirable.LRU[string, []provider.WordResult]

	log *slog.Logger
}

// NewService creates a lookup Service.
func NewService(
	log *slog.Logger,
	words wordProvider,
	maxWordLength int,
	cacheSize int,
	cacheTTL time.Duration,
) *Service {
	return &Service{
		words:         words,
		maxWordLength: maxWordLength,
		cache:         expirable.NewLRU[string, []provider.WordResult](cacheSize, nil, cacheTTL),
		log:           log.With("service", "lookup"),
	}
}

// fetch runs one upstream lookup through the cache and the singleflight
// group. The cache key carries the relation kind so rhyme and means-like
// results for the same word never collide.
func (s *Service) fetch(ctx context.Context, key, word string, call func(context.Context, string) ([]provider.WordResult, error)) ([]provider.WordResult, error) {
	if cached, ok := s.cache.Get(key); ok {
		s.log.DebugContext(ctx, "lookup cache hit", slog.String("key", key))
		return cached, nil
	}

	v, err, shared := s.flight.Do(key, func() (any, error) {
		results, err := call(ctx, word)
		if err != nil {
			return nil, err
		}
		s.cache.Add(key, results)
		return results, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.log.DebugContext(ctx, "lookup shared in-flight result", slog.String("key", key))
	}

	return v.([]provider.WordResult), nil
}
