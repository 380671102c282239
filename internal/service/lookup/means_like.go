package lookup

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/rhymebook-backend/internal/domain"
)

// MeansLike looks up words with a meaning similar to the query word.
// The result stays flat; only rhyme lookups are grouped.
func (s *Service) MeansLike(ctx context.Context, input Input) (*MeansLikeResult, error) {
	word, err := s.normalize(input)
	if err != nil {
		return nil, err
	}

	results, err := s.fetch(ctx, "ml:"+word, word, s.words.MeansLike)
	if err != nil {
		s.log.ErrorContext(ctx, "means-like lookup failed", slog.String("word", word), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %s", domain.ErrUnavailable, err)
	}

	matches := toMatches(results)

	s.log.InfoContext(ctx, "means-like lookup",
		slog.String("word", word),
		slog.Int("matches", len(matches)),
	)

	return &MeansLikeResult{
		Query:   word,
		Heading: fmt.Sprintf("Words with a meaning similar to %s:", word),
		Words:   matches,
		Total:   len(matches),
	}, nil
}
