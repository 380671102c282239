package lookup

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/rhymebook-backend/internal/domain"
	"github.com/heartmarshall/rhymebook-backend/internal/provider"
	"github.com/heartmarshall/rhymebook-backend/pkg/groupby"
)

// Rhymes looks up words rhyming with the query word and buckets them by
// syllable count. An empty Groups slice means the word has no known rhymes.
func (s *Service) Rhymes(ctx context.Context, input Input) (*RhymeResult, error) {
	word, err := s.normalize(input)
	if err != nil {
		return nil, err
	}

	results, err := s.fetch(ctx, "rhy:"+word, word, s.words.Rhymes)
	if err != nil {
		s.log.ErrorContext(ctx, "rhyme lookup failed", slog.String("word", word), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %s", domain.ErrUnavailable, err)
	}

	matches := toMatches(results)
	groups := groupby.By(matches, func(m domain.WordMatch) int { return m.NumSyllables })

	syllableGroups := make([]domain.SyllableGroup, 0, len(groups))
	for _, g := range groups {
		syllableGroups = append(syllableGroups, domain.SyllableGroup{
			Syllables: g.Key,
			Words:     g.Items,
		})
	}

	s.log.InfoContext(ctx, "rhyme lookup",
		slog.String("word", word),
		slog.Int("matches", len(matches)),
		slog.Int("groups", len(syllableGroups)),
	)

	return &RhymeResult{
		Query:   word,
		Heading: fmt.Sprintf("Words that rhyme with %s:", word),
		Groups:  syllableGroups,
		Total:   len(matches),
	}, nil
}

func toMatches(results []provider.WordResult) []domain.WordMatch {
	matches := make([]domain.WordMatch, 0, len(results))
	for _, r := range results {
		matches = append(matches, domain.WordMatch{
			Word:         r.Word,
			Score:        r.Score,
			NumSyllables: r.NumSyllables,
		})
	}
	return matches
}
