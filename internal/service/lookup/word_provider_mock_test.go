package lookup

import (
	"context"

	"github.com/heartmarshall/rhymebook-backend/internal/provider"
)

// wordProviderMock is a function-field mock of the wordProvider interface.
type wordProviderMock struct {
	RhymesFunc    func(ctx context.Context, word string) ([]provider.WordResult, error)
	MeansLikeFunc func(ctx context.Context, word string) ([]provider.WordResult, error)
}

func (m *wordProviderMock) Rhymes(ctx context.Context, word string) ([]provider.WordResult, error) {
	return m.RhymesFunc(ctx, word)
}

func (m *wordProviderMock) MeansLike(ctx context.Context, word string) ([]provider.WordResult, error) {
	return m.MeansLikeFunc(ctx, word)
}
