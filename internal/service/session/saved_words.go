package session

import (
	"context"
	"log/slog"
	"strings"

	"github.com/heartmarshall/rhymebook-backend/internal/domain"
)

// SavedWords is the session's saved-words list together with its
// comma-joined display form. Order is the order of saving; duplicates are
// permitted.
type SavedWords struct {
	Words  []string
	Joined string
}

// SaveWord appends a word to the session's saved list and returns the
// updated list. Saving never resets or deduplicates.
func (s *Service) SaveWord(ctx context.Context, word string) (*SavedWords, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil, domain.NewValidationError("word", "required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.get(ctx)
	if err != nil {
		return nil, err
	}

	if len(st.saved) >= s.maxSavedWords {
		return nil, domain.NewValidationError("word", "saved list is full")
	}

	st.saved = append(st.saved, word)

	s.log.InfoContext(ctx, "word saved",
		slog.String("word", word),
		slog.Int("saved_count", len(st.saved)),
	)

	return savedWords(st), nil
}

// Saved returns the session's saved-words list.
func (s *Service) Saved(ctx context.Context) (*SavedWords, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.get(ctx)
	if err != nil {
		return nil, err
	}
	return savedWords(st), nil
}

func savedWords(st *state) *SavedWords {
	words := make([]string, len(st.saved))
	copy(words, st.saved)
	return &SavedWords{
		Words:  words,
		Joined: strings.Join(words, ", "),
	}
}
