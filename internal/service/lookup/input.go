package lookup

import (
	"github.com/heartmarshall/rhymebook-backend/internal/domain"
)

// Input holds the parameters for a word lookup.
type Input struct {
	Word string
}

// normalize validates the query word and returns its normalized form.
// The length limit comes from service configuration.
func (s *Service) normalize(input Input) (string, error) {
	word := domain.NormalizeWord(input.Word)

	var errs []domain.FieldError
	if word == "" {
		errs = append(errs, domain.FieldError{Field: "word", Message: "required"})
	}
	if len(word) > s.maxWordLength {
		errs = append(errs, domain.FieldError{Field: "word", Message: "too long"})
	}
	if len(errs) > 0 {
		return "", &domain.ValidationError{Errors: errs}
	}
	return word, nil
}
