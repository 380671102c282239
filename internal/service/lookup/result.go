package lookup

import (
	"github.com/heartmarshall/rhymebook-backend/internal/domain"
)

// RhymeResult is a rhyme lookup shaped for rendering: matches bucketed by
// syllable count, buckets in ascending syllable order.
type RhymeResult struct {
	Query   string
	Heading string
	Groups  []domain.SyllableGroup
	Total   int
}

// MeansLikeResult is a similar-meaning lookup: a flat, ungrouped list in
// the order the word service returned it.
type MeansLikeResult struct {
	Query   string
	Heading string
	Words   []domain.WordMatch
	Total   int
}
