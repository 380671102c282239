package domain

// WordMatch is one decoded result from the word-lookup service.
type WordMatch struct {
	Word         string
	Score        int
	NumSyllables int
}

// SyllableGroup is a bucket of rhyme matches sharing a syllable count.
// Word order inside a group matches the order the service returned them in.
type SyllableGroup struct {
	Syllables int
	Words     []WordMatch
}
