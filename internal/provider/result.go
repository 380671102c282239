package provider

// WordResult is one structured result from a word-lookup API provider.
type WordResult struct {
	Word         string
	Score        int
	NumSyllables int
}
