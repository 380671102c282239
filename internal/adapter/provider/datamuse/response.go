package datamuse

// apiWord represents a single object from the Datamuse /words response.
// The API returns a JSON array of these. Word is a pointer so the mapper
// can distinguish a missing field from an empty string; Score and
// NumSyllables appear only when the query asks for them (&md=s adds
// syllable counts on rhyme queries).
type apiWord struct {
	Word         *string `json:"word"`
	Score        int     `json:"score"`
	NumSyllables int     `json:"numSyllables"`
}
