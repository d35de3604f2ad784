package tfidx

import "github.com/relevantsearch/tfidx/internal/stopwords"

// StopWordSet is an immutable, validated set of terms stripped from both
// document text and query text during tokenization.
type StopWordSet struct {
	set *stopwords.Set
}

// NewStopWordSet builds a StopWordSet from a space-separated string.
func NewStopWordSet(words string) (*StopWordSet, error) {
	s, err := stopwords.New(words)
	if err != nil {
		return nil, err
	}
	return &StopWordSet{set: s}, nil
}

// NewStopWordSetFrom builds a StopWordSet from a slice of words.
func NewStopWordSetFrom(words []string) (*StopWordSet, error) {
	s, err := stopwords.NewFrom(words)
	if err != nil {
		return nil, err
	}
	return &StopWordSet{set: s}, nil
}
