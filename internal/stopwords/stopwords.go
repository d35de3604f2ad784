// Package stopwords implements an immutable set of terms stripped during
// tokenization of document text and query text alike.
package stopwords

import (
	"github.com/relevantsearch/tfidx/internal/tokenizer"
	tfidxerrors "github.com/relevantsearch/tfidx/pkg/errors"
)

// Set is an immutable, validated set of stop-words.
type Set struct {
	words map[string]struct{}
}

// New builds a Set from a space-separated string of stop-words.
func New(spaceSeparated string) (*Set, error) {
	return NewFrom(tokenizer.Split(spaceSeparated))
}

// NewFrom builds a Set from a slice of stop-words. Duplicates are silently
// coalesced by map insertion.
func NewFrom(words []string) (*Set, error) {
	s := &Set{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		if w == "" {
			continue
		}
		if !tokenizer.IsValidTerm(w) {
			return nil, tfidxerrors.Newf(tfidxerrors.ErrInvalidCharacter, "stop-word %q", w)
		}
		s.words[w] = struct{}{}
	}
	return s, nil
}

// Empty returns a Set containing no stop-words.
func Empty() *Set {
	return &Set{words: make(map[string]struct{})}
}

// Contains reports whether term is a stop-word. A nil Set contains nothing.
func (s *Set) Contains(term string) bool {
	if s == nil {
		return false
	}
	_, ok := s.words[term]
	return ok
}
