// Package query parses raw query text into a structured plus/minus term set,
// enforcing the minus-word syntax rules and stripping stop-words.
package query

import (
	"sort"

	"github.com/relevantsearch/tfidx/internal/stopwords"
	"github.com/relevantsearch/tfidx/internal/tokenizer"
	tfidxerrors "github.com/relevantsearch/tfidx/pkg/errors"
)

// Mode selects whether Parse produces ordered, deduplicated term sets
// (ModeOrdered, used by the sequential scoring path) or may leave duplicates
// in place (ModeUnordered, used by the parallel scoring path, which
// tolerates and is unaffected by duplicate work).
type Mode int

const (
	ModeOrdered Mode = iota
	ModeUnordered
)

// Query is the parsed form of a raw query string: the set of terms that
// must match (Plus) and the set of terms that must not match (Minus).
type Query struct {
	Plus  []string
	Minus []string
}

// Parse parses raw query text under the given Mode. It returns
// ErrInvalidCharacter if raw contains a control byte, ErrEmptyMinusWord if a
// token is exactly "-", and ErrDoubleMinus if a token starts with "--".
func Parse(raw string, mode Mode, stop *stopwords.Set) (Query, error) {
	if err := tokenizer.ValidateText(raw); err != nil {
		return Query{}, err
	}

	var q Query
	for _, tok := range tokenizer.Split(raw) {
		term, isMinus, err := parseQueryWord(tok)
		if err != nil {
			return Query{}, err
		}
		if stop.Contains(term) {
			continue
		}
		if isMinus {
			q.Minus = append(q.Minus, term)
		} else {
			q.Plus = append(q.Plus, term)
		}
	}

	if mode == ModeUnordered {
		return q, nil
	}

	q.Plus = sortUnique(q.Plus)
	q.Minus = sortUnique(q.Minus)
	return q, nil
}

func parseQueryWord(tok string) (term string, isMinus bool, err error) {
	if tok[0] != '-' {
		return tok, false, nil
	}
	if tok == "-" {
		return "", false, tfidxerrors.New(tfidxerrors.ErrEmptyMinusWord, tok)
	}
	if len(tok) >= 2 && tok[1] == '-' {
		return "", false, tfidxerrors.New(tfidxerrors.ErrDoubleMinus, tok)
	}
	return tok[1:], true, nil
}

func sortUnique(terms []string) []string {
	if len(terms) == 0 {
		return terms
	}
	sorted := append([]string(nil), terms...)
	sort.Strings(sorted)
	out := sorted[:1]
	for _, t := range sorted[1:] {
		if t != out[len(out)-1] {
			out = append(out, t)
		}
	}
	return out
}
