// Package tokenizer splits document and query text into whitespace-separated
// terms. The only separator recognized is the ASCII space (0x20); there is
// no case-folding, punctuation trimming, or stemming, and no Unicode-aware
// splitting beyond plain byte scanning — the engine this package serves
// treats a term as an opaque byte-sequence.
package tokenizer

import (
	"strings"

	tfidxerrors "github.com/relevantsearch/tfidx/pkg/errors"
)

// Split breaks text into maximal non-space runs. Empty runs (produced by
// runs of consecutive spaces) are discarded. It does not validate the
// character set — call ValidateText first if that matters to the caller.
func Split(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ' '
	})
	return fields
}

// ValidateText reports an error if text contains any byte below 0x20 (the
// ASCII space), which this engine treats as a control character that may
// never appear in a term.
func ValidateText(text string) error {
	for i := 0; i < len(text); i++ {
		if text[i] < 0x20 {
			return tfidxerrors.Newf(tfidxerrors.ErrInvalidCharacter, "byte 0x%02x at offset %d", text[i], i)
		}
	}
	return nil
}

// IsValidTerm reports whether every byte of term is >= 0x20.
func IsValidTerm(term string) bool {
	for i := 0; i < len(term); i++ {
		if term[i] < 0x20 {
			return false
		}
	}
	return true
}
