package tfidx

import (
	"context"
	"fmt"
	"math"

	"github.com/relevantsearch/tfidx/internal/tokenizer"
	"github.com/relevantsearch/tfidx/pkg/diagnostics"
)

// NewInvariantChecker builds a diagnostics.Checker with one registered
// check per InvertedIndex invariant, auditing engine's live state on
// demand. Intended for tests and operational debugging, not the hot query
// path.
func NewInvariantChecker(engine *SearchEngine) *diagnostics.Checker {
	c := diagnostics.NewChecker()

	c.Register("ids_match_docs", func(ctx context.Context) diagnostics.Result {
		ids := engine.IterIDs()
		for _, id := range ids {
			if _, ok := engine.idx.DocStatus(id); !ok {
				return violated("id %d present in IterIDs but absent from docs", id)
			}
		}
		if len(ids) != engine.DocumentCount() {
			return violated("len(IterIDs())=%d != DocumentCount()=%d", len(ids), engine.DocumentCount())
		}
		return ok()
	})

	c.Register("postings_symmetric", func(ctx context.Context) diagnostics.Result {
		for _, id := range engine.IterIDs() {
			for t, tf := range engine.WordFrequencies(id) {
				posting := engine.idx.Postings(t)
				if posting[id] != tf {
					return violated("by_term[%q][%d]=%v != by_doc[%d][%q]=%v", t, id, posting[id], id, t, tf)
				}
			}
		}
		return ok()
	})

	c.Register("frequencies_sum_to_one", func(ctx context.Context) diagnostics.Result {
		for _, id := range engine.IterIDs() {
			freq := engine.WordFrequencies(id)
			if len(freq) == 0 {
				continue
			}
			var sum float64
			for _, tf := range freq {
				sum += tf
			}
			if math.Abs(sum-1.0) > 1e-9 {
				return violated("document %d term frequencies sum to %v, want 1.0", id, sum)
			}
		}
		return ok()
	})

	c.Register("no_empty_postings", func(ctx context.Context) diagnostics.Result {
		for _, t := range engine.idx.Terms() {
			if engine.idx.DocumentFrequency(t) == 0 {
				return violated("term %q retained with an empty posting list", t)
			}
		}
		return ok()
	})

	c.Register("no_stopwords_indexed", func(ctx context.Context) diagnostics.Result {
		for _, t := range engine.idx.Terms() {
			if engine.stop.Contains(t) {
				return violated("stop-word %q present in the index", t)
			}
		}
		return ok()
	})

	c.Register("terms_valid", func(ctx context.Context) diagnostics.Result {
		for _, t := range engine.idx.Terms() {
			if !tokenizer.IsValidTerm(t) {
				return violated("term %q contains an invalid character", t)
			}
		}
		return ok()
	})

	return c
}

func ok() diagnostics.Result {
	return diagnostics.Result{Status: diagnostics.StatusOK}
}

func violated(format string, args ...any) diagnostics.Result {
	return diagnostics.Result{Status: diagnostics.StatusViolated, Message: fmt.Sprintf(format, args...)}
}
