// Package scorer computes TF-IDF relevance for the documents matching a
// parsed query's plus-terms, subject to a caller-supplied filter predicate,
// then removes every document hit by a minus-term.
package scorer

import (
	"context"
	"math"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/relevantsearch/tfidx/internal/accumulator"
	"github.com/relevantsearch/tfidx/internal/index"
	"github.com/relevantsearch/tfidx/internal/query"
	"github.com/relevantsearch/tfidx/internal/ranker"
	"github.com/relevantsearch/tfidx/pkg/metrics"
)

// Filter decides whether document id, with the given status and rating,
// should be considered a candidate at all. Applied before a plus-term's
// contribution is ever added, so a rejected document never accumulates
// relevance and therefore never appears among survivors.
type Filter func(id int, status index.Status, rating int) bool

// idf returns ln(N / df) for a term with document frequency df out of N
// indexed documents. Never called for a term absent from the index.
func idf(n, df int) float64 {
	return math.Log(float64(n) / float64(df))
}

// Score runs the sequential scoring path: a single map, single goroutine,
// no locking.
func Score(idx *index.InvertedIndex, q query.Query, filter Filter) []ranker.Candidate {
	rel := make(map[int]float64)
	n := idx.Count()

	for _, t := range q.Plus {
		posting := idx.Postings(t)
		if len(posting) == 0 {
			continue
		}
		weight := idf(n, len(posting))
		for d, tf := range posting {
			status, ok := idx.DocStatus(d)
			if !ok {
				continue
			}
			rating, _ := idx.Rating(d)
			if !filter(d, status, rating) {
				continue
			}
			rel[d] += tf * weight
		}
	}

	for _, t := range q.Minus {
		for d := range idx.Postings(t) {
			delete(rel, d)
		}
	}

	return toCandidates(idx, rel)
}

// ScoreParallel runs the parallel scoring path: one worker per distinct
// plus-term, all writing only into a ConcurrentAccumulator; minus-term
// deletion runs after every worker has joined. m may be nil, in which case
// shard occupancy is simply not reported.
//
// q.Plus is deduplicated before fanning out workers: query.ModeUnordered
// leaves duplicate plus-terms in place, and a worker per occurrence would
// add a repeated term's tf*idf contribution more than once, diverging from
// Score's single contribution per distinct term for the same query.
func ScoreParallel(ctx context.Context, idx *index.InvertedIndex, q query.Query, filter Filter, shardCount int, m *metrics.Metrics) ([]ranker.Candidate, error) {
	acc := accumulator.New(shardCount)
	n := idx.Count()

	g, _ := errgroup.WithContext(ctx)
	for _, t := range dedupe(q.Plus) {
		t := t
		g.Go(func() error {
			posting := idx.Postings(t)
			if len(posting) == 0 {
				return nil
			}
			weight := idf(n, len(posting))
			for d, tf := range posting {
				status, ok := idx.DocStatus(d)
				if !ok {
					continue
				}
				rating, _ := idx.Rating(d)
				if !filter(d, status, rating) {
					continue
				}
				acc.Add(d, tf*weight)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rel := acc.Drain()
	if m != nil {
		for shard, size := range acc.ShardSizes() {
			m.AccumulatorShardSize.WithLabelValues(strconv.Itoa(shard)).Set(float64(size))
		}
	}
	for _, t := range q.Minus {
		for d := range idx.Postings(t) {
			delete(rel, d)
		}
	}

	return toCandidates(idx, rel), nil
}

// dedupe returns terms with repeats removed, preserving first-occurrence
// order. Unlike query.Parse's ModeOrdered path, it does not sort — caller
// only needs one worker per distinct term, not a canonical ordering.
func dedupe(terms []string) []string {
	if len(terms) < 2 {
		return terms
	}
	seen := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func toCandidates(idx *index.InvertedIndex, rel map[int]float64) []ranker.Candidate {
	out := make([]ranker.Candidate, 0, len(rel))
	for d, r := range rel {
		rating, _ := idx.Rating(d)
		out = append(out, ranker.Candidate{ID: d, Relevance: r, Rating: rating})
	}
	return out
}
