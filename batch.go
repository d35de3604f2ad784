package tfidx

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// ProcessQueries runs engine.FindTop for each query concurrently, preserving
// input order in the returned slice. Identical query strings whose calls
// overlap in time are scored once — golang.org/x/sync/singleflight collapses
// duplicate in-flight calls and fans the shared result out to every slot
// that asked for it; a duplicate that starts after an earlier identical call
// has already returned is scored again. This is the in-process analogue of
// a query-result cache with no network round-trip.
func ProcessQueries(ctx context.Context, engine *SearchEngine, queries []string) ([][]Document, error) {
	out := make([][]Document, len(queries))

	var group singleflight.Group
	g, _ := errgroup.WithContext(ctx)
	for i, q := range queries {
		i, q := i, q
		g.Go(func() error {
			v, err, _ := group.Do(q, func() (interface{}, error) {
				return engine.FindTop(q)
			})
			if err != nil {
				return err
			}
			out[i] = v.([]Document)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// ProcessQueriesJoined is like ProcessQueries but flattens the per-query
// result lists into a single slice, in input order.
func ProcessQueriesJoined(ctx context.Context, engine *SearchEngine, queries []string) ([]Document, error) {
	results, err := ProcessQueries(ctx, engine, queries)
	if err != nil {
		return nil, err
	}
	var out []Document
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}
