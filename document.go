// Package tfidx is an in-memory TF-IDF text search engine: an inverted
// index, minus-word/stop-word query parsing, ranked retrieval, and the
// sharded concurrent accumulator that lets relevance scoring run in
// parallel without lock contention. It is a library, not a network
// service — callers embed a *SearchEngine directly.
package tfidx

import "github.com/relevantsearch/tfidx/internal/index"

// Status classifies a document.
type Status = index.Status

const (
	StatusActual     = index.StatusActual
	StatusIrrelevant = index.StatusIrrelevant
	StatusBanned     = index.StatusBanned
	StatusRemoved    = index.StatusRemoved
)

// Document is a single ranked search result: the document's id, its
// computed relevance for the query that produced it, and its stored
// rating (used as the ranking tie-break).
type Document struct {
	ID        int
	Relevance float64
	Rating    int
}
