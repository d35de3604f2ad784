// Package index implements the InvertedIndex: the bidirectional term↔document
// frequency tables that are the authoritative indexed state of the search
// engine. Every public method is safe to call only under the caller's own
// single-writer-or-many-readers discipline, matching the façade's documented
// "caller serializes mutations" contract — except EraseFromTerm, which the
// façade's RemoveDocumentParallel fans out across goroutines for a single
// removal, and which is internally synchronized for that reason.
package index

import (
	"sort"
	"sync"

	"github.com/relevantsearch/tfidx/internal/stopwords"
	"github.com/relevantsearch/tfidx/internal/tokenizer"
	tfidxerrors "github.com/relevantsearch/tfidx/pkg/errors"
)

var emptyFrequencies = map[string]float64{}

// InvertedIndex holds by_term, by_doc, docs, and ids exactly as described by
// the data model: by_term maps a term to the documents that contain it and
// their term frequency; by_doc is the same data indexed the other way,
// keyed by document id first.
//
// Every public method still assumes the caller serializes mutations against
// reads, with one exception: the façade's RemoveDocumentParallel calls
// EraseFromTerm from one goroutine per term of the same document, so
// structural inserts/deletes on the top-level byTerm map go through termMu
// rather than relying on that single-writer discipline.
type InvertedIndex struct {
	byTerm map[string]map[int]float64
	byDoc  map[int]map[string]float64
	docs   map[int]*DocumentData
	ids    []int

	termMu sync.Mutex
}

// New returns an empty InvertedIndex.
func New() *InvertedIndex {
	return &InvertedIndex{
		byTerm: make(map[string]map[int]float64),
		byDoc:  make(map[int]map[string]float64),
		docs:   make(map[int]*DocumentData),
	}
}

// Add indexes a new document. It tokenizes text into a scratch map first and
// only mutates the index's own state once every validation has passed, so a
// failed Add leaves the index completely unchanged.
func (idx *InvertedIndex) Add(id int, text string, status Status, ratings []int, stop *stopwords.Set) error {
	if id < 0 {
		return tfidxerrors.Newf(tfidxerrors.ErrInvalidID, "%d", id)
	}
	if _, exists := idx.docs[id]; exists {
		return tfidxerrors.Newf(tfidxerrors.ErrDuplicateID, "%d", id)
	}
	if err := tokenizer.ValidateText(text); err != nil {
		return err
	}

	terms := make([]string, 0)
	for _, tok := range tokenizer.Split(text) {
		if stop.Contains(tok) {
			continue
		}
		terms = append(terms, tok)
	}

	freq := make(map[string]float64, len(terms))
	if n := len(terms); n > 0 {
		inv := 1.0 / float64(n)
		for _, t := range terms {
			freq[t] += inv
		}
	}

	idx.docs[id] = &DocumentData{
		Rating: averageRating(ratings),
		Status: status,
		Text:   text,
	}
	idx.byDoc[id] = freq
	for t, tf := range freq {
		idx.termMu.Lock()
		posting, ok := idx.byTerm[t]
		if !ok {
			posting = make(map[int]float64)
			idx.byTerm[t] = posting
		}
		idx.termMu.Unlock()
		posting[id] = tf
	}
	idx.insertID(id)
	return nil
}

// Remove deletes id from the index. Removing an absent id is a no-op.
func (idx *InvertedIndex) Remove(id int) {
	freq, ok := idx.byDoc[id]
	if !ok {
		return
	}
	for t := range freq {
		idx.removeFromPosting(t, id)
	}
	delete(idx.byDoc, id)
	delete(idx.docs, id)
	idx.removeID(id)
}

// TermsOf returns the terms indexed for id, for callers that parallelize
// per-term work (see the façade's RemoveDocumentParallel) before calling
// FinishRemove.
func (idx *InvertedIndex) TermsOf(id int) []string {
	freq, ok := idx.byDoc[id]
	if !ok {
		return nil
	}
	terms := make([]string, 0, len(freq))
	for t := range freq {
		terms = append(terms, t)
	}
	return terms
}

// EraseFromTerm removes id from term's posting list, dropping the term
// entirely once its posting list is empty. Safe to call concurrently with
// other EraseFromTerm calls for distinct terms of the same document removal
// (each touches a different posting map, but dropping an emptied term still
// mutates the shared top-level byTerm map, which termMu serializes).
func (idx *InvertedIndex) EraseFromTerm(term string, id int) {
	idx.removeFromPosting(term, id)
}

// FinishRemove drops id's own bookkeeping (byDoc, docs, ids) once every term
// in TermsOf(id) has been erased via EraseFromTerm.
func (idx *InvertedIndex) FinishRemove(id int) {
	delete(idx.byDoc, id)
	delete(idx.docs, id)
	idx.removeID(id)
}

func (idx *InvertedIndex) removeFromPosting(term string, id int) {
	idx.termMu.Lock()
	posting, ok := idx.byTerm[term]
	idx.termMu.Unlock()
	if !ok {
		return
	}

	delete(posting, id)

	if len(posting) == 0 {
		idx.termMu.Lock()
		delete(idx.byTerm, term)
		idx.termMu.Unlock()
	}
}

// WordFrequencies returns the per-term frequency table for id, or a shared
// empty map if id is absent. Never fails.
func (idx *InvertedIndex) WordFrequencies(id int) map[string]float64 {
	if freq, ok := idx.byDoc[id]; ok {
		return freq
	}
	return emptyFrequencies
}

// Count returns the number of documents currently indexed.
func (idx *InvertedIndex) Count() int {
	return len(idx.docs)
}

// IterIDs returns document ids in ascending order.
func (idx *InvertedIndex) IterIDs() []int {
	out := make([]int, len(idx.ids))
	copy(out, idx.ids)
	return out
}

// Has reports whether id is currently indexed.
func (idx *InvertedIndex) Has(id int) bool {
	_, ok := idx.docs[id]
	return ok
}

// Rating returns the stored average rating for id.
func (idx *InvertedIndex) Rating(id int) (int, bool) {
	d, ok := idx.docs[id]
	if !ok {
		return 0, false
	}
	return d.Rating, true
}

// DocStatus returns the stored status for id.
func (idx *InvertedIndex) DocStatus(id int) (Status, bool) {
	d, ok := idx.docs[id]
	if !ok {
		return 0, false
	}
	return d.Status, true
}

// Postings returns the posting list for term: a map from document id to
// term frequency. Absent terms and terms with an empty posting list are
// indistinguishable — both yield a nil map of length zero — matching
// invariant 4 of the data model.
func (idx *InvertedIndex) Postings(term string) map[int]float64 {
	if p, ok := idx.byTerm[term]; ok {
		return p
	}
	return nil
}

// DocumentFrequency returns the number of documents containing term.
func (idx *InvertedIndex) DocumentFrequency(term string) int {
	return len(idx.byTerm[term])
}

// Terms returns every term currently keyed in by_term, whatever the size of
// its posting list. Used by diagnostics to walk the term universe when
// auditing invariants.
func (idx *InvertedIndex) Terms() []string {
	out := make([]string, 0, len(idx.byTerm))
	for t := range idx.byTerm {
		out = append(out, t)
	}
	return out
}

func (idx *InvertedIndex) insertID(id int) {
	i := sort.SearchInts(idx.ids, id)
	idx.ids = append(idx.ids, 0)
	copy(idx.ids[i+1:], idx.ids[i:])
	idx.ids[i] = id
}

func (idx *InvertedIndex) removeID(id int) {
	i := sort.SearchInts(idx.ids, id)
	if i < len(idx.ids) && idx.ids[i] == id {
		idx.ids = append(idx.ids[:i], idx.ids[i+1:]...)
	}
}

func averageRating(ratings []int) int {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return sum / len(ratings)
}
