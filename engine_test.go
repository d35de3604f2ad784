package tfidx

import (
	"context"
	"math"
	"testing"

	tfidxerrors "github.com/relevantsearch/tfidx/pkg/errors"
)

func TestAddDocumentAndFindTop(t *testing.T) {
	e := NewSearchEngine(nil)
	if err := e.AddDocument(1, "the quick brown fox", StatusActual, []int{5}); err != nil {
		t.Fatalf("AddDocument() error = %v", err)
	}
	results, err := e.FindTop("quick")
	if err != nil {
		t.Fatalf("FindTop() error = %v", err)
	}
	if len(results) != 1 || results[0].ID != 1 {
		t.Fatalf("FindTop() = %v, want [{ID:1}]", results)
	}
}

func TestStopWordExclusion(t *testing.T) {
	stop, err := NewStopWordSet("the a an")
	if err != nil {
		t.Fatalf("NewStopWordSet() error = %v", err)
	}
	e := NewSearchEngine(stop)
	e.AddDocument(1, "the cat sat", StatusActual, nil)

	results, err := e.FindTop("the")
	if err != nil {
		t.Fatalf("FindTop() error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("FindTop(stop-word only) = %v, want empty", results)
	}
}

func TestStatusFilter(t *testing.T) {
	e := NewSearchEngine(nil)
	e.AddDocument(1, "widget", StatusActual, nil)
	e.AddDocument(2, "widget", StatusBanned, nil)

	results, err := e.FindTopStatus("widget", StatusBanned)
	if err != nil {
		t.Fatalf("FindTopStatus() error = %v", err)
	}
	if len(results) != 1 || results[0].ID != 2 {
		t.Fatalf("FindTopStatus(BANNED) = %v, want [{ID:2}]", results)
	}
}

func TestPredicateFilter(t *testing.T) {
	e := NewSearchEngine(nil)
	e.AddDocument(1, "widget", StatusActual, []int{2})
	e.AddDocument(2, "widget", StatusActual, []int{9})

	results, err := e.FindTopFunc("widget", func(_ int, _ Status, rating int) bool {
		return rating >= 5
	})
	if err != nil {
		t.Fatalf("FindTopFunc() error = %v", err)
	}
	if len(results) != 1 || results[0].ID != 2 {
		t.Fatalf("FindTopFunc(rating>=5) = %v, want [{ID:2}]", results)
	}
}

func TestRelevanceValueScenario(t *testing.T) {
	e := NewSearchEngine(nil)
	e.AddDocument(1, "cat dog", StatusActual, nil)
	e.AddDocument(2, "cat bird", StatusActual, nil)
	e.AddDocument(3, "cat dog bird", StatusActual, nil)

	results, err := e.FindTop("dog")
	if err != nil {
		t.Fatalf("FindTop() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("FindTop(dog) returned %d results, want 2", len(results))
	}

	idf := math.Log(3.0 / 2.0)
	want := map[int]float64{1: 0.5 * idf, 3: (1.0 / 3.0) * idf}
	for _, d := range results {
		if math.Abs(d.Relevance-want[d.ID]) > 1e-9 {
			t.Errorf("document %d relevance = %v, want %v", d.ID, d.Relevance, want[d.ID])
		}
	}
}

func TestRatingAverageBoundary(t *testing.T) {
	e := NewSearchEngine(nil)
	if err := e.AddDocument(1, "x", StatusActual, nil); err != nil {
		t.Fatalf("AddDocument() error = %v", err)
	}
	freq := e.WordFrequencies(1)
	if len(freq) != 1 {
		t.Fatalf("WordFrequencies() = %v, want one term", freq)
	}

	e.AddDocument(2, "y", StatusActual, []int{-40, -40, 39})
	results, err := e.FindTop("y")
	if err != nil {
		t.Fatalf("FindTop() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("FindTop(y) = %v, want one result", results)
	}
	if want := -41 / 3; results[0].Rating != want {
		t.Errorf("Rating = %d, want %d (truncated toward zero)", results[0].Rating, want)
	}
}

func TestQueryErrors(t *testing.T) {
	e := NewSearchEngine(nil)
	e.AddDocument(1, "cat", StatusActual, nil)

	tests := []struct {
		name  string
		query string
		want  tfidxerrors.ErrorKind
	}{
		{"empty minus word", "cat -", tfidxerrors.KindEmptyMinusWord},
		{"double minus", "cat --dog", tfidxerrors.KindDoubleMinus},
		{"invalid character", "cat\ndog", tfidxerrors.KindInvalidCharacter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.FindTop(tt.query)
			if err == nil {
				t.Fatalf("FindTop(%q) error = nil, want error", tt.query)
			}
			if got := tfidxerrors.Kind(err); got != tt.want {
				t.Errorf("Kind(err) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAddDocumentRejectsNegativeID(t *testing.T) {
	e := NewSearchEngine(nil)
	err := e.AddDocument(-1, "x", StatusActual, nil)
	if tfidxerrors.Kind(err) != tfidxerrors.KindInvalidID {
		t.Errorf("Kind(err) = %v, want KindInvalidID", tfidxerrors.Kind(err))
	}
}

func TestAddDocumentRejectsDuplicateID(t *testing.T) {
	e := NewSearchEngine(nil)
	e.AddDocument(1, "x", StatusActual, nil)
	err := e.AddDocument(1, "y", StatusActual, nil)
	if tfidxerrors.Kind(err) != tfidxerrors.KindDuplicateID {
		t.Errorf("Kind(err) = %v, want KindDuplicateID", tfidxerrors.Kind(err))
	}
}

func TestMatchDocumentUnknownID(t *testing.T) {
	e := NewSearchEngine(nil)
	_, _, err := e.MatchDocument("cat", 42)
	if tfidxerrors.Kind(err) != tfidxerrors.KindInvalidID {
		t.Errorf("Kind(err) = %v, want KindInvalidID", tfidxerrors.Kind(err))
	}
}

func TestMatchDocumentMinusTermExcludes(t *testing.T) {
	e := NewSearchEngine(nil)
	e.AddDocument(1, "cat dog", StatusActual, nil)

	matched, _, err := e.MatchDocument("cat -dog", 1)
	if err != nil {
		t.Fatalf("MatchDocument() error = %v", err)
	}
	if matched != nil {
		t.Errorf("MatchDocument() = %v, want nil (minus-term hit)", matched)
	}
}

func TestRemoveDocumentRestoresState(t *testing.T) {
	e := NewSearchEngine(nil)
	e.AddDocument(1, "cat dog", StatusActual, nil)
	before := e.DocumentCount()

	e.AddDocument(2, "cat bird", StatusActual, nil)
	e.RemoveDocument(2)

	if e.DocumentCount() != before {
		t.Errorf("DocumentCount() = %d after add+remove, want %d", e.DocumentCount(), before)
	}
	if e.idx.Has(2) {
		t.Errorf("index still has removed document 2")
	}
	if posting := e.idx.Postings("bird"); len(posting) != 0 {
		t.Errorf("Postings(bird) = %v, want empty after removing its only document", posting)
	}
}

func TestRemoveDocumentParallel(t *testing.T) {
	e := NewSearchEngine(nil)
	e.AddDocument(1, "alpha beta gamma", StatusActual, nil)

	if err := e.RemoveDocumentParallel(context.Background(), 1); err != nil {
		t.Fatalf("RemoveDocumentParallel() error = %v", err)
	}
	if e.DocumentCount() != 0 {
		t.Errorf("DocumentCount() = %d, want 0", e.DocumentCount())
	}
	for _, term := range []string{"alpha", "beta", "gamma"} {
		if posting := e.idx.Postings(term); len(posting) != 0 {
			t.Errorf("Postings(%q) = %v, want empty", term, posting)
		}
	}
}

func TestSequentialAndParallelFindTopAgree(t *testing.T) {
	e := NewSearchEngine(nil)
	e.AddDocument(1, "cat dog", StatusActual, []int{3})
	e.AddDocument(2, "cat bird", StatusActual, []int{7})
	e.AddDocument(3, "cat dog bird", StatusActual, []int{1})

	seq, err := e.FindTop("cat dog -bird")
	if err != nil {
		t.Fatalf("FindTop() error = %v", err)
	}
	par, err := e.FindTopParallel(context.Background(), "cat dog -bird")
	if err != nil {
		t.Fatalf("FindTopParallel() error = %v", err)
	}
	if len(seq) != len(par) {
		t.Fatalf("len(seq)=%d, len(par)=%d", len(seq), len(par))
	}
	for i := range seq {
		if seq[i].ID != par[i].ID {
			t.Errorf("result[%d]: seq.ID=%d, par.ID=%d", i, seq[i].ID, par[i].ID)
		}
	}
}

func TestSequentialAndParallelFindTopAgreeOnRepeatedTerm(t *testing.T) {
	e := NewSearchEngine(nil)
	e.AddDocument(1, "cat dog", StatusActual, []int{3})
	e.AddDocument(2, "cat bird", StatusActual, []int{7})

	seq, err := e.FindTop("cat cat")
	if err != nil {
		t.Fatalf("FindTop() error = %v", err)
	}
	par, err := e.FindTopParallel(context.Background(), "cat cat")
	if err != nil {
		t.Fatalf("FindTopParallel() error = %v", err)
	}
	if len(seq) != len(par) {
		t.Fatalf("len(seq)=%d, len(par)=%d", len(seq), len(par))
	}
	for i := range seq {
		if seq[i].ID != par[i].ID {
			t.Errorf("result[%d]: seq.ID=%d, par.ID=%d", i, seq[i].ID, par[i].ID)
		}
		if math.Abs(seq[i].Relevance-par[i].Relevance) > 1e-9 {
			t.Errorf("result[%d]: a repeated query word gave seq.Relevance=%v, par.Relevance=%v, want equal", i, seq[i].Relevance, par[i].Relevance)
		}
	}
}

func TestFindTopAtMostMaxResult(t *testing.T) {
	e := NewSearchEngine(nil)
	for i := 0; i < 20; i++ {
		e.AddDocument(i, "common", StatusActual, nil)
	}
	results, err := e.FindTop("common")
	if err != nil {
		t.Fatalf("FindTop() error = %v", err)
	}
	if len(results) > MaxResult {
		t.Errorf("len(FindTop()) = %d, want <= %d", len(results), MaxResult)
	}
}

func TestQueryWithOnlyMinusTermsIsEmpty(t *testing.T) {
	e := NewSearchEngine(nil)
	e.AddDocument(1, "cat dog", StatusActual, nil)

	results, err := e.FindTop("-cat")
	if err != nil {
		t.Fatalf("FindTop() error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("FindTop(minus-only) = %v, want empty", results)
	}
}
