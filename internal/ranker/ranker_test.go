package ranker

import "testing"

func TestRankOrdersByRelevanceThenRating(t *testing.T) {
	candidates := []Candidate{
		{ID: 1, Relevance: 0.5, Rating: 3},
		{ID: 2, Relevance: 0.9, Rating: 1},
		{ID: 3, Relevance: 0.9, Rating: 5},
	}
	got := Rank(candidates, 5, DefaultEpsilon)
	want := []int{3, 2, 1}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("Rank() order = %v, want ids %v", got, want)
		}
	}
}

func TestRankTruncatesToMaxResult(t *testing.T) {
	var candidates []Candidate
	for i := 0; i < 20; i++ {
		candidates = append(candidates, Candidate{ID: i, Relevance: float64(i), Rating: 0})
	}
	got := Rank(candidates, 5, DefaultEpsilon)
	if len(got) != 5 {
		t.Fatalf("len(Rank()) = %d, want 5", len(got))
	}
	want := []int{19, 18, 17, 16, 15}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("Rank()[%d].ID = %d, want %d", i, got[i].ID, id)
		}
	}
}

func TestRankEpsilonTieBreaksOnRating(t *testing.T) {
	candidates := []Candidate{
		{ID: 1, Relevance: 1.0000001, Rating: 2},
		{ID: 2, Relevance: 1.0000002, Rating: 9},
	}
	got := Rank(candidates, 5, DefaultEpsilon)
	if got[0].ID != 2 {
		t.Errorf("Rank()[0].ID = %d, want 2 (higher rating wins within epsilon)", got[0].ID)
	}
}

func TestRankFinalTieBreakOnID(t *testing.T) {
	candidates := []Candidate{
		{ID: 5, Relevance: 1.0, Rating: 1},
		{ID: 2, Relevance: 1.0, Rating: 1},
	}
	got := Rank(candidates, 5, DefaultEpsilon)
	if got[0].ID != 2 {
		t.Errorf("Rank()[0].ID = %d, want 2 (smaller id wins on a full tie)", got[0].ID)
	}
}

func TestRankZeroMaxResult(t *testing.T) {
	got := Rank([]Candidate{{ID: 1, Relevance: 1}}, 0, DefaultEpsilon)
	if got != nil {
		t.Errorf("Rank(_, 0) = %v, want nil", got)
	}
}
