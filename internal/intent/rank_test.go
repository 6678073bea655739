package intent

import (
	"testing"

	"github.com/featdup/featdup/pkg/models"
)

func TestClassify(t *testing.T) {
	r := NewRanker()

	tests := []struct {
		name string
		pair models.ScorePair
		want bool
	}{
		{"both clear", models.ScorePair{Intent: 0.8, Lexical: 0.4}, true},
		{"exactly at thresholds", models.ScorePair{Intent: 0.7, Lexical: 0.3}, true},
		{"intent short", models.ScorePair{Intent: 0.69, Lexical: 0.9}, false},
		{"lexical short", models.ScorePair{Intent: 1.0, Lexical: 0.29}, false},
		{"both short", models.ScorePair{Intent: 0, Lexical: 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Classify(tt.pair); got != tt.want {
				t.Errorf("Classify(%+v) = %v, want %v", tt.pair, got, tt.want)
			}
		})
	}
}

func TestRankOrdering(t *testing.T) {
	r := NewRanker()

	scored := []models.ScoredRecord{
		{Record: models.Record{ID: 1}, Scores: models.ScorePair{Intent: 0.9, Lexical: 0.1}},
		{Record: models.Record{ID: 2}, Scores: models.ScorePair{Intent: 0.8, Lexical: 0.5}, IsDuplicate: true},
		{Record: models.Record{ID: 3}, Scores: models.ScorePair{Intent: 0.2, Lexical: 0.9}},
	}

	ranked, hasDup := r.Rank(scored)
	if !hasDup {
		t.Error("expected hasDuplicate")
	}
	wantOrder := []int64{2, 1, 3}
	for i, want := range wantOrder {
		if ranked[i].Record.ID != want {
			t.Errorf("position %d: expected record %d, got %d", i, want, ranked[i].Record.ID)
		}
	}
}

func TestRankToleranceTieBreak(t *testing.T) {
	r := NewRanker()

	// Intent scores 0.005 apart count as tied; the lexical signal
	// decides.
	scored := []models.ScoredRecord{
		{Record: models.Record{ID: 1}, Scores: models.ScorePair{Intent: 0.710, Lexical: 0.2}},
		{Record: models.Record{ID: 2}, Scores: models.ScorePair{Intent: 0.705, Lexical: 0.9}},
	}
	ranked, _ := r.Rank(scored)
	if ranked[0].Record.ID != 2 {
		t.Errorf("expected lexical tie-break to put record 2 first, got %d", ranked[0].Record.ID)
	}

	// Beyond the tolerance the intent signal wins outright.
	scored = []models.ScoredRecord{
		{Record: models.Record{ID: 1}, Scores: models.ScorePair{Intent: 0.75, Lexical: 0.2}},
		{Record: models.Record{ID: 2}, Scores: models.ScorePair{Intent: 0.70, Lexical: 0.9}},
	}
	ranked, _ = r.Rank(scored)
	if ranked[0].Record.ID != 1 {
		t.Errorf("expected intent to win outside tolerance, got record %d first", ranked[0].Record.ID)
	}
}

func TestRankTruncates(t *testing.T) {
	r := NewRanker()

	scored := make([]models.ScoredRecord, 8)
	for i := range scored {
		scored[i] = models.ScoredRecord{
			Record: models.Record{ID: int64(i + 1)},
			Scores: models.ScorePair{Intent: float64(8-i) / 10, Lexical: 0.1},
		}
	}
	ranked, hasDup := r.Rank(scored)
	if len(ranked) != DefaultTopK {
		t.Errorf("expected %d results, got %d", DefaultTopK, len(ranked))
	}
	if hasDup {
		t.Error("no record was classified duplicate")
	}
}
