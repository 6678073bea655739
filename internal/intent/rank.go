package intent

import (
	"math"
	"sort"

	"github.com/featdup/featdup/pkg/models"
)

// Default classification thresholds and result cap. Callers needing a
// different sensitivity set the Ranker fields explicitly; these values
// are the compatibility defaults.
const (
	DefaultIntentThreshold  = 0.7
	DefaultLexicalThreshold = 0.3
	DefaultTopK             = 5

	// Intent scores within this distance count as tied and fall through
	// to the lexical signal.
	scoreTolerance = 0.01
)

// Ranker classifies score pairs and orders scored records.
type Ranker struct {
	IntentThreshold  float64
	LexicalThreshold float64
	TopK             int
}

// NewRanker creates a ranker with the default thresholds.
func NewRanker() *Ranker {
	return &Ranker{
		IntentThreshold:  DefaultIntentThreshold,
		LexicalThreshold: DefaultLexicalThreshold,
		TopK:             DefaultTopK,
	}
}

// Classify reports whether a score pair marks a duplicate: both signals
// must clear their threshold.
func (r *Ranker) Classify(pair models.ScorePair) bool {
	return pair.Intent >= r.IntentThreshold && pair.Lexical >= r.LexicalThreshold
}

// Rank sorts scored records and truncates to the top K. Duplicates come
// first, then intent similarity descending, with near-ties broken by
// lexical similarity. The aggregate duplicate flag is computed over the
// full set before truncation.
func (r *Ranker) Rank(scored []models.ScoredRecord) ([]models.ScoredRecord, bool) {
	hasDuplicate := false
	for _, s := range scored {
		if s.IsDuplicate {
			hasDuplicate = true
			break
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		if a.IsDuplicate != b.IsDuplicate {
			return a.IsDuplicate
		}
		if math.Abs(a.Scores.Intent-b.Scores.Intent) > scoreTolerance {
			return a.Scores.Intent > b.Scores.Intent
		}
		return a.Scores.Lexical > b.Scores.Lexical
	})

	if r.TopK > 0 && len(scored) > r.TopK {
		scored = scored[:r.TopK]
	}
	return scored, hasDuplicate
}
