package intent

import (
	"strings"

	"github.com/featdup/featdup/pkg/models"
)

// entityDampening is multiplied into the intent similarity when the query
// and the record target different known entities: same verbs against a
// different app is not a real duplicate.
const entityDampening = 0.3

// Scorer computes the two-signal similarity for a (query, record) pair.
type Scorer struct {
	normalizer *Normalizer
}

// NewScorer creates a scorer sharing the normalizer's entity tables.
func NewScorer(n *Normalizer) *Scorer {
	return &Scorer{normalizer: n}
}

// Score computes the intent and lexical similarity for one pair. Intent
// similarity is the Jaccard index over the case-folded token sets of the
// two skeletons (0 when either is empty), dampened when both raw texts
// resolve to different known entities. Lexical similarity is the cosine
// of the two TF-IDF vectors, which must come from the same model
// snapshot.
func (s *Scorer) Score(queryIntent, queryText, recordIntent, recordText string, queryVec, recordVec Vector) models.ScorePair {
	pair := models.ScorePair{
		Lexical: Cosine(queryVec, recordVec),
		Intent:  jaccard(tokenSet(queryIntent), tokenSet(recordIntent)),
	}

	if pair.Intent > 0 {
		queryEntity := s.normalizer.ExtractEntity(queryText)
		recordEntity := s.normalizer.ExtractEntity(recordText)
		if queryEntity != "" && recordEntity != "" && queryEntity != recordEntity {
			pair.Intent *= entityDampening
		}
	}
	return pair
}

func tokenSet(skeleton string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(strings.ToLower(skeleton)) {
		set[tok] = true
	}
	return set
}

func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	intersection := 0
	for tok := range a {
		if b[tok] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}
