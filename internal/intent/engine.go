// Package intent implements the duplicate-feature engine: intent
// normalization, TF-IDF lexical scoring, and the two-signal duplicate
// classifier. The engine is a pure function library: it performs no I/O,
// keeps no state across calls beyond the read-only lexicon, and rebuilds
// the lexical model from the record snapshot on every call.
package intent

import (
	"errors"
	"strings"

	"github.com/featdup/featdup/internal/lexicon"
	"github.com/featdup/featdup/pkg/models"
)

// ErrEmptyQuery is returned when ScoreAndRank is called without a query.
// It is the engine's only failure mode; every other input is handled by
// definition.
var ErrEmptyQuery = errors.New("query text must not be empty")

// Engine bundles the normalizer, scorer, and ranker over one immutable
// lexicon.
type Engine struct {
	normalizer *Normalizer
	scorer     *Scorer
	ranker     *Ranker
}

// NewEngine creates an engine over the given rule tables.
func NewEngine(lex *lexicon.Lexicon) *Engine {
	normalizer := NewNormalizer(lex)
	return &Engine{
		normalizer: normalizer,
		scorer:     NewScorer(normalizer),
		ranker:     NewRanker(),
	}
}

// SetThresholds overrides the duplicate classification thresholds.
func (e *Engine) SetThresholds(intentThresh, lexicalThresh float64) {
	e.ranker.IntentThreshold = intentThresh
	e.ranker.LexicalThreshold = lexicalThresh
}

// SetTopK overrides how many ranked results are returned.
func (e *Engine) SetTopK(k int) {
	e.ranker.TopK = k
}

// NormalizeStructural is the labels-aware backfill variant.
func (e *Engine) NormalizeStructural(text string, labels []string) string {
	return e.normalizer.NormalizeStructural(text, labels)
}

// NormalizeQuery is the entity-aware query-time variant.
func (e *Engine) NormalizeQuery(text string) string {
	return e.normalizer.NormalizeQuery(text)
}

// ScoreAndRank scores the query against every record and returns the
// ranked, flagged top candidates. Records missing a cached intent get one
// computed with query-normalize semantics, the same variant for every
// record in the call, and the computed value is returned on the scored
// row for the caller to persist. The engine mutates nothing.
func (e *Engine) ScoreAndRank(queryText string, records []models.Record) (*models.RankResult, error) {
	if strings.TrimSpace(queryText) == "" {
		return nil, ErrEmptyQuery
	}

	queryIntent := e.normalizer.NormalizeQuery(queryText)

	// The query is document zero of the per-call snapshot.
	docs := make([][]string, 0, len(records)+1)
	docs = append(docs, Tokenize(queryText))
	for _, rec := range records {
		docs = append(docs, Tokenize(rec.RawText))
	}
	vectors := BuildModel(docs)
	queryVec := vectors[0]

	scored := make([]models.ScoredRecord, 0, len(records))
	for i, rec := range records {
		if rec.IntentText == "" {
			rec.IntentText = e.normalizer.NormalizeQuery(rec.RawText)
		}
		pair := e.scorer.Score(queryIntent, queryText, rec.IntentText, rec.RawText, queryVec, vectors[i+1])
		scored = append(scored, models.ScoredRecord{
			Record:      rec,
			Scores:      pair,
			IsDuplicate: e.ranker.Classify(pair),
		})
	}

	ranked, hasDuplicate := e.ranker.Rank(scored)
	return &models.RankResult{
		QueryIntent:     queryIntent,
		Ranked:          ranked,
		HasDuplicate:    hasDuplicate,
		TotalConsidered: len(records),
	}, nil
}
