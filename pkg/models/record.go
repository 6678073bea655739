package models

// Record is one materialized catalog entry. RawText is the authoritative
// searchable text; IntentText is a cached derivation of it and is never
// authored by hand. An empty IntentText means "not yet computed".
type Record struct {
	ID         int64    `yaml:"id" json:"id"`
	Labels     []string `yaml:"labels" json:"labels"` // 0..3 hierarchy labels, broadest first
	RawText    string   `yaml:"raw_text" json:"raw_text"`
	IntentText string   `yaml:"intent_text,omitempty" json:"intent_text,omitempty"`
}

// ScorePair holds the two similarity signals for one (query, record) pair.
// Both values are in [0, 1].
type ScorePair struct {
	Intent  float64 `json:"intent"`
	Lexical float64 `json:"lexical"`
}

// ScoredRecord is a record annotated with its scores and verdict for one
// query. IntentText on the embedded Record is filled in when the engine
// had to compute it; persisting that value is the caller's job.
type ScoredRecord struct {
	Record      Record    `json:"record"`
	Scores      ScorePair `json:"scores"`
	IsDuplicate bool      `json:"is_duplicate"`
}

// RankResult is the outcome of scoring one query against a record set.
type RankResult struct {
	QueryIntent     string         `json:"query_intent"`
	Ranked          []ScoredRecord `json:"ranked"`
	HasDuplicate    bool           `json:"has_duplicate"`
	TotalConsidered int            `json:"total_considered"`
}
