// Package trace records per-query scoring traces as JSONL for offline
// inspection of ranking behavior.
package trace

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/featdup/featdup/pkg/models"
)

// Trace captures one scoring pass.
type Trace struct {
	Timestamp    time.Time             `json:"timestamp"`
	Query        string                `json:"query"`
	QueryIntent  string                `json:"query_intent,omitempty"`
	Steps        []Step                `json:"steps"`
	Top          []models.ScoredRecord `json:"top,omitempty"`
	HasDuplicate bool                  `json:"has_duplicate"`
}

// Step is one phase of the pass (normalize, index, score, rank).
type Step struct {
	Name       string `json:"name"`
	Count      int    `json:"count"`
	DurationMs int64  `json:"duration_ms"`
}

// Recorder buffers the current trace and appends finished traces to a
// JSONL file.
type Recorder struct {
	mu       sync.Mutex
	current  *Trace
	filePath string
	enabled  bool
}

var instance *Recorder
var once sync.Once

// Get returns the process-wide recorder.
func Get() *Recorder {
	once.Do(func() {
		home, _ := os.UserHomeDir()
		instance = &Recorder{
			filePath: filepath.Join(home, ".featdup", "trace.jsonl"),
		}
	})
	return instance
}

// SetEnabled toggles recording. Disabled recorders ignore every call.
func (r *Recorder) SetEnabled(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled = enabled
}

// Start begins a trace for one query.
func (r *Recorder) Start(query string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.enabled {
		return
	}
	r.current = &Trace{
		Timestamp: time.Now(),
		Query:     query,
		Steps:     make([]Step, 0, 4),
	}
}

// AddStep records a phase of the current pass.
func (r *Recorder) AddStep(name string, count int, duration time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil {
		return
	}
	r.current.Steps = append(r.current.Steps, Step{
		Name:       name,
		Count:      count,
		DurationMs: duration.Milliseconds(),
	})
}

// End finalizes the trace with the rank result and appends it to the log
// file, one JSON object per line.
func (r *Recorder) End(result *models.RankResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil {
		return
	}

	if result != nil {
		r.current.QueryIntent = result.QueryIntent
		r.current.HasDuplicate = result.HasDuplicate
		limit := 5
		if len(result.Ranked) < limit {
			limit = len(result.Ranked)
		}
		r.current.Top = make([]models.ScoredRecord, limit)
		copy(r.current.Top, result.Ranked[:limit])
	}

	if err := os.MkdirAll(filepath.Dir(r.filePath), 0755); err == nil {
		f, err := os.OpenFile(r.filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			fmt.Printf("Warning: failed to write trace log: %v\n", err)
		} else {
			data, _ := json.Marshal(r.current)
			f.Write(data)
			f.WriteString("\n")
			f.Close()
		}
	}

	r.current = nil
}
