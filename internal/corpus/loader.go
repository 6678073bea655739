// Package corpus loads catalog entries from YAML import files and
// materializes them as records.
package corpus

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/featdup/featdup/internal/store"
	"github.com/featdup/featdup/pkg/models"
)

// RecordSpec is one entry of an import file. Text is the primary query
// phrasing; Variants are alternative phrasings collected at authoring
// time. The record's raw text is the concatenation of labels, text, and
// variants. The intent field is never authored, only derived later.
type RecordSpec struct {
	Labels   []string `yaml:"labels"`
	Text     string   `yaml:"text"`
	Variants []string `yaml:"variants,omitempty"`
}

// File is the import file shape.
type File struct {
	Records []RecordSpec `yaml:"records"`
}

// Loader imports YAML corpus files into a store.
type Loader struct {
	st *store.Store
}

// NewLoader creates a loader writing into st.
func NewLoader(st *store.Store) *Loader {
	return &Loader{st: st}
}

// LoadFile reads and materializes an import file without persisting it.
func LoadFile(path string) ([]models.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus file: %w", err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse corpus YAML: %w", err)
	}

	records := make([]models.Record, 0, len(file.Records))
	for i, spec := range file.Records {
		if strings.TrimSpace(spec.Text) == "" && len(spec.Labels) == 0 {
			return nil, fmt.Errorf("corpus entry %d has neither labels nor text", i)
		}
		if len(spec.Labels) > 3 {
			return nil, fmt.Errorf("corpus entry %d has %d labels, at most 3 allowed", i, len(spec.Labels))
		}
		records = append(records, models.Record{
			Labels:  spec.Labels,
			RawText: rawText(spec),
		})
	}
	return records, nil
}

// Import loads an import file and persists every record, returning how
// many were inserted.
func (l *Loader) Import(path string) (int, error) {
	records, err := LoadFile(path)
	if err != nil {
		return 0, err
	}
	for i, rec := range records {
		if _, err := l.st.Insert(rec); err != nil {
			return i, fmt.Errorf("failed to import record %d: %w", i, err)
		}
	}
	return len(records), nil
}

// rawText joins labels, the primary text, and variants into the
// authoritative searchable text.
func rawText(spec RecordSpec) string {
	parts := make([]string, 0, len(spec.Labels)+1+len(spec.Variants))
	for _, l := range spec.Labels {
		if l = strings.TrimSpace(l); l != "" {
			parts = append(parts, l)
		}
	}
	if t := strings.TrimSpace(spec.Text); t != "" {
		parts = append(parts, t)
	}
	for _, v := range spec.Variants {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}
