// Package store persists catalog records in SQLite. The engine never
// touches it; the CLI fetches records here before scoring and writes
// derived intent text back here after backfill.
package store

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/featdup/featdup/pkg/models"
)

//go:embed schema.sql
var schemaSQL string

// Store wraps the SQLite connection holding the feature catalog.
type Store struct {
	conn *sql.DB
	path string
}

// Open opens (creating if needed) the catalog database at dbPath.
func Open(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create db directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with a single writer connection.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	s := &Store{conn: conn, path: dbPath}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	if _, err := s.conn.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// Conn exposes the underlying connection for advanced operations.
func (s *Store) Conn() *sql.DB {
	return s.conn
}

// Insert adds a record and returns its id. Up to three labels are stored;
// extras are ignored.
func (s *Store) Insert(rec models.Record) (int64, error) {
	labels := [3]string{}
	for i, l := range rec.Labels {
		if i >= len(labels) {
			break
		}
		labels[i] = l
	}
	var intentText any
	if rec.IntentText != "" {
		intentText = rec.IntentText
	}
	res, err := s.conn.Exec(`
		INSERT INTO records (label1, label2, label3, raw_text, intent_text)
		VALUES (?, ?, ?, ?, ?)
	`, labels[0], labels[1], labels[2], rec.RawText, intentText)
	if err != nil {
		return 0, fmt.Errorf("failed to insert record: %w", err)
	}
	return res.LastInsertId()
}

// List returns all records in insertion order.
func (s *Store) List() ([]models.Record, error) {
	rows, err := s.conn.Query(`
		SELECT id, label1, label2, label3, raw_text, COALESCE(intent_text, '')
		FROM records
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		var rec models.Record
		var l1, l2, l3 string
		if err := rows.Scan(&rec.ID, &l1, &l2, &l3, &rec.RawText, &rec.IntentText); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		for _, l := range []string{l1, l2, l3} {
			if l != "" {
				rec.Labels = append(rec.Labels, l)
			}
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ListMissingIntent returns records whose derived intent has not been
// computed yet.
func (s *Store) ListMissingIntent() ([]models.Record, error) {
	records, err := s.List()
	if err != nil {
		return nil, err
	}
	missing := records[:0]
	for _, rec := range records {
		if rec.IntentText == "" {
			missing = append(missing, rec)
		}
	}
	return missing, nil
}

// UpdateIntent persists a computed intent skeleton for a record.
func (s *Store) UpdateIntent(id int64, intentText string) error {
	_, err := s.conn.Exec(`
		UPDATE records SET intent_text = ?, updated_at = strftime('%s', 'now')
		WHERE id = ?
	`, intentText, id)
	if err != nil {
		return fmt.Errorf("failed to update intent for record %d: %w", id, err)
	}
	return nil
}

// Count returns the number of records in the catalog.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.conn.QueryRow("SELECT COUNT(*) FROM records").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return n, nil
}

// GetSetting retrieves a setting value, empty when unset.
func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.conn.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return value, nil
}

// SetSetting updates or inserts a setting.
func (s *Store) SetSetting(key, value string) error {
	_, err := s.conn.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = ?, updated_at = strftime('%s', 'now')
	`, key, value, value)
	if err != nil {
		return fmt.Errorf("failed to set setting %s: %w", key, err)
	}
	return nil
}
