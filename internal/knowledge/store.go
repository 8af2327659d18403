// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package knowledge is the private trigger/response store consulted before
// any live retrieval. A sufficiently relevant stored record can answer a
// query without touching the network.
package knowledge

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/answer-engine/pkg/types"
)

// Store manages the knowledge SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the SQLite database at path and ensures the
// schema exists.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS records (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			trigger_words TEXT NOT NULL,
			trigger_type TEXT,
			response_text TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_trigger_type ON records(trigger_type)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Add inserts one record and returns it with the assigned ID. Trigger
// phrases are stored as a JSON array in a single column.
func (s *Store) Add(ctx context.Context, rec types.KnowledgeRecord) (types.KnowledgeRecord, error) {
	if len(rec.TriggerWords) == 0 {
		return rec, fmt.Errorf("record needs at least one trigger phrase")
	}
	triggers, err := json.Marshal(rec.TriggerWords)
	if err != nil {
		return rec, fmt.Errorf("encoding trigger phrases: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO records (trigger_words, trigger_type, response_text) VALUES (?, ?, ?)`,
		string(triggers), rec.TriggerType, rec.Response)
	if err != nil {
		return rec, fmt.Errorf("inserting record: %w", err)
	}
	rec.ID, err = res.LastInsertId()
	if err != nil {
		return rec, fmt.Errorf("reading inserted ID: %w", err)
	}
	return rec, nil
}

// List returns every stored record in insertion order.
func (s *Store) List(ctx context.Context) ([]types.KnowledgeRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, trigger_words, trigger_type, response_text FROM records ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var records []types.KnowledgeRecord
	for rows.Next() {
		var (
			rec      types.KnowledgeRecord
			triggers string
		)
		if err := rows.Scan(&rec.ID, &triggers, &rec.TriggerType, &rec.Response); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		if err := json.Unmarshal([]byte(triggers), &rec.TriggerWords); err != nil {
			return nil, fmt.Errorf("decoding trigger phrases for record %d: %w", rec.ID, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ImportYAML loads records from a YAML file and inserts them all. Existing
// records are kept; import only appends.
func (s *Store) ImportYAML(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading import file: %w", err)
	}

	var records []types.KnowledgeRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return 0, fmt.Errorf("parsing import file: %w", err)
	}

	for i, rec := range records {
		if _, err := s.Add(ctx, rec); err != nil {
			return i, fmt.Errorf("importing record %d: %w", i, err)
		}
	}
	return len(records), nil
}

// ExportYAML writes every stored record to a YAML file.
func (s *Store) ExportYAML(ctx context.Context, path string) error {
	records, err := s.List(ctx)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
