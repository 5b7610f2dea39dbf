// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists pipeline run records in a SQLite database.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/paperdrop/pkg/types"
)

const dbFile = "paperdrop.db"

// Store manages the run history SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the history database at HistoryDir/paperdrop.db,
// creating the schema if it does not exist.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.HistoryDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(cfg.HistoryDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
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
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			drive_url TEXT NOT NULL,
			file_id TEXT,
			page_id TEXT,
			blocks INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL,
			error TEXT,
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_file_id ON runs(file_id)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts one run record and returns its row ID.
func (s *Store) Record(rec types.RunRecord) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO runs (drive_url, file_id, page_id, blocks, status, error, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.DriveURL, rec.FileID, rec.PageID, rec.Blocks, string(rec.Status), rec.Error,
		rec.StartedAt.UTC().Format(time.RFC3339), rec.FinishedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading insert ID: %w", err)
	}
	return id, nil
}

// Recent returns the most recent runs, newest first. A non-positive limit
// uses the store default.
func (s *Store) Recent(limit int) ([]types.RunRecord, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.Query(
		`SELECT id, drive_url, file_id, page_id, blocks, status, error, started_at, finished_at
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var records []types.RunRecord
	for rows.Next() {
		var rec types.RunRecord
		var status, started, finished string
		if err := rows.Scan(&rec.ID, &rec.DriveURL, &rec.FileID, &rec.PageID,
			&rec.Blocks, &status, &rec.Error, &started, &finished); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		rec.Status = types.RunStatus(status)
		if t, err := time.Parse(time.RFC3339, started); err == nil {
			rec.StartedAt = t
		}
		if t, err := time.Parse(time.RFC3339, finished); err == nil {
			rec.FinishedAt = t
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
