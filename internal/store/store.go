// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists screening runs and their result rows in SQLite
// and answers queries over the accumulated papers.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	log "github.com/sirupsen/logrus"

	"github.com/meshintel/paperscreen/pkg/types"
)

const (
	appName = "paperscreen"
	dbFile  = "paperscreen.db"
)

// Store manages the results SQLite database.
type Store struct {
	db         *sql.DB
	path       string
	maxResults int
}

// Run is one recorded screening run.
type Run struct {
	// ID is the run identifier, assigned on save.
	ID string `json:"id" yaml:"id"`

	// Query is the PubMed search expression the run was created from.
	Query string `json:"query" yaml:"query"`

	// MaxResults is the search limit the run was fetched with.
	MaxResults int `json:"max_results" yaml:"max_results"`

	// Fetched is the number of records retrieved from PubMed.
	Fetched int `json:"fetched" yaml:"fetched"`

	// Matched is the number of rows that passed screening.
	Matched int `json:"matched" yaml:"matched"`

	// CreatedAt is when the run was saved.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// NewStore opens or creates the results database. An empty path selects
// a per-user data directory default.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	path := cfg.Path
	if path == "" {
		var err error
		path, err = xdg.DataFile(filepath.Join(appName, dbFile))
		if err != nil {
			return nil, fmt.Errorf("resolving data directory: %w", err)
		}
	} else if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{
		db:         db,
		path:       path,
		maxResults: maxResults,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			query TEXT NOT NULL,
			max_results INTEGER,
			fetched INTEGER,
			matched INTEGER,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS papers (
			pmid TEXT PRIMARY KEY,
			title TEXT,
			pub_date TEXT,
			authors TEXT,
			companies TEXT,
			email TEXT,
			run_id TEXT NOT NULL REFERENCES runs(id),
			first_seen TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_run_id ON papers(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_pub_date ON papers(pub_date)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='papers_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE papers_fts USING fts5(title, companies, authors, content=papers, content_rowid=rowid)`,
			`CREATE TRIGGER papers_ai AFTER INSERT ON papers BEGIN
				INSERT INTO papers_fts(rowid, title, companies, authors)
				VALUES (new.rowid, new.title, new.companies, new.authors);
			END`,
			`CREATE TRIGGER papers_ad AFTER DELETE ON papers BEGIN
				INSERT INTO papers_fts(papers_fts, rowid, title, companies, authors)
				VALUES('delete', old.rowid, old.title, old.companies, old.authors);
			END`,
			`CREATE TRIGGER papers_au AFTER UPDATE ON papers BEGIN
				INSERT INTO papers_fts(papers_fts, rowid, title, companies, authors)
				VALUES('delete', old.rowid, old.title, old.companies, old.authors);
				INSERT INTO papers_fts(rowid, title, companies, authors)
				VALUES (new.rowid, new.title, new.companies, new.authors);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// SaveRun records one screening run and upserts its result rows. Rows for
// a PMID seen in an earlier run are refreshed in place and keep their
// original first_seen timestamp. The returned Run carries the assigned ID,
// creation time, and matched count.
func (s *Store) SaveRun(ctx context.Context, run Run, rows []types.Summary) (Run, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	run.Matched = len(rows)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, query, max_results, fetched, matched, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Query, run.MaxResults, run.Fetched, run.Matched,
		run.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return Run{}, fmt.Errorf("inserting run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO papers (pmid, title, pub_date, authors, companies, email, run_id, first_seen, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(pmid) DO UPDATE SET
			title=excluded.title, pub_date=excluded.pub_date,
			authors=excluded.authors, companies=excluded.companies,
			email=excluded.email, run_id=excluded.run_id,
			updated_at=excluded.updated_at`)
	if err != nil {
		return Run{}, fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, row := range rows {
		if row.PMID == "" {
			log.Debug("skipping row without pmid")
			continue
		}
		authorsJSON, _ := json.Marshal(row.NonAcademicAuthors)
		companiesJSON, _ := json.Marshal(row.Companies)
		_, err := stmt.ExecContext(ctx,
			row.PMID, row.Title, row.PublicationDate,
			string(authorsJSON), string(companiesJSON),
			row.CorrespondingEmail, run.ID, now, now,
		)
		if err != nil {
			return Run{}, fmt.Errorf("upserting paper %s: %w", row.PMID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("committing run: %w", err)
	}
	return run, nil
}
