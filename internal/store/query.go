// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/meshintel/paperscreen/pkg/types"
)

// QueryOptions holds parameters for store queries.
type QueryOptions struct {
	// Query is the FTS5 full-text search string, matched against title,
	// companies, and authors.
	Query string

	// Company filters rows whose company list contains the substring.
	Company string

	// PMID filters by a single PubMed identifier.
	PMID string

	// Since keeps rows with a publication date on or after the given
	// YYYY-MM-DD value.
	Since string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Company == "" && q.PMID == "" && q.Since == ""
}

// StoredPaper is a result row with store bookkeeping.
type StoredPaper struct {
	types.Summary
	RunID     string    `json:"run_id" yaml:"run_id"`
	FirstSeen time.Time `json:"first_seen" yaml:"first_seen"`
}

// Papers queries the stored result rows with optional full-text search
// and structured filters. Full-text queries are ranked by relevance;
// structured-only queries are sorted by publication date, newest first,
// then PMID.
func (s *Store) Papers(ctx context.Context, opts QueryOptions) ([]StoredPaper, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT p.pmid, p.title, p.pub_date, p.authors, p.companies,
				p.email, p.run_id, p.first_seen
			FROM papers_fts
			JOIN papers p ON p.rowid = papers_fts.rowid
			WHERE papers_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT p.pmid, p.title, p.pub_date, p.authors, p.companies,
				p.email, p.run_id, p.first_seen
			FROM papers p
			WHERE 1=1`)
	}

	if opts.PMID != "" {
		qb.WriteString(` AND p.pmid = ?`)
		args = append(args, opts.PMID)
	}

	if opts.Company != "" {
		qb.WriteString(` AND EXISTS (SELECT 1 FROM json_each(p.companies) WHERE value LIKE ?)`)
		args = append(args, "%"+opts.Company+"%")
	}

	if opts.Since != "" {
		qb.WriteString(` AND p.pub_date >= ?`)
		args = append(args, opts.Since)
	}

	if useFTS {
		qb.WriteString(` ORDER BY papers_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY p.pub_date DESC, p.pmid`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying papers: %w", err)
	}
	defer rows.Close()

	var results []StoredPaper
	for rows.Next() {
		var (
			sp            StoredPaper
			authorsJSON   string
			companiesJSON string
			firstSeen     string
		)

		if err := rows.Scan(
			&sp.PMID, &sp.Title, &sp.PublicationDate,
			&authorsJSON, &companiesJSON, &sp.CorrespondingEmail,
			&sp.RunID, &firstSeen,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		json.Unmarshal([]byte(authorsJSON), &sp.NonAcademicAuthors)
		json.Unmarshal([]byte(companiesJSON), &sp.Companies)
		if t, err := time.Parse(time.RFC3339, firstSeen); err == nil {
			sp.FirstSeen = t
		}

		results = append(results, sp)
	}

	return results, rows.Err()
}

// Runs returns the recorded run history, newest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, query, max_results, fetched, matched, created_at
		 FROM runs ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run       Run
			createdAt string
		)
		if err := rows.Scan(
			&run.ID, &run.Query, &run.MaxResults,
			&run.Fetched, &run.Matched, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			run.CreatedAt = t
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}
