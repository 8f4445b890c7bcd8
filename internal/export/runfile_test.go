// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/meshintel/paperscreen/pkg/types"
)

func TestRunFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs", "run.yaml")

	saved := RunFile{
		Query:     "cancer immunotherapy",
		CreatedAt: time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC),
		Fetched:   40,
		Results: []types.Summary{
			{
				PMID:               "101",
				Title:              "Paper",
				PublicationDate:    "2023-04-15",
				NonAcademicAuthors: []string{"Tanaka K"},
				Companies:          []string{"Acme Therapeutics"},
				CorrespondingEmail: "ktanaka@acmetx.com",
			},
		},
	}

	if err := SaveRunFile(saved, path); err != nil {
		t.Fatalf("SaveRunFile: %v", err)
	}

	loaded, err := LoadRunFile(path)
	if err != nil {
		t.Fatalf("LoadRunFile: %v", err)
	}

	if loaded.Query != saved.Query {
		t.Errorf("Query = %q, want %q", loaded.Query, saved.Query)
	}
	if !loaded.CreatedAt.Equal(saved.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", loaded.CreatedAt, saved.CreatedAt)
	}
	if loaded.Fetched != saved.Fetched {
		t.Errorf("Fetched = %d, want %d", loaded.Fetched, saved.Fetched)
	}
	if len(loaded.Results) != 1 {
		t.Fatalf("len(Results) = %d, want 1", len(loaded.Results))
	}
	got := loaded.Results[0]
	if got.PMID != "101" || got.CorrespondingEmail != "ktanaka@acmetx.com" {
		t.Errorf("Results[0] = %+v", got)
	}
	if len(got.NonAcademicAuthors) != 1 || got.NonAcademicAuthors[0] != "Tanaka K" {
		t.Errorf("NonAcademicAuthors = %v", got.NonAcademicAuthors)
	}
}

func TestLoadRunFileMissing(t *testing.T) {
	if _, err := LoadRunFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
