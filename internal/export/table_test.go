// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/meshintel/paperscreen/pkg/types"
)

func TestFormatTable(t *testing.T) {
	summaries := []types.Summary{
		{
			PMID:               "101",
			Title:              strings.Repeat("Very long title ", 5),
			PublicationDate:    "2023-04-15",
			NonAcademicAuthors: []string{"Tanaka K"},
			Companies:          []string{"Acme Therapeutics"},
		},
		{PMID: "102", Title: "Short", PublicationDate: "2022-01-01"},
	}

	var buf bytes.Buffer
	FormatTable(summaries, &buf)
	s := buf.String()

	if !strings.Contains(s, "101") || !strings.Contains(s, "102") {
		t.Error("table should contain both PMIDs")
	}
	if !strings.Contains(s, "...") {
		t.Error("long titles should be truncated with an ellipsis")
	}
	if !strings.Contains(s, "2 matching papers") {
		t.Error("table should end with the match count")
	}
}

func TestFormatTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(nil, &buf)
	if !strings.Contains(buf.String(), "No matching papers") {
		t.Errorf("empty output = %q", buf.String())
	}
}

func TestFormatJSON(t *testing.T) {
	summaries := []types.Summary{
		{PMID: "101", Title: "Paper", NonAcademicAuthors: []string{"Tanaka K"}},
	}

	var buf bytes.Buffer
	if err := FormatJSON(summaries, &buf); err != nil {
		t.Fatalf("FormatJSON: %v", err)
	}

	var parsed []types.Summary
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if len(parsed) != 1 || parsed[0].PMID != "101" {
		t.Errorf("parsed = %+v", parsed)
	}
}
