// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package medline

import (
	"strings"
	"testing"
)

const sampleText = `PMID- 36464825
TI  - Example title that spans
      two lines.
DP  - 2023 Apr 15
AU  - Tanaka K
AD  - Acme Therapeutics, 100 Binney St,
      Cambridge. ktanaka@acmetx.com
AU  - Smith J
AD  - Example University, Boston.
PT  - Journal Article
PT  - Review

PMID- 36464826
TI  - Second record
DP  - 2023
`

func TestParse(t *testing.T) {
	records, err := Parse(strings.NewReader(sampleText))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}

	first := records[0]
	if first.PMID != "36464825" {
		t.Errorf("PMID = %q, want %q", first.PMID, "36464825")
	}
	if want := "Example title that spans two lines."; first.Title != want {
		t.Errorf("Title = %q, want %q", first.Title, want)
	}
	if first.PubDate != "2023 Apr 15" {
		t.Errorf("PubDate = %q, want %q", first.PubDate, "2023 Apr 15")
	}
	wantAuthors := []string{"Tanaka K", "Smith J"}
	if len(first.Authors) != len(wantAuthors) {
		t.Fatalf("Authors = %v, want %v", first.Authors, wantAuthors)
	}
	for i, want := range wantAuthors {
		if first.Authors[i] != want {
			t.Errorf("Authors[%d] = %q, want %q", i, first.Authors[i], want)
		}
	}
	wantAffiliations := []string{
		"Acme Therapeutics, 100 Binney St, Cambridge. ktanaka@acmetx.com",
		"Example University, Boston.",
	}
	if len(first.Affiliations) != len(wantAffiliations) {
		t.Fatalf("Affiliations = %v, want %v", first.Affiliations, wantAffiliations)
	}
	for i, want := range wantAffiliations {
		if first.Affiliations[i] != want {
			t.Errorf("Affiliations[%d] = %q, want %q", i, first.Affiliations[i], want)
		}
	}
	if pt, ok := first.Field("PT"); !ok || len(pt) != 2 {
		t.Errorf("Field(PT) = %v, %v; want two entries", pt, ok)
	}

	second := records[1]
	if second.PMID != "36464826" {
		t.Errorf("PMID = %q, want %q", second.PMID, "36464826")
	}
	if second.Title != "Second record" {
		t.Errorf("Title = %q, want %q", second.Title, "Second record")
	}
	if len(second.Authors) != 0 {
		t.Errorf("Authors = %v, want none", second.Authors)
	}
}

func TestParseEmpty(t *testing.T) {
	records, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("len(records) = %d, want 0", len(records))
	}
}

func TestParseBlankRuns(t *testing.T) {
	input := "\n\nPMID- 1\n\n\n\nPMID- 2\n\n"
	records, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if records[0].PMID != "1" || records[1].PMID != "2" {
		t.Errorf("PMIDs = %q, %q; want 1, 2", records[0].PMID, records[1].PMID)
	}
}

func TestParseMalformedLines(t *testing.T) {
	input := strings.Join([]string{
		"      orphan continuation",
		"PMID- 7",
		"garbage",
		"TI  - Still parsed",
		"",
	}, "\n")

	records, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	if records[0].PMID != "7" {
		t.Errorf("PMID = %q, want %q", records[0].PMID, "7")
	}
	if records[0].Title != "Still parsed" {
		t.Errorf("Title = %q, want %q", records[0].Title, "Still parsed")
	}
}

func TestParseCRLF(t *testing.T) {
	input := "PMID- 9\r\nTI  - Windows line endings\r\n"
	records, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	if records[0].Title != "Windows line endings" {
		t.Errorf("Title = %q, want %q", records[0].Title, "Windows line endings")
	}
}
