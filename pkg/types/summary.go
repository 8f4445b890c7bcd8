// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// listSeparator joins multi-value summary fields for display and CSV output.
const listSeparator = "; "

// Summary is the normalized output row produced for one publication whose
// author list includes at least one non-academic affiliation.
type Summary struct {
	// PMID is the PubMed identifier, empty if the record carried none.
	PMID string `json:"pubmed_id" yaml:"pubmed_id"`

	// Title is the article title, empty if the record carried none.
	Title string `json:"title" yaml:"title"`

	// PublicationDate is the normalized date (YYYY-MM-DD), empty when no
	// date field could be normalized.
	PublicationDate string `json:"publication_date" yaml:"publication_date"`

	// NonAcademicAuthors lists authors with a commercial affiliation, in
	// record order. An author appears once per qualifying affiliation line,
	// so duplicates are possible and preserved.
	NonAcademicAuthors []string `json:"non_academic_authors" yaml:"non_academic_authors"`

	// Companies lists the distinct extracted company names in first-seen order.
	Companies []string `json:"companies" yaml:"companies"`

	// CorrespondingEmail is the best-guess contact address found in the
	// affiliation strings, empty when none was found.
	CorrespondingEmail string `json:"corresponding_email,omitempty" yaml:"corresponding_email,omitempty"`
}

// Matched reports whether the summary passes the screening filter: at least
// one non-academic author.
func (s Summary) Matched() bool {
	return len(s.NonAcademicAuthors) > 0
}

// JoinedAuthors returns the non-academic authors as one display string.
func (s Summary) JoinedAuthors() string {
	return strings.Join(s.NonAcademicAuthors, listSeparator)
}

// JoinedCompanies returns the company names as one display string.
func (s Summary) JoinedCompanies() string {
	return strings.Join(s.Companies, listSeparator)
}
