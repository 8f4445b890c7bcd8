// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package screen

import (
	"regexp"

	"github.com/meshintel/paperscreen/internal/classify"
	"github.com/meshintel/paperscreen/pkg/types"
)

// emailPattern finds an address embedded in an affiliation string. The
// local part and domain are matched permissively; syntax validation is not
// this tool's job.
var emailPattern = regexp.MustCompile(`([a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+)`)

// Analysis is the outcome of walking one record's author and affiliation
// lists.
type Analysis struct {
	// NonAcademicAuthors lists authors whose affiliation classified
	// commercial, in record order, one entry per qualifying line.
	NonAcademicAuthors []string

	// Companies lists the distinct extracted company names in first-seen
	// order.
	Companies []string

	// CorrespondingEmail is the chosen contact address, empty when none
	// was found.
	CorrespondingEmail string
}

// Analyze walks one record's author/affiliation pairs. Entries are paired
// strictly by index: an index outside either list is skipped, never
// re-paired. A record missing either list yields an empty Analysis.
//
// For each pair with a non-empty affiliation, a Commercial classification
// records the author and the extracted company name, and the affiliation is
// scanned for an embedded email regardless of classification. The first
// email found is kept provisionally; a non-academic email always replaces
// the current choice, an academic one never does.
func (s *Screener) Analyze(rec types.Record) Analysis {
	var a Analysis
	if !rec.HasAuthorData() {
		return a
	}

	seen := make(map[string]bool)
	for i, affiliation := range rec.Affiliations {
		if i >= len(rec.Authors) || affiliation == "" {
			continue
		}

		if s.classifier.Classify(affiliation) == classify.Commercial {
			a.NonAcademicAuthors = append(a.NonAcademicAuthors, rec.Authors[i])
			if company := s.classifier.ExtractCompany(affiliation); company != "" && !seen[company] {
				seen[company] = true
				a.Companies = append(a.Companies, company)
			}
		}

		if m := emailPattern.FindStringSubmatch(affiliation); m != nil {
			email := m[1]
			if a.CorrespondingEmail == "" || !s.classifier.IsAcademicEmail(email) {
				a.CorrespondingEmail = email
			}
		}
	}
	return a
}
