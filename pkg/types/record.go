// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DateCode identifies a date-bearing field of a publication record.
type DateCode string

const (
	// DatePublished is the printed publication date (MEDLINE code DP).
	DatePublished DateCode = "DP"

	// DateElectronic is the electronic publication date (DEP).
	DateElectronic DateCode = "DEP"

	// DateEntry is the date the record entered PubMed (EDAT).
	DateEntry DateCode = "EDAT"

	// DateRevised is the date the record was last revised (MHDA).
	DateRevised DateCode = "MHDA"
)

// Record is one publication record in the MEDLINE field-code shape.
// Authors and Affiliations are positionally aligned: the affiliation at
// index i belongs to the author at index i. That alignment is an upstream
// guarantee; consumers bounds-check but do not re-pair.
type Record struct {
	// PMID is the PubMed identifier.
	PMID string `json:"pmid" yaml:"pmid"`

	// Title is the article title (code TI).
	Title string `json:"title" yaml:"title"`

	// Authors lists author display names in record order (code AU).
	Authors []string `json:"authors" yaml:"authors"`

	// Affiliations lists affiliation strings in record order (code AD).
	Affiliations []string `json:"affiliations" yaml:"affiliations"`

	// PubDate is the raw printed publication date (code DP), e.g. "2023 Apr 15".
	PubDate string `json:"pub_date,omitempty" yaml:"pub_date,omitempty"`

	// ElectronicDate is the raw electronic publication date (code DEP).
	ElectronicDate string `json:"electronic_date,omitempty" yaml:"electronic_date,omitempty"`

	// EntryDate is the raw PubMed entry date (code EDAT), e.g. "2023/04/15 06:00".
	EntryDate string `json:"entry_date,omitempty" yaml:"entry_date,omitempty"`

	// RevisionDate is the raw last-revision date (code MHDA).
	RevisionDate string `json:"revision_date,omitempty" yaml:"revision_date,omitempty"`

	// Extra preserves all other field codes and their values in parse order.
	Extra map[string][]string `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// Date returns the raw value for the given date code and whether the record
// carries a non-empty value for it.
func (r Record) Date(code DateCode) (string, bool) {
	var v string
	switch code {
	case DatePublished:
		v = r.PubDate
	case DateElectronic:
		v = r.ElectronicDate
	case DateEntry:
		v = r.EntryDate
	case DateRevised:
		v = r.RevisionDate
	}
	return v, v != ""
}

// Field returns the values stored under a MEDLINE field code, consulting the
// named fields first and Extra second. The boolean reports presence; absent
// codes return (nil, false) rather than an empty slice.
func (r Record) Field(code string) ([]string, bool) {
	switch code {
	case "PMID":
		if r.PMID != "" {
			return []string{r.PMID}, true
		}
	case "TI":
		if r.Title != "" {
			return []string{r.Title}, true
		}
	case "AU":
		if len(r.Authors) > 0 {
			return r.Authors, true
		}
	case "AD":
		if len(r.Affiliations) > 0 {
			return r.Affiliations, true
		}
	case "DP", "DEP", "EDAT", "MHDA":
		if v, ok := r.Date(DateCode(code)); ok {
			return []string{v}, true
		}
	default:
		if vs, ok := r.Extra[code]; ok {
			return vs, true
		}
	}
	return nil, false
}

// HasAuthorData reports whether the record carries both an author list and
// an affiliation list. Analysis of a record missing either yields nothing.
func (r Record) HasAuthorData() bool {
	return len(r.Authors) > 0 && len(r.Affiliations) > 0
}
