// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify decides whether free-text affiliation strings and email
// addresses belong to academic institutions or commercial organizations,
// and extracts organization names from commercial affiliations.
package classify

import (
	"regexp"
	"strings"

	"github.com/meshintel/paperscreen/pkg/types"
)

// Class is the category assigned to an affiliation string.
type Class int

const (
	// Unknown means no vocabulary term or structural pattern matched:
	// the affiliation is neither academic nor commercial.
	Unknown Class = iota

	// Academic marks research, educational, clinical, and governmental
	// institutions.
	Academic

	// Commercial marks for-profit organizations, pharmaceutical and
	// biotech companies in particular.
	Commercial
)

// String returns the class name.
func (c Class) String() string {
	switch c {
	case Academic:
		return "academic"
	case Commercial:
		return "commercial"
	default:
		return "unknown"
	}
}

// defaultAcademicTerms mark an affiliation as academic on case-insensitive
// substring match.
var defaultAcademicTerms = []string{
	"university", "college", "institute", "school", "academy", "faculty",
	"hospital", "clinic", "medical center", "health center", "laboratory",
	"research center", "national", "federal", "ministry", "department",
	"center for", "centre for", "institution", "foundation", "association",
}

// defaultCompanyTerms mark an affiliation as commercial on case-insensitive
// substring match: corporate suffixes, industry words, and a few large
// pharmaceutical companies by name.
var defaultCompanyTerms = []string{
	"pharma", "pharmaceutical", "biotech", "bioscience", "therapeutics",
	"biologics", "biopharmaceutical", "laboratories", "labs", "inc", "llc",
	"ltd", "limited", "corp", "corporation", "co.", "company", "gmbh",
	"biopharma", "genomics", "health", "technologies", "diagnostics",
	"genentech", "moderna", "pfizer", "astrazeneca", "novartis",
}

// defaultAcademicEmailDomains mark an email domain as academic on substring
// match. The generic entries (gov, org, net) make the check deliberately
// permissive: unrecognized addresses err toward academic.
var defaultAcademicEmailDomains = []string{
	"edu", "ac.uk", "ac.jp", "edu.au", "ac.cn", "ac.in", "edu.sg",
	"uni-", ".uni.", "nih.gov", "gov", "org", "net",
}

// companyIndicators mark an affiliation as commercial even when no
// vocabulary term matches. Matched case-sensitively against the raw string.
var companyIndicators = []*regexp.Regexp{
	// CamelCase tokens stand in for brand names (GlaxoSmithKline, BioNTech).
	regexp.MustCompile(`\b[A-Z][a-z]*[A-Z][a-z]*\b`),
	regexp.MustCompile(`\b[A-Z][a-z]+, Inc\b`),
	regexp.MustCompile(`\b[A-Z][a-z]+ Pharmaceuticals\b`),
	regexp.MustCompile(`\b[A-Z][a-z]+ Biotech\b`),
	regexp.MustCompile(`\b[A-Z][a-z]+ Therapeutics\b`),
}

// namePatterns extract an organization name from a commercial affiliation.
// Tried in order; the first capture wins and is returned verbatim.
var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`([A-Z][a-z]*[A-Z][a-z]*(?:\s[A-Z][a-z]+)*)`),
	regexp.MustCompile(`([A-Z][a-z]+ (?:Pharmaceuticals|Pharma|Biotech|Therapeutics|Inc\.|LLC|Ltd\.|GmbH))`),
	regexp.MustCompile(`([A-Z][a-z]+ [A-Z][a-z]+ (?:Pharmaceuticals|Pharma|Biotech|Therapeutics|Inc\.|LLC|Ltd\.|GmbH))`),
}

// nameSplit cuts the extraction fallback at the first comma or period.
var nameSplit = regexp.MustCompile(`[,.]`)

// Classifier applies vocabularies and structural patterns to affiliation
// strings and email addresses. It is stateless after construction and safe
// for concurrent use.
type Classifier struct {
	academicTerms []string
	companyTerms  []string
	emailDomains  []string
}

// New returns a Classifier using cfg's vocabularies. Empty vocabulary
// slices select the built-in defaults. Terms are stored lowercased and
// matched case-insensitively.
func New(cfg types.ScreenConfig) *Classifier {
	return &Classifier{
		academicTerms: lowered(cfg.AcademicTerms, defaultAcademicTerms),
		companyTerms:  lowered(cfg.CompanyTerms, defaultCompanyTerms),
		emailDomains:  lowered(cfg.AcademicEmailDomains, defaultAcademicEmailDomains),
	}
}

func lowered(terms, fallback []string) []string {
	if len(terms) == 0 {
		terms = fallback
	}
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = strings.ToLower(t)
	}
	return out
}

// Classify assigns a Class to one affiliation string. The academic check
// runs first and short-circuits: an affiliation matching both vocabularies
// is Academic, never Commercial. Academic hospitals and research centers
// routinely contain words that would otherwise trip the commercial
// heuristics. Empty input is Unknown.
func (c *Classifier) Classify(affiliation string) Class {
	if affiliation == "" {
		return Unknown
	}
	if c.isAcademic(affiliation) {
		return Academic
	}
	if c.isCommercial(affiliation) {
		return Commercial
	}
	return Unknown
}

func (c *Classifier) isAcademic(affiliation string) bool {
	lower := strings.ToLower(affiliation)
	for _, term := range c.academicTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

func (c *Classifier) isCommercial(affiliation string) bool {
	lower := strings.ToLower(affiliation)
	for _, term := range c.companyTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	for _, re := range companyIndicators {
		if re.MatchString(affiliation) {
			return true
		}
	}
	return false
}

// ExtractCompany pulls a plausible organization name out of a commercial
// affiliation. When no pattern captures, the segment before the first comma
// or period is returned whitespace-trimmed, so any non-empty input yields a
// result. ExtractCompany performs no classification of its own: callers
// pass strings already classified Commercial.
func (c *Classifier) ExtractCompany(affiliation string) string {
	if affiliation == "" {
		return ""
	}
	for _, re := range namePatterns {
		if m := re.FindStringSubmatch(affiliation); m != nil {
			return m[1]
		}
	}
	parts := nameSplit.Split(affiliation, 2)
	return strings.TrimSpace(parts[0])
}

// IsAcademicEmail reports whether an email address appears to belong to an
// academic institution. The domain is the portion after the first "@"
// (up to any second "@"); it is matched by substring against the
// academic-domain vocabulary. Addresses without "@" are not academic.
func (c *Classifier) IsAcademicEmail(email string) bool {
	if email == "" {
		return false
	}
	lower := strings.ToLower(email)
	at := strings.IndexByte(lower, '@')
	if at < 0 {
		return false
	}
	domain := lower[at+1:]
	if next := strings.IndexByte(domain, '@'); next >= 0 {
		domain = domain[:next]
	}
	for _, d := range c.emailDomains {
		if strings.Contains(domain, d) {
			return true
		}
	}
	return false
}
