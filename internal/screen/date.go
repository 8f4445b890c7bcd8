// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package screen

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/meshintel/paperscreen/pkg/types"
)

// dateCodePriority orders the record fields consulted for a publication date.
var dateCodePriority = []types.DateCode{
	types.DatePublished,
	types.DateElectronic,
	types.DateEntry,
	types.DateRevised,
}

// datePattern pairs a shape test with a formatter. The chain is evaluated
// in order: the first pattern whose match accepts the value formats it, and
// a formatter failure moves on down the chain.
type datePattern struct {
	match  func(string) bool
	format func(string) (string, bool)
}

// datePatterns is the normalization chain for one raw date value.
var datePatterns = []datePattern{
	// Year month day, e.g. "2023 Apr 15". Extra trailing tokens defeat the
	// parse and fall through.
	{match: minTokens(3), format: parseLayout("2006 Jan 2")},

	// Year month, e.g. "2023 Apr". Day defaults to the 1st.
	{match: exactTokens(2), format: parseLayout("2006 Jan")},

	// Bare year, e.g. "2023". The token is kept verbatim, no validation.
	{match: maxTokens(1), format: func(s string) (string, bool) {
		return strings.TrimSpace(s) + "-01-01", true
	}},

	// ISO-8601 timestamp with a time component, e.g. "2023-04-15T06:00:00Z".
	{match: containsMarker("T"), format: parseTimestamp},

	// Slash-delimited, e.g. "2023/04/15 06:00". The first three parts are
	// reassembled verbatim, no validation. A value carrying a time marker
	// belongs to the timestamp pattern alone; when that parse fails the
	// whole value falls through to the next field.
	{match: slashWithoutMarker, format: joinSlashParts},
}

func minTokens(n int) func(string) bool {
	return func(s string) bool { return len(strings.Fields(s)) >= n }
}

func exactTokens(n int) func(string) bool {
	return func(s string) bool { return len(strings.Fields(s)) == n }
}

func maxTokens(n int) func(string) bool {
	return func(s string) bool { return len(strings.Fields(s)) <= n }
}

func containsMarker(marker string) func(string) bool {
	return func(s string) bool { return strings.Contains(s, marker) }
}

func slashWithoutMarker(s string) bool {
	return strings.Contains(s, "/") && !strings.Contains(s, "T")
}

// parseLayout builds a formatter that parses the whole value with one
// reference layout and reformats it as YYYY-MM-DD.
func parseLayout(layout string) func(string) (string, bool) {
	return func(s string) (string, bool) {
		t, err := time.Parse(layout, s)
		if err != nil {
			return "", false
		}
		return t.Format("2006-01-02"), true
	}
}

// parseTimestamp accepts ISO-8601 timestamps, with or without a zone
// marker, and keeps the calendar date. No timezone conversion.
func parseTimestamp(s string) (string, bool) {
	t, err := dateparse.ParseStrict(s)
	if err != nil {
		return "", false
	}
	return t.Format("2006-01-02"), true
}

func joinSlashParts(s string) (string, bool) {
	parts := strings.Split(s, "/")
	if len(parts) < 3 {
		return "", false
	}
	return parts[0] + "-" + parts[1] + "-" + parts[2], true
}

// NormalizeDate reduces a record's date fields to one YYYY-MM-DD string.
// Fields are consulted in priority order (DP, DEP, EDAT, MHDA); a value
// that defeats the whole pattern chain falls through to the next field.
// Returns "" when every field is absent or unparseable.
func NormalizeDate(rec types.Record) string {
	for _, code := range dateCodePriority {
		raw, ok := rec.Date(code)
		if !ok {
			continue
		}
		if normalized, ok := normalizeValue(raw); ok {
			return normalized
		}
	}
	return ""
}

func normalizeValue(raw string) (string, bool) {
	for _, p := range datePatterns {
		if !p.match(raw) {
			continue
		}
		if out, ok := p.format(raw); ok {
			return out, true
		}
	}
	return "", false
}
