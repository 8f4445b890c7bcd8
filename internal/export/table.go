// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/meshintel/paperscreen/pkg/types"
)

// FormatTable writes summaries as a human-readable table to w.
func FormatTable(summaries []types.Summary, w io.Writer) {
	if len(summaries) == 0 {
		fmt.Fprintln(w, "No matching papers.")
		return
	}

	fmt.Fprintf(w, "%-10s  %-44s  %-10s  %-24s  %-24s  %s\n",
		"PubmedID", "Title", "Date", "Non-academic authors", "Companies", "Email")
	fmt.Fprintln(w, strings.Repeat("-", 130))

	for _, s := range summaries {
		fmt.Fprintf(w, "%-10s  %-44s  %-10s  %-24s  %-24s  %s\n",
			s.PMID,
			truncate(s.Title, 44),
			s.PublicationDate,
			truncate(s.JoinedAuthors(), 24),
			truncate(s.JoinedCompanies(), 24),
			s.CorrespondingEmail)
	}

	fmt.Fprintf(w, "\n%d matching papers\n", len(summaries))
}

// FormatJSON writes summaries as indented JSON to w.
func FormatJSON(summaries []types.Summary, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(summaries)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
