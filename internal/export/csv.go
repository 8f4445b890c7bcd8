// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export serializes screening results as CSV, JSON, tables, and
// reloadable run files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/meshintel/paperscreen/pkg/types"
)

// Columns is the fixed CSV header. Downstream consumers depend on this
// exact order.
var Columns = []string{
	"PubmedID",
	"Title",
	"PublicationDate",
	"Non-academicAuthor(s)",
	"CompanyAffiliation(s)",
	"CorrespondingAuthorEmail",
}

// WriteCSV writes the header and one row per summary to w. With no
// summaries it writes nothing and logs a warning.
func WriteCSV(summaries []types.Summary, w io.Writer) error {
	if len(summaries) == 0 {
		log.Warn("no results to export")
		return nil
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, s := range summaries {
		row := []string{
			s.PMID,
			s.Title,
			s.PublicationDate,
			s.JoinedAuthors(),
			s.JoinedCompanies(),
			s.CorrespondingEmail,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row for %s: %w", s.PMID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSV writes summaries to a CSV file, creating parent directories as
// needed. With no summaries it logs a warning and leaves no file behind.
func ExportCSV(summaries []types.Summary, path string) error {
	if len(summaries) == 0 {
		log.Warn("no results to export")
		return nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteCSV(summaries, f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	log.WithField("path", path).Info("results exported")
	return nil
}
