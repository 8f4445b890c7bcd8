// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package screen filters publication records down to those with authors
// affiliated with commercial organizations, producing normalized summary
// rows.
package screen

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/meshintel/paperscreen/internal/classify"
	"github.com/meshintel/paperscreen/pkg/types"
)

// Screener turns parsed publication records into summaries and keeps the
// ones with at least one commercially affiliated author.
type Screener struct {
	classifier *classify.Classifier
}

// New builds a Screener from the screening configuration. Empty vocabulary
// lists fall back to the built-in defaults.
func New(cfg types.ScreenConfig) *Screener {
	return &Screener{classifier: classify.New(cfg)}
}

// Result counts what happened to a batch of records.
type Result struct {
	Matched int `json:"matched" yaml:"matched"`
	Dropped int `json:"dropped" yaml:"dropped"`
	Failed  int `json:"failed" yaml:"failed"`
}

// Total returns the number of records examined.
func (r Result) Total() int {
	return r.Matched + r.Dropped + r.Failed
}

// Extract builds the summary row for a single record without applying the
// retention rule.
func (s *Screener) Extract(rec types.Record) types.Summary {
	analysis := s.Analyze(rec)
	return types.Summary{
		PMID:               rec.PMID,
		Title:              rec.Title,
		PublicationDate:    NormalizeDate(rec),
		NonAcademicAuthors: analysis.NonAcademicAuthors,
		Companies:          analysis.Companies,
		CorrespondingEmail: analysis.CorrespondingEmail,
	}
}

// Screen extracts a summary from every record and keeps those with at least
// one non-academic author. Records that fail extraction are logged and
// skipped; one malformed record must not abort the batch.
func (s *Screener) Screen(records []types.Record) ([]types.Summary, Result) {
	var (
		summaries []types.Summary
		result    Result
	)
	for _, rec := range records {
		summary, err := s.extractSafe(rec)
		if err != nil {
			result.Failed++
			log.WithField("pmid", pmidOrUnknown(rec)).WithError(err).Error("skipping record")
			continue
		}
		if !summary.Matched() {
			result.Dropped++
			log.WithField("pmid", pmidOrUnknown(rec)).Debug("no commercial affiliation")
			continue
		}
		summaries = append(summaries, summary)
		result.Matched++
	}
	log.WithFields(log.Fields{
		"matched": result.Matched,
		"dropped": result.Dropped,
		"failed":  result.Failed,
	}).Debug("screening complete")
	return summaries, result
}

func (s *Screener) extractSafe(rec types.Record) (summary types.Summary, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("extracting record: %v", r)
		}
	}()
	return s.Extract(rec), nil
}

func pmidOrUnknown(rec types.Record) string {
	if rec.PMID == "" {
		return "unknown"
	}
	return rec.PMID
}
