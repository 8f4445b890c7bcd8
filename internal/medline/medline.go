// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package medline parses the MEDLINE flat-file format served by the NCBI
// efetch endpoint into structured publication records.
package medline

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/meshintel/paperscreen/pkg/types"
)

// Field layout: a four character tag padded with spaces, then "- ", then the
// value. Continuation lines start with six spaces and extend the previous
// field.
const (
	tagWidth    = 4
	valueOffset = 6
)

const continuationPrefix = "      "

// namedCodes are the field codes mapped onto Record's named fields; every
// other code lands in Record.Extra.
var namedCodes = map[string]bool{
	"PMID": true,
	"TI":   true,
	"DP":   true,
	"DEP":  true,
	"EDAT": true,
	"MHDA": true,
	"AU":   true,
	"AD":   true,
}

// appendToLast are the codes whose continuation lines extend the last value
// in place. All other codes collect one value per line; multi-line string
// fields are space-joined when the record is built.
var appendToLast = map[string]bool{
	"AD": true,
	"MH": true,
}

// Parse reads MEDLINE text and returns one Record per article. Articles are
// separated by blank lines; an article with no fields is dropped. A
// non-blank line carrying neither the field separator nor a continuation
// prefix is logged at debug level and skipped.
func Parse(r io.Reader) ([]types.Record, error) {
	var (
		records []types.Record
		fields  map[string][]string
		key     string
	)
	flush := func() {
		if len(fields) > 0 {
			records = append(records, buildRecord(fields))
		}
		fields = nil
		key = ""
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), " \t\r")
		switch {
		case line == "":
			flush()
		case strings.HasPrefix(line, continuationPrefix):
			if key == "" {
				log.WithField("line", lineNo).Debug("continuation before any field")
				continue
			}
			values := fields[key]
			if appendToLast[key] {
				// Keep one space between the joined halves.
				values[len(values)-1] += line[tagWidth+1:]
			} else {
				fields[key] = append(values, line[valueOffset:])
			}
		case len(line) >= valueOffset && line[tagWidth:valueOffset] == "- ":
			if fields == nil {
				fields = make(map[string][]string)
			}
			key = strings.TrimRight(line[:tagWidth], " ")
			fields[key] = append(fields[key], line[valueOffset:])
		default:
			log.WithField("line", lineNo).Debug("skipping malformed line")
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading medline input: %w", err)
	}
	flush()
	return records, nil
}

func buildRecord(fields map[string][]string) types.Record {
	rec := types.Record{
		PMID:           joined(fields, "PMID"),
		Title:          joined(fields, "TI"),
		PubDate:        joined(fields, "DP"),
		ElectronicDate: joined(fields, "DEP"),
		EntryDate:      joined(fields, "EDAT"),
		RevisionDate:   joined(fields, "MHDA"),
		Authors:        fields["AU"],
		Affiliations:   fields["AD"],
	}
	for code, values := range fields {
		if namedCodes[code] {
			continue
		}
		if rec.Extra == nil {
			rec.Extra = make(map[string][]string)
		}
		rec.Extra[code] = values
	}
	return rec
}

func joined(fields map[string][]string, code string) string {
	return strings.Join(fields[code], " ")
}
