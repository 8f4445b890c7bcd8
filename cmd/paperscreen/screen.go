// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/meshintel/paperscreen/internal/medline"
	"github.com/meshintel/paperscreen/internal/screen"
)

var screenCmd = &cobra.Command{
	Use:   "screen <medline-file>",
	Short: "Screen a saved MEDLINE file offline",
	Long: `Screen parses a MEDLINE-format text file (as produced by the E-utilities
efetch endpoint, or saved from a previous search) and runs the same
affiliation screening as search, without any network access.`,
	Args: cobra.ExactArgs(1),
	RunE: runScreen,
}

func init() {
	screenCmd.Flags().StringP("file", "f", "", "write CSV to a file (bare names go under data/)")
	screenCmd.Flags().Bool("json", false, "print results as JSON")
	screenCmd.Flags().Bool("table", false, "print results as a table")

	rootCmd.AddCommand(screenCmd)
}

func runScreen(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening medline file: %w", err)
	}
	defer f.Close()

	records, err := medline.Parse(f)
	if err != nil {
		return err
	}

	summaries, result := screen.New(screenConfig()).Screen(records)
	log.WithFields(log.Fields{
		"parsed":  len(records),
		"matched": result.Matched,
		"dropped": result.Dropped,
		"failed":  result.Failed,
	}).Info("screening complete")

	return outputSummaries(cmd, summaries)
}
