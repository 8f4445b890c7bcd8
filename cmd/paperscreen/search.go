// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meshintel/paperscreen/internal/eutils"
	"github.com/meshintel/paperscreen/internal/export"
	"github.com/meshintel/paperscreen/internal/screen"
	"github.com/meshintel/paperscreen/internal/secrets"
	"github.com/meshintel/paperscreen/internal/store"
	"github.com/meshintel/paperscreen/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search PubMed and screen the results",
	Long: `Search runs a PubMed query (full PubMed syntax is supported), fetches the
matching records in MEDLINE format, and screens each paper's author list
for pharmaceutical or biotech company affiliations.

Matching papers are written to stdout as CSV; progress goes to stderr.
Use --file to write the CSV to a file, --json or --table for other
formats, --save to record the run as a YAML file, and --store to persist
it to the results database.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringP("email", "e", "", "contact email sent to NCBI (required)")
	searchCmd.Flags().StringP("api-key", "k", "", "NCBI API key for the higher rate limit")
	searchCmd.Flags().IntP("max-results", "m", 100, "maximum number of papers to fetch")
	searchCmd.Flags().StringP("file", "f", "", "write CSV to a file (bare names go under data/)")
	searchCmd.Flags().Bool("json", false, "print results as JSON")
	searchCmd.Flags().Bool("table", false, "print results as a table")
	searchCmd.Flags().String("save", "", "write a YAML run file (bare names go under data/)")
	searchCmd.Flags().Bool("store", false, "persist the run to the results database")
	searchCmd.Flags().String("db", "", "results database path (default: per-user data directory)")
	searchCmd.Flags().Bool("no-cache", false, "bypass the fetch response cache")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	cfg := fetchConfigFromFlags(cmd)
	if cfg.Email == "" {
		return fmt.Errorf("NCBI requires a contact email: pass --email, set the email config key, or create .secrets/%s", secrets.EmailFile)
	}
	if cfg.APIKey == "" {
		log.Warn("no NCBI API key configured, using the slower shared rate limit")
	}

	records, err := eutils.New(cfg).FetchPapers(cmd.Context(), query, os.Stderr)
	if err != nil {
		return err
	}

	summaries, result := screen.New(screenConfig()).Screen(records)
	log.WithFields(log.Fields{
		"fetched": len(records),
		"matched": result.Matched,
		"dropped": result.Dropped,
		"failed":  result.Failed,
	}).Info("screening complete")

	if savePath, _ := cmd.Flags().GetString("save"); savePath != "" {
		run := export.RunFile{
			Query:     query,
			CreatedAt: time.Now().UTC(),
			Fetched:   len(records),
			Results:   summaries,
		}
		if err := export.SaveRunFile(run, dataPath(savePath)); err != nil {
			return err
		}
	}

	if persist, _ := cmd.Flags().GetBool("store"); persist {
		if err := persistRun(cmd, query, cfg.MaxResults, len(records), summaries); err != nil {
			return err
		}
	}

	return outputSummaries(cmd, summaries)
}

// fetchConfigFromFlags resolves the fetch settings with flag values
// winning over config/env values, which win over .secrets/ files.
func fetchConfigFromFlags(cmd *cobra.Command) types.FetchConfig {
	email, _ := cmd.Flags().GetString("email")
	if email == "" {
		email = viper.GetString("email")
	}
	email = secretDefault(secrets.EmailFile, email)

	apiKey, _ := cmd.Flags().GetString("api-key")
	if apiKey == "" {
		apiKey = viper.GetString("api_key")
	}
	apiKey = secretDefault(secrets.APIKeyFile, apiKey)

	max, _ := cmd.Flags().GetInt("max-results")
	if !cmd.Flags().Changed("max-results") && viper.IsSet("max_results") {
		max = viper.GetInt("max_results")
	}

	noCache, _ := cmd.Flags().GetBool("no-cache")

	return types.FetchConfig{
		Email:        email,
		APIKey:       apiKey,
		MaxResults:   max,
		CacheDir:     viper.GetString("cache_dir"),
		CacheTTL:     viper.GetDuration("cache_ttl"),
		DisableCache: noCache,
	}
}

// screenConfig returns the screening vocabularies from config. Unset keys
// leave the built-in defaults in place.
func screenConfig() types.ScreenConfig {
	return types.ScreenConfig{
		AcademicTerms:        viper.GetStringSlice("academic_terms"),
		CompanyTerms:         viper.GetStringSlice("company_terms"),
		AcademicEmailDomains: viper.GetStringSlice("academic_email_domains"),
	}
}

func persistRun(cmd *cobra.Command, query string, maxResults, fetched int, summaries []types.Summary) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	run, err := st.SaveRun(cmd.Context(), store.Run{
		Query:      query,
		MaxResults: maxResults,
		Fetched:    fetched,
	}, summaries)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{"run": run.ID, "db": st.Path()}).Info("run stored")
	return nil
}

// outputSummaries writes the screening rows in the format the flags select,
// defaulting to CSV on stdout.
func outputSummaries(cmd *cobra.Command, summaries []types.Summary) error {
	jsonOut, _ := cmd.Flags().GetBool("json")
	tableOut, _ := cmd.Flags().GetBool("table")
	file, _ := cmd.Flags().GetString("file")

	switch {
	case jsonOut:
		return export.FormatJSON(summaries, os.Stdout)
	case tableOut:
		export.FormatTable(summaries, os.Stdout)
		return nil
	case file != "":
		return export.ExportCSV(summaries, dataPath(file))
	default:
		return export.WriteCSV(summaries, os.Stdout)
	}
}
