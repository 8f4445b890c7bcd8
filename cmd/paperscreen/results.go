// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meshintel/paperscreen/internal/export"
	"github.com/meshintel/paperscreen/internal/store"
	"github.com/meshintel/paperscreen/pkg/types"
)

var resultsCmd = &cobra.Command{
	Use:   "results [search-terms...]",
	Short: "Query stored screening results",
	Long: `Results searches the local results database. Positional terms run a
full-text search over titles, company names, and author names; --company,
--pmid, and --since narrow the rows structurally. Without terms or
filters the newest rows are listed.`,
	RunE: runResults,
}

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List past screening runs",
	RunE:  runRuns,
}

func init() {
	resultsCmd.Flags().String("company", "", "filter by company name substring")
	resultsCmd.Flags().String("pmid", "", "filter by PubMed ID")
	resultsCmd.Flags().String("since", "", "keep rows published on or after this date (YYYY-MM-DD)")
	resultsCmd.Flags().Int("limit", 0, "maximum rows (0 = store default)")
	resultsCmd.Flags().Bool("json", false, "print rows as JSON")
	resultsCmd.Flags().String("db", "", "results database path (default: per-user data directory)")

	runsCmd.Flags().Bool("json", false, "print runs as JSON")
	runsCmd.Flags().String("db", "", "results database path (default: per-user data directory)")

	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(runsCmd)
}

// openStore resolves the database path (flag, then config, then the
// per-user default) and opens the results store.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		dbPath = viper.GetString("db")
	}
	return store.NewStore(types.StoreConfig{Path: dbPath})
}

func runResults(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	company, _ := cmd.Flags().GetString("company")
	pmid, _ := cmd.Flags().GetString("pmid")
	since, _ := cmd.Flags().GetString("since")
	limit, _ := cmd.Flags().GetInt("limit")

	opts := store.QueryOptions{
		Query:      strings.Join(args, " "),
		Company:    company,
		PMID:       pmid,
		Since:      since,
		MaxResults: limit,
	}
	if opts.IsEmpty() {
		log.Debug("no query or filters, listing newest rows")
	}

	papers, err := st.Papers(cmd.Context(), opts)
	if err != nil {
		return err
	}

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(papers)
	}

	summaries := make([]types.Summary, len(papers))
	for i, p := range papers {
		summaries[i] = p.Summary
	}
	export.FormatTable(summaries, os.Stdout)
	return nil
}

func runRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.Runs(cmd.Context())
	if err != nil {
		return err
	}

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	formatRuns(runs)
	return nil
}

func formatRuns(runs []store.Run) {
	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return
	}

	fmt.Fprintf(os.Stdout, "%-36s  %-19s  %-34s  %7s  %7s\n",
		"ID", "Created", "Query", "Fetched", "Matched")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 112))

	for _, r := range runs {
		query := r.Query
		if len(query) > 34 {
			query = query[:31] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-36s  %-19s  %-34s  %7d  %7d\n",
			r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04:05"), query,
			r.Fetched, r.Matched)
	}

	fmt.Fprintf(os.Stdout, "\n%d runs\n", len(runs))
}
