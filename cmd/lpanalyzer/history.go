package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/onitasu/lp-ai-analyzer/internal/config"
	"github.com/onitasu/lp-ai-analyzer/internal/database"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past analysis runs",
		Long: `Show analysis runs recorded in the local history database.

Runs are stored automatically by the analyze command unless --no-save is
given. The database lives in the XDG data directory.`,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", 20, "Maximum number of runs to show")
	cmd.Flags().String("url", "", "Only show runs for this target URL")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}

	urlFilter, err := cmd.Flags().GetString("url")
	if err != nil {
		return err
	}

	// The history command never creates the database; an empty history is
	// reported as such instead of leaving an empty file behind.
	opts := database.DefaultOptions()
	opts.CreateIfNotExists = false

	db, err := database.Open(config.XDGDataDir(), opts)
	if err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), "No analysis history yet. Run 'lpanalyzer analyze' first.")
		return nil //nolint:nilerr // A missing database is an empty history, not a failure
	}
	defer db.Close()

	ctx := context.Background()

	var records []database.RunRecord
	if urlFilter != "" {
		records, err = db.RunsForURL(ctx, urlFilter)
	} else {
		records, err = db.RecentRuns(ctx, limit)
	}
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No analysis history yet.")
		return nil
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-5s %-20s %-40s %-13s %-18s %-8s %s\n",
		"ID", "DATE", "URL", "GENRE", "MODEL", "STATUS", "ISSUES")

	for _, record := range records {
		r := record.Report

		status := "failed"
		issues := "-"
		if r.Succeeded() {
			status = "ok"
			issues = fmt.Sprintf("%d (%d high)", r.TotalIssues(), r.HighCount())
		}

		fmt.Fprintf(out, "%-5d %-20s %-40s %-13s %-18s %-8s %s\n",
			record.ID,
			r.AnalyzedAt.Format("2006-01-02 15:04:05"),
			truncate(r.URL, 40),
			r.Genre,
			r.ModelName,
			status,
			issues,
		)
	}

	return nil
}

// truncate shortens a string to fit fixed-width table columns.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
