package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"peopleconnect/internal/app"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Classify every pending post once and record the decisions",
	RunE:  runScan,
}

func runScan(cmd *cobra.Command, _ []string) error {
	return withApp(cmd.Context(), func(a *app.App) error {
		if err := a.Feed.Load(cmd.Context()); err != nil {
			return fmt.Errorf("load posts: %w", err)
		}

		report, err := a.Moderation.ScanPending(cmd.Context())
		out := cmd.OutOrStdout()
		if report != nil {
			for _, r := range report.Results {
				line := string(r.Status)
				switch {
				case r.Superseded:
					line = "Superseded"
				case r.Held:
					line = "Held"
				}
				fmt.Fprintf(out, "%-24s %-10s images=%d failed=%d skipped=%d\n",
					r.PostID, line, r.ImagesClassified, r.ImagesFailed, r.ImagesSkipped)
			}
			fmt.Fprintf(out, "Scanned %d: %d approved, %d rejected, %d held, %d superseded (%s)\n",
				report.Scanned, report.Approved, report.Rejected, report.Held, report.Superseded,
				report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond))
		}
		if err != nil {
			return fmt.Errorf("scan: %w", err)
		}
		return nil
	})
}
