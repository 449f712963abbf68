package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"peopleconnect/internal/app"
)

var migrateFlags struct {
	dryRun bool
}

var migrateTaxonomyCmd = &cobra.Command{
	Use:   "migrate-taxonomy",
	Short: "Copy legacy Realtime Database categories and services into Firestore",
	Long: "Reads the category, categories and services nodes of the legacy Realtime Database\n" +
		"(FIREBASE_DATABASE_URL) and writes them as categories with sub-categories and services.\n" +
		"Existing entries are left untouched.",
	RunE: runMigrateTaxonomy,
}

func init() {
	migrateTaxonomyCmd.Flags().BoolVar(&migrateFlags.dryRun, "dry-run", false, "Report what would be written without writing")
}

func runMigrateTaxonomy(cmd *cobra.Command, _ []string) error {
	return withApp(cmd.Context(), func(a *app.App) error {
		if a.Migration == nil {
			return fmt.Errorf("FIREBASE_DATABASE_URL is not set")
		}

		report, err := a.Migration.Migrate(cmd.Context(), migrateFlags.dryRun)
		if report != nil {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			_ = enc.Encode(report)
		}
		if err != nil {
			return fmt.Errorf("migrate taxonomy: %w", err)
		}
		return nil
	})
}
