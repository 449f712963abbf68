package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"peopleconnect/internal/app"
	"peopleconnect/pkg/config"
)

var rootCmd = &cobra.Command{
	Use:   "peopleconnect-admin",
	Short: "Operator commands for the PeopleConnect admin backend",
	Long: "peopleconnect-admin runs moderation scans, manages user sign-in and admin claims,\n" +
		"and migrates the legacy taxonomy, using the same configuration as the API server.",
	SilenceUsage: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(disableUserCmd)
	rootCmd.AddCommand(enableUserCmd)
	rootCmd.AddCommand(migrateTaxonomyCmd)
	rootCmd.AddCommand(grantAdminCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// withApp loads configuration, builds the application and closes it after fn.
func withApp(ctx context.Context, fn func(*app.App) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(a)
}
