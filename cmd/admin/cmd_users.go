package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"peopleconnect/internal/app"
)

var userFlags struct {
	email string
}

var disableUserCmd = &cobra.Command{
	Use:   "disable-user",
	Short: "Block sign-in for the account with the given email",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd.Context(), func(a *app.App) error {
			if err := a.Users.DisableUserByEmail(cmd.Context(), userFlags.email); err != nil {
				return fmt.Errorf("disable %s: %w", userFlags.email, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "User %s has been disabled\n", userFlags.email)
			return nil
		})
	},
}

var enableUserCmd = &cobra.Command{
	Use:   "enable-user",
	Short: "Allow sign-in again for the account with the given email",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd.Context(), func(a *app.App) error {
			if err := a.Users.EnableUserByEmail(cmd.Context(), userFlags.email); err != nil {
				return fmt.Errorf("enable %s: %w", userFlags.email, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "User %s has been enabled\n", userFlags.email)
			return nil
		})
	},
}

var grantAdminCmd = &cobra.Command{
	Use:   "grant-admin",
	Short: "Set the admin claim so the account can sign in to the admin API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd.Context(), func(a *app.App) error {
			if err := a.Identity.GrantAdmin(cmd.Context(), userFlags.email); err != nil {
				return fmt.Errorf("grant admin to %s: %w", userFlags.email, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now an admin; existing sessions must sign in again\n", userFlags.email)
			return nil
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{disableUserCmd, enableUserCmd, grantAdminCmd} {
		c.Flags().StringVar(&userFlags.email, "email", "", "Account email (required)")
		_ = c.MarkFlagRequired("email")
	}
}
