package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"myContacts/internal/auth"
	"myContacts/models"
)

func newPasswordCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "password",
		Short:       "Change your password or reset the user password",
		Annotations: needsLogin(),
	}
	cmd.AddCommand(newPasswordChangeCmd(c), newPasswordResetCmd(c))
	return cmd
}

func newPasswordChangeCmd(c *cli) *cobra.Command {
	var current, next, confirm string
	cmd := &cobra.Command{
		Use:   "change",
		Short: "Change the password of the logged-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := auth.RequirePrincipal(cmd.Context())
			if err != nil {
				return err
			}
			if err := c.accounts.ChangePassword(cmd.Context(), p.UserID, current, next, confirm); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Password has been changed successfully")
			return nil
		},
	}
	cmd.Flags().StringVar(&current, "current", "", "current password")
	cmd.Flags().StringVar(&next, "new", "", "new password")
	cmd.Flags().StringVar(&confirm, "confirm", "", "new password again")
	return cmd
}

func newPasswordResetCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "reset-user",
		Short: "Reset the user account password (admin only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.accounts.ResetUserPassword(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Password of the user has been reset to %s\n", models.DefaultUserPasswd)
			return nil
		},
	}
}
