package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"myContacts/internal/auth"
	"myContacts/internal/db"
)

func newDBCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "db",
		Short:       "Inspect the database schema (admin only)",
		Annotations: needsLogin(),
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the applied schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := auth.RequireAdmin(cmd.Context(), c.users); err != nil {
				return err
			}
			v, err := db.Version(c.db)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", v)
			return nil
		},
	})
	return cmd
}
