package main

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"myContacts/models"
)

func newContactsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "contacts",
		Aliases:     []string{"c"},
		Short:       "List, add, update and remove contacts",
		Annotations: needsLogin(),
	}
	cmd.AddCommand(
		newContactsListCmd(c),
		newContactsAddCmd(c),
		newContactsUpdateCmd(c),
		newContactsRemoveCmd(c),
	)
	return cmd
}

func newContactsListCmd(c *cli) *cobra.Command {
	var by, query, output string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contacts, optionally filtered by a column prefix",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := newFormatter(output)
			if err != nil {
				return err
			}
			filter := models.ContactFilter{Prefix: query}
			if query != "" {
				filter.Column = models.SearchColumn(strings.ToLower(by))
			}
			list, err := c.contacts.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return f.Contacts(cmd.OutOrStdout(), list)
		},
	}
	cmd.Flags().StringVar(&by, "by", string(models.SearchByName), "column to search: name, job, location or contact")
	cmd.Flags().StringVarP(&query, "query", "q", "", "case-insensitive prefix to match")
	cmd.Flags().StringVarP(&output, "output", "o", formatTable, "output format: table, json or yaml")
	return cmd
}

func bindContactFlags(cmd *cobra.Command, f *models.ContactFields) {
	cmd.Flags().StringVar(&f.Name, "name", "", "full name (letters and spaces)")
	cmd.Flags().StringVar(&f.Job, "job", "", "job title (letters and spaces)")
	cmd.Flags().StringVar(&f.Location, "location", "", "location (letters and spaces)")
	cmd.Flags().StringVar(&f.Contact, "contact", "", "10 digit contact number")
}

func newContactsAddCmd(c *cli) *cobra.Command {
	var fields models.ContactFields
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a contact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ct, err := c.contacts.Add(cmd.Context(), fields)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Record added successfully (id %d)\n", ct.ID)
			return nil
		},
	}
	bindContactFlags(cmd, &fields)
	return cmd
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid contact id %q", arg)
	}
	return id, nil
}

func newContactsUpdateCmd(c *cli) *cobra.Command {
	var fields models.ContactFields
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a contact; omitted fields keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			cur, err := c.contacts.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			merged := cur.Fields()
			flags := cmd.Flags()
			if flags.Changed("name") {
				merged.Name = fields.Name
			}
			if flags.Changed("job") {
				merged.Job = fields.Job
			}
			if flags.Changed("location") {
				merged.Location = fields.Location
			}
			if flags.Changed("contact") {
				merged.Contact = fields.Contact
			}
			if _, err := c.contacts.Update(cmd.Context(), id, merged); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Record updated successfully")
			return nil
		},
	}
	bindContactFlags(cmd, &fields)
	return cmd
}

func newContactsRemoveCmd(c *cli) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			cur, err := c.contacts.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !yes {
				fmt.Fprintf(out, "Do you want to remove '%s' from your Contact Book? [y/N] ", cur.Name)
				line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if a := strings.ToLower(strings.TrimSpace(line)); a != "y" && a != "yes" {
					fmt.Fprintln(out, "Cancelled")
					return nil
				}
			}
			if _, err := c.contacts.Remove(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(out, "Record removed successfully")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
