package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tmc/macperm/internal/system"
	"github.com/tmc/macperm/tccdb"
)

func (c *cli) newTCCCmd() *cobra.Command {
	var (
		user   bool
		all    bool
		client string
		format string
	)
	cmd := &cobra.Command{
		Use:   "tcc",
		Short: "List recorded permission decisions from the TCC database",
		Long: `List rows from the TCC database for this program, or every row with --all.
Reading the database needs Full Disk Access.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.jsonOutput {
				format = "json"
			}
			if format != "table" && format != "json" {
				return fmt.Errorf("unknown format %q (want table or json)", format)
			}

			path := tccdb.SystemPath
			if user {
				home, err := os.UserHomeDir()
				if err != nil {
					return fmt.Errorf("resolve home directory: %w", err)
				}
				path = tccdb.UserPath(home)
			}
			db, err := tccdb.Open(cmd.Context(), path)
			if err != nil {
				return err
			}
			defer db.Close()

			var entries []tccdb.Entry
			if all {
				entries, err = db.All(cmd.Context())
			} else {
				if client == "" {
					if client, err = system.ClientID(); err != nil {
						return err
					}
				}
				c.logger.Debug("listing TCC rows", "client", client, "db", path)
				entries, err = db.ForClient(cmd.Context(), client)
			}
			if err != nil {
				return err
			}

			out, err := tccdb.Format(entries, format)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			if format == "json" {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&user, "user", false, "read the per-user database instead of the system one")
	cmd.Flags().BoolVar(&all, "all", false, "list every client")
	cmd.Flags().StringVar(&client, "client", "", "bundle ID or executable path (default: this program)")
	cmd.Flags().StringVar(&format, "format", "table", "output format (table, json)")
	return cmd
}
