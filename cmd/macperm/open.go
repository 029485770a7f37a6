package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tmc/macperm"
)

func (c *cli) newOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <permission>",
		Short: "Open the System Settings pane for a permission",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := macperm.ParseKind(args[0])
			if err != nil {
				return err
			}
			c.logger.Debug("opening settings", "permission", k, "pane", k.SettingsPane().URL())
			return c.opener.OpenSettings(k)
		},
	}
}

func (c *cli) newPromptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prompt <permission>",
		Short: "Check one permission and offer to open System Settings if missing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := macperm.ParseKind(args[0])
			if err != nil {
				return err
			}
			if macperm.Check(cmd.Context(), k) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: granted\n", k)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: not granted\n", k)
			return errMissing
		},
	}
}
