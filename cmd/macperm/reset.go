package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tmc/macperm"
)

func (c *cli) newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset [permission...]",
		Short: "Forget recorded permission decisions so macOS asks again",
		Long: `Run tccutil reset for the named permissions, or for all three when none
are named. The client is the containing app bundle's identifier, or the
executable path. Set MACPERM_BUNDLE_ID to reset another client.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds, err := parseKinds(args)
			if err != nil {
				return err
			}
			if err := macperm.Reset(cmd.Context(), kinds...); err != nil {
				return err
			}
			c.logger.Info("permissions reset", "permissions", kinds)
			fmt.Fprintln(cmd.OutOrStdout(), "reset complete")
			return nil
		},
	}
}
