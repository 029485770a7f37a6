package main

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tmc/macperm"
	"github.com/tmc/macperm/internal/system"
	"github.com/tmc/macperm/tccdb"
)

type statusJSON struct {
	Permission  macperm.Kind `json:"permission"`
	Granted     bool         `json:"granted"`
	Service     string       `json:"service"`
	Recorded    string       `json:"recorded,omitempty"`
	Description string       `json:"description,omitempty"`
}

// recordedAuth reads the decisions the system TCC database holds for this
// program. It fails without Full Disk Access.
func recordedAuth(ctx context.Context, kinds []macperm.Kind) (map[macperm.Kind]tccdb.Auth, error) {
	client, err := system.ClientID()
	if err != nil {
		return nil, err
	}
	db, err := tccdb.Open(ctx, tccdb.SystemPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	recorded := make(map[macperm.Kind]tccdb.Auth, len(kinds))
	for _, k := range kinds {
		auth, err := db.Status(ctx, k.TCCService(), client)
		if err != nil {
			return nil, err
		}
		recorded[k] = auth
	}
	return recorded, nil
}

func (c *cli) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [permission...]",
		Short: "Report whether permissions are granted",
		Long: `Report whether the named permissions, or the configured ones, are granted.
Exits with status 2 when any permission is missing. With --json, each row
also carries the decision recorded in the TCC database when it is readable.

Permissions: accessibility, screen-capture, full-disk.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			reqs, err := c.requests(args)
			if err != nil {
				return err
			}
			oracle, err := c.newOracle()
			if err != nil {
				return err
			}
			statuses := macperm.Evaluate(oracle, reqs)

			out := cmd.OutOrStdout()
			if c.jsonOutput {
				kinds := make([]macperm.Kind, len(reqs))
				for i, r := range reqs {
					kinds[i] = r.Kind
				}
				recorded, err := c.recorded(cmd.Context(), kinds)
				if err != nil {
					c.logger.Debug("TCC database unavailable", "error", err)
				}

				rows := make([]statusJSON, len(statuses))
				for i, s := range statuses {
					rows[i] = statusJSON{
						Permission:  s.Request.Kind,
						Granted:     s.Granted,
						Service:     s.Request.Kind.TCCService(),
						Description: s.Request.Description,
					}
					if auth, ok := recorded[s.Request.Kind]; ok {
						rows[i].Recorded = auth.String()
					}
				}
				data, err := json.MarshalIndent(rows, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal statuses: %w", err)
				}
				fmt.Fprintln(out, string(data))
			} else {
				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "PERMISSION\tGRANTED\tSERVICE")
				for _, s := range statuses {
					fmt.Fprintf(w, "%s\t%s\t%s\n", s.Request.Kind, yesNo(s.Granted), s.Request.Kind.TCCService())
				}
				w.Flush()
			}

			c.logger.Debug("checked permissions", "missing", macperm.Missing(statuses))
			if !macperm.AllGranted(statuses) {
				return errMissing
			}
			return nil
		},
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
