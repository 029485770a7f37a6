// Command macperm checks and monitors macOS privacy permissions.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/tmc/macperm"
	"github.com/tmc/macperm/internal/config"
	"github.com/tmc/macperm/internal/logging"
	"github.com/tmc/macperm/internal/system"
	"github.com/tmc/macperm/tccdb"
)

// errMissing makes the process exit with status 2 after the command has
// already reported which permissions are missing.
var errMissing = errors.New("permissions missing")

type cli struct {
	configPath string
	logLevel   string
	logFile    string
	jsonOutput bool
	headless   bool

	cfg    *config.Config
	logger *slog.Logger

	newOracle func() (macperm.Oracle, error)
	opener    macperm.Opener
	recorded  func(ctx context.Context, kinds []macperm.Kind) (map[macperm.Kind]tccdb.Auth, error)
}

func newCLI() *cli {
	return &cli{
		newOracle: func() (macperm.Oracle, error) {
			o, err := macperm.NewSystemOracle()
			if err != nil {
				return nil, err
			}
			return o, nil
		},
		opener:   macperm.SystemOpener{},
		recorded: recordedAuth,
		logger:   slog.New(slog.DiscardHandler),
	}
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "macperm",
		Short:         "Check and monitor macOS privacy permissions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Log.Level = c.logLevel
			}
			if cmd.Flags().Changed("log-file") {
				cfg.Log.File = c.logFile
			}
			c.cfg = cfg

			tui := cmd.Name() == "watch" && !c.headless && isatty.IsTerminal(os.Stdout.Fd())
			logger, err := logging.SetupLogger(cfg.Log.File, cfg.Log.Level, tui)
			if err != nil {
				return err
			}
			c.logger = logger
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return logging.CloseFile()
		},
	}

	root.Long = `Check and monitor macOS privacy permissions: Accessibility, Screen
Recording and Full Disk Access.

Environment:
  ` + strings.Join(system.AllEnvVars(), "\n  ")

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (YAML or TOML)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&c.logFile, "log-file", "", "also write logs to this file, rotated")
	root.PersistentFlags().BoolVar(&c.jsonOutput, "json", false, "output as JSON")

	root.AddCommand(
		c.newCheckCmd(),
		c.newWatchCmd(),
		c.newOpenCmd(),
		c.newPromptCmd(),
		c.newResetCmd(),
		c.newTCCCmd(),
	)
	return root
}

// requests returns the permissions named on the command line, or the
// configured ones when none are named.
func (c *cli) requests(args []string) ([]macperm.Request, error) {
	if len(args) == 0 {
		return c.cfg.Requests()
	}
	kinds, err := parseKinds(args)
	if err != nil {
		return nil, err
	}
	reqs := make([]macperm.Request, len(kinds))
	for i, k := range kinds {
		reqs[i] = macperm.NewRequest(k, "")
	}
	return reqs, nil
}

func parseKinds(args []string) ([]macperm.Kind, error) {
	kinds := make([]macperm.Kind, 0, len(args))
	for _, a := range args {
		k, err := macperm.ParseKind(a)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errMissing):
		return 2
	default:
		return 1
	}
}

func main() {
	err := newRootCmd(newCLI()).Execute()
	if err != nil && !errors.Is(err, errMissing) && !errors.Is(err, macperm.ErrQuit) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(exitCode(err))
}
