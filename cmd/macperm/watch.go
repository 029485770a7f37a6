package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/tmc/macperm"
	"github.com/tmc/macperm/internal/config"
	"github.com/tmc/macperm/termpanel"
)

func (c *cli) newWatchCmd() *cobra.Command {
	var (
		flags    watchFlags
		noReload bool
	)
	cmd := &cobra.Command{
		Use:   "watch [permission...]",
		Short: "Show a permission panel until permissions are granted",
		Long: `Monitor permissions and show a panel while any is missing.

With --interval 0 the command exits once everything is granted. With a
positive interval it keeps checking, and shows the panel only after
--threshold consecutive failed checks. Editing the --config file restarts
monitoring with the new permissions and interval. Flags given on the
command line keep precedence over the reloaded file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.changed = cmd.Flags().Changed
			cfg := *c.cfg
			if err := flags.apply(&cfg); err != nil {
				return err
			}
			reqs, err := c.requests(args)
			if err != nil {
				return err
			}
			oracle, err := c.newOracle()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			ctx, cancel := context.WithCancel(ctx)
			defer cancel()

			var current atomic.Int64
			current.Store(int64(cfg.Interval))
			var skipped atomic.Bool

			var factory macperm.PanelFactory = macperm.LogPanels{Logger: c.logger}
			if !c.headless && isatty.IsTerminal(os.Stdout.Fd()) {
				factory = termpanel.Factory{Logger: c.logger}
			}

			opts := []macperm.Option{
				macperm.WithOracle(oracle),
				macperm.WithPanelFactory(factory),
				macperm.WithOpener(c.opener),
				macperm.WithLogger(c.logger),
				macperm.WithTutorialLink(cfg.TutorialLink),
				macperm.WithFailureThreshold(cfg.Threshold),
				macperm.OnAllGranted(func() {
					c.logger.Info("all permissions granted")
					if current.Load() <= 0 {
						cancel()
					}
				}),
				macperm.OnSkip(func() {
					c.logger.Warn("permission setup skipped")
					skipped.Store(true)
					cancel()
				}),
			}
			if cfg.AppName != "" {
				opts = append(opts, macperm.WithAppName(cfg.AppName))
			}
			if cfg.Interval <= 0 && macperm.AllGranted(macperm.Evaluate(oracle, reqs)) {
				c.logger.Info("all permissions granted")
				return nil
			}
			m := macperm.NewManager(opts...)
			m.Monitor(reqs, cfg.Interval)

			if c.configPath != "" && !noReload && len(args) == 0 {
				loader := config.NewLoader(c.configPath)
				if _, err := loader.Load(); err != nil {
					return err
				}
				loader.OnChange(func(next *config.Config) {
					if err := flags.apply(next); err != nil {
						c.logger.Warn("ignoring config change", "error", err)
						return
					}
					reqs, err := next.Requests()
					if err != nil {
						c.logger.Warn("ignoring config change", "error", err)
						return
					}
					c.logger.Info("config changed, restarting monitor", "permissions", len(reqs), "interval", next.Interval)
					current.Store(int64(next.Interval))
					if next.Interval <= 0 && macperm.AllGranted(macperm.Evaluate(oracle, reqs)) {
						c.logger.Info("all permissions granted")
						m.Stop()
						cancel()
						return
					}
					m.Monitor(reqs, next.Interval)
				})
				if err := loader.Watch(); err != nil {
					return err
				}
				defer loader.Close()
				go func() {
					for {
						select {
						case <-ctx.Done():
							return
						case err := <-loader.Errors():
							c.logger.Warn("config reload failed", "error", err)
						}
					}
				}()
			}

			err = m.Run(ctx)
			switch {
			case errors.Is(err, macperm.ErrQuit):
				return err
			case errors.Is(err, context.Canceled):
				if skipped.Load() {
					fmt.Fprintln(cmd.ErrOrStderr(), "permission setup skipped")
					return errMissing
				}
				return nil
			}
			return err
		},
	}
	cmd.Flags().IntVarP(&flags.interval, "interval", "i", 0, "seconds between checks; 0 checks every second and exits when granted")
	cmd.Flags().IntVar(&flags.threshold, "threshold", config.DefaultThreshold, "failed checks before the panel is shown (interval mode)")
	cmd.Flags().StringVar(&flags.tutorial, "tutorial", "", "URL of a how-to-grant tutorial")
	cmd.Flags().StringVar(&flags.appName, "app-name", "", "application name shown in the panel")
	cmd.Flags().BoolVar(&c.headless, "headless", false, "log missing permissions instead of drawing a panel")
	cmd.Flags().BoolVar(&noReload, "no-reload", false, "do not watch the config file for changes")
	return cmd
}

// watchFlags holds the watch flags that override the config file. They are
// applied again to every reloaded config.
type watchFlags struct {
	interval  int
	threshold int
	tutorial  string
	appName   string
	changed   func(name string) bool
}

func (f *watchFlags) apply(cfg *config.Config) error {
	if f.changed == nil {
		return nil
	}
	if f.changed("interval") {
		cfg.Interval = f.interval
	}
	if f.changed("threshold") {
		cfg.Threshold = f.threshold
	}
	if f.changed("tutorial") {
		cfg.TutorialLink = f.tutorial
	}
	if f.changed("app-name") {
		cfg.AppName = f.appName
	}
	return cfg.Validate()
}
