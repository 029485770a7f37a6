// Package tcc resets privacy permission decisions with tccutil.
package tcc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// All resets every service for a client.
const All = "All"

// Runner executes a command and returns its combined output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs commands with os/exec.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Resetter runs tccutil reset for a client.
type Resetter struct {
	Run    Runner       // defaults to ExecRunner
	Logger *slog.Logger // defaults to slog.Default()
}

func (r *Resetter) runner() Runner {
	if r.Run != nil {
		return r.Run
	}
	return ExecRunner
}

func (r *Resetter) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

// Reset resets the given tccutil services (for example "Accessibility")
// for client, a bundle ID or executable path. With no services, every
// service is reset. Failures for individual services do not stop the
// remaining resets; they are joined into the returned error.
func (r *Resetter) Reset(ctx context.Context, client string, services ...string) error {
	if client == "" {
		return fmt.Errorf("client cannot be empty")
	}
	if len(services) == 0 {
		services = []string{All}
	}

	var errs []error
	for _, service := range services {
		out, err := r.runner()(ctx, "tccutil", "reset", service, client)
		output := strings.TrimSpace(string(out))
		if err != nil {
			r.logger().Debug("tccutil reset failed", "service", service, "client", client, "output", output, "error", err)
			if output != "" {
				err = fmt.Errorf("%w: %s", err, output)
			}
			errs = append(errs, fmt.Errorf("reset %s: %w", service, err))
			continue
		}
		r.logger().Debug("tccutil reset", "service", service, "client", client, "output", output)
	}
	return errors.Join(errs...)
}

// Reset resets services for client with the default Resetter.
func Reset(ctx context.Context, client string, services ...string) error {
	var r Resetter
	return r.Reset(ctx, client, services...)
}
