// Package termpanel shows the macperm permission panel in a terminal.
package termpanel

import (
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tmc/macperm"
)

// Factory opens terminal panels. The zero value draws on the process's
// terminal.
type Factory struct {
	Input   io.Reader // defaults to stdin
	Output  io.Writer // defaults to stdout
	Logger  *slog.Logger
	Options []tea.ProgramOption
}

// OpenPanel implements macperm.PanelFactory. Each panel runs its own
// bubbletea program until Close.
func (f Factory) OpenPanel(cfg macperm.PanelConfig) (macperm.Panel, error) {
	opts := append([]tea.ProgramOption{tea.WithoutSignalHandler()}, f.Options...)
	if f.Input != nil {
		opts = append(opts, tea.WithInput(f.Input))
	}
	if f.Output != nil {
		opts = append(opts, tea.WithOutput(f.Output))
	}
	logger := f.Logger
	if logger == nil {
		logger = slog.Default()
	}

	p := &panel{
		prog: tea.NewProgram(newModel(cfg), opts...),
		done: make(chan struct{}),
	}
	go func() {
		defer close(p.done)
		if _, err := p.prog.Run(); err != nil {
			logger.Error("permission panel stopped", "error", err)
		}
	}()
	return p, nil
}

type panel struct {
	prog *tea.Program
	done chan struct{}
}

func (p *panel) Refresh(statuses []macperm.Status) {
	p.prog.Send(statusMsg(statuses))
}

func (p *panel) Front() {
	p.prog.Send(frontMsg{})
}

func (p *panel) Close() {
	p.prog.Quit()
	<-p.done
}
