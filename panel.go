package macperm

import (
	"log/slog"
	"slices"
)

// Panel is a visible permission panel. The Manager calls its methods from
// the goroutine running Manager.Run.
type Panel interface {
	// Refresh replaces the displayed per-permission state.
	Refresh(statuses []Status)
	// Front brings the panel to the user's attention.
	Front()
	// Close dismisses the panel. It returns once the panel is gone.
	Close()
}

// Actions are the buttons a panel offers. Calls never block and may come
// from any goroutine.
type Actions interface {
	Authorize(k Kind)
	OpenTutorial()
	Skip()
	Quit()
}

// PanelConfig describes a panel to present.
type PanelConfig struct {
	Title        string
	Subtitle     string
	AppName      string
	TutorialLink string // empty hides the tutorial button
	Statuses     []Status
	Actions      Actions
}

// PanelFactory presents new panels.
type PanelFactory interface {
	OpenPanel(cfg PanelConfig) (Panel, error)
}

// PanelFactoryFunc adapts a function to the PanelFactory interface.
type PanelFactoryFunc func(cfg PanelConfig) (Panel, error)

// OpenPanel calls f(cfg).
func (f PanelFactoryFunc) OpenPanel(cfg PanelConfig) (Panel, error) { return f(cfg) }

// LogPanels is a PanelFactory for headless hosts. Its panels write the
// missing permissions to a logger instead of drawing anything.
type LogPanels struct {
	Logger *slog.Logger
}

// OpenPanel implements PanelFactory.
func (f LogPanels) OpenPanel(cfg PanelConfig) (Panel, error) {
	logger := f.Logger
	if logger == nil {
		logger = slog.Default()
	}
	p := &logPanel{logger: logger}
	logger.Warn(cfg.Subtitle, "missing", Missing(cfg.Statuses))
	p.last = Missing(cfg.Statuses)
	return p, nil
}

type logPanel struct {
	logger *slog.Logger
	last   []Kind
}

func (p *logPanel) Refresh(statuses []Status) {
	missing := Missing(statuses)
	if slices.Equal(missing, p.last) {
		return
	}
	p.last = missing
	p.logger.Warn("permissions still missing", "missing", missing)
}

func (p *logPanel) Front() {}

func (p *logPanel) Close() {
	p.logger.Info("permission panel closed")
}
