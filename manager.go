package macperm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	nanoid "github.com/matoous/go-nanoid/v2"

	"github.com/tmc/macperm/internal/system"
)

// DefaultFailureThreshold is the number of consecutive failed interval
// checks before the panel is shown.
const DefaultFailureThreshold = 3

const sessionAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Ticker delivers the Manager's one-second ticks.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type timeTicker struct{ t *time.Ticker }

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

func newSecondTicker() Ticker { return timeTicker{time.NewTicker(time.Second)} }

// Manager watches a set of permission requests and keeps a panel on screen
// while any of them is missing.
//
// All state changes happen on the goroutine executing Run. The exported
// methods only queue work for it, so they are safe to call from any
// goroutine, including panel and callback code, and never block.
type Manager struct {
	oracle       Oracle
	factory      PanelFactory
	opener       Opener
	logger       *slog.Logger
	appName      string
	tutorialLink string
	threshold    int
	onAllGranted func()
	onSkip       func()
	onQuit       func()
	newTicker    func() Ticker
	err          error

	mu    sync.Mutex
	queue []func()
	wake  chan struct{}

	running      atomic.Bool
	skipped      atomic.Bool
	panelVisible atomic.Bool

	// Owned by the Run goroutine.
	requests []Request
	interval int
	elapsed  int
	failures int
	panel    Panel
	ticker   Ticker
	session  string
	quit     bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithOracle replaces the system permission checks.
func WithOracle(o Oracle) Option {
	return func(m *Manager) { m.oracle = o }
}

// WithPanelFactory sets how panels are presented. The default logs missing
// permissions instead of showing anything.
func WithPanelFactory(f PanelFactory) Option {
	return func(m *Manager) { m.factory = f }
}

// WithOpener replaces the System Settings and browser launcher.
func WithOpener(o Opener) Option {
	return func(m *Manager) { m.opener = o }
}

// WithLogger sets the logger for monitoring decisions.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithAppName sets the application name shown in panels.
func WithAppName(name string) Option {
	return func(m *Manager) { m.appName = name }
}

// WithTutorialLink sets the URL behind the panel's tutorial button.
func WithTutorialLink(link string) Option {
	return func(m *Manager) { m.tutorialLink = link }
}

// WithFailureThreshold sets how many consecutive failed interval checks
// are needed before the panel is shown. Values below 1 are ignored.
func WithFailureThreshold(n int) Option {
	return func(m *Manager) {
		if n >= 1 {
			m.threshold = n
		}
	}
}

// OnAllGranted sets the callback run when a check finds every requested
// permission granted while the panel is shown. The panel is already closed
// when it runs. Checks that pass before any panel appeared do not run it.
func OnAllGranted(fn func()) Option {
	return func(m *Manager) { m.onAllGranted = fn }
}

// OnSkip sets the callback run after the user skips authorization.
func OnSkip(fn func()) Option {
	return func(m *Manager) { m.onSkip = fn }
}

// OnQuit sets the callback run when the user chooses to quit. Without one,
// Run returns ErrQuit.
func OnQuit(fn func()) Option {
	return func(m *Manager) { m.onQuit = fn }
}

func withTicker(fn func() Ticker) Option {
	return func(m *Manager) { m.newTicker = fn }
}

// NewManager returns a Manager. Monitoring starts with Monitor and runs
// while Run is executing.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		threshold: DefaultFailureThreshold,
		newTicker: newSecondTicker,
		wake:      make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = defaultLogger()
	}
	if m.appName == "" {
		m.appName = system.AppName()
	}
	if m.factory == nil {
		m.factory = LogPanels{Logger: m.logger}
	}
	if m.opener == nil {
		m.opener = SystemOpener{}
	}
	if m.oracle == nil {
		o, err := NewSystemOracle()
		if err != nil {
			m.err = err
		} else {
			m.oracle = o
		}
	}
	return m
}

var defaultManager = sync.OnceValue(func() *Manager { return NewManager() })

// Default returns the process-wide Manager.
func Default() *Manager { return defaultManager() }

// Run executes monitoring until ctx is cancelled or the user quits without
// an OnQuit handler, in which case it returns ErrQuit. Any visible panel is
// closed before Run returns.
func (m *Manager) Run(ctx context.Context) error {
	if m.err != nil {
		return m.err
	}
	if !m.running.CompareAndSwap(false, true) {
		return errors.New("macperm: manager is already running")
	}
	defer m.running.Store(false)

	for {
		var tick <-chan time.Time
		if m.ticker != nil {
			tick = m.ticker.C()
		}

		select {
		case <-ctx.Done():
			m.halt()
			return ctx.Err()
		case <-m.wake:
			m.drain()
		case <-tick:
			m.tick()
		}

		if m.quit {
			m.quit = false
			return ErrQuit
		}
	}
}

func (m *Manager) post(fn func()) {
	m.mu.Lock()
	m.queue = append(m.queue, fn)
	m.mu.Unlock()
	select {
	case m.wake <- struct{}{}:
	default:
	}
}

func (m *Manager) drain() {
	m.mu.Lock()
	queue := m.queue
	m.queue = nil
	m.mu.Unlock()
	for _, fn := range queue {
		fn()
	}
}

// Monitor starts a new monitoring session for requests. An interval of zero
// or less checks every second; a positive interval checks every interval
// seconds and shows the panel only after consecutive failures. Any earlier
// session, and its panel, is replaced.
func (m *Manager) Monitor(requests []Request, intervalSeconds int) {
	requests = slices.Clone(requests)
	m.skipped.Store(false)
	m.post(func() { m.start(requests, intervalSeconds) })
}

func (m *Manager) start(requests []Request, interval int) {
	m.halt()

	id, err := nanoid.Generate(sessionAlphabet, 8)
	if err != nil {
		id = fmt.Sprintf("s%d", time.Now().UnixNano())
	}
	m.session = id
	m.requests = requests
	m.interval = interval
	m.elapsed = 0
	m.failures = 0
	m.skipped.Store(false)
	m.ticker = m.newTicker()

	m.logger.Debug("monitor started", "session", m.session, "requests", len(requests), "interval", interval)
}

// Skip abandons the current session: the panel closes, checking stops and
// Skipped reports true until the next Monitor call.
func (m *Manager) Skip() { m.post(m.skip) }

// Quit closes the panel, stops checking and runs the OnQuit callback.
func (m *Manager) Quit() { m.post(m.doQuit) }

// Stop ends monitoring and closes any panel without running callbacks.
func (m *Manager) Stop() { m.post(m.halt) }

// Authorize opens System Settings at the pane for k.
func (m *Manager) Authorize(k Kind) { m.post(func() { m.authorize(k) }) }

// OpenTutorial opens the tutorial link, if one is set.
func (m *Manager) OpenTutorial() { m.post(m.openTutorial) }

func (m *Manager) authorize(k Kind) {
	if err := m.opener.OpenSettings(k); err != nil {
		m.logger.Warn("open settings failed", "session", m.session, "permission", k, "error", err)
	}
}

func (m *Manager) openTutorial() {
	if m.tutorialLink == "" {
		return
	}
	if err := m.opener.OpenURL(m.tutorialLink); err != nil {
		m.logger.Warn("open tutorial failed", "session", m.session, "link", m.tutorialLink, "error", err)
	}
}

// Skipped reports whether the user skipped the current session. Monitor
// clears it before returning.
func (m *Manager) Skipped() bool { return m.skipped.Load() }

// PanelVisible reports whether a panel is currently shown.
func (m *Manager) PanelVisible() bool { return m.panelVisible.Load() }

func (m *Manager) tick() {
	if m.interval <= 0 {
		statuses := m.evaluate()
		if AllGranted(statuses) {
			m.stopTicker()
			if m.panel != nil {
				m.pass()
			}
			return
		}
		m.show(statuses)
		return
	}

	m.elapsed++
	if m.elapsed >= m.interval {
		m.elapsed = 0
		statuses := m.evaluate()
		if AllGranted(statuses) {
			m.failures = 0
			if m.panel != nil {
				m.pass()
			}
			return
		}
		m.failures++
		m.logger.Debug("permissions missing", "session", m.session, "failures", m.failures, "threshold", m.threshold)
		if m.failures >= m.threshold {
			m.show(statuses)
		}
		return
	}

	if m.panel != nil {
		statuses := m.evaluate()
		if AllGranted(statuses) {
			m.pass()
			return
		}
		m.panel.Refresh(statuses)
	}
}

func (m *Manager) evaluate() []Status {
	return Evaluate(m.oracle, m.requests)
}

// show presents the panel, or refreshes the one already visible, and
// brings it to the front.
func (m *Manager) show(statuses []Status) {
	if m.panel == nil {
		m.present(statuses)
	} else {
		m.panel.Refresh(statuses)
	}
	if m.panel != nil {
		m.panel.Front()
	}
}

func (m *Manager) present(statuses []Status) {
	p, err := m.factory.OpenPanel(PanelConfig{
		Title:        fmt.Sprintf("%s permission settings", m.appName),
		Subtitle:     fmt.Sprintf("%s needs the following permissions to work properly", m.appName),
		AppName:      m.appName,
		TutorialLink: m.tutorialLink,
		Statuses:     statuses,
		Actions:      sessionActions{m: m, session: m.session},
	})
	if err != nil {
		m.logger.Warn("open permission panel failed", "session", m.session, "error", err)
		return
	}
	m.panel = p
	m.panelVisible.Store(true)
	m.logger.Debug("panel shown", "session", m.session, "missing", Missing(statuses))
}

func (m *Manager) closePanel() {
	if m.panel == nil {
		return
	}
	p := m.panel
	m.panel = nil
	m.panelVisible.Store(false)
	p.Close()
}

func (m *Manager) stopTicker() {
	if m.ticker == nil {
		return
	}
	m.ticker.Stop()
	m.ticker = nil
}

func (m *Manager) pass() {
	m.closePanel()
	m.failures = 0
	m.logger.Debug("all permissions granted", "session", m.session)
	if m.onAllGranted != nil {
		m.onAllGranted()
	}
}

func (m *Manager) skip() {
	m.closePanel()
	m.stopTicker()
	m.skipped.Store(true)
	m.logger.Debug("authorization skipped", "session", m.session)
	if m.onSkip != nil {
		m.onSkip()
	}
}

func (m *Manager) doQuit() {
	m.closePanel()
	m.stopTicker()
	m.logger.Debug("quit requested", "session", m.session)
	if m.onQuit != nil {
		m.onQuit()
		return
	}
	m.quit = true
}

func (m *Manager) halt() {
	m.stopTicker()
	m.closePanel()
}

// sessionActions ties panel buttons to the session that opened the panel.
// Presses arriving after a new Monitor call are dropped.
type sessionActions struct {
	m       *Manager
	session string
}

func (a sessionActions) do(fn func()) {
	a.m.post(func() {
		if a.m.session != a.session {
			a.m.logger.Debug("dropping stale panel action", "session", a.session)
			return
		}
		fn()
	})
}

func (a sessionActions) Authorize(k Kind) { a.do(func() { a.m.authorize(k) }) }
func (a sessionActions) OpenTutorial()    { a.do(a.m.openTutorial) }
func (a sessionActions) Skip()            { a.do(a.m.skip) }
func (a sessionActions) Quit()            { a.do(a.m.doQuit) }
