package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nsedgwick/renum/internal/config"
	"github.com/nsedgwick/renum/internal/event"
	"github.com/nsedgwick/renum/internal/stats"
	"github.com/nsedgwick/renum/internal/ui"
)

// Config configures the TUI presenter.
type Config struct {
	Stats   *stats.Collector
	Pattern string
	Shift   int64
	Theme   config.ThemeConfig
}

// Presenter wraps a Bubble Tea program and implements ui.Presenter.
type Presenter struct {
	cfg Config
}

// NewPresenter creates a new TUI presenter.
func NewPresenter(cfg Config) *Presenter {
	ApplyTheme(cfg.Theme)
	return &Presenter{cfg: cfg}
}

// Run starts the Bubble Tea program and blocks until the user quits.
func (p *Presenter) Run(events <-chan event.Event) error {
	model := NewModel(events, p.cfg.Stats, p.cfg.Pattern, p.cfg.Shift)
	prog := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	)
	_, err := prog.Run()
	return err
}

// Summary returns the final completion summary line.
func (p *Presenter) Summary() string {
	return ui.CompletionSummary(p.cfg.Stats.Snapshot())
}
