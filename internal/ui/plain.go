package ui

import (
	"fmt"
	"io"

	"github.com/nsedgwick/renum/internal/stats"
)

// plainPresenter outputs one line per finalized rename to stdout. In
// verbose mode it also narrates staging and phase transitions, which
// is the mode scripts and logs want — no cursor movement, no bar.
type plainPresenter struct {
	w       io.Writer
	errW    io.Writer
	stats   *stats.Collector
	verbose bool
}

func (p *plainPresenter) Run(events <-chan Event) error {
	for ev := range events {
		p.handleEvent(ev)
	}
	return nil
}

func (p *plainPresenter) handleEvent(ev Event) {
	switch ev.Type {
	case ScanComplete:
		if p.verbose {
			fmt.Fprintf(p.w, "matched %s files\n", FormatCount(ev.Total))
		}
	case PhaseStarted:
		if p.verbose {
			fmt.Fprintf(p.w, "phase %d: %s\n", ev.Phase, phaseName(ev.Phase))
		}
	case FileStaged:
		if p.verbose {
			fmt.Fprintf(p.w, "processing %s (%d -> %d)\n", ev.Path, ev.Number, ev.Shifted)
		}
	case FileRenamed:
		fmt.Fprintf(p.w, "%s -> %s\n", ev.Path, ev.Target)
	case DryRunMove:
		if ev.Phase == 2 {
			fmt.Fprintf(p.w, "%s -> %s (dry run)\n", ev.Path, ev.Target)
		} else if p.verbose {
			fmt.Fprintf(p.w, "processing %s (%d -> %d) (dry run)\n", ev.Path, ev.Number, ev.Shifted)
		}
	case FileSkipped:
		fmt.Fprintf(p.errW, "skipped: %v\n", ev.Error)
	case FileFailed:
		fmt.Fprintf(p.errW, "failed: %s: %v\n", ev.Path, ev.Error)
	}
}

func (p *plainPresenter) Summary() string {
	return CompletionSummary(p.stats.Snapshot())
}

func phaseName(phase int) string {
	if phase == 1 {
		return "staging"
	}
	return "finalizing"
}
