package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/nsedgwick/renum/internal/stats"
)

// ANSI escape sequences.
const (
	ansiDim   = "\033[2m"
	ansiReset = "\033[0m"
)

// hudPresenter provides a rich TTY display with a scrolling feed of
// renamed files and a 2-line HUD that redraws in place.
type hudPresenter struct {
	w     io.Writer
	stats *stats.Collector

	// Internal state.
	hudDrawn     bool
	hudLineCount int // actual number of lines in the last HUD draw
	lastHUDDraw  time.Time
}

const (
	sparklineWidth   = 20
	progressBarWidth = 20
	hudMinInterval   = 50 * time.Millisecond // don't redraw faster than this
)

func (p *hudPresenter) Run(events <-chan Event) error {
	// Fire first tick quickly to seed the ring buffer with initial rate
	// data, then switch to 1s interval.
	secTicker := time.NewTicker(250 * time.Millisecond)
	defer secTicker.Stop()
	firstTickDone := false

	// Redraw ticker for when no events are flowing.
	redrawTicker := time.NewTicker(100 * time.Millisecond)
	defer redrawTicker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				p.clearHUD()
				return nil
			}
			p.handleEvent(ev)
			p.maybeDrawHUD()

		case <-redrawTicker.C:
			p.drawHUD()

		case <-secTicker.C:
			p.stats.Tick()
			if !firstTickDone {
				firstTickDone = true
				secTicker.Reset(1 * time.Second)
			}
		}
	}
}

func (p *hudPresenter) handleEvent(ev Event) {
	switch ev.Type {
	case FileRenamed:
		p.clearHUD()
		fmt.Fprintf(p.w, "✓  %s %s->%s %s\n", ev.Path, ansiDim, ansiReset, ev.Target)
		p.drawHUD()

	case DryRunMove:
		if ev.Phase != 2 {
			return
		}
		p.clearHUD()
		fmt.Fprintf(p.w, "✓  %s %s->%s %s  %s(dry run)%s\n",
			ev.Path, ansiDim, ansiReset, ev.Target, ansiDim, ansiReset)
		p.drawHUD()

	case FileSkipped:
		p.clearHUD()
		fmt.Fprintf(p.w, "–  %sskipped%s  %v\n", ansiDim, ansiReset, ev.Error)
		p.drawHUD()

	case FileFailed:
		p.clearHUD()
		fmt.Fprintf(p.w, "✗  %s  %v\n", ev.Path, ev.Error)
		p.drawHUD()
	}
}

// maybeDrawHUD redraws the HUD if enough time has passed since the last draw.
func (p *hudPresenter) maybeDrawHUD() {
	now := time.Now()
	if now.Sub(p.lastHUDDraw) < hudMinInterval {
		return
	}
	p.drawHUD()
}

func (p *hudPresenter) drawHUD() {
	snap := p.stats.Snapshot()

	// Clear previous HUD if drawn.
	p.clearHUD()

	pct := snap.Percent()
	rate := p.stats.RollingMovesPerSec(10)
	eta := p.stats.ETA()

	lines := 0

	// Line 1: rate sparkline + moves.
	spark := Sparkline(p.stats.SparklineData(sparklineWidth), sparklineWidth)
	fmt.Fprintf(p.w, "       %s   %s   %s / %s moves\n",
		spark, FormatRate(rate),
		FormatCount(snap.MovesDone), FormatCount(snap.MovesTotal))
	lines++

	// Line 2: progress bar (▪/□) + files + eta.
	bar := ProgressBar(pct, progressBarWidth)
	fmt.Fprintf(p.w, " %3.0f%%  %s   %s / %s files   eta %s\n",
		pct*100, bar,
		FormatCount(snap.FilesRenamed), FormatCount(snap.FilesMatched),
		FormatETA(eta))
	lines++

	p.hudDrawn = true
	p.hudLineCount = lines
	p.lastHUDDraw = time.Now()
}

func (p *hudPresenter) clearHUD() {
	if !p.hudDrawn {
		return
	}
	lines := p.hudLineCount
	if lines == 0 {
		lines = 2 // fallback
	}
	// Move cursor up N lines and clear to end of screen.
	fmt.Fprintf(p.w, "\033[%dA\033[J", lines)
	p.hudDrawn = false
}

func (p *hudPresenter) Summary() string {
	return CompletionSummary(p.stats.Snapshot())
}
