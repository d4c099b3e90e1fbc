// Package rename executes a batch renumbering run as a two-phase move:
// every matched file first moves to a staging name derived from its
// original basename, then every staged file moves to its final name.
// The staging hop means no rename can collide with a not-yet-processed
// original, whatever the processing order.
package rename

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/nsedgwick/renum/internal/event"
	"github.com/nsedgwick/renum/internal/name"
	"github.com/nsedgwick/renum/internal/plan"
	"github.com/nsedgwick/renum/internal/stats"
)

// Shifted integers are bounded to 32-bit signed range; an entry whose
// shifted value falls outside is skipped, not fatal.
const (
	MinInteger = math.MinInt32
	MaxInteger = math.MaxInt32
)

// DefaultStagePrefix is prepended to the original basename to form the
// staging name. The leading dot keeps staged files out of a re-run's
// typical glob; a source tree that already uses the prefix is an
// accepted limitation.
const DefaultStagePrefix = ".renum-tmp-"

// ErrTargetExists reports a phase-2 collision with a file that is not
// part of this run.
var ErrTargetExists = errors.New("target already exists")

// RangeError reports a shifted integer outside the 32-bit bounds.
type RangeError struct {
	Path    string
	Shifted int64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: shifted integer %d out of range [%d, %d]",
		e.Path, e.Shifted, int64(MinInteger), int64(MaxInteger))
}

// Config describes a rename run.
type Config struct {
	Fs          afero.Fs
	Pattern     string
	Shift       int64
	StagePrefix string // defaults to DefaultStagePrefix
	DryRun      bool
	Events      chan<- event.Event
	Stats       *stats.Collector
}

// Result is the outcome of a rename run. Per-entry failures are
// reported through events and counters only; Err is set for errors
// that abort the run before any filesystem mutation.
type Result struct {
	Stats stats.Snapshot
	Err   error
}

// mapping records one staged file awaiting its final move. The slice
// of mappings is owned by Run and passed between the phases; there is
// no shared state.
type mapping struct {
	origPath  string
	stagePath string
	finalPath string
	number    int64
	shifted   int64
}

// Run executes a rename run, blocking until both phases complete.
func Run(ctx context.Context, cfg Config) Result {
	if cfg.Fs == nil {
		cfg.Fs = afero.NewOsFs()
	}
	if cfg.StagePrefix == "" {
		cfg.StagePrefix = DefaultStagePrefix
	}
	if cfg.Stats == nil {
		cfg.Stats = stats.NewCollector()
	}

	entries, err := plan.Match(cfg.Fs, cfg.Pattern)
	if err != nil {
		return Result{Stats: cfg.Stats.Snapshot(), Err: err}
	}

	cfg.Stats.SetTotals(int64(len(entries)))
	emit(cfg, event.Event{Type: event.ScanComplete, Total: int64(len(entries))})

	ordered := plan.Build(entries, cfg.Shift)

	staged, err := stagePhase(ctx, cfg, ordered)
	if err != nil {
		return Result{Stats: cfg.Stats.Snapshot(), Err: err}
	}

	if err := finalizePhase(ctx, cfg, staged); err != nil {
		return Result{Stats: cfg.Stats.Snapshot(), Err: err}
	}

	return Result{Stats: cfg.Stats.Snapshot()}
}

// stagePhase moves every plan entry to its staging name and returns
// the staging→final mappings for phase 2. Overflow and filesystem
// failures drop the entry and continue; only context cancellation
// aborts the phase.
func stagePhase(ctx context.Context, cfg Config, ordered []plan.Entry) ([]mapping, error) {
	emit(cfg, event.Event{Type: event.PhaseStarted, Phase: 1})

	staged := make([]mapping, 0, len(ordered))
	for _, e := range ordered {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		shifted := e.Parts.Number + cfg.Shift
		if shifted < MinInteger || shifted > MaxInteger {
			rerr := &RangeError{Path: e.Path, Shifted: shifted}
			cfg.Stats.AddSkipped(1)
			cfg.Stats.DropEntry()
			emit(cfg, event.Event{
				Type: event.FileSkipped, Path: e.Path, Phase: 1,
				Number: e.Parts.Number, Shifted: shifted, Error: rerr,
			})
			continue
		}

		m := mapping{
			origPath:  e.Path,
			stagePath: filepath.Join(e.Dir, cfg.StagePrefix+e.Base),
			finalPath: filepath.Join(e.Dir, name.Join(e.Parts.Stem, shifted, e.Parts.Ext)),
			number:    e.Parts.Number,
			shifted:   shifted,
		}

		if cfg.DryRun {
			staged = append(staged, m)
			cfg.Stats.AddStaged(1)
			cfg.Stats.AddMovesDone(1)
			emit(cfg, event.Event{
				Type: event.DryRunMove, Path: m.origPath, Target: m.finalPath,
				Phase: 1, Number: m.number, Shifted: m.shifted,
			})
			continue
		}

		if err := cfg.Fs.Rename(m.origPath, m.stagePath); err != nil {
			cfg.Stats.AddFailed(1)
			cfg.Stats.DropEntry()
			emit(cfg, event.Event{
				Type: event.FileFailed, Path: m.origPath, Target: m.stagePath,
				Phase: 1, Error: fmt.Errorf("stage: %w", err),
			})
			continue
		}

		staged = append(staged, m)
		cfg.Stats.AddStaged(1)
		cfg.Stats.AddMovesDone(1)
		emit(cfg, event.Event{
			Type: event.FileStaged, Path: m.origPath, Target: m.finalPath,
			Phase: 1, Number: m.number, Shifted: m.shifted,
		})
	}
	return staged, nil
}

// finalizePhase moves staged files to their final names. Phase 1
// resolved all aliasing between this run's sources and targets, so
// any file already sitting at a final path is foreign: the entry fails
// and its staged file is left in place for manual recovery.
func finalizePhase(ctx context.Context, cfg Config, staged []mapping) error {
	emit(cfg, event.Event{Type: event.PhaseStarted, Phase: 2})

	for _, m := range staged {
		if err := ctx.Err(); err != nil {
			return err
		}

		if cfg.DryRun {
			cfg.Stats.AddRenamed(1)
			cfg.Stats.AddMovesDone(1)
			emit(cfg, event.Event{
				Type: event.DryRunMove, Path: m.origPath, Target: m.finalPath,
				Phase: 2, Number: m.number, Shifted: m.shifted,
			})
			continue
		}

		if exists, _ := afero.Exists(cfg.Fs, m.finalPath); exists {
			cfg.Stats.AddFailed(1)
			cfg.Stats.AddMovesDone(1)
			emit(cfg, event.Event{
				Type: event.FileFailed, Path: m.origPath, Target: m.finalPath,
				Phase: 2, Error: fmt.Errorf("%s: %w", m.finalPath, ErrTargetExists),
			})
			continue
		}

		if err := cfg.Fs.Rename(m.stagePath, m.finalPath); err != nil {
			cfg.Stats.AddFailed(1)
			cfg.Stats.AddMovesDone(1)
			emit(cfg, event.Event{
				Type: event.FileFailed, Path: m.origPath, Target: m.finalPath,
				Phase: 2, Error: fmt.Errorf("finalize: %w", err),
			})
			continue
		}

		cfg.Stats.AddRenamed(1)
		cfg.Stats.AddMovesDone(1)
		emit(cfg, event.Event{
			Type: event.FileRenamed, Path: m.origPath, Target: m.finalPath,
			Phase: 2, Number: m.number, Shifted: m.shifted,
		})
	}
	return nil
}

func emit(cfg Config, ev event.Event) {
	if cfg.Events == nil {
		return
	}
	ev.Timestamp = time.Now()
	cfg.Events <- ev
}
