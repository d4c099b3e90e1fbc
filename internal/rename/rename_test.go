package rename

import (
	"context"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nsedgwick/renum/internal/event"
	"github.com/nsedgwick/renum/internal/plan"
)

func newFs(t *testing.T, paths ...string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for _, p := range paths {
		require.NoError(t, afero.WriteFile(fs, p, []byte(p), 0o644))
	}
	return fs
}

// runCollect executes a run and returns the result plus every event it
// emitted.
func runCollect(t *testing.T, cfg Config) (Result, []event.Event) {
	t.Helper()

	events := make(chan event.Event, 64)
	cfg.Events = events

	var (
		got []event.Event
		wg  sync.WaitGroup
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		for ev := range events {
			got = append(got, ev)
		}
	}()

	result := Run(context.Background(), cfg)
	close(events)
	wg.Wait()
	return result, got
}

func names(t *testing.T, fs afero.Fs) []string {
	t.Helper()
	infos, err := afero.ReadDir(fs, ".")
	require.NoError(t, err)
	out := make([]string, 0, len(infos))
	for _, info := range infos {
		out = append(out, info.Name())
	}
	return out
}

func eventsOfType(events []event.Event, typ event.Type) []event.Event {
	var out []event.Event
	for _, ev := range events {
		if ev.Type == typ {
			out = append(out, ev)
		}
	}
	return out
}

func TestRunShiftUp(t *testing.T) {
	// Scenario A: file1..file3 shifted by 1 all land on occupied slots.
	fs := newFs(t, "file1.txt", "file2.txt", "file3.txt")

	result, _ := runCollect(t, Config{Fs: fs, Pattern: "file*.txt", Shift: 1})
	require.NoError(t, result.Err)

	assert.ElementsMatch(t, []string{"file2.txt", "file3.txt", "file4.txt"}, names(t, fs))
	assert.Equal(t, int64(3), result.Stats.FilesRenamed)
	assert.Zero(t, result.Stats.FilesFailed)

	// Contents moved with the names.
	data, err := afero.ReadFile(fs, "file2.txt")
	require.NoError(t, err)
	assert.Equal(t, "file1.txt", string(data))
}

func TestRunHyphenatedName(t *testing.T) {
	// Scenario B: the hyphen stays in the stem.
	fs := newFs(t, "item-5.log")

	result, _ := runCollect(t, Config{Fs: fs, Pattern: "item-*.log", Shift: 10})
	require.NoError(t, result.Err)
	assert.Equal(t, []string{"item-15.log"}, names(t, fs))
}

func TestRunShiftDown(t *testing.T) {
	// Scenario C.
	fs := newFs(t, "file2.txt")

	result, _ := runCollect(t, Config{Fs: fs, Pattern: "file*.txt", Shift: -1})
	require.NoError(t, result.Err)
	assert.Equal(t, []string{"file1.txt"}, names(t, fs))
}

func TestRunNoTrailingInteger(t *testing.T) {
	// Scenario D: missing integer extracts as 0.
	fs := newFs(t, "data.txt")

	result, _ := runCollect(t, Config{Fs: fs, Pattern: "data.txt", Shift: 5})
	require.NoError(t, result.Err)
	assert.Equal(t, []string{"data5.txt"}, names(t, fs))
}

func TestRunOverflowSkipsEntry(t *testing.T) {
	// Scenario E: max int32 + 1 overflows; the entry is skipped, the
	// original file untouched, and the run still succeeds.
	fs := newFs(t, "big2147483647.bin", "big1.bin")

	result, events := runCollect(t, Config{Fs: fs, Pattern: "big*.bin", Shift: 1})
	require.NoError(t, result.Err)

	assert.ElementsMatch(t, []string{"big2147483647.bin", "big2.bin"}, names(t, fs))
	assert.Equal(t, int64(1), result.Stats.FilesSkipped)
	assert.Equal(t, int64(1), result.Stats.FilesRenamed)

	skipped := eventsOfType(events, event.FileSkipped)
	require.Len(t, skipped, 1)
	var rerr *RangeError
	require.ErrorAs(t, skipped[0].Error, &rerr)
	assert.Equal(t, int64(2147483648), rerr.Shifted)
}

func TestRunUnderflowSkipsEntry(t *testing.T) {
	fs := newFs(t, "low0.bin")

	result, _ := runCollect(t, Config{Fs: fs, Pattern: "low*.bin", Shift: -2147483649})
	require.NoError(t, result.Err)
	assert.Equal(t, []string{"low0.bin"}, names(t, fs))
	assert.Equal(t, int64(1), result.Stats.FilesSkipped)
}

func TestRunMinIntegerIsInRange(t *testing.T) {
	// The bounds are a closed interval: landing exactly on MinInteger
	// must not be skipped.
	fs := newFs(t, "low0.bin")

	result, _ := runCollect(t, Config{Fs: fs, Pattern: "low*.bin", Shift: -2147483648})
	require.NoError(t, result.Err)
	assert.Equal(t, []string{"low-2147483648.bin"}, names(t, fs))
	assert.Equal(t, int64(1), result.Stats.FilesRenamed)
}

func TestRunNoMatch(t *testing.T) {
	// Scenario F: zero matches abort before any mutation.
	fs := newFs(t, "other.log")

	result, events := runCollect(t, Config{Fs: fs, Pattern: "file*.txt", Shift: 1})
	require.Error(t, result.Err)
	assert.ErrorIs(t, result.Err, plan.ErrNoMatch)
	assert.Equal(t, []string{"other.log"}, names(t, fs))
	assert.Empty(t, events)
}

func TestRunShiftZeroIsIdentity(t *testing.T) {
	fs := newFs(t, "file1.txt", "file2.txt", "item-5.log")

	result, _ := runCollect(t, Config{Fs: fs, Pattern: "*", Shift: 0})
	require.NoError(t, result.Err)
	assert.ElementsMatch(t, []string{"file1.txt", "file2.txt", "item-5.log"}, names(t, fs))
}

func TestRunInverseShiftRoundTrip(t *testing.T) {
	fs := newFs(t, "file3.txt", "file4.txt", "file5.txt")

	result, _ := runCollect(t, Config{Fs: fs, Pattern: "file*.txt", Shift: 7})
	require.NoError(t, result.Err)

	result, _ = runCollect(t, Config{Fs: fs, Pattern: "file*.txt", Shift: -7})
	require.NoError(t, result.Err)

	assert.ElementsMatch(t, []string{"file3.txt", "file4.txt", "file5.txt"}, names(t, fs))
}

func TestRunForeignCollision(t *testing.T) {
	// file2.txt exists but is not matched: the staged file keeps its
	// staging name, the collision is a per-entry failure, and the run
	// still completes.
	fs := newFs(t, "file1.txt", "file2.txt")

	result, events := runCollect(t, Config{Fs: fs, Pattern: "file1.txt", Shift: 1})
	require.NoError(t, result.Err)

	assert.Equal(t, int64(1), result.Stats.FilesFailed)
	assert.Zero(t, result.Stats.FilesRenamed)

	failed := eventsOfType(events, event.FileFailed)
	require.Len(t, failed, 1)
	assert.ErrorIs(t, failed[0].Error, ErrTargetExists)
	assert.Equal(t, 2, failed[0].Phase)

	// The blocker is untouched; the source is parked at its staging name.
	assert.ElementsMatch(t, []string{"file2.txt", DefaultStagePrefix + "file1.txt"}, names(t, fs))
	data, err := afero.ReadFile(fs, "file2.txt")
	require.NoError(t, err)
	assert.Equal(t, "file2.txt", string(data))
}

func TestRunDryRun(t *testing.T) {
	fs := newFs(t, "file1.txt", "file2.txt")

	result, events := runCollect(t, Config{Fs: fs, Pattern: "file*.txt", Shift: 1, DryRun: true})
	require.NoError(t, result.Err)

	assert.ElementsMatch(t, []string{"file1.txt", "file2.txt"}, names(t, fs))

	moves := eventsOfType(events, event.DryRunMove)
	assert.Len(t, moves, 4) // 2 entries x 2 phases
	assert.Equal(t, int64(4), result.Stats.MovesDone)
	assert.Equal(t, int64(4), result.Stats.MovesTotal)
}

func TestRunCustomStagePrefix(t *testing.T) {
	// file2.txt forces a phase-2 collision so a staged file survives
	// the run and the prefix is observable.
	fs := newFs(t, "file1.txt", "file2.txt")
	result, _ := runCollect(t, Config{
		Fs: fs, Pattern: "file1.txt", Shift: 1, StagePrefix: ".hold-",
	})
	require.NoError(t, result.Err)
	exists, err := afero.Exists(fs, ".hold-file1.txt")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRunProgressAccounting(t *testing.T) {
	// Three matched entries, one overflows: total shrinks to 2x2 and
	// every remaining move is counted exactly once.
	fs := newFs(t, "f1.txt", "f2.txt", "f2147483647.txt")

	result, events := runCollect(t, Config{Fs: fs, Pattern: "f*.txt", Shift: 1})
	require.NoError(t, result.Err)

	assert.Equal(t, int64(3), result.Stats.FilesMatched)
	assert.Equal(t, int64(4), result.Stats.MovesTotal)
	assert.Equal(t, int64(4), result.Stats.MovesDone)

	scans := eventsOfType(events, event.ScanComplete)
	require.Len(t, scans, 1)
	assert.Equal(t, int64(3), scans[0].Total)

	phases := eventsOfType(events, event.PhaseStarted)
	require.Len(t, phases, 2)
	assert.Equal(t, 1, phases[0].Phase)
	assert.Equal(t, 2, phases[1].Phase)

	assert.Len(t, eventsOfType(events, event.FileStaged), 2)
	assert.Len(t, eventsOfType(events, event.FileRenamed), 2)
}

func TestRunOverlapWithOverflowRoundTrip(t *testing.T) {
	// An overlapping shift with an overflow casualty in the same run:
	// the three in-range files land on each other's slots, the fourth
	// is skipped, and the totals settle at two moves per survivor.
	fs := newFs(t, "f1.txt", "f2.txt", "f3.txt", "f2147483647.txt")

	result, _ := runCollect(t, Config{Fs: fs, Pattern: "f*.txt", Shift: 1})
	require.NoError(t, result.Err)

	assert.ElementsMatch(t,
		[]string{"f2.txt", "f3.txt", "f4.txt", "f2147483647.txt"},
		names(t, fs))
	assert.Equal(t, int64(3), result.Stats.FilesRenamed)
	assert.Equal(t, int64(1), result.Stats.FilesSkipped)
	assert.Equal(t, int64(6), result.Stats.MovesTotal)
	assert.Equal(t, int64(6), result.Stats.MovesDone)

	// Shifting back down restores the survivors; the skipped file is
	// now in range and moves too.
	back, _ := runCollect(t, Config{Fs: fs, Pattern: "f*.txt", Shift: -1})
	require.NoError(t, back.Err)
	assert.ElementsMatch(t,
		[]string{"f1.txt", "f2.txt", "f3.txt", "f2147483646.txt"},
		names(t, fs))
}

func TestRunProcessingOrder(t *testing.T) {
	fs := newFs(t, "file1.txt", "file2.txt", "file3.txt")

	_, events := runCollect(t, Config{Fs: fs, Pattern: "file*.txt", Shift: 1})

	staged := eventsOfType(events, event.FileStaged)
	require.Len(t, staged, 3)
	assert.Equal(t, "file3.txt", staged[0].Path)
	assert.Equal(t, "file2.txt", staged[1].Path)
	assert.Equal(t, "file1.txt", staged[2].Path)
}

func TestRunCancelledContext(t *testing.T) {
	fs := newFs(t, "file1.txt")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := Run(ctx, Config{Fs: fs, Pattern: "file*.txt", Shift: 1})
	require.Error(t, result.Err)
	assert.ErrorIs(t, result.Err, context.Canceled)
	assert.Equal(t, []string{"file1.txt"}, names(t, fs))
}

func TestRangeErrorMessage(t *testing.T) {
	err := &RangeError{Path: "big1.bin", Shifted: 2147483648}
	assert.Contains(t, err.Error(), "big1.bin")
	assert.Contains(t, err.Error(), "2147483648")
}
