package stats

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

const ringSize = 60

// Collector tracks rename-run statistics using lock-free atomic counters.
//
// Progress is measured in moves: every entry that survives phase 1
// contributes two moves (stage + finalize). Entries dropped during
// phase 1 (overflow or a failed stage rename) are subtracted from the
// total so the bar never stalls short of 100%.
type Collector struct {
	filesMatched atomic.Int64
	filesStaged  atomic.Int64
	filesRenamed atomic.Int64
	filesSkipped atomic.Int64
	filesFailed  atomic.Int64
	movesDone    atomic.Int64
	movesTotal   atomic.Int64
	startTime    time.Time

	// Ring buffer — written only by the presenter's Tick(), never by
	// the engine.
	mu          sync.Mutex
	movesPerSec [ringSize]int64
	ringIdx     int
	ringCount   int
	lastMoves   int64
}

// Reader is the read-only view presenters use.
type Reader interface {
	Snapshot() Snapshot
}

// ReadTicker is a Reader that also samples rates for display.
type ReadTicker interface {
	Reader
	Tick()
	RollingMovesPerSec(seconds int) float64
	SparklineData(n int) []float64
	ETA() time.Duration
}

// NewCollector creates a Collector with startTime set to now.
func NewCollector() *Collector {
	return &Collector{startTime: time.Now()}
}

// SetTotals records the matched entry count once scanning completes.
// Every entry starts with two planned moves.
func (c *Collector) SetTotals(matched int64) {
	c.filesMatched.Store(matched)
	c.movesTotal.Store(2 * matched)
}

// DropEntry removes a phase-1 casualty (overflow skip or failed stage)
// from the planned move total.
func (c *Collector) DropEntry() { c.movesTotal.Add(-2) }

func (c *Collector) AddStaged(n int64)    { c.filesStaged.Add(n) }
func (c *Collector) AddRenamed(n int64)   { c.filesRenamed.Add(n) }
func (c *Collector) AddSkipped(n int64)   { c.filesSkipped.Add(n) }
func (c *Collector) AddFailed(n int64)    { c.filesFailed.Add(n) }
func (c *Collector) AddMovesDone(n int64) { c.movesDone.Add(n) }

// Snapshot is a point-in-time read of all counters.
type Snapshot struct {
	FilesMatched int64
	FilesStaged  int64
	FilesRenamed int64
	FilesSkipped int64
	FilesFailed  int64
	MovesDone    int64
	MovesTotal   int64
	Elapsed      time.Duration
}

// Snapshot returns a consistent point-in-time read of all counters.
func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		FilesMatched: c.filesMatched.Load(),
		FilesStaged:  c.filesStaged.Load(),
		FilesRenamed: c.filesRenamed.Load(),
		FilesSkipped: c.filesSkipped.Load(),
		FilesFailed:  c.filesFailed.Load(),
		MovesDone:    c.movesDone.Load(),
		MovesTotal:   c.movesTotal.Load(),
		Elapsed:      c.Elapsed(),
	}
}

// Percent returns completed-move progress in [0,1].
func (s Snapshot) Percent() float64 {
	if s.MovesTotal <= 0 {
		return 0
	}
	pct := float64(s.MovesDone) / float64(s.MovesTotal)
	if pct > 1 {
		pct = 1
	}
	return pct
}

// Tick snapshots the move-count delta into the ring buffer. Called
// once per second by the presenter.
func (c *Collector) Tick() {
	current := c.movesDone.Load()

	c.mu.Lock()
	defer c.mu.Unlock()

	delta := current - c.lastMoves
	c.lastMoves = current

	c.movesPerSec[c.ringIdx] = delta
	c.ringIdx = (c.ringIdx + 1) % ringSize
	if c.ringCount < ringSize {
		c.ringCount++
	}
}

// RollingMovesPerSec returns average moves/sec over the last n seconds
// of samples.
func (c *Collector) RollingMovesPerSec(seconds int) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := seconds
	if count > c.ringCount {
		count = c.ringCount
	}
	if count == 0 {
		return 0
	}
	var sum int64
	for i := 0; i < count; i++ {
		idx := (c.ringIdx - 1 - i + ringSize) % ringSize
		sum += c.movesPerSec[idx]
	}
	return float64(sum) / float64(count)
}

// SparklineData returns the last n moves/sec samples for rendering.
func (c *Collector) SparklineData(n int) []float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := n
	if count > c.ringCount {
		count = c.ringCount
	}
	if count == 0 {
		return nil
	}

	data := make([]float64, count)
	for i := 0; i < count; i++ {
		// oldest first
		idx := (c.ringIdx - count + i + ringSize) % ringSize
		data[i] = float64(c.movesPerSec[idx])
	}
	return data
}

// ETA estimates remaining time based on rolling speed and remaining moves.
func (c *Collector) ETA() time.Duration {
	speed := c.RollingMovesPerSec(10)
	if speed <= 0 {
		return 0
	}
	remaining := c.movesTotal.Load() - c.movesDone.Load()
	if remaining <= 0 {
		return 0
	}
	return time.Duration(float64(remaining)/speed) * time.Second
}

// Elapsed returns time since collector creation.
func (c *Collector) Elapsed() time.Duration {
	return time.Since(c.startTime)
}

func (s Snapshot) String() string {
	return fmt.Sprintf(
		"matched=%d staged=%d renamed=%d skipped=%d failed=%d moves=%d/%d",
		s.FilesMatched, s.FilesStaged, s.FilesRenamed, s.FilesSkipped,
		s.FilesFailed, s.MovesDone, s.MovesTotal,
	)
}
