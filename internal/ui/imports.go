package ui

import "github.com/nsedgwick/renum/internal/event"

// Event is re-exported so presenters and their tests read naturally.
type Event = event.Event

// Re-export event types for convenience.
const (
	ScanComplete = event.ScanComplete
	PhaseStarted = event.PhaseStarted
	FileStaged   = event.FileStaged
	FileRenamed  = event.FileRenamed
	FileSkipped  = event.FileSkipped
	FileFailed   = event.FileFailed
	DryRunMove   = event.DryRunMove
)
