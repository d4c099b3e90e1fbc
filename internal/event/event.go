package event

import "time"

// Type identifies the kind of event.
type Type int

const (
	ScanComplete Type = iota + 1
	PhaseStarted
	FileStaged
	FileRenamed
	FileSkipped
	FileFailed
	DryRunMove
)

var typeNames = [...]string{
	ScanComplete: "ScanComplete",
	PhaseStarted: "PhaseStarted",
	FileStaged:   "FileStaged",
	FileRenamed:  "FileRenamed",
	FileSkipped:  "FileSkipped",
	FileFailed:   "FileFailed",
	DryRunMove:   "DryRunMove",
}

func (t Type) String() string {
	if t > 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Unknown"
}

// Event represents a single progress event from the rename engine.
type Event struct {
	Type      Type
	Timestamp time.Time
	Path      string // source path of the move
	Target    string // destination path of the move
	Number    int64  // trailing integer before the shift
	Shifted   int64  // trailing integer after the shift
	Phase     int    // 1=stage, 2=finalize
	Total     int64  // matched entry count (ScanComplete)
	Error     error
}
