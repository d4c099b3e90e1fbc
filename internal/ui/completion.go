package ui

import (
	"fmt"

	"github.com/nsedgwick/renum/internal/stats"
)

// CompletionSummary builds a final summary line from a snapshot.
// Format: done ✓  renamed 1,204  skipped 2  time 3s  errors 0
func CompletionSummary(snap stats.Snapshot) string {
	icon := "✓"
	if snap.FilesFailed > 0 {
		icon = "✗"
	}

	base := fmt.Sprintf("done %s  renamed %s", icon, FormatCount(snap.FilesRenamed))

	if snap.FilesSkipped > 0 {
		base += fmt.Sprintf("  skipped %s", FormatCount(snap.FilesSkipped))
	}

	base += fmt.Sprintf("  time %s  errors %d",
		FormatDuration(snap.Elapsed), snap.FilesFailed)

	return base
}
