package ui

import (
	"fmt"

	"github.com/bamsammich/mkt/internal/stats"
)

// CompletionSummary builds a final summary line from a snapshot.
// Format: done ✓  files 1,204  size 2.1 GiB  pieces 8,601  avg 641 MB/s  time 3m 17s
func CompletionSummary(snap stats.Snapshot) string {
	avgSpeed := 0.0
	if snap.Elapsed.Seconds() > 0 {
		avgSpeed = float64(snap.BytesHashed) / snap.Elapsed.Seconds()
	}

	return fmt.Sprintf("done ✓  files %s  size %s  pieces %s  avg %s  time %s",
		FormatCount(snap.FilesHashed),
		FormatBytes(snap.BytesHashed),
		FormatCount(snap.PiecesHashed),
		FormatRate(avgSpeed),
		FormatDuration(snap.Elapsed),
	)
}
