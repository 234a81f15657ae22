package ui

import "github.com/bamsammich/mkt/internal/event"

// Event aliases the pipeline event type for presenter signatures.
type Event = event.Event

// Re-export event types for convenience.
const (
	ScanStarted    = event.ScanStarted
	ScanComplete   = event.ScanComplete
	FileStarted    = event.FileStarted
	FileCompleted  = event.FileCompleted
	PieceHashed    = event.PieceHashed
	TotalRevised   = event.TotalRevised
	TorrentWritten = event.TorrentWritten
)
