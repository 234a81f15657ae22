package event

import "time"

// Type identifies the kind of event.
type Type int

const (
	ScanStarted Type = iota + 1
	ScanComplete
	FileStarted
	FileCompleted
	PieceHashed
	TotalRevised
	TorrentWritten
)

var typeNames = [...]string{
	ScanStarted:    "ScanStarted",
	ScanComplete:   "ScanComplete",
	FileStarted:    "FileStarted",
	FileCompleted:  "FileCompleted",
	PieceHashed:    "PieceHashed",
	TotalRevised:   "TotalRevised",
	TorrentWritten: "TorrentWritten",
}

func (t Type) String() string {
	if t > 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Unknown"
}

// Event represents a single progress event from the pipeline.
//
// PieceHashed carries the bytes consumed by the finalized piece in Size.
// TotalRevised carries the corrected total byte bound in TotalSize, emitted
// when a file's remeasured length disagrees with the scan-time estimate.
type Event struct {
	Type      Type
	Timestamp time.Time
	Path      string // relative path, where applicable
	Size      int64  // file size or piece byte count
	Total     int64  // total files (ScanComplete)
	TotalSize int64  // total bytes (ScanComplete, TotalRevised)
	Error     error
}
