package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/bamsammich/mkt/internal/stats"
)

// plainPresenter outputs one line per hashed file to stdout, and periodic
// progress to stderr when not a TTY.
type plainPresenter struct {
	w       io.Writer
	errW    io.Writer
	stats   *stats.Collector
	verbose bool
}

func (p *plainPresenter) Run(events <-chan Event) error {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			p.handleEvent(ev)
		case <-ticker.C:
			p.stats.Tick()
			p.printProgress()
		}
	}
}

func (p *plainPresenter) handleEvent(ev Event) {
	switch ev.Type {
	case FileCompleted:
		fmt.Fprintf(p.w, "%s  %s\n", ev.Path, FormatBytes(ev.Size))
	case TotalRevised:
		fmt.Fprintf(p.w, "%s  size changed, total now %s\n", ev.Path, FormatBytes(ev.TotalSize))
	case TorrentWritten:
		fmt.Fprintf(p.w, "wrote %s\n", ev.Path)
	}
}

func (p *plainPresenter) printProgress() {
	snap := p.stats.Snapshot()
	if snap.BytesTotal > 0 {
		pct := float64(snap.BytesHashed) / float64(snap.BytesTotal) * 100
		speed := p.stats.RollingSpeed(10)
		eta := p.stats.ETA()
		fmt.Fprintf(p.errW, "progress: %.0f%% %s/%s %s/%s pieces %s eta %s\n",
			pct,
			FormatBytes(snap.BytesHashed), FormatBytes(snap.BytesTotal),
			FormatCount(snap.PiecesHashed), FormatCount(snap.PiecesTotal),
			FormatRate(speed),
			FormatETA(eta),
		)
	} else {
		fmt.Fprintf(p.errW, "progress: %s hashed %s pieces\n",
			FormatBytes(snap.BytesHashed),
			FormatCount(snap.PiecesHashed),
		)
	}
}

func (p *plainPresenter) Summary() string {
	return CompletionSummary(p.stats.Snapshot())
}
