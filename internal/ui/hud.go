package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/bamsammich/mkt/internal/stats"
)

// ANSI escape sequences.
const (
	ansiDim   = "\033[2m"
	ansiReset = "\033[0m"
)

// hudPresenter provides a rich TTY display: a scrolling feed of hashed files
// and a 2-line HUD that redraws in place.
type hudPresenter struct {
	w       io.Writer
	stats   *stats.Collector
	verbose bool

	// Internal state.
	hudDrawn     bool
	hudLineCount int // actual number of lines in the last HUD draw
	lastHUDDraw  time.Time
}

const (
	sparklineWidth   = 20
	progressBarWidth = 20
	hudMinInterval   = 50 * time.Millisecond // don't redraw faster than this
)

func (p *hudPresenter) Run(events <-chan Event) error {
	// Fire first tick quickly to seed the ring buffer with initial speed data,
	// then switch to 1s interval.
	secTicker := time.NewTicker(250 * time.Millisecond)
	defer secTicker.Stop()
	firstTickDone := false

	// Redraw ticker for when no events are flowing (e.g., one huge file).
	redrawTicker := time.NewTicker(100 * time.Millisecond)
	defer redrawTicker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				p.clearHUD()
				return nil
			}
			p.handleEvent(ev)
			p.maybeDrawHUD()

		case <-redrawTicker.C:
			p.drawHUD()

		case <-secTicker.C:
			p.stats.Tick()
			if !firstTickDone {
				firstTickDone = true
				secTicker.Reset(1 * time.Second)
			}
		}
	}
}

func (p *hudPresenter) handleEvent(ev Event) {
	switch ev.Type {
	case FileCompleted:
		p.clearHUD()
		p.printFileCompleted(ev)
		p.drawHUD() // always redraw HUD after a feed line

	case TotalRevised:
		p.clearHUD()
		fmt.Fprintf(p.w, "±  %s  %ssize changed, total now %s%s\n",
			ev.Path, ansiDim, FormatBytes(ev.TotalSize), ansiReset)
		p.drawHUD()

	case TorrentWritten:
		p.clearHUD()
		fmt.Fprintf(p.w, "✓  wrote %s\n", ev.Path)
	}
}

func (p *hudPresenter) printFileCompleted(ev Event) {
	speed := p.stats.RollingSpeed(5)
	if speed > 0 {
		fmt.Fprintf(p.w, "✓  %s  %10s  %s\n",
			ev.Path, FormatBytes(ev.Size), FormatRate(speed))
	} else {
		fmt.Fprintf(p.w, "✓  %s  %10s\n", ev.Path, FormatBytes(ev.Size))
	}
}

// maybeDrawHUD redraws the HUD if enough time has passed since the last draw.
func (p *hudPresenter) maybeDrawHUD() {
	if time.Since(p.lastHUDDraw) < hudMinInterval {
		return
	}
	p.drawHUD()
}

func (p *hudPresenter) drawHUD() {
	snap := p.stats.Snapshot()

	p.clearHUD()

	var pct float64
	if snap.BytesTotal > 0 {
		pct = float64(snap.BytesHashed) / float64(snap.BytesTotal)
	}

	speed := p.stats.RollingSpeed(10)
	eta := p.stats.ETA()

	lines := 0

	// Line 1: throughput sparkline + speed + byte totals.
	spark := Sparkline(p.stats.SparklineData(sparklineWidth), sparklineWidth)
	fmt.Fprintf(p.w, "       %s   %s   %s / %s\n",
		spark, FormatRate(speed),
		FormatBytes(snap.BytesHashed), FormatBytes(snap.BytesTotal))
	lines++

	// Line 2: progress bar + pieces + eta.
	bar := ProgressBar(pct, progressBarWidth)
	fmt.Fprintf(p.w, " %3.0f%%  %s   %s / %s pieces   eta %s\n",
		pct*100, bar,
		FormatCount(snap.PiecesHashed), FormatCount(snap.PiecesTotal),
		FormatETA(eta))
	lines++

	p.hudDrawn = true
	p.hudLineCount = lines
	p.lastHUDDraw = time.Now()
}

func (p *hudPresenter) clearHUD() {
	if !p.hudDrawn {
		return
	}
	lines := p.hudLineCount
	if lines == 0 {
		lines = 2 // fallback
	}
	// Move cursor up N lines and clear to end of screen.
	fmt.Fprintf(p.w, "\033[%dA\033[J", lines)
	p.hudDrawn = false
}

func (p *hudPresenter) Summary() string {
	return CompletionSummary(p.stats.Snapshot())
}
