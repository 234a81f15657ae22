package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bamsammich/mkt/internal/event"
	"github.com/bamsammich/mkt/internal/stats"
)

func TestHUDFeedLine(t *testing.T) {
	var out bytes.Buffer
	p := &hudPresenter{w: &out, stats: stats.NewCollector()}

	events := make(chan Event, 10)
	events <- Event{Type: event.FileCompleted, Path: "a.txt", Size: 2048}
	close(events)

	assert.NoError(t, p.Run(events))
	assert.Contains(t, out.String(), "a.txt")
	assert.Contains(t, out.String(), "2.0 KiB")
}

func TestHUDTotalRevisedNotice(t *testing.T) {
	var out bytes.Buffer
	p := &hudPresenter{w: &out, stats: stats.NewCollector()}

	events := make(chan Event, 10)
	events <- Event{Type: event.TotalRevised, Path: "shrunk", TotalSize: 512}
	close(events)

	assert.NoError(t, p.Run(events))
	assert.Contains(t, out.String(), "size changed")
}

func TestHUDClearedOnClose(t *testing.T) {
	var out bytes.Buffer
	p := &hudPresenter{w: &out, stats: stats.NewCollector()}

	events := make(chan Event, 10)
	events <- Event{Type: event.FileCompleted, Path: "x", Size: 1}
	close(events)

	assert.NoError(t, p.Run(events))
	// The final write is the cursor-up + clear sequence from clearHUD.
	assert.True(t, strings.HasSuffix(out.String(), "\033[J"))
}

func TestHUDDrawsProgress(t *testing.T) {
	var out bytes.Buffer
	collector := stats.NewCollector()
	collector.SetTotals(2, 1000, 4)
	collector.AddBytesHashed(500)
	collector.AddPiecesHashed(2)

	p := &hudPresenter{w: &out, stats: collector}
	p.drawHUD()

	s := out.String()
	assert.Contains(t, s, "50%")
	assert.Contains(t, s, "2 / 4 pieces")
}

func TestHUDSummary(t *testing.T) {
	collector := stats.NewCollector()
	collector.AddFilesHashed(3)
	collector.AddPiecesHashed(7)

	p := &hudPresenter{stats: collector}
	s := p.Summary()
	assert.Contains(t, s, "files 3")
	assert.Contains(t, s, "pieces 7")
}
