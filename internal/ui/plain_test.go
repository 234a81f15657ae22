package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bamsammich/mkt/internal/event"
	"github.com/bamsammich/mkt/internal/stats"
)

func TestPlainPresenterFileCompleted(t *testing.T) {
	var out, errOut bytes.Buffer
	p := &plainPresenter{w: &out, errW: &errOut, stats: stats.NewCollector()}

	events := make(chan Event, 10)
	events <- Event{Type: event.FileCompleted, Path: "dir/file.txt", Size: 1024}
	events <- Event{Type: event.FileCompleted, Path: "dir/big.bin", Size: 1024 * 1024 * 100}
	close(events)

	assert.NoError(t, p.Run(events))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "dir/file.txt")
	assert.Contains(t, lines[1], "dir/big.bin")
}

func TestPlainPresenterTotalRevised(t *testing.T) {
	var out, errOut bytes.Buffer
	p := &plainPresenter{w: &out, errW: &errOut, stats: stats.NewCollector()}

	events := make(chan Event, 5)
	events <- Event{Type: event.TotalRevised, Path: "shrunk.bin", TotalSize: 900}
	close(events)

	assert.NoError(t, p.Run(events))
	assert.Contains(t, out.String(), "shrunk.bin")
	assert.Contains(t, out.String(), "size changed")
}

func TestPlainPresenterTorrentWritten(t *testing.T) {
	var out, errOut bytes.Buffer
	p := &plainPresenter{w: &out, errW: &errOut, stats: stats.NewCollector()}

	events := make(chan Event, 5)
	events <- Event{Type: event.TorrentWritten, Path: "/tmp/out.torrent"}
	close(events)

	assert.NoError(t, p.Run(events))
	assert.Contains(t, out.String(), "wrote /tmp/out.torrent")
}

func TestPlainPresenterSummary(t *testing.T) {
	collector := stats.NewCollector()
	collector.AddFilesHashed(100)
	collector.AddBytesHashed(1024 * 1024)
	collector.AddPiecesHashed(4)

	p := &plainPresenter{stats: collector}
	s := p.Summary()
	assert.Contains(t, s, "files 100")
	assert.Contains(t, s, "pieces 4")
}

func TestQuietPresenterSilent(t *testing.T) {
	p := &quietPresenter{stats: stats.NewCollector()}

	events := make(chan Event, 5)
	events <- Event{Type: event.FileCompleted, Path: "a.txt"}
	close(events)

	assert.NoError(t, p.Run(events))
	assert.Empty(t, p.Summary())
}

func TestNewPresenterSelection(t *testing.T) {
	collector := stats.NewCollector()

	p := NewPresenter(Config{Quiet: true, Stats: collector})
	assert.IsType(t, &quietPresenter{}, p)

	p = NewPresenter(Config{IsTTY: false, Stats: collector})
	assert.IsType(t, &plainPresenter{}, p)

	p = NewPresenter(Config{IsTTY: true, NoProgress: true, Stats: collector})
	assert.IsType(t, &plainPresenter{}, p)

	p = NewPresenter(Config{IsTTY: true, Stats: collector})
	assert.IsType(t, &hudPresenter{}, p)
}
