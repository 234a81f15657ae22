package stats

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

const ringSize = 60

// Collector tracks hashing progress using lock-free atomic counters.
type Collector struct {
	filesScanned atomic.Int64
	filesHashed  atomic.Int64
	bytesHashed  atomic.Int64
	piecesHashed atomic.Int64
	bytesTotal   atomic.Int64
	filesTotal   atomic.Int64
	piecesTotal  atomic.Int64
	startTime    time.Time

	// Ring buffer, written only by the presenter's Tick(), never the pipeline.
	mu         sync.Mutex
	throughput [ringSize]int64 // bytes delta per second
	ringIdx    int
	ringCount  int // how many samples have been written (capped at ringSize)
	lastBytes  int64
}

// NewCollector creates a Collector with startTime set to now.
func NewCollector() *Collector {
	return &Collector{startTime: time.Now()}
}

// SetTotals records scan totals (called once when enumeration completes).
func (c *Collector) SetTotals(files, bytes, pieces int64) {
	c.filesTotal.Store(files)
	c.bytesTotal.Store(bytes)
	c.piecesTotal.Store(pieces)
}

// ReviseBytesTotal corrects the total byte bound by delta when a file's
// remeasured length disagrees with its scan-time estimate. Returns the
// revised total.
func (c *Collector) ReviseBytesTotal(delta int64) int64 {
	return c.bytesTotal.Add(delta)
}

func (c *Collector) AddFilesScanned(n int64) { c.filesScanned.Add(n) }
func (c *Collector) AddFilesHashed(n int64)  { c.filesHashed.Add(n) }
func (c *Collector) AddBytesHashed(n int64)  { c.bytesHashed.Add(n) }
func (c *Collector) AddPiecesHashed(n int64) { c.piecesHashed.Add(n) }

// Snapshot is a point-in-time read of all counters.
type Snapshot struct {
	FilesScanned int64
	FilesHashed  int64
	BytesHashed  int64
	PiecesHashed int64
	BytesTotal   int64
	FilesTotal   int64
	PiecesTotal  int64
	Elapsed      time.Duration
}

// Snapshot returns a consistent point-in-time read of all counters.
func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		FilesScanned: c.filesScanned.Load(),
		FilesHashed:  c.filesHashed.Load(),
		BytesHashed:  c.bytesHashed.Load(),
		PiecesHashed: c.piecesHashed.Load(),
		BytesTotal:   c.bytesTotal.Load(),
		FilesTotal:   c.filesTotal.Load(),
		PiecesTotal:  c.piecesTotal.Load(),
		Elapsed:      c.Elapsed(),
	}
}

// Tick snapshots the byte delta into the ring buffer. Called 1/sec by the presenter.
func (c *Collector) Tick() {
	currentBytes := c.bytesHashed.Load()

	c.mu.Lock()
	defer c.mu.Unlock()

	bytesDelta := currentBytes - c.lastBytes
	c.lastBytes = currentBytes

	c.throughput[c.ringIdx] = bytesDelta
	c.ringIdx = (c.ringIdx + 1) % ringSize
	if c.ringCount < ringSize {
		c.ringCount++
	}
}

// RollingSpeed returns average bytes/sec over the last n seconds of samples.
func (c *Collector) RollingSpeed(seconds int) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := seconds
	if count > c.ringCount {
		count = c.ringCount
	}
	if count == 0 {
		return 0
	}
	var sum int64
	for i := 0; i < count; i++ {
		idx := (c.ringIdx - 1 - i + ringSize) % ringSize
		sum += c.throughput[idx]
	}
	return float64(sum) / float64(count)
}

// SparklineData returns the last n bytes/sec samples for rendering.
func (c *Collector) SparklineData(n int) []float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := n
	if count > c.ringCount {
		count = c.ringCount
	}
	if count == 0 {
		return nil
	}

	data := make([]float64, count)
	for i := 0; i < count; i++ {
		// oldest first
		idx := (c.ringIdx - count + i + ringSize) % ringSize
		data[i] = float64(c.throughput[idx])
	}
	return data
}

// ETA estimates remaining time based on rolling speed and remaining bytes.
func (c *Collector) ETA() time.Duration {
	speed := c.RollingSpeed(10)
	if speed <= 0 {
		return 0
	}
	remaining := c.bytesTotal.Load() - c.bytesHashed.Load()
	if remaining <= 0 {
		return 0
	}
	return time.Duration(float64(remaining)/speed) * time.Second
}

// Elapsed returns time since collector creation.
func (c *Collector) Elapsed() time.Duration {
	return time.Since(c.startTime)
}

func (s Snapshot) String() string {
	return fmt.Sprintf(
		"scanned=%d hashed=%d bytes=%d pieces=%d/%d",
		s.FilesScanned, s.FilesHashed, s.BytesHashed, s.PiecesHashed, s.PiecesTotal,
	)
}

// FormatBytes returns a human-readable byte count.
func FormatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
