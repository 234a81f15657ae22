// Package piece implements streaming SHA-1 piece hashing over the virtual
// concatenation of a torrent's files.
package piece

import (
	"context"
	"crypto/sha1"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/bamsammich/mkt/internal/event"
	"github.com/bamsammich/mkt/internal/scan"
	"github.com/bamsammich/mkt/internal/stats"
)

// DigestSize is the length of a single piece digest in bytes.
const DigestSize = sha1.Size

// Config controls a hashing run.
type Config struct {
	PieceLength int64
	Events      chan<- event.Event
	Stats       *stats.Collector
}

// Result holds the digests of a completed hashing run. Pieces is the raw
// concatenation of 20-byte SHA-1 digests in piece order, ready to be used as
// the metainfo "pieces" byte-string.
type Result struct {
	Pieces []byte
	Count  int
	Bytes  int64
}

// hasher consumes the file sequence as one byte stream. It owns a single
// piece-sized accumulation buffer for the whole run and holds at most one
// open file handle at a time.
type hasher struct {
	cfg    Config
	buf    []byte
	fill   int
	pieces []byte
	bytes  int64
}

// Hash splits the concatenation of all file contents, in enumeration order,
// into pieces of cfg.PieceLength bytes (last piece possibly shorter) and
// returns one SHA-1 digest per piece.
//
// File lengths are reconciled against the bytes actually read: a length
// recorded at scan time that disagrees with the post-read fact is corrected
// on the entry and the stats total is revised, without error. A file whose
// open handle is no longer a regular file, or that cannot be read, aborts
// the run.
func Hash(ctx context.Context, files []*scan.FileEntry, cfg Config) (*Result, error) {
	h := &hasher{
		cfg: cfg,
		buf: make([]byte, cfg.PieceLength),
	}

	for _, f := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if err := h.hashFile(f); err != nil {
			return nil, err
		}
	}

	// Final short piece, if the buffer holds a partial accumulation.
	if h.fill > 0 {
		h.finalize()
	}

	return &Result{
		Pieces: h.pieces,
		Count:  len(h.pieces) / DigestSize,
		Bytes:  h.bytes,
	}, nil
}

// hashFile drains one file into the accumulation buffer, finalizing a piece
// every time the buffer fills to exactly the piece length.
func (h *hasher) hashFile(f *scan.FileEntry) error {
	h.emit(event.Event{Type: event.FileStarted, Path: filepath.Join(f.Rel...), Size: f.Length})

	fd, err := os.Open(f.Path)
	if err != nil {
		return fmt.Errorf("open %s: %w", f.Path, err)
	}
	defer fd.Close()

	// Re-measure on the live handle rather than trusting the scan. A handle
	// that is no longer a regular file means the path was swapped out from
	// under us by another process.
	info, err := fd.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", f.Path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s: changed type since scan (now %s)", f.Path, info.Mode().Type())
	}

	var read int64
	for {
		if h.fill == len(h.buf) {
			h.finalize()
		}
		n, err := fd.Read(h.buf[h.fill:])
		h.fill += n
		read += int64(n)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", f.Path, err)
		}
	}

	if read != f.Length {
		// Size changed between scan and read. Trust the bytes on disk and
		// correct the running total bound.
		revised := h.cfg.Stats.ReviseBytesTotal(read - f.Length)
		f.Length = read
		h.emit(event.Event{Type: event.TotalRevised, Path: filepath.Join(f.Rel...), TotalSize: revised})
	}

	h.cfg.Stats.AddFilesHashed(1)
	h.emit(event.Event{Type: event.FileCompleted, Path: filepath.Join(f.Rel...), Size: read})
	return nil
}

// finalize hashes the buffered bytes as one piece and resets the fill cursor.
func (h *hasher) finalize() {
	digest := sha1.Sum(h.buf[:h.fill])
	h.pieces = append(h.pieces, digest[:]...)
	h.bytes += int64(h.fill)

	h.cfg.Stats.AddBytesHashed(int64(h.fill))
	h.cfg.Stats.AddPiecesHashed(1)
	h.emit(event.Event{Type: event.PieceHashed, Size: int64(h.fill)})

	h.fill = 0
}

func (h *hasher) emit(e event.Event) {
	if h.cfg.Events == nil {
		return
	}
	e.Timestamp = time.Now()
	select {
	case h.cfg.Events <- e:
	default:
	}
}
