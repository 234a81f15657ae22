// Package engine orchestrates the torrent build pipeline: validation,
// enumeration, piece hashing, metainfo assembly, and output.
package engine

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/bamsammich/mkt/internal/event"
	"github.com/bamsammich/mkt/internal/filter"
	"github.com/bamsammich/mkt/internal/metainfo"
	"github.com/bamsammich/mkt/internal/piece"
	"github.com/bamsammich/mkt/internal/scan"
	"github.com/bamsammich/mkt/internal/stats"
)

// Config describes a torrent build.
type Config struct {
	Inputs      []string
	Root        string // optional explicit root; inferred when empty
	Output      string
	PieceLength int64 // bytes, power of two
	Announce    []string
	Private     bool
	Source      string
	NoDate      bool
	NoCreator   bool
	Version     string
	Filter      *filter.Chain // optional; nil includes everything
	Events      chan<- event.Event
	Stats       *stats.Collector
}

// Result is the outcome of a build.
type Result struct {
	Path   string
	Name   string
	Files  int
	Pieces int
	Bytes  int64
	Err    error
}

// Run executes a build, blocking until complete. The pipeline is strictly
// sequential: enumeration finishes before hashing starts, and files are
// hashed in enumeration order on a single goroutine, since piece digests
// depend on exact byte ordering. A fatal error anywhere aborts before the
// output file is written.
func Run(ctx context.Context, cfg Config) Result {
	if cfg.Stats == nil {
		cfg.Stats = stats.NewCollector()
	}

	root, output, inputs, err := cfg.validate()
	if err != nil {
		return Result{Err: err}
	}

	emit(cfg.Events, event.Event{Type: event.ScanStarted})

	scanRes, err := scan.Collect(inputs, root, cfg.Filter)
	if err != nil {
		if errors.Is(err, scan.ErrNoFiles) {
			return Result{Err: &ConfigError{Err: err}}
		}
		return Result{Err: &FSError{Err: err}}
	}
	if scanRes.Total == 0 {
		return Result{Err: &ConfigError{Err: fmt.Errorf("inputs hold no data to hash")}}
	}

	nfiles := int64(len(scanRes.Files))
	npieces := (scanRes.Total + cfg.PieceLength - 1) / cfg.PieceLength
	cfg.Stats.AddFilesScanned(nfiles)
	cfg.Stats.SetTotals(nfiles, scanRes.Total, npieces)
	emit(cfg.Events, event.Event{
		Type:      event.ScanComplete,
		Total:     nfiles,
		TotalSize: scanRes.Total,
	})

	hashRes, err := piece.Hash(ctx, scanRes.Files, piece.Config{
		PieceLength: cfg.PieceLength,
		Events:      cfg.Events,
		Stats:       cfg.Stats,
	})
	if err != nil {
		if ctx.Err() != nil {
			return Result{Err: ctx.Err()}
		}
		return Result{Err: &FSError{Err: err}}
	}
	if hashRes.Bytes == 0 {
		// Every file shrank to nothing between scan and read.
		return Result{Err: &FSError{Err: fmt.Errorf("inputs held no data when read")}}
	}

	params := metainfo.Params{
		Name:        filepath.Base(root),
		PieceLength: cfg.PieceLength,
		Pieces:      hashRes.Pieces,
		Files:       scanRes.Files,
		SingleFile:  scanRes.SingleFile,
		Announce:    cfg.Announce,
		Private:     cfg.Private,
		Source:      cfg.Source,
	}
	if !cfg.NoDate {
		params.CreatedAt = time.Now()
	}
	if !cfg.NoCreator {
		version := cfg.Version
		if version == "" {
			version = "dev"
		}
		params.CreatedBy = "mkt/" + version
	}

	if err := metainfo.Write(output, metainfo.Build(params)); err != nil {
		return Result{Err: &FSError{Err: err}}
	}
	emit(cfg.Events, event.Event{Type: event.TorrentWritten, Path: output, Size: hashRes.Bytes})

	return Result{
		Path:   output,
		Name:   params.Name,
		Files:  len(scanRes.Files),
		Pieces: hashRes.Count,
		Bytes:  hashRes.Bytes,
	}
}

// validate resolves paths and rejects invalid configurations before any
// hashing work begins.
func (cfg Config) validate() (root, output string, inputs []string, err error) {
	if len(cfg.Inputs) == 0 {
		return "", "", nil, &ConfigError{Err: fmt.Errorf("no input paths given")}
	}
	if cfg.PieceLength <= 0 || cfg.PieceLength&(cfg.PieceLength-1) != 0 {
		return "", "", nil, &ConfigError{
			Err: fmt.Errorf("piece length %d is not a power of two", cfg.PieceLength),
		}
	}

	output, err = filepath.Abs(cfg.Output)
	if err != nil {
		return "", "", nil, &ConfigError{Err: fmt.Errorf("output path %s: %w", cfg.Output, err)}
	}

	inputs = make([]string, len(cfg.Inputs))
	for i, in := range cfg.Inputs {
		abs, absErr := filepath.Abs(in)
		if absErr != nil {
			return "", "", nil, &ConfigError{Err: fmt.Errorf("input path %s: %w", in, absErr)}
		}
		if abs == output {
			return "", "", nil, &ConfigError{
				Err: fmt.Errorf("output %s collides with an input path", cfg.Output),
			}
		}
		inputs[i] = abs
	}

	if cfg.Root != "" {
		root, err = filepath.Abs(cfg.Root)
		if err != nil {
			return "", "", nil, &ConfigError{Err: fmt.Errorf("root path %s: %w", cfg.Root, err)}
		}
		if err := scan.CheckRoot(inputs, root); err != nil {
			return "", "", nil, &ConfigError{Err: err}
		}
	} else {
		root, err = scan.InferRoot(inputs)
		if err != nil {
			return "", "", nil, &ConfigError{Err: err}
		}
	}

	return root, output, inputs, nil
}

func emit(ch chan<- event.Event, e event.Event) {
	if ch == nil {
		return
	}
	e.Timestamp = time.Now()
	select {
	case ch <- e:
	default:
	}
}
