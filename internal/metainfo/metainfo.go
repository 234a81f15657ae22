// Package metainfo assembles the torrent metainfo document and serializes
// it to disk.
package metainfo

import (
	"time"

	"github.com/bamsammich/mkt/internal/scan"
)

// Document is a metainfo value tree using only the four bencode value
// kinds: byte-strings, integers, lists, and string-keyed dictionaries.
// The encoder emits dictionary keys in sorted order; semantically ordered
// lists (files, pieces) pass through untouched.
type Document map[string]any

// Params carries everything needed to assemble a metainfo document.
type Params struct {
	Name        string
	PieceLength int64
	Pieces      []byte // raw concatenated 20-byte digests, piece order
	Files       []*scan.FileEntry
	SingleFile  bool
	Announce    []string
	Private     bool
	Source      string
	CreatedBy   string    // omitted when empty
	CreatedAt   time.Time // omitted when zero
}

// Build assembles the document. The result is a self-contained snapshot:
// nothing in it references the file entries or any open handle.
func Build(p Params) Document {
	info := Document{
		"name":         p.Name,
		"piece length": p.PieceLength,
		"pieces":       string(p.Pieces),
	}

	if p.SingleFile {
		info["length"] = p.Files[0].Length
	} else {
		files := make([]any, 0, len(p.Files))
		for _, f := range p.Files {
			files = append(files, Document{
				"length": f.Length,
				"path":   f.Rel,
			})
		}
		info["files"] = files
	}

	if p.Private {
		info["private"] = 1
	}
	if p.Source != "" {
		info["source"] = p.Source
	}

	doc := Document{"info": info}

	if len(p.Announce) > 0 {
		doc["announce"] = p.Announce[0]
	}
	if len(p.Announce) > 1 {
		// One tracker per tier slot, input order preserved.
		tiers := make([]any, 0, len(p.Announce))
		for _, u := range p.Announce {
			tiers = append(tiers, []any{u})
		}
		doc["announce-list"] = tiers
	}

	if !p.CreatedAt.IsZero() {
		doc["creation date"] = p.CreatedAt.Unix()
	}
	if p.CreatedBy != "" {
		doc["created by"] = p.CreatedBy
	}
	if !allASCII(p.Files) {
		// Advisory flag for readers; the paths themselves are not re-encoded.
		doc["encoding"] = "UTF-8"
	}

	return doc
}

// allASCII reports whether every relative path component of every file is
// plain 7-bit ASCII.
func allASCII(files []*scan.FileEntry) bool {
	for _, f := range files {
		for _, comp := range f.Rel {
			for i := 0; i < len(comp); i++ {
				if comp[i] >= 0x80 {
					return false
				}
			}
		}
	}
	return true
}
