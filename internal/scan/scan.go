package scan

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bamsammich/mkt/internal/filter"
)

// ErrNoFiles is returned when the union of all inputs yields no files.
var ErrNoFiles = errors.New("no files found under the given paths")

// FileEntry is a single file selected for hashing. Length is the size
// observed at scan time; the hasher corrects it in place if the file's
// actual size differs when read.
type FileEntry struct {
	Path   string   // absolute path
	Length int64    // expected byte length
	Rel    []string // path components relative to the root
}

// Result is the outcome of enumeration.
type Result struct {
	Files []*FileEntry
	Total int64  // sum of expected lengths
	Root  string // torrent root; Base(Root) becomes the torrent name

	// SingleFile is true when the caller passed exactly one path and it
	// was a regular file. It selects the single-file metainfo layout.
	SingleFile bool
}

// collector walks input paths depth-first and accumulates file entries in a
// reproducible order.
type collector struct {
	root  string
	chain *filter.Chain
	files []*FileEntry
	total int64
}

// Collect enumerates the given input paths under root and returns the
// ordered file sequence. Inputs passed directly as files are appended in
// caller order; directories are expanded depth-first with siblings in
// ascending case-insensitive natural order, files before subdirectories.
// A non-nil chain prunes directory children; paths the caller named
// explicitly always pass.
func Collect(inputs []string, root string, chain *filter.Chain) (*Result, error) {
	c := &collector{root: root, chain: chain}

	singleFile := false
	for i, input := range inputs {
		info, err := os.Lstat(input)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}
		switch {
		case info.Mode().IsRegular():
			if err := c.addFile(input, info.Size()); err != nil {
				return nil, err
			}
			if i == 0 && len(inputs) == 1 {
				singleFile = true
			}
		case info.IsDir():
			if err := c.walkDir(input); err != nil {
				return nil, err
			}
		default:
			return nil, &UnsupportedTypeError{Path: input, Mode: info.Mode()}
		}
	}

	if len(c.files) == 0 {
		return nil, ErrNoFiles
	}

	return &Result{
		Files:      c.files,
		Total:      c.total,
		Root:       root,
		SingleFile: singleFile,
	}, nil
}

// walkDir expands dir depth-first in pre-order using an explicit stack so
// traversal depth is bounded on deep trees. For each directory popped, its
// file children are appended in ascending natural order, then its
// subdirectories are pushed in reverse natural order so they pop ascending.
func (c *collector) walkDir(dir string) error {
	stack := []string{dir}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(cur)
		if err != nil {
			return fmt.Errorf("readdir %s: %w", cur, err)
		}

		var fileNames, dirNames []string
		for _, entry := range entries {
			switch {
			case entry.Type().IsRegular():
				fileNames = append(fileNames, entry.Name())
			case entry.IsDir():
				dirNames = append(dirNames, entry.Name())
			default:
				return &UnsupportedTypeError{
					Path: filepath.Join(cur, entry.Name()),
					Mode: entry.Type(),
				}
			}
		}

		sort.Slice(fileNames, func(i, j int) bool {
			return naturalLess(fileNames[i], fileNames[j])
		})
		for _, name := range fileNames {
			path := filepath.Join(cur, name)
			info, err := os.Lstat(path)
			if err != nil {
				return fmt.Errorf("stat %s: %w", path, err)
			}
			if !c.matches(path, false, info.Size()) {
				continue
			}
			if err := c.addFile(path, info.Size()); err != nil {
				return err
			}
		}

		sort.Slice(dirNames, func(i, j int) bool {
			// Reverse order: the stack pops ascending.
			return naturalLess(dirNames[j], dirNames[i])
		})
		for _, name := range dirNames {
			path := filepath.Join(cur, name)
			if !c.matches(path, true, 0) {
				continue
			}
			stack = append(stack, path)
		}
	}

	return nil
}

// matches reports whether a walked path passes the filter chain. Paths are
// matched by their slash form relative to the torrent root.
func (c *collector) matches(path string, isDir bool, size int64) bool {
	if c.chain == nil || c.chain.Empty() {
		return true
	}
	rel, err := filepath.Rel(c.root, path)
	if err != nil {
		return true
	}
	return c.chain.Match(filepath.ToSlash(rel), isDir, size)
}

func (c *collector) addFile(path string, size int64) error {
	rel, err := relComponents(c.root, path)
	if err != nil {
		return err
	}
	c.files = append(c.files, &FileEntry{Path: path, Length: size, Rel: rel})
	c.total += size
	return nil
}

// relComponents splits path into its components under root. A path equal to
// the root (single-file torrents) yields its own base name.
func relComponents(root, path string) ([]string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return nil, fmt.Errorf("relative path for %s under %s: %w", path, root, err)
	}
	if rel == "." {
		return []string{filepath.Base(path)}, nil
	}
	return splitPath(rel), nil
}

func splitPath(p string) []string {
	var parts []string
	for {
		dir, base := filepath.Split(p)
		parts = append([]string{base}, parts...)
		if dir == "" {
			return parts
		}
		p = filepath.Clean(dir)
	}
}

// UnsupportedTypeError reports a path that is neither a regular file nor a
// directory (symlink, device, socket, fifo).
type UnsupportedTypeError struct {
	Path string
	Mode os.FileMode
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("%s: unsupported file type %s", e.Path, e.Mode.Type())
}
