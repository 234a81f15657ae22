package scan

import (
	"fmt"
	"path/filepath"
	"strings"
)

// InferRoot derives the torrent root from the input paths: it starts at the
// first input and narrows to the deepest ancestor shared by every input.
// Inputs anchored under different filesystem roots are rejected.
func InferRoot(inputs []string) (string, error) {
	root := filepath.Clean(inputs[0])
	for _, p := range inputs[1:] {
		p = filepath.Clean(p)
		if filepath.VolumeName(p) != filepath.VolumeName(root) {
			return "", fmt.Errorf("inputs %s and %s share no common filesystem root", root, p)
		}
		root = commonAncestor(root, p)
	}
	return root, nil
}

// CheckRoot verifies that every input equals root or is a descendant of it.
func CheckRoot(inputs []string, root string) error {
	root = filepath.Clean(root)
	for _, p := range inputs {
		if !underRoot(root, filepath.Clean(p)) {
			return fmt.Errorf("input %s is outside the root %s", p, root)
		}
	}
	return nil
}

func underRoot(root, p string) bool {
	if p == root {
		return true
	}
	sep := string(filepath.Separator)
	if !strings.HasSuffix(root, sep) {
		root += sep
	}
	return strings.HasPrefix(p, root)
}

// commonAncestor returns the deepest path that is an ancestor of (or equal
// to) both a and b.
func commonAncestor(a, b string) string {
	sep := string(filepath.Separator)
	ca := strings.Split(a, sep)
	cb := strings.Split(b, sep)

	n := len(ca)
	if len(cb) < n {
		n = len(cb)
	}
	i := 0
	for i < n && ca[i] == cb[i] {
		i++
	}

	common := strings.Join(ca[:i], sep)
	if common == "" {
		return sep // diverged at the filesystem root
	}
	return common
}
