package filter

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadFile appends rules from a file, one per line, in rsync filter
// shorthand: "+ pattern" includes, "- pattern" excludes, and a bare
// pattern excludes. Blank lines and lines starting with # are skipped.
func (c *Chain) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open filter file: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}

		include := false
		switch {
		case strings.HasPrefix(line, "+ "):
			include = true
			line = strings.TrimSpace(line[2:])
		case strings.HasPrefix(line, "- "):
			line = strings.TrimSpace(line[2:])
		}

		if err := c.add(line, include); err != nil {
			return fmt.Errorf("filter file %s line %d: %w", path, n, err)
		}
	}
	return sc.Err()
}
