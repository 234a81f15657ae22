// Package filter selects which walked paths end up in a torrent. A Chain
// holds ordered rsync-style include/exclude rules plus optional size
// bounds; the scan layer consults it for every file and directory it
// visits, pruning whole subtrees when a directory is excluded.
package filter

// rule pairs a compiled pattern with its disposition.
type rule struct {
	pat     *glob
	include bool
}

// Chain is an ordered rule list with optional size bounds. Rules are
// evaluated in the order they were added; the first pattern matching a
// path decides it, and paths no rule matches are included.
type Chain struct {
	rules   []rule
	minSize int64
	maxSize int64
}

func NewChain() *Chain {
	return &Chain{}
}

func (c *Chain) add(pattern string, include bool) error {
	g, err := compileGlob(pattern)
	if err != nil {
		return err
	}
	c.rules = append(c.rules, rule{pat: g, include: include})
	return nil
}

// AddExclude appends an exclude rule.
func (c *Chain) AddExclude(pattern string) error {
	return c.add(pattern, false)
}

// AddInclude appends an include rule.
func (c *Chain) AddInclude(pattern string) error {
	return c.add(pattern, true)
}

// SetMinSize drops regular files smaller than n bytes.
func (c *Chain) SetMinSize(n int64) {
	c.minSize = n
}

// SetMaxSize drops regular files larger than n bytes.
func (c *Chain) SetMaxSize(n int64) {
	c.maxSize = n
}

// Empty reports whether the chain has no rules and no size bounds.
func (c *Chain) Empty() bool {
	return len(c.rules) == 0 && c.minSize == 0 && c.maxSize == 0
}

// Match reports whether a path should be included. rel is the
// slash-separated path relative to the torrent root; size is ignored for
// directories.
func (c *Chain) Match(rel string, isDir bool, size int64) bool {
	if !isDir {
		if c.minSize > 0 && size < c.minSize {
			return false
		}
		if c.maxSize > 0 && size > c.maxSize {
			return false
		}
	}

	for _, r := range c.rules {
		if r.pat.match(rel, isDir) {
			return r.include
		}
	}
	return true
}
