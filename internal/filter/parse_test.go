package filter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRules(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "filter.rules")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeRules(t, `# junk we never want in a torrent
+ *.go
- *.log

- build/
noprefix.txt
`)

	c := NewChain()
	require.NoError(t, c.LoadFile(path))

	// Four rules in file order; the bare line defaults to exclude.
	require.Len(t, c.rules, 4)
	assert.True(t, c.rules[0].include)
	for _, r := range c.rules[1:] {
		assert.False(t, r.include)
	}

	assert.True(t, c.Match("main.go", false, 100))
	assert.False(t, c.Match("app.log", false, 100))
	assert.False(t, c.Match("build", true, 0))
	assert.False(t, c.Match("noprefix.txt", false, 100))
}

func TestLoadFileSkipsCommentsAndBlanks(t *testing.T) {
	path := writeRules(t, "# one\n\n# two\n- *.tmp\n# three\n+ keep.tmp\n")

	c := NewChain()
	require.NoError(t, c.LoadFile(path))
	assert.Len(t, c.rules, 2)
}

func TestLoadFileOnlyComments(t *testing.T) {
	path := writeRules(t, "# only comments\n\n")

	c := NewChain()
	require.NoError(t, c.LoadFile(path))
	assert.True(t, c.Empty())
}

func TestLoadFileMissing(t *testing.T) {
	c := NewChain()
	assert.Error(t, c.LoadFile(filepath.Join(t.TempDir(), "absent.rules")))
}
