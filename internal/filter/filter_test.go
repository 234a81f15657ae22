package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChainEmptyIncludesEverything(t *testing.T) {
	c := NewChain()

	assert.True(t, c.Empty())
	assert.True(t, c.Match("any/file.txt", false, 1024))
	assert.True(t, c.Match("any/dir", true, 0))
}

func TestChainExclude(t *testing.T) {
	c := NewChain()
	require.NoError(t, c.AddExclude("*.log"))

	assert.False(t, c.Match("app.log", false, 100))
	assert.False(t, c.Match("sub/debug.log", false, 100))
	assert.True(t, c.Match("app.txt", false, 100))
}

func TestChainFirstMatchWins(t *testing.T) {
	// Rule order is significant, as in rsync: an include listed before a
	// broader exclude rescues the path, but not the other way around.
	rescue := NewChain()
	require.NoError(t, rescue.AddInclude("important.log"))
	require.NoError(t, rescue.AddExclude("*.log"))
	assert.True(t, rescue.Match("important.log", false, 100))
	assert.False(t, rescue.Match("debug.log", false, 100))

	tooLate := NewChain()
	require.NoError(t, tooLate.AddExclude("*.log"))
	require.NoError(t, tooLate.AddInclude("important.log"))
	assert.False(t, tooLate.Match("important.log", false, 100))
}

func TestChainDirOnlyRule(t *testing.T) {
	c := NewChain()
	require.NoError(t, c.AddExclude("build/"))

	assert.False(t, c.Match("build", true, 0))
	assert.True(t, c.Match("build", false, 100)) // file named "build" passes
}

func TestChainIncludeRescuesFromStarExclude(t *testing.T) {
	c := NewChain()
	require.NoError(t, c.AddInclude("**/*.go"))
	require.NoError(t, c.AddExclude("*"))

	assert.True(t, c.Match("main.go", false, 100))
	assert.True(t, c.Match("internal/engine/engine.go", false, 100))
	assert.False(t, c.Match("readme.md", false, 100))
}

func TestChainSizeBounds(t *testing.T) {
	c := NewChain()
	c.SetMinSize(100)
	c.SetMaxSize(10000)

	assert.False(t, c.Empty())
	assert.False(t, c.Match("tiny.txt", false, 50))
	assert.True(t, c.Match("medium.txt", false, 500))
	assert.False(t, c.Match("huge.bin", false, 50000))

	// Directories are never size-filtered.
	assert.True(t, c.Match("somedir", true, 0))
}

func TestChainSingleSizeBound(t *testing.T) {
	min := NewChain()
	min.SetMinSize(1 << 20)
	assert.False(t, min.Match("small.txt", false, 512))
	assert.True(t, min.Match("big.bin", false, 2<<20))

	max := NewChain()
	max.SetMaxSize(1 << 20)
	assert.True(t, max.Match("small.txt", false, 512))
	assert.False(t, max.Match("big.bin", false, 2<<20))
}
