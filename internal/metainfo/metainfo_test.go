package metainfo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/mkt/internal/scan"
)

func baseParams() Params {
	return Params{
		Name:        "content",
		PieceLength: 262144,
		Pieces:      make([]byte, 40),
		Files: []*scan.FileEntry{
			{Path: "/data/content/a.txt", Length: 100, Rel: []string{"a.txt"}},
			{Path: "/data/content/sub/b.txt", Length: 200, Rel: []string{"sub", "b.txt"}},
		},
		CreatedAt: time.Unix(1700000000, 0),
	}
}

func info(t *testing.T, doc Document) Document {
	t.Helper()
	d, ok := doc["info"].(Document)
	require.True(t, ok, "info dict missing")
	return d
}

func TestBuild_MultiFileLayout(t *testing.T) {
	doc := Build(baseParams())
	inf := info(t, doc)

	assert.Equal(t, "content", inf["name"])
	assert.Equal(t, int64(262144), inf["piece length"])
	assert.Len(t, inf["pieces"].(string), 40)
	assert.NotContains(t, inf, "length")

	files, ok := inf["files"].([]any)
	require.True(t, ok)
	require.Len(t, files, 2)

	first := files[0].(Document)
	assert.Equal(t, int64(100), first["length"])
	assert.Equal(t, []string{"a.txt"}, first["path"])

	second := files[1].(Document)
	assert.Equal(t, []string{"sub", "b.txt"}, second["path"])
}

func TestBuild_SingleFileLayout(t *testing.T) {
	p := baseParams()
	p.SingleFile = true
	p.Files = p.Files[:1]

	inf := info(t, Build(p))
	assert.Equal(t, int64(100), inf["length"])
	assert.NotContains(t, inf, "files")
}

func TestBuild_Trackers(t *testing.T) {
	t.Run("none", func(t *testing.T) {
		doc := Build(baseParams())
		assert.NotContains(t, doc, "announce")
		assert.NotContains(t, doc, "announce-list")
	})

	t.Run("one", func(t *testing.T) {
		p := baseParams()
		p.Announce = []string{"http://t1/announce"}
		doc := Build(p)
		assert.Equal(t, "http://t1/announce", doc["announce"])
		assert.NotContains(t, doc, "announce-list")
	})

	t.Run("several keep order", func(t *testing.T) {
		p := baseParams()
		p.Announce = []string{"http://t1/a", "udp://t2/a", "http://t3/a"}
		doc := Build(p)

		assert.Equal(t, "http://t1/a", doc["announce"])
		tiers, ok := doc["announce-list"].([]any)
		require.True(t, ok)
		require.Len(t, tiers, 3)
		assert.Equal(t, []any{"udp://t2/a"}, tiers[1])
	})
}

func TestBuild_PrivateAndSource(t *testing.T) {
	p := baseParams()
	inf := info(t, Build(p))
	assert.NotContains(t, inf, "private")
	assert.NotContains(t, inf, "source")

	p.Private = true
	p.Source = "LABEL"
	inf = info(t, Build(p))
	assert.Equal(t, 1, inf["private"])
	assert.Equal(t, "LABEL", inf["source"])
}

func TestBuild_CreationDate(t *testing.T) {
	doc := Build(baseParams())
	assert.Equal(t, int64(1700000000), doc["creation date"])

	p := baseParams()
	p.CreatedAt = time.Time{}
	assert.NotContains(t, Build(p), "creation date")
}

func TestBuild_CreatedBy(t *testing.T) {
	p := baseParams()
	p.CreatedBy = "mkt/1.0"
	assert.Equal(t, "mkt/1.0", Build(p)["created by"])

	assert.NotContains(t, Build(baseParams()), "created by")
}

func TestBuild_EncodingFlag(t *testing.T) {
	doc := Build(baseParams())
	assert.NotContains(t, doc, "encoding", "all-ASCII tree omits encoding")

	p := baseParams()
	p.Files = append(p.Files, &scan.FileEntry{
		Path:   "/data/content/файл.txt",
		Length: 10,
		Rel:    []string{"файл.txt"},
	})
	assert.Equal(t, "UTF-8", Build(p)["encoding"])
}
