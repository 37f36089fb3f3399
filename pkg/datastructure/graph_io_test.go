package datastructure

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/osmroute/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"os"
)

func TestGraphRoundtrip(t *testing.T) {
	g := buildTestGraph()
	filename := filepath.Join(t.TempDir(), "test.graph")

	require.NoError(t, g.WriteGraph(filename))

	got, err := ReadGraph(filename)
	require.NoError(t, err)

	assert.Equal(t, g.NumberOfVertices(), got.NumberOfVertices())
	assert.Equal(t, g.NumberOfEdges(), got.NumberOfEdges())

	g.ForVertices(func(v Vertex, id Index) {
		gv := got.GetVertex(id)
		assert.Equal(t, v.GetLat(), gv.GetLat())
		assert.Equal(t, v.GetLon(), gv.GetLon())
		assert.Equal(t, v.GetOsmId(), gv.GetOsmId())
		assert.Equal(t, v.GetFirstOut(), gv.GetFirstOut())
	})

	for i := 0; i < g.NumberOfEdges(); i++ {
		want := g.GetOutEdge(Index(i))
		have := got.GetOutEdge(Index(i))
		assert.Equal(t, want.GetHead(), have.GetHead())
		assert.Equal(t, want.GetLength(), have.GetLength())
		assert.Equal(t, want.GetSpeed(), have.GetSpeed())
		assert.Equal(t, want.GetFlags(), have.GetFlags())
	}

	id, ok := got.ResolveOsmId(1003)
	assert.True(t, ok)
	assert.Equal(t, Index(2), id)

	assert.Equal(t, g.GetBoundingBox().GetMinLat(), got.GetBoundingBox().GetMinLat())
	assert.Equal(t, g.GetBoundingBox().GetMaxLon(), got.GetBoundingBox().GetMaxLon())
}

func TestReadGraphMissingFile(t *testing.T) {
	_, err := ReadGraph(filepath.Join(t.TempDir(), "nope.graph"))
	assert.Error(t, err)
}

func TestReadGraphTruncated(t *testing.T) {
	// header promises 5 vertices but the payload ends after it
	filename := writeBzip2(t, "5 2\n")

	_, err := ReadGraph(filename)
	require.Error(t, err)
	assertInvalidGraph(t, err)
}

func TestReadGraphGarbledHeader(t *testing.T) {
	filename := writeBzip2(t, "not a graph header\n")

	_, err := ReadGraph(filename)
	require.Error(t, err)
	assertInvalidGraph(t, err)

	var ierr *util.Error
	require.True(t, errors.As(err, &ierr))
	assert.Contains(t, ierr.Error(), "header")
}

func TestReadGraphGarbledVertexLine(t *testing.T) {
	filename := writeBzip2(t, "1 0\nabc def ghi jkl mno\n")

	_, err := ReadGraph(filename)
	require.Error(t, err)
	assertInvalidGraph(t, err)
}

func writeBzip2(t *testing.T, payload string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "corrupt.graph")
	f, err := os.Create(filename)
	require.NoError(t, err)
	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	require.NoError(t, err)
	_, err = bz.Write([]byte(payload))
	require.NoError(t, err)
	require.NoError(t, bz.Close())
	require.NoError(t, f.Close())
	return filename
}
