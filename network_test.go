package osm2geo

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func abcPaths(t *testing.T, onewayFirst string) *PathSet {
	doc := abcDocument()
	if onewayFirst != "" {
		doc.Ways[0].Tags = append(doc.Ways[0].Tags, tag("oneway", onewayFirst))
	}
	graph := mustBuild(doc, AnyWay, true)
	paths, err := SegmentGraph(graph, SegmentOptions{SplitAtCrossings: true})
	require.NoError(t, err)
	return paths
}

func TestSegmentNetwork(t *testing.T) {
	net := NewSegmentNetwork(abcPaths(t, ""))
	links := net.Links()
	require.Len(t, links, 2)
	assert.Equal(t, "10-1", links[0].SegmentKey)
	assert.Equal(t, int64(1), links[0].SourceNodeID)
	assert.Equal(t, int64(2), links[0].TargetNodeID)
	assert.True(t, links[0].Bidirectional)
	assert.InDelta(t, 638.0, links[0].LengthMeters, 5.0)

	assert.Equal(t, 3, net.NodesCount())
	assert.Equal(t, 2, net.Node(2).Degree)
	assert.Equal(t, 1, net.Node(1).Degree)
}

func TestSegmentNetworkReversed(t *testing.T) {
	net := NewSegmentNetwork(abcPaths(t, "-1"))
	link := net.Links()[0]
	assert.False(t, link.Bidirectional)
	assert.Equal(t, int64(2), link.SourceNodeID)
	assert.Equal(t, int64(1), link.TargetNodeID)
	assert.Equal(t, 37.02, link.Geom[0].X())
}

func TestWriteLinksCSV(t *testing.T) {
	net := NewSegmentNetwork(abcPaths(t, "yes"))
	buf := &bytes.Buffer{}
	require.NoError(t, net.WriteLinksCSV(buf))

	reader := csv.NewReader(buf)
	reader.Comma = ';'
	records, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "segment_key", records[0][1])
	assert.Equal(t, "10-1", records[1][1])
	assert.Equal(t, "residential", records[1][8])
	assert.Equal(t, "false", records[1][5])
	assert.Equal(t, "true", records[2][5])
	assert.Equal(t, "LINESTRING(37.01 55.05,37.02 55.05)", records[1][9])
}

func TestExportToCSV(t *testing.T) {
	net := NewSegmentNetwork(abcPaths(t, ""))
	dir := t.TempDir()
	require.NoError(t, net.ExportToCSV(filepath.Join(dir, "graph.csv")))

	nodes, err := os.ReadFile(filepath.Join(dir, "graph_nodes.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(nodes), "id;degree;longitude;latitude")
	_, err = os.Stat(filepath.Join(dir, "graph_links.csv"))
	assert.NoError(t, err)
}

func TestBuildContractionGraph(t *testing.T) {
	net := NewSegmentNetwork(abcPaths(t, ""))
	graph, err := BuildContractionGraph(net, true)
	require.NoError(t, err)

	cost, path := graph.ShortestPath(1, 3)
	assert.Equal(t, []int64{1, 2, 3}, path)
	assert.InDelta(t, 1.276, cost, 0.01)

	cost, path = graph.ShortestPath(3, 1)
	assert.Equal(t, []int64{3, 2, 1}, path)
	assert.Greater(t, cost, 0.0)
}

func TestBuildContractionGraphOneWay(t *testing.T) {
	net := NewSegmentNetwork(abcPaths(t, "yes"))
	graph, err := BuildContractionGraph(net, true)
	require.NoError(t, err)

	_, path := graph.ShortestPath(1, 3)
	assert.Equal(t, []int64{1, 2, 3}, path)
	_, path = graph.ShortestPath(3, 1)
	assert.Empty(t, path)
}
