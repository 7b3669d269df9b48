package osm2geo

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func writeSample(t *testing.T) string {
	fname := filepath.Join(t.TempDir(), "sample.osm")
	require.NoError(t, os.WriteFile(fname, []byte(sampleXML), 0o644))
	return fname
}

func TestParser(t *testing.T) {
	parser := NewParser(
		writeSample(t),
		ParserWithTaper(true),
		ParserWithVerbose(true),
		ParserWithLogger(zaptest.NewLogger(t)),
	)
	t.Log(parser)

	result, err := parser.Parse(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Graph.WaysCount())
	assert.Equal(t, []string{"10-1", "20-1"}, result.Paths.Keys())
	assert.Equal(t, []string{"10-1-0", "20-1-0"}, result.Polygons.Keys())
	// Way 20 is one-way so its single face holds both the tip and the notch
	assert.Len(t, result.Polygons.Get("20-1-0"), 6)
	assert.Len(t, result.Polygons.Get("10-1-0"), 4)
}

func TestParserNoSplit(t *testing.T) {
	parser := NewParser(
		writeSample(t),
		ParserWithFilter(AnyWay),
		ParserWithSplitAtCrossings(false),
		ParserWithPruneUnreferenced(false),
	)
	result, err := parser.Parse(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, result.Graph.NodesCount())
	assert.Equal(t, 2, result.Paths.Len())
}

func TestParserConfigurationError(t *testing.T) {
	parser := NewParser("does-not-exist.osm", ParserWithFilter(nil))
	_, err := parser.Parse(context.Background())
	assert.True(t, errors.Is(err, ErrNoFilter))

	parser = NewParser("does-not-exist.osm")
	_, err = parser.Parse(context.Background())
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrConfiguration))
}

func TestParseDocumentMalformed(t *testing.T) {
	doc := abcDocument()
	doc.Ways = append(doc.Ways, decodedWay(30, []int64{3, 42}, tag("highway", "residential")))
	_, err := NewParser("", ParserWithFilter(AnyWay)).ParseDocument(doc)
	assert.True(t, errors.Is(err, ErrMissingNode))
}
