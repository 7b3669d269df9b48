package osm2geo

import (
	"math"
	"testing"

	"github.com/paulmach/orb/planar"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func straightPath(oneway, reversed bool) *GeoPath {
	return &GeoPath{
		WayID: 1,
		Index: 2,
		Points: []GeoPoint{
			{Lat: 55.0, Lon: 37.000},
			{Lat: 55.0, Lon: 37.001},
			{Lat: 55.0, Lon: 37.002},
		},
		OneWay:   oneway,
		Reversed: reversed,
	}
}

func TestPathPolygonsFaces(t *testing.T) {
	builder := NewPolygonBuilder()
	polygons, err := builder.PathPolygons(straightPath(false, false), false)
	require.NoError(t, err)
	require.Len(t, polygons, 2)
	for _, polygon := range polygons {
		assert.Len(t, polygon, 4)
		ring := polygon.Ring()
		assert.Equal(t, ring[0], ring[len(ring)-1])
	}
	// Neighbouring faces share an edge
	assert.Equal(t, polygons[0][1], polygons[1][0])
	assert.Equal(t, polygons[0][2], polygons[1][3])
}

func TestPathPolygonsWidth(t *testing.T) {
	builder := NewPolygonBuilder(WithRibbonWidth(10))
	polygons, err := builder.PathPolygons(straightPath(false, false), false)
	require.NoError(t, err)
	face := polygons[0]
	// left[0] and right[0] are 10 meters apart on the ground
	width := greatCircleDistance(face[0], face[3]) * 1000.0
	assert.InDelta(t, 10.0, width, 0.05)
	// Ring is not degenerate
	assert.Greater(t, math.Abs(planar.Area(face.Ring())), 0.0)
}

func TestPathPolygonsTaper(t *testing.T) {
	builder := NewPolygonBuilder()

	twoWay, err := builder.PathPolygons(straightPath(false, false), true)
	require.NoError(t, err)
	assert.Len(t, twoWay[0], 4, "two-way paths are never tapered")
	assert.Len(t, twoWay[1], 4, "two-way paths are never tapered")

	forward, err := builder.PathPolygons(straightPath(true, false), true)
	require.NoError(t, err)
	require.Len(t, forward, 2)
	assert.Len(t, forward[0], 5, "tail notch on the first face")
	assert.Len(t, forward[1], 5, "head tip on the last face")
	tip := forward[1][2]
	assert.Greater(t, tip.Lon, 37.002)

	backward, err := builder.PathPolygons(straightPath(true, true), true)
	require.NoError(t, err)
	tip = backward[0][4]
	assert.Less(t, tip.Lon, 37.000)
	notch := backward[1][2]
	assert.Less(t, notch.Lon, 37.002)
}

func TestPathPolygonsTaperSingleFace(t *testing.T) {
	path := straightPath(true, false)
	path.Points = path.Points[:2]
	polygons, err := NewPolygonBuilder().PathPolygons(path, true)
	require.NoError(t, err)
	require.Len(t, polygons, 1)
	assert.Len(t, polygons[0], 6)
}

func TestPathPolygonsDeterministic(t *testing.T) {
	builder := NewPolygonBuilder()
	first, err := builder.PathPolygons(straightPath(true, false), true)
	require.NoError(t, err)
	second, err := builder.PathPolygons(straightPath(true, false), true)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPathPolygonsDegenerate(t *testing.T) {
	path := &GeoPath{
		WayID:  7,
		Index:  1,
		Points: []GeoPoint{{Lat: 55.0, Lon: 37.0}, {Lat: 55.0, Lon: 37.0}},
	}
	_, err := NewPolygonBuilder().PathPolygons(path, false)
	assert.True(t, errors.Is(err, ErrDegenerateWay))

	paths := newPathSet()
	paths.add(path)
	paths.add(straightPath(false, false))

	_, err = NewPolygonBuilder().ToPolygons(paths, false)
	assert.True(t, errors.Is(err, ErrDegenerateWay))

	polygons, err := NewPolygonBuilder(WithPolygonsContinueOnError(true)).ToPolygons(paths, false)
	require.NoError(t, err)
	assert.Equal(t, 2, polygons.Len())
	require.Len(t, polygons.Failed(), 1)
	assert.Equal(t, int64(7), polygons.Failed()[0].WayID)
}

func TestToPolygonsKeys(t *testing.T) {
	graph := mustBuild(crossDocument(), Streets, true)
	paths, err := SegmentGraph(graph, SegmentOptions{SplitAtCrossings: true})
	require.NoError(t, err)
	polygons, err := NewPolygonBuilder().ToPolygons(paths, false)
	require.NoError(t, err)

	assert.Equal(t, []string{"100-2-0", "100-2-1", "100-4-0", "100-4-1", "200-1-0"}, polygons.Keys())
	assert.Equal(t, []string{"100-2-0", "100-2-1"}, polygons.BySegment("100-2"))
	for _, key := range polygons.Keys() {
		assert.NotNil(t, paths.Get(SegmentKey(key)))
		assert.NotNil(t, polygons.Get(key))
	}
}

func TestPolygonBuilderOptions(t *testing.T) {
	builder := NewPolygonBuilder(WithRibbonWidth(-1), WithMiterLimit(0.5))
	assert.Equal(t, DEFAULT_RIBBON_WIDTH, builder.width)
	assert.Equal(t, DEFAULT_MITER_LIMIT, builder.miterLimit)
}

func TestSegmentKey(t *testing.T) {
	assert.Equal(t, "100-2", SegmentKey("100-2-0"))
	assert.Equal(t, "abc", SegmentKey("abc"))
}
