package osm2geo

import (
	"fmt"
	"math"
	"strings"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

const (
	// DEFAULT_RIBBON_WIDTH is width of a rendered road in meters
	DEFAULT_RIBBON_WIDTH = 6.0
	// DEFAULT_MITER_LIMIT is max ratio between miter length and half of the ribbon width
	DEFAULT_MITER_LIMIT = 4.0
)

// Polygon is open ring (the first point is not repeated at the end)
type Polygon []GeoPoint

// Ring returns closed orb ring
func (polygon Polygon) Ring() orb.Ring {
	ring := make(orb.Ring, 0, len(polygon)+1)
	for _, pt := range polygon {
		ring = append(ring, pt.Point())
	}
	if len(polygon) > 0 {
		ring = append(ring, polygon[0].Point())
	}
	return ring
}

// PolygonSet is insertion ordered multimap: every segment key expands into one or more polygon keys
type PolygonSet struct {
	keys      []string
	byKey     map[string]Polygon
	bySegment map[string][]string
	failed    []*WayError
}

func newPolygonSet() *PolygonSet {
	return &PolygonSet{
		keys:      []string{},
		byKey:     make(map[string]Polygon),
		bySegment: make(map[string][]string),
	}
}

func (set *PolygonSet) add(segmentKey string, polygons []Polygon) {
	for i, polygon := range polygons {
		key := fmt.Sprintf("%s-%d", segmentKey, i)
		set.keys = append(set.keys, key)
		set.byKey[key] = polygon
		set.bySegment[segmentKey] = append(set.bySegment[segmentKey], key)
	}
}

// Keys returns polygon keys ("<segmentKey>-<polygonIndex>") in emission order
func (set *PolygonSet) Keys() []string {
	keys := make([]string, len(set.keys))
	copy(keys, set.keys)
	return keys
}

// Get returns polygon by its key or nil
func (set *PolygonSet) Get(key string) Polygon {
	return set.byKey[key]
}

// BySegment returns polygon keys produced for given segment key
func (set *PolygonSet) BySegment(segmentKey string) []string {
	return set.bySegment[segmentKey]
}

func (set *PolygonSet) Len() int {
	return len(set.keys)
}

// Failed returns errors of skipped paths (continue-on-error mode only)
func (set *PolygonSet) Failed() []*WayError {
	return set.failed
}

// SegmentKey strips polygon index from polygon key
func SegmentKey(polygonKey string) string {
	idx := strings.LastIndex(polygonKey, "-")
	if idx < 0 {
		return polygonKey
	}
	return polygonKey[:idx]
}

// PolygonBuilder widens paths into ribbons
//
// Every path is projected to EPSG:3857 and offset by half of the width to both sides with mitred joins.
// Each straight piece of the path gives one quadrilateral face: left[k], left[k+1], right[k+1], right[k].
// Tapered one-way paths get an arrow head (a tip protruding half width beyond the end) on the last face
// and an arrow tail (a notch pointing inside) on the first face. For `oneway=-1` head and tail swap sides
type PolygonBuilder struct {
	width           float64
	miterLimit      float64
	continueOnError bool
}

func NewPolygonBuilder(options ...func(*PolygonBuilder)) *PolygonBuilder {
	builder := &PolygonBuilder{
		width:      DEFAULT_RIBBON_WIDTH,
		miterLimit: DEFAULT_MITER_LIMIT,
	}
	for _, option := range options {
		option(builder)
	}
	return builder
}

// WithRibbonWidth sets width in meters. Non-positive values are ignored
func WithRibbonWidth(width float64) func(*PolygonBuilder) {
	return func(builder *PolygonBuilder) {
		if width > 0 {
			builder.width = width
		}
	}
}

// WithMiterLimit sets max miter length relative to half width. Values less than 1 are ignored
func WithMiterLimit(limit float64) func(*PolygonBuilder) {
	return func(builder *PolygonBuilder) {
		if limit >= 1 {
			builder.miterLimit = limit
		}
	}
}

// WithPolygonsContinueOnError skips paths which can't be widened instead of aborting
func WithPolygonsContinueOnError(continueOnError bool) func(*PolygonBuilder) {
	return func(builder *PolygonBuilder) {
		builder.continueOnError = continueOnError
	}
}

// ToPolygons converts every path into faces keyed by "<segmentKey>-<polygonIndex>"
func (builder *PolygonBuilder) ToPolygons(paths *PathSet, taper bool) (*PolygonSet, error) {
	result := newPolygonSet()
	for _, path := range paths.Paths() {
		polygons, err := builder.PathPolygons(path, taper)
		if err != nil {
			if builder.continueOnError {
				if wayErr, ok := err.(*WayError); ok {
					result.failed = append(result.failed, wayErr)
					continue
				}
			}
			return nil, errors.Wrapf(err, "Can't build polygons for segment '%s'", path.Key())
		}
		result.add(path.Key(), polygons)
	}
	return result, nil
}

// PathPolygons returns faces of the ribbon for a single path
func (builder *PolygonBuilder) PathPolygons(path *GeoPath, taper bool) ([]Polygon, error) {
	line := lineToEuclidean(path.Points)
	if len(line) < 2 {
		return nil, &WayError{
			WayID: path.WayID,
			Err:   errors.Wrapf(ErrDegenerateWay, "segment '%s' has less than 2 distinct points", path.Key()),
		}
	}
	half := builder.width / 2.0 * mercatorScale(path.Points[0].Lat)
	left := offsetCurve(line, half, builder.miterLimit)
	right := offsetCurve(line, -half, builder.miterLimit)

	n := len(line)
	var startExtra, endExtra *orb.Point
	if taper && path.OneWay {
		startDir := unitDirection(line[0], line[1])
		endDir := unitDirection(line[n-2], line[n-1])
		// Notch must not reach the far end of the face
		firstLen := findDist(line[0], line[1])
		lastLen := findDist(line[n-2], line[n-1])
		if !path.Reversed {
			tip := shiftPoint(line[n-1], endDir, half)
			notch := shiftPoint(line[0], startDir, math.Min(half, firstLen/2))
			endExtra, startExtra = &tip, &notch
		} else {
			tip := shiftPoint(line[0], startDir, -half)
			notch := shiftPoint(line[n-1], endDir, -math.Min(half, lastLen/2))
			startExtra, endExtra = &tip, &notch
		}
	}

	polygons := make([]Polygon, 0, n-1)
	for k := 0; k < n-1; k++ {
		face := make(orb.Ring, 0, 6)
		face = append(face, left[k], left[k+1])
		if k == n-2 && endExtra != nil {
			face = append(face, *endExtra)
		}
		face = append(face, right[k+1], right[k])
		if k == 0 && startExtra != nil {
			face = append(face, *startExtra)
		}
		polygon := make(Polygon, len(face))
		for i, pt := range face {
			polygon[i] = pointFromEuclidean(pt)
		}
		polygons = append(polygons, polygon)
	}
	return polygons, nil
}

func shiftPoint(pt, dir orb.Point, distance float64) orb.Point {
	return orb.Point{pt[0] + dir[0]*distance, pt[1] + dir[1]*distance}
}
