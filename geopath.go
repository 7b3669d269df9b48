package osm2geo

import (
	"fmt"

	"github.com/paulmach/orb"
)

// GeoPath is ordered sequence of at least two points produced by segmenting a way
type GeoPath struct {
	WayID int64
	// Position of the last point in the node sequence of the way
	Index  int
	Points []GeoPoint
	// Value of `name` tag of the way. Empty if way has no name
	Name     string
	Highway  HighwayType
	OneWay   bool
	Reversed bool

	SourceNodeID int64
	TargetNodeID int64
}

// Key returns "<wayID>-<index>"
func (path *GeoPath) Key() string {
	return segmentKey(path.WayID, path.Index)
}

func segmentKey(wayID int64, index int) string {
	return fmt.Sprintf("%d-%d", wayID, index)
}

// LineString returns orb representation of the path
func (path *GeoPath) LineString() orb.LineString {
	line := make(orb.LineString, len(path.Points))
	for i, pt := range path.Points {
		line[i] = pt.Point()
	}
	return line
}

// LengthKm returns spherical length of the path
func (path *GeoPath) LengthKm() float64 {
	return getSphericalLength(path.Points)
}

// PathSet is insertion ordered map from segment key to GeoPath
type PathSet struct {
	keys   []string
	byKey  map[string]*GeoPath
	failed []*WayError
}

func newPathSet() *PathSet {
	return &PathSet{
		keys:  []string{},
		byKey: make(map[string]*GeoPath),
	}
}

func (set *PathSet) add(path *GeoPath) {
	key := path.Key()
	if _, ok := set.byKey[key]; !ok {
		set.keys = append(set.keys, key)
	}
	set.byKey[key] = path
}

// Keys returns segment keys in emission order
func (set *PathSet) Keys() []string {
	keys := make([]string, len(set.keys))
	copy(keys, set.keys)
	return keys
}

// Get returns path by segment key or nil
func (set *PathSet) Get(key string) *GeoPath {
	return set.byKey[key]
}

func (set *PathSet) Len() int {
	return len(set.keys)
}

// Paths returns paths in emission order
func (set *PathSet) Paths() []*GeoPath {
	paths := make([]*GeoPath, len(set.keys))
	for i, key := range set.keys {
		paths[i] = set.byKey[key]
	}
	return paths
}

// Failed returns ways skipped because of errors (ContinueOnError mode only)
func (set *PathSet) Failed() []*WayError {
	return set.failed
}
