package osm2geo

import (
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
)

// BoundingBox is extent declared by source document
type BoundingBox struct {
	MinLat float64
	MinLon float64
	MaxLat float64
	MaxLon float64
}

func newBoundingBox(bounds *osm.Bounds) *BoundingBox {
	if bounds == nil {
		return nil
	}
	return &BoundingBox{
		MinLat: bounds.MinLat,
		MinLon: bounds.MinLon,
		MaxLat: bounds.MaxLat,
		MaxLon: bounds.MaxLon,
	}
}

// Bound returns orb representation of the box (X == Lon, Y == Lat)
func (box *BoundingBox) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{box.MinLon, box.MinLat},
		Max: orb.Point{box.MaxLon, box.MaxLat},
	}
}

// OsmGraph is cross-referenced set of nodes and ways
//
// Graph is mutated by GraphBuilder only. After Build returns nobody writes to it, so it is safe for concurrent read-only access
type OsmGraph struct {
	bounds *BoundingBox
	nodes  map[int64]*Node
	ways   map[int64]*Way
}

func newOsmGraph(bounds *BoundingBox, nodesCapacity int) *OsmGraph {
	return &OsmGraph{
		bounds: bounds,
		nodes:  make(map[int64]*Node, nodesCapacity),
		ways:   make(map[int64]*Way),
	}
}

// Bounds returns bounding box of source document or nil if document had not provided it
func (graph *OsmGraph) Bounds() *BoundingBox {
	return graph.bounds
}

// Node returns node by its ID or nil
func (graph *OsmGraph) Node(id int64) *Node {
	return graph.nodes[id]
}

// Way returns way by its ID or nil
func (graph *OsmGraph) Way(id int64) *Way {
	return graph.ways[id]
}

// Nodes returns underlying map. Must not be modified
func (graph *OsmGraph) Nodes() map[int64]*Node {
	return graph.nodes
}

// Ways returns underlying map. Must not be modified
func (graph *OsmGraph) Ways() map[int64]*Way {
	return graph.ways
}

func (graph *OsmGraph) NodesCount() int {
	return len(graph.nodes)
}

func (graph *OsmGraph) WaysCount() int {
	return len(graph.ways)
}

// NodeIDs returns sorted IDs of nodes
func (graph *OsmGraph) NodeIDs() []int64 {
	ids := make([]int64, 0, len(graph.nodes))
	for id := range graph.nodes {
		ids = append(ids, id)
	}
	sortIDs(ids)
	return ids
}

// WayIDs returns sorted IDs of ways
func (graph *OsmGraph) WayIDs() []int64 {
	ids := make([]int64, 0, len(graph.ways))
	for id := range graph.ways {
		ids = append(ids, id)
	}
	sortIDs(ids)
	return ids
}

// Crossings returns sorted IDs of nodes referenced by more than one way
func (graph *OsmGraph) Crossings() []int64 {
	ids := []int64{}
	for id, node := range graph.nodes {
		if node.IsCrossing() {
			ids = append(ids, id)
		}
	}
	sortIDs(ids)
	return ids
}

// Extent returns bound of the nodes present in graph
func (graph *OsmGraph) Extent() orb.Bound {
	pts := make(orb.MultiPoint, 0, len(graph.nodes))
	for _, node := range graph.nodes {
		pts = append(pts, orb.Point{node.Lon, node.Lat})
	}
	return pts.Bound()
}

func (graph *OsmGraph) insertNode(node *Node) {
	graph.nodes[node.ID] = node
}

func (graph *OsmGraph) insertWay(way *Way) {
	graph.ways[way.ID] = way
}

func sortIDs(ids []int64) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
