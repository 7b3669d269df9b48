package osm2geo

import (
	"sort"
)

// Node is geo-referenced point of the graph
type Node struct {
	ID   int64
	Lat  float64
	Lon  float64
	Tags Tags

	// Filled by GraphBuilder only
	referencingWays map[int64]struct{}
}

// ReferencingWays returns sorted IDs of retained ways referencing this node
func (node *Node) ReferencingWays() []int64 {
	ids := make([]int64, 0, len(node.referencingWays))
	for id := range node.referencingWays {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (node *Node) ReferencingWaysCount() int {
	return len(node.referencingWays)
}

// IsReferencedBy checks if given way references this node
func (node *Node) IsReferencedBy(wayID int64) bool {
	_, ok := node.referencingWays[wayID]
	return ok
}

// IsCrossing returns true when node is shared by more than one way
func (node *Node) IsCrossing() bool {
	return len(node.referencingWays) > 1
}

// Point returns coordinates of the node
func (node *Node) Point() GeoPoint {
	return GeoPoint{Lat: node.Lat, Lon: node.Lon}
}

func (node *Node) addReferencingWay(wayID int64) {
	if node.referencingWays == nil {
		node.referencingWays = make(map[int64]struct{})
	}
	node.referencingWays[wayID] = struct{}{}
}
