package osm2geo

import (
	"github.com/paulmach/osm"
)

func decodedNode(id int64, lat, lon float64, tags ...osm.Tag) *osm.Node {
	return &osm.Node{ID: osm.NodeID(id), Lat: lat, Lon: lon, Visible: true, Tags: tags}
}

func decodedWay(id int64, refs []int64, tags ...osm.Tag) *osm.Way {
	nodes := make(osm.WayNodes, len(refs))
	for i, ref := range refs {
		nodes[i] = osm.WayNode{ID: osm.NodeID(ref)}
	}
	return &osm.Way{ID: osm.WayID(id), Nodes: nodes, Visible: true, Tags: tags}
}

func tag(key, value string) osm.Tag {
	return osm.Tag{Key: key, Value: value}
}

// abcDocument has collinear nodes A(1), B(2), C(3) and ways 10=[A,B], 20=[B,C]
func abcDocument() *Document {
	return &Document{
		Bounds: &osm.Bounds{MinLat: 55.0, MinLon: 37.0, MaxLat: 55.1, MaxLon: 37.1},
		Nodes: []*osm.Node{
			decodedNode(1, 55.05, 37.01),
			decodedNode(2, 55.05, 37.02),
			decodedNode(3, 55.05, 37.03),
		},
		Ways: []*osm.Way{
			decodedWay(10, []int64{1, 2}, tag("highway", "residential")),
			decodedWay(20, []int64{2, 3}, tag("highway", "residential")),
		},
	}
}

// crossDocument has long way 100 = [1..5] and short way 200 = [3, 6] sharing node 3.
// Way 300 is a footway using exclusive nodes 7 and 8
func crossDocument() *Document {
	return &Document{
		Nodes: []*osm.Node{
			decodedNode(1, 55.0000, 37.0000),
			decodedNode(2, 55.0001, 37.0010),
			decodedNode(3, 55.0002, 37.0020),
			decodedNode(4, 55.0003, 37.0030),
			decodedNode(5, 55.0004, 37.0040),
			decodedNode(6, 55.0012, 37.0020),
			decodedNode(7, 55.0100, 37.0100),
			decodedNode(8, 55.0110, 37.0110),
			decodedNode(9, 55.0200, 37.0200, tag("amenity", "bench")),
		},
		Ways: []*osm.Way{
			decodedWay(100, []int64{1, 2, 3, 4, 5}, tag("highway", "primary"), tag("name", "Main")),
			decodedWay(200, []int64{3, 6}, tag("highway", "service")),
			decodedWay(300, []int64{7, 8}, tag("highway", "footway")),
		},
	}
}

func mustBuild(doc *Document, filter WayFilter, prune bool) *OsmGraph {
	graph, err := BuildGraph(doc, filter, prune)
	if err != nil {
		panic(err)
	}
	return graph
}
