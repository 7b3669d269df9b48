package osm2geo

import (
	"github.com/paulmach/osm"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// decodedNodeToGraphNode converts decoded record to graph node without back-references
func decodedNodeToGraphNode(decoded *osm.Node, logger *zap.Logger) (*Node, error) {
	if decoded == nil || decoded.ID == 0 {
		return nil, errors.Wrap(ErrMissingIdentity, "node record has no ID")
	}
	id := int64(decoded.ID)
	return &Node{
		ID:   id,
		Lat:  decoded.Lat,
		Lon:  decoded.Lon,
		Tags: newTags("node", id, decoded.Tags, logger),
	}, nil
}

// decodedWayToGraphWay converts decoded record to graph way keeping order of references
func decodedWayToGraphWay(decoded *osm.Way, logger *zap.Logger) (*Way, error) {
	if decoded == nil || decoded.ID == 0 {
		return nil, errors.Wrap(ErrMissingIdentity, "way record has no ID")
	}
	id := int64(decoded.ID)
	way := &Way{
		ID:    id,
		Nodes: make([]int64, 0, len(decoded.Nodes)),
		Tags:  newTags("way", id, decoded.Tags, logger),
	}
	for _, wayNode := range decoded.Nodes {
		way.Nodes = append(way.Nodes, int64(wayNode.ID))
	}
	return way, nil
}

func graphNodeToDecodedNode(node *Node) *osm.Node {
	return &osm.Node{
		ID:      osm.NodeID(node.ID),
		Lat:     node.Lat,
		Lon:     node.Lon,
		Visible: true,
		Tags:    node.Tags.osmTags(),
	}
}

func graphWayToDecodedWay(way *Way) *osm.Way {
	wayNodes := make(osm.WayNodes, len(way.Nodes))
	for i, nodeID := range way.Nodes {
		wayNodes[i] = osm.WayNode{ID: osm.NodeID(nodeID)}
	}
	return &osm.Way{
		ID:      osm.WayID(way.ID),
		Visible: true,
		Nodes:   wayNodes,
		Tags:    way.Tags.osmTags(),
	}
}
