package osm2geo

import (
	"github.com/LdDl/ch"
	"github.com/pkg/errors"
)

// BuildContractionGraph turns segment network into routing graph. Vertices are OSM node IDs, weights are kilometers
//
// If prepare is true contraction hierarchies are computed, otherwise graph is returned as is
func BuildContractionGraph(net *SegmentNetwork, prepare bool) (*ch.Graph, error) {
	graph := ch.Graph{}
	for _, link := range net.Links() {
		err := graph.CreateVertex(link.SourceNodeID)
		if err != nil {
			return nil, errors.Wrap(err, "Can not create source vertex")
		}
		err = graph.CreateVertex(link.TargetNodeID)
		if err != nil {
			return nil, errors.Wrap(err, "Can not create target vertex")
		}
		cost := link.LengthMeters / 1000.0
		err = graph.AddEdge(link.SourceNodeID, link.TargetNodeID, cost)
		if err != nil {
			return nil, errors.Wrapf(err, "Can not add edge for segment '%s'", link.SegmentKey)
		}
		if link.Bidirectional {
			err = graph.AddEdge(link.TargetNodeID, link.SourceNodeID, cost)
			if err != nil {
				return nil, errors.Wrapf(err, "Can not add reverse edge for segment '%s'", link.SegmentKey)
			}
		}
	}
	if prepare {
		graph.PrepareContractionHierarchies()
	}
	return &graph, nil
}
