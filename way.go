package osm2geo

import (
	"fmt"
)

// Way is ordered sequence of node references. Duplicated references and self-loops are legal
type Way struct {
	ID    int64
	Nodes []int64
	Tags  Tags
}

// IsOneWay returns true if the way could be passed in one direction only
//
// Explicit `oneway` tag wins. Otherwise the implicit rules are applied (motorway, links and junctions)
func (way *Way) IsOneWay() bool {
	onewayText := way.Tags.Find("oneway")
	if _, ok := onewayFalseValues[onewayText]; ok {
		return false
	}
	if _, ok := onewayTrueValues[onewayText]; ok {
		return true
	}
	for key, values := range onewayCriteria {
		value, ok := way.Tags.Get(key)
		if !ok {
			continue
		}
		if _, ok := values[value]; ok {
			return true
		}
	}
	return false
}

// IsReversed returns true if allowed direction is opposite to order of nodes
func (way *Way) IsReversed() bool {
	return way.Tags.Find("oneway") == "-1"
}

// Name returns value of `name` tag (could be empty)
func (way *Way) Name() string {
	return way.Tags.Find("name")
}

// FirstNodeID panics if way has no node references
func (way *Way) FirstNodeID() int64 {
	return way.Nodes[0]
}

// LastNodeID panics if way has no node references
func (way *Way) LastNodeID() int64 {
	return way.Nodes[len(way.Nodes)-1]
}

// IsClosed returns true when first and last node references are the same
func (way *Way) IsClosed() bool {
	return len(way.Nodes) > 1 && way.FirstNodeID() == way.LastNodeID()
}

func (way *Way) String() string {
	return fmt.Sprintf("way (ID: %d, nodes: %v, tags: %v)", way.ID, way.Nodes, map[string]string(way.Tags))
}
