package osm2geo

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/pkg/errors"
)

type NetworkLinkID int64

// NetworkLink is directed representation of a GeoPath. Two-way paths are marked as bidirectional
type NetworkLink struct {
	ID            NetworkLinkID
	SegmentKey    string
	OSMWayID      int64
	SourceNodeID  int64
	TargetNodeID  int64
	Bidirectional bool
	LengthMeters  float64
	Name          string
	Highway       HighwayType
	Geom          orb.LineString
}

// NetworkNode is endpoint of at least one link
type NetworkNode struct {
	ID     int64
	Geom   orb.Point
	Degree int
}

// SegmentNetwork is node-link view over segmented paths. Links follow emission order of paths
type SegmentNetwork struct {
	links   []*NetworkLink
	nodes   map[int64]*NetworkNode
	nodeIDs []int64
}

// NewSegmentNetwork builds network. Reversed one-way paths (`oneway=-1`) are flipped so links follow allowed direction
func NewSegmentNetwork(paths *PathSet) *SegmentNetwork {
	net := &SegmentNetwork{
		links: make([]*NetworkLink, 0, paths.Len()),
		nodes: make(map[int64]*NetworkNode),
	}
	for i, path := range paths.Paths() {
		source, target := path.SourceNodeID, path.TargetNodeID
		points := path.Points
		if path.OneWay && path.Reversed {
			source, target = target, source
			points = reverseLine(points)
		}
		geom := make(orb.LineString, len(points))
		for j, pt := range points {
			geom[j] = pt.Point()
		}
		net.links = append(net.links, &NetworkLink{
			ID:            NetworkLinkID(i),
			SegmentKey:    path.Key(),
			OSMWayID:      path.WayID,
			SourceNodeID:  source,
			TargetNodeID:  target,
			Bidirectional: !path.OneWay,
			LengthMeters:  path.LengthKm() * 1000.0,
			Name:          path.Name,
			Highway:       path.Highway,
			Geom:          geom,
		})
		net.touchNode(source, geom[0])
		net.touchNode(target, geom[len(geom)-1])
	}
	return net
}

func (net *SegmentNetwork) touchNode(id int64, pt orb.Point) {
	node, ok := net.nodes[id]
	if !ok {
		node = &NetworkNode{ID: id, Geom: pt}
		net.nodes[id] = node
		net.nodeIDs = append(net.nodeIDs, id)
	}
	node.Degree++
}

func (net *SegmentNetwork) Links() []*NetworkLink {
	return net.links
}

// Node returns network node by OSM node ID or nil
func (net *SegmentNetwork) Node(id int64) *NetworkNode {
	return net.nodes[id]
}

func (net *SegmentNetwork) NodesCount() int {
	return len(net.nodes)
}

// ExportToCSV writes "<name>_links.csv" and "<name>_nodes.csv"
func (net *SegmentNetwork) ExportToCSV(fname string) error {
	fnameParts := strings.Split(fname, ".csv")
	fnameLinks := fnameParts[0] + "_links.csv"
	fnameNodes := fnameParts[0] + "_nodes.csv"

	err := writeFile(fnameLinks, net.WriteLinksCSV)
	if err != nil {
		return errors.Wrap(err, "Can't export links")
	}
	err = writeFile(fnameNodes, net.WriteNodesCSV)
	if err != nil {
		return errors.Wrap(err, "Can't export nodes")
	}
	return nil
}

func writeFile(fname string, write func(io.Writer) error) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create file")
	}
	defer file.Close()
	return write(file)
}

// WriteLinksCSV writes links with WKT geometry using ';' as separator
func (net *SegmentNetwork) WriteLinksCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	writer.Comma = ';'

	err := writer.Write([]string{"id", "segment_key", "osm_way_id", "source_node", "target_node", "was_bidirectional", "length_meters", "name", "highway", "geom"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}
	for _, link := range net.links {
		err = writer.Write([]string{
			fmt.Sprintf("%d", link.ID),
			link.SegmentKey,
			fmt.Sprintf("%d", link.OSMWayID),
			fmt.Sprintf("%d", link.SourceNodeID),
			fmt.Sprintf("%d", link.TargetNodeID),
			fmt.Sprintf("%t", link.Bidirectional),
			fmt.Sprintf("%f", link.LengthMeters),
			link.Name,
			link.Highway.String(),
			wkt.MarshalString(link.Geom),
		})
		if err != nil {
			return errors.Wrap(err, "Can't write link")
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteNodesCSV writes nodes in order of first appearance
func (net *SegmentNetwork) WriteNodesCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	writer.Comma = ';'

	err := writer.Write([]string{"id", "degree", "longitude", "latitude"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}
	for _, id := range net.nodeIDs {
		node := net.nodes[id]
		err = writer.Write([]string{
			fmt.Sprintf("%d", node.ID),
			fmt.Sprintf("%d", node.Degree),
			fmt.Sprintf("%f", node.Geom.X()),
			fmt.Sprintf("%f", node.Geom.Y()),
		})
		if err != nil {
			return errors.Wrap(err, "Can't write node")
		}
	}
	writer.Flush()
	return writer.Error()
}
