package osm2geo

import (
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// SegmentOptions controls how ways are turned into paths
type SegmentOptions struct {
	// Split ways at nodes shared with other ways
	SplitAtCrossings bool
	// Skip failed ways (and report them via PathSet.Failed) instead of aborting
	ContinueOnError bool

	Verbose bool
	Logger  *zap.Logger
}

// SegmentWay walks node sequence of the way and cuts it into paths
//
// Boundary is the last node of the way or (if split is enabled) any non-first node shared with other ways.
// Consecutive paths share their boundary point
func SegmentWay(graph *OsmGraph, way *Way, split bool) ([]*GeoPath, error) {
	if len(way.Nodes) < 2 {
		return nil, &WayError{
			WayID: way.ID,
			Err:   errors.Wrapf(ErrDegenerateWay, "way has %d node references", len(way.Nodes)),
		}
	}
	oneway := way.IsOneWay()
	reversed := way.IsReversed()
	name := way.Name()
	highway := way.Highway()

	paths := []*GeoPath{}
	points := make([]GeoPoint, 0, len(way.Nodes))
	source := way.FirstNodeID()
	lastIdx := len(way.Nodes) - 1
	for i, nodeID := range way.Nodes {
		node := graph.Node(nodeID)
		if node == nil {
			return nil, &WayError{
				WayID: way.ID,
				Err:   errors.Wrapf(ErrMissingNode, "No such node '%d'", nodeID),
			}
		}
		points = append(points, node.Point())
		isCrossing := split && i > 0 && node.IsCrossing()
		if !isCrossing && i != lastIdx {
			continue
		}
		paths = append(paths, &GeoPath{
			WayID:        way.ID,
			Index:        i,
			Points:       copyLine(points),
			Name:         name,
			Highway:      highway,
			OneWay:       oneway,
			Reversed:     reversed,
			SourceNodeID: source,
			TargetNodeID: nodeID,
		})
		points = points[:0]
		points = append(points, node.Point())
		source = nodeID
	}
	return paths, nil
}

// SegmentGraph segments every way of the graph. Ways are processed in ascending ID order
func SegmentGraph(graph *OsmGraph, options SegmentOptions) (*PathSet, error) {
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	st := time.Now()
	result := newPathSet()
	for _, wayID := range graph.WayIDs() {
		paths, err := SegmentWay(graph, graph.Way(wayID), options.SplitAtCrossings)
		if err != nil {
			wayErr, ok := err.(*WayError)
			if !ok {
				wayErr = &WayError{WayID: wayID, Err: err}
			}
			if !options.ContinueOnError {
				return nil, wayErr
			}
			logger.Warn("Can't segment way. Skip it", zap.Int64("way_id", wayID), zap.Error(wayErr.Err))
			result.failed = append(result.failed, wayErr)
			continue
		}
		for _, path := range paths {
			result.add(path)
		}
	}
	if options.Verbose {
		logger.Info(
			"Ways segmented",
			zap.Int("paths", result.Len()),
			zap.Int("failed_ways", len(result.failed)),
			zap.Duration("took", time.Since(st)),
		)
	}
	return result, nil
}
