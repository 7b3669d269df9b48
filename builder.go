package osm2geo

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// GraphBuilder assembles OsmGraph from decoded document
type GraphBuilder struct {
	filter            WayFilter
	pruneUnreferenced bool
	verbose           bool
	logger            *zap.Logger
}

func (builder *GraphBuilder) String() string {
	filterName := "<nil>"
	if builder.filter != nil {
		filterName = fmt.Sprintf("%T", builder.filter)
	}
	return strings.TrimSpace(fmt.Sprintf(`
Graph builder parameters:
	filter: '%s'
	prune unreferenced nodes?: %t
	verbose?: %t
	`,
		filterName,
		builder.pruneUnreferenced,
		builder.verbose,
	))
}

// NewGraphBuilder returns builder accepting any way and keeping all nodes unless options say otherwise
func NewGraphBuilder(options ...func(*GraphBuilder)) *GraphBuilder {
	builder := &GraphBuilder{
		filter:            AnyWay,
		pruneUnreferenced: false,
		verbose:           false,
		logger:            zap.NewNop(),
	}
	for _, option := range options {
		option(builder)
	}
	return builder
}

// WithWayFilter sets filter deciding which ways are included. Nil filter is a configuration error detected by Build
func WithWayFilter(filter WayFilter) func(*GraphBuilder) {
	return func(builder *GraphBuilder) {
		builder.filter = filter
	}
}

// WithPruneUnreferenced removes nodes which are not referenced by any retained way
func WithPruneUnreferenced(prune bool) func(*GraphBuilder) {
	return func(builder *GraphBuilder) {
		builder.pruneUnreferenced = prune
	}
}

func WithVerbose(verbose bool) func(*GraphBuilder) {
	return func(builder *GraphBuilder) {
		builder.verbose = verbose
	}
}

func WithLogger(logger *zap.Logger) func(*GraphBuilder) {
	return func(builder *GraphBuilder) {
		if logger != nil {
			builder.logger = logger
		}
	}
}

// BuildGraph is shortcut for NewGraphBuilder(...).Build(doc)
func BuildGraph(doc *Document, filter WayFilter, pruneUnreferenced bool) (*OsmGraph, error) {
	return NewGraphBuilder(WithWayFilter(filter), WithPruneUnreferenced(pruneUnreferenced)).Build(doc)
}

// Build returns fully cross-referenced graph
//
// Every way in returned graph has passed the filter. If pruning is enabled every node has at least one referencing way.
// Any malformed record aborts the whole build: no partial graph is returned
func (builder *GraphBuilder) Build(doc *Document) (*OsmGraph, error) {
	if err := ValidateFilter(builder.filter); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, errors.Wrap(ErrMalformedInput, "nil document")
	}

	graph, err := builder.insertNodes(doc)
	if err != nil {
		return nil, errors.Wrap(err, "Can't prepare nodes")
	}
	err = builder.insertWays(graph, doc)
	if err != nil {
		return nil, errors.Wrap(err, "Can't prepare ways")
	}
	if builder.pruneUnreferenced {
		builder.pruneNodes(graph)
	}
	return graph, nil
}

func (builder *GraphBuilder) insertNodes(doc *Document) (*OsmGraph, error) {
	st := time.Now()
	graph := newOsmGraph(newBoundingBox(doc.Bounds), len(doc.Nodes))
	for _, decoded := range doc.Nodes {
		node, err := decodedNodeToGraphNode(decoded, builder.logger)
		if err != nil {
			return nil, err
		}
		graph.insertNode(node)
	}
	if builder.verbose {
		builder.logger.Info("Nodes inserted", zap.Int("nodes", graph.NodesCount()), zap.Duration("took", time.Since(st)))
	}
	return graph, nil
}

func (builder *GraphBuilder) insertWays(graph *OsmGraph, doc *Document) error {
	st := time.Now()
	skipped := 0
	for _, decoded := range doc.Ways {
		way, err := decodedWayToGraphWay(decoded, builder.logger)
		if err != nil {
			return err
		}
		if !builder.filter.Matches(way) {
			skipped++
			continue
		}
		if len(way.Nodes) == 0 {
			builder.logger.Warn("Way passed the filter but has no node references. Skip it", zap.Int64("way_id", way.ID))
			continue
		}
		// Resolve every reference before touching nodes so a bad way leaves no back-references behind
		for _, nodeID := range way.Nodes {
			if graph.Node(nodeID) == nil {
				return errors.Wrapf(ErrMissingNode, "No such node '%d'. Way ID: '%d'", nodeID, way.ID)
			}
		}
		for _, nodeID := range way.Nodes {
			graph.Node(nodeID).addReferencingWay(way.ID)
		}
		graph.insertWay(way)
	}
	if builder.verbose {
		builder.logger.Info(
			"Ways inserted",
			zap.Int("ways", graph.WaysCount()),
			zap.Int("filtered_out", skipped),
			zap.Duration("took", time.Since(st)),
		)
	}
	return nil
}

// pruneNodes collects unreferenced nodes first and deletes them in a second pass
func (builder *GraphBuilder) pruneNodes(graph *OsmGraph) {
	st := time.Now()
	unreferenced := make([]int64, 0)
	for id, node := range graph.nodes {
		if node.ReferencingWaysCount() == 0 {
			unreferenced = append(unreferenced, id)
		}
	}
	for _, id := range unreferenced {
		delete(graph.nodes, id)
	}
	if builder.verbose {
		builder.logger.Info(
			"Unreferenced nodes pruned",
			zap.Int("pruned", len(unreferenced)),
			zap.Int("nodes", graph.NodesCount()),
			zap.Duration("took", time.Since(st)),
		)
	}
}
