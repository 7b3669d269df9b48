package osm2geo

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Parser runs the whole pipeline: decode -> build graph -> segment -> polygons
type Parser struct {
	filename          string
	filter            WayFilter
	pruneUnreferenced bool
	splitAtCrossings  bool
	continueOnError   bool
	taper             bool
	ribbonWidth       float64
	miterLimit        float64
	verbose           bool
	logger            *zap.Logger
}

func (parser *Parser) String() string {
	return fmt.Sprintf(`
Parser parameters:
	filename: '%s'
	filter: '%T'
	prune unreferenced nodes?: %t
	split at crossings?: %t
	continue on error?: %t
	taper?: %t
	ribbon width: %f
	miter limit: %f
	`,
		parser.filename,
		parser.filter,
		parser.pruneUnreferenced,
		parser.splitAtCrossings,
		parser.continueOnError,
		parser.taper,
		parser.ribbonWidth,
		parser.miterLimit,
	)
}

func NewParser(fileName string, options ...func(*Parser)) *Parser {
	parser := &Parser{
		filename:          fileName,
		filter:            Streets,
		pruneUnreferenced: true,
		splitAtCrossings:  true,
		ribbonWidth:       DEFAULT_RIBBON_WIDTH,
		miterLimit:        DEFAULT_MITER_LIMIT,
		logger:            zap.NewNop(),
	}
	for _, option := range options {
		option(parser)
	}
	return parser
}

func ParserWithFilter(filter WayFilter) func(*Parser) {
	return func(parser *Parser) {
		parser.filter = filter
	}
}

func ParserWithPruneUnreferenced(prune bool) func(*Parser) {
	return func(parser *Parser) {
		parser.pruneUnreferenced = prune
	}
}

func ParserWithSplitAtCrossings(split bool) func(*Parser) {
	return func(parser *Parser) {
		parser.splitAtCrossings = split
	}
}

func ParserWithContinueOnError(continueOnError bool) func(*Parser) {
	return func(parser *Parser) {
		parser.continueOnError = continueOnError
	}
}

func ParserWithTaper(taper bool) func(*Parser) {
	return func(parser *Parser) {
		parser.taper = taper
	}
}

func ParserWithRibbonWidth(width float64) func(*Parser) {
	return func(parser *Parser) {
		parser.ribbonWidth = width
	}
}

func ParserWithMiterLimit(limit float64) func(*Parser) {
	return func(parser *Parser) {
		parser.miterLimit = limit
	}
}

func ParserWithVerbose(verbose bool) func(*Parser) {
	return func(parser *Parser) {
		parser.verbose = verbose
	}
}

func ParserWithLogger(logger *zap.Logger) func(*Parser) {
	return func(parser *Parser) {
		if logger != nil {
			parser.logger = logger
		}
	}
}

// Result holds every stage output of the pipeline
type Result struct {
	Graph    *OsmGraph
	Paths    *PathSet
	Polygons *PolygonSet
}

// Parse reads the file and runs the pipeline
func (parser *Parser) Parse(ctx context.Context) (*Result, error) {
	// Configuration errors are reported before touching the file
	if err := ValidateFilter(parser.filter); err != nil {
		return nil, err
	}
	st := time.Now()
	doc, err := ReadDocumentFile(ctx, parser.filename)
	if err != nil {
		return nil, errors.Wrap(err, "Can't parse OSM data")
	}
	if parser.verbose {
		parser.logger.Info(
			"Document decoded",
			zap.String("filename", parser.filename),
			zap.Int("nodes", len(doc.Nodes)),
			zap.Int("ways", len(doc.Ways)),
			zap.Duration("took", time.Since(st)),
		)
	}
	return parser.ParseDocument(doc)
}

// ParseDocument runs the pipeline on already decoded document
func (parser *Parser) ParseDocument(doc *Document) (*Result, error) {
	graph, err := NewGraphBuilder(
		WithWayFilter(parser.filter),
		WithPruneUnreferenced(parser.pruneUnreferenced),
		WithVerbose(parser.verbose),
		WithLogger(parser.logger),
	).Build(doc)
	if err != nil {
		return nil, errors.Wrap(err, "Can't build graph")
	}
	paths, err := SegmentGraph(graph, SegmentOptions{
		SplitAtCrossings: parser.splitAtCrossings,
		ContinueOnError:  parser.continueOnError,
		Verbose:          parser.verbose,
		Logger:           parser.logger,
	})
	if err != nil {
		return nil, errors.Wrap(err, "Can't segment ways")
	}
	polygons, err := NewPolygonBuilder(
		WithRibbonWidth(parser.ribbonWidth),
		WithMiterLimit(parser.miterLimit),
		WithPolygonsContinueOnError(parser.continueOnError),
	).ToPolygons(paths, parser.taper)
	if err != nil {
		return nil, errors.Wrap(err, "Can't build polygons")
	}
	return &Result{
		Graph:    graph,
		Paths:    paths,
		Polygons: polygons,
	}, nil
}
