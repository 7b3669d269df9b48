package osm2geo

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"
)

// Format is encoding of source document
type Format uint16

const (
	FORMAT_XML = Format(iota + 1)
	FORMAT_PBF
)

func (iotaIdx Format) String() string {
	return [...]string{"xml", "pbf"}[iotaIdx-1]
}

const (
	pbfProcs         = 4
	defaultGenerator = "osm2geo"
)

// OSMScanner is common interface of osmxml and osmpbf scanners
type OSMScanner interface {
	Scan() bool
	Close() error
	Err() error
	Object() osm.Object
}

// Document is decoded content of OSM file in document order
type Document struct {
	Bounds *osm.Bounds
	Nodes  []*osm.Node
	Ways   []*osm.Way
}

// FormatByFilename guesses format by file extension
func FormatByFilename(filename string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".osm", ".xml":
		return FORMAT_XML, nil
	case ".pbf":
		return FORMAT_PBF, nil
	default:
		return 0, fmt.Errorf("File extension '%s' for file '%s' is not handled yet", ext, filename)
	}
}

func newScanner(ctx context.Context, r io.Reader, format Format) (OSMScanner, error) {
	switch format {
	case FORMAT_XML:
		return osmxml.New(ctx, r), nil
	case FORMAT_PBF:
		return osmpbf.New(ctx, r, pbfProcs), nil
	default:
		return nil, fmt.Errorf("Unknown document format: %d", format)
	}
}

// ReadDocument streams the whole document. Relations are skipped
func ReadDocument(ctx context.Context, r io.Reader, format Format) (*Document, error) {
	scanner, err := newScanner(ctx, r, format)
	if err != nil {
		return nil, err
	}
	defer scanner.Close()

	doc := &Document{}
	for scanner.Scan() {
		switch obj := scanner.Object().(type) {
		case *osm.Bounds:
			doc.Bounds = obj
		case *osm.Node:
			doc.Nodes = append(doc.Nodes, obj)
		case *osm.Way:
			doc.Ways = append(doc.Ways, obj)
		default:
			continue
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "Scanner error")
	}
	return doc, nil
}

// ReadDocumentFile opens file and reads it using format guessed by extension
func ReadDocumentFile(ctx context.Context, filename string) (*Document, error) {
	format, err := FormatByFilename(filename)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "File open")
	}
	defer file.Close()
	return ReadDocument(ctx, file, format)
}

// WriteDocument writes nodes and ways of the graph as OSM XML document
func WriteDocument(w io.Writer, graph *OsmGraph) error {
	doc := osm.OSM{
		Generator: defaultGenerator,
	}
	if box := graph.Bounds(); box != nil {
		doc.Bounds = &osm.Bounds{
			MinLat: box.MinLat,
			MaxLat: box.MaxLat,
			MinLon: box.MinLon,
			MaxLon: box.MaxLon,
		}
	}
	for _, id := range graph.NodeIDs() {
		doc.Nodes = append(doc.Nodes, graphNodeToDecodedNode(graph.Node(id)))
	}
	for _, id := range graph.WayIDs() {
		doc.Ways = append(doc.Ways, graphWayToDecodedWay(graph.Way(id)))
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return errors.Wrap(err, "Can't write XML header")
	}
	encoder := xml.NewEncoder(w)
	encoder.Indent("", " ")
	if err := encoder.Encode(&doc); err != nil {
		return errors.Wrap(err, "Can't encode document")
	}
	return encoder.Flush()
}
