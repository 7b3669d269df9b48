package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/LdDl/osm2geo"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	cfg        = defaultConfig()
	logger     = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "osm2geo",
	Short: "Convert OSM extract into road paths and ribbon polygons",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configPath != "" {
			loaded, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			applyFlagOverrides(cmd, &loaded)
			cfg = loaded
		}
		if cfg.Verbose {
			prodLogger, err := zap.NewProduction()
			if err != nil {
				return errors.Wrap(err, "Can't create logger")
			}
			logger = prodLogger
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(cmd.Context())
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print number of nodes, ways and crossings after filtering",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStats(cmd.Context(), cmd.OutOrStdout())
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Path to YAML configuration file")
	flags.StringVar(&cfg.File, "file", "", "Filename of OSM file (*.osm, *.xml or *.osm.pbf)")
	flags.StringVar(&cfg.Filter.Kind, "filter", cfg.Filter.Kind, "Way filter. Expected values: any / streets / named_street / single_way / highway")
	flags.StringVar(&cfg.Filter.Name, "name", "", "Street name for 'named_street' filter")
	flags.Int64Var(&cfg.Filter.WayID, "way-id", 0, "Way ID for 'single_way' filter")
	flags.StringSliceVar(&cfg.Filter.Highway, "highway", nil, "Set of `highway` values for 'highway' filter (separated by commas)")
	flags.BoolVar(&cfg.PruneUnreferenced, "prune", cfg.PruneUnreferenced, "Remove nodes which are not referenced by any kept way")
	flags.BoolVar(&cfg.SplitAtCrossings, "split", cfg.SplitAtCrossings, "Split ways at crossings")
	flags.BoolVar(&cfg.ContinueOnError, "continue-on-error", cfg.ContinueOnError, "Skip broken ways during geometry processing")
	flags.BoolVar(&cfg.Taper, "taper", cfg.Taper, "Taper ends of one-way ribbons")
	flags.Float64Var(&cfg.RibbonWidth, "width", cfg.RibbonWidth, "Ribbon width (meters)")
	flags.Float64Var(&cfg.MiterLimit, "miter-limit", cfg.MiterLimit, "Miter limit relative to half of the ribbon width")
	flags.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Log progress")

	rootCmd.Flags().StringVar(&cfg.Output.PathsGeoJSON, "out-paths", "", "GeoJSON file for paths")
	rootCmd.Flags().StringVar(&cfg.Output.PolygonsGeoJSON, "out-polygons", "", "GeoJSON file for polygons")
	rootCmd.Flags().StringVar(&cfg.Output.NetworkCSV, "out-network", "", "Base name of CSV files for segment network. E.g.: 'map.csv' gives 'map_links.csv' and 'map_nodes.csv'")
	rootCmd.Flags().StringVar(&cfg.Output.OSM, "out-osm", "", "OSM XML file for filtered graph")

	rootCmd.AddCommand(statsCmd)
}

// applyFlagOverrides copies explicitly provided flags over values loaded from config file
func applyFlagOverrides(cmd *cobra.Command, loaded *Config) {
	set := func(name string, apply func()) {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			apply()
		}
	}
	set("file", func() { loaded.File = cfg.File })
	set("filter", func() { loaded.Filter.Kind = cfg.Filter.Kind })
	set("name", func() { loaded.Filter.Name = cfg.Filter.Name })
	set("way-id", func() { loaded.Filter.WayID = cfg.Filter.WayID })
	set("highway", func() { loaded.Filter.Highway = cfg.Filter.Highway })
	set("prune", func() { loaded.PruneUnreferenced = cfg.PruneUnreferenced })
	set("split", func() { loaded.SplitAtCrossings = cfg.SplitAtCrossings })
	set("continue-on-error", func() { loaded.ContinueOnError = cfg.ContinueOnError })
	set("taper", func() { loaded.Taper = cfg.Taper })
	set("width", func() { loaded.RibbonWidth = cfg.RibbonWidth })
	set("miter-limit", func() { loaded.MiterLimit = cfg.MiterLimit })
	set("verbose", func() { loaded.Verbose = cfg.Verbose })
	set("out-paths", func() { loaded.Output.PathsGeoJSON = cfg.Output.PathsGeoJSON })
	set("out-polygons", func() { loaded.Output.PolygonsGeoJSON = cfg.Output.PolygonsGeoJSON })
	set("out-network", func() { loaded.Output.NetworkCSV = cfg.Output.NetworkCSV })
	set("out-osm", func() { loaded.Output.OSM = cfg.Output.OSM })
}

func newParser() (*osm2geo.Parser, error) {
	if cfg.File == "" {
		return nil, errors.Wrap(osm2geo.ErrConfiguration, "no input file")
	}
	filter, err := cfg.Filter.WayFilter()
	if err != nil {
		return nil, err
	}
	return osm2geo.NewParser(
		cfg.File,
		osm2geo.ParserWithFilter(filter),
		osm2geo.ParserWithPruneUnreferenced(cfg.PruneUnreferenced),
		osm2geo.ParserWithSplitAtCrossings(cfg.SplitAtCrossings),
		osm2geo.ParserWithContinueOnError(cfg.ContinueOnError),
		osm2geo.ParserWithTaper(cfg.Taper),
		osm2geo.ParserWithRibbonWidth(cfg.RibbonWidth),
		osm2geo.ParserWithMiterLimit(cfg.MiterLimit),
		osm2geo.ParserWithVerbose(cfg.Verbose),
		osm2geo.ParserWithLogger(logger),
	), nil
}

func runConvert(ctx context.Context) error {
	parser, err := newParser()
	if err != nil {
		return err
	}
	if cfg.Verbose {
		logger.Info(parser.String())
	}
	st := time.Now()
	result, err := parser.Parse(ctx)
	if err != nil {
		return err
	}
	for _, failed := range result.Paths.Failed() {
		logger.Warn("Way skipped", zap.Int64("way_id", failed.WayID), zap.Error(failed.Err))
	}

	if cfg.Output.PathsGeoJSON != "" {
		err = writeJSON(cfg.Output.PathsGeoJSON, func() ([]byte, error) {
			return osm2geo.PathsFeatureCollection(result.Paths).MarshalJSON()
		})
		if err != nil {
			return errors.Wrap(err, "Can't write paths")
		}
	}
	if cfg.Output.PolygonsGeoJSON != "" {
		err = writeJSON(cfg.Output.PolygonsGeoJSON, func() ([]byte, error) {
			return osm2geo.PolygonsFeatureCollection(result.Polygons).MarshalJSON()
		})
		if err != nil {
			return errors.Wrap(err, "Can't write polygons")
		}
	}
	if cfg.Output.NetworkCSV != "" {
		err = osm2geo.NewSegmentNetwork(result.Paths).ExportToCSV(cfg.Output.NetworkCSV)
		if err != nil {
			return errors.Wrap(err, "Can't write network")
		}
	}
	if cfg.Output.OSM != "" {
		file, err := os.Create(cfg.Output.OSM)
		if err != nil {
			return errors.Wrap(err, "Can't create OSM file")
		}
		defer file.Close()
		err = osm2geo.WriteDocument(file, result.Graph)
		if err != nil {
			return errors.Wrap(err, "Can't write OSM file")
		}
	}
	logger.Info(
		"Done",
		zap.Int("paths", result.Paths.Len()),
		zap.Int("polygons", result.Polygons.Len()),
		zap.Duration("took", time.Since(st)),
	)
	return nil
}

func writeJSON(fname string, marshal func() ([]byte, error)) error {
	b, err := marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(fname, b, 0o644)
}

func runStats(ctx context.Context, w io.Writer) error {
	parser, err := newParser()
	if err != nil {
		return err
	}
	st := time.Now()
	result, err := parser.Parse(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Found %d nodes.\n", result.Graph.NodesCount())
	fmt.Fprintf(w, "Found %d ways.\n", result.Graph.WaysCount())
	fmt.Fprintf(w, "Found %d crossings.\n", len(result.Graph.Crossings()))
	fmt.Fprintf(w, "Found %d paths.\n", result.Paths.Len())
	fmt.Fprintf(w, "Time passed: %v\n", time.Since(st))
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	_ = logger.Sync()
}
