package main

import (
	"fmt"
	"os"

	"github.com/LdDl/osm2geo"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is content of YAML configuration file. Command line flags override it
type Config struct {
	File              string       `yaml:"file"`
	Filter            FilterConfig `yaml:"filter"`
	PruneUnreferenced bool         `yaml:"prune_unreferenced"`
	SplitAtCrossings  bool         `yaml:"split_at_crossings"`
	ContinueOnError   bool         `yaml:"continue_on_error"`
	Taper             bool         `yaml:"taper"`
	RibbonWidth       float64      `yaml:"ribbon_width"`
	MiterLimit        float64      `yaml:"miter_limit"`
	Verbose           bool         `yaml:"verbose"`
	Output            OutputConfig `yaml:"output"`
}

// FilterConfig describes which ways are kept
type FilterConfig struct {
	// One of: any, streets, named_street, single_way, highway
	Kind    string   `yaml:"kind"`
	Name    string   `yaml:"name"`
	WayID   int64    `yaml:"way_id"`
	Highway []string `yaml:"highway"`
}

type OutputConfig struct {
	PathsGeoJSON    string `yaml:"paths_geojson"`
	PolygonsGeoJSON string `yaml:"polygons_geojson"`
	NetworkCSV      string `yaml:"network_csv"`
	OSM             string `yaml:"osm"`
}

func defaultConfig() Config {
	return Config{
		Filter:            FilterConfig{Kind: "streets"},
		PruneUnreferenced: true,
		SplitAtCrossings:  true,
		Taper:             false,
		RibbonWidth:       osm2geo.DEFAULT_RIBBON_WIDTH,
		MiterLimit:        osm2geo.DEFAULT_MITER_LIMIT,
	}
}

// loadConfig reads YAML file on top of defaults
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	yamlFile, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "Can't read config '%s'", path)
	}
	if err := yaml.Unmarshal(yamlFile, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "Can't parse config '%s'", path)
	}
	return cfg, nil
}

// WayFilter builds filter described by configuration
func (cfg FilterConfig) WayFilter() (osm2geo.WayFilter, error) {
	switch cfg.Kind {
	case "", "streets":
		return osm2geo.Streets, nil
	case "any":
		return osm2geo.AnyWay, nil
	case "named_street":
		if cfg.Name == "" {
			return nil, errors.Wrap(osm2geo.ErrConfiguration, "filter 'named_street' requires 'name'")
		}
		return osm2geo.NamedStreet(cfg.Name), nil
	case "single_way":
		if cfg.WayID == 0 {
			return nil, errors.Wrap(osm2geo.ErrConfiguration, "filter 'single_way' requires 'way_id'")
		}
		return osm2geo.SingleWay(cfg.WayID), nil
	case "highway":
		if len(cfg.Highway) == 0 {
			return nil, errors.Wrap(osm2geo.ErrConfiguration, "filter 'highway' requires 'highway' values")
		}
		return osm2geo.HighwayTags(cfg.Highway...), nil
	default:
		return nil, errors.Wrap(osm2geo.ErrConfiguration, fmt.Sprintf("unknown filter kind '%s'", cfg.Kind))
	}
}
