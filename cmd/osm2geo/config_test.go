package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/LdDl/osm2geo"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	content := `
file: map.osm.pbf
filter:
  kind: named_street
  name: Main
taper: true
ribbon_width: 8
output:
  polygons_geojson: polygons.geojson
`
	fname := filepath.Join(t.TempDir(), "conf.yaml")
	require.NoError(t, os.WriteFile(fname, []byte(content), 0o644))

	cfg, err := loadConfig(fname)
	require.NoError(t, err)
	assert.Equal(t, "map.osm.pbf", cfg.File)
	assert.Equal(t, "named_street", cfg.Filter.Kind)
	assert.True(t, cfg.Taper)
	assert.Equal(t, 8.0, cfg.RibbonWidth)
	assert.Equal(t, "polygons.geojson", cfg.Output.PolygonsGeoJSON)
	// Defaults survive for omitted keys
	assert.True(t, cfg.SplitAtCrossings)
	assert.True(t, cfg.PruneUnreferenced)
	assert.Equal(t, osm2geo.DEFAULT_MITER_LIMIT, cfg.MiterLimit)

	filter, err := cfg.Filter.WayFilter()
	require.NoError(t, err)
	assert.True(t, filter.Matches(&osm2geo.Way{Tags: osm2geo.Tags{"highway": "primary", "name": "Main"}}))
}

func TestLoadConfigMissing(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
}

func TestFilterConfig(t *testing.T) {
	cases := []struct {
		cfg   FilterConfig
		valid bool
	}{
		{FilterConfig{}, true},
		{FilterConfig{Kind: "any"}, true},
		{FilterConfig{Kind: "streets"}, true},
		{FilterConfig{Kind: "named_street"}, false},
		{FilterConfig{Kind: "named_street", Name: "Main"}, true},
		{FilterConfig{Kind: "single_way"}, false},
		{FilterConfig{Kind: "single_way", WayID: 5}, true},
		{FilterConfig{Kind: "highway"}, false},
		{FilterConfig{Kind: "highway", Highway: []string{"footway"}}, true},
		{FilterConfig{Kind: "railway"}, false},
	}
	for _, c := range cases {
		filter, err := c.cfg.WayFilter()
		if c.valid {
			assert.NoError(t, err, c.cfg.Kind)
			assert.NotNil(t, filter, c.cfg.Kind)
			continue
		}
		assert.True(t, errors.Is(err, osm2geo.ErrConfiguration), c.cfg.Kind)
	}
}
