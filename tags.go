package osm2geo

import (
	"sort"

	"github.com/paulmach/osm"
	"go.uber.org/zap"
)

// Tags is key/value attribute bag of a node or a way
type Tags map[string]string

// newTags builds tag store from decoded tags. Last value wins for duplicated keys
func newTags(kind string, id int64, decoded osm.Tags, logger *zap.Logger) Tags {
	tags := make(Tags, len(decoded))
	for _, tag := range decoded {
		if prev, ok := tags[tag.Key]; ok {
			logger.Warn(
				"Element contains multiple tags with the same key",
				zap.String("kind", kind),
				zap.Int64("id", id),
				zap.String("key", tag.Key),
				zap.String("dropped_value", prev),
				zap.String("value", tag.Value),
			)
		}
		tags[tag.Key] = tag.Value
	}
	return tags
}

// Get returns value for the given key and whether it is present
func (tags Tags) Get(key string) (string, bool) {
	v, ok := tags[key]
	return v, ok
}

// Find returns value for the given key or empty string
func (tags Tags) Find(key string) string {
	return tags[key]
}

// Has checks if key is present
func (tags Tags) Has(key string) bool {
	_, ok := tags[key]
	return ok
}

func (tags Tags) Len() int {
	return len(tags)
}

// osmTags converts store back to decoded representation sorted by key
func (tags Tags) osmTags() osm.Tags {
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	result := make(osm.Tags, 0, len(keys))
	for _, k := range keys {
		result = append(result, osm.Tag{Key: k, Value: tags[k]})
	}
	return result
}

var (
	onewayTrueValues = map[string]struct{}{
		"yes":  {},
		"1":    {},
		"-1":   {},
		"true": {},
	}

	onewayFalseValues = map[string]struct{}{
		"no":    {},
		"0":     {},
		"false": {},
	}

	// Implicit direction when `oneway` is not decisive
	onewayCriteria = map[string]map[string]struct{}{
		"highway": {
			"motorway":      {},
			"motorway_link": {},
			"trunk_link":    {},
			"primary_link":  {},
		},
		"junction": {
			"yes": {},
		},
	}

	streetHighwayTags = map[string]struct{}{
		"motorway":       {},
		"trunk":          {},
		"primary":        {},
		"secondary":      {},
		"tertiary":       {},
		"unclassified":   {},
		"residential":    {},
		"service":        {},
		"motorway_link":  {},
		"trunk_link":     {},
		"primary_link":   {},
		"secondary_link": {},
		"tertiary_link":  {},
		"living_street":  {},
	}
)
