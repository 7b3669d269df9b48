package osm2geo

import (
	"github.com/pkg/errors"
)

// WayFilter decides whether way is included into graph
//
// Implementations must be pure: the same way always gives the same answer and calls are safe to do concurrently
type WayFilter interface {
	Matches(way *Way) bool
}

// WayFilterFunc is an adapter to allow the use of ordinary functions as WayFilter
type WayFilterFunc func(way *Way) bool

func (f WayFilterFunc) Matches(way *Way) bool {
	return f(way)
}

var (
	// AnyWay accepts everything
	AnyWay WayFilter = WayFilterFunc(func(way *Way) bool { return true })
	// Streets accepts ways which could be used by cars
	Streets WayFilter = highwayFilter{values: streetHighwayTags}
)

type highwayFilter struct {
	values map[string]struct{}
}

func (f highwayFilter) Matches(way *Way) bool {
	highway, ok := way.Tags.Get("highway")
	if !ok {
		return false
	}
	_, ok = f.values[highway]
	return ok
}

// HighwayTags accepts ways with `highway` tag value from the given set
func HighwayTags(values ...string) WayFilter {
	f := highwayFilter{values: make(map[string]struct{}, len(values))}
	for _, v := range values {
		f.values[v] = struct{}{}
	}
	return f
}

// SingleWay accepts the way with given ID only. Useful for debugging
func SingleWay(wayID int64) WayFilter {
	return WayFilterFunc(func(way *Way) bool {
		return way.ID == wayID
	})
}

// derivedFilter evaluates predicate only if base filter accepts the way
type derivedFilter struct {
	base      WayFilter
	predicate func(way *Way) bool
}

func (f derivedFilter) Matches(way *Way) bool {
	if !f.base.Matches(way) {
		return false
	}
	return f.predicate(way)
}

func (f derivedFilter) dependencies() []WayFilter {
	return []WayFilter{f.base}
}

// Derived narrows base filter with extra predicate
func Derived(base WayFilter, predicate func(way *Way) bool) WayFilter {
	return derivedFilter{base: base, predicate: predicate}
}

// NamedStreet accepts streets with exact `name` tag value
func NamedStreet(name string) WayFilter {
	return Derived(Streets, func(way *Way) bool {
		value, ok := way.Tags.Get("name")
		return ok && value == name
	})
}

type allFilter []WayFilter

func (f allFilter) Matches(way *Way) bool {
	for _, filter := range f {
		if !filter.Matches(way) {
			return false
		}
	}
	return true
}

func (f allFilter) dependencies() []WayFilter {
	return f
}

// All accepts way if every given filter accepts it. Evaluation stops on first rejection
func All(filters ...WayFilter) WayFilter {
	return allFilter(filters)
}

type composedFilter interface {
	dependencies() []WayFilter
}

// ValidateFilter checks that filter and every filter it depends on are set
func ValidateFilter(filter WayFilter) error {
	if filter == nil {
		return ErrNoFilter
	}
	composed, ok := filter.(composedFilter)
	if !ok {
		return nil
	}
	deps := composed.dependencies()
	if len(deps) == 0 {
		return errors.Wrap(ErrFilterDependency, "composed filter has no filters")
	}
	for i, dep := range deps {
		if dep == nil {
			return errors.Wrapf(ErrFilterDependency, "dependency #%d", i)
		}
		if err := ValidateFilter(dep); err != nil {
			return err
		}
	}
	if derived, ok := filter.(derivedFilter); ok && derived.predicate == nil {
		return errors.Wrap(ErrFilterDependency, "derived filter has no predicate")
	}
	return nil
}
