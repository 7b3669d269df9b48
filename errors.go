package osm2geo

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrMalformedInput is the root of every fatal input error
	ErrMalformedInput = errors.New("malformed input")
	// ErrMissingNode means a way references a node which is not present in the document
	ErrMissingNode = errors.Wrap(ErrMalformedInput, "missing node")
	// ErrMissingIdentity means a node or way record has no ID
	ErrMissingIdentity = errors.Wrap(ErrMalformedInput, "missing identity")
	// ErrDegenerateWay means a way has fewer than two resolvable nodes
	ErrDegenerateWay = errors.Wrap(ErrMalformedInput, "degenerate way")

	// ErrConfiguration is the root of errors detected before processing starts
	ErrConfiguration = errors.New("configuration error")
	// ErrNoFilter means no way filter has been supplied
	ErrNoFilter = errors.Wrap(ErrConfiguration, "no way filter")
	// ErrFilterDependency means a derived filter has no base filter
	ErrFilterDependency = errors.Wrap(ErrConfiguration, "way filter dependency is not set")
)

// WayError reports which way failed during geometry processing and why
type WayError struct {
	WayID int64
	Err   error
}

func (e *WayError) Error() string {
	return fmt.Sprintf("way '%d': %s", e.WayID, e.Err.Error())
}

func (e *WayError) Unwrap() error {
	return e.Err
}

// Cause keeps compatibility with errors.Cause from github.com/pkg/errors
func (e *WayError) Cause() error {
	return e.Err
}
