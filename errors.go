package clustereval

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptySources is returned when a cluster or ground-truth category is
	// constructed without any sources.
	ErrEmptySources = errors.New("clustereval: empty source set")

	// ErrUnknownTreeType is returned when a chromosome carries no tree type or
	// an encoded tree type with an unrecognized kind.
	ErrUnknownTreeType = errors.New("clustereval: unknown tree type")

	// ErrNoSources is returned when the tag index is empty, so category
	// weights for the overall metrics are undefined.
	ErrNoSources = errors.New("clustereval: tag index has no sources")

	// ErrUnsortedSources is returned when a source set is not sorted or holds
	// duplicates. Build sets with NewSourceSet.
	ErrUnsortedSources = errors.New("clustereval: source set not sorted and unique")
)

// MissingTagError is returned when a source has no entry in the tag index.
// Tags are mandatory for scoring, so evaluation stops at the first miss.
type MissingTagError struct {
	Source SourceID
}

func (e *MissingTagError) Error() string {
	return fmt.Sprintf("clustereval: no tags for source %q", e.Source)
}
