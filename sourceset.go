package clustereval

import (
	"sort"

	"github.com/xtgo/set"
)

// SourceID identifies one snippet by its provenance string.
type SourceID string

// SourceSet is a sorted set of source identifiers without duplicates.
// Build it with NewSourceSet; the zero value is the empty set.
type SourceSet []SourceID

func (s SourceSet) Len() int           { return len(s) }
func (s SourceSet) Less(i, j int) bool { return s[i] < s[j] }
func (s SourceSet) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

// NewSourceSet builds a set from ids given in any order. Duplicates are
// dropped. The input slice is not modified.
func NewSourceSet(ids ...SourceID) SourceSet {
	s := make(SourceSet, len(ids))
	copy(s, ids)
	sort.Sort(s)
	return s[:set.Uniq(s)]
}

// check returns ErrEmptySources for an empty set and ErrUnsortedSources when
// s is out of order or holds duplicates.
func (s SourceSet) check() error {
	if len(s) == 0 {
		return ErrEmptySources
	}
	for i := 1; i < len(s); i++ {
		if s[i-1] >= s[i] {
			return ErrUnsortedSources
		}
	}
	return nil
}

// Has reports whether id is a member of s.
func (s SourceSet) Has(id SourceID) bool {
	i := sort.Search(len(s), func(i int) bool { return s[i] >= id })
	return i < len(s) && s[i] == id
}

// Union returns a new set holding the members of s and other.
func (s SourceSet) Union(other SourceSet) SourceSet {
	ids := make([]SourceID, 0, len(s)+len(other))
	ids = append(ids, s...)
	ids = append(ids, other...)
	return NewSourceSet(ids...)
}

// Contains reports whether every member of probe is also a member of
// container. It returns at the first missing member. Every set contains the
// empty set.
func Contains(container, probe SourceSet) bool {
	i := 0
	for _, id := range probe {
		for i < len(container) && container[i] < id {
			i++
		}
		if i == len(container) || container[i] != id {
			return false
		}
	}
	return true
}

// SetsEqual reports whether a and b hold the same members.
func SetsEqual(a, b SourceSet) bool {
	return Contains(a, b) && Contains(b, a)
}

// IntersectionSize returns the number of sources present in both a and b.
func IntersectionSize(a, b SourceSet) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	work := make(SourceSet, 0, len(a)+len(b))
	work = append(work, a...)
	work = append(work, b...)
	return set.Inter(work, len(a))
}

// OverlapRatio returns |a ∩ b| / reference. Callers pass the size of one of
// the two sets as reference; it must be positive.
func OverlapRatio(a, b SourceSet, reference int) float64 {
	return float64(IntersectionSize(a, b)) / float64(reference)
}
