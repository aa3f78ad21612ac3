package clustereval

import (
	"fmt"
	"sort"
)

// TagIndex maps each source to its raw tag string, a hyphen-delimited list
// of words describing the document's true topic.
type TagIndex map[SourceID]string

// Cluster is a discovered cluster produced by the clustering pipeline.
type Cluster struct {
	// Label is the phrase that defines the cluster.
	Label Phrase
	// Phrases holds the phrases of the base clusters merged into this one.
	Phrases []Phrase
	// Sources is never empty.
	Sources SourceSet
}

// NewCluster returns a cluster over sources, labelled by label. It returns
// ErrEmptySources when sources is empty.
func NewCluster(label Phrase, sources SourceSet) (Cluster, error) {
	if len(sources) == 0 {
		return Cluster{}, fmt.Errorf("clustereval: cluster %q: %w", label.String(), ErrEmptySources)
	}
	return Cluster{Label: label, Sources: sources}, nil
}

// Category is one ground-truth category. Key is a hyphen-delimited tag
// string that also votes when scoring tag overlap.
type Category struct {
	Key     string
	Sources SourceSet
}

// NewCategory returns a ground-truth category. It returns ErrEmptySources
// when sources is empty.
func NewCategory(key string, sources SourceSet) (Category, error) {
	if len(sources) == 0 {
		return Category{}, fmt.Errorf("clustereval: category %q: %w", key, ErrEmptySources)
	}
	return Category{Key: key, Sources: sources}, nil
}

// GroundTruth is the reference partition, ordered by category key. A source
// may belong to more than one category.
type GroundTruth []Category

// NewGroundTruth builds the reference partition from a map of category key
// to member sources.
func NewGroundTruth(index map[string][]SourceID) (GroundTruth, error) {
	keys := make([]string, 0, len(index))
	for k := range index {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	truth := make(GroundTruth, 0, len(keys))
	for _, k := range keys {
		c, err := NewCategory(k, NewSourceSet(index[k]...))
		if err != nil {
			return nil, err
		}
		truth = append(truth, c)
	}
	return truth, nil
}

// DropSingletons returns the categories with more than one source.
func (g GroundTruth) DropSingletons() GroundTruth {
	out := make(GroundTruth, 0, len(g))
	for _, c := range g {
		if len(c.Sources) > 1 {
			out = append(out, c)
		}
	}
	return out
}

// DropSingletonClusters returns the clusters with more than one source.
func DropSingletonClusters(clusters []Cluster) []Cluster {
	out := make([]Cluster, 0, len(clusters))
	for _, c := range clusters {
		if len(c.Sources) > 1 {
			out = append(out, c)
		}
	}
	return out
}

// DropOneWordClusters returns the clusters whose label has more than one word.
func DropOneWordClusters(clusters []Cluster) []Cluster {
	out := make([]Cluster, 0, len(clusters))
	for _, c := range clusters {
		if len(c.Label) > 1 {
			out = append(out, c)
		}
	}
	return out
}
