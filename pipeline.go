package clustereval

// Snippet is one short text item of the collection, such as a search result
// title and summary.
type Snippet struct {
	Source SourceID
	Text   string
}

// Tree is a compact trie built over a snippet collection. Its structure is
// opaque to the evaluator; only the BaseClusterExtractor reads it.
type Tree any

// TreeBuilder constructs compact tries. It has one method per TreeType.
type TreeBuilder interface {
	BuildSuffix(snippets []Snippet) (Tree, error)
	BuildMidSlice(snippets []Snippet) (Tree, error)
	BuildRangeSlice(snippets []Snippet, min, max int) (Tree, error)
	BuildNSlice(snippets []Snippet, length int) (Tree, error)
}

// BaseCluster is a group of sources sharing a phrase, read directly off a
// tree node. Base clusters may overlap.
type BaseCluster struct {
	Phrase  Phrase
	Sources SourceSet
	Score   float64
}

// BaseClusterQuery holds the thresholds for base cluster extraction.
type BaseClusterQuery struct {
	// Top is the maximum number of base clusters returned, best first.
	Top int
	// MinTermOccurrence drops phrases occurring in fewer snippets.
	MinTermOccurrence int
	// MaxTermRatio drops phrases occurring in a larger share of snippets.
	MaxTermRatio float64
	MinScore     float64
	MaxScore     float64
}

// BaseClusterExtractor selects the top base clusters of a tree.
type BaseClusterExtractor interface {
	TopBaseClusters(tree Tree, q BaseClusterQuery) ([]BaseCluster, error)
}

// Component is a connected group of overlapping base clusters.
type Component []BaseCluster

// ComponentMerger groups base clusters into components.
type ComponentMerger interface {
	MergeComponents(base []BaseCluster) []Component
}

// ClusterMaker materializes final clusters from components.
type ClusterMaker interface {
	MakeClusters(components []Component) ([]Cluster, error)
}

// ClusterMakerFunc adapts a plain function into a ClusterMaker.
type ClusterMakerFunc func(components []Component) ([]Cluster, error)

func (f ClusterMakerFunc) MakeClusters(components []Component) ([]Cluster, error) {
	return f(components)
}

// Pipeline bundles the collaborators that turn snippets into clusters.
// Trees and Extractor are required. Merger defaults to OverlapMerger with
// DefaultMergeThreshold and Maker defaults to MakeClusters.
type Pipeline struct {
	Trees     TreeBuilder
	Extractor BaseClusterExtractor
	Merger    ComponentMerger
	Maker     ClusterMaker
}

// DefaultMergeThreshold is the overlap above which two base clusters merge.
const DefaultMergeThreshold = 0.5

// OverlapMerger links two base clusters when their shared sources exceed
// Threshold of each one's size, and returns the connected components.
type OverlapMerger struct {
	Threshold float64
}

// MergeComponents returns the connected components of base, ordered by the
// position of their first member. Members keep their input order. Source
// sets may arrive in any order.
func (m OverlapMerger) MergeComponents(base []BaseCluster) []Component {
	if len(base) == 0 {
		return nil
	}
	sets := make([]SourceSet, len(base))
	for i, b := range base {
		sets[i] = NewSourceSet(b.Sources...)
	}
	uf := NewUnionFind(len(base))
	for i := range base {
		for j := i + 1; j < len(base); j++ {
			if m.linked(sets[i], sets[j]) {
				uf.Union(i, j)
			}
		}
	}

	groups := uf.Components()
	out := make([]Component, len(groups))
	for i, members := range groups {
		comp := make(Component, len(members))
		for k, idx := range members {
			comp[k] = base[idx]
		}
		out[i] = comp
	}
	return out
}

func (m OverlapMerger) linked(a, b SourceSet) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	shared := IntersectionSize(a, b)
	return float64(shared)/float64(len(a)) > m.Threshold &&
		float64(shared)/float64(len(b)) > m.Threshold
}

// MakeClusters turns each component into one cluster. The cluster holds the
// union of its members' sources and is labelled by the phrase of its
// highest-scoring member (the first one on ties).
func MakeClusters(components []Component) ([]Cluster, error) {
	out := make([]Cluster, 0, len(components))
	for _, comp := range components {
		if len(comp) == 0 {
			continue
		}
		lead := comp[0]
		var sources SourceSet
		phrases := make([]Phrase, len(comp))
		for i, b := range comp {
			sources = sources.Union(b.Sources)
			phrases[i] = b.Phrase
			if b.Score > lead.Score {
				lead = b
			}
		}
		c, err := NewCluster(lead.Phrase, sources)
		if err != nil {
			return nil, err
		}
		c.Phrases = phrases
		out = append(out, c)
	}
	return out, nil
}

// DropSingletonBaseClusters returns the base clusters with more than one source.
func DropSingletonBaseClusters(base []BaseCluster) []BaseCluster {
	out := make([]BaseCluster, 0, len(base))
	for _, b := range base {
		if len(b.Sources) > 1 {
			out = append(out, b)
		}
	}
	return out
}
