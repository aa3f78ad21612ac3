package clustereval

import "fmt"

// Scoring compares discovered clusters with a ground truth.
type Scoring struct {
	Tags  TagIndex
	Truth GroundTruth
	// FBeta weights recall against precision in every F-measure.
	FBeta float64
	// StemTags reduces tag tokens to their English stems before matching.
	StemTags bool
}

// Score computes every metric of clusters against the ground truth. The
// returned Result has zero Timing and BaseClusters; Evaluate fills them in.
//
// Every cluster and category must hold a non-empty set built with
// NewSourceSet; otherwise Score returns ErrEmptySources or
// ErrUnsortedSources.
func (s Scoring) Score(clusters []Cluster) (*Result, error) {
	for _, c := range clusters {
		if err := c.Sources.check(); err != nil {
			return nil, fmt.Errorf("clustereval: cluster %q: %w", c.Label.String(), err)
		}
	}
	for _, g := range s.Truth {
		if err := g.Sources.check(); err != nil {
			return nil, fmt.Errorf("clustereval: category %q: %w", g.Key, err)
		}
	}

	tags := newTagScorer(s.Tags, s.StemTags)

	accuracy, err := rankHistogram(clusters, func(c Cluster) (Rank, error) {
		return tags.depth(c, nil)
	})
	if err != nil {
		return nil, err
	}

	coverage, err := rankHistogram(clusters, rankSearch[Cluster, Category]{
		opposite:  s.Truth,
		qualifies: func(c Cluster, g Category) bool { return Contains(c.Sources, g.Sources) },
		score:     func(c Cluster, g Category) (Rank, error) { return tags.depth(c, &g) },
	}.best)
	if err != nil {
		return nil, err
	}

	representation, err := rankHistogram(s.Truth, rankSearch[Category, Cluster]{
		opposite:  clusters,
		qualifies: func(g Category, c Cluster) bool { return Contains(c.Sources, g.Sources) },
		score:     func(g Category, c Cluster) (Rank, error) { return tags.depth(c, &g) },
	}.best)
	if err != nil {
		return nil, err
	}

	overall, err := OverallMetrics(s.Truth, clusters, len(s.Tags), s.FBeta)
	if err != nil {
		return nil, err
	}

	return &Result{
		Clusters:       len(clusters),
		Overall:        overall,
		TagAccuracy:    accuracy,
		Coverage:       coverage,
		Representation: representation,
		FMeasureByRank: fMeasureByRank(coverage, representation, s.FBeta),
	}, nil
}
