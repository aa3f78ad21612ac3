package clustereval

import "time"

// Timing records how long an evaluation took.
type Timing struct {
	// Clustering covers tree construction, base cluster extraction, merging
	// and filtering.
	Clustering time.Duration
	// Total additionally covers scoring.
	Total time.Duration
}

// RankScore is one row of the F-measure-by-rank table.
type RankScore struct {
	Offset int
	Rank   Rank
	Value  float64
}

// Result contains the output of one evaluation.
type Result struct {
	Timing Timing

	// Clusters is the number of discovered clusters that were scored.
	Clusters int
	// BaseClusters is the number of base clusters extracted from the tree,
	// after the optional singleton filter.
	BaseClusters int

	Overall Overall

	// TagAccuracy ranks each cluster by the tag tokens shared by all its
	// sources, over the number of clusters.
	TagAccuracy Histogram
	// Coverage ranks each cluster by its best match with a ground-truth
	// category it contains, over the number of clusters.
	Coverage Histogram
	// Representation ranks each ground-truth category by its best match with
	// a cluster that contains it, over the number of categories.
	Representation Histogram

	// FMeasureByRank combines the Coverage (precision) and Representation
	// (recall) fractions row by row.
	FMeasureByRank []RankScore
}

// CoverageFractions returns the Fraction column of Coverage, best rank first.
func (r *Result) CoverageFractions() []float64 { return r.Coverage.Fractions() }

// RepresentationFractions returns the Fraction column of Representation,
// best rank first.
func (r *Result) RepresentationFractions() []float64 { return r.Representation.Fractions() }

// FMeasureFractions returns the FMeasureByRank values, best rank first.
func (r *Result) FMeasureFractions() []float64 {
	out := make([]float64, len(r.FMeasureByRank))
	for i, s := range r.FMeasureByRank {
		out[i] = s.Value
	}
	return out
}

// emptyResult is returned when clustering produced nothing to score. Every
// metric is zero and every table has zero rows of the usual shape.
func emptyResult(baseClusters int) *Result {
	var none RankCounts
	return &Result{
		BaseClusters:   baseClusters,
		TagAccuracy:    none.Reduce(0),
		Coverage:       none.Reduce(0),
		Representation: none.Reduce(0),
		FMeasureByRank: fMeasureByRank(none.Reduce(0), none.Reduce(0), 1),
	}
}

// fMeasureByRank treats each Coverage fraction as a precision and the
// Representation fraction on the same row as a recall.
func fMeasureByRank(coverage, representation Histogram, beta float64) []RankScore {
	out := make([]RankScore, len(coverage.Rows))
	for i, row := range coverage.Rows {
		out[i] = RankScore{
			Offset: row.Offset,
			Rank:   row.Rank,
			Value:  FBeta(row.Fraction, representation.Rows[i].Fraction, beta),
		}
	}
	return out
}
