package clustereval

import "gonum.org/v1/gonum/floats"

// Overall holds the overall precision, recall and F-measure of a clustering
// against the ground truth.
type Overall struct {
	Precision float64
	Recall    float64
	FMeasure  float64
}

// FBeta combines precision and recall into the F-beta measure, where beta
// weights recall relative to precision. It is 0 when the denominator is 0.
func FBeta(precision, recall, beta float64) float64 {
	b2 := beta * beta
	den := b2*precision + recall
	if den == 0 {
		return 0
	}
	return (1 + b2) * precision * recall / den
}

// pairPrecision is |G ∩ S| / |S| for category G and cluster S.
func pairPrecision(g Category, c Cluster) float64 {
	return OverlapRatio(g.Sources, c.Sources, len(c.Sources))
}

// pairRecall is |G ∩ S| / |G| for category G and cluster S.
func pairRecall(g Category, c Cluster) float64 {
	return OverlapRatio(g.Sources, c.Sources, len(g.Sources))
}

// OverallMetrics computes the overall precision, recall and F-measure of
// clusters against truth. Each category is weighted by its share of the
// totalSources documents and matched with its best cluster. The three
// measures are maximized independently per category.
func OverallMetrics(truth GroundTruth, clusters []Cluster, totalSources int, beta float64) (Overall, error) {
	if totalSources <= 0 {
		return Overall{}, ErrNoSources
	}
	precision := make([]float64, len(truth))
	recall := make([]float64, len(truth))
	fmeasure := make([]float64, len(truth))
	for i, g := range truth {
		w := float64(len(g.Sources)) / float64(totalSources)
		precision[i] = w * bestRatio(clusters, func(c Cluster) float64 {
			return pairPrecision(g, c)
		})
		recall[i] = w * bestRatio(clusters, func(c Cluster) float64 {
			return pairRecall(g, c)
		})
		fmeasure[i] = w * bestRatio(clusters, func(c Cluster) float64 {
			return FBeta(pairPrecision(g, c), pairRecall(g, c), beta)
		})
	}
	return Overall{
		Precision: floats.Sum(precision),
		Recall:    floats.Sum(recall),
		FMeasure:  floats.Sum(fmeasure),
	}, nil
}
