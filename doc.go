// Package clustereval evaluates a search-result clustering against a known
// ground-truth partition of the same snippets.
//
// An Evaluator builds a compact trie over the snippet collection, extracts
// and merges base clusters through a Pipeline of collaborators, and compares
// the discovered clusters with the ground truth. It reports the overall
// precision, recall and F-measure, and three histograms of tag overlap that
// show how closely each cluster matches its best category:
//
//   - TagAccuracy: tag tokens shared by every source of a cluster.
//   - Coverage: for each cluster, its best match among the categories it contains.
//   - Representation: for each category, its best match among the clusters containing it.
//
// Basic usage:
//
//	ev, err := clustereval.NewEvaluator(clustereval.Pipeline{
//		Trees:     trees,     // builds suffix / slice tries
//		Extractor: extractor, // reads base clusters off a trie
//	})
//	c := clustereval.DefaultChromosome()
//	c.Tree = clustereval.RangeSliceTree{Min: 2, Max: 4}
//	res, err := ev.Evaluate(c, clustereval.ClusterSettings{
//		Snippets:    snippets,
//		Tags:        tags,
//		GroundTruth: truth,
//	})
//	// res.Overall.FMeasure, res.CoverageFractions(), ...
//
// Clusters produced elsewhere can be scored directly with Scoring.Score.
//
// # Match depth
//
// The match depth of a cluster is the number of normalized tag tokens shared
// by all of its sources, plus the category key when scoring against a
// category. Depths above MaxRank are clamped to MaxRank.
package clustereval
