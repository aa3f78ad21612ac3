package clustereval

import "gonum.org/v1/gonum/floats"

// Rank is a tag-overlap match depth: the number of tag tokens shared by
// every voter in a comparison, from 0 (no overlap) up to MaxRank.
type Rank int

// MaxRank is the deepest match a histogram distinguishes. Deeper matches are
// clamped to it.
const MaxRank Rank = 5

const numRanks = int(MaxRank) + 1

// ClampRank converts a count of shared tokens into a Rank, clamping to
// [0, MaxRank].
func ClampRank(depth int) Rank {
	switch {
	case depth < 0:
		return 0
	case depth > int(MaxRank):
		return MaxRank
	}
	return Rank(depth)
}

// RankCounts tallies entities by their best match depth.
type RankCounts [numRanks]int

// HistogramRow is one line of a rank histogram.
type HistogramRow struct {
	// Offset is MaxRank - Rank: 0 on the best row, 5 on the no-overlap row.
	Offset int
	Rank   Rank
	Count  int
	// Fraction is Count divided by the histogram total.
	Fraction float64
	// Cumulative is the fraction of entities matched at Rank or deeper.
	Cumulative float64
}

// Histogram is a rank-ordered table, best rank first.
type Histogram struct {
	Rows []HistogramRow
	// Total is the size of the driving partition.
	Total int
}

// Reduce turns counts into histogram rows ordered from MaxRank down to 0.
// A zero total yields all-zero fractions.
func (c RankCounts) Reduce(total int) Histogram {
	counts := make([]float64, numRanks)
	for i := range counts {
		counts[i] = float64(c[MaxRank-Rank(i)])
	}
	cumulative := floats.CumSum(make([]float64, numRanks), counts)

	rows := make([]HistogramRow, numRanks)
	for i := range rows {
		r := MaxRank - Rank(i)
		rows[i] = HistogramRow{Offset: i, Rank: r, Count: c[r]}
		if total > 0 {
			rows[i].Fraction = counts[i] / float64(total)
			rows[i].Cumulative = cumulative[i] / float64(total)
		}
	}
	return Histogram{Rows: rows, Total: total}
}

// Fractions returns the Fraction column, best rank first.
func (h Histogram) Fractions() []float64 {
	out := make([]float64, len(h.Rows))
	for i, row := range h.Rows {
		out[i] = row.Fraction
	}
	return out
}

// Counted returns the sum of the Count column.
func (h Histogram) Counted() int {
	counts := make([]float64, len(h.Rows))
	for i, row := range h.Rows {
		counts[i] = float64(row.Count)
	}
	return int(floats.Sum(counts))
}

// rankHistogram finds the best rank of every driving entity and tallies
// them over len(driving).
func rankHistogram[D any](driving []D, best func(D) (Rank, error)) (Histogram, error) {
	var counts RankCounts
	for _, d := range driving {
		r, err := best(d)
		if err != nil {
			return Histogram{}, err
		}
		counts[r]++
	}
	return counts.Reduce(len(driving)), nil
}

// rankSearch scans an opposite partition for the deepest match of one
// driving entity.
type rankSearch[D, O any] struct {
	opposite []O
	// qualifies filters pairs before scoring. Nil admits every pair.
	qualifies func(D, O) bool
	score     func(D, O) (Rank, error)
}

// best returns the maximum score over qualifying members of the opposite
// partition, or 0 when none qualifies.
func (s rankSearch[D, O]) best(d D) (Rank, error) {
	var best Rank
	for _, o := range s.opposite {
		if s.qualifies != nil && !s.qualifies(d, o) {
			continue
		}
		r, err := s.score(d, o)
		if err != nil {
			return 0, err
		}
		if r > best {
			best = r
		}
	}
	return best, nil
}

// bestRatio returns the largest score over the opposite partition, or 0
// when it is empty. Only a strictly larger score replaces the current best.
func bestRatio[O any](opposite []O, score func(O) float64) float64 {
	var best float64
	for _, o := range opposite {
		if v := score(o); v > best {
			best = v
		}
	}
	return best
}
