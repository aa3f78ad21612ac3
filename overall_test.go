package clustereval

import (
	"errors"
	"math"
	"testing"
)

func TestFBeta(t *testing.T) {
	tests := []struct {
		name    string
		p, r, b float64
		want    float64
	}{
		{"zero denominator", 0, 0, 1, 0},
		{"perfect", 1, 1, 1, 1},
		{"harmonic mean", 0.5, 1, 1, 2.0 / 3},
		{"recall weighted", 0.5, 1, 2, 5 * 0.5 / (4*0.5 + 1)},
		{"precision only", 1, 0, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FBeta(tt.p, tt.r, tt.b); math.Abs(got-tt.want) > floatTolerance {
				t.Errorf("FBeta(%g, %g, %g) = %g, want %g", tt.p, tt.r, tt.b, got, tt.want)
			}
		})
	}
}

func TestOverallMetrics_PerfectClustering(t *testing.T) {
	truth, err := NewGroundTruth(map[string][]SourceID{
		"news-politics": {"a", "b"},
		"sports-news":   {"c"},
	})
	if err != nil {
		t.Fatal(err)
	}
	clusters := []Cluster{
		{Label: Phrase{"politics"}, Sources: NewSourceSet("a", "b")},
		{Label: Phrase{"sports"}, Sources: NewSourceSet("c")},
	}
	got, err := OverallMetrics(truth, clusters, 3, 1)
	if err != nil {
		t.Fatalf("OverallMetrics() error: %v", err)
	}
	want := Overall{Precision: 1, Recall: 1, FMeasure: 1}
	compareFloat64Slices(t, "overall",
		[]float64{want.Precision, want.Recall, want.FMeasure},
		[]float64{got.Precision, got.Recall, got.FMeasure}, floatTolerance)
}

func TestOverallMetrics_UnmatchedCategory(t *testing.T) {
	truth, _ := NewGroundTruth(map[string][]SourceID{
		"news-politics": {"a", "b"},
		"sports-news":   {"c"},
	})
	clusters := []Cluster{{Label: Phrase{"politics"}, Sources: NewSourceSet("a", "b")}}
	got, err := OverallMetrics(truth, clusters, 3, 1)
	if err != nil {
		t.Fatalf("OverallMetrics() error: %v", err)
	}
	// sports-news finds no overlapping cluster and contributes nothing.
	for name, v := range map[string]float64{
		"precision": got.Precision, "recall": got.Recall, "f-measure": got.FMeasure,
	} {
		if math.Abs(v-2.0/3) > floatTolerance {
			t.Errorf("%s = %g, want %g", name, v, 2.0/3)
		}
	}
}

func TestOverallMetrics_Bounds(t *testing.T) {
	truth, _ := NewGroundTruth(map[string][]SourceID{
		"a": {"1", "2", "3"},
		"b": {"4"},
		"c": {"5"},
	})
	clusters := []Cluster{
		{Sources: NewSourceSet("1", "2", "3", "4", "5")},
		{Sources: NewSourceSet("2", "4")},
		{Sources: NewSourceSet("5")},
	}
	got, err := OverallMetrics(truth, clusters, 5, 1)
	if err != nil {
		t.Fatalf("OverallMetrics() error: %v", err)
	}
	for name, v := range map[string]float64{
		"precision": got.Precision, "recall": got.Recall, "f-measure": got.FMeasure,
	} {
		if v < 0 || v > 1+floatTolerance {
			t.Errorf("%s = %g, want within [0, 1]", name, v)
		}
	}
}

func TestOverallMetrics_NoSources(t *testing.T) {
	_, err := OverallMetrics(nil, nil, 0, 1)
	if !errors.Is(err, ErrNoSources) {
		t.Errorf("err = %v, want ErrNoSources", err)
	}
}
