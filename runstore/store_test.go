package runstore

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/TrevorS/clustereval"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRun(f float64) Run {
	c := clustereval.DefaultChromosome()
	c.Tree = clustereval.RangeSliceTree{Min: 1, Max: 3}
	return Run{
		Chromosome:     c,
		Elapsed:        1500 * time.Millisecond,
		Clusters:       12,
		BaseClusters:   40,
		Overall:        clustereval.Overall{Precision: 0.5, Recall: 0.75, FMeasure: f},
		Coverage:       []float64{0, 0.1, 0.2, 0.3, 0.2, 0.2},
		Representation: []float64{0, 0, 0.25, 0.25, 0.25, 0.25},
		FMeasure:       []float64{0, 0, 0.2222222222222222, 0.2727272727272727, 0.2222222222222222, 0.2222222222222222},
	}
}

func TestStore_SaveGet(t *testing.T) {
	s := openTestStore(t)
	created := time.Date(2024, 3, 9, 14, 5, 6, 123456789, time.UTC)
	s.now = func() time.Time { return created }
	ctx := context.Background()

	want := sampleRun(0.6)
	id, err := s.Save(ctx, want)
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if id == "" {
		t.Fatal("Save() returned an empty ID")
	}

	got, err := s.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	want.ID = id
	want.CreatedAt = created
	if !got.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, created)
	}
	got.CreatedAt = created
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
}

func TestStore_GetMissing(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestStore_Best(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	scores := []float64{0.4, 0.9, 0.1, 0.9, 0.7}
	ids := make([]string, len(scores))
	for i, f := range scores {
		run := sampleRun(f)
		run.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		id, err := s.Save(ctx, run)
		if err != nil {
			t.Fatalf("Save() error: %v", err)
		}
		ids[i] = id
	}

	best, err := s.Best(ctx, 3)
	if err != nil {
		t.Fatalf("Best() error: %v", err)
	}
	// Equal scores keep the order they were stored in.
	wantIDs := []string{ids[1], ids[3], ids[4]}
	if len(best) != len(wantIDs) {
		t.Fatalf("Best() returned %d runs, want %d", len(best), len(wantIDs))
	}
	for i, run := range best {
		if run.ID != wantIDs[i] {
			t.Errorf("best[%d] = %s (f=%g), want %s", i, run.ID, run.Overall.FMeasure, wantIDs[i])
		}
	}

	n, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error: %v", err)
	}
	if n != len(scores) {
		t.Errorf("Count() = %d, want %d", n, len(scores))
	}
}

func TestStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	id, err := s.Save(context.Background(), sampleRun(0.5))
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer s.Close()
	if _, err := s.Get(context.Background(), id); err != nil {
		t.Errorf("run lost across reopen: %v", err)
	}
}

// stubTrees and stubExtractor feed a fixed pair of base clusters to the
// evaluator.
type stubTrees struct{}

func (stubTrees) BuildSuffix(s []clustereval.Snippet) (clustereval.Tree, error)   { return s, nil }
func (stubTrees) BuildMidSlice(s []clustereval.Snippet) (clustereval.Tree, error) { return s, nil }
func (stubTrees) BuildRangeSlice(s []clustereval.Snippet, _, _ int) (clustereval.Tree, error) {
	return s, nil
}
func (stubTrees) BuildNSlice(s []clustereval.Snippet, _ int) (clustereval.Tree, error) {
	return s, nil
}

type stubExtractor []clustereval.BaseCluster

func (e stubExtractor) TopBaseClusters(clustereval.Tree, clustereval.BaseClusterQuery) ([]clustereval.BaseCluster, error) {
	return e, nil
}

func TestStore_RecordsEvaluations(t *testing.T) {
	store := openTestStore(t)
	truth, err := clustereval.NewGroundTruth(map[string][]clustereval.SourceID{
		"news-politics": {"a", "b"},
		"sports-news":   {"c"},
	})
	if err != nil {
		t.Fatal(err)
	}
	settings := clustereval.ClusterSettings{
		Tags:        clustereval.TagIndex{"a": "news-politics", "b": "news-politics", "c": "sports-news"},
		GroundTruth: truth,
	}
	extractor := stubExtractor{
		{Phrase: clustereval.Phrase{"politics"}, Sources: clustereval.NewSourceSet("a", "b"), Score: 2},
		{Phrase: clustereval.Phrase{"sports"}, Sources: clustereval.NewSourceSet("c"), Score: 1},
	}
	ev, err := clustereval.NewEvaluator(
		clustereval.Pipeline{Trees: stubTrees{}, Extractor: extractor},
		clustereval.WithRecorder(store),
	)
	if err != nil {
		t.Fatal(err)
	}

	res, err := ev.Evaluate(clustereval.DefaultChromosome(), settings)
	if err != nil {
		t.Fatalf("Evaluate() error: %v", err)
	}

	runs, err := store.Best(context.Background(), 10)
	if err != nil {
		t.Fatalf("Best() error: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("stored %d runs, want 1", len(runs))
	}
	got := runs[0]
	if got.Overall != res.Overall || got.Clusters != 2 || got.BaseClusters != 2 {
		t.Errorf("stored run %+v does not match result %+v", got, res)
	}
	if _, ok := got.Chromosome.Tree.(clustereval.SuffixTree); !ok {
		t.Errorf("stored tree = %#v, want SuffixTree", got.Chromosome.Tree)
	}
	if !reflect.DeepEqual(got.FMeasure, res.FMeasureFractions()) {
		t.Errorf("stored f-measure %v, want %v", got.FMeasure, res.FMeasureFractions())
	}
}
