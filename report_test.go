package clustereval

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newsResult(t *testing.T) *Result {
	t.Helper()
	gd := loadGoldenFile(t, filepath.Join("testdata", "scenario_news.json"))
	tags, truth, clusters := scoringInputs(t, gd)
	res, err := Scoring{Tags: tags, Truth: truth, FBeta: 1}.Score(clusters)
	if err != nil {
		t.Fatalf("Score() error: %v", err)
	}
	res.Timing = Timing{Clustering: 1500 * time.Millisecond, Total: 2 * time.Second}
	return res
}

func TestWriteReport(t *testing.T) {
	c := DefaultChromosome()
	c.DropSingletonBaseClusters = true
	s := ClusterSettings{SnippetFile: "news.xml", FBeta: 1}

	var buf bytes.Buffer
	if err := WriteReport(&buf, c, s, newsResult(t)); err != nil {
		t.Fatalf("WriteReport() error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		strings.Repeat("#", 54) + "\n",
		"Clustered snippet collection of file: news.xml in 1.5000 seconds\n",
		"Tree type: Suffix\n",
		"Singleton ground truth clusters included\n",
		"Singleton base clusters excluded\n",
		"One word clusters included\n",
		"The overall measurements of clusters:\n",
		"Precision:\t\t0.667\n",
		"Recall:\t\t\t0.667\n",
		"F-Measure (b=1.0):\t0.667\n",
		"Overlap - Number/Total - Fraction - Accumulated\n",
		"3\t    1/2\t\t0.500\t   0.500\n",
		"5\t    1/2\t\t0.500\t   1.000\n",
		"3\t    1/1\t\t1.000\t   1.000\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q\n%s", want, out)
		}
	}

	// Sections appear in a fixed order.
	order := []string{"Tree type:", "The overall measurements", "Tag Accuracy:", "Ground truth:", "Ground truth represented:"}
	last := -1
	for _, section := range order {
		i := strings.Index(out, section)
		if i <= last {
			t.Errorf("section %q out of order", section)
		}
		last = i
	}
	if n := strings.Count(out, strings.Repeat("-", 52)+"\n"); n != 3 {
		t.Errorf("found %d table rules, want 3", n)
	}
}

func TestWriteReportFile(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 3, 9, 14, 5, 6, 123456000, time.UTC)

	path, err := writeReportFile(dir, now, DefaultChromosome(), ClusterSettings{FBeta: 1}, newsResult(t))
	if err != nil {
		t.Fatalf("writeReportFile() error: %v", err)
	}
	if want := filepath.Join(dir, "2024-03-09_14-05-06.123456.txt"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Ground truth represented:") {
		t.Error("report file is incomplete")
	}
}

func TestWriteReportFile_MissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "absent")
	_, err := writeReportFile(dir, time.Now(), DefaultChromosome(), ClusterSettings{FBeta: 1}, newsResult(t))
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}
