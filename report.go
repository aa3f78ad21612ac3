package clustereval

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// reportTimeFormat names report files after the moment they are written.
const reportTimeFormat = "2006-01-02_15-04-05.000000"

// WriteReport writes the options summary, the overall metrics and the three
// histogram tables of res to w, in that order. Section titles are styled
// when w is a terminal and plain otherwise.
func WriteReport(w io.Writer, c Chromosome, s ClusterSettings, res *Result) error {
	r := lipgloss.NewRenderer(w)
	title := r.NewStyle().Bold(true)

	var b strings.Builder
	writeOptions(&b, c, s, res)
	writeOverall(&b, title, s.FBeta, res.Overall)
	writeHistogram(&b, title, "Tag Accuracy:", res.TagAccuracy)
	b.WriteString("\n")
	writeHistogram(&b, title, "Ground truth:", res.Coverage)
	b.WriteString("\n")
	writeHistogram(&b, title, "Ground truth represented:", res.Representation)

	_, err := io.WriteString(w, b.String())
	return err
}

func writeOptions(b *strings.Builder, c Chromosome, s ClusterSettings, res *Result) {
	b.WriteString(strings.Repeat("#", 54) + "\n")
	fmt.Fprintf(b, "Clustered snippet collection of file: %s in %.4f seconds\n",
		s.SnippetFile, res.Timing.Clustering.Seconds())
	fmt.Fprintf(b, "Tree type: %s\n", c.Tree.Describe())
	fmt.Fprintf(b, "Number of top base clusters: %d\n", c.TopBaseClusters)
	fmt.Fprintf(b, "Minimum term/word occurrence in collection: %d\n", c.MinTermOccurrence)
	fmt.Fprintf(b, "Maximum term/word occurrence ratio in collection: %g\n", c.MaxTermRatio)
	fmt.Fprintf(b, "Singleton ground truth clusters %s\n", excluded(s.DropSingletonCategories))
	fmt.Fprintf(b, "Singleton base clusters %s\n", excluded(c.DropSingletonBaseClusters))
	fmt.Fprintf(b, "Singleton clusters %s\n", excluded(c.DropSingletonClusters))
	fmt.Fprintf(b, "One word clusters %s\n", excluded(c.DropOneWordClusters))
	fmt.Fprintf(b, "F-beta constant used for F-Measure: %g\n", s.FBeta)
	b.WriteString("---------------------\n")
}

func excluded(dropped bool) string {
	if dropped {
		return "excluded"
	}
	return "included"
}

func writeOverall(b *strings.Builder, title lipgloss.Style, beta float64, o Overall) {
	b.WriteString(title.Render("The overall measurements of clusters:") + "\n")
	fmt.Fprintf(b, "Precision:\t\t%.3f\n", o.Precision)
	fmt.Fprintf(b, "Recall:\t\t\t%.3f\n", o.Recall)
	fmt.Fprintf(b, "F-Measure (b=%.1f):\t%.3f\n\n", beta, o.FMeasure)
}

func writeHistogram(b *strings.Builder, title lipgloss.Style, name string, h Histogram) {
	b.WriteString(title.Render(name) + "\n")
	b.WriteString("Overlap - Number/Total - Fraction - Accumulated\n")
	b.WriteString(strings.Repeat("-", 52) + "\n")
	for _, row := range h.Rows {
		fmt.Fprintf(b, "%d\t   %2d/%d\t\t%.3f\t   %.3f\n",
			row.Offset, row.Count, h.Total, row.Fraction, row.Cumulative)
	}
}

// writeReportFile renders the report in memory, then writes it to a new
// file in dir named after now. It returns the file path.
func writeReportFile(dir string, now time.Time, c Chromosome, s ClusterSettings, res *Result) (string, error) {
	path := filepath.Join(dir, now.Format(reportTimeFormat)+".txt")

	var b strings.Builder
	if err := WriteReport(&b, c, s, res); err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("clustereval: create report: %w", err)
	}
	if _, err := f.WriteString(b.String()); err != nil {
		f.Close()
		return "", fmt.Errorf("clustereval: write report: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("clustereval: close report: %w", err)
	}
	return path, nil
}
