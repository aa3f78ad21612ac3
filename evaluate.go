package clustereval

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Recorder persists the outcome of every successful evaluation.
type Recorder interface {
	RecordRun(c Chromosome, res *Result) error
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithLogger sets the logger for pipeline progress. Default: discard.
func WithLogger(l *log.Logger) Option {
	return func(e *Evaluator) { e.logger = l }
}

// WithRecorder records every successful evaluation in r.
func WithRecorder(r Recorder) Option {
	return func(e *Evaluator) { e.recorder = r }
}

// WithClock replaces time.Now for timing and report file names.
func WithClock(now func() time.Time) Option {
	return func(e *Evaluator) { e.now = now }
}

// WithReportDir sets the directory File reports are written to. Default: ".".
func WithReportDir(dir string) Option {
	return func(e *Evaluator) { e.reportDir = dir }
}

// WithStdout sets the writer Console reports go to. Default: os.Stdout.
func WithStdout(w io.Writer) Option {
	return func(e *Evaluator) { e.stdout = w }
}

// Evaluator clusters a snippet collection with a Pipeline and scores the
// result against a ground truth. An Evaluator holds no state between calls.
type Evaluator struct {
	pipeline  Pipeline
	logger    *log.Logger
	recorder  Recorder
	now       func() time.Time
	reportDir string
	stdout    io.Writer
}

// NewEvaluator returns an Evaluator running p. It returns an error if p
// lacks a tree builder or a base cluster extractor.
func NewEvaluator(p Pipeline, opts ...Option) (*Evaluator, error) {
	if p.Trees == nil {
		return nil, errors.New("clustereval: pipeline has no tree builder")
	}
	if p.Extractor == nil {
		return nil, errors.New("clustereval: pipeline has no base cluster extractor")
	}
	if p.Merger == nil {
		p.Merger = OverlapMerger{Threshold: DefaultMergeThreshold}
	}
	if p.Maker == nil {
		p.Maker = ClusterMakerFunc(MakeClusters)
	}
	e := &Evaluator{
		pipeline:  p,
		logger:    log.New(io.Discard),
		now:       time.Now,
		reportDir: ".",
		stdout:    os.Stdout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Evaluate clusters settings.Snippets with the parameters in c and scores
// the clusters against settings.GroundTruth.
//
// When no base clusters or no final clusters remain, Evaluate returns a
// Result with zero metrics instead of an error. A source missing from the
// tag index fails the call with a *MissingTagError.
func (e *Evaluator) Evaluate(c Chromosome, settings ClusterSettings) (*Result, error) {
	cfg, s := c, settings
	applyDefaults(&cfg, &s)
	if err := validate(&cfg, &s); err != nil {
		return nil, err
	}
	if s.DropSingletonCategories {
		s.GroundTruth = s.GroundTruth.DropSingletons()
	}

	start := e.now()
	base, clusters, err := e.cluster(cfg, s.Snippets)
	if err != nil {
		return nil, err
	}
	clustering := e.now().Sub(start)

	var res *Result
	if len(base) == 0 || len(clusters) == 0 {
		e.logger.Info("nothing to score", "baseClusters", len(base), "clusters", len(clusters))
		res = emptyResult(len(base))
	} else {
		scoring := Scoring{Tags: s.Tags, Truth: s.GroundTruth, FBeta: s.FBeta, StemTags: s.StemTags}
		res, err = scoring.Score(clusters)
		if err != nil {
			return nil, err
		}
		res.BaseClusters = len(base)
	}
	res.Timing = Timing{Clustering: clustering, Total: e.now().Sub(start)}

	if res.Clusters > 0 {
		if err := e.report(cfg, s, res); err != nil {
			return nil, err
		}
	}
	if e.recorder != nil {
		if err := e.recorder.RecordRun(c, res); err != nil {
			return nil, fmt.Errorf("clustereval: record run: %w", err)
		}
	}
	return res, nil
}

// cluster runs the pipeline and applies the chromosome's drop filters.
func (e *Evaluator) cluster(c Chromosome, snippets []Snippet) ([]BaseCluster, []Cluster, error) {
	tree, err := buildTree(c.Tree, e.pipeline.Trees, snippets)
	if err != nil {
		return nil, nil, err
	}
	if tree == nil {
		return nil, nil, fmt.Errorf("clustereval: %s builder returned no tree: %w", c.Tree.Describe(), ErrUnknownTreeType)
	}
	e.logger.Debug("tree built", "type", c.Tree.Describe(), "snippets", len(snippets))

	base, err := e.pipeline.Extractor.TopBaseClusters(tree, c.query())
	if err != nil {
		return nil, nil, fmt.Errorf("clustereval: extract base clusters: %w", err)
	}
	base, err = normalizeBaseClusters(base)
	if err != nil {
		return nil, nil, err
	}
	if c.DropSingletonBaseClusters {
		base = DropSingletonBaseClusters(base)
	}
	e.logger.Debug("base clusters", "count", len(base))
	if len(base) == 0 {
		return nil, nil, nil
	}

	components := e.pipeline.Merger.MergeComponents(base)
	clusters, err := e.pipeline.Maker.MakeClusters(components)
	if err != nil {
		return nil, nil, fmt.Errorf("clustereval: make clusters: %w", err)
	}
	clusters, err = normalizeClusters(clusters)
	if err != nil {
		return nil, nil, err
	}
	if c.DropSingletonClusters {
		clusters = DropSingletonClusters(clusters)
	}
	if c.DropOneWordClusters {
		clusters = DropOneWordClusters(clusters)
	}
	e.logger.Debug("clusters", "components", len(components), "count", len(clusters))
	return base, clusters, nil
}

// normalizeBaseClusters copies base with every source set sorted and
// deduplicated. An empty set is an error.
func normalizeBaseClusters(base []BaseCluster) ([]BaseCluster, error) {
	out := make([]BaseCluster, len(base))
	for i, b := range base {
		b.Sources = NewSourceSet(b.Sources...)
		if len(b.Sources) == 0 {
			return nil, fmt.Errorf("clustereval: base cluster %q: %w", b.Phrase.String(), ErrEmptySources)
		}
		out[i] = b
	}
	return out, nil
}

// normalizeClusters rebuilds clusters from a ClusterMaker through NewCluster.
func normalizeClusters(clusters []Cluster) ([]Cluster, error) {
	out := make([]Cluster, len(clusters))
	for i, c := range clusters {
		n, err := NewCluster(c.Label, NewSourceSet(c.Sources...))
		if err != nil {
			return nil, err
		}
		n.Phrases = c.Phrases
		out[i] = n
	}
	return out, nil
}

func (e *Evaluator) report(c Chromosome, s ClusterSettings, res *Result) error {
	switch s.Verbosity {
	case Console:
		return WriteReport(e.stdout, c, s, res)
	case File:
		path, err := writeReportFile(e.reportDir, e.now(), c, s, res)
		if err != nil {
			return err
		}
		e.logger.Info("report written", "path", path)
	}
	return nil
}
