package clustereval

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// Verbosity selects where the evaluation report goes.
type Verbosity int

const (
	// Quiet writes no report.
	Quiet Verbosity = iota
	// Console writes the report to standard output.
	Console
	// File writes the report to a file named after the current time.
	File
)

func (v Verbosity) String() string {
	switch v {
	case Quiet:
		return "quiet"
	case Console:
		return "console"
	case File:
		return "file"
	}
	return fmt.Sprintf("Verbosity(%d)", int(v))
}

// Chromosome is the tunable parameter set of one evaluation.
// Start with [DefaultChromosome] and override the fields you need.
type Chromosome struct {
	// Tree selects the compact trie. Default: SuffixTree{}.
	Tree TreeType

	// TopBaseClusters caps how many base clusters are extracted from the
	// tree. Must be >= 1. Default: 500.
	TopBaseClusters int

	// MinTermOccurrence drops phrases found in fewer snippets. Must be >= 0.
	// Default: 2.
	MinTermOccurrence int

	// MaxTermRatio drops phrases found in a larger share of the collection,
	// acting as a stop-word filter. Must be in (0, 1]. Default: 0.4.
	MaxTermRatio float64

	// MinBaseClusterScore and MaxBaseClusterScore bound base cluster scores.
	// A zero MaxBaseClusterScore means no upper bound.
	MinBaseClusterScore float64
	MaxBaseClusterScore float64

	// DropSingletonBaseClusters removes base clusters with one source.
	DropSingletonBaseClusters bool

	// DropSingletonClusters removes final clusters with one source.
	DropSingletonClusters bool

	// DropOneWordClusters removes final clusters labelled by a single word.
	DropOneWordClusters bool
}

// ClusterSettings holds the collection, the reference data and the fixed
// options of an evaluation.
type ClusterSettings struct {
	Snippets []Snippet

	// SnippetFile names the collection in reports.
	SnippetFile string

	Tags        TagIndex
	GroundTruth GroundTruth

	// DropSingletonCategories removes ground-truth categories with one source
	// before scoring.
	DropSingletonCategories bool

	// StemTags reduces tag tokens to English stems before matching.
	StemTags bool

	// FBeta weights recall against precision. Must be > 0. Default: 1.0.
	FBeta float64

	Verbosity Verbosity
}

// DefaultChromosome returns a Chromosome with reasonable defaults.
func DefaultChromosome() Chromosome {
	return Chromosome{
		Tree:              SuffixTree{},
		TopBaseClusters:   500,
		MinTermOccurrence: 2,
		MaxTermRatio:      0.4,
	}
}

// DefaultSettings returns settings with FBeta 1 and no report. Fill in the
// collection and reference data before use.
func DefaultSettings() ClusterSettings {
	return ClusterSettings{FBeta: 1.0, Verbosity: Quiet}
}

// query returns the base cluster extraction thresholds of c.
func (c Chromosome) query() BaseClusterQuery {
	return BaseClusterQuery{
		Top:               c.TopBaseClusters,
		MinTermOccurrence: c.MinTermOccurrence,
		MaxTermRatio:      c.MaxTermRatio,
		MinScore:          c.MinBaseClusterScore,
		MaxScore:          c.MaxBaseClusterScore,
	}
}

// applyDefaults fills in zero-valued fields with their defaults.
func applyDefaults(c *Chromosome, s *ClusterSettings) {
	if c.MaxBaseClusterScore == 0 {
		c.MaxBaseClusterScore = math.MaxFloat64
	}
	if s.FBeta == 0 {
		s.FBeta = 1.0
	}
}

// validate checks that c and s are usable and returns a descriptive error if not.
func validate(c *Chromosome, s *ClusterSettings) error {
	if c.Tree == nil {
		return ErrUnknownTreeType
	}
	if err := c.Tree.validate(); err != nil {
		return err
	}
	if c.TopBaseClusters < 1 {
		return fmt.Errorf("clustereval: TopBaseClusters must be >= 1, got %d", c.TopBaseClusters)
	}
	if c.MinTermOccurrence < 0 {
		return fmt.Errorf("clustereval: MinTermOccurrence must be >= 0, got %d", c.MinTermOccurrence)
	}
	if c.MaxTermRatio <= 0 || c.MaxTermRatio > 1 {
		return fmt.Errorf("clustereval: MaxTermRatio must be in (0, 1], got %f", c.MaxTermRatio)
	}
	if c.MinBaseClusterScore > c.MaxBaseClusterScore {
		return fmt.Errorf("clustereval: MinBaseClusterScore %f exceeds MaxBaseClusterScore %f",
			c.MinBaseClusterScore, c.MaxBaseClusterScore)
	}
	if s.FBeta <= 0 {
		return fmt.Errorf("clustereval: FBeta must be > 0, got %f", s.FBeta)
	}
	switch s.Verbosity {
	case Quiet, Console, File:
	default:
		return fmt.Errorf("clustereval: invalid Verbosity %d", int(s.Verbosity))
	}
	return nil
}

// chromosomeJSON is the persisted form of a Chromosome.
type chromosomeJSON struct {
	Tree                      json.RawMessage `json:"tree"`
	TopBaseClusters           int             `json:"topBaseClusters"`
	MinTermOccurrence         int             `json:"minTermOccurrence"`
	MaxTermRatio              float64         `json:"maxTermRatio"`
	MinBaseClusterScore       float64         `json:"minBaseClusterScore"`
	MaxBaseClusterScore       float64         `json:"maxBaseClusterScore,omitempty"`
	DropSingletonBaseClusters bool            `json:"dropSingletonBaseClusters"`
	DropSingletonClusters     bool            `json:"dropSingletonClusters"`
	DropOneWordClusters       bool            `json:"dropOneWordClusters"`
}

func (c Chromosome) MarshalJSON() ([]byte, error) {
	tree, err := MarshalTreeType(c.Tree)
	if err != nil {
		return nil, err
	}
	return json.Marshal(chromosomeJSON{
		Tree:                      tree,
		TopBaseClusters:           c.TopBaseClusters,
		MinTermOccurrence:         c.MinTermOccurrence,
		MaxTermRatio:              c.MaxTermRatio,
		MinBaseClusterScore:       c.MinBaseClusterScore,
		MaxBaseClusterScore:       c.MaxBaseClusterScore,
		DropSingletonBaseClusters: c.DropSingletonBaseClusters,
		DropSingletonClusters:     c.DropSingletonClusters,
		DropOneWordClusters:       c.DropOneWordClusters,
	})
}

func (c *Chromosome) UnmarshalJSON(data []byte) error {
	var j chromosomeJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	tree, err := UnmarshalTreeType(j.Tree)
	if err != nil {
		return err
	}
	*c = Chromosome{
		Tree:                      tree,
		TopBaseClusters:           j.TopBaseClusters,
		MinTermOccurrence:         j.MinTermOccurrence,
		MaxTermRatio:              j.MaxTermRatio,
		MinBaseClusterScore:       j.MinBaseClusterScore,
		MaxBaseClusterScore:       j.MaxBaseClusterScore,
		DropSingletonBaseClusters: j.DropSingletonBaseClusters,
		DropSingletonClusters:     j.DropSingletonClusters,
		DropOneWordClusters:       j.DropOneWordClusters,
	}
	return nil
}

// LoadChromosome reads a chromosome from a JSON file. A missing file yields
// DefaultChromosome.
func LoadChromosome(path string) (Chromosome, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultChromosome(), nil
		}
		return Chromosome{}, fmt.Errorf("clustereval: read chromosome: %w", err)
	}
	var c Chromosome
	if err := json.Unmarshal(data, &c); err != nil {
		return Chromosome{}, fmt.Errorf("clustereval: decode chromosome: %w", err)
	}
	return c, nil
}

// SaveChromosome writes c to path as indented JSON, replacing any existing
// file atomically.
func SaveChromosome(path string, c Chromosome) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("clustereval: create chromosome dir: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("clustereval: encode chromosome: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("clustereval: write chromosome: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("clustereval: rename chromosome: %w", err)
	}
	return nil
}
