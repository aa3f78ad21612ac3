package clustereval

import (
	"encoding/json"
	"fmt"
)

// TreeType selects the compact trie a snippet collection is clustered with.
// The set of tree types is closed: SuffixTree, MidSliceTree, RangeSliceTree
// and NSliceTree.
type TreeType interface {
	// Describe returns the tree type as shown in reports.
	Describe() string

	build(b TreeBuilder, snippets []Snippet) (Tree, error)
	validate() error
	encode() treeTypeJSON
}

// SuffixTree builds a compact suffix trie over every suffix of each snippet.
type SuffixTree struct{}

// MidSliceTree builds a compact trie over the mid slices of each snippet.
type MidSliceTree struct{}

// RangeSliceTree builds a compact trie over slices whose length lies in
// [Min, Max].
type RangeSliceTree struct {
	Min int
	Max int
}

// NSliceTree builds a compact trie over slices of exactly Length words.
type NSliceTree struct {
	Length int
}

func (SuffixTree) Describe() string   { return "Suffix" }
func (MidSliceTree) Describe() string { return "mid slice" }
func (t RangeSliceTree) Describe() string {
	return fmt.Sprintf("range slice with min %d & max %d", t.Min, t.Max)
}
func (t NSliceTree) Describe() string { return fmt.Sprintf("n slice of length %d", t.Length) }

func (SuffixTree) build(b TreeBuilder, s []Snippet) (Tree, error)   { return b.BuildSuffix(s) }
func (MidSliceTree) build(b TreeBuilder, s []Snippet) (Tree, error) { return b.BuildMidSlice(s) }
func (t RangeSliceTree) build(b TreeBuilder, s []Snippet) (Tree, error) {
	return b.BuildRangeSlice(s, t.Min, t.Max)
}
func (t NSliceTree) build(b TreeBuilder, s []Snippet) (Tree, error) {
	return b.BuildNSlice(s, t.Length)
}

func (SuffixTree) validate() error   { return nil }
func (MidSliceTree) validate() error { return nil }

func (t RangeSliceTree) validate() error {
	if t.Min < 1 || t.Max < t.Min {
		return fmt.Errorf("clustereval: range slice bounds must satisfy 1 <= min <= max, got min=%d max=%d", t.Min, t.Max)
	}
	return nil
}

func (t NSliceTree) validate() error {
	if t.Length < 1 {
		return fmt.Errorf("clustereval: n slice length must be >= 1, got %d", t.Length)
	}
	return nil
}

// buildTree dispatches to the builder method matching tt.
func buildTree(tt TreeType, b TreeBuilder, snippets []Snippet) (Tree, error) {
	if tt == nil {
		return nil, ErrUnknownTreeType
	}
	return tt.build(b, snippets)
}

const (
	kindSuffix     = "suffix"
	kindMidSlice   = "mid_slice"
	kindRangeSlice = "range_slice"
	kindNSlice     = "n_slice"
)

// treeTypeJSON is the persisted form of a TreeType.
type treeTypeJSON struct {
	Kind   string `json:"kind"`
	Min    int    `json:"min,omitempty"`
	Max    int    `json:"max,omitempty"`
	Length int    `json:"length,omitempty"`
}

func (SuffixTree) encode() treeTypeJSON   { return treeTypeJSON{Kind: kindSuffix} }
func (MidSliceTree) encode() treeTypeJSON { return treeTypeJSON{Kind: kindMidSlice} }
func (t RangeSliceTree) encode() treeTypeJSON {
	return treeTypeJSON{Kind: kindRangeSlice, Min: t.Min, Max: t.Max}
}
func (t NSliceTree) encode() treeTypeJSON { return treeTypeJSON{Kind: kindNSlice, Length: t.Length} }

func (j treeTypeJSON) decode() (TreeType, error) {
	switch j.Kind {
	case kindSuffix:
		return SuffixTree{}, nil
	case kindMidSlice:
		return MidSliceTree{}, nil
	case kindRangeSlice:
		return RangeSliceTree{Min: j.Min, Max: j.Max}, nil
	case kindNSlice:
		return NSliceTree{Length: j.Length}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownTreeType, j.Kind)
}

// MarshalTreeType encodes tt as a JSON object with a "kind" field.
func MarshalTreeType(tt TreeType) ([]byte, error) {
	if tt == nil {
		return nil, ErrUnknownTreeType
	}
	return json.Marshal(tt.encode())
}

// UnmarshalTreeType decodes a tree type written by MarshalTreeType.
func UnmarshalTreeType(data []byte) (TreeType, error) {
	var j treeTypeJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("clustereval: decode tree type: %w", err)
	}
	return j.decode()
}
