package clustereval

import (
	"sort"
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
	"github.com/xtgo/set"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Phrase is an ordered sequence of normalized tokens.
type Phrase []string

func (p Phrase) String() string { return strings.Join(p, " ") }

// NormalizeTag turns a hyphen-delimited tag string such as "news-politics"
// into space-separated words.
func NormalizeTag(tag string) string {
	return strings.ReplaceAll(tag, "-", " ")
}

// TagStringToPhrase splits s into case-folded tokens. Any rune that is not
// a letter or digit separates tokens.
func TagStringToPhrase(s string) Phrase {
	s = norm.NFKC.String(s)
	s = cases.Fold().String(s)
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// StemPhrase reduces every token of p to its English stem.
func StemPhrase(p Phrase) Phrase {
	out := make(Phrase, len(p))
	for i, tok := range p {
		out[i] = english.Stem(tok, true)
	}
	return out
}

// CommonTokens returns the distinct tokens present in every phrase, in
// sorted order. It returns nil for no phrases.
func CommonTokens(phrases []Phrase) []string {
	if len(phrases) == 0 {
		return nil
	}
	common := uniqueTokens(phrases[0])
	for _, p := range phrases[1:] {
		if len(common) == 0 {
			break
		}
		other := uniqueTokens(p)
		work := make(sort.StringSlice, 0, len(common)+len(other))
		work = append(work, common...)
		work = append(work, other...)
		common = work[:set.Inter(work, len(common))]
	}
	return common
}

func uniqueTokens(p Phrase) sort.StringSlice {
	toks := make(sort.StringSlice, len(p))
	copy(toks, p)
	sort.Sort(toks)
	return toks[:set.Uniq(toks)]
}
