package clustereval

// tagScorer computes match depths against a tag index. Each source's tag
// phrase is parsed once and reused for the rest of the evaluation.
type tagScorer struct {
	tags    TagIndex
	stem    bool
	sources map[SourceID]Phrase
	keys    map[string]Phrase
}

func newTagScorer(tags TagIndex, stem bool) *tagScorer {
	return &tagScorer{
		tags:    tags,
		stem:    stem,
		sources: make(map[SourceID]Phrase),
		keys:    make(map[string]Phrase),
	}
}

func (s *tagScorer) parse(tag string) Phrase {
	p := TagStringToPhrase(NormalizeTag(tag))
	if s.stem {
		p = StemPhrase(p)
	}
	return p
}

func (s *tagScorer) sourcePhrase(id SourceID) (Phrase, error) {
	if p, ok := s.sources[id]; ok {
		return p, nil
	}
	tag, ok := s.tags[id]
	if !ok {
		return nil, &MissingTagError{Source: id}
	}
	p := s.parse(tag)
	s.sources[id] = p
	return p, nil
}

func (s *tagScorer) keyPhrase(key string) Phrase {
	if p, ok := s.keys[key]; ok {
		return p
	}
	p := s.parse(key)
	s.keys[key] = p
	return p
}

// depth counts the tokens shared by the tags of every source in c and, when
// voter is non-nil, by the voter's own key.
func (s *tagScorer) depth(c Cluster, voter *Category) (Rank, error) {
	phrases := make([]Phrase, 0, len(c.Sources)+1)
	for _, id := range c.Sources {
		p, err := s.sourcePhrase(id)
		if err != nil {
			return 0, err
		}
		phrases = append(phrases, p)
	}
	if voter != nil {
		phrases = append(phrases, s.keyPhrase(voter.Key))
	}
	return ClampRank(len(CommonTokens(phrases))), nil
}

// MatchDepth returns the tag-overlap rank of cluster c. With a nil category
// only the cluster's sources vote; otherwise the category key votes too.
func MatchDepth(tags TagIndex, c Cluster, category *Category) (Rank, error) {
	return newTagScorer(tags, false).depth(c, category)
}
