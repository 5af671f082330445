package search

import (
	"strings"
	"unicode/utf8"

	"github.com/fachref/rvkc/core"
)

// Base confidences per matching rule. The first matching rule wins; rules
// are ordered from most to least specific.
const (
	confDiscipline  = 0.95
	confExact       = 1.0
	confContainment = 0.85
	confSynonym     = 0.7
	confIndicator   = 0.6
	confOverlapBase = 0.4
	confOverlapSpan = 0.25

	// minContainmentRunes guards substring matching against trivially
	// short terms ("EU" is contained in "Neuzeit").
	minContainmentRunes = 3

	// maxDecayedRank caps how far salience decay can push a concept down.
	maxDecayedRank = 8
)

// placeIndex is the gazetteer view scoring needs: region membership and
// the sub-national surface forms per region.
type placeIndex interface {
	IsRegion(name string) bool
	IndicatorsFor(region string) []string
}

// scorer evaluates a concept against a node label. Pure per call; all
// state is the static tables plus the configured salience decay.
type scorer struct {
	places placeIndex
	decay  float64
}

// score rates how well a concept matches a node. topLevel selects the
// discipline-to-Hauptgruppe rule, which only makes sense at the roots.
// Returns a confidence in [0,1] and the kind of match, zero confidence
// for no match.
func (s scorer) score(concept core.Concept, node core.NotationNode, topLevel bool) (float64, core.MatchKind) {
	term := normalizeTerm(concept.SearchText())
	label := normalizeTerm(node.Label)
	if term == "" || label == "" {
		return 0, ""
	}

	base, kind := s.base(concept, term, label, node, topLevel)
	if base == 0 {
		return 0, ""
	}
	return s.decayed(base, concept.Rank), kind
}

func (s scorer) base(concept core.Concept, term, label string, node core.NotationNode, topLevel bool) (float64, core.MatchKind) {
	if concept.Kind == core.KindDiscipline && topLevel && disciplineMatchesGroup(term, node.Notation) {
		return confDiscipline, core.MatchDisciplineCategory
	}

	if term == label {
		return confExact, core.MatchExactLabel
	}

	if utf8.RuneCountInString(term) >= minContainmentRunes && strings.Contains(label, term) {
		return confContainment, core.MatchExactLabel
	}

	if concept.Kind != core.KindPlace {
		for _, synonym := range synonymsFor(term) {
			if strings.Contains(label, synonym) {
				return confSynonym, core.MatchAlias
			}
		}
	}

	if concept.Kind == core.KindPlace && s.places.IsRegion(term) {
		for _, indicator := range s.places.IndicatorsFor(term) {
			if strings.Contains(label, indicator) {
				return confIndicator, core.MatchAlias
			}
		}
	}

	if r := tokenOverlap(term, label); r >= 0.5 {
		return confOverlapBase + confOverlapSpan*r, core.MatchExactLabel
	}

	return 0, ""
}

// decayed discounts confidence by the concept's rank: rank 0 keeps full
// weight, every rank costs one decay step down to a floor at rank 8.
func (s scorer) decayed(base float64, rank int) float64 {
	if rank > maxDecayedRank {
		rank = maxDecayedRank
	}
	confidence := base * (1 - s.decay*float64(rank))
	if confidence < 0 {
		return 0
	}
	if confidence > 1 {
		return 1
	}
	return confidence
}
