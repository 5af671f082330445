package ai

import (
	"sort"

	"github.com/fachref/rvkc/core"
)

// ExtractedConcept is a concept as reported by an extractor backend,
// before ranking and conversion to the core model.
type ExtractedConcept struct {
	// Term is the concept text, e.g. "Migration" or "Chemnitz".
	Term string

	// Kind is the concept category: "keyword", "discipline" or "place".
	// Unknown values are coerced to keyword during conversion.
	Kind string

	// Salience is a score from 1-10 indicating how central the concept
	// is to the record. Higher is more central.
	Salience int
}

// Ranked converts extracted concepts to the core model, most salient
// first, with Rank fields assigned in order. Unknown kinds become
// keywords; the boolean result reports whether any coercion happened.
func Ranked(extracted []ExtractedConcept) ([]core.Concept, bool) {
	sort.SliceStable(extracted, func(i, j int) bool {
		return extracted[i].Salience > extracted[j].Salience
	})

	coerced := false
	concepts := make([]core.Concept, 0, len(extracted))
	for i, e := range extracted {
		kind := core.ConceptKind(e.Kind)
		switch kind {
		case core.KindKeyword, core.KindDiscipline, core.KindPlace:
		default:
			kind = core.KindKeyword
			coerced = true
		}
		concepts = append(concepts, core.Concept{
			Text: e.Term,
			Kind: kind,
			Rank: i,
		})
	}
	return concepts, coerced
}
