package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fachref/rvkc/core"
	"github.com/fachref/rvkc/place"
)

func newTestScorer(t *testing.T) scorer {
	t.Helper()
	places, err := place.NewNormalizer()
	require.NoError(t, err)
	return scorer{places: places, decay: 0.05}
}

func TestScoreMatchingRules(t *testing.T) {
	sc := newTestScorer(t)

	tests := []struct {
		name     string
		concept  core.Concept
		node     core.NotationNode
		topLevel bool
		want     float64
		wantKind core.MatchKind
	}{
		{
			name:     "exact label",
			concept:  core.Concept{Text: "Geschichte", Kind: core.KindKeyword},
			node:     core.NotationNode{Notation: "NB 2000", Label: "Geschichte"},
			want:     1.0,
			wantKind: core.MatchExactLabel,
		},
		{
			name:     "exact label is case and width insensitive",
			concept:  core.Concept{Text: "GESCHICHTE ", Kind: core.KindKeyword},
			node:     core.NotationNode{Notation: "NB 2000", Label: "Geschichte"},
			want:     1.0,
			wantKind: core.MatchExactLabel,
		},
		{
			name:     "containment",
			concept:  core.Concept{Text: "Chemie", Kind: core.KindKeyword},
			node:     core.NotationNode{Notation: "VB 1000", Label: "Allgemeine Chemie"},
			want:     0.85,
			wantKind: core.MatchExactLabel,
		},
		{
			name:    "containment rejects short terms",
			concept: core.Concept{Text: "EU", Kind: core.KindKeyword},
			node:    core.NotationNode{Notation: "NK 1000", Label: "Neuzeit"},
			want:    0,
		},
		{
			name:     "synonym",
			concept:  core.Concept{Text: "Migration", Kind: core.KindKeyword},
			node:     core.NotationNode{Notation: "MS 3000", Label: "Zuwanderung und Flucht"},
			want:     0.7,
			wantKind: core.MatchAlias,
		},
		{
			name:     "place indicator",
			concept:  core.Concept{Text: "Deutschland", Kind: core.KindPlace},
			node:     core.NotationNode{Notation: "NR 5000", Label: "Sachsen"},
			want:     0.6,
			wantKind: core.MatchAlias,
		},
		{
			name:    "place concepts skip keyword synonyms",
			concept: core.Concept{Text: "Migration", Kind: core.KindPlace},
			node:    core.NotationNode{Notation: "MS 3000", Label: "Zuwanderung und Flucht"},
			want:    0,
		},
		{
			name:     "discipline at top level",
			concept:  core.Concept{Text: "Medizin", Kind: core.KindDiscipline},
			node:     core.NotationNode{Notation: "W", Label: "Biologie und Vorklinische Medizin"},
			topLevel: true,
			want:     0.95,
			wantKind: core.MatchDisciplineCategory,
		},
		{
			name:     "discipline maps to second group",
			concept:  core.Concept{Text: "Medizin", Kind: core.KindDiscipline},
			node:     core.NotationNode{Notation: "Y", Label: "Medizin"},
			topLevel: true,
			// The discipline rule fires before exact-label matching at
			// the roots, even when the label happens to match exactly.
			want:     0.95,
			wantKind: core.MatchDisciplineCategory,
		},
		{
			name:    "discipline rule off below top level",
			concept: core.Concept{Text: "Chemie", Kind: core.KindDiscipline},
			node:    core.NotationNode{Notation: "VC 5000", Label: "Pharmazeutische Technologie"},
			want:    0,
		},
		{
			name:     "token overlap",
			concept:  core.Concept{Text: "Geschichte Europa", Kind: core.KindKeyword},
			node:     core.NotationNode{Notation: "N", Label: "Geschichte"},
			want:     0.4 + 0.25*0.5,
			wantKind: core.MatchExactLabel,
		},
		{
			name:    "token overlap below half is no match",
			concept: core.Concept{Text: "Geschichte Europa Mittelalter", Kind: core.KindKeyword},
			node:    core.NotationNode{Notation: "N", Label: "Geschichte"},
			want:    0,
		},
		{
			name:    "no match",
			concept: core.Concept{Text: "Quasare", Kind: core.KindKeyword},
			node:    core.NotationNode{Notation: "N", Label: "Geschichte"},
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, kind := sc.score(tt.concept, tt.node, tt.topLevel)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.Equal(t, tt.wantKind, kind)
		})
	}
}

func TestScoreUsesNormalizedPlace(t *testing.T) {
	sc := newTestScorer(t)

	concept := core.Concept{Text: "Chemnitz", Kind: core.KindPlace, Normalized: "Deutschland"}
	node := core.NotationNode{Notation: "NR", Label: "Deutschland"}

	got, kind := sc.score(concept, node, false)
	assert.InDelta(t, 1.0, got, 1e-9)
	assert.Equal(t, core.MatchExactLabel, kind)
}

func TestScoreSalienceDecay(t *testing.T) {
	sc := newTestScorer(t)
	node := core.NotationNode{Notation: "NB 2000", Label: "Geschichte"}

	tests := []struct {
		rank int
		want float64
	}{
		{rank: 0, want: 1.0},
		{rank: 1, want: 0.95},
		{rank: 4, want: 0.8},
		{rank: 8, want: 0.6},
		// Decay is floored at rank 8.
		{rank: 20, want: 0.6},
	}
	for _, tt := range tests {
		concept := core.Concept{Text: "Geschichte", Kind: core.KindKeyword, Rank: tt.rank}
		got, _ := sc.score(concept, node, false)
		assert.InDelta(t, tt.want, got, 1e-9, "rank %d", tt.rank)
	}
}

func TestTokenOverlap(t *testing.T) {
	tests := []struct {
		term  string
		label string
		want  float64
	}{
		{"Geschichte Europa", "Geschichte", 0.5},
		{"Geschichte", "Geschichte der Neuzeit", 1.0},
		{"der die das", "Geschichte", 0}, // all stop words
		{"", "Geschichte", 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, tokenOverlap(tt.term, tt.label), 1e-9, "%q vs %q", tt.term, tt.label)
	}
}

func TestDisciplineMatchesGroup(t *testing.T) {
	assert.True(t, disciplineMatchesGroup("chemie", "V"))
	assert.True(t, disciplineMatchesGroup("medizin", "W"))
	assert.True(t, disciplineMatchesGroup("medizin", "Y"))
	assert.False(t, disciplineMatchesGroup("chemie", "N"))
	assert.False(t, disciplineMatchesGroup("quasare", "V"))
	assert.False(t, disciplineMatchesGroup("chemie", ""))
}
