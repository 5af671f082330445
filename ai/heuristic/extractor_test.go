package heuristic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fachref/rvkc/core"
	"github.com/fachref/rvkc/place"
)

func newTestExtractor(t *testing.T, opts ...Option) *Extractor {
	t.Helper()
	places, err := place.NewNormalizer()
	require.NoError(t, err)
	e, err := NewExtractor(places, opts...)
	require.NoError(t, err)
	return e
}

func TestNewExtractorRequiresPlaces(t *testing.T) {
	_, err := NewExtractor(nil)
	assert.ErrorIs(t, err, ErrPlacesRequired)
}

func TestExtractConceptsFromSubjects(t *testing.T) {
	e := newTestExtractor(t)

	rec := &core.Record{
		Title:    "Migration und Integration in Chemnitz",
		Subjects: []string{"Migration", "Soziologie", "Chemnitz"},
	}
	concepts, err := e.ExtractConcepts(context.Background(), rec)
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(concepts), 3)
	assert.Equal(t, core.Concept{Text: "Migration", Kind: core.KindKeyword, Rank: 0}, concepts[0])
	assert.Equal(t, core.Concept{Text: "Soziologie", Kind: core.KindDiscipline, Rank: 1}, concepts[1])
	assert.Equal(t, core.Concept{Text: "Chemnitz", Kind: core.KindPlace, Rank: 2}, concepts[2])
}

func TestExtractConceptsFallsBackToTitle(t *testing.T) {
	e := newTestExtractor(t)

	rec := &core.Record{Title: "Grundlagen der organischen Chemie"}
	concepts, err := e.ExtractConcepts(context.Background(), rec)
	require.NoError(t, err)

	// "der" is a stop word; the rest become concepts in title order.
	require.Len(t, concepts, 3)
	assert.Equal(t, "grundlagen", concepts[0].Text)
	assert.Equal(t, "organischen", concepts[1].Text)
	assert.Equal(t, "chemie", concepts[2].Text)
	assert.Equal(t, core.KindDiscipline, concepts[2].Kind)
}

func TestExtractConceptsDeduplicates(t *testing.T) {
	e := newTestExtractor(t)

	rec := &core.Record{
		Title:    "Migration",
		Subjects: []string{"Migration", "migration"},
	}
	concepts, err := e.ExtractConcepts(context.Background(), rec)
	require.NoError(t, err)

	require.Len(t, concepts, 1)
	assert.Equal(t, "Migration", concepts[0].Text)
}

func TestExtractConceptsCap(t *testing.T) {
	e := newTestExtractor(t, WithMaxConcepts(2))

	rec := &core.Record{
		Subjects: []string{"Migration", "Integration", "Stadtforschung"},
	}
	concepts, err := e.ExtractConcepts(context.Background(), rec)
	require.NoError(t, err)
	assert.Len(t, concepts, 2)
}

func TestExtractConceptsNilRecord(t *testing.T) {
	e := newTestExtractor(t)

	_, err := e.ExtractConcepts(context.Background(), nil)
	assert.ErrorIs(t, err, core.ErrRecordRequired)
}

func TestExtractConceptsDeterministic(t *testing.T) {
	e := newTestExtractor(t)

	rec := &core.Record{
		Title:    "Migration und Integration in Chemnitz",
		Subjects: []string{"Migration", "Stadtforschung"},
	}
	first, err := e.ExtractConcepts(context.Background(), rec)
	require.NoError(t, err)
	second, err := e.ExtractConcepts(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
