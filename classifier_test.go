package rvkc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fachref/rvkc/ai/mock"
	"github.com/fachref/rvkc/core"
	"github.com/fachref/rvkc/rvk"
	storagebadger "github.com/fachref/rvkc/storage/badger"
)

// treeSource serves a small fixed hierarchy as an rvk.Source.
type treeSource struct {
	roots    []string
	labels   map[string]string
	parents  map[string]string
	children map[string][]string
}

func newTreeSource() *treeSource {
	s := &treeSource{
		labels: map[string]string{
			"N":       "Geschichte",
			"NR":      "Deutschland",
			"NR 5000": "Sachsen",
			"V":       "Chemie, Pharmazie",
			"VB 1000": "Allgemeine Chemie",
		},
		parents: map[string]string{
			"NR":      "N",
			"NR 5000": "NR",
			"VB 1000": "V",
		},
		children: map[string][]string{
			"N":  {"NR"},
			"NR": {"NR 5000"},
			"V":  {"VB 1000"},
		},
		roots: []string{"N", "V"},
	}
	return s
}

func (s *treeSource) node(notation string) rvk.Node {
	return rvk.Node{
		Notation:    notation,
		Label:       s.labels[notation],
		HasChildren: len(s.children[notation]) > 0,
	}
}

func (s *treeSource) Top(_ context.Context) ([]rvk.Node, error) {
	nodes := make([]rvk.Node, 0, len(s.roots))
	for _, notation := range s.roots {
		nodes = append(nodes, s.node(notation))
	}
	return nodes, nil
}

func (s *treeSource) Node(_ context.Context, notation string) (rvk.Node, error) {
	if _, ok := s.labels[notation]; !ok {
		return rvk.Node{}, core.ErrNotFound
	}
	return s.node(notation), nil
}

func (s *treeSource) Children(_ context.Context, notation string) ([]rvk.Node, error) {
	if _, ok := s.labels[notation]; !ok {
		return nil, core.ErrNotFound
	}
	nodes := make([]rvk.Node, 0, len(s.children[notation]))
	for _, child := range s.children[notation] {
		nodes = append(nodes, s.node(child))
	}
	return nodes, nil
}

func (s *treeSource) Ancestors(_ context.Context, notation string) ([]rvk.Node, error) {
	if _, ok := s.labels[notation]; !ok {
		return nil, core.ErrNotFound
	}
	var chain []rvk.Node
	for n := notation; n != ""; n = s.parents[n] {
		chain = append([]rvk.Node{s.node(n)}, chain...)
	}
	return chain, nil
}

func newTestClassifier(t *testing.T, opts ...Option) *Classifier {
	t.Helper()
	c, err := NewClassifier(newTreeSource(), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestNewClassifierRequiresSource(t *testing.T) {
	_, err := NewClassifier(nil)
	assert.ErrorIs(t, err, rvk.ErrSourceRequired)
}

func TestClassifyRecordHeuristic(t *testing.T) {
	c := newTestClassifier(t)

	rec := &core.Record{
		Title:    "Grundlagen der Chemie",
		Subjects: []string{"Chemie"},
	}
	run, err := c.ClassifyRecord(context.Background(), rec)
	require.NoError(t, err)

	assert.Equal(t, rec.ContentID(), run.ID)
	assert.Equal(t, rec.Title, run.Title)
	assert.False(t, run.CreatedAt.IsZero())
	require.NotEmpty(t, run.Concepts)

	require.NotEmpty(t, run.Results)
	assert.Equal(t, "VB 1000", run.Results[0].Notation)
	assert.Equal(t, []string{"Chemie, Pharmazie", "Allgemeine Chemie"}, run.Results[0].Path)
}

func TestClassifyRecordWithMockExtractor(t *testing.T) {
	extractor := mock.NewConceptExtractor()
	extractor.ExtractConceptsFunc = func(_ context.Context, _ *core.Record) ([]core.Concept, error) {
		return []core.Concept{
			{Text: "Chemnitz", Kind: core.KindPlace, Rank: 0},
		}, nil
	}
	c := newTestClassifier(t, WithExtractor(extractor))

	run, err := c.ClassifyRecord(context.Background(), &core.Record{Title: "Chemnitz im Wandel"})
	require.NoError(t, err)

	assert.Equal(t, 1, extractor.CallCount())
	require.Len(t, run.Results, 1)
	// Chemnitz resolves to the country node, not the Saxon subdivision.
	assert.Equal(t, "NR", run.Results[0].Notation)
}

func TestClassifyPreExtractedConcepts(t *testing.T) {
	c := newTestClassifier(t)

	results, err := c.Classify(context.Background(), []core.Concept{
		{Text: "Chemie", Kind: core.KindDiscipline, Rank: 0},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "VB 1000", results[0].Notation)
}

func TestClassifyRecordNil(t *testing.T) {
	c := newTestClassifier(t)

	_, err := c.ClassifyRecord(context.Background(), nil)
	assert.ErrorIs(t, err, core.ErrRecordRequired)
}

func TestClassifyRecordPersists(t *testing.T) {
	repo, backend, err := storagebadger.NewMemoryRunRepository()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	c := newTestClassifier(t, WithRunRepository(repo))

	rec := &core.Record{Title: "Grundlagen der Chemie", Subjects: []string{"Chemie"}}
	run, err := c.ClassifyRecord(context.Background(), rec)
	require.NoError(t, err)

	stored, err := repo.GetRun(context.Background(), run.ID)
	require.NoError(t, err)
	assert.Equal(t, run, stored)
	assert.Same(t, repo, c.Runs())
}

func TestClassifyRecordNoPersistenceByDefault(t *testing.T) {
	c := newTestClassifier(t)
	assert.Nil(t, c.Runs())
}

func TestLookup(t *testing.T) {
	c := newTestClassifier(t)

	node, path, err := c.Lookup(context.Background(), "NR 5000")
	require.NoError(t, err)
	assert.Equal(t, "Sachsen", node.Label)
	assert.Equal(t, 2, node.Depth)
	assert.Equal(t, []string{"Geschichte", "Deutschland", "Sachsen"}, path)
}

func TestLookupUnknownNotation(t *testing.T) {
	c := newTestClassifier(t)

	_, _, err := c.Lookup(context.Background(), "XX 9999")
	assert.ErrorIs(t, err, core.ErrNotFound)
}
