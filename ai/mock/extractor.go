package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/fachref/rvkc/ai"
	"github.com/fachref/rvkc/core"
)

// ConceptExtractor is a test double for ai.ConceptExtractor.
// It allows custom behavior injection via function fields.
type ConceptExtractor struct {
	// ExtractConceptsFunc is called by ExtractConcepts if set.
	// If nil, a simple keyword derivation from the record is used.
	ExtractConceptsFunc func(ctx context.Context, rec *core.Record) ([]core.Concept, error)

	mu        sync.Mutex
	callCount int
}

var _ ai.ConceptExtractor = (*ConceptExtractor)(nil)

// NewConceptExtractor creates a mock extractor with default behavior.
// Returns the concrete type to allow test assertions.
func NewConceptExtractor() *ConceptExtractor {
	return &ConceptExtractor{}
}

// ExtractConcepts returns mock concepts for a record. Default behavior:
// the record's subjects become keyword concepts in order; without
// subjects, the first title words do.
func (m *ConceptExtractor) ExtractConcepts(ctx context.Context, rec *core.Record) ([]core.Concept, error) {
	m.mu.Lock()
	m.callCount++
	m.mu.Unlock()

	if m.ExtractConceptsFunc != nil {
		return m.ExtractConceptsFunc(ctx, rec)
	}
	if rec == nil {
		return nil, core.ErrRecordRequired
	}

	terms := rec.Subjects
	if len(terms) == 0 {
		terms = strings.Fields(rec.Title)
	}

	concepts := make([]core.Concept, 0, len(terms))
	for _, term := range terms {
		if len(concepts) >= 5 {
			break
		}
		term = strings.Trim(term, ".,;:")
		if term == "" {
			continue
		}
		concepts = append(concepts, core.Concept{
			Text: term,
			Kind: core.KindKeyword,
			Rank: len(concepts),
		})
	}
	return concepts, nil
}

// CallCount returns the number of times ExtractConcepts was called.
func (m *ConceptExtractor) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Reset clears the call count and the custom function.
func (m *ConceptExtractor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.ExtractConceptsFunc = nil
}
