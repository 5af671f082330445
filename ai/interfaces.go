package ai

import (
	"context"

	"github.com/fachref/rvkc/core"
)

// ConceptExtractor derives ranked search concepts from a bibliographic
// record. Implementations must be safe for concurrent use.
type ConceptExtractor interface {
	// ExtractConcepts analyzes a record and returns its key concepts,
	// most salient first, with Rank fields assigned 0..n-1.
	// Returns an empty slice if no concepts are found.
	ExtractConcepts(ctx context.Context, rec *core.Record) ([]core.Concept, error)
}
