package storage

import (
	"context"

	"github.com/fachref/rvkc/core"
)

// RunRepository persists classification runs for later review.
// Implementations must be safe for concurrent use.
type RunRepository interface {
	// SaveRun stores a classification run. Saving a run with an existing
	// ID overwrites the stored one; runs are content-addressed, so
	// re-classifying the same record replaces its history entry.
	SaveRun(ctx context.Context, run *core.ClassificationRun) error

	// GetRun retrieves a run by ID. Returns ErrNotFound when absent.
	GetRun(ctx context.Context, id core.ID) (*core.ClassificationRun, error)

	// RecentRuns returns up to limit runs, newest first.
	RecentRuns(ctx context.Context, limit int) ([]*core.ClassificationRun, error)

	// Close releases resources held by the repository.
	Close() error
}
