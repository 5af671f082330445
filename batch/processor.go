package batch

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/fachref/rvkc/core"
)

// ErrClassifierRequired is returned when no classifier is provided.
var ErrClassifierRequired = errors.New("classifier required")

// Classifier is the per-record classification surface the processor fans
// out over. rvkc.Classifier satisfies it.
type Classifier interface {
	ClassifyRecord(ctx context.Context, rec *core.Record) (*core.ClassificationRun, error)
}

// Outcome is the result of classifying one record. Index refers to the
// record's position in the input slice.
type Outcome struct {
	Index int
	Run   *core.ClassificationRun
	Err   error
}

// Processor classifies many records concurrently over a worker pool.
// Per-record failures are carried in their outcome; they never abort the
// rest of the batch.
type Processor struct {
	classifier Classifier
	pool       *ants.Pool
	progress   *ProgressTracker
	logger     *slog.Logger
}

// Option configures a Processor.
type Option func(*Processor) error

// WithPoolSize sets the worker pool size for concurrent classification.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Processor) error {
		if size < 1 {
			size = 1
		}

		// Release old pool
		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithProgress attaches a progress tracker updated once per finished
// record.
func WithProgress(progress *ProgressTracker) Option {
	return func(p *Processor) error {
		p.progress = progress
		return nil
	}
}

// NewProcessor creates a new batch processor.
func NewProcessor(classifier Classifier, opts ...Option) (*Processor, error) {
	if classifier == nil {
		return nil, ErrClassifierRequired
	}

	// Default pool size
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Processor{
		classifier: classifier,
		pool:       pool,
		logger:     slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Run classifies every record and returns one outcome per record, in
// input order, after all workers have finished. A canceled context stops
// further submission; records not classified carry the context error.
func (p *Processor) Run(ctx context.Context, records []*core.Record) []Outcome {
	outcomes := make([]Outcome, len(records))
	var wg sync.WaitGroup

	for i, rec := range records {
		outcomes[i].Index = i

		if err := ctx.Err(); err != nil {
			outcomes[i].Err = err
			continue
		}

		wg.Add(1)
		index, record := i, rec
		if err := p.pool.Submit(func() {
			defer wg.Done()
			run, err := p.classifier.ClassifyRecord(ctx, record)
			outcomes[index].Run = run
			outcomes[index].Err = err
			if err != nil {
				p.logger.Warn("record classification failed", "index", index, "err", err)
			}
			if p.progress != nil {
				p.progress.Increment(1)
			}
		}); err != nil {
			wg.Done()
			outcomes[index].Err = err
		}
	}

	wg.Wait()
	return outcomes
}

// Release releases the worker pool.
// The processor should not be used after calling Release.
func (p *Processor) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
