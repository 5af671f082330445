package badger

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/fachref/rvkc/core"
	"github.com/fachref/rvkc/storage"
)

// ErrBackendRequired is returned when no backend is provided.
var ErrBackendRequired = errors.New("storage backend required")

// RunRepository implements storage.RunRepository for BadgerDB.
type RunRepository struct {
	backend *Backend
}

var _ storage.RunRepository = (*RunRepository)(nil)

// NewRunRepository creates a new RunRepository.
func NewRunRepository(backend *Backend) (*RunRepository, error) {
	if backend == nil {
		return nil, ErrBackendRequired
	}
	return &RunRepository{backend: backend}, nil
}

// Close is a no-op; the backend's lifecycle belongs to its opener.
func (r *RunRepository) Close() error {
	return nil
}

// SaveRun stores a classification run and maintains the time index.
// A run with an existing ID replaces the stored one, including its
// position in the time index.
func (r *RunRepository) SaveRun(ctx context.Context, run *core.ClassificationRun) error {
	if run == nil || run.ID == 0 {
		return storage.ErrInvalidQuery
	}
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeRunKey(run.ID)

		// Drop the stale time index entry on overwrite.
		old, err := readRun(tx, key)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return err
		}
		if old != nil {
			if err := tx.Delete(makeRunTimeKey(old.CreatedAt, old.ID)); err != nil {
				return err
			}
		}

		if err := tx.Set(key, storage.MarshalRun(run)); err != nil {
			return err
		}
		if err := tx.Set(makeRunTimeKey(run.CreatedAt, run.ID), storage.MarshalID(run.ID)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return errors.Join(storage.ErrTransactionFailed, err)
	}
	return nil
}

// GetRun retrieves a run by ID.
func (r *RunRepository) GetRun(ctx context.Context, id core.ID) (*core.ClassificationRun, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var run *core.ClassificationRun
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		run, err = readRun(tx, makeRunKey(id))
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	return run, nil
}

// RecentRuns returns up to limit runs, newest first, by scanning the time
// index in reverse.
func (r *RunRepository) RecentRuns(ctx context.Context, limit int) ([]*core.ClassificationRun, error) {
	if limit <= 0 {
		return nil, storage.ErrInvalidQuery
	}
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var runs []*core.ClassificationRun
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		prefix := []byte(runTimePrefix + ":")
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		// In reverse mode the seek key must sort after every index entry.
		seek := append(append([]byte{}, prefix...), 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF)
		for iter.Seek(seek); iter.ValidForPrefix(prefix) && len(runs) < limit; iter.Next() {
			var id core.ID
			err := iter.Item().Value(func(val []byte) error {
				var err error
				id, err = storage.UnmarshalID(val)
				return err
			})
			if err != nil {
				return err
			}

			run, err := readRun(tx, makeRunKey(id))
			if err != nil {
				return err
			}
			runs = append(runs, run)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return runs, nil
}

// readRun reads and deserializes one run inside a transaction.
func readRun(tx *badger.Txn, key []byte) (*core.ClassificationRun, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}

	var run *core.ClassificationRun
	err = item.Value(func(val []byte) error {
		var err error
		run, err = storage.UnmarshalRun(val)
		return err
	})
	if err != nil {
		return nil, err
	}
	return run, nil
}
