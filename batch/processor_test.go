package batch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fachref/rvkc/core"
)

// fakeClassifier classifies by rule; an error title fails its record.
type fakeClassifier struct {
	calls atomic.Int64
	fail  map[string]error
}

func (f *fakeClassifier) ClassifyRecord(ctx context.Context, rec *core.Record) (*core.ClassificationRun, error) {
	f.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := f.fail[rec.Title]; ok {
		return nil, err
	}
	return &core.ClassificationRun{
		ID:    rec.ContentID(),
		Title: rec.Title,
	}, nil
}

func testRecords(n int) []*core.Record {
	records := make([]*core.Record, n)
	for i := range records {
		records[i] = &core.Record{Title: fmt.Sprintf("Titel %d", i)}
	}
	return records
}

func TestNewProcessorRequiresClassifier(t *testing.T) {
	_, err := NewProcessor(nil)
	assert.ErrorIs(t, err, ErrClassifierRequired)
}

func TestRunOutcomesInInputOrder(t *testing.T) {
	classifier := &fakeClassifier{}
	p, err := NewProcessor(classifier, WithPoolSize(4))
	require.NoError(t, err)
	defer p.Release()

	records := testRecords(20)
	outcomes := p.Run(context.Background(), records)

	require.Len(t, outcomes, 20)
	for i, outcome := range outcomes {
		assert.Equal(t, i, outcome.Index)
		require.NoError(t, outcome.Err)
		require.NotNil(t, outcome.Run)
		assert.Equal(t, records[i].Title, outcome.Run.Title)
	}
	assert.EqualValues(t, 20, classifier.calls.Load())
}

func TestRunCarriesPerRecordErrors(t *testing.T) {
	wantErr := errors.New("upstream busted")
	classifier := &fakeClassifier{fail: map[string]error{"Titel 1": wantErr}}
	p, err := NewProcessor(classifier, WithPoolSize(2))
	require.NoError(t, err)
	defer p.Release()

	outcomes := p.Run(context.Background(), testRecords(3))

	require.Len(t, outcomes, 3)
	assert.NoError(t, outcomes[0].Err)
	assert.ErrorIs(t, outcomes[1].Err, wantErr)
	assert.Nil(t, outcomes[1].Run)
	assert.NoError(t, outcomes[2].Err)
}

func TestRunCanceledContext(t *testing.T) {
	classifier := &fakeClassifier{}
	p, err := NewProcessor(classifier)
	require.NoError(t, err)
	defer p.Release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes := p.Run(ctx, testRecords(4))
	require.Len(t, outcomes, 4)
	for _, outcome := range outcomes {
		assert.ErrorIs(t, outcome.Err, context.Canceled)
	}
	assert.Zero(t, classifier.calls.Load())
}

func TestRunEmptyInput(t *testing.T) {
	p, err := NewProcessor(&fakeClassifier{})
	require.NoError(t, err)
	defer p.Release()

	assert.Empty(t, p.Run(context.Background(), nil))
}

func TestRunUpdatesProgress(t *testing.T) {
	var buf bytes.Buffer
	progress := NewProgressTracker(&buf, 5, 1)
	progress.Start()

	p, err := NewProcessor(&fakeClassifier{}, WithPoolSize(2), WithProgress(progress))
	require.NoError(t, err)
	defer p.Release()

	p.Run(context.Background(), testRecords(5))
	progress.Finish()

	assert.Contains(t, buf.String(), "5/5 (100.0%)")
}
