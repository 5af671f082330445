package badger

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fachref/rvkc/core"
	"github.com/fachref/rvkc/storage"
)

func newTestRepository(t *testing.T) storage.RunRepository {
	t.Helper()
	repo, backend, err := NewMemoryRunRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo
}

func testRun(title string, createdAt time.Time) *core.ClassificationRun {
	return &core.ClassificationRun{
		ID:        core.IDFromContent(title),
		Title:     title,
		CreatedAt: createdAt,
		Concepts: []core.Concept{
			{Text: "Migration", Kind: core.KindKeyword, Rank: 0},
		},
		Results: []core.ClassificationResult{
			{
				Notation:   "MS 3600",
				Path:       []string{"Soziologie", "Migration"},
				Confidence: 0.85,
				Depth:      1,
			},
		},
	}
}

func TestNewRunRepositoryRequiresBackend(t *testing.T) {
	_, err := NewRunRepository(nil)
	assert.ErrorIs(t, err, ErrBackendRequired)
}

func TestSaveAndGetRun(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	run := testRun("Erster Titel", time.Date(2026, 5, 12, 9, 0, 0, 0, time.UTC))
	require.NoError(t, repo.SaveRun(ctx, run))

	got, err := repo.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run, got)
}

func TestGetRunNotFound(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.GetRun(context.Background(), core.IDFromContent("missing"))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSaveRunValidation(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	assert.ErrorIs(t, repo.SaveRun(ctx, nil), storage.ErrInvalidQuery)
	assert.ErrorIs(t, repo.SaveRun(ctx, &core.ClassificationRun{}), storage.ErrInvalidQuery)
}

func TestSaveRunAssignsCreatedAt(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	run := testRun("Ohne Zeitstempel", time.Time{})
	require.NoError(t, repo.SaveRun(ctx, run))
	assert.False(t, run.CreatedAt.IsZero())
}

func TestRecentRunsNewestFirst(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	base := time.Date(2026, 5, 12, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		run := testRun(fmt.Sprintf("Titel %d", i), base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, repo.SaveRun(ctx, run))
	}

	runs, err := repo.RecentRuns(ctx, 3)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "Titel 4", runs[0].Title)
	assert.Equal(t, "Titel 3", runs[1].Title)
	assert.Equal(t, "Titel 2", runs[2].Title)
}

func TestRecentRunsInvalidLimit(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.RecentRuns(context.Background(), 0)
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)
}

func TestSaveRunOverwriteMovesTimeIndex(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	base := time.Date(2026, 5, 12, 9, 0, 0, 0, time.UTC)
	first := testRun("Gleicher Datensatz", base)
	require.NoError(t, repo.SaveRun(ctx, first))

	other := testRun("Anderer Datensatz", base.Add(time.Minute))
	require.NoError(t, repo.SaveRun(ctx, other))

	// Re-classifying the same record later replaces its history entry.
	updated := testRun("Gleicher Datensatz", base.Add(2*time.Minute))
	updated.Results[0].Confidence = 0.95
	require.NoError(t, repo.SaveRun(ctx, updated))

	runs, err := repo.RecentRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "Gleicher Datensatz", runs[0].Title)
	assert.InDelta(t, 0.95, runs[0].Results[0].Confidence, 1e-9)
	assert.Equal(t, "Anderer Datensatz", runs[1].Title)
}

func TestRepositoryClosedBackend(t *testing.T) {
	repo, backend, err := NewMemoryRunRepository()
	require.NoError(t, err)
	require.NoError(t, repo.Close())
	require.NoError(t, backend.Close())

	ctx := context.Background()
	assert.ErrorIs(t, repo.SaveRun(ctx, testRun("x", time.Now())), storage.ErrStorageClosed)
	_, err = repo.GetRun(ctx, 1)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
	_, err = repo.RecentRuns(ctx, 1)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}
