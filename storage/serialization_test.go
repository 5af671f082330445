package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fachref/rvkc/core"
)

func sampleRun() *core.ClassificationRun {
	return &core.ClassificationRun{
		ID:        core.IDFromContent("sample"),
		Title:     "Migration und Integration in Chemnitz",
		CreatedAt: time.Date(2026, 5, 12, 9, 30, 0, 0, time.UTC),
		Concepts: []core.Concept{
			{Text: "Migration", Kind: core.KindKeyword, Rank: 0},
			{Text: "Chemnitz", Kind: core.KindPlace, Rank: 1, Normalized: "Deutschland"},
		},
		Results: []core.ClassificationResult{
			{
				Notation:   "MS 3600",
				Path:       []string{"Soziologie", "Migration"},
				Confidence: 0.85,
				Depth:      1,
				Concepts:   []core.Concept{{Text: "Migration", Kind: core.KindKeyword}},
			},
		},
	}
}

func TestRunRoundTrip(t *testing.T) {
	run := sampleRun()

	data := MarshalRun(run)
	got, err := UnmarshalRun(data)
	require.NoError(t, err)
	assert.Equal(t, run, got)
}

func TestUnmarshalRunTruncated(t *testing.T) {
	data := MarshalRun(sampleRun())

	_, err := UnmarshalRun(data[:len(data)-3])
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestUnmarshalRunTrailingBytes(t *testing.T) {
	data := MarshalRun(sampleRun())
	data = append(data, 0x00, 0x01)

	_, err := UnmarshalRun(data)
	assert.ErrorIs(t, err, ErrTruncatedData)
}

func TestIDRoundTrip(t *testing.T) {
	id := core.IDFromContent("abc")

	got, err := UnmarshalID(MarshalID(id))
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestUnmarshalIDShortBuffer(t *testing.T) {
	_, err := UnmarshalID([]byte{0x01})
	assert.ErrorIs(t, err, ErrSerializationFailed)
}
