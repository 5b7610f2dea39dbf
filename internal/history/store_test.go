package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paperdrop/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(types.HistoryConfig{HistoryDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRun(status types.RunStatus) types.RunRecord {
	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	return types.RunRecord{
		DriveURL:   "https://drive.google.com/file/d/file123/view",
		FileID:     "file123",
		PageID:     "page-1",
		Blocks:     42,
		Status:     status,
		StartedAt:  now,
		FinishedAt: now.Add(30 * time.Second),
	}
}

func TestRecordAndRecent(t *testing.T) {
	s := newTestStore(t)

	id, err := s.Record(sampleRun(types.RunSucceeded))
	require.NoError(t, err)
	assert.Positive(t, id)

	failed := sampleRun(types.RunFailed)
	failed.Error = "HTTP 503 from append"
	_, err = s.Record(failed)
	require.NoError(t, err)

	records, err := s.Recent(10)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Newest first.
	assert.Equal(t, types.RunFailed, records[0].Status)
	assert.Equal(t, "HTTP 503 from append", records[0].Error)
	assert.Equal(t, types.RunSucceeded, records[1].Status)
	assert.Equal(t, "file123", records[1].FileID)
	assert.Equal(t, 42, records[1].Blocks)
	assert.Equal(t, sampleRun(types.RunSucceeded).StartedAt, records[1].StartedAt)
}

func TestRecentLimit(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < 5; i++ {
		_, err := s.Record(sampleRun(types.RunSucceeded))
		require.NoError(t, err)
	}

	records, err := s.Recent(3)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestRecentDefaultLimit(t *testing.T) {
	s, err := NewStore(types.HistoryConfig{HistoryDir: t.TempDir(), MaxResults: 2})
	require.NoError(t, err)
	defer s.Close()

	for i := 0; i < 4; i++ {
		_, err := s.Record(sampleRun(types.RunSucceeded))
		require.NoError(t, err)
	}

	records, err := s.Recent(0)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestRecentEmptyStore(t *testing.T) {
	s := newTestStore(t)
	records, err := s.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestStoreReopen(t *testing.T) {
	dir := t.TempDir()
	cfg := types.HistoryConfig{HistoryDir: dir}

	s, err := NewStore(cfg)
	require.NoError(t, err)
	_, err = s.Record(sampleRun(types.RunSucceeded))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s2, err := NewStore(cfg)
	require.NoError(t, err)
	defer s2.Close()

	records, err := s2.Recent(10)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
