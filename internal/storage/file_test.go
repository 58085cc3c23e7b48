package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alonkrifcher/aura-insight-whisperer/internal"
)

func newTestStorage(t *testing.T) *FileStorage {
	t.Helper()
	dir := t.TempDir()
	s, err := NewFileStorage(
		filepath.Join(dir, "metrics.json"),
		filepath.Join(dir, "lifestyle.json"),
		filepath.Join(dir, "users.json"),
		internal.NewNopLogger(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func intp(v int) *int { return &v }

func TestUpsertDailyMetricsFieldLevelMerge(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	n, err := s.UpsertDailyMetrics(ctx, []internal.DailyMetric{
		{UserID: "u1", Date: "2025-06-01", SleepScore: intp(80)},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// Same day again with a different field: one record carrying both.
	_, err = s.UpsertDailyMetrics(ctx, []internal.DailyMetric{
		{UserID: "u1", Date: "2025-06-01", Steps: intp(5000)},
	})
	require.NoError(t, err)

	records, err := s.ListDailyMetrics(ctx, "u1", 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.NotNil(t, records[0].SleepScore)
	assert.Equal(t, 80, *records[0].SleepScore)
	require.NotNil(t, records[0].Steps)
	assert.Equal(t, 5000, *records[0].Steps)
}

func TestUpsertDailyMetricsOverwriteAndIdempotence(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	batch := []internal.DailyMetric{
		{UserID: "u1", Date: "2025-06-01", SleepScore: intp(80)},
	}
	_, err := s.UpsertDailyMetrics(ctx, batch)
	require.NoError(t, err)

	// New value for a present field replaces the old one.
	_, err = s.UpsertDailyMetrics(ctx, []internal.DailyMetric{
		{UserID: "u1", Date: "2025-06-01", SleepScore: intp(85)},
	})
	require.NoError(t, err)

	// Re-applying the same batch changes nothing.
	_, err = s.UpsertDailyMetrics(ctx, []internal.DailyMetric{
		{UserID: "u1", Date: "2025-06-01", SleepScore: intp(85)},
	})
	require.NoError(t, err)

	records, err := s.ListDailyMetrics(ctx, "u1", 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 85, *records[0].SleepScore)
}

func TestListDailyMetricsOrderAndLimit(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	_, err := s.UpsertDailyMetrics(ctx, []internal.DailyMetric{
		{UserID: "u1", Date: "2025-06-01"},
		{UserID: "u1", Date: "2025-06-03"},
		{UserID: "u1", Date: "2025-06-02"},
		{UserID: "u2", Date: "2025-06-04"},
	})
	require.NoError(t, err)

	records, err := s.ListDailyMetrics(ctx, "u1", 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2025-06-03", records[0].Date)
	assert.Equal(t, "2025-06-02", records[1].Date)
}

func TestUpsertLifestyleEntryMerge(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	err := s.UpsertLifestyleEntry(ctx, &internal.LifestyleEntry{
		ID: "a", UserID: "u1", Date: "2025-06-01", CaffeineServings: intp(2),
	})
	require.NoError(t, err)

	err = s.UpsertLifestyleEntry(ctx, &internal.LifestyleEntry{
		ID: "b", UserID: "u1", Date: "2025-06-01", StressLevel: intp(6),
	})
	require.NoError(t, err)

	entries, err := s.ListLifestyleEntries(ctx, "u1", 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].CaffeineServings)
	assert.Equal(t, 2, *entries[0].CaffeineServings)
	require.NotNil(t, entries[0].StressLevel)
	assert.Equal(t, 6, *entries[0].StressLevel)
}

func TestGetUserByToken(t *testing.T) {
	dir := t.TempDir()
	usersFile := filepath.Join(dir, "users.json")
	seed, err := json.Marshal([]internal.User{{ID: "u1", Token: "tok-1", Name: "Test User"}})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(usersFile, seed, 0o644))

	s, err := NewFileStorage(
		filepath.Join(dir, "metrics.json"),
		filepath.Join(dir, "lifestyle.json"),
		usersFile,
		internal.NewNopLogger(),
	)
	require.NoError(t, err)
	defer s.Close()

	u, err := s.GetUserByToken(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)

	_, err = s.GetUserByToken(context.Background(), "nope")
	assert.ErrorIs(t, err, internal.ErrNotFound)
}

func TestCloseFlushesToDisk(t *testing.T) {
	dir := t.TempDir()
	metricsFile := filepath.Join(dir, "metrics.json")

	s, err := NewFileStorage(
		metricsFile,
		filepath.Join(dir, "lifestyle.json"),
		filepath.Join(dir, "users.json"),
		internal.NewNopLogger(),
	)
	require.NoError(t, err)

	_, err = s.UpsertDailyMetrics(context.Background(), []internal.DailyMetric{
		{UserID: "u1", Date: "2025-06-01", SleepScore: intp(90)},
	})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// A fresh instance reads back what Close flushed.
	s2, err := NewFileStorage(
		metricsFile,
		filepath.Join(dir, "lifestyle.json"),
		filepath.Join(dir, "users.json"),
		internal.NewNopLogger(),
	)
	require.NoError(t, err)
	defer s2.Close()

	records, err := s2.ListDailyMetrics(context.Background(), "u1", 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.NotNil(t, records[0].SleepScore)
	assert.Equal(t, 90, *records[0].SleepScore)
}
