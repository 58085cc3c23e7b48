package test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alonkrifcher/aura-insight-whisperer/internal"
	"github.com/alonkrifcher/aura-insight-whisperer/internal/oura"
	"github.com/alonkrifcher/aura-insight-whisperer/internal/service"
	"github.com/alonkrifcher/aura-insight-whisperer/internal/storage"
)

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

// Full pipeline without HTTP handlers: fetch from a stubbed upstream, merge,
// upsert into file storage, then generate insights from what landed.
func TestSyncThenInsightsPipeline(t *testing.T) {
	srv := ouraStub(nil)
	defer srv.Close()

	dir := t.TempDir()
	logger := internal.NewNopLogger()
	fs, err := storage.NewFileStorage(
		filepath.Join(dir, "metrics.json"),
		filepath.Join(dir, "lifestyle.json"),
		filepath.Join(dir, "users.json"),
		logger,
	)
	require.NoError(t, err)
	defer fs.Close()

	syncer := service.NewSyncer(oura.NewClient(srv.URL, logger), fs, service.NewLogNotifier(logger), logger)
	user := &internal.User{ID: "u1", Name: "Test User"}

	result, err := syncer.Sync(context.Background(), user, "tok", 7)
	require.NoError(t, err)
	assert.Equal(t, 2, result.RecordsProcessed)

	// Syncing again changes nothing: the upsert is idempotent.
	result, err = syncer.Sync(context.Background(), user, "tok", 7)
	require.NoError(t, err)
	assert.Equal(t, 2, result.RecordsProcessed)

	metrics, err := fs.ListDailyMetrics(context.Background(), "u1", 0)
	require.NoError(t, err)
	require.Len(t, metrics, 2)

	// 2025-06-01 carries fields from every endpoint; the activity resting
	// heart rate wins over the raw samples.
	byDate := map[string]internal.DailyMetric{}
	for _, m := range metrics {
		byDate[m.Date] = m
	}
	day1 := byDate["2025-06-01"]
	require.NotNil(t, day1.SleepScore)
	assert.Equal(t, 82, *day1.SleepScore)
	require.NotNil(t, day1.SleepEfficiency)
	assert.Equal(t, 91, *day1.SleepEfficiency)
	require.NotNil(t, day1.Steps)
	assert.Equal(t, 9200, *day1.Steps)
	require.NotNil(t, day1.ReadinessScore)
	require.NotNil(t, day1.RestingHeartRate)
	assert.Equal(t, 57.5, *day1.RestingHeartRate)

	// 2025-06-02 only saw daily_sleep and heart-rate samples.
	day2 := byDate["2025-06-02"]
	require.NotNil(t, day2.SleepScore)
	assert.Equal(t, 79, *day2.SleepScore)
	assert.Nil(t, day2.Steps)
	require.NotNil(t, day2.RestingHeartRate)
	assert.Equal(t, 58.0, *day2.RestingHeartRate)

	// Add lifestyle context and run the analysis over everything stored.
	require.NoError(t, fs.UpsertLifestyleEntry(context.Background(), &internal.LifestyleEntry{
		ID: "e1", UserID: "u1", Date: "2025-06-01", StressLevel: intptr(2),
	}))
	require.NoError(t, fs.UpsertLifestyleEntry(context.Background(), &internal.LifestyleEntry{
		ID: "e2", UserID: "u1", Date: "2025-06-02", StressLevel: intptr(3),
	}))

	lifestyle, err := fs.ListLifestyleEntries(context.Background(), "u1", 0)
	require.NoError(t, err)

	insights := service.GenerateInsights(metrics, lifestyle, service.DefaultInsightWindow)
	require.NotEmpty(t, insights)

	var categories []string
	for _, ins := range insights {
		categories = append(categories, ins.Category)
	}
	assert.Contains(t, categories, internal.InsightStressLevel)
	assert.NotContains(t, categories, internal.InsightInsufficientData)
}

func intptr(v int) *int { return &v }
