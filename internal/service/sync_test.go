package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alonkrifcher/aura-insight-whisperer/internal"
	"github.com/alonkrifcher/aura-insight-whisperer/internal/oura"
)

type fakeMetricsRepo struct {
	upserted []internal.DailyMetric
	err      error
}

func (r *fakeMetricsRepo) UpsertDailyMetrics(ctx context.Context, records []internal.DailyMetric) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.upserted = append(r.upserted, records...)
	return len(records), nil
}

func (r *fakeMetricsRepo) ListDailyMetrics(ctx context.Context, userID string, limit int) ([]internal.DailyMetric, error) {
	return r.upserted, nil
}

type recordedNote struct {
	severity string
	message  string
}

type recordingNotifier struct {
	notes []recordedNote
}

func (n *recordingNotifier) Notify(severity, message string) {
	n.notes = append(n.notes, recordedNote{severity, message})
}

// ouraStub serves one day of data per collection; collections in down return
// 503.
func ouraStub(down map[string]bool) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		collection := strings.TrimPrefix(r.URL.Path, "/v2/usercollection/")
		if down[collection] {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch collection {
		case "daily_sleep":
			fmt.Fprint(w, `{"data":[{"day":"2025-06-01","score":82}]}`)
		case "daily_activity":
			fmt.Fprint(w, `{"data":[{"day":"2025-06-01","steps":8000}]}`)
		default:
			fmt.Fprint(w, `{"data":[]}`)
		}
	}))
}

func newTestSyncer(srvURL string, repo *fakeMetricsRepo, notes *recordingNotifier) *Syncer {
	logger := internal.NewNopLogger()
	s := NewSyncer(oura.NewClient(srvURL, logger), repo, notes, logger)
	s.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestSyncSuccess(t *testing.T) {
	srv := ouraStub(nil)
	defer srv.Close()

	repo := &fakeMetricsRepo{}
	notes := &recordingNotifier{}
	s := newTestSyncer(srv.URL, repo, notes)

	result, err := s.Sync(context.Background(), &internal.User{ID: "u1"}, "tok", 7)
	require.NoError(t, err)
	assert.Equal(t, 1, result.RecordsProcessed)
	assert.Equal(t, "Synced 1 days of Oura data", result.Message)
	assert.Empty(t, result.FailedEndpoints)

	require.Len(t, repo.upserted, 1)
	assert.Equal(t, "u1", repo.upserted[0].UserID)
	require.NotNil(t, repo.upserted[0].SleepScore)
	assert.Equal(t, 82, *repo.upserted[0].SleepScore)

	require.Len(t, notes.notes, 1)
	assert.Equal(t, internal.SeverityLow, notes.notes[0].severity)
}

func TestSyncPartialEndpointFailure(t *testing.T) {
	srv := ouraStub(map[string]bool{"daily_readiness": true})
	defer srv.Close()

	repo := &fakeMetricsRepo{}
	notes := &recordingNotifier{}
	s := newTestSyncer(srv.URL, repo, notes)

	result, err := s.Sync(context.Background(), &internal.User{ID: "u1"}, "tok", 7)
	require.NoError(t, err)
	assert.Equal(t, 1, result.RecordsProcessed)
	assert.Equal(t, []string{"daily_readiness"}, result.FailedEndpoints)

	require.Len(t, notes.notes, 1)
	assert.Equal(t, internal.SeverityMedium, notes.notes[0].severity)
	assert.Contains(t, notes.notes[0].message, "daily_readiness")
}

func TestSyncAllEndpointsDown(t *testing.T) {
	down := make(map[string]bool)
	for _, e := range oura.Endpoints {
		down[string(e)] = true
	}
	srv := ouraStub(down)
	defer srv.Close()

	repo := &fakeMetricsRepo{}
	notes := &recordingNotifier{}
	s := newTestSyncer(srv.URL, repo, notes)

	result, err := s.Sync(context.Background(), &internal.User{ID: "u1"}, "tok", 7)
	require.Error(t, err)
	assert.True(t, errors.Is(err, internal.ErrUpstream))
	assert.Nil(t, result)
	assert.Empty(t, repo.upserted)

	require.Len(t, notes.notes, 1)
	assert.Equal(t, internal.SeverityHigh, notes.notes[0].severity)
}

func TestSyncStorageFailure(t *testing.T) {
	srv := ouraStub(nil)
	defer srv.Close()

	repo := &fakeMetricsRepo{err: errors.New("disk full")}
	notes := &recordingNotifier{}
	s := newTestSyncer(srv.URL, repo, notes)

	result, err := s.Sync(context.Background(), &internal.User{ID: "u1"}, "tok", 7)
	require.Error(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 0, result.RecordsProcessed)
	assert.Contains(t, result.Message, "before storage failed")

	require.Len(t, notes.notes, 1)
	assert.Equal(t, internal.SeverityHigh, notes.notes[0].severity)
}
