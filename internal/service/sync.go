package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alonkrifcher/aura-insight-whisperer/internal"
	"github.com/alonkrifcher/aura-insight-whisperer/internal/oura"
	"github.com/alonkrifcher/aura-insight-whisperer/internal/storage"
)

// DefaultSyncDays is the range synced when the caller does not override it.
const DefaultSyncDays = 7

// SyncResult reports what one sync accomplished.
type SyncResult struct {
	RecordsProcessed int      `json:"records_processed"`
	Skipped          int      `json:"skipped,omitempty"`
	Message          string   `json:"message"`
	FailedEndpoints  []string `json:"failed_endpoints,omitempty"`
}

// Syncer orchestrates fetch, merge and upsert for one user's wearable data.
type Syncer struct {
	client  *oura.Client
	metrics storage.DailyMetricRepository
	notify  Notifier
	logger  internal.Logger
	now     func() time.Time
}

func NewSyncer(client *oura.Client, metrics storage.DailyMetricRepository, notify Notifier, logger internal.Logger) *Syncer {
	return &Syncer{
		client:  client,
		metrics: metrics,
		notify:  notify,
		logger:  logger,
		now:     time.Now,
	}
}

// Sync fetches the last `days` days from every Oura endpoint, merges the
// responses into per-day records and upserts them. A failure of individual
// endpoints degrades the result instead of failing it; only when every
// endpoint fails does Sync return an error. Storage failures are returned
// alongside the counts already committed.
func (s *Syncer) Sync(ctx context.Context, user *internal.User, token string, days int) (*SyncResult, error) {
	if days <= 0 {
		days = DefaultSyncDays
	}
	end := s.now()
	start := end.AddDate(0, 0, -days)

	s.logger.Infof("sync: fetching Oura data for user %s from %s to %s",
		user.ID, start.Format("2006-01-02"), end.Format("2006-01-02"))

	res := s.client.FetchAll(ctx, token, start, end)
	if res.AllFailed() {
		s.notify.Notify(internal.SeverityHigh, "Oura sync failed: no endpoint reachable")
		return nil, fmt.Errorf("%w: all Oura endpoints failed", internal.ErrUpstream)
	}

	merged := MergeDailyMetrics(user.ID, res)

	committed, err := s.metrics.UpsertDailyMetrics(ctx, merged.Records)
	result := &SyncResult{
		RecordsProcessed: committed,
		Skipped:          merged.Skipped,
		FailedEndpoints:  res.FailedEndpoints(),
		Message:          fmt.Sprintf("Synced %d days of Oura data", committed),
	}
	if err != nil {
		result.Message = fmt.Sprintf("Synced %d of %d days before storage failed", committed, len(merged.Records))
		s.notify.Notify(internal.SeverityHigh, result.Message)
		return result, err
	}

	if len(result.FailedEndpoints) > 0 {
		s.notify.Notify(internal.SeverityMedium,
			fmt.Sprintf("%s (endpoints unavailable: %v)", result.Message, result.FailedEndpoints))
	} else {
		s.notify.Notify(internal.SeverityLow, result.Message)
	}
	return result, nil
}
