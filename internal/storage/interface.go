package storage

import (
	"context"

	"github.com/alonkrifcher/aura-insight-whisperer/internal"
)

// DailyMetricRepository stores merged wearable records keyed (user_id, date).
// UpsertDailyMetrics is idempotent per key: re-applying an identical batch is
// a no-op in effect. It returns the number of records committed, which may be
// lower than the batch size when the store fails partway.
// List methods return newest-first; limit <= 0 means no limit.
type DailyMetricRepository interface {
	UpsertDailyMetrics(ctx context.Context, records []internal.DailyMetric) (int, error)
	ListDailyMetrics(ctx context.Context, userID string, limit int) ([]internal.DailyMetric, error)
}

// LifestyleRepository stores self-reported entries keyed (user_id, date) with
// the same field-merge upsert semantics.
type LifestyleRepository interface {
	UpsertLifestyleEntry(ctx context.Context, entry *internal.LifestyleEntry) error
	ListLifestyleEntries(ctx context.Context, userID string, limit int) ([]internal.LifestyleEntry, error)
}

type UserRepository interface {
	GetUserByToken(ctx context.Context, token string) (*internal.User, error)
}
