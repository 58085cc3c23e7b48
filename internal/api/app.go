package api

import (
	"github.com/alonkrifcher/aura-insight-whisperer/internal"
	"github.com/alonkrifcher/aura-insight-whisperer/internal/service"
	"github.com/alonkrifcher/aura-insight-whisperer/internal/storage"
)

// App exposes the dependencies handlers need.
type App interface {
	Logger() internal.Logger
	MetricsRepo() storage.DailyMetricRepository
	LifestyleRepo() storage.LifestyleRepository
	Syncer() *service.Syncer
	OuraToken() string
	InsightWindow() int
}
