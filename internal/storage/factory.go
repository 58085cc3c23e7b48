package storage

import (
	"github.com/alonkrifcher/aura-insight-whisperer/internal"
	"github.com/alonkrifcher/aura-insight-whisperer/internal/config"
)

// Repositories bundles the three stores behind one backend.
type Repositories struct {
	Metrics   DailyMetricRepository
	Lifestyle LifestyleRepository
	Users     UserRepository
	Closer    func() error
}

// New selects the backend from config: "postgres" or "file".
func New(cfg *config.Config, logger internal.Logger) (*Repositories, error) {
	if cfg.DBType == "postgres" {
		s, err := NewPostgresStorage(cfg.DBDSN, logger)
		if err != nil {
			return nil, err
		}
		return &Repositories{
			Metrics:   s,
			Lifestyle: s,
			Users:     s,
			Closer:    func() error { s.Close(); return nil },
		}, nil
	}

	s, err := NewFileStorage(cfg.FileMetrics, cfg.FileLifestyle, cfg.FileUsers, logger)
	if err != nil {
		return nil, err
	}
	return &Repositories{
		Metrics:   s,
		Lifestyle: s,
		Users:     s,
		Closer:    s.Close,
	}, nil
}
