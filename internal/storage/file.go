package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/alonkrifcher/aura-insight-whisperer/internal"
)

// FileStorage keeps everything in memory keyed (user, date) and persists to
// JSON files with a debounced background save. Suitable for development and
// tests; postgres is the production backend.
type FileStorage struct {
	metrics   map[string]map[string]*internal.DailyMetric    // userID -> date -> record
	lifestyle map[string]map[string]*internal.LifestyleEntry // userID -> date -> entry
	users     map[string]*internal.User                      // token -> user

	mu            sync.RWMutex
	metricsFile   string
	lifestyleFile string
	usersFile     string

	saveMetricsChan   chan struct{}
	saveLifestyleChan chan struct{}
	shutdownChan      chan struct{}
	saveDelay         time.Duration
	logger            internal.Logger
}

func NewFileStorage(metricsFile, lifestyleFile, usersFile string, logger internal.Logger) (*FileStorage, error) {
	s := &FileStorage{
		metrics:           make(map[string]map[string]*internal.DailyMetric),
		lifestyle:         make(map[string]map[string]*internal.LifestyleEntry),
		users:             make(map[string]*internal.User),
		metricsFile:       metricsFile,
		lifestyleFile:     lifestyleFile,
		usersFile:         usersFile,
		saveMetricsChan:   make(chan struct{}, 1),
		saveLifestyleChan: make(chan struct{}, 1),
		shutdownChan:      make(chan struct{}),
		saveDelay:         500 * time.Millisecond,
		logger:            logger,
	}

	if err := s.loadMetrics(); err != nil {
		logger.Errorf("storage: failed to load daily metrics: %v", err)
		return nil, err
	}
	if err := s.loadLifestyle(); err != nil {
		logger.Errorf("storage: failed to load lifestyle entries: %v", err)
		return nil, err
	}
	if err := s.loadUsers(); err != nil {
		logger.Errorf("storage: failed to load users: %v", err)
		return nil, err
	}

	go s.saveWorker(s.saveMetricsChan, s.saveMetrics, "daily metrics")
	go s.saveWorker(s.saveLifestyleChan, s.saveLifestyle, "lifestyle entries")

	return s, nil
}

func decodeJSONFile(path string, out interface{}) error {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}

func (s *FileStorage) loadMetrics() error {
	var records []*internal.DailyMetric
	if err := decodeJSONFile(s.metricsFile, &records); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		if s.metrics[r.UserID] == nil {
			s.metrics[r.UserID] = make(map[string]*internal.DailyMetric)
		}
		s.metrics[r.UserID][r.Date] = r
	}
	return nil
}

func (s *FileStorage) loadLifestyle() error {
	var entries []*internal.LifestyleEntry
	if err := decodeJSONFile(s.lifestyleFile, &entries); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		if s.lifestyle[e.UserID] == nil {
			s.lifestyle[e.UserID] = make(map[string]*internal.LifestyleEntry)
		}
		s.lifestyle[e.UserID][e.Date] = e
	}
	return nil
}

func (s *FileStorage) loadUsers() error {
	var users []*internal.User
	if err := decodeJSONFile(s.usersFile, &users); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range users {
		s.users[u.Token] = u
	}
	return nil
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

func (s *FileStorage) saveMetrics() error {
	s.mu.RLock()
	records := make([]*internal.DailyMetric, 0)
	for _, byDate := range s.metrics {
		for _, r := range byDate {
			records = append(records, r)
		}
	}
	s.mu.RUnlock()
	return atomicWriteFileJSON(s.metricsFile, records)
}

func (s *FileStorage) saveLifestyle() error {
	s.mu.RLock()
	entries := make([]*internal.LifestyleEntry, 0)
	for _, byDate := range s.lifestyle {
		for _, e := range byDate {
			entries = append(entries, e)
		}
	}
	s.mu.RUnlock()
	return atomicWriteFileJSON(s.lifestyleFile, entries)
}

func (s *FileStorage) saveWorker(trigger chan struct{}, save func() error, what string) {
	timer := time.NewTimer(s.saveDelay)
	defer timer.Stop()

	for {
		select {
		case <-trigger:
			timer.Reset(s.saveDelay)
		case <-timer.C:
			if err := save(); err != nil {
				s.logger.Errorf("storage: error saving %s: %v", what, err)
			}
		case <-s.shutdownChan:
			return
		}
	}
}

// Close stops the save workers and flushes pending data synchronously.
func (s *FileStorage) Close() error {
	close(s.shutdownChan)

	if err := s.saveMetrics(); err != nil {
		return err
	}
	return s.saveLifestyle()
}

// --- DailyMetricRepository ---

func (s *FileStorage) UpsertDailyMetrics(ctx context.Context, records []internal.DailyMetric) (int, error) {
	s.mu.Lock()
	for i := range records {
		r := records[i]
		if s.metrics[r.UserID] == nil {
			s.metrics[r.UserID] = make(map[string]*internal.DailyMetric)
		}
		existing, ok := s.metrics[r.UserID][r.Date]
		if !ok {
			r.CreatedAt = time.Now()
			s.metrics[r.UserID][r.Date] = &r
			continue
		}
		internal.MergeDailyMetric(existing, &r)
	}
	s.mu.Unlock()

	select {
	case s.saveMetricsChan <- struct{}{}:
	default:
	}
	return len(records), nil
}

func (s *FileStorage) ListDailyMetrics(ctx context.Context, userID string, limit int) ([]internal.DailyMetric, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byDate := s.metrics[userID]
	records := make([]internal.DailyMetric, 0, len(byDate))
	for _, r := range byDate {
		records = append(records, *r)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Date > records[j].Date
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// --- LifestyleRepository ---

func (s *FileStorage) UpsertLifestyleEntry(ctx context.Context, entry *internal.LifestyleEntry) error {
	s.mu.Lock()
	if s.lifestyle[entry.UserID] == nil {
		s.lifestyle[entry.UserID] = make(map[string]*internal.LifestyleEntry)
	}
	existing, ok := s.lifestyle[entry.UserID][entry.Date]
	if !ok {
		cp := *entry
		s.lifestyle[entry.UserID][entry.Date] = &cp
	} else {
		internal.MergeLifestyleEntry(existing, entry)
	}
	s.mu.Unlock()

	select {
	case s.saveLifestyleChan <- struct{}{}:
	default:
	}
	return nil
}

func (s *FileStorage) ListLifestyleEntries(ctx context.Context, userID string, limit int) ([]internal.LifestyleEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byDate := s.lifestyle[userID]
	entries := make([]internal.LifestyleEntry, 0, len(byDate))
	for _, e := range byDate {
		entries = append(entries, *e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date > entries[j].Date
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// --- UserRepository ---

func (s *FileStorage) GetUserByToken(ctx context.Context, token string) (*internal.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[token]
	if !ok {
		return nil, internal.ErrNotFound
	}
	return u, nil
}

// --- Compile-time assertions ---
var _ DailyMetricRepository = (*FileStorage)(nil)
var _ LifestyleRepository = (*FileStorage)(nil)
var _ UserRepository = (*FileStorage)(nil)
