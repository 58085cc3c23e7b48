package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/alonkrifcher/aura-insight-whisperer/internal"
	"github.com/alonkrifcher/aura-insight-whisperer/internal/api"
	"github.com/alonkrifcher/aura-insight-whisperer/internal/auth"
	"github.com/alonkrifcher/aura-insight-whisperer/internal/config"
	"github.com/alonkrifcher/aura-insight-whisperer/internal/oura"
	"github.com/alonkrifcher/aura-insight-whisperer/internal/service"
	"github.com/alonkrifcher/aura-insight-whisperer/internal/storage"
)

func main() {
	cfg := config.Load()

	logger, err := internal.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	if cfg.DBType == "file" {
		if err := ensureFileStorage(cfg); err != nil {
			logger.Fatalf("failed to prepare data directory: %v", err)
		}
	}

	repos, err := storage.New(cfg, logger)
	if err != nil {
		logger.Fatalf("failed to init storage: %v", err)
	}
	defer func() { _ = repos.Closer() }()

	var provider auth.Provider
	if cfg.AuthMode == "jwt" {
		provider, err = auth.NewJWTProvider(cfg.JWTSecret, logger)
		if err != nil {
			logger.Fatalf("failed to init auth: %v", err)
		}
	} else {
		provider = auth.NewStaticProvider(repos.Users, logger)
	}

	client := oura.NewClient(cfg.OuraBaseURL, logger)
	syncer := service.NewSyncer(client, repos.Metrics, service.NewLogNotifier(logger), logger)
	app := api.NewApp(logger, repos, syncer, cfg.OuraToken, cfg.InsightWindow)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := api.NewRouter(app, provider)

	logger.Infof("Server running on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		logger.Fatalf("failed to start server: %v", err)
	}
}

// ensureFileStorage creates the data directory and seeds a demo user so the
// development token works out of the box.
func ensureFileStorage(cfg *config.Config) error {
	dir := filepath.Dir(cfg.FileMetrics)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	if _, err := os.Stat(cfg.FileUsers); os.IsNotExist(err) {
		seed := []byte(`[{"id":"u1","token":"` + cfg.AuthToken + `","name":"Demo User"}]`)
		return os.WriteFile(cfg.FileUsers, seed, 0644)
	}
	return nil
}
