package config

import (
	"errors"
	"os"
	"strconv"
	"sync"
)

type Config struct {
	Env           string
	LogLevel      string
	ListenAddr    string
	DBType        string
	DBDSN         string
	FileMetrics   string
	FileLifestyle string
	FileUsers     string
	OuraBaseURL   string
	OuraToken     string
	AuthMode      string // static | jwt
	AuthToken     string
	JWTSecret     string
	SyncDays      int
	InsightWindow int
}

var (
	cfg  *Config
	once sync.Once
)

func Load() *Config {
	once.Do(func() {
		_ = loadDotEnv()
		cfg = &Config{
			Env:           getEnv("APP_ENV", "development"),
			LogLevel:      getEnv("LOG_LEVEL", "info"),
			ListenAddr:    getEnv("LISTEN_ADDR", ":8088"),
			DBType:        getEnv("STORAGE_BACKEND", "file"),
			DBDSN:         getEnv("POSTGRES_DSN", ""),
			FileMetrics:   getEnv("METRICS_FILE", "data/daily_metrics.json"),
			FileLifestyle: getEnv("LIFESTYLE_FILE", "data/lifestyle_entries.json"),
			FileUsers:     getEnv("USERS_FILE", "data/users.json"),
			OuraBaseURL:   getEnv("OURA_BASE_URL", "https://api.ouraring.com"),
			OuraToken:     getEnv("OURA_ACCESS_TOKEN", ""),
			AuthMode:      getEnv("AUTH_MODE", "static"),
			AuthToken:     getEnv("AUTH_TOKEN", "MOCK-TOKEN"),
			JWTSecret:     getEnv("JWT_SECRET", ""),
			SyncDays:      getEnvInt("SYNC_DAYS", 7),
			InsightWindow: getEnvInt("INSIGHT_WINDOW_DAYS", 7),
		}
		if err := cfg.Validate(); err != nil {
			panic("Invalid config: " + err.Error())
		}
	})
	return cfg
}

func (c *Config) Validate() error {
	if c.DBType == "postgres" && c.DBDSN == "" {
		return errors.New("POSTGRES_DSN is required when STORAGE_BACKEND=postgres")
	}
	if c.DBType == "file" && (c.FileMetrics == "" || c.FileLifestyle == "") {
		return errors.New("File storage requires METRICS_FILE and LIFESTYLE_FILE to be set")
	}
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return errors.New("APP_ENV must be one of: development, staging, production")
	}
	if c.AuthMode != "static" && c.AuthMode != "jwt" {
		return errors.New("AUTH_MODE must be one of: static, jwt")
	}
	if c.AuthMode == "jwt" && c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required when AUTH_MODE=jwt")
	}
	if c.SyncDays < 1 || c.SyncDays > 31 {
		return errors.New("SYNC_DAYS must be between 1 and 31")
	}
	if c.InsightWindow < 1 || c.InsightWindow > 31 {
		return errors.New("INSIGHT_WINDOW_DAYS must be between 1 and 31")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func loadDotEnv() error {
	if _, err := os.Stat(".env"); err == nil {
		f, err := os.Open(".env")
		if err != nil {
			return err
		}
		defer f.Close()
		var lines []string
		buf := make([]byte, 4096)
		for {
			n, err := f.Read(buf)
			if n > 0 {
				lines = append(lines, string(buf[:n]))
			}
			if err != nil {
				break
			}
		}
		for _, line := range lines {
			for _, l := range splitLines(line) {
				if len(l) == 0 || l[0] == '#' {
					continue
				}
				kv := splitKV(l)
				if len(kv) == 2 {
					os.Setenv(kv[0], kv[1])
				}
			}
		}
	}
	return nil
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i, c := range s {
		if c == '\n' || c == '\r' {
			if i > start {
				lines = append(lines, s[start:i])
			}
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

func splitKV(s string) []string {
	for i, c := range s {
		if c == '=' {
			return []string{s[:i], s[i+1:]}
		}
	}
	return nil
}
