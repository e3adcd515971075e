// Package config builds the application's explicit configuration and opens
// the object store. Nothing here is a package-level singleton; main
// constructs a Config once and passes it down.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

type Config struct {
	// Addr is the listen address for the local UI API. Defaults to
	// loopback only; this is a single-user desktop app.
	Addr string
	// DatabaseURL switches the store to PostgreSQL when set. Empty means
	// the on-device SQLite file.
	DatabaseURL string
	// DBPath is the SQLite file location.
	DBPath string
	// CORSOrigins are allowed origins for a UI dev server, comma separated.
	// Empty allows all (everything is loopback anyway).
	CORSOrigins []string
}

func Load() *Config {
	cfg := &Config{
		Addr:        getenv("ADDR", "127.0.0.1:8790"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBPath:      os.Getenv("JOBTWISTER_DB_PATH"),
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath()
	}
	if v := strings.TrimSpace(os.Getenv("CORS_ORIGINS")); v != "" {
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}
	return cfg
}

func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "jobtwister.db"
	}
	return filepath.Join(dir, "JobTwister", "jobtwister.db")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
