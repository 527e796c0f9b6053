// Package config loads runtime settings from environment variables with
// development defaults, so the server starts with no configuration at
// all against a local postgres.
package config

import (
	"os"
	"time"

	"github.com/spf13/cast"
)

type Config struct {
	Env              string
	Port             string
	DatabaseDSN      string
	MaxOpenConns     int
	MaxIdleConns     int
	AccessSecret     string
	RefreshSecret    string
	AccessTokenLife  time.Duration
	RefreshTokenLife time.Duration
	UploadDir        string
	LogFile          string
}

func Load() Config {
	return Config{
		Env:              getenv("APP_ENV", "development"),
		Port:             getenv("APP_PORT", "3000"),
		DatabaseDSN:      getenv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=postgres port=5432 sslmode=disable"),
		MaxOpenConns:     cast.ToInt(getenv("DB_MAX_OPEN_CONNS", "10")),
		MaxIdleConns:     cast.ToInt(getenv("DB_MAX_IDLE_CONNS", "2")),
		AccessSecret:     getenv("ACCESS_TOKEN_SECRET", "dev-access-secret"),
		RefreshSecret:    getenv("REFRESH_TOKEN_SECRET", "dev-refresh-secret"),
		AccessTokenLife:  cast.ToDuration(getenv("ACCESS_TOKEN_LIFE", "15m")),
		RefreshTokenLife: cast.ToDuration(getenv("REFRESH_TOKEN_LIFE", "168h")),
		UploadDir:        getenv("UPLOAD_DIR", "uploads"),
		LogFile:          getenv("LOG_FILE", ""),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
