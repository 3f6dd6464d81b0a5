package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from environment variables. A .env
// file in the working directory is loaded first; existing variables win over
// file entries, and a missing file is not an error.
//
// Recognized variables:
//
//	VIDTUBE_API_URL            base URL of the REST API
//	VIDTUBE_REFRESH_TOKEN_URL  absolute refresh endpoint URL
//	VIDTUBE_TIMEOUT            request timeout, Go duration syntax ("30s")
//	VIDTUBE_DB_PATH            local database path
//	VIDTUBE_LOG_LEVEL          debug, info, warn or error
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("VIDTUBE_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("VIDTUBE_REFRESH_TOKEN_URL"); v != "" {
		cfg.RefreshTokenURL = v
	}
	if v := os.Getenv("VIDTUBE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
	if v := os.Getenv("VIDTUBE_DB_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("VIDTUBE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}
