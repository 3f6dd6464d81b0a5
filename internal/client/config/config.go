package config

import "time"

// Config holds runtime settings for the VidTube CLI.
//
// Fields:
//   - APIBaseURL: base URL of the VidTube REST API, including the /api/v1 prefix.
//   - RefreshTokenURL: absolute URL of the token refresh endpoint. Empty means
//     "derive from APIBaseURL".
//   - RequestTimeout: per-request HTTP timeout.
//   - DatabasePath: path of the local sqlite database holding credentials.
//     Empty means "client.db inside a .vidtube directory under the current
//     working directory".
//   - LogLevel: minimum slog level (debug, info, warn, error).
type Config struct {
	APIBaseURL      string
	RefreshTokenURL string
	RequestTimeout  time.Duration
	DatabasePath    string
	LogLevel        string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:5000/api/v1"
	c.RefreshTokenURL = ""
	c.RequestTimeout = 30 * time.Second
	c.DatabasePath = ""
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (including an optional .env file), a JSON file (if present)
// and command-line flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
