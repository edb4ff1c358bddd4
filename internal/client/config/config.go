package config

import "time"

// Config holds runtime settings for the UMS client.
//
// Fields:
//   - ServerBaseURL: base URL of the backend REST API.
//   - RequestTimeout: per-request deadline for API calls.
//   - LocalDBPath: path of the local sqlite database (persisted session).
//   - S3*: settings of the S3-compatible store that keeps avatar images.
type Config struct {
	ServerBaseURL  string
	RequestTimeout time.Duration
	LocalDBPath    string

	S3Region       string
	S3Bucket       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string
}

// LoadDefaults populates c with sensible defaults for local development.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:3000"
	c.RequestTimeout = 10 * time.Second
	c.LocalDBPath = "ums.db"

	c.S3Region = "us-east-1"
	c.S3Bucket = "ums-avatars"
	c.S3BaseEndpoint = "http://127.0.0.1:9000"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present), the environment (.env supported), and finally
// command-line flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
