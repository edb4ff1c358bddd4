package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays cfg with values from the process environment. A .env
// file in the working directory is loaded first if present; storage
// credentials in particular usually arrive this way.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("UMS_SERVER_URL"); v != "" {
		cfg.ServerBaseURL = v
	}
	if v := os.Getenv("UMS_REQUEST_TIMEOUT_SECS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.RequestTimeout = time.Duration(secs) * time.Second
		}
	}
	if v := os.Getenv("UMS_DB_PATH"); v != "" {
		cfg.LocalDBPath = v
	}
	if v := os.Getenv("UMS_S3_REGION"); v != "" {
		cfg.S3Region = v
	}
	if v := os.Getenv("UMS_S3_BUCKET"); v != "" {
		cfg.S3Bucket = v
	}
	if v := os.Getenv("UMS_S3_ENDPOINT"); v != "" {
		cfg.S3BaseEndpoint = v
	}
	if v := os.Getenv("UMS_S3_ACCESS_KEY"); v != "" {
		cfg.S3AccessKey = v
	}
	if v := os.Getenv("UMS_S3_SECRET_KEY"); v != "" {
		cfg.S3SecretKey = v
	}
}
