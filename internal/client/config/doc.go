// Package config loads runtime configuration for the UMS client CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables, with optional .env file (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the user management server
//	-t int      request timeout (seconds)
//	-d string   path to the local client database
//
// # JSON schema
//
// Durations are plain integers in seconds:
//
//	{
//	  "server_base_url": "http://127.0.0.1:3000",
//	  "request_timeout_secs": 10,
//	  "local_db_path": "ums.db",
//	  "s3_region": "us-east-1",
//	  "s3_bucket": "ums-avatars",
//	  "s3_base_endpoint": "http://127.0.0.1:9000"
//	}
//
// Primary API
//
//   - type Config                     — holds server, database and storage settings
//   - func LoadConfig() *Config       — builds Config by applying all sources in order
//   - func (*Config) LoadDefaults()   — sets sensible defaults
//
// Storage credentials (UMS_S3_ACCESS_KEY, UMS_S3_SECRET_KEY) are normally
// supplied via the environment rather than the JSON file.
package config
