package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/umsclient/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations
// are given in seconds so the file stays plain JSON numbers.
type JsonConfig struct {
	ServerBaseURL      string `json:"server_base_url"`
	RequestTimeoutSecs int    `json:"request_timeout_secs"`
	LocalDBPath        string `json:"local_db_path"`

	S3Region       string `json:"s3_region"`
	S3Bucket       string `json:"s3_bucket"`
	S3BaseEndpoint string `json:"s3_base_endpoint"`
	S3AccessKey    string `json:"s3_access_key"`
	S3SecretKey    string `json:"s3_secret_key"`
}

// parseJson overlays cfg with values from the JSON file named by the -c or
// -config flag. Absent flag means no JSON is loaded. Only fields present in
// the file override. Read or unmarshal errors panic (caller may recover).
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.RequestTimeoutSecs > 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeoutSecs) * time.Second
	}
	if jc.LocalDBPath != "" {
		cfg.LocalDBPath = jc.LocalDBPath
	}
	if jc.S3Region != "" {
		cfg.S3Region = jc.S3Region
	}
	if jc.S3Bucket != "" {
		cfg.S3Bucket = jc.S3Bucket
	}
	if jc.S3BaseEndpoint != "" {
		cfg.S3BaseEndpoint = jc.S3BaseEndpoint
	}
	if jc.S3AccessKey != "" {
		cfg.S3AccessKey = jc.S3AccessKey
	}
	if jc.S3SecretKey != "" {
		cfg.S3SecretKey = jc.S3SecretKey
	}
}
