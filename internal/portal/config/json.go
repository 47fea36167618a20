package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/campusdesk/internal/flagx"
	"github.com/dmitrijs2005/campusdesk/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Intervals rely
// on timex.Duration so JSON can specify them either as strings like "30s" or
// as integer nanoseconds.
type JsonConfig struct {
	APIBaseURL                  string         `json:"api_base_url"`
	AnonKey                     string         `json:"anon_key"`
	CacheDSN                    string         `json:"cache_dsn"`
	EventRefreshInterval        timex.Duration `json:"event_refresh_interval"`
	AnnouncementRefreshInterval timex.Duration `json:"announcement_refresh_interval"`
	ChatPollInterval            timex.Duration `json:"chat_poll_interval"`
	FileQuotaBytes              int64          `json:"file_quota_bytes"`
	S3Endpoint                  string         `json:"s3_endpoint"`
	S3Region                    string         `json:"s3_region"`
	S3Bucket                    string         `json:"s3_bucket"`
	S3AccessKey                 string         `json:"s3_access_key"`
	S3SecretKey                 string         `json:"s3_secret_key"`
}

// parseJson overlays cfg with values loaded from the JSON file named by the
// -c/-config flags. Missing file path means no overlay. Read or unmarshal
// errors panic; config is resolved once at startup and a broken file should
// stop the program immediately.
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

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.AnonKey != "" {
		cfg.AnonKey = jc.AnonKey
	}
	if jc.CacheDSN != "" {
		cfg.CacheDSN = jc.CacheDSN
	}
	if jc.EventRefreshInterval.Duration > 0 {
		cfg.EventRefreshInterval = jc.EventRefreshInterval.Duration
	}
	if jc.AnnouncementRefreshInterval.Duration > 0 {
		cfg.AnnouncementRefreshInterval = jc.AnnouncementRefreshInterval.Duration
	}
	if jc.ChatPollInterval.Duration > 0 {
		cfg.ChatPollInterval = jc.ChatPollInterval.Duration
	}
	if jc.FileQuotaBytes > 0 {
		cfg.FileQuotaBytes = jc.FileQuotaBytes
	}
	if jc.S3Endpoint != "" {
		cfg.S3Endpoint = jc.S3Endpoint
	}
	if jc.S3Region != "" {
		cfg.S3Region = jc.S3Region
	}
	if jc.S3Bucket != "" {
		cfg.S3Bucket = jc.S3Bucket
	}
	if jc.S3AccessKey != "" {
		cfg.S3AccessKey = jc.S3AccessKey
	}
	if jc.S3SecretKey != "" {
		cfg.S3SecretKey = jc.S3SecretKey
	}
}
