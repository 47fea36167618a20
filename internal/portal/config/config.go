// Package config handles configuration for the portal client, including
// defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the campusdesk client.
//
// Fields:
//   - APIBaseURL / AnonKey: hosted backend endpoint and its static anonymous
//     key (build-time constants in the original client).
//   - CacheDSN: SQLite DSN of the local cache database.
//   - EventRefreshInterval / AnnouncementRefreshInterval: merge poll cadence.
//   - ChatPollInterval: cross-session message rescan cadence.
//   - FileQuotaBytes: hard cap on locally stored attachment bytes.
//   - S3*: object-storage settings for course materials and attachments.
type Config struct {
	APIBaseURL string
	AnonKey    string
	CacheDSN   string

	EventRefreshInterval        time.Duration
	AnnouncementRefreshInterval time.Duration
	ChatPollInterval            time.Duration

	FileQuotaBytes int64

	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
}

// LoadDefaults populates c with development defaults.
// NOTE: These values are placeholders and should be overridden per deployment.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8000/rest/v1"
	c.AnonKey = "anon"
	c.CacheDSN = "portal.db"
	c.EventRefreshInterval = 30 * time.Second
	c.AnnouncementRefreshInterval = 30 * time.Second
	c.ChatPollInterval = 2 * time.Second
	c.FileQuotaBytes = 50 * 1024 * 1024
	c.S3Endpoint = "http://127.0.0.1:9000/"
	c.S3Region = "us-east-1"
	c.S3Bucket = "materials"
	c.S3AccessKey = "admin"
	c.S3SecretKey = "secretpassword"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
