// Package config handles configuration for the labeler Lambda functions.
package config

import (
	"os"
	"strconv"

	"github.com/menumatch/labeler/internal/model"
)

// Config holds every environment setting the handlers depend on. It is
// constructed once in main and injected; handlers never read the
// environment at request time.
type Config struct {
	MetadataTable        string
	AuthToken            string
	UploadAuthToken      string
	UploadBucket         string
	DownloadBucket       string
	UploadPrefix         string
	URLExpirationSeconds int
}

// Load loads configuration from environment or defaults.
func Load() *Config {
	cfg := &Config{
		MetadataTable:        os.Getenv("METADATA_TABLE"),
		AuthToken:            os.Getenv("AUTH_TOKEN"),
		UploadAuthToken:      os.Getenv("UPLOAD_AUTH_TOKEN"),
		UploadBucket:         os.Getenv("UPLOAD_BUCKET"),
		DownloadBucket:       os.Getenv("DOWNLOAD_BUCKET"),
		UploadPrefix:         model.DefaultUploadPrefix,
		URLExpirationSeconds: model.DefaultURLExpirationSeconds,
	}

	if prefix, ok := os.LookupEnv("UPLOAD_PREFIX"); ok {
		cfg.UploadPrefix = prefix
	}

	if raw := os.Getenv("URL_EXPIRATION_SECONDS"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			cfg.URLExpirationSeconds = secs
		}
	}

	return cfg
}

// PresignBucket returns the bucket downloads are served from, falling back
// to the upload bucket when DOWNLOAD_BUCKET is not set.
func (c *Config) PresignBucket() string {
	if c.DownloadBucket != "" {
		return c.DownloadBucket
	}
	return c.UploadBucket
}
