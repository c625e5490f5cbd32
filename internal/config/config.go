// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	DatabaseURL string // COSMICHUB_DATABASE_URL (required)
	HTTPAddr    string // COSMICHUB_HTTP_ADDR (default ":8080")
	NATSURL     string // COSMICHUB_NATS_URL (optional, empty = no events)
	AuthToken   string // COSMICHUB_AUTH_TOKEN (optional, empty = auth disabled)

	// Snapshot settings
	SnapshotInterval   time.Duration // COSMICHUB_SNAPSHOT_INTERVAL (default 5m; 0 = disabled)
	SnapshotS3Bucket   string        // COSMICHUB_SNAPSHOT_S3_BUCKET (enables S3 when set)
	SnapshotS3Endpoint string        // COSMICHUB_SNAPSHOT_S3_ENDPOINT (custom endpoint for MinIO)
	SnapshotS3Region   string        // COSMICHUB_SNAPSHOT_S3_REGION (default "us-east-1")
	SnapshotS3Key      string        // COSMICHUB_SNAPSHOT_S3_KEY (default "cosmichub/snapshot.jsonl")
}

func Load() (*Config, error) {
	c := &Config{
		DatabaseURL:        os.Getenv("COSMICHUB_DATABASE_URL"),
		HTTPAddr:           envOrDefault("COSMICHUB_HTTP_ADDR", ":8080"),
		NATSURL:            os.Getenv("COSMICHUB_NATS_URL"),
		AuthToken:          os.Getenv("COSMICHUB_AUTH_TOKEN"),
		SnapshotS3Bucket:   os.Getenv("COSMICHUB_SNAPSHOT_S3_BUCKET"),
		SnapshotS3Endpoint: os.Getenv("COSMICHUB_SNAPSHOT_S3_ENDPOINT"),
		SnapshotS3Region:   envOrDefault("COSMICHUB_SNAPSHOT_S3_REGION", "us-east-1"),
		SnapshotS3Key:      envOrDefault("COSMICHUB_SNAPSHOT_S3_KEY", "cosmichub/snapshot.jsonl"),
	}
	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("COSMICHUB_DATABASE_URL is required")
	}

	intervalStr := envOrDefault("COSMICHUB_SNAPSHOT_INTERVAL", "5m")
	if intervalStr != "" {
		d, err := time.ParseDuration(intervalStr)
		if err != nil {
			return nil, fmt.Errorf("COSMICHUB_SNAPSHOT_INTERVAL: %w", err)
		}
		c.SnapshotInterval = d
	}

	return c, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
