// Package blob selects a blob store driver from environment configuration.
package blob

import (
	"context"
	"fmt"

	"github.com/caarlos0/env/v11"

	blobcore "rostercore/internal/blob/core"
	blobfs "rostercore/internal/infra/blob/fs"
	blobmemory "rostercore/internal/infra/blob/memory"
	blobs3 "rostercore/internal/infra/blob/s3"
)

// Config selects and parameterizes the blob driver.
type Config struct {
	Driver         string `env:"ROSTERCORE_BLOB_DRIVER" envDefault:"fs"`
	FSRoot         string `env:"ROSTERCORE_BLOB_FS_ROOT" envDefault:"blobdata"`
	S3Bucket       string `env:"ROSTERCORE_BLOB_S3_BUCKET"`
	S3Region       string `env:"ROSTERCORE_BLOB_S3_REGION"`
	S3Endpoint     string `env:"ROSTERCORE_BLOB_S3_ENDPOINT"`
	S3AccessKey    string `env:"ROSTERCORE_BLOB_S3_ACCESS_KEY"`
	S3SecretKey    string `env:"ROSTERCORE_BLOB_S3_SECRET_KEY"`
	S3UsePathStyle bool   `env:"ROSTERCORE_BLOB_S3_PATH_STYLE"`
}

// LoadConfig parses blob settings from the environment.
func LoadConfig() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse blob config: %w", err)
	}
	return cfg, nil
}

// Open constructs the configured blob store.
func Open(ctx context.Context, cfg Config) (blobcore.Store, error) {
	switch cfg.Driver {
	case "memory":
		return blobmemory.NewStore(), nil
	case "fs":
		return blobfs.NewStore(cfg.FSRoot)
	case "s3":
		return blobs3.NewStore(ctx, blobs3.Config{
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			Endpoint:     cfg.S3Endpoint,
			AccessKey:    cfg.S3AccessKey,
			SecretKey:    cfg.S3SecretKey,
			UsePathStyle: cfg.S3UsePathStyle,
		})
	default:
		return nil, fmt.Errorf("unknown blob driver %q", cfg.Driver)
	}
}

// OpenFromEnv parses the environment and constructs the configured store.
func OpenFromEnv(ctx context.Context) (blobcore.Store, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	return Open(ctx, cfg)
}
