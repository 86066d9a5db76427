package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/BruksfildServices01/habitta/internal/config"
)

// Driver é o backend onde os avatares são gravados. As chaves são
// relativas (ex.: "avatars/user_1_ab12cd34.webp").
type Driver interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	PublicURL(key string) string
}

func New(cfg *config.Config) (Driver, error) {
	switch cfg.StorageDriver {
	case "", "local":
		return NewLocal(cfg.UploadsPath, "/uploads"), nil
	case "s3":
		return NewS3(S3Options{
			Region:    cfg.AWSRegion,
			Bucket:    cfg.AWSBucket,
			AccessKey: cfg.AWSAccessKey,
			SecretKey: cfg.AWSSecretKey,
			Endpoint:  cfg.AWSEndpoint,
		})
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.StorageDriver)
	}
}
