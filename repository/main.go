package repository

import (
	"fmt"

	"github.com/tnqbao/gau-document-service/config"
	"github.com/tnqbao/gau-document-service/infra"
)

type Repository struct {
	DocumentRepo *DocumentRepository
}

func InitRepository(cfg *config.Config, infra *infra.Infra) (*Repository, error) {
	store, err := newBlobStore(cfg, infra)
	if err != nil {
		return nil, err
	}
	return &Repository{
		DocumentRepo: NewDocumentRepository(store),
	}, nil
}

func newBlobStore(cfg *config.Config, infra *infra.Infra) (BlobStore, error) {
	env := cfg.EnvConfig
	switch env.Storage.Backend {
	case "minio":
		if infra.Minio == nil {
			return nil, fmt.Errorf("minio backend selected but MinIO client is not configured")
		}
		return NewMinioStore(infra.Minio.Client, env.Storage.Bucket), nil
	case "s3":
		if infra.S3 == nil {
			return nil, fmt.Errorf("s3 backend selected but S3 client is not configured")
		}
		return NewS3Store(infra.S3.Client, env.Storage.Bucket), nil
	case "redis":
		if infra.Redis == nil {
			return nil, fmt.Errorf("redis backend selected but Redis client is not configured")
		}
		return NewRedisStore(infra.Redis.Client), nil
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", env.Storage.Backend)
	}
}
