package repository

import (
	"context"
	"fmt"

	"github.com/timmy/haikuforge/internal/config"
	"github.com/timmy/haikuforge/internal/domain"
	"github.com/timmy/haikuforge/internal/storage"
)

// ArchiveStore is implemented by every poem backend in this package.
type ArchiveStore interface {
	Append(ctx context.Context, poem domain.Poem) error
	ListAll(ctx context.Context) ([]domain.Poem, error)
	Backend() string
}

var (
	_ ArchiveStore = (*PoemRepository)(nil)
	_ ArchiveStore = (*PostgRESTRepository)(nil)
	_ ArchiveStore = (*ObjectRepository)(nil)
)

// NewArchiveStore builds the backend selected by cfg.Backend and prepares it
// (table migration for sql, bucket check for s3).
// Parameters:
//   - ctx: context for setup calls.
//   - cfg: archive configuration.
//
// Returns:
//   - ArchiveStore: ready-to-use backend.
//   - error: non-nil if the backend cannot be reached or prepared.
func NewArchiveStore(ctx context.Context, cfg *config.ArchiveConfig) (ArchiveStore, error) {
	switch cfg.Backend {
	case config.BackendPostgREST:
		return NewPostgRESTRepository(&PostgRESTConfig{
			URL:     cfg.PostgREST.URL,
			Key:     cfg.PostgREST.Key,
			Table:   cfg.Table,
			Timeout: cfg.Timeout,
		}), nil

	case config.BackendSQL:
		db, err := InitDB(&cfg.Database)
		if err != nil {
			return nil, &domain.StoreError{Backend: BackendSQL, Op: domain.StoreOpInit, Err: err}
		}
		repo := NewPoemRepository(db, cfg.Table)
		if cfg.Database.AutoMigrate {
			if err := repo.Migrate(ctx); err != nil {
				return nil, err
			}
		}
		return repo, nil

	case config.BackendS3:
		objectStorage, err := storage.NewStorage(&storage.S3Config{
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			UseSSL:    cfg.S3.UseSSL,
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
		})
		if err != nil {
			return nil, &domain.StoreError{Backend: BackendS3, Op: domain.StoreOpInit, Err: err}
		}
		if err := objectStorage.EnsureBucket(ctx); err != nil {
			return nil, &domain.StoreError{Backend: BackendS3, Op: domain.StoreOpInit, Err: err}
		}
		return NewObjectRepository(objectStorage, cfg.S3.Prefix), nil

	default:
		return nil, fmt.Errorf("unknown archive backend %q", cfg.Backend)
	}
}
