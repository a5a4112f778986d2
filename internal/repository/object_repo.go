package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/timmy/haikuforge/internal/domain"
	"github.com/timmy/haikuforge/internal/storage"
)

const BackendS3 = "s3"

// ObjectRepository keeps one JSON object per poem in object storage.
// Keys start with a zero-padded nanosecond timestamp so a lexical listing
// follows insertion order.
type ObjectRepository struct {
	storage storage.ObjectStorage
	prefix  string
	now     func() time.Time
}

// NewObjectRepository creates a repository writing under prefix/.
func NewObjectRepository(objectStorage storage.ObjectStorage, prefix string) *ObjectRepository {
	prefix = strings.Trim(prefix, "/")
	if prefix != "" {
		prefix += "/"
	}
	return &ObjectRepository{storage: objectStorage, prefix: prefix, now: time.Now}
}

// Backend returns "s3".
func (r *ObjectRepository) Backend() string {
	return BackendS3
}

func (r *ObjectRepository) key() string {
	return fmt.Sprintf("%s%020d-%s.json", r.prefix, r.now().UTC().UnixNano(), uuid.New().String())
}

// Append uploads the poem as {"topic": ..., "haiku": ...}.
func (r *ObjectRepository) Append(ctx context.Context, poem domain.Poem) error {
	if err := poem.Validate(); err != nil {
		return r.fail(domain.StoreOpAppend, err)
	}
	data, err := json.Marshal(poem)
	if err != nil {
		return r.fail(domain.StoreOpAppend, fmt.Errorf("failed to encode poem: %w", err))
	}
	if err := r.storage.Upload(ctx, r.key(), bytes.NewReader(data), int64(len(data)), "application/json"); err != nil {
		return r.fail(domain.StoreOpAppend, err)
	}
	return nil
}

// ListAll downloads every poem object in key order.
func (r *ObjectRepository) ListAll(ctx context.Context) ([]domain.Poem, error) {
	keys, err := r.storage.List(ctx, r.prefix)
	if err != nil {
		return nil, r.fail(domain.StoreOpList, err)
	}

	poems := make([]domain.Poem, 0, len(keys))
	for _, key := range keys {
		if !strings.HasSuffix(key, ".json") {
			continue
		}
		p, err := r.read(ctx, key)
		if err != nil {
			return nil, r.fail(domain.StoreOpList, fmt.Errorf("object %s: %w", key, err))
		}
		poems = append(poems, p)
	}
	return poems, nil
}

func (r *ObjectRepository) read(ctx context.Context, key string) (domain.Poem, error) {
	body, err := r.storage.Download(ctx, key)
	if err != nil {
		return domain.Poem{}, err
	}
	defer body.Close()

	var fields domain.PoemFields
	if err := json.NewDecoder(body).Decode(&fields); err != nil {
		return domain.Poem{}, fmt.Errorf("failed to decode: %w", err)
	}
	return domain.PoemFromFields(fields)
}

func (r *ObjectRepository) fail(op domain.StoreOp, err error) error {
	return &domain.StoreError{Backend: BackendS3, Op: op, Err: err}
}
