package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tnqbao/gau-document-service/entity"
)

// DocumentRepository maps item-level operations onto the blob store. It owns
// id generation, timestamping and merge/replace resolution. Writes are plain
// read-modify-write with no compare-and-swap: concurrent updates to the same
// item race and the later write wins. Callers needing serialization must
// provide it externally.
type DocumentRepository struct {
	store BlobStore
}

func NewDocumentRepository(store BlobStore) *DocumentRepository {
	return &DocumentRepository{store: store}
}

// List returns every item in the collection. Blobs under the prefix that are
// not item records (wrong suffix, malformed JSON) are skipped.
func (r *DocumentRepository) List(ctx context.Context, col entity.Collection) ([]entity.Item, error) {
	objects, err := r.store.List(ctx, col.Prefix())
	if err != nil {
		return nil, err
	}
	items := make([]entity.Item, 0, len(objects))
	for _, obj := range objects {
		if !strings.HasSuffix(obj.Key, ".json") {
			continue
		}
		var item entity.Item
		if err := json.Unmarshal(obj.Data, &item); err != nil {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *DocumentRepository) Get(ctx context.Context, col entity.Collection, id string) (*entity.Item, error) {
	data, err := r.store.Get(ctx, col.ItemKey(id))
	if err != nil {
		return nil, err
	}
	var item entity.Item
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, fmt.Errorf("decode item %s: %w", id, err)
	}
	return &item, nil
}

// Create writes one item. An empty id means the repository generates one.
// A caller-supplied id that already exists is overwritten (upsert), keeping
// the original created_at.
func (r *DocumentRepository) Create(ctx context.Context, col entity.Collection, id string, payload map[string]interface{}) (*entity.Item, error) {
	if id == "" {
		id = uuid.NewString()
	}
	return r.write(ctx, col, id, entity.StripReserved(payload))
}

// CreateMany writes one item per payload, each with a generated id. Writes
// are sequential and independent: a mid-batch fault returns the items
// persisted so far together with the error, and those items stay visible.
func (r *DocumentRepository) CreateMany(ctx context.Context, col entity.Collection, payloads []map[string]interface{}) ([]entity.Item, error) {
	created := make([]entity.Item, 0, len(payloads))
	for _, payload := range payloads {
		item, err := r.Create(ctx, col, "", payload)
		if err != nil {
			return created, err
		}
		created = append(created, *item)
	}
	return created, nil
}

// Update applies the payload to an existing item: a shallow merge when merge
// is true, a full replacement otherwise. An absent item is created. The
// original created_at survives either way.
func (r *DocumentRepository) Update(ctx context.Context, col entity.Collection, id string, payload map[string]interface{}, merge bool) (*entity.Item, error) {
	payload = entity.StripReserved(payload)
	if merge {
		existing, err := r.Get(ctx, col, id)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		if existing != nil {
			merged := make(map[string]interface{}, len(existing.Payload)+len(payload))
			for k, v := range existing.Payload {
				merged[k] = v
			}
			for k, v := range payload {
				merged[k] = v
			}
			payload = merged
		}
	}
	return r.write(ctx, col, id, payload)
}

func (r *DocumentRepository) Delete(ctx context.Context, col entity.Collection, id string) error {
	return r.store.Delete(ctx, col.ItemKey(id))
}

func (r *DocumentRepository) DeleteAll(ctx context.Context, col entity.Collection) (int, error) {
	return r.store.DeleteAll(ctx, col.Prefix())
}

// write stamps metadata and persists the record. created_at is read from the
// prior version when one exists and is never rewritten afterwards.
func (r *DocumentRepository) write(ctx context.Context, col entity.Collection, id string, payload map[string]interface{}) (*entity.Item, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	item := entity.Item{
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,
		Payload:   payload,
	}

	prior, err := r.Get(ctx, col, id)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if prior != nil && prior.CreatedAt != "" {
		item.CreatedAt = prior.CreatedAt
	}

	data, err := json.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("encode item %s: %w", id, err)
	}
	if err := r.store.Put(ctx, col.ItemKey(id), data); err != nil {
		return nil, err
	}
	return &item, nil
}
