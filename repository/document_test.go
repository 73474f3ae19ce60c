package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/tnqbao/gau-document-service/entity"
)

// faultyStore fails every Put after the first failAfter writes, simulating
// a backend fault in the middle of a batch.
type faultyStore struct {
	BlobStore
	failAfter int
	writes    int
}

func (s *faultyStore) Put(ctx context.Context, key string, data []byte) error {
	if s.writes >= s.failAfter {
		return unavailable("put "+key, errors.New("backend down"))
	}
	s.writes++
	return s.BlobStore.Put(ctx, key, data)
}

func TestDocumentRoundTrip(t *testing.T) {
	repo := NewDocumentRepository(NewMemoryStore())
	ctx := context.Background()
	col := entity.Collection{"products", "electronics"}

	created, err := repo.Create(ctx, col, "", map[string]interface{}{"name": "Laptop", "price": 999.99})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("Create did not generate an id")
	}
	if created.CreatedAt == "" || created.CreatedAt != created.UpdatedAt {
		t.Errorf("fresh item timestamps: created=%q updated=%q", created.CreatedAt, created.UpdatedAt)
	}

	got, err := repo.Get(ctx, col, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Payload["name"] != "Laptop" || got.Payload["price"] != 999.99 {
		t.Errorf("payload did not round-trip: %v", got.Payload)
	}
}

func TestDocumentGetAbsent(t *testing.T) {
	repo := NewDocumentRepository(NewMemoryStore())

	_, err := repo.Get(context.Background(), entity.Collection{"items"}, "does-not-exist")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMergePreservesUnspecifiedFields(t *testing.T) {
	repo := NewDocumentRepository(NewMemoryStore())
	ctx := context.Background()
	col := entity.Collection{"items"}

	if _, err := repo.Create(ctx, col, "m1", map[string]interface{}{"a": float64(1), "b": float64(2)}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := repo.Update(ctx, col, "m1", map[string]interface{}{"b": float64(3)}, true)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Payload["a"] != float64(1) {
		t.Errorf("merge dropped unspecified field a: %v", updated.Payload)
	}
	if updated.Payload["b"] != float64(3) {
		t.Errorf("merge did not apply new value for b: %v", updated.Payload)
	}
}

func TestReplaceDropsUnspecifiedFields(t *testing.T) {
	repo := NewDocumentRepository(NewMemoryStore())
	ctx := context.Background()
	col := entity.Collection{"items"}

	if _, err := repo.Create(ctx, col, "r1", map[string]interface{}{"a": float64(1), "b": float64(2)}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	replaced, err := repo.Update(ctx, col, "r1", map[string]interface{}{"c": float64(4)}, false)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(replaced.Payload) != 1 || replaced.Payload["c"] != float64(4) {
		t.Errorf("replace kept stale fields: %v", replaced.Payload)
	}
}

func TestCreatedAtImmutable(t *testing.T) {
	repo := NewDocumentRepository(NewMemoryStore())
	ctx := context.Background()
	col := entity.Collection{"items"}

	created, err := repo.Create(ctx, col, "c1", map[string]interface{}{"v": float64(0)})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := repo.Update(ctx, col, "c1", map[string]interface{}{"v": float64(1)}, true); err != nil {
		t.Fatalf("merge: %v", err)
	}
	if _, err := repo.Update(ctx, col, "c1", map[string]interface{}{"v": float64(2)}, false); err != nil {
		t.Fatalf("replace: %v", err)
	}
	// upsert-create on the same id keeps the original created_at too
	if _, err := repo.Create(ctx, col, "c1", map[string]interface{}{"v": float64(3)}); err != nil {
		t.Fatalf("re-create: %v", err)
	}

	final, err := repo.Get(ctx, col, "c1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if final.CreatedAt != created.CreatedAt {
		t.Errorf("created_at changed: %q -> %q", created.CreatedAt, final.CreatedAt)
	}
}

func TestUpdateAbsentItemCreatesIt(t *testing.T) {
	repo := NewDocumentRepository(NewMemoryStore())
	ctx := context.Background()
	col := entity.Collection{"items"}

	item, err := repo.Update(ctx, col, "fresh", map[string]interface{}{"x": float64(1)}, true)
	if err != nil {
		t.Fatalf("Update on absent item: %v", err)
	}
	if item.CreatedAt == "" {
		t.Error("created item has no created_at")
	}

	got, err := repo.Get(ctx, col, "fresh")
	if err != nil {
		t.Fatalf("Get after upsert update: %v", err)
	}
	if got.Payload["x"] != float64(1) {
		t.Errorf("payload = %v", got.Payload)
	}
}

func TestDeleteIdempotent(t *testing.T) {
	repo := NewDocumentRepository(NewMemoryStore())
	ctx := context.Background()
	col := entity.Collection{"items"}

	if err := repo.Delete(ctx, col, "never-existed"); err != nil {
		t.Errorf("deleting an absent item should succeed, got %v", err)
	}
}

func TestDeleteAllEmptiesCollection(t *testing.T) {
	repo := NewDocumentRepository(NewMemoryStore())
	ctx := context.Background()
	col := entity.Collection{"items"}

	for i := 0; i < 3; i++ {
		if _, err := repo.Create(ctx, col, "", map[string]interface{}{"n": float64(i)}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	count, err := repo.DeleteAll(ctx, col)
	if err != nil {
		t.Fatalf("DeleteAll: %v", err)
	}
	if count != 3 {
		t.Errorf("DeleteAll removed %d, want 3", count)
	}

	items, err := repo.List(ctx, col)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("collection still has %d items after DeleteAll", len(items))
	}
}

func TestBulkCreatePartialVisibility(t *testing.T) {
	store := &faultyStore{BlobStore: NewMemoryStore(), failAfter: 2}
	repo := NewDocumentRepository(store)
	ctx := context.Background()
	col := entity.Collection{"items"}

	payloads := []map[string]interface{}{
		{"n": float64(1)}, {"n": float64(2)}, {"n": float64(3)}, {"n": float64(4)},
	}

	created, err := repo.CreateMany(ctx, col, payloads)
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("expected 2 created before the fault, got %d", len(created))
	}

	// the persisted prefix of the batch stays visible
	items, listErr := repo.List(ctx, col)
	if listErr != nil {
		t.Fatalf("List: %v", listErr)
	}
	if len(items) != 2 {
		t.Errorf("expected exactly 2 items visible, got %d", len(items))
	}
}

func TestListSkipsForeignBlobs(t *testing.T) {
	store := NewMemoryStore()
	repo := NewDocumentRepository(store)
	ctx := context.Background()
	col := entity.Collection{"items"}

	if _, err := repo.Create(ctx, col, "ok", map[string]interface{}{"a": float64(1)}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	store.Put(ctx, "items/marker", []byte("not an item"))
	store.Put(ctx, "items/broken.json", []byte("{not json"))

	items, err := repo.List(ctx, col)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 || items[0].ID != "ok" {
		t.Errorf("List = %v, want the single valid item", items)
	}
}
