package services

import (
	"context"
	"testing"

	"spendlog/internal/core"
	"spendlog/internal/repo"
	"spendlog/internal/storage"
)

func TestRecordServicePersistsSnapshots(t *testing.T) {
	kv := storage.NewMemoryKV()
	store := storage.NewRecordStore(kv)
	svc := NewRecordService(store, nil)

	r := repo.New(nil, repo.DefaultDeleteDelay)
	r.Subscribe(svc)

	ctx := context.Background()
	id := r.Add(ctx, "Coffee", 3.50, "2024-06-01")

	loaded := store.Load(ctx)
	if len(loaded) != 1 {
		t.Fatalf("expected 1 persisted record, got %d", len(loaded))
	}
	if loaded[0].ID != id || loaded[0].Name != "Coffee" {
		t.Errorf("persisted record mismatch: %+v", loaded[0])
	}
}

func TestRecordServicePersistsRemovals(t *testing.T) {
	kv := storage.NewMemoryKV()
	store := storage.NewRecordStore(kv)
	svc := NewRecordService(store, nil)

	r := repo.New(nil, repo.DefaultDeleteDelay)
	r.Subscribe(svc)

	ctx := context.Background()
	id := r.Add(ctx, "Book", 12.00, "2024-06-02")
	if !r.Remove(ctx, id) {
		t.Fatal("Remove returned false")
	}

	if loaded := store.Load(ctx); len(loaded) != 0 {
		t.Errorf("expected empty snapshot after removal, got %d records", len(loaded))
	}
}

func TestRecordServiceNilStoreAndClient(t *testing.T) {
	svc := NewRecordService(nil, nil)

	// Must be a safe no-op.
	svc.RecordsChanged(context.Background(), repo.OpAdd, core.Record{ID: "x"}, nil)

	if err := svc.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
