package storage

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"spendlog/internal/core"
)

func TestRecordStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewRecordStore(NewMemoryKV())

	records := []core.Record{
		{ID: "a", Name: "Coffee", Price: 3.50, Date: "2024-01-01"},
		{ID: "b", Name: "Book", Price: 12, Date: "2024-01-02"},
	}
	if err := store.Save(ctx, records); err != nil {
		t.Fatalf("save: %v", err)
	}
	got := store.Load(ctx)
	if !reflect.DeepEqual(got, records) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, records)
	}
}

func TestRecordStoreLoadMissingKey(t *testing.T) {
	store := NewRecordStore(NewMemoryKV())
	got := store.Load(context.Background())
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty list, got %v", got)
	}
}

func TestRecordStoreLoadMalformedValue(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	if err := kv.Set(ctx, KeyExpenses, "{not json"); err != nil {
		t.Fatalf("set: %v", err)
	}
	store := NewRecordStore(kv)
	got := store.Load(ctx)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty list for malformed value, got %v", got)
	}
}

func TestRecordStoreLoadSchemaMismatch(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	// Valid JSON, wrong shape.
	if err := kv.Set(ctx, KeyExpenses, `{"id":"x"}`); err != nil {
		t.Fatalf("set: %v", err)
	}
	got := NewRecordStore(kv).Load(ctx)
	if len(got) != 0 {
		t.Fatalf("expected empty list for schema mismatch, got %v", got)
	}
}

func TestThemeStoreDefaultsToLight(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	themes := NewThemeStore(kv)

	if got := themes.Theme(ctx); got != ThemeLight {
		t.Fatalf("expected light default, got %q", got)
	}
	if err := themes.SetTheme(ctx, ThemeDark); err != nil {
		t.Fatalf("set theme: %v", err)
	}
	if got := themes.Theme(ctx); got != ThemeDark {
		t.Fatalf("expected dark, got %q", got)
	}
	if err := themes.SetTheme(ctx, "sepia"); err == nil {
		t.Fatalf("expected error for unknown theme")
	}

	// Garbage stored value falls back to light.
	if err := kv.Set(ctx, KeyTheme, "neon"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got := themes.Theme(ctx); got != ThemeLight {
		t.Fatalf("expected light fallback, got %q", got)
	}
}

func TestSQLiteKVRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv, err := NewSQLiteKV(filepath.Join(t.TempDir(), "spendlog.db"))
	if err != nil {
		t.Fatalf("open sqlite kv: %v", err)
	}
	defer kv.Close()

	if _, ok, err := kv.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected absent key, got ok=%v err=%v", ok, err)
	}
	if err := kv.Set(ctx, "k", "v1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Set(ctx, "k", "v2"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, ok, err := kv.Get(ctx, "k")
	if err != nil || !ok || v != "v2" {
		t.Fatalf("get after overwrite: v=%q ok=%v err=%v", v, ok, err)
	}
	if err := kv.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := kv.Get(ctx, "k"); ok {
		t.Fatalf("key still present after delete")
	}

	// Records survive a save+load cycle through sqlite too.
	store := NewRecordStore(kv)
	records := []core.Record{{ID: "a", Name: "Coffee", Price: 3.5, Date: "2024-01-01"}}
	if err := store.Save(ctx, records); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := store.Load(ctx); !reflect.DeepEqual(got, records) {
		t.Fatalf("sqlite round trip mismatch: %+v", got)
	}
}
