package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"spendlog/internal/core"
)

// Keys in the KV store. The layout mirrors the persisted state of the
// original browser app: a JSON record array and a theme string.
const (
	KeyExpenses = "expenses"
	KeyTheme    = "theme"
)

// Theme values persisted under KeyTheme.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// RecordStore persists full-list snapshots of expense records under a
// fixed key. It has no notion of individual records: the repository owns
// the list, the store only serializes it.
type RecordStore struct {
	kv KV
}

func NewRecordStore(kv KV) *RecordStore {
	return &RecordStore{kv: kv}
}

// Load reads and parses the stored record list. Any failure (missing key,
// unreadable store, malformed JSON) degrades to an empty list with a
// logged diagnostic; it never propagates to the caller.
func (s *RecordStore) Load(ctx context.Context) []core.Record {
	raw, ok, err := s.kv.Get(ctx, KeyExpenses)
	if err != nil {
		slog.WarnContext(ctx, "Could not read stored expenses, starting empty",
			"key", KeyExpenses, "error", err)
		return []core.Record{}
	}
	if !ok || raw == "" {
		return []core.Record{}
	}

	var records []core.Record
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		slog.WarnContext(ctx, "Could not parse stored expenses, starting empty",
			"key", KeyExpenses, "error", err)
		return []core.Record{}
	}
	if records == nil {
		records = []core.Record{}
	}
	return records
}

// Save serializes the full list and writes it under the expenses key.
// A write failure leaves the previously persisted state in place; the
// in-memory repository stays authoritative either way.
func (s *RecordStore) Save(ctx context.Context, records []core.Record) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal expenses: %w", err)
	}
	if err := s.kv.Set(ctx, KeyExpenses, string(data)); err != nil {
		return fmt.Errorf("save expenses: %w", err)
	}
	return nil
}

// ThemeStore persists the UI theme preference under its own key.
type ThemeStore struct {
	kv KV
}

func NewThemeStore(kv KV) *ThemeStore {
	return &ThemeStore{kv: kv}
}

// Theme returns the stored theme, defaulting to light when absent or
// unrecognized.
func (s *ThemeStore) Theme(ctx context.Context) string {
	raw, ok, err := s.kv.Get(ctx, KeyTheme)
	if err != nil {
		slog.WarnContext(ctx, "Could not read stored theme", "error", err)
		return ThemeLight
	}
	if !ok || raw != ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

func (s *ThemeStore) SetTheme(ctx context.Context, theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return fmt.Errorf("unknown theme %q", theme)
	}
	if err := s.kv.Set(ctx, KeyTheme, theme); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}
