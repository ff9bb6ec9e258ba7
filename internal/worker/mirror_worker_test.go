package worker

import (
	"context"
	"errors"
	"testing"

	"spendlog/internal/amqp"
	"spendlog/internal/core"
	"spendlog/internal/sheets"
	"spendlog/internal/storage"
)

func TestHandleChangeMessageAppendsRow(t *testing.T) {
	writer := sheets.NewMemoryWriter()
	w := NewMirrorWorker(writer, nil)

	rec := core.Record{ID: "a1", Name: "Coffee", Price: 3.50, Date: "2024-06-01"}
	msg := amqp.NewRecordChangeMessage("add", rec)

	if err := w.HandleChangeMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleChangeMessage: %v", err)
	}

	rows := writer.Rows()
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Op != "add" || rows[0].Record.ID != "a1" {
		t.Errorf("unexpected row: %+v", rows[0])
	}
}

func TestHandleChangeMessagePropagatesWriterError(t *testing.T) {
	writer := sheets.NewMemoryWriter()
	writer.Fail(errors.New("quota exceeded"))
	w := NewMirrorWorker(writer, nil)

	msg := amqp.NewRecordChangeMessage("remove", core.Record{ID: "a1"})
	if err := w.HandleChangeMessage(context.Background(), msg); err == nil {
		t.Fatal("expected error from failing writer")
	}
}

func TestStartupSnapshotMirrorsPersistedRecords(t *testing.T) {
	kv := storage.NewMemoryKV()
	store := storage.NewRecordStore(kv)
	ctx := context.Background()

	records := []core.Record{
		{ID: "a1", Name: "Coffee", Price: 3.50, Date: "2024-06-01"},
		{ID: "a2", Name: "Book", Price: 12.00, Date: "2024-06-02"},
	}
	if err := store.Save(ctx, records); err != nil {
		t.Fatalf("Save: %v", err)
	}

	writer := sheets.NewMemoryWriter()
	w := NewMirrorWorker(writer, store)

	if err := w.StartupSnapshot(ctx); err != nil {
		t.Fatalf("StartupSnapshot: %v", err)
	}

	rows := writer.Rows()
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	for _, row := range rows {
		if row.Op != "snapshot" {
			t.Errorf("expected snapshot op, got %q", row.Op)
		}
	}
}

func TestStartupSnapshotEmptyStore(t *testing.T) {
	writer := sheets.NewMemoryWriter()
	w := NewMirrorWorker(writer, storage.NewRecordStore(storage.NewMemoryKV()))

	if err := w.StartupSnapshot(context.Background()); err != nil {
		t.Fatalf("StartupSnapshot on empty store: %v", err)
	}
	if len(writer.Rows()) != 0 {
		t.Error("expected no rows for empty store")
	}
}
