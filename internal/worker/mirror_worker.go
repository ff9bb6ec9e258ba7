// Package worker consumes record change events and mirrors them to an
// external sheet.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"spendlog/internal/amqp"
	"spendlog/internal/sheets"
	"spendlog/internal/storage"
)

// MirrorWorker appends one sheet row per record change message. On
// startup it can also reconcile the full persisted snapshot so a sheet
// that missed messages catches up.
type MirrorWorker struct {
	writer sheets.MirrorWriter
	store  *storage.RecordStore
}

func NewMirrorWorker(writer sheets.MirrorWriter, store *storage.RecordStore) *MirrorWorker {
	return &MirrorWorker{
		writer: writer,
		store:  store,
	}
}

// HandleChangeMessage processes a single record change message.
func (w *MirrorWorker) HandleChangeMessage(ctx context.Context, msg *amqp.RecordChangeMessage) error {
	slog.InfoContext(ctx, "Processing record change",
		"op", msg.Op,
		"record_id", msg.Record.ID,
		"timestamp", msg.Timestamp)

	if err := w.writer.AppendChange(ctx, msg.Op, msg.Record); err != nil {
		return fmt.Errorf("mirror %s change for record %s: %w", msg.Op, msg.Record.ID, err)
	}
	return nil
}

// StartupSnapshot writes the current persisted records as a batch of
// add rows. Useful when pointing the worker at a fresh sheet or after
// downtime where messages were lost.
func (w *MirrorWorker) StartupSnapshot(ctx context.Context) error {
	if w.store == nil {
		return nil
	}

	records := w.store.Load(ctx)
	if len(records) == 0 {
		slog.InfoContext(ctx, "No persisted records to mirror on startup")
		return nil
	}

	slog.InfoContext(ctx, "Mirroring persisted snapshot", "count", len(records))

	var errorCount int
	for _, rec := range records {
		if err := w.writer.AppendChange(ctx, "snapshot", rec); err != nil {
			slog.ErrorContext(ctx, "Failed to mirror record", "record_id", rec.ID, "error", err)
			errorCount++
		}
	}

	if errorCount > 0 {
		return fmt.Errorf("startup snapshot: %d of %d records failed", errorCount, len(records))
	}
	return nil
}
