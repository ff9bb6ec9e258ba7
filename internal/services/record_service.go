// Package services wires repository change notifications to their side
// effects: snapshot persistence and optional AMQP event publishing.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"spendlog/internal/amqp"
	"spendlog/internal/core"
	"spendlog/internal/repo"
	"spendlog/internal/storage"
)

// RecordService is the repository observer. Every mutation persists a
// full-list snapshot synchronously; when an AMQP client is configured the
// change is also published for the mirror worker. Neither side effect can
// fail the mutation: the in-memory repository stays the source of truth.
type RecordService struct {
	store      *storage.RecordStore
	amqpClient *amqp.Client
}

var _ repo.Observer = (*RecordService)(nil)

func NewRecordService(store *storage.RecordStore, amqpClient *amqp.Client) *RecordService {
	return &RecordService{
		store:      store,
		amqpClient: amqpClient,
	}
}

// RecordsChanged implements repo.Observer.
func (s *RecordService) RecordsChanged(ctx context.Context, op repo.ChangeOp, rec core.Record, snapshot []core.Record) {
	if s.store != nil {
		if err := s.store.Save(ctx, snapshot); err != nil {
			// Prior persisted state stays as it was; the session continues
			// on in-memory data.
			slog.ErrorContext(ctx, "Failed to persist expense snapshot",
				"op", op, "record_id", rec.ID, "error", err)
		}
	}

	if s.amqpClient == nil {
		return
	}
	msg := amqp.NewRecordChangeMessage(string(op), rec)
	if err := s.amqpClient.PublishRecordChange(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish record change",
			"op", op, "record_id", rec.ID, "error", err)
	}
}

// Close closes the AMQP connection when one is configured.
func (s *RecordService) Close() error {
	if s.amqpClient == nil {
		return nil
	}
	if err := s.amqpClient.Close(); err != nil {
		return fmt.Errorf("close amqp client: %w", err)
	}
	return nil
}
