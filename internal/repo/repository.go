// Package repo holds the in-memory expense repository: the sole owner of
// the record list. All mutation goes through its operations; persistence
// and other side effects hang off observer notifications.
package repo

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"spendlog/internal/core"
)

// Change operations reported to observers.
const (
	OpAdd    ChangeOp = "add"
	OpUpdate ChangeOp = "update"
	OpRemove ChangeOp = "remove"
)

type (
	ChangeOp string

	// Observer is notified synchronously after every completed mutation with
	// the affected record and a full-list snapshot. Observer failures are
	// the observer's problem: they never roll back the mutation.
	Observer interface {
		RecordsChanged(ctx context.Context, op ChangeOp, rec core.Record, snapshot []core.Record)
	}
)

// DefaultDeleteDelay is how long a record stays pending before the
// deferred removal fires, matching the fade-out transition length.
const DefaultDeleteDelay = 500 * time.Millisecond

// Repository owns the ordered record list. List order is insertion order;
// the derived view never touches it.
type Repository struct {
	mu          sync.Mutex
	records     []core.Record
	pending     []string
	observers   []Observer
	deleteDelay time.Duration
	version     uint64

	newID func() string
}

// New creates a repository seeded with the given records (typically the
// record store's loaded snapshot).
func New(initial []core.Record, deleteDelay time.Duration) *Repository {
	if deleteDelay <= 0 {
		deleteDelay = DefaultDeleteDelay
	}
	return &Repository{
		records:     append([]core.Record(nil), initial...),
		deleteDelay: deleteDelay,
		newID:       uuid.NewString,
	}
}

// Subscribe registers an observer for change notifications.
func (r *Repository) Subscribe(obs Observer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observers = append(r.observers, obs)
}

// Add appends a new record with a fresh identifier and returns that
// identifier. Inputs are assumed validated by the form controller.
func (r *Repository) Add(ctx context.Context, name string, price float64, date string) string {
	r.mu.Lock()
	rec := core.Record{ID: r.newID(), Name: name, Price: price, Date: date}
	r.records = append(r.records, rec)
	r.version++
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	r.notify(ctx, OpAdd, rec, snapshot)
	return rec.ID
}

// Update replaces name, price and date of the record with the given id,
// keeping the identifier. An unknown id is a no-op and reports failure.
func (r *Repository) Update(ctx context.Context, id, name string, price float64, date string) bool {
	r.mu.Lock()
	idx := r.indexLocked(id)
	if idx < 0 {
		r.mu.Unlock()
		return false
	}
	rec := core.Record{ID: id, Name: name, Price: price, Date: date}
	r.records[idx] = rec
	r.version++
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	r.notify(ctx, OpUpdate, rec, snapshot)
	return true
}

// Remove deletes the record with the given id immediately and reports
// whether anything was removed.
func (r *Repository) Remove(ctx context.Context, id string) bool {
	r.mu.Lock()
	idx := r.indexLocked(id)
	if idx < 0 {
		r.mu.Unlock()
		return false
	}
	rec := r.records[idx]
	r.records = append(r.records[:idx], r.records[idx+1:]...)
	r.clearPendingLocked(id)
	r.version++
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	r.notify(ctx, OpRemove, rec, snapshot)
	return true
}

// Delete marks the record pending and schedules its actual removal after
// the configured delay, so the fade-out transition can finish before the
// record leaves the list. A second delete of the same id before the timer
// fires is redundant but harmless; there is no cancellation.
func (r *Repository) Delete(ctx context.Context, id string) {
	r.mu.Lock()
	already := false
	for _, p := range r.pending {
		if p == id {
			already = true
			break
		}
	}
	if !already {
		r.pending = append(r.pending, id)
	}
	r.mu.Unlock()

	// The removal fires after the triggering HTTP request has finished,
	// by which point its context is cancelled. Detach so the observers'
	// persistence and publish still run.
	ctx = context.WithoutCancel(ctx)
	time.AfterFunc(r.deleteDelay, func() {
		if !r.Remove(ctx, id) {
			// Already gone; still clear the pending mark.
			r.mu.Lock()
			r.clearPendingLocked(id)
			r.mu.Unlock()
		}
	})
}

// List returns a snapshot of the current record list in insertion order.
func (r *Repository) List() []core.Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

// Get returns the record with the given id, if present.
func (r *Repository) Get(id string) (core.Record, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if idx := r.indexLocked(id); idx >= 0 {
		return r.records[idx], true
	}
	return core.Record{}, false
}

// Pending returns the identifiers currently awaiting deferred removal.
func (r *Repository) Pending() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.pending...)
}

// Version increases on every completed mutation. Render caches key on it.
func (r *Repository) Version() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.version
}

func (r *Repository) indexLocked(id string) int {
	for i, rec := range r.records {
		if rec.ID == id {
			return i
		}
	}
	return -1
}

func (r *Repository) clearPendingLocked(id string) {
	for i, p := range r.pending {
		if p == id {
			r.pending = append(r.pending[:i], r.pending[i+1:]...)
			return
		}
	}
}

func (r *Repository) snapshotLocked() []core.Record {
	return append([]core.Record(nil), r.records...)
}

func (r *Repository) notify(ctx context.Context, op ChangeOp, rec core.Record, snapshot []core.Record) {
	r.mu.Lock()
	observers := append([]Observer(nil), r.observers...)
	r.mu.Unlock()
	for _, obs := range observers {
		obs.RecordsChanged(ctx, op, rec, snapshot)
	}
}
