package sheets

import (
	"context"
	"sync"

	"spendlog/internal/core"
)

// MemoryWriter collects change rows in memory. It backs tests and local
// runs without Google credentials.
type MemoryWriter struct {
	mu   sync.Mutex
	rows []ChangeRow
	err  error
}

// ChangeRow is one recorded change.
type ChangeRow struct {
	Op     string
	Record core.Record
}

var _ MirrorWriter = (*MemoryWriter)(nil)

func NewMemoryWriter() *MemoryWriter {
	return &MemoryWriter{}
}

// Fail makes every subsequent AppendChange return err.
func (m *MemoryWriter) Fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MemoryWriter) AppendChange(ctx context.Context, op string, rec core.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.rows = append(m.rows, ChangeRow{Op: op, Record: rec})
	return nil
}

// Rows returns a copy of the recorded changes.
func (m *MemoryWriter) Rows() []ChangeRow {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ChangeRow, len(m.rows))
	copy(out, m.rows)
	return out
}
