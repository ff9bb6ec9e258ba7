// Package sheets mirrors expense changes into a Google Sheets
// spreadsheet, one row per change event.
package sheets

import (
	"context"

	"spendlog/internal/core"
)

// MirrorWriter appends one row per record change to an external sheet.
type MirrorWriter interface {
	AppendChange(ctx context.Context, op string, rec core.Record) error
}
