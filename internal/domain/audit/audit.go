// Package audit defines the audit trail contract for destructive operations.
// The PostgreSQL implementation lives in infrastructure/storage/postgres.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"dukkan/internal/core/id"
)

// Action is the kind of operation being audited.
type Action string

const (
	ActionDelete    Action = "delete"
	ActionBulkClear Action = "bulk_clear"
	ActionReset     Action = "reset"
)

// Entry is one audit record. Changes holds the deleted/affected payload so
// destructive operations stay reconstructable.
type Entry struct {
	ID         id.ID
	EntityType string
	EntityID   string
	Action     Action
	UserName   string
	Changes    json.RawMessage
	CreatedAt  time.Time
}

// Recorder persists audit entries. Implementations must not fail the
// business operation: callers log and continue on error.
type Recorder interface {
	Record(ctx context.Context, entry Entry) error
}

// Nop is a Recorder that discards entries. Used in tests.
type Nop struct{}

func (Nop) Record(ctx context.Context, entry Entry) error { return nil }
