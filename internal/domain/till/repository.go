package till

import (
	"context"
	"time"

	"dukkan/internal/core/id"
)

// Repository defines persistence for till sessions and their ledger entries.
// Sessions own their entries: bulk operations cascade.
type Repository interface {
	// Session operations

	CreateSession(ctx context.Context, s *Session) error
	UpdateSession(ctx context.Context, s *Session) error

	// GetSession returns the session or NotFound.
	GetSession(ctx context.Context, sessionID id.ID) (*Session, error)

	// GetSessionForUpdate returns the session with a row lock.
	GetSessionForUpdate(ctx context.Context, sessionID id.ID) (*Session, error)

	// FindOpenSession returns the currently open session or NotFound.
	FindOpenSession(ctx context.Context) (*Session, error)

	// FindOpenSessionForUpdate locks the open session row so concurrent
	// appends serialize instead of losing updates.
	FindOpenSessionForUpdate(ctx context.Context) (*Session, error)

	ListSessions(ctx context.Context, filter SessionFilter) ([]Session, error)

	// DeleteSession removes one session (entries deleted separately).
	DeleteSession(ctx context.Context, sessionID id.ID) error

	// Entry operations

	CreateEntry(ctx context.Context, e *Entry) error
	ListEntries(ctx context.Context, filter EntryFilter) ([]Entry, error)
	DeleteEntriesBySession(ctx context.Context, sessionID id.ID) error

	// DeleteAll removes every session and entry. Returns deleted session count.
	DeleteAll(ctx context.Context) (int64, error)
}

// SessionFilter narrows session queries.
type SessionFilter struct {
	Status    *SessionStatus
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
}

// EntryFilter narrows entry queries.
type EntryFilter struct {
	SessionID *id.ID
	Limit     int
}
