package till

import (
	"context"
	"encoding/json"
	"fmt"

	"dukkan/internal/core/apperror"
	"dukkan/internal/core/entity"
	"dukkan/internal/core/id"
	"dukkan/internal/core/tx"
	"dukkan/internal/core/types"
	"dukkan/internal/domain/audit"
	"dukkan/pkg/logger"
)

// PasswordCheck reports whether a password matches the admin credential.
type PasswordCheck func(password string) bool

// Service provides till lifecycle and ledger recording.
type Service struct {
	repo          Repository
	txManager     tx.Manager
	auditor       audit.Recorder
	checkPassword PasswordCheck
}

// NewService creates a till service. checkPassword guards the bulk-clear
// operation.
func NewService(repo Repository, txManager tx.Manager, auditor audit.Recorder, checkPassword PasswordCheck) *Service {
	if auditor == nil {
		auditor = audit.Nop{}
	}
	if checkPassword == nil {
		checkPassword = func(string) bool { return false }
	}
	return &Service{
		repo:          repo,
		txManager:     txManager,
		auditor:       auditor,
		checkPassword: checkPassword,
	}
}

// OpenInput is the request to open the till.
type OpenInput struct {
	OpeningAmount types.Money
	OpenedBy      string
	Notes         string
}

// Open starts a new till session. Fails with Conflict when a session is
// already open; in that case nothing is written.
func (s *Service) Open(ctx context.Context, in OpenInput) (*Session, error) {
	if in.OpeningAmount.IsNegative() {
		return nil, apperror.NewValidation("opening amount must not be negative").
			WithDetail("field", "openingAmount")
	}

	session := NewSession(in.OpeningAmount, in.OpenedBy, in.Notes)

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if existing, err := s.repo.FindOpenSession(ctx); err == nil {
			return apperror.NewConflict("till already open").
				WithDetail("sessionId", existing.ID)
		} else if !apperror.IsNotFound(err) {
			return err
		}

		// The partial unique index on status=open backstops the check above
		// against concurrent opens; CreateSession surfaces it as Conflict.
		if err := s.repo.CreateSession(ctx, session); err != nil {
			return err
		}

		opening := &Entry{
			SessionID:   session.ID,
			Type:        EntryIn,
			Amount:      in.OpeningAmount,
			Category:    CategoryOpeningFloat,
			Description: "till opening float",
			RelatedType: RelatedManual,
			PerformedBy: session.OpenedBy,
		}
		opening.Base = entity.NewBase()
		// Totals were seeded at construction; the opening entry is recorded
		// without replaying ApplyEntry.
		return s.repo.CreateEntry(ctx, opening)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "till opened",
		"session_id", session.ID,
		"opening_amount", session.OpeningAmount,
		"opened_by", session.OpenedBy,
	)
	return session, nil
}

// CloseInput is the request to close a till session.
type CloseInput struct {
	ActualCash types.Money
	ClosedBy   string
	Notes      string
}

// Close freezes the session: actual cash, difference, closing date.
// Terminal; closed sessions are never reopened.
func (s *Service) Close(ctx context.Context, sessionID id.ID, in CloseInput) (*Session, error) {
	if in.ActualCash.IsNegative() {
		return nil, apperror.NewValidation("actual cash must not be negative").
			WithDetail("field", "actualCash")
	}

	var session *Session
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		session, err = s.repo.GetSessionForUpdate(ctx, sessionID)
		if err != nil {
			return err
		}
		if !session.IsOpen() {
			return apperror.NewConflict("till already closed").
				WithDetail("sessionId", sessionID)
		}

		session.CloseWith(in.ActualCash, in.ClosedBy, in.Notes)
		return s.repo.UpdateSession(ctx, session)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "till closed",
		"session_id", session.ID,
		"expected_cash", session.ExpectedCash,
		"actual_cash", in.ActualCash,
		"difference", session.Difference,
	)
	return session, nil
}

// AppendInput is the request to record a cash movement.
type AppendInput struct {
	Type        EntryType
	Amount      types.Money
	Category    EntryCategory
	Description string
	RelatedID   *string
	RelatedType RelatedType
	PerformedBy string
}

// Append records a ledger entry against the open session and updates its
// running totals in the same transaction. Fails with NotFound ("no open
// till") when no session is open.
func (s *Service) Append(ctx context.Context, in AppendInput) (*Entry, error) {
	entry := &Entry{
		Base:        entity.NewBase(),
		Type:        in.Type,
		Amount:      in.Amount,
		Category:    in.Category,
		Description: in.Description,
		RelatedID:   in.RelatedID,
		RelatedType: in.RelatedType,
		PerformedBy: in.PerformedBy,
	}
	if entry.RelatedType == "" {
		entry.RelatedType = RelatedManual
	}
	if entry.PerformedBy == "" {
		entry.PerformedBy = "Admin"
	}
	if err := entry.Validate(ctx); err != nil {
		return nil, err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		session, err := s.repo.FindOpenSessionForUpdate(ctx)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound("open till", nil)
			}
			return err
		}

		entry.SessionID = session.ID
		if err := s.repo.CreateEntry(ctx, entry); err != nil {
			return err
		}

		session.ApplyEntry(entry)
		return s.repo.UpdateSession(ctx, session)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "ledger entry recorded",
		"entry_id", entry.ID,
		"type", entry.Type,
		"amount", entry.Amount,
		"category", entry.Category,
	)
	return entry, nil
}

// AppendBestEffort records a ledger entry if a till is open. When none is,
// it reports skipped=true instead of an error so business events (cash
// sales) are never blocked on till state. Storage failures still surface.
func (s *Service) AppendBestEffort(ctx context.Context, in AppendInput) (entry *Entry, skipped bool, err error) {
	entry, err = s.Append(ctx, in)
	if err != nil {
		if apperror.IsNotFound(err) {
			logger.Warn(ctx, "ledger entry skipped, no open till",
				"category", in.Category,
				"amount", in.Amount,
			)
			return nil, true, nil
		}
		return nil, false, err
	}
	return entry, false, nil
}

// Get returns a session with its entries, newest entry first.
func (s *Service) Get(ctx context.Context, sessionID id.ID) (*Session, []Entry, error) {
	session, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	entries, err := s.repo.ListEntries(ctx, EntryFilter{SessionID: &sessionID})
	if err != nil {
		return nil, nil, fmt.Errorf("list entries: %w", err)
	}
	return session, entries, nil
}

// List returns sessions matching the filter, newest first.
func (s *Service) List(ctx context.Context, filter SessionFilter) ([]Session, error) {
	return s.repo.ListSessions(ctx, filter)
}

// ListEntries returns ledger entries matching the filter, newest first.
func (s *Service) ListEntries(ctx context.Context, filter EntryFilter) ([]Entry, error) {
	return s.repo.ListEntries(ctx, filter)
}

// Delete removes one session together with its entries.
func (s *Service) Delete(ctx context.Context, sessionID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		session, err := s.repo.GetSession(ctx, sessionID)
		if err != nil {
			return err
		}
		if err := s.repo.DeleteEntriesBySession(ctx, sessionID); err != nil {
			return err
		}
		if err := s.repo.DeleteSession(ctx, sessionID); err != nil {
			return err
		}
		s.recordAudit(ctx, audit.ActionDelete, session)
		return nil
	})
}

// Clear deletes every session and entry. Guarded by the admin password;
// intended for test/reset use only.
func (s *Service) Clear(ctx context.Context, password string) (int64, error) {
	if !s.checkPassword(password) {
		return 0, apperror.NewUnauthorized("wrong admin password")
	}

	var deleted int64
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		deleted, err = s.repo.DeleteAll(ctx)
		return err
	})
	if err != nil {
		return 0, err
	}

	s.recordAudit(ctx, audit.ActionBulkClear, map[string]any{"deletedSessions": deleted})
	logger.Warn(ctx, "till history cleared", "deleted_sessions", deleted)
	return deleted, nil
}

func (s *Service) recordAudit(ctx context.Context, action audit.Action, payload any) {
	changes, err := json.Marshal(payload)
	if err != nil {
		return
	}
	entry := audit.Entry{
		EntityType: "cash_register",
		Action:     action,
		Changes:    changes,
	}
	if err := s.auditor.Record(ctx, entry); err != nil {
		logger.Error(ctx, "audit record failed", "action", action, "error", err)
	}
}
