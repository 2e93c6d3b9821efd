// Package register_repo provides PostgreSQL implementations for the running
// registers: till sessions with their ledger entries, and stock movements.
package register_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"dukkan/internal/core/apperror"
	"dukkan/internal/core/id"
	"dukkan/internal/domain/till"
	"dukkan/internal/infrastructure/storage/postgres"
)

// Compile-time check that TillRepo implements till.Repository.
var _ till.Repository = (*TillRepo)(nil)

const (
	tillTable  = "reg_till_sessions"
	entryTable = "reg_till_entries"
)

// TillRepo persists till sessions and their ledger entries.
// A partial unique index on status='open' backstops the single-open-till
// invariant against concurrent opens that both pass the service check.
type TillRepo struct {
	txm         *postgres.TxManager
	sessionCols []string
	entryCols   []string
}

// NewTillRepo creates a till repository.
func NewTillRepo(txm *postgres.TxManager) *TillRepo {
	return &TillRepo{
		txm:         txm,
		sessionCols: postgres.ExtractDBColumns[till.Session](),
		entryCols:   postgres.ExtractDBColumns[till.Entry](),
	}
}

func (r *TillRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// CreateSession inserts a session. A unique-violation on the open-status
// index maps to Conflict so racing opens fail cleanly.
func (r *TillRepo) CreateSession(ctx context.Context, s *till.Session) error {
	q := r.builder().
		Insert(tillTable).
		SetMap(postgres.StructToMap(s))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert %s: %w", tillTable, err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.NewConflict("till already open").WithCause(err)
		}
		return apperror.NewStorage(fmt.Errorf("insert %s: %w", tillTable, err))
	}
	return nil
}

// UpdateSession writes the full session row back.
func (r *TillRepo) UpdateSession(ctx context.Context, s *till.Session) error {
	data := postgres.StructToMap(s)
	delete(data, "id")

	q := r.builder().
		Update(tillTable).
		SetMap(data).
		Where(squirrel.Eq{"id": s.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update %s: %w", tillTable, err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewStorage(fmt.Errorf("update %s: %w", tillTable, err))
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("cash register", s.ID.String())
	}
	return nil
}

func (r *TillRepo) getSession(ctx context.Context, q squirrel.SelectBuilder) (*till.Session, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select %s: %w", tillTable, err)
	}

	var s till.Session
	err = pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &s, sql, args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("cash register", nil)
		}
		return nil, apperror.NewStorage(fmt.Errorf("select %s: %w", tillTable, err))
	}
	return &s, nil
}

// GetSession returns the session or NotFound.
func (r *TillRepo) GetSession(ctx context.Context, sessionID id.ID) (*till.Session, error) {
	q := r.builder().
		Select(r.sessionCols...).
		From(tillTable).
		Where(squirrel.Eq{"id": sessionID})
	s, err := r.getSession(ctx, q)
	if apperror.IsNotFound(err) {
		return nil, apperror.NewNotFound("cash register", sessionID.String())
	}
	return s, err
}

// GetSessionForUpdate returns the session with a row lock.
func (r *TillRepo) GetSessionForUpdate(ctx context.Context, sessionID id.ID) (*till.Session, error) {
	q := r.builder().
		Select(r.sessionCols...).
		From(tillTable).
		Where(squirrel.Eq{"id": sessionID}).
		Suffix("FOR UPDATE")
	s, err := r.getSession(ctx, q)
	if apperror.IsNotFound(err) {
		return nil, apperror.NewNotFound("cash register", sessionID.String())
	}
	return s, err
}

// FindOpenSession returns the currently open session or NotFound.
func (r *TillRepo) FindOpenSession(ctx context.Context) (*till.Session, error) {
	q := r.builder().
		Select(r.sessionCols...).
		From(tillTable).
		Where(squirrel.Eq{"status": till.StatusOpen}).
		Limit(1)
	s, err := r.getSession(ctx, q)
	if apperror.IsNotFound(err) {
		return nil, apperror.NewNotFound("open till", nil)
	}
	return s, err
}

// FindOpenSessionForUpdate locks the open session row so concurrent appends
// serialize on it.
func (r *TillRepo) FindOpenSessionForUpdate(ctx context.Context) (*till.Session, error) {
	q := r.builder().
		Select(r.sessionCols...).
		From(tillTable).
		Where(squirrel.Eq{"status": till.StatusOpen}).
		Limit(1).
		Suffix("FOR UPDATE")
	s, err := r.getSession(ctx, q)
	if apperror.IsNotFound(err) {
		return nil, apperror.NewNotFound("open till", nil)
	}
	return s, err
}

// ListSessions returns sessions matching the filter, newest opening first.
func (r *TillRepo) ListSessions(ctx context.Context, filter till.SessionFilter) ([]till.Session, error) {
	q := r.builder().
		Select(r.sessionCols...).
		From(tillTable).
		OrderBy("opening_date DESC")

	if filter.Status != nil {
		q = q.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.StartDate != nil {
		q = q.Where(squirrel.GtOrEq{"opening_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		q = q.Where(squirrel.LtOrEq{"opening_date": *filter.EndDate})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select %s: %w", tillTable, err)
	}

	sessions := []till.Session{}
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &sessions, sql, args...); err != nil {
		return nil, apperror.NewStorage(fmt.Errorf("select %s: %w", tillTable, err))
	}
	return sessions, nil
}

// DeleteSession removes one session.
func (r *TillRepo) DeleteSession(ctx context.Context, sessionID id.ID) error {
	sql, args, err := r.builder().
		Delete(tillTable).
		Where(squirrel.Eq{"id": sessionID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete %s: %w", tillTable, err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewStorage(fmt.Errorf("delete %s: %w", tillTable, err))
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("cash register", sessionID.String())
	}
	return nil
}

// CreateEntry inserts a ledger entry.
func (r *TillRepo) CreateEntry(ctx context.Context, e *till.Entry) error {
	q := r.builder().
		Insert(entryTable).
		SetMap(postgres.StructToMap(e))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert %s: %w", entryTable, err)
	}
	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return apperror.NewStorage(fmt.Errorf("insert %s: %w", entryTable, err))
	}
	return nil
}

// ListEntries returns entries matching the filter, newest first.
func (r *TillRepo) ListEntries(ctx context.Context, filter till.EntryFilter) ([]till.Entry, error) {
	q := r.builder().
		Select(r.entryCols...).
		From(entryTable).
		OrderBy("created_at DESC")

	if filter.SessionID != nil {
		q = q.Where(squirrel.Eq{"session_id": *filter.SessionID})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select %s: %w", entryTable, err)
	}

	entries := []till.Entry{}
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &entries, sql, args...); err != nil {
		return nil, apperror.NewStorage(fmt.Errorf("select %s: %w", entryTable, err))
	}
	return entries, nil
}

// DeleteEntriesBySession removes all entries of one session.
func (r *TillRepo) DeleteEntriesBySession(ctx context.Context, sessionID id.ID) error {
	sql, args, err := r.builder().
		Delete(entryTable).
		Where(squirrel.Eq{"session_id": sessionID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete %s: %w", entryTable, err)
	}
	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return apperror.NewStorage(fmt.Errorf("delete %s: %w", entryTable, err))
	}
	return nil
}

// DeleteAll removes every session and entry, returning the session count.
func (r *TillRepo) DeleteAll(ctx context.Context) (int64, error) {
	querier := r.txm.GetQuerier(ctx)

	if _, err := querier.Exec(ctx, "DELETE FROM "+entryTable); err != nil {
		return 0, apperror.NewStorage(fmt.Errorf("delete %s: %w", entryTable, err))
	}
	result, err := querier.Exec(ctx, "DELETE FROM "+tillTable)
	if err != nil {
		return 0, apperror.NewStorage(fmt.Errorf("delete %s: %w", tillTable, err))
	}
	return result.RowsAffected(), nil
}
