package document_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"dukkan/internal/core/apperror"
	"dukkan/internal/core/id"
	"dukkan/internal/domain/receivables"
	"dukkan/internal/infrastructure/storage/postgres"
)

// Compile-time check that ReceivableRepo implements receivables.Repository.
var _ receivables.Repository = (*ReceivableRepo)(nil)

const receivableTable = "doc_receivables"

// ReceivableRepo persists receivables.
type ReceivableRepo struct {
	txm     *postgres.TxManager
	columns []string
}

// NewReceivableRepo creates a receivable repository.
func NewReceivableRepo(txm *postgres.TxManager) *ReceivableRepo {
	return &ReceivableRepo{
		txm:     txm,
		columns: postgres.ExtractDBColumns[receivables.Receivable](),
	}
}

func (r *ReceivableRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create inserts a receivable.
func (r *ReceivableRepo) Create(ctx context.Context, rec *receivables.Receivable) error {
	q := r.builder().
		Insert(receivableTable).
		SetMap(postgres.StructToMap(rec))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert %s: %w", receivableTable, err)
	}
	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return apperror.NewStorage(fmt.Errorf("insert %s: %w", receivableTable, err))
	}
	return nil
}

// Update writes the full receivable row back.
func (r *ReceivableRepo) Update(ctx context.Context, rec *receivables.Receivable) error {
	data := postgres.StructToMap(rec)
	delete(data, "id")

	q := r.builder().
		Update(receivableTable).
		SetMap(data).
		Where(squirrel.Eq{"id": rec.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update %s: %w", receivableTable, err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewStorage(fmt.Errorf("update %s: %w", receivableTable, err))
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("receivable", rec.ID.String())
	}
	return nil
}

// Get returns the receivable or NotFound.
func (r *ReceivableRepo) Get(ctx context.Context, receivableID id.ID) (*receivables.Receivable, error) {
	sql, args, err := r.builder().
		Select(r.columns...).
		From(receivableTable).
		Where(squirrel.Eq{"id": receivableID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select %s: %w", receivableTable, err)
	}

	var rec receivables.Receivable
	err = pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &rec, sql, args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("receivable", receivableID.String())
		}
		return nil, apperror.NewStorage(fmt.Errorf("select %s: %w", receivableTable, err))
	}
	return &rec, nil
}

// List returns receivables, newest first.
func (r *ReceivableRepo) List(ctx context.Context, limit int) ([]receivables.Receivable, error) {
	q := r.builder().
		Select(r.columns...).
		From(receivableTable).
		OrderBy("created_at DESC")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select %s: %w", receivableTable, err)
	}

	result := []receivables.Receivable{}
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &result, sql, args...); err != nil {
		return nil, apperror.NewStorage(fmt.Errorf("select %s: %w", receivableTable, err))
	}
	return result, nil
}

// Delete removes a receivable.
func (r *ReceivableRepo) Delete(ctx context.Context, receivableID id.ID) error {
	sql, args, err := r.builder().
		Delete(receivableTable).
		Where(squirrel.Eq{"id": receivableID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete %s: %w", receivableTable, err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewStorage(fmt.Errorf("delete %s: %w", receivableTable, err))
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("receivable", receivableID.String())
	}
	return nil
}
