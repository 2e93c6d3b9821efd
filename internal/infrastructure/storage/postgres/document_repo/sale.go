// Package document_repo provides PostgreSQL implementations for the business
// documents: sales, service tickets and receivables.
package document_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"dukkan/internal/core/apperror"
	"dukkan/internal/core/id"
	"dukkan/internal/core/types"
	"dukkan/internal/domain/sales"
	"dukkan/internal/infrastructure/storage/postgres"
)

// Compile-time check that SaleRepo implements sales.Repository.
var _ sales.Repository = (*SaleRepo)(nil)

const saleTable = "doc_sales"

// SaleRepo persists sale records.
type SaleRepo struct {
	txm     *postgres.TxManager
	columns []string
}

// NewSaleRepo creates a sale repository.
func NewSaleRepo(txm *postgres.TxManager) *SaleRepo {
	return &SaleRepo{
		txm:     txm,
		columns: postgres.ExtractDBColumns[sales.Sale](),
	}
}

func (r *SaleRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create inserts a sale.
func (r *SaleRepo) Create(ctx context.Context, sale *sales.Sale) error {
	q := r.builder().
		Insert(saleTable).
		SetMap(postgres.StructToMap(sale))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert %s: %w", saleTable, err)
	}
	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return apperror.NewStorage(fmt.Errorf("insert %s: %w", saleTable, err))
	}
	return nil
}

// Get returns the sale or NotFound.
func (r *SaleRepo) Get(ctx context.Context, saleID id.ID) (*sales.Sale, error) {
	sql, args, err := r.builder().
		Select(r.columns...).
		From(saleTable).
		Where(squirrel.Eq{"id": saleID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select %s: %w", saleTable, err)
	}

	var sale sales.Sale
	err = pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &sale, sql, args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("transaction", saleID.String())
		}
		return nil, apperror.NewStorage(fmt.Errorf("select %s: %w", saleTable, err))
	}
	return &sale, nil
}

// GetMany returns the sales matching the given ids. Missing ids are simply
// absent from the result.
func (r *SaleRepo) GetMany(ctx context.Context, ids []id.ID) ([]sales.Sale, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	sql, args, err := r.builder().
		Select(r.columns...).
		From(saleTable).
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select %s: %w", saleTable, err)
	}

	result := []sales.Sale{}
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &result, sql, args...); err != nil {
		return nil, apperror.NewStorage(fmt.Errorf("select %s: %w", saleTable, err))
	}
	return result, nil
}

// List returns sales, newest first.
func (r *SaleRepo) List(ctx context.Context, limit int) ([]sales.Sale, error) {
	q := r.builder().
		Select(r.columns...).
		From(saleTable).
		OrderBy("created_at DESC")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select %s: %w", saleTable, err)
	}

	result := []sales.Sale{}
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &result, sql, args...); err != nil {
		return nil, apperror.NewStorage(fmt.Errorf("select %s: %w", saleTable, err))
	}
	return result, nil
}

// Delete removes the given sales and returns how many rows went away.
func (r *SaleRepo) Delete(ctx context.Context, ids []id.ID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	sql, args, err := r.builder().
		Delete(saleTable).
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete %s: %w", saleTable, err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, apperror.NewStorage(fmt.Errorf("delete %s: %w", saleTable, err))
	}
	return result.RowsAffected(), nil
}

// Totals returns sale count and net revenue (sales minus returns).
func (r *SaleRepo) Totals(ctx context.Context) (int64, types.Money, error) {
	sql := `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN type = 'return' THEN -total_price ELSE total_price END), 0)
		FROM ` + saleTable + `
	`

	var count int64
	var revenue decimal.Decimal
	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql).Scan(&count, &revenue); err != nil {
		return 0, types.Zero(), apperror.NewStorage(fmt.Errorf("totals %s: %w", saleTable, err))
	}
	return count, revenue, nil
}
