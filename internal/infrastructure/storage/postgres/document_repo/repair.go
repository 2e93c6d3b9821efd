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
	"dukkan/internal/domain/repairs"
	"dukkan/internal/infrastructure/storage/postgres"
)

// Compile-time check that RepairRepo implements repairs.Repository.
var _ repairs.Repository = (*RepairRepo)(nil)

const (
	ticketTable = "doc_service_tickets"
	partTable   = "doc_service_parts"
)

var partColumns = []string{"ticket_id", "product_id", "product_name", "product_code", "quantity", "unit_price"}

// RepairRepo persists service tickets. Used parts live in a child table and
// load with the ticket.
type RepairRepo struct {
	txm        *postgres.TxManager
	ticketCols []string
}

// NewRepairRepo creates a repair repository.
func NewRepairRepo(txm *postgres.TxManager) *RepairRepo {
	return &RepairRepo{
		txm:        txm,
		ticketCols: postgres.ExtractDBColumns[repairs.Ticket](),
	}
}

func (r *RepairRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create inserts a ticket and its parts.
func (r *RepairRepo) Create(ctx context.Context, t *repairs.Ticket) error {
	q := r.builder().
		Insert(ticketTable).
		SetMap(postgres.StructToMap(t))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert %s: %w", ticketTable, err)
	}
	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return apperror.NewStorage(fmt.Errorf("insert %s: %w", ticketTable, err))
	}

	return r.insertParts(ctx, t.ID, t.UsedParts)
}

func (r *RepairRepo) insertParts(ctx context.Context, ticketID id.ID, parts []repairs.UsedPart) error {
	if len(parts) == 0 {
		return nil
	}

	q := r.builder().
		Insert(partTable).
		Columns(partColumns...)
	for _, p := range parts {
		q = q.Values(ticketID, p.ProductID, p.ProductName, p.ProductCode, p.Quantity, p.UnitPrice)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert %s: %w", partTable, err)
	}
	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return apperror.NewStorage(fmt.Errorf("insert %s: %w", partTable, err))
	}
	return nil
}

func (r *RepairRepo) loadParts(ctx context.Context, ticketID id.ID) ([]repairs.UsedPart, error) {
	sql, args, err := r.builder().
		Select("product_id", "product_name", "product_code", "quantity", "unit_price").
		From(partTable).
		Where(squirrel.Eq{"ticket_id": ticketID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select %s: %w", partTable, err)
	}

	parts := []repairs.UsedPart{}
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &parts, sql, args...); err != nil {
		return nil, apperror.NewStorage(fmt.Errorf("select %s: %w", partTable, err))
	}
	return parts, nil
}

// Update writes the ticket row back. Parts are immutable after intake, so
// the child table stays untouched.
func (r *RepairRepo) Update(ctx context.Context, t *repairs.Ticket) error {
	data := postgres.StructToMap(t)
	delete(data, "id")

	q := r.builder().
		Update(ticketTable).
		SetMap(data).
		Where(squirrel.Eq{"id": t.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update %s: %w", ticketTable, err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewStorage(fmt.Errorf("update %s: %w", ticketTable, err))
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("service", t.ID.String())
	}
	return nil
}

// Get returns the ticket with its parts or NotFound.
func (r *RepairRepo) Get(ctx context.Context, ticketID id.ID) (*repairs.Ticket, error) {
	sql, args, err := r.builder().
		Select(r.ticketCols...).
		From(ticketTable).
		Where(squirrel.Eq{"id": ticketID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select %s: %w", ticketTable, err)
	}

	var t repairs.Ticket
	err = pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &t, sql, args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("service", ticketID.String())
		}
		return nil, apperror.NewStorage(fmt.Errorf("select %s: %w", ticketTable, err))
	}

	parts, err := r.loadParts(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	t.UsedParts = parts
	return &t, nil
}

// List returns tickets with their parts, newest first.
func (r *RepairRepo) List(ctx context.Context, limit int) ([]repairs.Ticket, error) {
	q := r.builder().
		Select(r.ticketCols...).
		From(ticketTable).
		OrderBy("received_date DESC")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select %s: %w", ticketTable, err)
	}

	tickets := []repairs.Ticket{}
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &tickets, sql, args...); err != nil {
		return nil, apperror.NewStorage(fmt.Errorf("select %s: %w", ticketTable, err))
	}

	for i := range tickets {
		parts, err := r.loadParts(ctx, tickets[i].ID)
		if err != nil {
			return nil, err
		}
		tickets[i].UsedParts = parts
	}
	return tickets, nil
}

// Delete removes a ticket and its parts.
func (r *RepairRepo) Delete(ctx context.Context, ticketID id.ID) error {
	querier := r.txm.GetQuerier(ctx)

	partSQL, partArgs, err := r.builder().
		Delete(partTable).
		Where(squirrel.Eq{"ticket_id": ticketID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete %s: %w", partTable, err)
	}
	if _, err := querier.Exec(ctx, partSQL, partArgs...); err != nil {
		return apperror.NewStorage(fmt.Errorf("delete %s: %w", partTable, err))
	}

	sql, args, err := r.builder().
		Delete(ticketTable).
		Where(squirrel.Eq{"id": ticketID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete %s: %w", ticketTable, err)
	}

	result, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewStorage(fmt.Errorf("delete %s: %w", ticketTable, err))
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("service", ticketID.String())
	}
	return nil
}
