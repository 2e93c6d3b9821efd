package catalog_repo

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
	"dukkan/internal/domain/customer"
	"dukkan/internal/infrastructure/storage/postgres"
)

// Compile-time check that CustomerRepo implements customer.Repository.
var _ customer.Repository = (*CustomerRepo)(nil)

const customerTable = "cat_customers"

// CustomerRepo persists the customer catalog. Phone carries a unique index;
// a violation maps to Duplicate.
type CustomerRepo struct {
	txm     *postgres.TxManager
	columns []string
}

// NewCustomerRepo creates a customer repository.
func NewCustomerRepo(txm *postgres.TxManager) *CustomerRepo {
	return &CustomerRepo{
		txm:     txm,
		columns: postgres.ExtractDBColumns[customer.Customer](),
	}
}

func (r *CustomerRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create inserts a customer.
func (r *CustomerRepo) Create(ctx context.Context, c *customer.Customer) error {
	q := r.builder().
		Insert(customerTable).
		SetMap(postgres.StructToMap(c))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert %s: %w", customerTable, err)
	}
	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.NewDuplicate("customer", "phone", c.Phone).WithCause(err)
		}
		return apperror.NewStorage(fmt.Errorf("insert %s: %w", customerTable, err))
	}
	return nil
}

// Update writes the full customer row back.
func (r *CustomerRepo) Update(ctx context.Context, c *customer.Customer) error {
	data := postgres.StructToMap(c)
	delete(data, "id")

	q := r.builder().
		Update(customerTable).
		SetMap(data).
		Where(squirrel.Eq{"id": c.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update %s: %w", customerTable, err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.NewDuplicate("customer", "phone", c.Phone).WithCause(err)
		}
		return apperror.NewStorage(fmt.Errorf("update %s: %w", customerTable, err))
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("customer", c.ID.String())
	}
	return nil
}

func (r *CustomerRepo) getOne(ctx context.Context, pred any, notFoundID any) (*customer.Customer, error) {
	sql, args, err := r.builder().
		Select(r.columns...).
		From(customerTable).
		Where(pred).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select %s: %w", customerTable, err)
	}

	var c customer.Customer
	err = pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &c, sql, args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("customer", notFoundID)
		}
		return nil, apperror.NewStorage(fmt.Errorf("select %s: %w", customerTable, err))
	}
	return &c, nil
}

// Get returns the customer or NotFound.
func (r *CustomerRepo) Get(ctx context.Context, customerID id.ID) (*customer.Customer, error) {
	return r.getOne(ctx, squirrel.Eq{"id": customerID}, customerID.String())
}

// FindByPhone returns the customer with that phone or NotFound.
func (r *CustomerRepo) FindByPhone(ctx context.Context, phone string) (*customer.Customer, error) {
	return r.getOne(ctx, squirrel.Eq{"phone": phone}, phone)
}

// List returns customers, most recently updated first.
func (r *CustomerRepo) List(ctx context.Context, limit int) ([]customer.Customer, error) {
	q := r.builder().
		Select(r.columns...).
		From(customerTable).
		OrderBy("updated_at DESC")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select %s: %w", customerTable, err)
	}

	customers := []customer.Customer{}
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &customers, sql, args...); err != nil {
		return nil, apperror.NewStorage(fmt.Errorf("select %s: %w", customerTable, err))
	}
	return customers, nil
}

// Delete removes a customer.
func (r *CustomerRepo) Delete(ctx context.Context, customerID id.ID) error {
	sql, args, err := r.builder().
		Delete(customerTable).
		Where(squirrel.Eq{"id": customerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete %s: %w", customerTable, err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewStorage(fmt.Errorf("delete %s: %w", customerTable, err))
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("customer", customerID.String())
	}
	return nil
}
