// Package catalog_repo provides PostgreSQL implementations for the catalogs:
// products and customers.
package catalog_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"dukkan/internal/core/apperror"
	"dukkan/internal/core/id"
	"dukkan/internal/domain/inventory"
	"dukkan/internal/infrastructure/storage/postgres"
)

// Compile-time check that ProductRepo implements inventory.ProductRepository.
var _ inventory.ProductRepository = (*ProductRepo)(nil)

const productTable = "cat_products"

// ProductRepo persists the product catalog.
type ProductRepo struct {
	txm     *postgres.TxManager
	columns []string
}

// NewProductRepo creates a product repository.
func NewProductRepo(txm *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		txm:     txm,
		columns: postgres.ExtractDBColumns[inventory.Product](),
	}
}

func (r *ProductRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create inserts a product.
func (r *ProductRepo) Create(ctx context.Context, p *inventory.Product) error {
	q := r.builder().
		Insert(productTable).
		SetMap(postgres.StructToMap(p))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert %s: %w", productTable, err)
	}
	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return apperror.NewStorage(fmt.Errorf("insert %s: %w", productTable, err))
	}
	return nil
}

// Update writes the full product row back.
func (r *ProductRepo) Update(ctx context.Context, p *inventory.Product) error {
	data := postgres.StructToMap(p)
	delete(data, "id")

	q := r.builder().
		Update(productTable).
		SetMap(data).
		Where(squirrel.Eq{"id": p.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update %s: %w", productTable, err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewStorage(fmt.Errorf("update %s: %w", productTable, err))
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("product", p.ID.String())
	}
	return nil
}

func (r *ProductRepo) get(ctx context.Context, productID id.ID, forUpdate bool) (*inventory.Product, error) {
	q := r.builder().
		Select(r.columns...).
		From(productTable).
		Where(squirrel.Eq{"id": productID})
	if forUpdate {
		q = q.Suffix("FOR UPDATE")
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select %s: %w", productTable, err)
	}

	var p inventory.Product
	err = pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &p, sql, args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("product", productID.String())
		}
		return nil, apperror.NewStorage(fmt.Errorf("select %s: %w", productTable, err))
	}
	return &p, nil
}

// Get returns the product or NotFound.
func (r *ProductRepo) Get(ctx context.Context, productID id.ID) (*inventory.Product, error) {
	return r.get(ctx, productID, false)
}

// GetForUpdate returns the product with a row lock.
func (r *ProductRepo) GetForUpdate(ctx context.Context, productID id.ID) (*inventory.Product, error) {
	return r.get(ctx, productID, true)
}

// List returns products matching the filter, by name.
func (r *ProductRepo) List(ctx context.Context, filter inventory.ProductFilter) ([]inventory.Product, error) {
	q := r.builder().
		Select(r.columns...).
		From(productTable).
		OrderBy("name ASC")

	if filter.Category != nil {
		q = q.Where(squirrel.Eq{"category": *filter.Category})
	}
	if filter.LowStock {
		q = q.Where("min_stock > 0 AND stock <= min_stock")
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select %s: %w", productTable, err)
	}

	products := []inventory.Product{}
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &products, sql, args...); err != nil {
		return nil, apperror.NewStorage(fmt.Errorf("select %s: %w", productTable, err))
	}
	return products, nil
}

// Delete removes a product. Its movement history stays.
func (r *ProductRepo) Delete(ctx context.Context, productID id.ID) error {
	sql, args, err := r.builder().
		Delete(productTable).
		Where(squirrel.Eq{"id": productID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete %s: %w", productTable, err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewStorage(fmt.Errorf("delete %s: %w", productTable, err))
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("product", productID.String())
	}
	return nil
}

// Count returns the number of products.
func (r *ProductRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.txm.GetQuerier(ctx).QueryRow(ctx, "SELECT COUNT(*) FROM "+productTable).Scan(&count)
	if err != nil {
		return 0, apperror.NewStorage(fmt.Errorf("count %s: %w", productTable, err))
	}
	return count, nil
}
