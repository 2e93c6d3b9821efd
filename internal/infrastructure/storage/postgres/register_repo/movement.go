package register_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"dukkan/internal/core/apperror"
	"dukkan/internal/domain/inventory"
	"dukkan/internal/infrastructure/storage/postgres"
)

// Compile-time check that MovementRepo implements inventory.MovementRepository.
var _ inventory.MovementRepository = (*MovementRepo)(nil)

const movementTable = "reg_stock_movements"

// MovementRepo persists the append-only stock movement history. No update
// or delete paths exist here on purpose.
type MovementRepo struct {
	txm     *postgres.TxManager
	batch   *postgres.BatchInserter
	columns []string
}

// NewMovementRepo creates a movement repository.
func NewMovementRepo(txm *postgres.TxManager) *MovementRepo {
	return &MovementRepo{
		txm:     txm,
		batch:   postgres.NewBatchInserter(txm),
		columns: postgres.ExtractDBColumns[inventory.Movement](),
	}
}

func (r *MovementRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create inserts one movement.
func (r *MovementRepo) Create(ctx context.Context, m *inventory.Movement) error {
	q := r.builder().
		Insert(movementTable).
		SetMap(postgres.StructToMap(m))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert %s: %w", movementTable, err)
	}
	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return apperror.NewStorage(fmt.Errorf("insert %s: %w", movementTable, err))
	}
	return nil
}

// CreateBatch inserts many movements over COPY. Requires an active
// transaction; batch writes only happen inside multi-part operations.
func (r *MovementRepo) CreateBatch(ctx context.Context, movements []inventory.Movement) error {
	if len(movements) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(movements))
	for i := range movements {
		data := postgres.StructToMap(&movements[i])
		row := make([]any, len(r.columns))
		for j, col := range r.columns {
			row[j] = data[col]
		}
		rows = append(rows, row)
	}

	if _, err := r.batch.CopyFromSlice(ctx, movementTable, r.columns, rows); err != nil {
		return apperror.NewStorage(fmt.Errorf("copy %s: %w", movementTable, err))
	}
	return nil
}

// List returns movements matching the filter, newest first.
func (r *MovementRepo) List(ctx context.Context, filter inventory.MovementFilter) ([]inventory.Movement, error) {
	q := r.builder().
		Select(r.columns...).
		From(movementTable).
		OrderBy("created_at DESC")

	if filter.ProductID != nil {
		q = q.Where(squirrel.Eq{"product_id": *filter.ProductID})
	}
	if filter.Type != nil {
		q = q.Where(squirrel.Eq{"type": *filter.Type})
	}
	if filter.FromDate != nil {
		q = q.Where(squirrel.GtOrEq{"created_at": *filter.FromDate})
	}
	if filter.ToDate != nil {
		q = q.Where(squirrel.LtOrEq{"created_at": *filter.ToDate})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select %s: %w", movementTable, err)
	}

	movements := []inventory.Movement{}
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &movements, sql, args...); err != nil {
		return nil, apperror.NewStorage(fmt.Errorf("select %s: %w", movementTable, err))
	}
	return movements, nil
}
