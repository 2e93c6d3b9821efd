package postgres

import (
	"context"
	"fmt"

	"dukkan/internal/core/apperror"
)

// businessTables lists every table wiped by an admin reset. Audit history
// and sequences survive on purpose.
var businessTables = []string{
	"reg_till_entries",
	"reg_till_sessions",
	"reg_stock_movements",
	"doc_service_parts",
	"doc_service_tickets",
	"doc_sales",
	"doc_receivables",
	"cat_products",
	"cat_customers",
}

// ResetStore wipes all business data. Test and reset use only.
type ResetStore struct {
	txManager *TxManager
}

// NewResetStore creates a reset store.
func NewResetStore(txManager *TxManager) *ResetStore {
	return &ResetStore{txManager: txManager}
}

// Reset truncates every business table in one transaction.
func (s *ResetStore) Reset(ctx context.Context) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		querier := s.txManager.GetQuerier(ctx)
		for _, table := range businessTables {
			if _, err := querier.Exec(ctx, "TRUNCATE TABLE "+table+" CASCADE"); err != nil {
				return apperror.NewStorage(fmt.Errorf("truncate %s: %w", table, err))
			}
		}
		return nil
	})
}
