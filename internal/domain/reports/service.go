package reports

import (
	"context"
	"time"

	"dukkan/internal/core/apperror"
	"dukkan/internal/core/id"
	"dukkan/internal/core/tx"
	"dukkan/internal/domain/inventory"
	"dukkan/internal/domain/sales"
	"dukkan/internal/domain/till"
)

// Service assembles reports from the till, inventory and sales stores.
type Service struct {
	tills     till.Repository
	products  inventory.ProductRepository
	sales     sales.Repository
	txManager tx.ReadOnlyManager
}

// NewService creates a reports service.
func NewService(tills till.Repository, products inventory.ProductRepository, salesRepo sales.Repository, txManager tx.ReadOnlyManager) *Service {
	return &Service{
		tills:     tills,
		products:  products,
		sales:     salesRepo,
		txManager: txManager,
	}
}

// TillReport recomputes the till report for the window on every call.
func (s *Service) TillReport(ctx context.Context, period Period, start, end time.Time) (*TillReport, error) {
	from, to := ResolveWindow(period, start, end, time.Now())

	var report *TillReport
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		sessions, err := s.tills.ListSessions(ctx, till.SessionFilter{
			StartDate: &from,
			EndDate:   &to,
		})
		if err != nil {
			return err
		}

		entries := make(map[id.ID][]till.Entry, len(sessions))
		for _, session := range sessions {
			sessionID := session.ID
			rows, err := s.tills.ListEntries(ctx, till.EntryFilter{SessionID: &sessionID})
			if err != nil {
				return err
			}
			entries[sessionID] = rows
		}

		report = BuildTillReport(period, from, to, sessions, entries)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// Dashboard returns the landing-page summary.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	var dash Dashboard
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		count, err := s.products.Count(ctx)
		if err != nil {
			return err
		}
		dash.ProductCount = count

		low, err := s.products.List(ctx, inventory.ProductFilter{LowStock: true})
		if err != nil {
			return err
		}
		dash.LowStock = low

		salesCount, revenue, err := s.sales.Totals(ctx)
		if err != nil {
			return err
		}
		dash.SalesCount = salesCount
		dash.SalesRevenue = revenue

		open, err := s.tills.FindOpenSession(ctx)
		switch {
		case err == nil:
			dash.OpenTill = open
		case apperror.IsNotFound(err):
			dash.OpenTill = nil
		default:
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dash, nil
}
