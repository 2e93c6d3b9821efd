// Package till provides the cash-register core: till sessions, ledger
// entries, and the bookkeeping rules that keep their totals consistent.
package till

import (
	"context"
	"time"

	"dukkan/internal/core/apperror"
	"dukkan/internal/core/entity"
	"dukkan/internal/core/types"
)

// SessionStatus is the lifecycle state of a till session.
type SessionStatus string

const (
	StatusOpen   SessionStatus = "open"
	StatusClosed SessionStatus = "closed"
)

// Session is one open/close cycle of the cash drawer.
// At most one session is open at any time.
type Session struct {
	entity.Base

	OpeningDate time.Time  `db:"opening_date" json:"openingDate"`
	ClosingDate *time.Time `db:"closing_date" json:"closingDate"`

	// OpeningAmount is the cash counted when the drawer was opened.
	OpeningAmount types.Money `db:"opening_amount" json:"openingAmount"`

	// ExpectedCash is the running balance: opening + cash-in - cash-out.
	ExpectedCash types.Money `db:"expected_cash" json:"expectedCash"`

	// ActualCash is the cash counted at close; nil while open.
	ActualCash *types.Money `db:"actual_cash" json:"actualCash"`

	// Difference is actualCash - expectedCash, meaningful only when closed.
	Difference types.Money `db:"difference" json:"difference"`

	TotalCashIn  types.Money `db:"total_cash_in" json:"totalCashIn"`
	TotalCashOut types.Money `db:"total_cash_out" json:"totalCashOut"`

	Status   SessionStatus `db:"status" json:"status"`
	OpenedBy string        `db:"opened_by" json:"openedBy"`
	ClosedBy *string       `db:"closed_by" json:"closedBy"`
	Notes    string        `db:"notes" json:"notes"`
}

// NewSession creates an open session seeded with the opening float.
// The totals are seeded directly; the synthetic opening entry does not
// replay through the running-total update.
func NewSession(openingAmount types.Money, openedBy, notes string) *Session {
	if openedBy == "" {
		openedBy = "Admin"
	}
	return &Session{
		Base:          entity.NewBase(),
		OpeningDate:   time.Now().UTC(),
		OpeningAmount: openingAmount,
		ExpectedCash:  openingAmount,
		TotalCashIn:   types.Zero(),
		TotalCashOut:  types.Zero(),
		Difference:    types.Zero(),
		Status:        StatusOpen,
		OpenedBy:      openedBy,
		Notes:         notes,
	}
}

// Validate implements entity.Validatable.
func (s *Session) Validate(ctx context.Context) error {
	if s.OpeningAmount.IsNegative() {
		return apperror.NewValidation("opening amount must not be negative").
			WithDetail("field", "openingAmount")
	}
	if s.Status != StatusOpen && s.Status != StatusClosed {
		return apperror.NewValidation("invalid session status").
			WithDetail("field", "status").
			WithDetail("value", string(s.Status))
	}
	return nil
}

// IsOpen reports whether the session still accepts ledger entries.
func (s *Session) IsOpen() bool {
	return s.Status == StatusOpen
}

// ApplyEntry folds one ledger entry into the running totals.
// Keeps the invariant expectedCash = openingAmount + totalCashIn - totalCashOut.
func (s *Session) ApplyEntry(e *Entry) {
	switch e.Type {
	case EntryIn:
		s.TotalCashIn = s.TotalCashIn.Add(e.Amount)
		s.ExpectedCash = s.ExpectedCash.Add(e.Amount)
	case EntryOut:
		s.TotalCashOut = s.TotalCashOut.Add(e.Amount)
		s.ExpectedCash = s.ExpectedCash.Sub(e.Amount)
	}
	s.Touch()
}

// CloseWith freezes the session. Terminal transition: closed sessions are
// never reopened.
func (s *Session) CloseWith(actualCash types.Money, closedBy, notes string) {
	now := time.Now().UTC()
	if closedBy == "" {
		closedBy = "Admin"
	}
	s.ActualCash = &actualCash
	s.Difference = actualCash.Sub(s.ExpectedCash)
	s.ClosingDate = &now
	s.Status = StatusClosed
	s.ClosedBy = &closedBy
	if notes != "" {
		s.Notes = notes
	}
	s.Touch()
}
