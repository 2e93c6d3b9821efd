package till

import (
	"context"

	"dukkan/internal/core/apperror"
	"dukkan/internal/core/entity"
	"dukkan/internal/core/id"
	"dukkan/internal/core/types"
)

// EntryType is the direction of a cash movement.
type EntryType string

const (
	EntryIn  EntryType = "in"
	EntryOut EntryType = "out"
)

// EntryCategory classifies a ledger entry.
type EntryCategory string

const (
	CategorySale         EntryCategory = "sale"
	CategoryReturn       EntryCategory = "return"
	CategoryExpense      EntryCategory = "expense"
	CategoryOther        EntryCategory = "other"
	CategoryOpeningFloat EntryCategory = "opening-float"
	CategoryCarryover    EntryCategory = "carryover"
)

// RelatedType aliases the shared traceability enum.
type RelatedType = entity.RelatedType

const (
	RelatedTransaction = entity.RelatedTransaction
	RelatedService     = entity.RelatedService
	RelatedManual      = entity.RelatedManual
)

// Entry is one recorded cash movement against an open session.
// Entries are immutable once written; corrections are new offsetting entries.
type Entry struct {
	entity.Base

	SessionID   id.ID         `db:"session_id" json:"cashRegisterId"`
	Type        EntryType     `db:"type" json:"type"`
	Amount      types.Money   `db:"amount" json:"amount"`
	Category    EntryCategory `db:"category" json:"category"`
	Description string        `db:"description" json:"description"`
	RelatedID   *string       `db:"related_id" json:"relatedId"`
	RelatedType RelatedType   `db:"related_type" json:"relatedType"`
	PerformedBy string        `db:"performed_by" json:"performedBy"`
}

// Validate implements entity.Validatable.
func (e *Entry) Validate(ctx context.Context) error {
	if e.Type != EntryIn && e.Type != EntryOut {
		return apperror.NewValidation("entry type must be in or out").
			WithDetail("field", "type").
			WithDetail("value", string(e.Type))
	}
	if !e.Amount.IsPositive() {
		return apperror.NewValidation("amount must be positive").
			WithDetail("field", "amount")
	}
	if !isValidCategory(e.Category) {
		return apperror.NewValidation("invalid category").
			WithDetail("field", "category").
			WithDetail("value", string(e.Category))
	}
	if !isValidRelatedType(e.RelatedType) {
		return apperror.NewValidation("invalid related type").
			WithDetail("field", "relatedType").
			WithDetail("value", string(e.RelatedType))
	}
	return nil
}

func isValidCategory(c EntryCategory) bool {
	switch c {
	case CategorySale, CategoryReturn, CategoryExpense, CategoryOther,
		CategoryOpeningFloat, CategoryCarryover:
		return true
	}
	return false
}

func isValidRelatedType(r RelatedType) bool {
	return r.Valid()
}
