package dto

import (
	"github.com/shopspring/decimal"

	"dukkan/internal/domain/till"
)

// CreateEntryRequest is the request body for appending a ledger entry.
type CreateEntryRequest struct {
	Type        till.EntryType     `json:"type" binding:"required"`
	Amount      decimal.Decimal    `json:"amount" binding:"required"`
	Category    till.EntryCategory `json:"category" binding:"required"`
	Description string             `json:"description"`
	RelatedID   *string            `json:"relatedId"`
	RelatedType till.RelatedType   `json:"relatedType"`
	PerformedBy string             `json:"performedBy"`
}

// ToInput converts the DTO to a till append input.
func (r *CreateEntryRequest) ToInput() till.AppendInput {
	return till.AppendInput{
		Type:        r.Type,
		Amount:      r.Amount,
		Category:    r.Category,
		Description: r.Description,
		RelatedID:   r.RelatedID,
		RelatedType: r.RelatedType,
		PerformedBy: r.PerformedBy,
	}
}
