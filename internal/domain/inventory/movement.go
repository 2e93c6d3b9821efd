package inventory

import (
	"dukkan/internal/core/entity"
	"dukkan/internal/core/id"
)

// MovementType classifies a stock change. The quantity is stored positive;
// the type carries the direction.
type MovementType string

const (
	MovementIn         MovementType = "in"
	MovementOut        MovementType = "out"
	MovementCorrection MovementType = "correction"
	MovementSale       MovementType = "sale"
	MovementReturn     MovementType = "return"
	MovementService    MovementType = "service"
)

// Direction returns +1 for inbound types and -1 for outbound types.
// Corrections carry their own sign and return 0.
func (t MovementType) Direction() int64 {
	switch t {
	case MovementIn, MovementReturn:
		return 1
	case MovementOut, MovementSale, MovementService:
		return -1
	}
	return 0
}

// Movement is one immutable record of a change in a product's on-hand
// quantity, with before/after snapshots. Never mutated or deleted; deleting
// the source record appends a compensating movement instead.
type Movement struct {
	entity.Base

	ProductID   id.ID  `db:"product_id" json:"productId"`
	ProductName string `db:"product_name" json:"productName"`
	ProductCode string `db:"product_code" json:"productCode"`

	Type MovementType `db:"type" json:"type"`

	// Quantity is the positive magnitude of the change.
	Quantity int64 `db:"quantity" json:"quantity"`

	// PreviousStock and NewStock snapshot the balance around the change,
	// a redundant but auditable pair.
	PreviousStock int64 `db:"previous_stock" json:"previousStock"`
	NewStock      int64 `db:"new_stock" json:"newStock"`

	Reason      string           `db:"reason" json:"reason"`
	RelatedID   *string          `db:"related_id" json:"relatedId"`
	RelatedType entity.RelatedType `db:"related_type" json:"relatedType"`
	Notes       string           `db:"notes" json:"notes"`
}

// SignedQuantity returns the movement's effect on stock.
func (m *Movement) SignedQuantity() int64 {
	return m.NewStock - m.PreviousStock
}
