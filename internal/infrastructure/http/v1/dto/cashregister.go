package dto

import (
	"github.com/shopspring/decimal"

	"dukkan/internal/domain/till"
)

// OpenTillRequest is the request body for opening a till session.
type OpenTillRequest struct {
	OpeningAmount decimal.Decimal `json:"openingAmount"`
	OpenedBy      string          `json:"openedBy"`
	Notes         string          `json:"notes"`
}

// CloseTillRequest is the request body for closing a till session.
type CloseTillRequest struct {
	ActualCash decimal.Decimal `json:"actualCash" binding:"required"`
	ClosedBy   string          `json:"closedBy"`
	Notes      string          `json:"notes"`
}

// ClearRequest guards destructive bulk operations with the admin password.
type ClearRequest struct {
	Password string `json:"password" binding:"required"`
}

// TillDetailResponse bundles a session with its ledger entries.
type TillDetailResponse struct {
	Register     *till.Session `json:"register"`
	Transactions []till.Entry  `json:"transactions"`
}

// ListTillsQuery filters the session list.
type ListTillsQuery struct {
	Status    string `form:"status"`
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
	Limit     int    `form:"limit"`
}
