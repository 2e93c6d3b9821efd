// Package reports computes read-side aggregates. Everything here is a pure
// fold over already-stored rows; nothing is cached and nothing is enforced.
package reports

import (
	"time"

	"dukkan/internal/core/types"
	"dukkan/internal/domain/inventory"
	"dukkan/internal/domain/till"
)

// Period selects a predefined reporting window.
type Period string

const (
	PeriodToday  Period = "today"
	PeriodWeek   Period = "week"
	PeriodMonth  Period = "month"
	PeriodCustom Period = "custom"
)

// Summary aggregates till sessions in the window.
type Summary struct {
	TotalRegisters  int64       `json:"totalRegisters"`
	OpenCount       int64       `json:"openCount"`
	ClosedCount     int64       `json:"closedCount"`
	TotalOpening    types.Money `json:"totalOpening"`
	TotalExpected   types.Money `json:"totalExpected"`
	TotalActual     types.Money `json:"totalActual"`
	TotalCashIn     types.Money `json:"totalCashIn"`
	TotalCashOut    types.Money `json:"totalCashOut"`
	TotalDifference types.Money `json:"totalDifference"`
	AvgOpening      types.Money `json:"avgOpening"`
	AvgDifference   types.Money `json:"avgDifference"`
}

// CategoryStats is the per-category rollup of ledger entries.
type CategoryStats struct {
	Total types.Money    `json:"total"`
	Count int64          `json:"count"`
	Type  till.EntryType `json:"type"`
}

// DailyStats buckets sessions by the UTC calendar date they were opened on.
type DailyStats struct {
	Registers  int64       `json:"registers"`
	CashIn     types.Money `json:"cashIn"`
	CashOut    types.Money `json:"cashOut"`
	Difference types.Money `json:"difference"`
}

// TillReport is the full report payload.
type TillReport struct {
	Period    Period    `json:"period"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`

	Summary           Summary                  `json:"summary"`
	CategoryBreakdown map[string]CategoryStats `json:"categoryBreakdown"`
	DailyBreakdown    map[string]DailyStats    `json:"dailyBreakdown"`
	Sessions          []till.Session           `json:"registers"`
}

// Dashboard is the landing-page summary.
type Dashboard struct {
	ProductCount int64               `json:"productCount"`
	LowStock     []inventory.Product `json:"lowStockProducts"`
	SalesCount   int64               `json:"salesCount"`
	SalesRevenue types.Money         `json:"salesRevenue"`
	OpenTill     *till.Session       `json:"openRegister"`
}
