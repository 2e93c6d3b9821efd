package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dukkan/internal/core/entity"
	"dukkan/internal/core/id"
	"dukkan/internal/core/types"
	"dukkan/internal/domain/till"
)

func closedSession(opened time.Time, opening, in, out, actual float64) till.Session {
	s := till.Session{
		Base:          entity.NewBase(),
		OpeningDate:   opened,
		OpeningAmount: types.NewMoney(opening),
		TotalCashIn:   types.NewMoney(in),
		TotalCashOut:  types.NewMoney(out),
		Status:        till.StatusClosed,
	}
	s.ExpectedCash = s.OpeningAmount.Add(s.TotalCashIn).Sub(s.TotalCashOut)
	cash := types.NewMoney(actual)
	s.ActualCash = &cash
	s.Difference = cash.Sub(s.ExpectedCash)
	return s
}

func TestBuildTillReport_Sums(t *testing.T) {
	day1 := time.Date(2026, time.May, 4, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, time.May, 5, 9, 30, 0, 0, time.UTC)

	a := closedSession(day1, 500, 1000, 200, 1290) // difference -10
	b := closedSession(day2, 300, 400, 0, 705)     // difference +5
	open := till.Session{
		Base:          entity.NewBase(),
		OpeningDate:   day2,
		OpeningAmount: types.NewMoney(100),
		ExpectedCash:  types.NewMoney(100),
		Status:        till.StatusOpen,
	}

	report := BuildTillReport(PeriodWeek, day1, day2,
		[]till.Session{a, b, open}, nil)

	assert.Equal(t, int64(3), report.Summary.TotalRegisters)
	assert.Equal(t, int64(1), report.Summary.OpenCount)
	assert.Equal(t, int64(2), report.Summary.ClosedCount)
	assert.True(t, report.Summary.TotalOpening.Equal(types.NewMoney(900)))
	assert.True(t, report.Summary.TotalCashIn.Equal(types.NewMoney(1400)))
	assert.True(t, report.Summary.TotalCashOut.Equal(types.NewMoney(200)))
	// Open session contributes nothing to actual cash.
	assert.True(t, report.Summary.TotalActual.Equal(types.NewMoney(1995)))
	assert.True(t, report.Summary.TotalDifference.Equal(types.NewMoney(-5)))
	assert.True(t, report.Summary.AvgOpening.Equal(types.NewMoney(300)))
}

func TestBuildTillReport_DailyBucketsByUTCDate(t *testing.T) {
	// 23:30 UTC-3 is already the next day in UTC.
	loc := time.FixedZone("UTC-3", -3*60*60)
	lateLocal := time.Date(2026, time.May, 4, 23, 30, 0, 0, loc)

	s := closedSession(lateLocal, 100, 0, 0, 100)
	report := BuildTillReport(PeriodToday, lateLocal, lateLocal, []till.Session{s}, nil)

	require.Len(t, report.DailyBreakdown, 1)
	day, ok := report.DailyBreakdown["2026-05-05"]
	require.True(t, ok)
	assert.Equal(t, int64(1), day.Registers)
}

func TestBuildTillReport_CategoryBreakdown(t *testing.T) {
	opened := time.Date(2026, time.May, 4, 9, 0, 0, 0, time.UTC)
	s := closedSession(opened, 500, 300, 50, 750)

	entries := map[id.ID][]till.Entry{
		s.ID: {
			{Type: till.EntryIn, Amount: types.NewMoney(200), Category: till.CategorySale},
			{Type: till.EntryIn, Amount: types.NewMoney(100), Category: till.CategorySale},
			{Type: till.EntryOut, Amount: types.NewMoney(50), Category: till.CategoryExpense},
		},
	}

	report := BuildTillReport(PeriodToday, opened, opened, []till.Session{s}, entries)

	sale := report.CategoryBreakdown[string(till.CategorySale)]
	assert.Equal(t, int64(2), sale.Count)
	assert.True(t, sale.Total.Equal(types.NewMoney(300)))
	assert.Equal(t, till.EntryIn, sale.Type)

	expense := report.CategoryBreakdown[string(till.CategoryExpense)]
	assert.Equal(t, int64(1), expense.Count)
	assert.True(t, expense.Total.Equal(types.NewMoney(50)))
	assert.Equal(t, till.EntryOut, expense.Type)
}

func TestBuildTillReport_Idempotent(t *testing.T) {
	opened := time.Date(2026, time.May, 4, 9, 0, 0, 0, time.UTC)
	sessions := []till.Session{closedSession(opened, 500, 300, 50, 750)}

	first := BuildTillReport(PeriodToday, opened, opened, sessions, nil)
	second := BuildTillReport(PeriodToday, opened, opened, sessions, nil)

	assert.Equal(t, first.Summary, second.Summary)
	assert.Equal(t, first.DailyBreakdown, second.DailyBreakdown)
}

func TestBuildTillReport_Empty(t *testing.T) {
	now := time.Now().UTC()
	report := BuildTillReport(PeriodToday, now, now, nil, nil)

	assert.Equal(t, int64(0), report.Summary.TotalRegisters)
	assert.True(t, report.Summary.AvgOpening.IsZero())
	assert.Empty(t, report.DailyBreakdown)
	assert.Empty(t, report.CategoryBreakdown)
}

func TestResolveWindow(t *testing.T) {
	now := time.Date(2026, time.May, 10, 15, 45, 0, 0, time.UTC)
	dayStart := time.Date(2026, time.May, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		period    Period
		wantStart time.Time
	}{
		{"today", PeriodToday, dayStart},
		{"week", PeriodWeek, dayStart.AddDate(0, 0, -6)},
		{"month", PeriodMonth, dayStart.AddDate(0, -1, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := ResolveWindow(tt.period, time.Time{}, time.Time{}, now)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, now, end)
		})
	}

	t.Run("custom keeps bounds", func(t *testing.T) {
		from := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, time.April, 30, 0, 0, 0, 0, time.UTC)
		start, end := ResolveWindow(PeriodCustom, from, to, now)
		assert.Equal(t, from, start)
		assert.Equal(t, to, end)
	})

	t.Run("custom defaults", func(t *testing.T) {
		start, end := ResolveWindow(PeriodCustom, time.Time{}, time.Time{}, now)
		assert.Equal(t, dayStart, start)
		assert.Equal(t, now, end)
	})
}
