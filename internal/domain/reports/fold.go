package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"dukkan/internal/core/id"
	"dukkan/internal/domain/till"
)

// dayKey formats the UTC calendar date a session was opened on.
func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// BuildTillReport folds sessions and their entries into a report. The fold
// reads nothing beyond its arguments, so repeated calls over the same rows
// return the same report.
func BuildTillReport(period Period, start, end time.Time, sessions []till.Session, entries map[id.ID][]till.Entry) *TillReport {
	report := &TillReport{
		Period:            period,
		StartDate:         start,
		EndDate:           end,
		CategoryBreakdown: make(map[string]CategoryStats),
		DailyBreakdown:    make(map[string]DailyStats),
		Sessions:          sessions,
	}

	for _, s := range sessions {
		report.Summary.TotalRegisters++
		if s.IsOpen() {
			report.Summary.OpenCount++
		} else {
			report.Summary.ClosedCount++
		}
		report.Summary.TotalOpening = report.Summary.TotalOpening.Add(s.OpeningAmount)
		report.Summary.TotalExpected = report.Summary.TotalExpected.Add(s.ExpectedCash)
		if s.ActualCash != nil {
			report.Summary.TotalActual = report.Summary.TotalActual.Add(*s.ActualCash)
		}
		report.Summary.TotalCashIn = report.Summary.TotalCashIn.Add(s.TotalCashIn)
		report.Summary.TotalCashOut = report.Summary.TotalCashOut.Add(s.TotalCashOut)
		report.Summary.TotalDifference = report.Summary.TotalDifference.Add(s.Difference)

		day := report.DailyBreakdown[dayKey(s.OpeningDate)]
		day.Registers++
		day.CashIn = day.CashIn.Add(s.TotalCashIn)
		day.CashOut = day.CashOut.Add(s.TotalCashOut)
		day.Difference = day.Difference.Add(s.Difference)
		report.DailyBreakdown[dayKey(s.OpeningDate)] = day

		for _, e := range entries[s.ID] {
			cat := report.CategoryBreakdown[string(e.Category)]
			cat.Total = cat.Total.Add(e.Amount)
			cat.Count++
			cat.Type = e.Type
			report.CategoryBreakdown[string(e.Category)] = cat
		}
	}

	if report.Summary.TotalRegisters > 0 {
		n := decimal.NewFromInt(report.Summary.TotalRegisters)
		report.Summary.AvgOpening = report.Summary.TotalOpening.Div(n)
		report.Summary.AvgDifference = report.Summary.TotalDifference.Div(n)
	}
	return report
}

// ResolveWindow turns a named period into a concrete [start, end] range.
// Custom periods use the supplied bounds as-is.
func ResolveWindow(period Period, start, end time.Time, now time.Time) (time.Time, time.Time) {
	now = now.UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	switch period {
	case PeriodToday:
		return dayStart, now
	case PeriodWeek:
		return dayStart.AddDate(0, 0, -6), now
	case PeriodMonth:
		return dayStart.AddDate(0, -1, 0), now
	default:
		if start.IsZero() {
			start = dayStart
		}
		if end.IsZero() {
			end = now
		}
		return start, end
	}
}
