package models

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// MonthLayout is the layout of a history row label, e.g. "January 2024".
const MonthLayout = "January 2006"

// HistoryRow is one month of business financials.
type HistoryRow struct {
	// Month is the free-text label "Month YYYY". Labels are not unique.
	Month string

	Savings  float64
	Debt     float64
	Expenses float64
	Income   float64
}

// Period parses the row label. Rows with unparseable labels sort last.
func (r HistoryRow) Period() (time.Time, bool) {
	t, err := time.Parse(MonthLayout, strings.TrimSpace(r.Month))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// HistoryTable is a full snapshot of the history store.
type HistoryTable struct {
	Rows []HistoryRow

	// Revision identifies the stored state this snapshot was read from.
	// Writers pass it back to detect concurrent modification.
	Revision string
}

// MonthLabel formats a month name and year as a row label.
func MonthLabel(month time.Month, year int) string {
	return fmt.Sprintf("%s %d", month, year)
}

// SeedHistory returns the sample table written when no history exists.
func SeedHistory() []HistoryRow {
	return []HistoryRow{
		{Month: "January 2024", Savings: 1000, Debt: 500, Expenses: 1000, Income: 5000},
		{Month: "February 2024", Savings: 5000, Debt: 1500, Expenses: 2000, Income: 15000},
		{Month: "March 2024", Savings: 10000, Debt: 1000, Expenses: 1500, Income: 20000},
		{Month: "April 2024", Savings: 20000, Debt: 2500, Expenses: 3000, Income: 25000},
	}
}

// SortHistory orders rows chronologically by their label, keeping the
// relative order of rows with equal labels. Unparseable labels go last.
func SortHistory(rows []HistoryRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		ti, okI := rows[i].Period()
		tj, okJ := rows[j].Period()
		if okI != okJ {
			return okI
		}
		return ti.Before(tj)
	})
}
