package models

import (
	"testing"
	"time"
)

func TestSortHistory(t *testing.T) {
	rows := []HistoryRow{
		{Month: "March 2024"},
		{Month: "not a month"},
		{Month: "December 2023"},
		{Month: "January 2024", Income: 1},
		{Month: "January 2024", Income: 2},
	}

	SortHistory(rows)

	want := []string{"December 2023", "January 2024", "January 2024", "March 2024", "not a month"}
	for i, label := range want {
		if rows[i].Month != label {
			t.Errorf("rows[%d] = %q, want %q", i, rows[i].Month, label)
		}
	}
	if rows[1].Income != 1 || rows[2].Income != 2 {
		t.Errorf("equal labels should keep insertion order, got incomes %v, %v", rows[1].Income, rows[2].Income)
	}
}

func TestMonthLabel(t *testing.T) {
	if got := MonthLabel(time.February, 2024); got != "February 2024" {
		t.Errorf("MonthLabel = %q, want %q", got, "February 2024")
	}
}

func TestW2RecordTotalIncome(t *testing.T) {
	r := W2Record{Wages: 50000, FederalTaxWithheld: 5000, SocialSecurityWages: 50000, MedicareWages: 50000}
	if got := r.TotalIncome(); got != 150000 {
		t.Errorf("TotalIncome = %v, want 150000", got)
	}
}
