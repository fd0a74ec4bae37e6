package service

import (
	"context"
	"math"
	"os"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/pennyworth/pkg/api"
)

func TestIncome_RequiresSession(t *testing.T) {
	srv := setupTestServer(t)

	_, err := srv.income.GetHistory(context.Background(), connect.NewRequest(&api.GetHistoryRequest{}))
	assertCode(t, err, connect.CodeUnauthenticated)

	_, err = srv.income.GetHistory(context.Background(), withToken(&api.GetHistoryRequest{}, "not-a-token"))
	assertCode(t, err, connect.CodeUnauthenticated)
}

func TestIncome_GetHistorySeeded(t *testing.T) {
	srv := setupTestServer(t)
	token := srv.login(t, "alice")

	resp, err := srv.income.GetHistory(context.Background(), withToken(&api.GetHistoryRequest{}, token))
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}

	rows := resp.Msg.History.Rows
	if len(rows) != 4 {
		t.Fatalf("expected 4 seeded rows, got %d", len(rows))
	}
	if rows[0].Month != "January 2024" || rows[3].Month != "April 2024" {
		t.Errorf("unexpected order: %s .. %s", rows[0].Month, rows[3].Month)
	}
	if resp.Msg.History.Revision == "" {
		t.Error("expected a revision")
	}
	if _, err := os.Stat(srv.csvPath); err != nil {
		t.Errorf("expected seeded file on disk: %v", err)
	}
}

func TestIncome_PredictSeedTable(t *testing.T) {
	srv := setupTestServer(t)
	token := srv.login(t, "alice")

	req := &api.PredictIncomeRequest{Savings: 5000, Debt: 1000, Expenses: 1500}
	first, err := srv.income.Predict(context.Background(), withToken(req, token))
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	second, err := srv.income.Predict(context.Background(), withToken(req, token))
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}

	want := 9870000.0 / 797
	if math.Abs(first.Msg.Income-want) > 1e-6 {
		t.Errorf("Income = %v, want %v", first.Msg.Income, want)
	}
	if first.Msg.Income != second.Msg.Income {
		t.Errorf("prediction not deterministic: %v then %v", first.Msg.Income, second.Msg.Income)
	}
	if !first.Msg.Underdetermined {
		t.Error("four rows and three predictors should be reported as underdetermined")
	}
	if first.Msg.Samples != 4 {
		t.Errorf("Samples = %d, want 4", first.Msg.Samples)
	}
	if first.Msg.Outlook == "" {
		t.Error("expected an outlook")
	}
}

func TestIncome_PredictNegative(t *testing.T) {
	srv := setupTestServer(t)
	token := srv.login(t, "alice")

	_, err := srv.income.Predict(context.Background(), withToken(&api.PredictIncomeRequest{Savings: -1}, token))
	assertCode(t, err, connect.CodeInvalidArgument)
}

func TestIncome_AddThenRemoveRestoresTable(t *testing.T) {
	srv := setupTestServer(t)
	token := srv.login(t, "alice")
	ctx := context.Background()

	before, err := srv.income.GetHistory(ctx, withToken(&api.GetHistoryRequest{}, token))
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}

	income := 30000.0
	added, err := srv.income.AddRow(ctx, withToken(&api.AddHistoryRowRequest{
		Month:            "May",
		Year:             2024,
		Savings:          25000,
		Debt:             2000,
		Expenses:         3500,
		Income:           &income,
		ExpectedRevision: before.Msg.History.Revision,
	}, token))
	if err != nil {
		t.Fatalf("AddRow failed: %v", err)
	}
	if added.Msg.Row.Month != "May 2024" || added.Msg.IncomePredicted {
		t.Errorf("unexpected row: %+v (predicted %v)", added.Msg.Row, added.Msg.IncomePredicted)
	}
	if len(added.Msg.History.Rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(added.Msg.History.Rows))
	}

	removed, err := srv.income.RemoveRow(ctx, withToken(&api.RemoveHistoryRowRequest{
		Month:            "May 2024",
		ExpectedRevision: added.Msg.History.Revision,
	}, token))
	if err != nil {
		t.Fatalf("RemoveRow failed: %v", err)
	}
	if removed.Msg.Removed != 1 {
		t.Errorf("Removed = %d, want 1", removed.Msg.Removed)
	}
	if len(removed.Msg.History.Rows) != len(before.Msg.History.Rows) {
		t.Fatalf("expected %d rows after removal, got %d", len(before.Msg.History.Rows), len(removed.Msg.History.Rows))
	}
	for i, row := range removed.Msg.History.Rows {
		if row != before.Msg.History.Rows[i] {
			t.Errorf("row %d = %+v, want %+v", i, row, before.Msg.History.Rows[i])
		}
	}
}

func TestIncome_AddRowPredictsMissingIncome(t *testing.T) {
	srv := setupTestServer(t)
	token := srv.login(t, "alice")
	ctx := context.Background()

	predicted, err := srv.income.Predict(ctx, withToken(&api.PredictIncomeRequest{Savings: 5000, Debt: 1000, Expenses: 1500}, token))
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}

	resp, err := srv.income.AddRow(ctx, withToken(&api.AddHistoryRowRequest{
		Month:    "june",
		Year:     2024,
		Savings:  5000,
		Debt:     1000,
		Expenses: 1500,
	}, token))
	if err != nil {
		t.Fatalf("AddRow failed: %v", err)
	}
	if !resp.Msg.IncomePredicted {
		t.Error("expected income to be predicted")
	}
	if resp.Msg.Row.Month != "June 2024" {
		t.Errorf("Month = %q, want June 2024", resp.Msg.Row.Month)
	}
	if resp.Msg.Row.Income != predicted.Msg.Income {
		t.Errorf("Income = %v, want %v", resp.Msg.Row.Income, predicted.Msg.Income)
	}
}

func TestIncome_StaleRevision(t *testing.T) {
	srv := setupTestServer(t)
	token := srv.login(t, "alice")
	ctx := context.Background()

	income := 1000.0
	_, err := srv.income.AddRow(ctx, withToken(&api.AddHistoryRowRequest{
		Month:            "May",
		Year:             2024,
		Income:           &income,
		ExpectedRevision: "stale",
	}, token))
	assertCode(t, err, connect.CodeAborted)

	_, err = srv.income.RemoveRow(ctx, withToken(&api.RemoveHistoryRowRequest{
		Month:            "January 2024",
		ExpectedRevision: "stale",
	}, token))
	assertCode(t, err, connect.CodeAborted)

	resp, err := srv.income.GetHistory(ctx, withToken(&api.GetHistoryRequest{}, token))
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if len(resp.Msg.History.Rows) != 4 {
		t.Errorf("table changed on conflict: %d rows", len(resp.Msg.History.Rows))
	}
}

func TestIncome_RemoveMissingIsNoop(t *testing.T) {
	srv := setupTestServer(t)
	token := srv.login(t, "alice")

	resp, err := srv.income.RemoveRow(context.Background(), withToken(&api.RemoveHistoryRowRequest{Month: "December 1999"}, token))
	if err != nil {
		t.Fatalf("RemoveRow failed: %v", err)
	}
	if resp.Msg.Removed != 0 || len(resp.Msg.History.Rows) != 4 {
		t.Errorf("expected no-op, removed %d leaving %d rows", resp.Msg.Removed, len(resp.Msg.History.Rows))
	}
}

func TestIncome_AddRowValidation(t *testing.T) {
	srv := setupTestServer(t)
	token := srv.login(t, "alice")
	year := time.Now().Year()
	negative := -5.0

	tests := []struct {
		name string
		req  *api.AddHistoryRowRequest
	}{
		{"unknown month", &api.AddHistoryRowRequest{Month: "Smarch", Year: year}},
		{"year too old", &api.AddHistoryRowRequest{Month: "May", Year: year - 11}},
		{"year too far ahead", &api.AddHistoryRowRequest{Month: "May", Year: year + 2}},
		{"negative amount", &api.AddHistoryRowRequest{Month: "May", Year: year, Debt: -1}},
		{"negative income", &api.AddHistoryRowRequest{Month: "May", Year: year, Income: &negative}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := srv.income.AddRow(context.Background(), withToken(tt.req, token))
			assertCode(t, err, connect.CodeInvalidArgument)
		})
	}
}

func TestParseMonth(t *testing.T) {
	for _, name := range []string{"January", "january", " DECEMBER "} {
		if _, err := parseMonth(name); err != nil {
			t.Errorf("parseMonth(%q) failed: %v", name, err)
		}
	}
	if _, err := parseMonth("Jan"); err == nil {
		t.Error("expected abbreviations to be rejected")
	}
}

func TestValidateYear(t *testing.T) {
	if err := validateYear(2016, 2026); err != nil {
		t.Errorf("lower bound rejected: %v", err)
	}
	if err := validateYear(2027, 2026); err != nil {
		t.Errorf("upper bound rejected: %v", err)
	}
	if err := validateYear(2015, 2026); err == nil {
		t.Error("expected 2015 to be rejected")
	}
}
