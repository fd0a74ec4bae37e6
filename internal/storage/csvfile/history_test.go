package csvfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/mmynk/pennyworth/internal/models"
	"github.com/mmynk/pennyworth/internal/storage"
)

func newTestStore(t *testing.T) (*HistoryStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "financial_data.csv")
	store, err := New(path)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	return store, path
}

func TestHistoryStore(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	t.Run("LoadHistory seeds a missing file", func(t *testing.T) {
		table, err := store.LoadHistory(ctx)
		if err != nil {
			t.Fatalf("LoadHistory failed: %v", err)
		}
		if !reflect.DeepEqual(table.Rows, models.SeedHistory()) {
			t.Errorf("rows = %+v, want seed", table.Rows)
		}
		if table.Revision == "" {
			t.Error("expected a revision")
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("seed file not written: %v", err)
		}
		firstLine := strings.SplitN(string(data), "\n", 2)[0]
		if firstLine != "Month,Savings ($),Debt ($),Expenses ($),Income ($)" {
			t.Errorf("header = %q", firstLine)
		}
		if !strings.Contains(string(data), "January 2024,1000,500,1000,5000") {
			t.Errorf("seed rows not written as plain numbers:\n%s", data)
		}
	})

	t.Run("add then remove restores the table", func(t *testing.T) {
		before, err := store.LoadHistory(ctx)
		if err != nil {
			t.Fatalf("LoadHistory failed: %v", err)
		}
		original, _ := os.ReadFile(path)

		added, err := store.AddHistoryRow(ctx, models.HistoryRow{
			Month: "May 2024", Savings: 22000.5, Debt: 2000, Expenses: 2800, Income: 26000,
		}, before.Revision)
		if err != nil {
			t.Fatalf("AddHistoryRow failed: %v", err)
		}
		if len(added.Rows) != len(before.Rows)+1 {
			t.Fatalf("rows after add = %d, want %d", len(added.Rows), len(before.Rows)+1)
		}
		if added.Revision == before.Revision {
			t.Error("revision should change after add")
		}

		removed, n, err := store.RemoveHistoryRows(ctx, "May 2024", added.Revision)
		if err != nil {
			t.Fatalf("RemoveHistoryRows failed: %v", err)
		}
		if n != 1 {
			t.Errorf("removed = %d, want 1", n)
		}
		if !reflect.DeepEqual(removed.Rows, before.Rows) {
			t.Errorf("rows after round trip = %+v, want %+v", removed.Rows, before.Rows)
		}
		after, _ := os.ReadFile(path)
		if string(after) != string(original) {
			t.Errorf("file after round trip differs:\n%s\nwant:\n%s", after, original)
		}
		if removed.Revision != before.Revision {
			t.Error("revision should return to the original content hash")
		}
	})

	t.Run("rows are kept in calendar order", func(t *testing.T) {
		table, err := store.AddHistoryRow(ctx, models.HistoryRow{Month: "December 2023", Income: 1}, "")
		if err != nil {
			t.Fatalf("AddHistoryRow failed: %v", err)
		}
		if table.Rows[0].Month != "December 2023" {
			t.Errorf("first row = %q, want December 2023", table.Rows[0].Month)
		}
		if _, _, err := store.RemoveHistoryRows(ctx, "December 2023", ""); err != nil {
			t.Fatalf("RemoveHistoryRows failed: %v", err)
		}
	})

	t.Run("duplicate labels are all removed", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			if _, err := store.AddHistoryRow(ctx, models.HistoryRow{Month: "June 2024", Income: float64(i)}, ""); err != nil {
				t.Fatalf("AddHistoryRow failed: %v", err)
			}
		}
		table, n, err := store.RemoveHistoryRows(ctx, "June 2024", "")
		if err != nil {
			t.Fatalf("RemoveHistoryRows failed: %v", err)
		}
		if n != 2 {
			t.Errorf("removed = %d, want 2", n)
		}
		if len(table.Rows) != 4 {
			t.Errorf("rows = %d, want 4", len(table.Rows))
		}
	})

	t.Run("removing an unknown label is a no-op", func(t *testing.T) {
		before, _ := store.LoadHistory(ctx)
		table, n, err := store.RemoveHistoryRows(ctx, "july 2024", before.Revision)
		if err != nil {
			t.Fatalf("RemoveHistoryRows failed: %v", err)
		}
		if n != 0 {
			t.Errorf("removed = %d, want 0", n)
		}
		if !reflect.DeepEqual(table.Rows, before.Rows) {
			t.Error("table changed on no-op removal")
		}
	})

	t.Run("stale revision is a conflict", func(t *testing.T) {
		before, _ := store.LoadHistory(ctx)
		if _, err := store.AddHistoryRow(ctx, models.HistoryRow{Month: "August 2024"}, before.Revision); err != nil {
			t.Fatalf("first writer failed: %v", err)
		}

		_, err := store.AddHistoryRow(ctx, models.HistoryRow{Month: "September 2024"}, before.Revision)
		if !errors.Is(err, storage.ErrConflict) {
			t.Fatalf("second writer error = %v, want ErrConflict", err)
		}

		table, _ := store.LoadHistory(ctx)
		for _, r := range table.Rows {
			if r.Month == "September 2024" {
				t.Error("conflicting write must not be persisted")
			}
		}
		if _, _, err := store.RemoveHistoryRows(ctx, "August 2024", table.Revision); err != nil {
			t.Fatalf("cleanup failed: %v", err)
		}
	})

	t.Run("external modification is detected", func(t *testing.T) {
		before, _ := store.LoadHistory(ctx)
		data, _ := os.ReadFile(path)
		if err := os.WriteFile(path, append(data, []byte("October 2024,1,1,1,1\n")...), 0644); err != nil {
			t.Fatalf("failed to modify file: %v", err)
		}

		_, _, err := store.RemoveHistoryRows(ctx, "January 2024", before.Revision)
		if !errors.Is(err, storage.ErrConflict) {
			t.Errorf("error = %v, want ErrConflict", err)
		}
	})
}

func TestDecode(t *testing.T) {
	t.Run("accepts pandas float formatting", func(t *testing.T) {
		rows, err := Decode([]byte("Month,Savings ($),Debt ($),Expenses ($),Income ($)\nMay 2024,1000.0,500.0,1000.0,12383.94\n"))
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		want := []models.HistoryRow{{Month: "May 2024", Savings: 1000, Debt: 500, Expenses: 1000, Income: 12383.94}}
		if !reflect.DeepEqual(rows, want) {
			t.Errorf("rows = %+v, want %+v", rows, want)
		}
	})

	t.Run("ignores trailing columns", func(t *testing.T) {
		rows, err := Decode([]byte("Month,Savings ($),Debt ($),Expenses ($),Income ($),Year,Month_Num\nJanuary 2024,1000,500,1000,5000,2024,1\n"))
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		want := []models.HistoryRow{{Month: "January 2024", Savings: 1000, Debt: 500, Expenses: 1000, Income: 5000}}
		if !reflect.DeepEqual(rows, want) {
			t.Errorf("rows = %+v, want %+v", rows, want)
		}
	})

	t.Run("rejects non-numeric amounts", func(t *testing.T) {
		if _, err := Decode([]byte("May 2024,lots,0,0,0\n")); err == nil {
			t.Error("expected an error")
		}
	})

	t.Run("rejects short rows", func(t *testing.T) {
		if _, err := Decode([]byte("May 2024,1,2\n")); err == nil {
			t.Error("expected an error")
		}
	})
}

func TestHistoryStore_ExtraColumns(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	data := "Month,Savings ($),Debt ($),Expenses ($),Income ($),Year,Month_Num\n" +
		"January 2024,1000,500,1000,5000,2024,1\n" +
		"February 2024,1200,500,1100,5200,2024,2\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("Failed to write history: %v", err)
	}

	table, err := store.LoadHistory(ctx)
	if err != nil {
		t.Fatalf("LoadHistory failed: %v", err)
	}
	if len(table.Rows) != 2 || table.Rows[1].Income != 5200 {
		t.Fatalf("rows = %+v", table.Rows)
	}

	// The next write drops the extra columns
	table, err = store.AddHistoryRow(ctx, models.HistoryRow{Month: "March 2024", Income: 5400}, table.Revision)
	if err != nil {
		t.Fatalf("AddHistoryRow failed: %v", err)
	}
	if len(table.Rows) != 3 {
		t.Errorf("expected 3 rows, got %d", len(table.Rows))
	}
	written, _ := os.ReadFile(path)
	if strings.Contains(string(written), "Month_Num") {
		t.Errorf("expected extra columns to be dropped:\n%s", written)
	}
}
