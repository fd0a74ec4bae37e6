package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/mmynk/pennyworth/internal/models"
	"github.com/mmynk/pennyworth/internal/storage"
)

func TestSQLiteStore(t *testing.T) {
	// Create temp directory for test database
	tempDir, err := os.MkdirTemp("", "pennyworth-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	dbPath := filepath.Join(tempDir, "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	t.Run("new database is seeded", func(t *testing.T) {
		table, err := store.LoadHistory(ctx)
		if err != nil {
			t.Fatalf("LoadHistory failed: %v", err)
		}
		if !reflect.DeepEqual(table.Rows, models.SeedHistory()) {
			t.Errorf("rows = %+v, want seed", table.Rows)
		}
		if table.Revision != "1" {
			t.Errorf("revision = %q, want 1", table.Revision)
		}
	})

	t.Run("add then remove restores rows", func(t *testing.T) {
		before, err := store.LoadHistory(ctx)
		if err != nil {
			t.Fatalf("LoadHistory failed: %v", err)
		}

		added, err := store.AddHistoryRow(ctx, models.HistoryRow{
			Month: "May 2024", Savings: 21000, Debt: 2000, Expenses: 2500, Income: 26000,
		}, before.Revision)
		if err != nil {
			t.Fatalf("AddHistoryRow failed: %v", err)
		}
		if len(added.Rows) != 5 || added.Rows[4].Month != "May 2024" {
			t.Fatalf("rows after add = %+v", added.Rows)
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
	})

	t.Run("no-op removal keeps the revision", func(t *testing.T) {
		before, _ := store.LoadHistory(ctx)
		after, n, err := store.RemoveHistoryRows(ctx, "May 1999", before.Revision)
		if err != nil {
			t.Fatalf("RemoveHistoryRows failed: %v", err)
		}
		if n != 0 || after.Revision != before.Revision {
			t.Errorf("removed=%d revision=%s, want 0 and %s", n, after.Revision, before.Revision)
		}
	})

	t.Run("stale revision is a conflict", func(t *testing.T) {
		before, _ := store.LoadHistory(ctx)
		if _, err := store.AddHistoryRow(ctx, models.HistoryRow{Month: "June 2024"}, before.Revision); err != nil {
			t.Fatalf("first writer failed: %v", err)
		}
		_, err := store.AddHistoryRow(ctx, models.HistoryRow{Month: "July 2024"}, before.Revision)
		if !errors.Is(err, storage.ErrConflict) {
			t.Fatalf("second writer error = %v, want ErrConflict", err)
		}
		_, _, err = store.RemoveHistoryRows(ctx, "June 2024", before.Revision)
		if !errors.Is(err, storage.ErrConflict) {
			t.Fatalf("stale remove error = %v, want ErrConflict", err)
		}

		table, _ := store.LoadHistory(ctx)
		if len(table.Rows) != 5 {
			t.Errorf("rows = %d, want 5 (seed + June)", len(table.Rows))
		}
	})

	t.Run("reopening does not reseed", func(t *testing.T) {
		reopened, err := New(dbPath)
		if err != nil {
			t.Fatalf("reopen failed: %v", err)
		}
		defer reopened.Close()

		table, err := reopened.LoadHistory(ctx)
		if err != nil {
			t.Fatalf("LoadHistory failed: %v", err)
		}
		if len(table.Rows) != 5 {
			t.Errorf("rows = %d, want 5", len(table.Rows))
		}
	})

	t.Run("help requests round trip newest first", func(t *testing.T) {
		first := &models.HelpRequest{Name: "Ada", Email: "ada@example.com", Message: "Budget help", CreatedAt: 100}
		second := &models.HelpRequest{Name: "Grace", Email: "grace@example.com", Message: "Tax question", CreatedAt: 200}
		for _, req := range []*models.HelpRequest{first, second} {
			if err := store.CreateHelpRequest(ctx, req); err != nil {
				t.Fatalf("CreateHelpRequest failed: %v", err)
			}
			if req.ID == "" {
				t.Error("Expected help request ID to be generated")
			}
		}

		got, err := store.GetHelpRequest(ctx, first.ID)
		if err != nil {
			t.Fatalf("GetHelpRequest failed: %v", err)
		}
		if !reflect.DeepEqual(got, first) {
			t.Errorf("GetHelpRequest = %+v, want %+v", got, first)
		}

		list, err := store.ListHelpRequests(ctx)
		if err != nil {
			t.Fatalf("ListHelpRequests failed: %v", err)
		}
		if len(list) != 2 || list[0].ID != second.ID || list[1].ID != first.ID {
			t.Errorf("ListHelpRequests order wrong: %+v", list)
		}
	})

	t.Run("unknown help request", func(t *testing.T) {
		_, err := store.GetHelpRequest(ctx, "missing")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})
}
