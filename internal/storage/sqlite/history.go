package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/mmynk/pennyworth/internal/models"
	"github.com/mmynk/pennyworth/internal/storage"
)

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// LoadHistory retrieves every history row with the current revision.
func (s *SQLiteStore) LoadHistory(ctx context.Context) (*models.HistoryTable, error) {
	return loadHistory(ctx, s.db)
}

// AddHistoryRow inserts a row if expectedRevision is current (or empty).
func (s *SQLiteStore) AddHistoryRow(ctx context.Context, row models.HistoryRow, expectedRevision string) (*models.HistoryTable, error) {
	table, _, err := s.mutateHistory(ctx, expectedRevision, func(tx *sql.Tx) (sql.Result, error) {
		res, err := tx.ExecContext(ctx,
			"INSERT INTO history_rows (month, savings, debt, expenses, income) VALUES (?, ?, ?, ?, ?)",
			row.Month, row.Savings, row.Debt, row.Expenses, row.Income,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert history row: %w", err)
		}
		return res, nil
	})
	return table, err
}

// RemoveHistoryRows deletes all rows labeled month if expectedRevision is
// current (or empty). The revision only advances when rows were removed.
func (s *SQLiteStore) RemoveHistoryRows(ctx context.Context, month string, expectedRevision string) (*models.HistoryTable, int, error) {
	table, removed, err := s.mutateHistory(ctx, expectedRevision, func(tx *sql.Tx) (sql.Result, error) {
		res, err := tx.ExecContext(ctx, "DELETE FROM history_rows WHERE month = ?", month)
		if err != nil {
			return nil, fmt.Errorf("failed to delete history rows: %w", err)
		}
		return res, nil
	})
	if err != nil {
		return nil, 0, err
	}
	return table, int(removed), nil
}

// mutateHistory runs apply inside a transaction after checking the revision,
// and bumps the revision when apply changed any rows.
func (s *SQLiteStore) mutateHistory(ctx context.Context, expectedRevision string, apply func(tx *sql.Tx) (sql.Result, error)) (*models.HistoryTable, int64, error) {
	s.historyMu.Lock()
	defer s.historyMu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	current, err := currentRevision(ctx, tx)
	if err != nil {
		return nil, 0, err
	}
	if expectedRevision != "" && expectedRevision != strconv.FormatInt(current, 10) {
		return nil, 0, fmt.Errorf("%w: history revision %d, have %s", storage.ErrConflict, current, expectedRevision)
	}

	res, err := apply(tx)
	if err != nil {
		return nil, 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count changed rows: %w", err)
	}

	if affected > 0 {
		if _, err := tx.ExecContext(ctx, "UPDATE history_meta SET revision = revision + 1 WHERE id = 1"); err != nil {
			return nil, 0, fmt.Errorf("failed to bump history revision: %w", err)
		}
	}

	table, err := loadHistory(ctx, tx)
	if err != nil {
		return nil, 0, err
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return table, affected, nil
}

func currentRevision(ctx context.Context, q queryer) (int64, error) {
	var rev int64
	err := q.QueryRowContext(ctx, "SELECT revision FROM history_meta WHERE id = 1").Scan(&rev)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get history revision: %w", err)
	}
	return rev, nil
}

func loadHistory(ctx context.Context, q queryer) (*models.HistoryTable, error) {
	rev, err := currentRevision(ctx, q)
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx,
		"SELECT month, savings, debt, expenses, income FROM history_rows ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get history rows: %w", err)
	}
	defer rows.Close()

	table := &models.HistoryTable{Revision: strconv.FormatInt(rev, 10)}
	for rows.Next() {
		var r models.HistoryRow
		if err := rows.Scan(&r.Month, &r.Savings, &r.Debt, &r.Expenses, &r.Income); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		table.Rows = append(table.Rows, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history rows: %w", err)
	}

	models.SortHistory(table.Rows)
	return table, nil
}
