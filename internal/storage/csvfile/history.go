// Package csvfile provides a CSV-backed implementation of storage.HistoryStore.
package csvfile

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/mmynk/pennyworth/internal/models"
	"github.com/mmynk/pennyworth/internal/storage"
)

// Ensure HistoryStore implements storage.HistoryStore
var _ storage.HistoryStore = (*HistoryStore)(nil)

// Header is the first line of the history file.
var Header = []string{"Month", "Savings ($)", "Debt ($)", "Expenses ($)", "Income ($)"}

// HistoryStore keeps the history table in a single CSV file. All access goes
// through one mutex; the file's SHA-256 is the table revision, so writes by
// other processes are detected rather than overwritten.
type HistoryStore struct {
	path string
	mu   sync.Mutex
}

// New creates a store for the file at path, creating parent directories.
// The file itself is created with the seed table on first load.
func New(path string) (*HistoryStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}
	return &HistoryStore{path: path}, nil
}

// Close is a no-op; the file is not held open.
func (s *HistoryStore) Close() error {
	return nil
}

// LoadHistory reads the full table, seeding it if the file is missing or empty.
func (s *HistoryStore) LoadHistory(ctx context.Context) (*models.HistoryTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// AddHistoryRow appends row and rewrites the file.
func (s *HistoryStore) AddHistoryRow(ctx context.Context, row models.HistoryRow, expectedRevision string) (*models.HistoryTable, error) {
	return s.mutate(ctx, expectedRevision, func(rows []models.HistoryRow) []models.HistoryRow {
		return append(rows, row)
	})
}

// RemoveHistoryRows drops every row labeled month and rewrites the file.
func (s *HistoryStore) RemoveHistoryRows(ctx context.Context, month string, expectedRevision string) (*models.HistoryTable, int, error) {
	removed := 0
	table, err := s.mutate(ctx, expectedRevision, func(rows []models.HistoryRow) []models.HistoryRow {
		kept := rows[:0]
		for _, r := range rows {
			if r.Month == month {
				removed++
				continue
			}
			kept = append(kept, r)
		}
		return kept
	})
	if err != nil {
		return nil, 0, err
	}
	return table, removed, nil
}

func (s *HistoryStore) mutate(ctx context.Context, expectedRevision string, fn func([]models.HistoryRow) []models.HistoryRow) (*models.HistoryTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	table, err := s.load()
	if err != nil {
		return nil, err
	}
	if expectedRevision != "" && expectedRevision != table.Revision {
		return nil, fmt.Errorf("%w: history revision %s, have %s", storage.ErrConflict, table.Revision, expectedRevision)
	}

	rows := fn(table.Rows)
	models.SortHistory(rows)

	data, err := Encode(rows)
	if err != nil {
		return nil, err
	}
	if err := s.replace(table.Revision, data); err != nil {
		return nil, err
	}

	return &models.HistoryTable{Rows: rows, Revision: revisionOf(data)}, nil
}

// load must be called with s.mu held.
func (s *HistoryStore) load() (*models.HistoryTable, error) {
	data, err := os.ReadFile(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		data, err = Encode(models.SeedHistory())
		if err != nil {
			return nil, err
		}
		if err := writeAtomic(s.path, data); err != nil {
			return nil, err
		}
	}

	rows, err := Decode(data)
	if err != nil {
		return nil, err
	}
	models.SortHistory(rows)

	return &models.HistoryTable{Rows: rows, Revision: revisionOf(data)}, nil
}

// replace writes data only if the file still has revision base.
func (s *HistoryStore) replace(base string, data []byte) error {
	current, err := os.ReadFile(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to re-read history file: %w", err)
	}
	if revisionOf(current) != base {
		return fmt.Errorf("%w: history file modified by another writer", storage.ErrConflict)
	}
	return writeAtomic(s.path, data)
}

// Decode parses history CSV. Columns are positional; a leading header row
// is skipped and columns past the fifth are ignored.
func Decode(data []byte) ([]models.HistoryRow, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse history csv: %w", err)
	}
	if len(records) > 0 && strings.EqualFold(records[0][0], Header[0]) {
		records = records[1:]
	}

	rows := make([]models.HistoryRow, 0, len(records))
	for i, rec := range records {
		if len(rec) < len(Header) {
			return nil, fmt.Errorf("history row %d: expected %d columns, got %d", i+1, len(Header), len(rec))
		}
		var values [4]float64
		for j := range values {
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[j+1]), 64)
			if err != nil {
				return nil, fmt.Errorf("history row %d column %q: %w", i+1, Header[j+1], err)
			}
			values[j] = v
		}
		rows = append(rows, models.HistoryRow{
			Month:    rec[0],
			Savings:  values[0],
			Debt:     values[1],
			Expenses: values[2],
			Income:   values[3],
		})
	}
	return rows, nil
}

// Encode renders rows as history CSV including the header.
func Encode(rows []models.HistoryRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(Header); err != nil {
		return nil, fmt.Errorf("failed to write history header: %w", err)
	}
	for _, r := range rows {
		rec := []string{
			r.Month,
			formatAmount(r.Savings),
			formatAmount(r.Debt),
			formatAmount(r.Expenses),
			formatAmount(r.Income),
		}
		if err := w.Write(rec); err != nil {
			return nil, fmt.Errorf("failed to write history row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush history csv: %w", err)
	}
	return buf.Bytes(), nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func revisionOf(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
