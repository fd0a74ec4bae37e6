package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/mmynk/pennyworth/internal/models"
)

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
const schema = `
CREATE TABLE IF NOT EXISTS history_rows (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    month TEXT NOT NULL,
    savings REAL NOT NULL,
    debt REAL NOT NULL,
    expenses REAL NOT NULL,
    income REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS history_meta (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    revision INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS help_requests (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    message TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_history_rows_month ON history_rows(month);
CREATE INDEX IF NOT EXISTS idx_help_requests_created_at ON help_requests(created_at);
`

// runMigrations executes the schema setup and seeds the history table the
// first time the database is created.
func runMigrations(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return err
	}

	var seeded int
	if err := db.QueryRow("SELECT COUNT(*) FROM history_meta").Scan(&seeded); err != nil {
		return fmt.Errorf("failed to read history metadata: %w", err)
	}
	if seeded > 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	for _, row := range models.SeedHistory() {
		if _, err := tx.Exec(
			"INSERT INTO history_rows (month, savings, debt, expenses, income) VALUES (?, ?, ?, ?, ?)",
			row.Month, row.Savings, row.Debt, row.Expenses, row.Income,
		); err != nil {
			return fmt.Errorf("failed to seed history: %w", err)
		}
	}
	if _, err := tx.Exec("INSERT INTO history_meta (id, revision) VALUES (1, 1)"); err != nil {
		return fmt.Errorf("failed to seed history metadata: %w", err)
	}

	return tx.Commit()
}
