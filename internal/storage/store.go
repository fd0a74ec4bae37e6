// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/pennyworth/internal/models"
)

var (
	// ErrConflict is returned when a write is based on a stale revision, or
	// when the backing file changed underneath the writer.
	ErrConflict = errors.New("stored data changed since it was read")
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a unique key is already taken.
	ErrAlreadyExists = errors.New("already exists")
)

// HistoryStore persists the monthly financial history table.
// This abstraction allows swapping backends (CSV file, SQLite)
// without changing the service layer.
//
// Mutations take the revision the caller last read. An empty revision
// skips the check; a stale one fails with ErrConflict and leaves the
// table unchanged.
type HistoryStore interface {
	// LoadHistory returns every row sorted by (year, month) and the current
	// revision. An empty store is seeded with models.SeedHistory.
	LoadHistory(ctx context.Context) (*models.HistoryTable, error)

	// AddHistoryRow appends a row and returns the updated table.
	AddHistoryRow(ctx context.Context, row models.HistoryRow, expectedRevision string) (*models.HistoryTable, error)

	// RemoveHistoryRows deletes every row whose label equals month exactly.
	// Removing a label that is not present is a no-op.
	RemoveHistoryRows(ctx context.Context, month string, expectedRevision string) (*models.HistoryTable, int, error)

	// Close releases any resources held by the store.
	Close() error
}

// HelpStore persists human-help requests.
type HelpStore interface {
	// CreateHelpRequest persists the request, assigning ID and CreatedAt.
	CreateHelpRequest(ctx context.Context, req *models.HelpRequest) error

	// GetHelpRequest returns ErrNotFound for unknown IDs.
	GetHelpRequest(ctx context.Context, id string) (*models.HelpRequest, error)

	// ListHelpRequests returns requests newest first.
	ListHelpRequests(ctx context.Context) ([]*models.HelpRequest, error)
}

// CredentialStore persists user accounts.
type CredentialStore interface {
	// CreateUser adds a user. ErrAlreadyExists if the username is taken.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUser returns ErrNotFound for unknown usernames.
	GetUser(ctx context.Context, username string) (*models.User, error)
}
