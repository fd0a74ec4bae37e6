package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/pennyworth/internal/models"
	"github.com/mmynk/pennyworth/internal/storage"
)

// CreateHelpRequest persists a new help request to the database.
func (s *SQLiteStore) CreateHelpRequest(ctx context.Context, req *models.HelpRequest) error {
	// Generate ID if not set
	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	if req.CreatedAt == 0 {
		req.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO help_requests (id, name, email, message, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		req.ID, req.Name, req.Email, req.Message, req.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert help request: %w", err)
	}

	return nil
}

// GetHelpRequest retrieves a help request by ID.
func (s *SQLiteStore) GetHelpRequest(ctx context.Context, id string) (*models.HelpRequest, error) {
	req := &models.HelpRequest{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, message, created_at
		 FROM help_requests WHERE id = ?`,
		id,
	).Scan(&req.ID, &req.Name, &req.Email, &req.Message, &req.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: help request %s", storage.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get help request: %w", err)
	}

	return req, nil
}

// ListHelpRequests retrieves all help requests, newest first.
func (s *SQLiteStore) ListHelpRequests(ctx context.Context) ([]*models.HelpRequest, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, email, message, created_at
		 FROM help_requests ORDER BY created_at DESC, rowid DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list help requests: %w", err)
	}
	defer rows.Close()

	var requests []*models.HelpRequest
	for rows.Next() {
		req := &models.HelpRequest{}
		if err := rows.Scan(&req.ID, &req.Name, &req.Email, &req.Message, &req.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan help request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate help requests: %w", err)
	}

	return requests, nil
}
