package models

// HelpRequest asks a human financial assistant to follow up.
type HelpRequest struct {
	// ID is the unique identifier (UUID format).
	ID string

	Name    string
	Email   string
	Message string

	// CreatedAt is the Unix timestamp when the request was submitted.
	CreatedAt int64
}
