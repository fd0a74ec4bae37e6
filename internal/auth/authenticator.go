package auth

import (
	"context"

	"github.com/mmynk/pennyworth/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// The service layer only sees this, so the credential file can be swapped
// for another backend without touching it.
type Authenticator interface {
	// Register creates a new account. Usernames are case-sensitive and
	// must not already exist.
	Register(ctx context.Context, username, name, email, credential string) (*models.User, error)

	// Authenticate verifies the credential and returns the user.
	Authenticate(ctx context.Context, username, credential string) (*models.User, error)

	// Lookup returns the user for a username taken from a valid session.
	Lookup(ctx context.Context, username string) (*models.User, error)
}
