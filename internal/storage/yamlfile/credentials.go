// Package yamlfile provides a YAML-backed implementation of
// storage.CredentialStore.
//
// The file layout is
//
//	credentials:
//	  usernames:
//	    alice:
//	      name: Alice
//	      email: alice@example.com
//	      password: $2a$10$...
package yamlfile

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/mmynk/pennyworth/internal/models"
	"github.com/mmynk/pennyworth/internal/storage"
)

// Ensure CredentialStore implements storage.CredentialStore
var _ storage.CredentialStore = (*CredentialStore)(nil)

type entry struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

type document struct {
	Credentials struct {
		Usernames map[string]entry `yaml:"usernames"`
	} `yaml:"credentials"`
}

// CredentialStore keeps every account in one YAML file. Writes rewrite the
// whole file and fail with storage.ErrConflict if it changed on disk since
// it was read.
type CredentialStore struct {
	path string
	mu   sync.Mutex
}

// New creates a store for the file at path. A missing file is an empty store.
func New(path string) (*CredentialStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create credentials directory: %w", err)
	}
	return &CredentialStore{path: path}, nil
}

// CreateUser adds user to the file. Usernames are case-sensitive.
func (s *CredentialStore) CreateUser(ctx context.Context, user *models.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, digest, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := doc.Credentials.Usernames[user.Username]; ok {
		return fmt.Errorf("%w: username %s", storage.ErrAlreadyExists, user.Username)
	}
	if doc.Credentials.Usernames == nil {
		doc.Credentials.Usernames = make(map[string]entry)
	}
	doc.Credentials.Usernames[user.Username] = entry{
		Name:     user.Name,
		Email:    user.Email,
		Password: user.PasswordHash,
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}
	return s.replace(digest, data)
}

// GetUser looks up username.
func (s *CredentialStore) GetUser(ctx context.Context, username string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, _, err := s.read()
	if err != nil {
		return nil, err
	}
	e, ok := doc.Credentials.Usernames[username]
	if !ok {
		return nil, fmt.Errorf("%w: user %s", storage.ErrNotFound, username)
	}
	return &models.User{
		Username:     username,
		Name:         e.Name,
		Email:        e.Email,
		PasswordHash: e.Password,
	}, nil
}

// read must be called with s.mu held.
func (s *CredentialStore) read() (*document, string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, "", fmt.Errorf("failed to read credentials: %w", err)
	}

	doc := &document{}
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, doc); err != nil {
			return nil, "", fmt.Errorf("failed to parse credentials: %w", err)
		}
	}
	return doc, digestOf(data), nil
}

func (s *CredentialStore) replace(base string, data []byte) error {
	current, err := os.ReadFile(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to re-read credentials: %w", err)
	}
	if digestOf(current) != base {
		return fmt.Errorf("%w: credentials file modified by another writer", storage.ErrConflict)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), "."+filepath.Base(s.path)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write credentials: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0600); err != nil {
		return fmt.Errorf("failed to set credentials permissions: %w", err)
	}
	return os.Rename(tmp.Name(), s.path)
}

func digestOf(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
