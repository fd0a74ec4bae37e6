// Package chat keeps per-user chat sessions and streams assistant replies
// from a completion API.
package chat

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrSessionNotFound is returned for an unknown (user, session) pair.
	ErrSessionNotFound = errors.New("chat session not found")
	// ErrEmptyMessage is returned when the user sends nothing.
	ErrEmptyMessage = errors.New("message cannot be empty")
	// ErrCompletion wraps failures of the completion API.
	ErrCompletion = errors.New("completion request failed")
)

// Role is the speaker of a turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in a session.
type Turn struct {
	Role    Role
	Content string
}

// Session is an ordered conversation owned by one user.
type Session struct {
	ID        string
	Owner     string
	Title     string
	Turns     []Turn
	CreatedAt time.Time
}

func (s *Session) clone() *Session {
	c := *s
	c.Turns = append([]Turn(nil), s.Turns...)
	return &c
}

type sessionKey struct {
	owner string
	id    string
}

// Store holds sessions in memory. Sessions only ever grow.
type Store struct {
	mu       sync.Mutex
	sessions map[sessionKey]*Session
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{sessions: make(map[sessionKey]*Session)}
}

// Create starts a new session for owner.
func (s *Store) Create(owner, title string) *Session {
	sess := &Session{
		ID:        uuid.New().String(),
		Owner:     owner,
		Title:     title,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionKey{owner, sess.ID}] = sess
	return sess.clone()
}

// Get returns a copy of the session.
func (s *Store) Get(owner, id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionKey{owner, id}]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return sess.clone(), nil
}

// List returns the owner's sessions, oldest first.
func (s *Store) List(owner string) []*Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*Session
	for k, sess := range s.sessions {
		if k.owner == owner {
			out = append(out, sess.clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Append adds a turn and returns the session history including it.
func (s *Store) Append(owner, id string, turn Turn) ([]Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionKey{owner, id}]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	sess.Turns = append(sess.Turns, turn)
	return append([]Turn(nil), sess.Turns...), nil
}
