package chat

import (
	"context"
	"errors"
	"io"
	"regexp"
	"strings"
)

// Stream yields reply fragments in order. Recv returns io.EOF after the
// last fragment; any other error ends the stream. A Stream cannot be
// restarted.
type Stream interface {
	Recv() (string, error)
	Close() error
}

// Completer talks to a chat completion API.
type Completer interface {
	// Stream starts a streamed completion over the whole conversation.
	Stream(ctx context.Context, turns []Turn) (Stream, error)
	// Complete returns a single-shot completion.
	Complete(ctx context.Context, turns []Turn) (string, error)
}

// DefaultTitle is used when a title cannot be generated.
const DefaultTitle = "New Chat"

const titlePrompt = "You are a helpful assistant that generates short, descriptive titles for financial advice chat conversations. Keep it under 5 words using only alphanumeric characters."

var titleCleaner = regexp.MustCompile(`[^a-zA-Z0-9 ':,;-]+`)

// Chat manages sessions and streams replies into them.
type Chat struct {
	store     *Store
	completer Completer
}

// New creates a Chat backed by store.
func New(store *Store, completer Completer) *Chat {
	return &Chat{store: store, completer: completer}
}

// Store returns the session store.
func (c *Chat) Store() *Store {
	return c.store
}

// Send records the user's message and starts the assistant reply. An
// empty sessionID starts a new session. The user turn stays in the
// session even if the completion fails.
func (c *Chat) Send(ctx context.Context, owner, sessionID, message string) (*Reply, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrEmptyMessage
	}

	created := false
	title := ""
	if sessionID == "" {
		title = c.Title(ctx, message)
		sess := c.store.Create(owner, title)
		sessionID = sess.ID
		created = true
	} else {
		sess, err := c.store.Get(owner, sessionID)
		if err != nil {
			return nil, err
		}
		title = sess.Title
	}

	history, err := c.store.Append(owner, sessionID, Turn{Role: RoleUser, Content: message})
	if err != nil {
		return nil, err
	}

	stream, err := c.completer.Stream(ctx, history)
	if err != nil {
		return nil, errors.Join(ErrCompletion, err)
	}

	return &Reply{
		SessionID: sessionID,
		Title:     title,
		Created:   created,
		owner:     owner,
		store:     c.store,
		stream:    stream,
	}, nil
}

// Title asks the completion API for a short session title.
func (c *Chat) Title(ctx context.Context, message string) string {
	out, err := c.completer.Complete(ctx, []Turn{
		{Role: RoleSystem, Content: titlePrompt},
		{Role: RoleUser, Content: "Create a short title for this chat: " + quote(message)},
	})
	if err != nil {
		return DefaultTitle
	}
	if cleaned := strings.TrimSpace(titleCleaner.ReplaceAllString(out, "")); cleaned != "" {
		return cleaned
	}
	return DefaultTitle
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `'`) + `"`
}

// Reply is the assistant's streamed answer. When the stream ends the
// assembled text is appended to the session; on error nothing is.
type Reply struct {
	SessionID string
	Title     string
	Created   bool

	owner  string
	store  *Store
	stream Stream
	text   strings.Builder
	done   bool
	err    error
}

// Recv returns the next fragment, io.EOF at the end, or the stream error.
func (r *Reply) Recv() (string, error) {
	if r.done {
		if r.err != nil {
			return "", r.err
		}
		return "", io.EOF
	}

	frag, err := r.stream.Recv()
	if errors.Is(err, io.EOF) {
		r.done = true
		if _, err := r.store.Append(r.owner, r.SessionID, Turn{Role: RoleAssistant, Content: r.text.String()}); err != nil {
			r.err = err
			return "", err
		}
		return "", io.EOF
	}
	if err != nil {
		r.done = true
		r.err = errors.Join(ErrCompletion, err)
		return "", r.err
	}

	r.text.WriteString(frag)
	return frag, nil
}

// Text is the reply assembled so far.
func (r *Reply) Text() string {
	return r.text.String()
}

// Close releases the underlying stream.
func (r *Reply) Close() error {
	return r.stream.Close()
}
