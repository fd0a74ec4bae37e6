package api

// ChatTurn is one message of a session.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatSession is a conversation with its ordered turns.
type ChatSession struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Turns     []ChatTurn `json:"turns"`
	CreatedAt int64      `json:"created_at"`
}

// SendChatMessageRequest sends one user message. An empty SessionID
// starts a new session.
type SendChatMessageRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message"`
}

// SendChatMessageResponse is one frame of the reply stream. The first
// frame carries the session; following frames carry text fragments; the
// last frame has Done set.
type SendChatMessageResponse struct {
	SessionID string `json:"session_id,omitempty"`
	Title     string `json:"title,omitempty"`
	Fragment  string `json:"fragment,omitempty"`
	Done      bool   `json:"done,omitempty"`
}

// GetChatSessionRequest looks up one of the caller's sessions.
type GetChatSessionRequest struct {
	SessionID string `json:"session_id"`
}

// GetChatSessionResponse carries the session history.
type GetChatSessionResponse struct {
	Session *ChatSession `json:"session"`
}

// ListChatSessionsRequest is empty.
type ListChatSessionsRequest struct{}

// ListChatSessionsResponse lists the caller's sessions without turns.
type ListChatSessionsResponse struct {
	Sessions []*ChatSession `json:"sessions"`
}
