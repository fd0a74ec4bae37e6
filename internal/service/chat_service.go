package service

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/pennyworth/internal/chat"
	"github.com/mmynk/pennyworth/internal/metrics"
	"github.com/mmynk/pennyworth/internal/middleware"
	"github.com/mmynk/pennyworth/pkg/api"
)

// ChatService implements the Connect ChatService
type ChatService struct {
	chat    *chat.Chat
	metrics *metrics.Metrics
}

// NewChatService creates a new ChatService.
func NewChatService(c *chat.Chat, m *metrics.Metrics) *ChatService {
	return &ChatService{chat: c, metrics: m}
}

// Send records the user's message and streams the assistant's reply. The
// first frame names the session, then one frame per fragment, then a
// final frame with Done set.
func (s *ChatService) Send(ctx context.Context, req *connect.Request[api.SendChatMessageRequest], stream *connect.ServerStream[api.SendChatMessageResponse]) error {
	username := middleware.GetUsername(ctx)

	reply, err := s.chat.Send(ctx, username, req.Msg.SessionID, req.Msg.Message)
	if err != nil {
		slog.Warn("Chat send failed", "username", username, "session_id", req.Msg.SessionID, "error", err)
		return chatError(err)
	}
	defer reply.Close()

	if reply.Created {
		slog.Info("Chat session created", "username", username, "session_id", reply.SessionID, "title", reply.Title)
	}
	if err := stream.Send(&api.SendChatMessageResponse{SessionID: reply.SessionID, Title: reply.Title}); err != nil {
		return err
	}

	fragments := 0
	for {
		frag, err := reply.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			slog.Error("Chat stream failed", "username", username, "session_id", reply.SessionID, "fragments", fragments, "error", err)
			return chatError(err)
		}
		if frag == "" {
			continue
		}
		if err := stream.Send(&api.SendChatMessageResponse{Fragment: frag}); err != nil {
			return err
		}
		s.metrics.ChatFragment()
		fragments++
	}

	slog.Debug("Chat reply complete", "session_id", reply.SessionID, "fragments", fragments, "chars", len(reply.Text()))
	return stream.Send(&api.SendChatMessageResponse{SessionID: reply.SessionID, Done: true})
}

// GetSession returns one of the caller's sessions with its turns.
func (s *ChatService) GetSession(ctx context.Context, req *connect.Request[api.GetChatSessionRequest]) (*connect.Response[api.GetChatSessionResponse], error) {
	sess, err := s.chat.Store().Get(middleware.GetUsername(ctx), req.Msg.SessionID)
	if err != nil {
		return nil, chatError(err)
	}
	return connect.NewResponse(&api.GetChatSessionResponse{Session: sessionToAPI(sess, true)}), nil
}

// ListSessions returns the caller's sessions, oldest first, without turns.
func (s *ChatService) ListSessions(ctx context.Context, req *connect.Request[api.ListChatSessionsRequest]) (*connect.Response[api.ListChatSessionsResponse], error) {
	sessions := s.chat.Store().List(middleware.GetUsername(ctx))
	resp := &api.ListChatSessionsResponse{Sessions: make([]*api.ChatSession, 0, len(sessions))}
	for _, sess := range sessions {
		resp.Sessions = append(resp.Sessions, sessionToAPI(sess, false))
	}
	return connect.NewResponse(resp), nil
}

func chatError(err error) error {
	switch {
	case errors.Is(err, chat.ErrEmptyMessage):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, chat.ErrSessionNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, chat.ErrCompletion):
		return connect.NewError(connect.CodeUnavailable, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

func sessionToAPI(sess *chat.Session, withTurns bool) *api.ChatSession {
	out := &api.ChatSession{
		ID:        sess.ID,
		Title:     sess.Title,
		CreatedAt: sess.CreatedAt.Unix(),
	}
	if withTurns {
		out.Turns = make([]api.ChatTurn, 0, len(sess.Turns))
		for _, t := range sess.Turns {
			out.Turns = append(out.Turns, api.ChatTurn{Role: string(t.Role), Content: t.Content})
		}
	}
	return out
}
