package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/pennyworth/internal/models"
	"github.com/mmynk/pennyworth/internal/storage"
	"github.com/mmynk/pennyworth/pkg/api"
)

var errHelpFields = errors.New("name, email and message are required")

// HelpService implements the Connect HelpService
type HelpService struct {
	store storage.HelpStore
}

// NewHelpService creates a new HelpService with the given storage backend.
func NewHelpService(store storage.HelpStore) *HelpService {
	return &HelpService{store: store}
}

// Submit stores a request for a human assistant.
func (s *HelpService) Submit(ctx context.Context, req *connect.Request[api.SubmitHelpRequestRequest]) (*connect.Response[api.SubmitHelpRequestResponse], error) {
	hr := &models.HelpRequest{
		Name:    strings.TrimSpace(req.Msg.Name),
		Email:   strings.TrimSpace(req.Msg.Email),
		Message: strings.TrimSpace(req.Msg.Message),
	}
	if hr.Name == "" || hr.Email == "" || hr.Message == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errHelpFields)
	}

	if err := s.store.CreateHelpRequest(ctx, hr); err != nil {
		slog.Error("Failed to create help request", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Help request submitted", "id", hr.ID, "email", hr.Email)
	return connect.NewResponse(&api.SubmitHelpRequestResponse{Request: helpToAPI(hr)}), nil
}

// List returns all help requests, newest first.
func (s *HelpService) List(ctx context.Context, req *connect.Request[api.ListHelpRequestsRequest]) (*connect.Response[api.ListHelpRequestsResponse], error) {
	requests, err := s.store.ListHelpRequests(ctx)
	if err != nil {
		slog.Error("Failed to list help requests", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	resp := &api.ListHelpRequestsResponse{Requests: make([]*api.HelpRequest, 0, len(requests))}
	for _, hr := range requests {
		resp.Requests = append(resp.Requests, helpToAPI(hr))
	}
	return connect.NewResponse(resp), nil
}

func helpToAPI(hr *models.HelpRequest) *api.HelpRequest {
	return &api.HelpRequest{
		ID:        hr.ID,
		Name:      hr.Name,
		Email:     hr.Email,
		Message:   hr.Message,
		CreatedAt: hr.CreatedAt,
	}
}
