package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/pennyworth/internal/auth"
	"github.com/mmynk/pennyworth/internal/metrics"
	"github.com/mmynk/pennyworth/internal/middleware"
	"github.com/mmynk/pennyworth/internal/models"
	"github.com/mmynk/pennyworth/internal/storage"
	"github.com/mmynk/pennyworth/pkg/api"
)

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	cookieName    string
	cookieExpiry  time.Duration
	metrics       *metrics.Metrics
}

// NewAuthService creates a new authentication service. Successful logins
// set a session cookie named cookieName that lives for cookieExpiry.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, cookieName string, cookieExpiry time.Duration, m *metrics.Metrics) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		cookieName:    cookieName,
		cookieExpiry:  cookieExpiry,
		metrics:       m,
	}
}

// Register creates a new user account.
func (s *AuthService) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	slog.Info("Register request", "username", req.Msg.Username)

	user, err := s.authenticator.Register(ctx, req.Msg.Username, req.Msg.Name, req.Msg.Email, req.Msg.Password)
	if err != nil {
		slog.Warn("Registration failed", "username", req.Msg.Username, "error", err)
		switch {
		case errors.Is(err, auth.ErrMissingField):
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		case errors.Is(err, auth.ErrUsernameExists):
			return nil, connect.NewError(connect.CodeAlreadyExists, err)
		case errors.Is(err, storage.ErrConflict):
			return nil, connect.NewError(connect.CodeAborted, err)
		}
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("User registered successfully", "username", user.Username)
	return connect.NewResponse(&api.RegisterResponse{User: userToAPI(user)}), nil
}

// Login authenticates a user, returns a JWT token and sets it as the
// session cookie.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	slog.Info("Login request", "username", req.Msg.Username)

	if req.Msg.Username == "" || req.Msg.Password == "" {
		s.metrics.Login(auth.ErrInvalidCredentials)
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidCredentials)
	}

	user, err := s.authenticator.Authenticate(ctx, req.Msg.Username, req.Msg.Password)
	s.metrics.Login(err)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			slog.Warn("Login failed", "username", req.Msg.Username, "error", err)
			return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidCredentials)
		}
		slog.Error("Login failed", "username", req.Msg.Username, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		slog.Error("Failed to generate token", "username", user.Username, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	expiresAt := time.Now().Add(s.jwtManager.Duration())

	resp := connect.NewResponse(&api.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
		User:      userToAPI(user),
	})
	cookie := &http.Cookie{
		Name:     s.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(s.cookieExpiry),
		MaxAge:   int(s.cookieExpiry.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	resp.Header().Add("Set-Cookie", cookie.String())

	slog.Info("User logged in successfully", "username", user.Username)
	return resp, nil
}

// Logout clears the session cookie. Tokens are stateless, so a copy held
// elsewhere stays valid until it expires.
func (s *AuthService) Logout(ctx context.Context, req *connect.Request[api.LogoutRequest]) (*connect.Response[api.LogoutResponse], error) {
	slog.Info("Logout request", "username", middleware.GetUsername(ctx))

	resp := connect.NewResponse(&api.LogoutResponse{})
	cookie := &http.Cookie{
		Name:     s.cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	resp.Header().Add("Set-Cookie", cookie.String())
	return resp, nil
}

// GetCurrentUser returns the currently authenticated user's information.
func (s *AuthService) GetCurrentUser(ctx context.Context, req *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error) {
	// Set by the auth interceptor
	username := middleware.GetUsername(ctx)
	if username == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	user, err := s.authenticator.Lookup(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
		}
		slog.Error("Failed to look up user", "username", username, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(&api.GetCurrentUserResponse{User: userToAPI(user)}), nil
}

func userToAPI(u *models.User) *api.User {
	return &api.User{
		Username: u.Username,
		Name:     u.Name,
		Email:    u.Email,
	}
}
