package middleware

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/pennyworth/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// UsernameKey is the context key for storing the authenticated username.
	UsernameKey contextKey = "username"
	// NameKey is the context key for storing the authenticated user's display name.
	NameKey contextKey = "name"
)

// GetUsername extracts the username from the context.
// Returns empty string if not found.
func GetUsername(ctx context.Context) string {
	username, _ := ctx.Value(UsernameKey).(string)
	return username
}

// GetName extracts the display name from the context.
// Returns empty string if not found.
func GetName(ctx context.Context) string {
	name, _ := ctx.Value(NameKey).(string)
	return name
}

// callerKey holds a *caller placed by an outer interceptor, so the identity
// resolved further in is visible after the call returns.
type callerKey struct{}

type caller struct {
	username string
}

func withCaller(ctx context.Context) (context.Context, *caller) {
	c := &caller{}
	return context.WithValue(ctx, callerKey{}, c), c
}

// WithUser returns a context carrying the given session identity.
func WithUser(ctx context.Context, username, name string) context.Context {
	if c, ok := ctx.Value(callerKey{}).(*caller); ok {
		c.username = username
	}
	ctx = context.WithValue(ctx, UsernameKey, username)
	return context.WithValue(ctx, NameKey, name)
}

// SessionToken returns the token from an "Authorization: Bearer" header,
// falling back to the session cookie.
func SessionToken(header http.Header, cookieName string) (string, error) {
	if authHeader := header.Get("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return "", auth.ErrInvalidToken
		}
		return parts[1], nil
	}
	if cookieName != "" {
		req := http.Request{Header: header}
		if cookie, err := req.Cookie(cookieName); err == nil && cookie.Value != "" {
			return cookie.Value, nil
		}
	}
	return "", auth.ErrMissingToken
}

type authInterceptor struct {
	jwtManager *auth.JWTManager
	cookieName string
	required   bool
}

// RequireAuth returns an interceptor that validates the session token and
// rejects calls without one. The username and display name are added to
// the request context.
func RequireAuth(jwtManager *auth.JWTManager, cookieName string) connect.Interceptor {
	return &authInterceptor{jwtManager: jwtManager, cookieName: cookieName, required: true}
}

// OptionalAuth returns an interceptor that validates the session token if
// present, but allows calls without one.
func OptionalAuth(jwtManager *auth.JWTManager, cookieName string) connect.Interceptor {
	return &authInterceptor{jwtManager: jwtManager, cookieName: cookieName}
}

func (i *authInterceptor) authenticate(ctx context.Context, header http.Header) (context.Context, error) {
	token, err := SessionToken(header, i.cookieName)
	if err != nil {
		if i.required {
			return ctx, connect.NewError(connect.CodeUnauthenticated, err)
		}
		return ctx, nil
	}

	claims, err := i.jwtManager.Validate(token)
	if err != nil {
		if i.required {
			return ctx, connect.NewError(connect.CodeUnauthenticated, err)
		}
		// Ignore errors - optional auth
		return ctx, nil
	}

	return WithUser(ctx, claims.Username, claims.Name), nil
}

func (i *authInterceptor) WrapUnary(next connect.UnaryFunc) connect.UnaryFunc {
	return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		if req.Spec().IsClient {
			return next(ctx, req)
		}
		ctx, err := i.authenticate(ctx, req.Header())
		if err != nil {
			return nil, err
		}
		return next(ctx, req)
	}
}

func (i *authInterceptor) WrapStreamingClient(next connect.StreamingClientFunc) connect.StreamingClientFunc {
	return next
}

func (i *authInterceptor) WrapStreamingHandler(next connect.StreamingHandlerFunc) connect.StreamingHandlerFunc {
	return func(ctx context.Context, conn connect.StreamingHandlerConn) error {
		ctx, err := i.authenticate(ctx, conn.RequestHeader())
		if err != nil {
			return err
		}
		return next(ctx, conn)
	}
}
