package api

// User is the public view of an account.
type User struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

// RegisterRequest creates an account.
type RegisterRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse returns the new account.
type RegisterResponse struct {
	User *User `json:"user"`
}

// LoginRequest carries credentials.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the session token. The same token is also set
// as a cookie.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
	User      *User  `json:"user"`
}

// LogoutRequest is empty.
type LogoutRequest struct{}

// LogoutResponse is empty.
type LogoutResponse struct{}

// GetCurrentUserRequest is empty.
type GetCurrentUserRequest struct{}

// GetCurrentUserResponse returns the session's user.
type GetCurrentUserResponse struct {
	User *User `json:"user"`
}

// HelpRequest is a request for a human financial assistant.
type HelpRequest struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Message   string `json:"message"`
	CreatedAt int64  `json:"created_at"`
}

// SubmitHelpRequestRequest files a help request. All fields are required.
type SubmitHelpRequestRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// SubmitHelpRequestResponse returns the stored request.
type SubmitHelpRequestResponse struct {
	Request *HelpRequest `json:"request"`
}

// ListHelpRequestsRequest is empty.
type ListHelpRequestsRequest struct{}

// ListHelpRequestsResponse lists requests newest first.
type ListHelpRequestsResponse struct {
	Requests []*HelpRequest `json:"requests"`
}
