package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/pennyworth/internal/auth"
	"github.com/mmynk/pennyworth/internal/chat"
	"github.com/mmynk/pennyworth/internal/middleware"
	"github.com/mmynk/pennyworth/internal/predict"
	"github.com/mmynk/pennyworth/internal/storage/csvfile"
	"github.com/mmynk/pennyworth/internal/storage/sqlite"
	"github.com/mmynk/pennyworth/internal/storage/yamlfile"
	"github.com/mmynk/pennyworth/internal/w2"
	"github.com/mmynk/pennyworth/pkg/api"
	"github.com/mmynk/pennyworth/pkg/api/apiconnect"
)

const testCookieName = "pennyworth_session"

type fakeOCR struct {
	mu   sync.Mutex
	text string
	err  error
}

func (f *fakeOCR) set(text string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.text, f.err = text, err
}

func (f *fakeOCR) FirstPageText(context.Context, string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.text, f.err
}

type fakeStream struct {
	frags []string
	err   error
}

func (s *fakeStream) Recv() (string, error) {
	if len(s.frags) > 0 {
		frag := s.frags[0]
		s.frags = s.frags[1:]
		return frag, nil
	}
	if s.err != nil {
		return "", s.err
	}
	return "", io.EOF
}

func (s *fakeStream) Close() error { return nil }

type fakeCompleter struct {
	mu        sync.Mutex
	frags     []string
	streamErr error
	title     string
}

func (f *fakeCompleter) set(frags []string, streamErr error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frags, f.streamErr = frags, streamErr
}

func (f *fakeCompleter) Stream(context.Context, []chat.Turn) (chat.Stream, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &fakeStream{frags: append([]string(nil), f.frags...), err: f.streamErr}, nil
}

func (f *fakeCompleter) Complete(context.Context, []chat.Turn) (string, error) {
	return f.title, nil
}

var minimalPDF = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")

// testServer runs every service behind the same interceptors as the
// server binary.
type testServer struct {
	server    *httptest.Server
	ocr       *fakeOCR
	completer *fakeCompleter
	csvPath   string

	wellness apiconnect.WellnessServiceClient
	tax      apiconnect.TaxServiceClient
	income   apiconnect.IncomeServiceClient
	w2       apiconnect.W2ServiceClient
	chat     apiconnect.ChatServiceClient
	auth     apiconnect.AuthServiceClient
	help     apiconnect.HelpServiceClient
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	dir := t.TempDir()

	store, err := sqlite.New(filepath.Join(dir, "pennyworth.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	csvPath := filepath.Join(dir, "financial_data.csv")
	history, err := csvfile.New(csvPath)
	if err != nil {
		t.Fatalf("failed to create history store: %v", err)
	}
	credentials, err := yamlfile.New(filepath.Join(dir, "credentials.yaml"))
	if err != nil {
		t.Fatalf("failed to create credential store: %v", err)
	}
	model, err := predict.TrainTaxModel(predict.DefaultForestConfig())
	if err != nil {
		t.Fatalf("failed to train model: %v", err)
	}

	ocr := &fakeOCR{}
	completer := &fakeCompleter{title: "Budget help"}
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(credentials).WithCost(bcrypt.MinCost)

	public := connect.WithInterceptors(
		middleware.LoggingInterceptor(),
		middleware.OptionalAuth(jwtManager, testCookieName),
	)
	private := connect.WithInterceptors(
		middleware.LoggingInterceptor(),
		middleware.RequireAuth(jwtManager, testCookieName),
	)

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewWellnessServiceHandler(NewWellnessService(), public))
	mux.Handle(apiconnect.NewTaxServiceHandler(NewTaxService(), public))
	mux.Handle(apiconnect.NewIncomeServiceHandler(NewIncomeService(history, nil), private))
	mux.Handle(apiconnect.NewW2ServiceHandler(
		NewW2Service(w2.NewProcessor(filepath.Join(dir, "temp_w2.pdf"), ocr), model, nil), private))
	mux.Handle(apiconnect.NewChatServiceHandler(
		NewChatService(chat.New(chat.NewStore(), completer), nil), private))
	mux.Handle(apiconnect.NewAuthServiceHandler(
		NewAuthService(authenticator, jwtManager, testCookieName, 24*time.Hour, nil), public))
	mux.Handle(apiconnect.NewHelpServiceHandler(NewHelpService(store), public))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := server.Client()
	return &testServer{
		server:    server,
		ocr:       ocr,
		completer: completer,
		csvPath:   csvPath,
		wellness:  apiconnect.NewWellnessServiceClient(client, server.URL),
		tax:       apiconnect.NewTaxServiceClient(client, server.URL),
		income:    apiconnect.NewIncomeServiceClient(client, server.URL),
		w2:        apiconnect.NewW2ServiceClient(client, server.URL),
		chat:      apiconnect.NewChatServiceClient(client, server.URL),
		auth:      apiconnect.NewAuthServiceClient(client, server.URL),
		help:      apiconnect.NewHelpServiceClient(client, server.URL),
	}
}

// login registers username and returns a session token for it.
func (s *testServer) login(t *testing.T, username string) string {
	t.Helper()
	ctx := context.Background()

	_, err := s.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
		Username: username,
		Name:     "Test " + username,
		Email:    username + "@example.com",
		Password: "secret-" + username,
	}))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	resp, err := s.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{
		Username: username,
		Password: "secret-" + username,
	}))
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	return resp.Msg.Token
}

// withToken builds a request carrying a bearer token.
func withToken[T any](msg *T, token string) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+token)
	return req
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Fatalf("expected code %v, got %v (%v)", want, got, err)
	}
}
