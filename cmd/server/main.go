package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/pennyworth/internal/auth"
	"github.com/mmynk/pennyworth/internal/chat"
	"github.com/mmynk/pennyworth/internal/config"
	"github.com/mmynk/pennyworth/internal/metrics"
	"github.com/mmynk/pennyworth/internal/middleware"
	"github.com/mmynk/pennyworth/internal/predict"
	"github.com/mmynk/pennyworth/internal/service"
	"github.com/mmynk/pennyworth/internal/storage"
	"github.com/mmynk/pennyworth/internal/storage/csvfile"
	"github.com/mmynk/pennyworth/internal/storage/sqlite"
	"github.com/mmynk/pennyworth/internal/storage/yamlfile"
	"github.com/mmynk/pennyworth/internal/w2"
	"github.com/mmynk/pennyworth/pkg/api/apiconnect"
	"github.com/mmynk/pennyworth/pkg/logging"
)

// W-2 uploads travel inside the request message.
const maxRequestBytes = 20 << 20

func main() {
	// .env is read first so it can set LOG_LEVEL and LOG_FORMAT
	cfg := config.Load()
	logging.Setup()

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	var history storage.HistoryStore
	switch cfg.HistoryBackend {
	case config.HistoryBackendSQLite:
		history = store
		slog.Info("History stored in database", "database", cfg.DBPath)
	case config.HistoryBackendCSV:
		csvStore, err := csvfile.New(cfg.HistoryCSVPath)
		if err != nil {
			slog.Error("Failed to initialize history file", "error", err)
			os.Exit(1)
		}
		defer csvStore.Close()
		history = csvStore
		slog.Info("History stored in file", "path", cfg.HistoryCSVPath)
	default:
		slog.Error("Unknown history backend", "backend", cfg.HistoryBackend)
		os.Exit(1)
	}

	credentials, err := yamlfile.New(cfg.CredentialsPath)
	if err != nil {
		slog.Error("Failed to initialize credential store", "error", err)
		os.Exit(1)
	}

	model, err := predict.TrainTaxModel(predict.DefaultForestConfig())
	if err != nil {
		slog.Error("Failed to train liability model", "error", err)
		os.Exit(1)
	}
	slog.Info("Liability model trained",
		"train_rows", model.TrainRows,
		"test_rows", model.TestRows,
		"holdout_mae", model.HoldoutMAE,
	)

	if cfg.LLMAPIKey == "" {
		slog.Warn("LLM_API_KEY is not set; chat requests will fail")
	}
	completer := chat.NewOpenAICompleter(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMTitleModel)
	processor := w2.NewProcessor(cfg.UploadPath, w2.NewTesseract(cfg.PdftoppmPath, cfg.TesseractPath, cfg.OCRDPI))

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	if cfg.InsecureJWTSecret() {
		slog.Warn("JWT_SECRET is not set; session tokens are signed with the default secret and can be forged")
	}
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)
	authenticator := auth.NewPasswordAuthenticator(credentials)

	// Logging runs outside auth, so rejected calls are logged too
	public := []connect.HandlerOption{
		connect.WithInterceptors(
			middleware.MetricsInterceptor(m),
			middleware.LoggingInterceptor(),
			middleware.OptionalAuth(jwtManager, cfg.CookieName),
		),
		connect.WithReadMaxBytes(maxRequestBytes),
	}
	private := []connect.HandlerOption{
		connect.WithInterceptors(
			middleware.MetricsInterceptor(m),
			middleware.LoggingInterceptor(),
			middleware.RequireAuth(jwtManager, cfg.CookieName),
		),
		connect.WithReadMaxBytes(maxRequestBytes),
	}

	mux := http.NewServeMux()

	// Register Connect services
	mux.Handle(apiconnect.NewWellnessServiceHandler(service.NewWellnessService(), public...))
	mux.Handle(apiconnect.NewTaxServiceHandler(service.NewTaxService(), public...))
	mux.Handle(apiconnect.NewIncomeServiceHandler(service.NewIncomeService(history, m), private...))
	mux.Handle(apiconnect.NewW2ServiceHandler(service.NewW2Service(processor, model, m), private...))
	mux.Handle(apiconnect.NewChatServiceHandler(service.NewChatService(chat.New(chat.NewStore(), completer), m), private...))
	mux.Handle(apiconnect.NewAuthServiceHandler(
		service.NewAuthService(authenticator, jwtManager, cfg.CookieName, cfg.CookieExpiry, m), public...))
	mux.Handle(apiconnect.NewHelpServiceHandler(service.NewHelpService(store), public...))

	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	if staticDir, ok := resolveStatic(cfg.StaticPath); ok {
		slog.Info("Serving static files", "path", staticDir)
		mux.Handle("/", staticHandler(staticDir))
	}

	// Add logging and CORS middleware
	loggedHandler := loggingMiddleware(corsMiddleware(mux))

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	h2cHandler := h2c.NewHandler(loggedHandler, &http2.Server{})

	addr := fmt.Sprintf(":%d", cfg.Port)
	slog.Info("Connect server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func resolveStatic(path string) (string, bool) {
	dir, err := filepath.Abs(path)
	if err != nil {
		slog.Warn("Failed to resolve static path", "path", path, "error", err)
		return "", false
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		slog.Info("Static path not found, serving API only", "path", dir)
		return "", false
	}
	return dir, true
}

// staticHandler serves files from dir, falling back to index.html.
func staticHandler(dir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Unknown procedures are not pages
		if apiconnect.IsProcedure(r.URL.Path) {
			http.NotFound(w, r)
			return
		}

		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}

		filePath := filepath.Join(dir, filepath.Clean(urlPath))
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			http.ServeFile(w, r, filepath.Join(dir, "index.html"))
			return
		}

		http.ServeFile(w, r, filePath)
	})
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		slog.Debug("Request received",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
		)

		next.ServeHTTP(w, r)

		slog.Info("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
