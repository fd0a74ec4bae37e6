// Package config loads server configuration from the environment.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// History storage backends.
const (
	HistoryBackendCSV    = "csv"
	HistoryBackendSQLite = "sqlite"
)

// DefaultJWTSecret signs tokens when JWT_SECRET is unset. Anyone who knows
// it can mint sessions.
const DefaultJWTSecret = "change-me"

// Config holds application level configuration loaded from environment variables.
type Config struct {
	Port       int
	StaticPath string

	DBPath          string
	HistoryBackend  string
	HistoryCSVPath  string
	CredentialsPath string
	UploadPath      string

	JWTSecret     string
	TokenDuration time.Duration
	CookieName    string
	CookieExpiry  time.Duration

	LLMBaseURL    string
	LLMAPIKey     string
	LLMModel      string
	LLMTitleModel string

	PdftoppmPath  string
	TesseractPath string
	OCRDPI        int
}

// Load reads an optional .env file and builds Config with defaults.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("Failed to load .env file", "error", err)
	}

	cookieDays := getEnvInt("COOKIE_EXPIRY_DAYS", 30)

	return &Config{
		Port:       getEnvInt("PORT", 8080),
		StaticPath: getEnv("STATIC_PATH", "./static"),

		DBPath:          getEnv("DB_PATH", "./data/pennyworth.db"),
		HistoryBackend:  getEnv("HISTORY_BACKEND", HistoryBackendCSV),
		HistoryCSVPath:  getEnv("HISTORY_CSV_PATH", "./data/financial_data.csv"),
		CredentialsPath: getEnv("CREDENTIALS_PATH", "./data/credentials.yaml"),
		UploadPath:      getEnv("UPLOAD_PATH", "./data/temp_w2.pdf"),

		JWTSecret:     getEnv("JWT_SECRET", DefaultJWTSecret),
		TokenDuration: getEnvDuration("TOKEN_DURATION", time.Duration(cookieDays)*24*time.Hour),
		CookieName:    getEnv("COOKIE_NAME", "pennyworth_session"),
		CookieExpiry:  time.Duration(cookieDays) * 24 * time.Hour,

		LLMBaseURL:    getEnv("LLM_BASE_URL", "https://api.cerebras.ai/v1"),
		LLMAPIKey:     os.Getenv("LLM_API_KEY"),
		LLMModel:      getEnv("LLM_MODEL", "llama3.1-8b"),
		LLMTitleModel: getEnv("LLM_TITLE_MODEL", getEnv("LLM_MODEL", "llama3.1-8b")),

		PdftoppmPath:  getEnv("PDFTOPPM_PATH", "pdftoppm"),
		TesseractPath: getEnv("TESSERACT_PATH", "tesseract"),
		OCRDPI:        getEnvInt("OCR_DPI", 200),
	}
}

// InsecureJWTSecret reports whether tokens are signed with the built-in
// default secret.
func (c *Config) InsecureJWTSecret() bool {
	return c.JWTSecret == DefaultJWTSecret
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
		slog.Warn("Ignoring invalid integer env value", "key", key, "value", v)
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
		slog.Warn("Ignoring invalid duration env value", "key", key, "value", v)
	}
	return fallback
}
