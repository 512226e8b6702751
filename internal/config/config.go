package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	// Generation model (OpenAI-compatible chat completions API)
	LLMBaseURL   string
	LLMModelName string
	LLMAPIKey    string

	// Embedding model (OpenAI-compatible embeddings API)
	EmbeddingBaseURL   string
	EmbeddingModelName string

	// Entity store
	DBPath string

	// Vector store
	QdrantURL        string
	QdrantCollection string
	QdrantVectorSize int

	// WhatsApp Cloud API
	WhatsAppAPIBase     string
	WhatsAppToken       string
	WhatsAppVerifyToken string

	// Company auth
	JWTSecret string
	JWTTTL    time.Duration

	APIPort   string
	LogLevel  slog.Level
	LogFormat string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or a parent directory, it is
// loaded automatically; environment variables already set take precedence.
func Load() (*Config, error) {
	_ = godotenv.Load() // Try current directory

	// Walk up a few levels so the binary can be started from subdirectories.
	if wd, err := os.Getwd(); err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		LLMBaseURL:          getEnv("LLM_BASE_URL", "https://api.openai.com"),
		LLMModelName:        getEnv("LLM_MODEL", "gpt-4o-mini"),
		LLMAPIKey:           getEnv("LLM_API_KEY", ""),
		EmbeddingBaseURL:    getEnv("EMBEDDING_BASE_URL", "https://api.openai.com"),
		EmbeddingModelName:  getEnv("EMBEDDING_MODEL_NAME", "text-embedding-3-small"),
		DBPath:              getEnv("DB_PATH", "./data/supaagent.db"),
		QdrantURL:           getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantCollection:    getEnv("QDRANT_COLLECTION", "chunks"),
		WhatsAppAPIBase:     getEnv("WHATSAPP_API_BASE", "https://graph.facebook.com/v20.0"),
		WhatsAppToken:       getEnv("WHATSAPP_TOKEN", ""),
		WhatsAppVerifyToken: getEnv("WHATSAPP_VERIFY_TOKEN", ""),
		JWTSecret:           getEnv("JWT_SECRET", ""),
		APIPort:             getEnv("API_PORT", "5000"),
		LogFormat:           getEnv("LOG_FORMAT", "text"),
	}

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	// Must match the output vector size of the embedding model. For
	// text-embedding-3-small this is 1536. If the size changes, the Qdrant
	// collection must be recreated.
	vectorSizeStr := getEnv("QDRANT_VECTOR_SIZE", "")
	if vectorSizeStr == "" {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE is required")
	}
	vectorSize, err := strconv.Atoi(vectorSizeStr)
	if err != nil {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be a valid integer: %w", err)
	}
	if vectorSize <= 0 {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be greater than 0")
	}
	cfg.QdrantVectorSize = vectorSize

	jwtTTLStr := getEnv("JWT_TTL", "24h")
	jwtTTL, err := time.ParseDuration(jwtTTLStr)
	if err != nil {
		return nil, fmt.Errorf("JWT_TTL must be a valid duration: %w", err)
	}
	cfg.JWTTTL = jwtTTL

	// Validate required fields
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.WhatsAppVerifyToken == "" {
		return nil, fmt.Errorf("WHATSAPP_VERIFY_TOKEN is required")
	}

	// Create the data directory if it doesn't exist (for the DB file)
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// parseLogLevel converts a level name to a slog.Level.
func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL: %q", s)
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
