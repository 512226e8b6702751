package config

import (
	"log/slog"
	"os"
	"testing"
	"time"
)

// setEnv sets an environment variable, ignoring errors (for test setup)
func setEnv(key, value string) {
	_ = os.Setenv(key, value)
}

// unsetEnv unsets an environment variable, ignoring errors (for test cleanup)
func unsetEnv(key string) {
	_ = os.Unsetenv(key)
}

func TestLoad(t *testing.T) {
	// Save original env vars
	originalEnv := make(map[string]string)
	envVars := []string{
		"QDRANT_VECTOR_SIZE", "JWT_SECRET", "WHATSAPP_VERIFY_TOKEN",
		"LLM_BASE_URL", "LLM_API_KEY", "LLM_MODEL",
		"EMBEDDING_BASE_URL", "EMBEDDING_MODEL_NAME",
		"DB_PATH", "QDRANT_URL", "QDRANT_COLLECTION", "API_PORT",
		"JWT_TTL", "LOG_LEVEL", "LOG_FORMAT", "WHATSAPP_TOKEN", "WHATSAPP_API_BASE",
	}
	for _, key := range envVars {
		originalEnv[key] = os.Getenv(key)
		unsetEnv(key)
	}
	defer func() {
		for key, value := range originalEnv {
			if value != "" {
				setEnv(key, value)
			} else {
				unsetEnv(key)
			}
		}
	}()

	tests := []struct {
		name        string
		setupEnv    func(*testing.T)
		wantErr     bool
		checkConfig func(*Config) bool
	}{
		{
			name: "valid config with all required fields",
			setupEnv: func(t *testing.T) {
				setEnv("QDRANT_VECTOR_SIZE", "1536")
				setEnv("JWT_SECRET", "test-secret")
				setEnv("WHATSAPP_VERIFY_TOKEN", "verify-me")
				setEnv("DB_PATH", t.TempDir()+"/test.db")
			},
			wantErr: false,
			checkConfig: func(cfg *Config) bool {
				return cfg.QdrantVectorSize == 1536 &&
					cfg.LLMModelName == "gpt-4o-mini" &&
					cfg.EmbeddingModelName == "text-embedding-3-small" &&
					cfg.JWTTTL == 24*time.Hour &&
					cfg.APIPort == "5000"
			},
		},
		{
			name: "missing QDRANT_VECTOR_SIZE",
			setupEnv: func(t *testing.T) {
				setEnv("JWT_SECRET", "test-secret")
				setEnv("WHATSAPP_VERIFY_TOKEN", "verify-me")
				setEnv("DB_PATH", t.TempDir()+"/test.db")
			},
			wantErr: true,
		},
		{
			name: "non-numeric QDRANT_VECTOR_SIZE",
			setupEnv: func(t *testing.T) {
				setEnv("QDRANT_VECTOR_SIZE", "lots")
				setEnv("JWT_SECRET", "test-secret")
				setEnv("WHATSAPP_VERIFY_TOKEN", "verify-me")
				setEnv("DB_PATH", t.TempDir()+"/test.db")
			},
			wantErr: true,
		},
		{
			name: "missing JWT_SECRET",
			setupEnv: func(t *testing.T) {
				setEnv("QDRANT_VECTOR_SIZE", "1536")
				setEnv("WHATSAPP_VERIFY_TOKEN", "verify-me")
				setEnv("DB_PATH", t.TempDir()+"/test.db")
			},
			wantErr: true,
		},
		{
			name: "missing WHATSAPP_VERIFY_TOKEN",
			setupEnv: func(t *testing.T) {
				setEnv("QDRANT_VECTOR_SIZE", "1536")
				setEnv("JWT_SECRET", "test-secret")
				setEnv("DB_PATH", t.TempDir()+"/test.db")
			},
			wantErr: true,
		},
		{
			name: "invalid JWT_TTL",
			setupEnv: func(t *testing.T) {
				setEnv("QDRANT_VECTOR_SIZE", "1536")
				setEnv("JWT_SECRET", "test-secret")
				setEnv("WHATSAPP_VERIFY_TOKEN", "verify-me")
				setEnv("JWT_TTL", "soon")
				setEnv("DB_PATH", t.TempDir()+"/test.db")
			},
			wantErr: true,
		},
		{
			name: "custom log level",
			setupEnv: func(t *testing.T) {
				setEnv("QDRANT_VECTOR_SIZE", "1536")
				setEnv("JWT_SECRET", "test-secret")
				setEnv("WHATSAPP_VERIFY_TOKEN", "verify-me")
				setEnv("LOG_LEVEL", "debug")
				setEnv("DB_PATH", t.TempDir()+"/test.db")
			},
			wantErr: false,
			checkConfig: func(cfg *Config) bool {
				return cfg.LogLevel == slog.LevelDebug
			},
		},
		{
			name: "invalid log level",
			setupEnv: func(t *testing.T) {
				setEnv("QDRANT_VECTOR_SIZE", "1536")
				setEnv("JWT_SECRET", "test-secret")
				setEnv("WHATSAPP_VERIFY_TOKEN", "verify-me")
				setEnv("LOG_LEVEL", "loud")
				setEnv("DB_PATH", t.TempDir()+"/test.db")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range envVars {
				unsetEnv(key)
			}
			tt.setupEnv(t)

			cfg, err := Load()
			if tt.wantErr {
				if err == nil {
					t.Fatal("Load() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() unexpected error: %v", err)
			}
			if tt.checkConfig != nil && !tt.checkConfig(cfg) {
				t.Errorf("Load() config check failed: %+v", cfg)
			}
		})
	}
}
