package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Vector store backends selectable via VECTOR_STORE.
const (
	StoreQdrant   = "qdrant"
	StorePgvector = "pgvector"
	StoreMemory   = "memory"
)

// Config holds the process-wide configuration. It is built once in main,
// validated, and passed to components at construction time; nothing
// mutates it afterwards.
type Config struct {
	Addr string

	VectorStore  string
	QdrantURL    string
	QdrantAPIKey string
	PostgresDSN  string

	LLMBaseURL     string
	LLMAPIKey      string
	ChatModel      string
	EmbeddingModel string
	EmbeddingDim   int

	RequestTimeout time.Duration
	MaxUploadBytes int64
	LogLevel       string
}

// Load reads configuration from the environment, loading a .env file
// first if one exists in the working directory.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("loading .env file: %w", err)
		}
	}

	cfg := &Config{
		Addr:           fmt.Sprintf("%s:%s", os.Getenv("IP_ADDRESS"), getEnv("PORT", "8000")),
		VectorStore:    getEnv("VECTOR_STORE", StoreQdrant),
		QdrantURL:      getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantAPIKey:   os.Getenv("QDRANT_API_KEY"),
		PostgresDSN:    os.Getenv("DB_CONNECTION_STRING"),
		LLMBaseURL:     getEnv("LLM_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/openai"),
		LLMAPIKey:      os.Getenv("GOOGLE_API_KEY"),
		ChatModel:      getEnv("CHAT_MODEL", "gemini-2.0-flash"),
		EmbeddingModel: getEnv("EMBEDDING_MODEL", "gemini-embedding-001"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}

	dim, err := getEnvInt("EMBEDDING_DIM", 3072)
	if err != nil {
		return nil, err
	}
	cfg.EmbeddingDim = dim

	timeoutSecs, err := getEnvInt("REQUEST_TIMEOUT_SECS", 30)
	if err != nil {
		return nil, err
	}
	cfg.RequestTimeout = time.Duration(timeoutSecs) * time.Second

	maxUploadMB, err := getEnvInt("MAX_UPLOAD_MB", 10)
	if err != nil {
		return nil, err
	}
	cfg.MaxUploadBytes = int64(maxUploadMB) << 20

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.VectorStore {
	case StoreQdrant, StorePgvector, StoreMemory:
	default:
		return fmt.Errorf("unknown VECTOR_STORE %q (want qdrant, pgvector, or memory)", c.VectorStore)
	}
	if c.VectorStore == StorePgvector && c.PostgresDSN == "" {
		return fmt.Errorf("DB_CONNECTION_STRING is required when VECTOR_STORE=pgvector")
	}
	if c.LLMAPIKey == "" {
		return fmt.Errorf("GOOGLE_API_KEY is required")
	}
	if c.EmbeddingDim <= 0 {
		return fmt.Errorf("EMBEDDING_DIM must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
