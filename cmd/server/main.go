package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/phuslu/log"

	"github.com/CodeurSahil/ChatDOCX-pdf-rag/internal/chunker"
	"github.com/CodeurSahil/ChatDOCX-pdf-rag/internal/config"
	"github.com/CodeurSahil/ChatDOCX-pdf-rag/internal/embedding"
	"github.com/CodeurSahil/ChatDOCX-pdf-rag/internal/extract"
	"github.com/CodeurSahil/ChatDOCX-pdf-rag/internal/handlers"
	"github.com/CodeurSahil/ChatDOCX-pdf-rag/internal/llm"
	"github.com/CodeurSahil/ChatDOCX-pdf-rag/internal/retriever"
	"github.com/CodeurSahil/ChatDOCX-pdf-rag/internal/service"
	"github.com/CodeurSahil/ChatDOCX-pdf-rag/internal/session"
	"github.com/CodeurSahil/ChatDOCX-pdf-rag/internal/vectorstore"
	"github.com/CodeurSahil/ChatDOCX-pdf-rag/internal/vectorstore/memory"
	"github.com/CodeurSahil/ChatDOCX-pdf-rag/internal/vectorstore/pgvector"
	"github.com/CodeurSahil/ChatDOCX-pdf-rag/internal/vectorstore/qdrant"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	logger := &log.Logger{
		Level:      log.ParseLevel(cfg.LogLevel),
		TimeFormat: "15:04:05",
		Writer:     &log.ConsoleWriter{ColorOutput: true},
	}

	store, err := newStore(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize vector store")
	}

	embedder := embedding.NewOpenAIClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModel, cfg.EmbeddingDim, cfg.RequestTimeout)
	llmClient := llm.NewOpenAIClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.ChatModel, cfg.RequestTimeout)

	svc := service.New(
		extract.New(),
		chunker.New(chunker.DefaultChunkSize, chunker.DefaultOverlap),
		session.NewManager(store, embedder, logger),
		retriever.New(store, embedder, logger),
		llmClient,
		logger,
	)

	validate := validator.New()
	uploadHandler := &handlers.UploadHandler{Service: svc, Logger: logger, MaxBytes: cfg.MaxUploadBytes}
	chatHandler := &handlers.ChatHandler{Service: svc, Validate: validate, Logger: logger}
	sessionHandler := &handlers.SessionHandler{Service: svc, Validate: validate, Logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "ok")
	})
	mux.HandleFunc("/upload", postOnly(uploadHandler.Upload))
	mux.HandleFunc("/chat", postOnly(chatHandler.Chat))
	mux.HandleFunc("/delete_session", postOnly(sessionHandler.Delete))

	logger.Info().Str("addr", cfg.Addr).Str("vector_store", cfg.VectorStore).Msg("ChatDOCX server is running")
	if err := http.ListenAndServe(cfg.Addr, handlers.WithMiddleware(mux, logger)); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
}

func newStore(cfg *config.Config) (vectorstore.Store, error) {
	switch cfg.VectorStore {
	case config.StoreQdrant:
		return qdrant.New(qdrant.Config{
			URL:     cfg.QdrantURL,
			APIKey:  cfg.QdrantAPIKey,
			Timeout: cfg.RequestTimeout,
		}), nil
	case config.StorePgvector:
		return pgvector.New(cfg.PostgresDSN)
	case config.StoreMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown vector store %q", cfg.VectorStore)
	}
}

func postOnly(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h(w, r)
	}
}
