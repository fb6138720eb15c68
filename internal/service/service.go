// Package service is the orchestration boundary the HTTP layer talks to.
// It wires extraction, chunking, session management, retrieval, prompt
// assembly, and the completion model into the three exposed operations.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/phuslu/log"

	"github.com/CodeurSahil/ChatDOCX-pdf-rag/internal/chunker"
	"github.com/CodeurSahil/ChatDOCX-pdf-rag/internal/domain"
	"github.com/CodeurSahil/ChatDOCX-pdf-rag/internal/extract"
	"github.com/CodeurSahil/ChatDOCX-pdf-rag/internal/llm"
	"github.com/CodeurSahil/ChatDOCX-pdf-rag/internal/prompt"
	"github.com/CodeurSahil/ChatDOCX-pdf-rag/internal/retriever"
	"github.com/CodeurSahil/ChatDOCX-pdf-rag/internal/session"
)

// greetingChunks is how many leading chunks seed the greeting prompt.
const greetingChunks = 2

type Service struct {
	extractor *extract.Extractor
	splitter  *chunker.Splitter
	sessions  *session.Manager
	retriever *retriever.Retriever
	llm       llm.Client
	logger    *log.Logger
}

func New(extractor *extract.Extractor, splitter *chunker.Splitter, sessions *session.Manager, ret *retriever.Retriever, llmClient llm.Client, logger *log.Logger) *Service {
	return &Service{
		extractor: extractor,
		splitter:  splitter,
		sessions:  sessions,
		retriever: ret,
		llm:       llmClient,
		logger:    logger,
	}
}

// IngestResult is the outcome of a successful upload.
type IngestResult struct {
	SessionID string
	Greeting  string
}

// ChatResult is the outcome of a successful chat turn.
type ChatResult struct {
	Answer      string
	SourceCount int
}

// Ingest extracts the document's text, chunks it, creates a session
// collection holding the embedded chunks, and asks the model for an
// opening greeting built from the first chunks.
func (s *Service) Ingest(ctx context.Context, data []byte, format extract.Format, filename string) (*IngestResult, error) {
	text, err := s.extractor.Extract(data, format)
	if errors.Is(err, extract.ErrUnsupportedFormat) {
		return nil, domain.NewInputError("%v", err)
	}
	if err != nil {
		return nil, domain.NewDependencyError("extracting document", err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, domain.NewInputError("no text could be extracted from the document")
	}

	chunks := s.splitter.Split(text)
	for i := range chunks {
		chunks[i].Source = filename
	}

	id, err := s.sessions.CreateSession(ctx, chunks)
	if err != nil {
		return nil, err
	}

	first := chunks
	if len(first) > greetingChunks {
		first = first[:greetingChunks]
	}
	result := s.llm.Complete(ctx, prompt.BuildIngestionPrompt(first))
	if !result.Success {
		// The collection is unusable without the returned id, so take
		// it down again rather than leave an orphan behind.
		if _, derr := s.sessions.DestroySession(ctx, id); derr != nil {
			s.logger.Warn().Err(derr).Str("session_id", id).Msg("failed to clean up session after greeting failure")
		}
		return nil, domain.NewDependencyError("generating greeting", fmt.Errorf("%s", result.Err))
	}

	s.logger.Info().Str("session_id", id).Str("file", filename).Int("chunks", len(chunks)).Msg("document ingested")
	return &IngestResult{SessionID: id, Greeting: result.Response}, nil
}

// Chat answers the latest user turn grounded in the session's document.
// The last history message drives retrieval and must come from the user.
func (s *Service) Chat(ctx context.Context, sessionID string, history []domain.Message) (*ChatResult, error) {
	if len(history) == 0 {
		return nil, domain.NewInputError("no conversation history provided")
	}
	if sessionID == "" {
		return nil, domain.NewInputError("collection name is required")
	}
	last := history[len(history)-1]
	if last.Role != domain.RoleUser || last.Content == "" {
		return nil, domain.NewInputError("no user message found")
	}

	retrieved, err := s.retriever.Retrieve(ctx, sessionID, last.Content, 0)
	if err != nil {
		return nil, err
	}

	result := s.llm.Complete(ctx, prompt.BuildChatPrompt(retrieved, history))
	if !result.Success {
		return nil, domain.NewDependencyError("generating answer", fmt.Errorf("%s", result.Err))
	}

	s.logger.Info().Str("session_id", sessionID).Int("sources", len(retrieved)).Msg("chat answered")
	return &ChatResult{Answer: result.Response, SourceCount: len(retrieved)}, nil
}

// ClearSession destroys the session's collection. Clearing a session that
// does not exist is success, not an error.
func (s *Service) ClearSession(ctx context.Context, sessionID string) (bool, error) {
	if sessionID == "" {
		return false, domain.NewInputError("collection name is required")
	}
	return s.sessions.DestroySession(ctx, sessionID)
}
