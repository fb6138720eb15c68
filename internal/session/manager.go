// Package session owns the lifecycle of per-document vector collections.
package session

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/phuslu/log"

	"github.com/CodeurSahil/ChatDOCX-pdf-rag/internal/domain"
	"github.com/CodeurSahil/ChatDOCX-pdf-rag/internal/embedding"
	"github.com/CodeurSahil/ChatDOCX-pdf-rag/internal/vectorstore"
)

// Manager creates and destroys one vector collection per uploaded
// document. A session identifier, once issued, maps to at most one live
// collection. Sessions are never expired automatically; destruction is
// explicit via DestroySession.
type Manager struct {
	store    vectorstore.Store
	embedder embedding.Embedder
	logger   *log.Logger
}

func NewManager(store vectorstore.Store, embedder embedding.Embedder, logger *log.Logger) *Manager {
	return &Manager{store: store, embedder: embedder, logger: logger}
}

// CreateSession embeds every chunk, creates a fresh collection under a
// new UUID, and bulk-inserts all (chunk, vector) pairs. The identifier is
// returned only after the insert succeeds; if embedding or insertion
// fails after the collection exists, the collection is deleted again
// best-effort so no partial session is left visible.
func (m *Manager) CreateSession(ctx context.Context, chunks []domain.Chunk) (string, error) {
	if len(chunks) == 0 {
		return "", domain.NewInputError("no chunks to index")
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	vectors, err := m.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return "", domain.NewDependencyError("embedding chunks", err)
	}

	id := uuid.NewString()
	if err := m.store.CreateCollection(ctx, id, m.embedder.Dimension()); err != nil {
		return "", domain.NewDependencyError("creating collection", err)
	}

	items := make([]vectorstore.Item, len(chunks))
	for i, c := range chunks {
		items[i] = vectorstore.Item{Chunk: c, Vector: vectors[i]}
	}
	if err := m.store.Upsert(ctx, id, items); err != nil {
		m.rollback(ctx, id)
		return "", domain.NewDependencyError("inserting chunks", err)
	}

	m.logger.Debug().Str("session_id", id).Int("chunks", len(chunks)).Msg("session created")
	return id, nil
}

// DestroySession removes the session's collection. Destroying an absent
// session is a no-op success, so the call is idempotent.
func (m *Manager) DestroySession(ctx context.Context, id string) (bool, error) {
	err := m.store.DeleteCollection(ctx, id)
	if errors.Is(err, vectorstore.ErrCollectionNotFound) {
		return false, nil
	}
	if err != nil {
		return false, domain.NewDependencyError("deleting collection", err)
	}
	m.logger.Debug().Str("session_id", id).Msg("session destroyed")
	return true, nil
}

// rollback removes a collection left behind by a failed ingestion. The
// delete itself is best-effort; an orphaned collection is preferable to
// masking the original failure.
func (m *Manager) rollback(ctx context.Context, id string) {
	if err := m.store.DeleteCollection(ctx, id); err != nil && !errors.Is(err, vectorstore.ErrCollectionNotFound) {
		m.logger.Warn().Err(err).Str("session_id", id).Msg("failed to roll back partial collection")
	}
}
