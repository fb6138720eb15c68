// Package retriever answers similarity queries against a session's
// collection.
package retriever

import (
	"context"
	"errors"

	"github.com/phuslu/log"

	"github.com/CodeurSahil/ChatDOCX-pdf-rag/internal/domain"
	"github.com/CodeurSahil/ChatDOCX-pdf-rag/internal/embedding"
	"github.com/CodeurSahil/ChatDOCX-pdf-rag/internal/vectorstore"
)

// DefaultTopK is the number of chunks retrieved when the caller does not
// ask for a specific count.
const DefaultTopK = 4

// Retriever embeds queries with the same embedder used at ingestion and
// returns the most similar stored chunks. The similarity ordering,
// including tie-breaks, is whatever the underlying store returns.
type Retriever struct {
	store    vectorstore.Store
	embedder embedding.Embedder
	logger   *log.Logger
}

func New(store vectorstore.Store, embedder embedding.Embedder, logger *log.Logger) *Retriever {
	return &Retriever{store: store, embedder: embedder, logger: logger}
}

// Retrieve returns up to k chunks from the session's collection ordered
// by descending similarity to the query. k falls back to DefaultTopK when
// non-positive. A missing collection is reported as
// domain.ErrSessionNotFound.
func (r *Retriever) Retrieve(ctx context.Context, sessionID, query string, k int) ([]domain.RetrievedChunk, error) {
	if sessionID == "" {
		return nil, domain.NewInputError("collection name is required")
	}
	if k <= 0 {
		k = DefaultTopK
	}

	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, domain.NewDependencyError("embedding query", err)
	}

	results, err := r.store.Query(ctx, sessionID, vector, k)
	if errors.Is(err, vectorstore.ErrCollectionNotFound) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, domain.NewDependencyError("querying collection", err)
	}

	r.logger.Debug().Str("session_id", sessionID).Int("results", len(results)).Msg("retrieved chunks")
	return results, nil
}
