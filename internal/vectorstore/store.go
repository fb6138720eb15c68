// Package vectorstore defines the collection-scoped vector storage
// capability the rest of the system is written against.
package vectorstore

import (
	"context"
	"errors"

	"github.com/CodeurSahil/ChatDOCX-pdf-rag/internal/domain"
)

// ErrCollectionNotFound is returned by Query and DeleteCollection when the
// named collection does not exist.
var ErrCollectionNotFound = errors.New("collection not found")

// Item is a (chunk, vector) pair stored in a collection.
type Item struct {
	Chunk  domain.Chunk
	Vector []float32
}

// Store is a keyed set of per-session vector collections. All vectors in
// a collection share one dimensionality, fixed at creation. Insertion is
// append-only; the similarity ordering returned by Query is owned by the
// backend and treated as a black-box total order here, including
// tie-breaks.
//
// Implementations must be safe for concurrent use: different collections
// never contend, and concurrent queries within one collection must not
// corrupt or block each other.
type Store interface {
	CreateCollection(ctx context.Context, name string, dim int) error
	Upsert(ctx context.Context, name string, items []Item) error
	Query(ctx context.Context, name string, vector []float32, k int) ([]domain.RetrievedChunk, error)
	DeleteCollection(ctx context.Context, name string) error
	ListCollections(ctx context.Context) ([]string, error)
	HasCollection(ctx context.Context, name string) (bool, error)
}
