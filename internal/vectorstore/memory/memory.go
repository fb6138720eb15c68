// Package memory provides an in-process vector store used in tests and
// for dependency-free local runs.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/CodeurSahil/ChatDOCX-pdf-rag/internal/domain"
	"github.com/CodeurSahil/ChatDOCX-pdf-rag/internal/vectorstore"
)

type collection struct {
	mu    sync.RWMutex
	dim   int
	items []vectorstore.Item
}

// Store keeps collections in memory and ranks by cosine similarity.
// Ties between equal scores keep insertion order (stable sort).
type Store struct {
	mu          sync.RWMutex
	collections map[string]*collection
}

func New() *Store {
	return &Store{collections: make(map[string]*collection)}
}

func (s *Store) CreateCollection(_ context.Context, name string, dim int) error {
	if dim <= 0 {
		return fmt.Errorf("invalid dimension %d", dim)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.collections[name]; ok {
		return fmt.Errorf("collection %s already exists", name)
	}
	s.collections[name] = &collection{dim: dim}
	return nil
}

func (s *Store) Upsert(_ context.Context, name string, items []vectorstore.Item) error {
	col, err := s.get(name)
	if err != nil {
		return err
	}
	col.mu.Lock()
	defer col.mu.Unlock()
	for _, item := range items {
		if len(item.Vector) != col.dim {
			return fmt.Errorf("vector dimension %d does not match collection dimension %d", len(item.Vector), col.dim)
		}
	}
	col.items = append(col.items, items...)
	return nil
}

func (s *Store) Query(_ context.Context, name string, vector []float32, k int) ([]domain.RetrievedChunk, error) {
	col, err := s.get(name)
	if err != nil {
		return nil, err
	}
	col.mu.RLock()
	defer col.mu.RUnlock()

	results := make([]domain.RetrievedChunk, 0, len(col.items))
	for _, item := range col.items {
		results = append(results, domain.RetrievedChunk{
			Chunk: item.Chunk,
			Score: cosine(vector, item.Vector),
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if k < len(results) {
		results = results[:k]
	}
	return results, nil
}

func (s *Store) DeleteCollection(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.collections[name]; !ok {
		return vectorstore.ErrCollectionNotFound
	}
	delete(s.collections, name)
	return nil
}

func (s *Store) ListCollections(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.collections))
	for name := range s.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *Store) HasCollection(_ context.Context, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.collections[name]
	return ok, nil
}

func (s *Store) get(name string) (*collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	col, ok := s.collections[name]
	if !ok {
		return nil, vectorstore.ErrCollectionNotFound
	}
	return col, nil
}

func cosine(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}
