package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodeurSahil/ChatDOCX-pdf-rag/internal/domain"
	"github.com/CodeurSahil/ChatDOCX-pdf-rag/internal/vectorstore"
)

func item(index int, text string, vec ...float32) vectorstore.Item {
	return vectorstore.Item{
		Chunk:  domain.Chunk{Index: index, Text: text},
		Vector: vec,
	}
}

func TestQueryRanksBySimilarity(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.CreateCollection(ctx, "c", 2))
	require.NoError(t, s.Upsert(ctx, "c", []vectorstore.Item{
		item(0, "east", 1, 0),
		item(1, "north", 0, 1),
		item(2, "northeast", 1, 1),
	}))

	results, err := s.Query(ctx, "c", []float32{1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "east", results[0].Text)
	assert.Equal(t, "northeast", results[1].Text)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestQueryTrimsToK(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.CreateCollection(ctx, "c", 1))
	require.NoError(t, s.Upsert(ctx, "c", []vectorstore.Item{
		item(0, "a", 1), item(1, "b", 1), item(2, "c", 1),
	}))

	results, err := s.Query(ctx, "c", []float32{1}, 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestQueryTiesKeepInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.CreateCollection(ctx, "c", 1))
	require.NoError(t, s.Upsert(ctx, "c", []vectorstore.Item{
		item(0, "first", 1), item(1, "second", 1), item(2, "third", 1),
	}))

	results, err := s.Query(ctx, "c", []float32{1}, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, []int{results[0].Index, results[1].Index, results[2].Index})
}

func TestCollectionIsolation(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.CreateCollection(ctx, "a", 1))
	require.NoError(t, s.CreateCollection(ctx, "b", 1))
	require.NoError(t, s.Upsert(ctx, "a", []vectorstore.Item{item(0, "from a", 1)}))
	require.NoError(t, s.Upsert(ctx, "b", []vectorstore.Item{item(0, "from b", 1)}))

	results, err := s.Query(ctx, "a", []float32{1}, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "from a", results[0].Text)
}

func TestQueryMissingCollection(t *testing.T) {
	s := New()
	_, err := s.Query(context.Background(), "nope", []float32{1}, 4)
	assert.ErrorIs(t, err, vectorstore.ErrCollectionNotFound)
}

func TestDeleteCollection(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.CreateCollection(ctx, "c", 1))

	require.NoError(t, s.DeleteCollection(ctx, "c"))
	assert.ErrorIs(t, s.DeleteCollection(ctx, "c"), vectorstore.ErrCollectionNotFound)

	has, err := s.HasCollection(ctx, "c")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestCreateCollectionDuplicate(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.CreateCollection(ctx, "c", 1))
	assert.Error(t, s.CreateCollection(ctx, "c", 1))
}

func TestUpsertDimensionMismatch(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.CreateCollection(ctx, "c", 2))
	err := s.Upsert(ctx, "c", []vectorstore.Item{item(0, "bad", 1)})
	assert.Error(t, err)
}

func TestListCollections(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.CreateCollection(ctx, "beta", 1))
	require.NoError(t, s.CreateCollection(ctx, "alpha", 1))

	names, err := s.ListCollections(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, names)
}

func TestConcurrentQueries(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.CreateCollection(ctx, "c", 1))
	require.NoError(t, s.Upsert(ctx, "c", []vectorstore.Item{item(0, "only", 1)}))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results, err := s.Query(ctx, "c", []float32{1}, 4)
			assert.NoError(t, err)
			assert.Len(t, results, 1)
		}()
	}
	wg.Wait()
}
