package qdrant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodeurSahil/ChatDOCX-pdf-rag/internal/domain"
	"github.com/CodeurSahil/ChatDOCX-pdf-rag/internal/vectorstore"
)

func newTestStore(t *testing.T, handler http.HandlerFunc) *Store {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{URL: srv.URL, APIKey: "secret", Timeout: time.Second})
}

func TestCreateCollection(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/collections/sess-1", r.URL.Path)
		require.Equal(t, "secret", r.Header.Get("api-key"))

		var body struct {
			Vectors struct {
				Size     int    `json:"size"`
				Distance string `json:"distance"`
			} `json:"vectors"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 3, body.Vectors.Size)
		assert.Equal(t, "Cosine", body.Vectors.Distance)

		json.NewEncoder(w).Encode(map[string]any{"result": true})
	})

	require.NoError(t, s.CreateCollection(context.Background(), "sess-1", 3))
}

func TestCreateCollectionInvalidDim(t *testing.T) {
	s := New(Config{URL: "http://unused"})
	assert.Error(t, s.CreateCollection(context.Background(), "c", 0))
}

func TestUpsert(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/collections/sess-1/points", r.URL.Path)
		require.Equal(t, "true", r.URL.Query().Get("wait"))

		var body struct {
			Points []struct {
				ID      int       `json:"id"`
				Vector  []float32 `json:"vector"`
				Payload struct {
					Index int    `json:"index"`
					Text  string `json:"text"`
				} `json:"payload"`
			} `json:"points"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Points, 2)
		assert.Equal(t, 0, body.Points[0].ID)
		assert.Equal(t, "chunk one", body.Points[0].Payload.Text)
		assert.Equal(t, 1, body.Points[1].Payload.Index)

		json.NewEncoder(w).Encode(map[string]any{"result": true})
	})

	err := s.Upsert(context.Background(), "sess-1", []vectorstore.Item{
		{Chunk: domain.Chunk{Index: 0, Text: "chunk one"}, Vector: []float32{1, 0}},
		{Chunk: domain.Chunk{Index: 1, Text: "chunk two"}, Vector: []float32{0, 1}},
	})
	require.NoError(t, err)
}

func TestQuery(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/collections/sess-1/points/search", r.URL.Path)

		var body struct {
			Vector      []float32 `json:"vector"`
			Limit       int       `json:"limit"`
			WithPayload bool      `json:"with_payload"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 4, body.Limit)
		assert.True(t, body.WithPayload)

		json.NewEncoder(w).Encode(map[string]any{
			"result": []map[string]any{
				{"score": 0.91, "payload": map[string]any{"index": 2, "text": "best match", "source": "doc.pdf"}},
				{"score": 0.75, "payload": map[string]any{"index": 0, "text": "second", "source": "doc.pdf"}},
			},
		})
	})

	results, err := s.Query(context.Background(), "sess-1", []float32{1, 0}, 4)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 2, results[0].Index)
	assert.Equal(t, "best match", results[0].Text)
	assert.Equal(t, "doc.pdf", results[0].Source)
	assert.InDelta(t, 0.91, results[0].Score, 1e-6)
}

func TestQueryMissingCollection(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "collection not found", http.StatusNotFound)
	})

	_, err := s.Query(context.Background(), "gone", []float32{1}, 4)
	assert.ErrorIs(t, err, vectorstore.ErrCollectionNotFound)
}

func TestDeleteCollectionMissing(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})
	assert.ErrorIs(t, s.DeleteCollection(context.Background(), "gone"), vectorstore.ErrCollectionNotFound)
}

func TestHasCollection(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/collections/here" {
			json.NewEncoder(w).Encode(map[string]any{"result": map[string]any{}})
			return
		}
		http.Error(w, "not found", http.StatusNotFound)
	})

	has, err := s.HasCollection(context.Background(), "here")
	require.NoError(t, err)
	assert.True(t, has)

	has, err = s.HasCollection(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestListCollections(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/collections", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"result": map[string]any{
				"collections": []map[string]string{{"name": "a"}, {"name": "b"}},
			},
		})
	})

	names, err := s.ListCollections(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)
}

func TestServerErrorPropagates(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	err := s.CreateCollection(context.Background(), "c", 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}
