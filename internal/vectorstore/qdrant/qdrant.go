// Package qdrant is a minimal REST client to Qdrant implementing the
// vectorstore.Store interface. Collections use cosine distance; result
// ordering and tie-breaking are whatever Qdrant returns.
package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/CodeurSahil/ChatDOCX-pdf-rag/internal/domain"
	"github.com/CodeurSahil/ChatDOCX-pdf-rag/internal/vectorstore"
)

type Store struct {
	url    string
	apiKey string
	client *http.Client
}

type Config struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

func New(cfg Config) *Store {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Store{
		url:    cfg.URL,
		apiKey: cfg.APIKey,
		client: &http.Client{Timeout: timeout},
	}
}

func (s *Store) CreateCollection(ctx context.Context, name string, dim int) error {
	if dim <= 0 {
		return fmt.Errorf("invalid dimension %d", dim)
	}
	body := map[string]any{
		"vectors": map[string]any{
			"size":     dim,
			"distance": "Cosine",
		},
	}
	return s.do(ctx, http.MethodPut, fmt.Sprintf("%s/collections/%s", s.url, name), body, nil)
}

func (s *Store) Upsert(ctx context.Context, name string, items []vectorstore.Item) error {
	points := make([]map[string]any, len(items))
	for i, item := range items {
		points[i] = map[string]any{
			"id":     item.Chunk.Index,
			"vector": item.Vector,
			"payload": map[string]any{
				"index":  item.Chunk.Index,
				"text":   item.Chunk.Text,
				"source": item.Chunk.Source,
			},
		}
	}
	body := map[string]any{"points": points}
	return s.do(ctx, http.MethodPut, fmt.Sprintf("%s/collections/%s/points?wait=true", s.url, name), body, nil)
}

func (s *Store) Query(ctx context.Context, name string, vector []float32, k int) ([]domain.RetrievedChunk, error) {
	body := map[string]any{
		"vector":       vector,
		"limit":        k,
		"with_payload": true,
	}
	var resp struct {
		Result []struct {
			Score   float32        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	err := s.do(ctx, http.MethodPost, fmt.Sprintf("%s/collections/%s/points/search", s.url, name), body, &resp)
	if err != nil {
		return nil, err
	}
	results := make([]domain.RetrievedChunk, 0, len(resp.Result))
	for _, r := range resp.Result {
		chunk := domain.Chunk{}
		if v, ok := r.Payload["index"].(float64); ok {
			chunk.Index = int(v)
		}
		if v, ok := r.Payload["text"].(string); ok {
			chunk.Text = v
		}
		if v, ok := r.Payload["source"].(string); ok {
			chunk.Source = v
		}
		results = append(results, domain.RetrievedChunk{Chunk: chunk, Score: r.Score})
	}
	return results, nil
}

func (s *Store) DeleteCollection(ctx context.Context, name string) error {
	return s.do(ctx, http.MethodDelete, fmt.Sprintf("%s/collections/%s", s.url, name), nil, nil)
}

func (s *Store) ListCollections(ctx context.Context) ([]string, error) {
	var resp struct {
		Result struct {
			Collections []struct {
				Name string `json:"name"`
			} `json:"collections"`
		} `json:"result"`
	}
	if err := s.do(ctx, http.MethodGet, fmt.Sprintf("%s/collections", s.url), nil, &resp); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(resp.Result.Collections))
	for _, c := range resp.Result.Collections {
		names = append(names, c.Name)
	}
	return names, nil
}

func (s *Store) HasCollection(ctx context.Context, name string) (bool, error) {
	err := s.do(ctx, http.MethodGet, fmt.Sprintf("%s/collections/%s", s.url, name), nil, nil)
	if errors.Is(err, vectorstore.ErrCollectionNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// do performs one REST call. A 404 maps to ErrCollectionNotFound so
// callers can tell caller misuse apart from infrastructure failure.
func (s *Store) do(ctx context.Context, method, url string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return vectorstore.ErrCollectionNotFound
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant %s %s failed: %s", method, url, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
