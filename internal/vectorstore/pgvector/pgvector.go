// Package pgvector implements the vector store on Postgres with the
// pgvector extension. Each session collection is a row in the
// collections table; its chunks cascade on delete.
package pgvector

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/pgvector/pgvector-go"

	"github.com/CodeurSahil/ChatDOCX-pdf-rag/internal/domain"
	"github.com/CodeurSahil/ChatDOCX-pdf-rag/internal/vectorstore"
)

type Store struct {
	db *sql.DB
}

func New(connString string) (*Store, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, fmt.Errorf("unable to open database connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := initSchema(ctx, db); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func initSchema(ctx context.Context, db *sql.DB) error {
	queries := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		`CREATE TABLE IF NOT EXISTS collections (
			name TEXT PRIMARY KEY,
			dim INTEGER NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS chunks (
			collection_name TEXT NOT NULL REFERENCES collections(name) ON DELETE CASCADE,
			idx INTEGER NOT NULL,
			source TEXT,
			body TEXT NOT NULL,
			embedding VECTOR NOT NULL,
			PRIMARY KEY (collection_name, idx)
		)`,
	}
	for _, q := range queries {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("initializing schema: %w", err)
		}
	}
	return nil
}

func (s *Store) CreateCollection(ctx context.Context, name string, dim int) error {
	if dim <= 0 {
		return fmt.Errorf("invalid dimension %d", dim)
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO collections (name, dim) VALUES ($1, $2)`, name, dim)
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}
	return nil
}

func (s *Store) Upsert(ctx context.Context, name string, items []vectorstore.Item) error {
	dim, err := s.collectionDim(ctx, name)
	if err != nil {
		return err
	}
	for _, item := range items {
		if len(item.Vector) != dim {
			return fmt.Errorf("vector dimension %d does not match collection dimension %d", len(item.Vector), dim)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin insert: %w", err)
	}
	defer tx.Rollback()

	const query = `
		INSERT INTO chunks (collection_name, idx, source, body, embedding)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, item := range items {
		vec := pgvector.NewVector(item.Vector)
		if _, err := tx.ExecContext(ctx, query, name, item.Chunk.Index, item.Chunk.Source, item.Chunk.Text, vec); err != nil {
			return fmt.Errorf("failed to insert chunk %d: %w", item.Chunk.Index, err)
		}
	}
	return tx.Commit()
}

func (s *Store) Query(ctx context.Context, name string, vector []float32, k int) ([]domain.RetrievedChunk, error) {
	if _, err := s.collectionDim(ctx, name); err != nil {
		return nil, err
	}

	vec := pgvector.NewVector(vector)
	const query = `
		SELECT idx, source, body, 1 - (embedding <=> $2) AS score
		FROM chunks
		WHERE collection_name = $1
		ORDER BY embedding <=> $2, idx
		LIMIT $3
	`
	rows, err := s.db.QueryContext(ctx, query, name, vec, k)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search query: %w", err)
	}
	defer rows.Close()

	var results []domain.RetrievedChunk
	for rows.Next() {
		var r domain.RetrievedChunk
		var source sql.NullString
		if err := rows.Scan(&r.Index, &source, &r.Text, &r.Score); err != nil {
			return nil, fmt.Errorf("failed to scan chunk: %w", err)
		}
		r.Source = source.String
		results = append(results, r)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating through chunks: %w", rows.Err())
	}
	return results, nil
}

func (s *Store) DeleteCollection(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM collections WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return vectorstore.ErrCollectionNotFound
	}
	return nil
}

func (s *Store) ListCollections(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM collections ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *Store) HasCollection(ctx context.Context, name string) (bool, error) {
	_, err := s.collectionDim(ctx, name)
	if errors.Is(err, vectorstore.ErrCollectionNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) collectionDim(ctx context.Context, name string) (int, error) {
	var dim int
	err := s.db.QueryRowContext(ctx, `SELECT dim FROM collections WHERE name = $1`, name).Scan(&dim)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, vectorstore.ErrCollectionNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to look up collection: %w", err)
	}
	return dim, nil
}
