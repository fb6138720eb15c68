package embedding

import "context"

// Embedder maps text to fixed-dimension vectors. A session's collection
// must only ever be queried with vectors from the same embedder that
// produced its stored vectors, so one Embedder instance is shared across
// ingestion and retrieval.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimension() int
}
