package directory

import (
	"context"

	"github.com/voicebook/rolodex/internal/domain"
)

// Repository persists contacts and their profile vectors.
type Repository interface {
	Upsert(ctx context.Context, c domain.Contact, vector []float32) error
	Exists(ctx context.Context, name string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
