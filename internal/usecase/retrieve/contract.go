package retrieve

import (
	"context"

	"github.com/voicebook/rolodex/internal/domain"
)

// Expander rewrites a query into search variants.
type Expander interface {
	Expand(q domain.Query) []domain.Variant
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// Index returns the stored contacts nearest to a query vector, best first,
// with scores normalized to [0,1].
type Index interface {
	QueryNearest(ctx context.Context, vector []float32, k int) ([]domain.Contact, error)
}
