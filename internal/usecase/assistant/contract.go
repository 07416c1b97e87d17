package assistant

import (
	"context"

	"github.com/voicebook/rolodex/internal/domain"
)

// Retriever searches the contact index across query variants.
type Retriever interface {
	Retrieve(ctx context.Context, q domain.Query, topK int, minScore float64) []domain.Contact
}

// Memory is the remote memory service for capture and recall.
type Memory interface {
	Capture(ctx context.Context, userID, text string) (domain.MemoryCapture, error)
	Recall(ctx context.Context, userID, query string) (domain.MemoryRecall, error)
}
