// Package directory manages the contact records behind the search index.
package directory

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/voicebook/rolodex/internal/domain"
	"github.com/voicebook/rolodex/internal/logger"
)

// Service ingests contacts: it embeds each profile and stores the record
// alongside its vector.
type Service struct {
	repo  Repository
	embed Embedder
}

// New creates a directory service.
func New(repo Repository, embed Embedder) *Service {
	return &Service{repo: repo, embed: embed}
}

// Add embeds a contact's profile text and upserts the record. Adding a
// contact whose name already exists replaces the earlier record.
func (s *Service) Add(ctx context.Context, c domain.Contact) (bool, error) {
	if strings.TrimSpace(c.Name) == "" {
		return false, fmt.Errorf("contact name is required: %w", domain.ErrInvalidContact)
	}

	existed, err := s.repo.Exists(ctx, c.Name)
	if err != nil {
		return false, fmt.Errorf("check contact %s: %w", c.Name, err)
	}

	emb, err := s.embed.Embed(ctx, c.ProfileText())
	if err != nil {
		return false, fmt.Errorf("embed profile for %s: %w", c.Name, err)
	}

	if err := s.repo.Upsert(ctx, c, emb.Embedding); err != nil {
		return false, fmt.Errorf("store contact %s: %w", c.Name, err)
	}

	logger.FromContext(ctx).Debug("Contact stored",
		zap.String("name", c.Name),
		zap.Bool("replaced", existed),
		zap.Int("tokens", emb.TotalTokens))

	return !existed, nil
}

// Count returns the number of indexed contacts.
func (s *Service) Count(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count contacts: %w", err)
	}
	return n, nil
}
