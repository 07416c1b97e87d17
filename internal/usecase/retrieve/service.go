package retrieve

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/voicebook/rolodex/internal/domain"
	"github.com/voicebook/rolodex/internal/logger"
	"github.com/voicebook/rolodex/internal/metrics"
)

// Defaults for the search tuning knobs. MinScore is deliberately low: the
// result set is a union of several fuzzy variants, not one precise match.
const (
	DefaultTopK           = 5
	DefaultMinScore       = 0.3
	DefaultVariantTimeout = 4 * time.Second
)

// strongMatchScore is the level at which a variant is considered to have
// clearly outperformed the original query, worth surfacing in logs.
const strongMatchScore = 0.4

// Options holds search tuning knobs.
type Options struct {
	VariantTimeout time.Duration
}

// Service runs the fan-out retrieval: expand the query, embed and search
// each variant concurrently, then merge into one ranked contact list.
type Service struct {
	expander Expander
	embed    Embedder
	index    Index
	opts     Options
}

// New creates a retrieval service.
func New(expander Expander, embed Embedder, index Index, opts Options) *Service {
	if opts.VariantTimeout <= 0 {
		opts.VariantTimeout = DefaultVariantTimeout
	}
	return &Service{expander: expander, embed: embed, index: index, opts: opts}
}

// variantOutcome is the per-variant result slot, indexed by variant position
// so the later sequential fold preserves variant priority without locking.
type variantOutcome struct {
	contacts []domain.Contact
	err      error
}

// Retrieve returns the top contacts for a query across all its variants.
// It never returns an error: a variant that fails to embed or search is
// skipped, and if every variant fails the result is simply empty.
func (s *Service) Retrieve(ctx context.Context, q domain.Query, topK int, minScore float64) []domain.Contact {
	log := logger.FromContext(ctx)

	if topK <= 0 {
		topK = DefaultTopK
	}
	if minScore <= 0 {
		minScore = DefaultMinScore
	}

	variants := s.expander.Expand(q)
	outcomes := make([]variantOutcome, len(variants))

	g, gctx := errgroup.WithContext(ctx)
	for i, v := range variants {
		g.Go(func() error {
			outcomes[i] = s.searchVariant(gctx, v, topK, minScore)
			return nil
		})
	}
	_ = g.Wait() // goroutines report through outcomes, never through the group

	merged, failed := s.fold(ctx, variants, outcomes, q, topK)

	switch {
	case failed == len(variants):
		log.Warn("All query variants failed, returning empty result",
			zap.String("query", q.Text()),
			zap.Int("variants", len(variants)))
		metrics.RetrievalSearchesTotal.WithLabelValues("degraded").Inc()
	case len(merged) == 0:
		metrics.RetrievalSearchesTotal.WithLabelValues("empty").Inc()
	default:
		metrics.RetrievalSearchesTotal.WithLabelValues("ok").Inc()
	}
	metrics.RetrievalResults.Observe(float64(len(merged)))

	return merged
}

// searchVariant embeds one variant and queries the index, under its own timeout.
func (s *Service) searchVariant(ctx context.Context, v domain.Variant, topK int, minScore float64) variantOutcome {
	vctx, cancel := context.WithTimeout(ctx, s.opts.VariantTimeout)
	defer cancel()

	emb, err := s.embed.Embed(vctx, v.Text())
	if err != nil {
		metrics.RetrievalVariantsTotal.WithLabelValues(string(v.Provenance()), "error").Inc()
		return variantOutcome{err: err}
	}

	// Over-fetch so the cross-variant merge has options after dedup.
	found, err := s.index.QueryNearest(vctx, emb.Embedding, topK*2)
	if err != nil {
		metrics.RetrievalVariantsTotal.WithLabelValues(string(v.Provenance()), "error").Inc()
		return variantOutcome{err: err}
	}

	kept := found[:0]
	for _, c := range found {
		if c.Score >= minScore {
			c.MatchedVariant = v.Text()
			kept = append(kept, c)
		}
	}

	metrics.RetrievalVariantsTotal.WithLabelValues(string(v.Provenance()), "ok").Inc()
	return variantOutcome{contacts: kept}
}

// fold merges per-variant outcomes in variant order and reports how many
// variants failed.
func (s *Service) fold(
	ctx context.Context, variants []domain.Variant, outcomes []variantOutcome,
	q domain.Query, topK int,
) ([]domain.Contact, int) {
	log := logger.FromContext(ctx)

	m := newMerger()
	failed := 0
	bestVariant := q.Text()

	for i, outcome := range outcomes {
		if outcome.err != nil {
			failed++
			log.Warn("Query variant failed, skipping",
				zap.String("variant", variants[i].Text()),
				zap.String("provenance", string(variants[i].Provenance())),
				zap.Error(outcome.err))
			continue
		}
		for _, c := range outcome.contacts {
			if m.add(c) && c.Score > strongMatchScore && c.MatchedVariant != q.Text() {
				bestVariant = c.MatchedVariant
			}
		}
	}

	merged := m.ranked(topK)

	if bestVariant != q.Text() && len(merged) > 0 {
		log.Info("Query variant outperformed the original",
			zap.String("query", q.Text()),
			zap.String("best_variant", bestVariant))
	}

	return merged, failed
}
