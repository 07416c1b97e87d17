package contacts

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/voicebook/rolodex/internal/db"
	"github.com/voicebook/rolodex/internal/domain"
)

const (
	vectorField = "__vector"
	keySegment  = "contacts:"
)

// store is the consumer interface for contact storage (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	Exists(ctx context.Context, key string) (bool, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index, query string) (int, error)
}

// Options configures the contact repository.
type Options struct {
	KeyPrefix       string // defaults to domain.KeyPrefix
	Dimensions      int
	HNSWM           int
	HNSWEFConstruct int
}

// Repo implements usecase contact storage over a vector-indexed hash store.
type Repo struct {
	store store
	opts  Options
}

// New creates a contact repository.
func New(s store, opts Options) *Repo {
	if opts.KeyPrefix == "" {
		opts.KeyPrefix = domain.KeyPrefix
	}
	if opts.Dimensions <= 0 {
		opts.Dimensions = domain.DefaultVectorConfig().Dimensions
	}
	return &Repo{store: s, opts: opts}
}

func (r *Repo) keyPrefix() string {
	return r.opts.KeyPrefix + keySegment
}

func (r *Repo) indexName() string {
	return r.keyPrefix() + "idx"
}

func (r *Repo) contactKey(name string) string {
	return r.keyPrefix() + slug(name)
}

// EnsureIndex creates the contact vector index if it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	exists, err := r.store.IndexExists(ctx, r.indexName())
	if err != nil {
		return fmt.Errorf("check index %s: %w", r.indexName(), err)
	}
	if exists {
		return nil
	}

	def := &db.IndexDefinition{
		Name:     r.indexName(),
		Prefixes: []string{r.keyPrefix()},
		Fields: []db.IndexField{
			{
				Name:              vectorField,
				Alias:             "vector",
				Type:              db.IndexFieldVector,
				VectorAlgo:        db.VectorHNSW,
				VectorDim:         r.opts.Dimensions,
				VectorDistance:    db.DistanceCosine,
				VectorM:           r.opts.HNSWM,
				VectorEFConstruct: r.opts.HNSWEFConstruct,
			},
		},
	}

	if err := r.store.CreateIndex(ctx, def); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return nil
		}
		return fmt.Errorf("create index %s: %w", r.indexName(), err)
	}
	return nil
}

// Upsert writes a contact and its profile vector. The contact name is the identity key,
// so writing the same name twice replaces the earlier record.
func (r *Repo) Upsert(ctx context.Context, c domain.Contact, vector []float32) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("contact name is required: %w", domain.ErrInvalidContact)
	}
	if r.opts.Dimensions > 0 && len(vector) != r.opts.Dimensions {
		return fmt.Errorf("vector has %d dims, index expects %d: %w",
			len(vector), r.opts.Dimensions, domain.ErrVectorDimMismatch)
	}

	key := r.contactKey(c.Name)
	fields := map[string]string{
		"name":      c.Name,
		"title":     c.Title,
		"company":   c.Company,
		"location":  c.Location,
		"industry":  c.Industry,
		vectorField: vectorBlob(vector),
	}

	if err := r.store.HSet(ctx, key, fields); err != nil {
		return fmt.Errorf("hset %s: %w", key, err)
	}
	return nil
}

// Exists reports whether a contact with the given name has been stored.
func (r *Repo) Exists(ctx context.Context, name string) (bool, error) {
	ok, err := r.store.Exists(ctx, r.contactKey(name))
	if err != nil {
		return false, fmt.Errorf("exists %s: %w", r.contactKey(name), err)
	}
	return ok, nil
}

// QueryNearest returns up to k contacts nearest to the query vector, best first.
func (r *Repo) QueryNearest(ctx context.Context, vector []float32, k int) ([]domain.Contact, error) {
	q := &db.KNNQuery{
		IndexName:    r.indexName(),
		Vector:       vector,
		K:            k,
		ReturnFields: []string{"name", "title", "company", "location", "industry", "__vector_score"},
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search knn: %w: %w", domain.ErrIndexUnavailable, err)
	}
	if sr == nil || sr.Total == 0 {
		return nil, nil
	}

	out := make([]domain.Contact, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		out = append(out, domain.Contact{
			Name:     entry.Fields["name"],
			Title:    entry.Fields["title"],
			Company:  entry.Fields["company"],
			Location: entry.Fields["location"],
			Industry: entry.Fields["industry"],
			Score:    entry.Score,
		})
	}
	return out, nil
}

// Count returns the number of stored contacts.
func (r *Repo) Count(ctx context.Context) (int, error) {
	n, err := r.store.SearchCount(ctx, r.indexName(), "*")
	if err != nil {
		return 0, fmt.Errorf("search count: %w", err)
	}
	return n, nil
}

// slug normalizes a contact name into a key segment: lowercase, spaces
// become hyphens, anything outside [a-z0-9-] is dropped.
func slug(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == ' ' || r == '_':
			b.WriteByte('-')
		}
	}
	return b.String()
}

// vectorBlob converts a float32 vector into a little-endian byte string for HSET.
func vectorBlob(vec []float32) string {
	buf := make([]byte, len(vec)*4)
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return string(buf)
}
