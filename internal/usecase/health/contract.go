package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// EmbeddingChecker checks embedding provider availability.
type EmbeddingChecker interface {
	HealthCheck(ctx context.Context) error
}

// ContactCounter checks that the contact index answers queries.
type ContactCounter interface {
	Count(ctx context.Context) (int, error)
}
