package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results. Contacts carries the indexed
// contact count when the index check passes.
type Report struct {
	Status   Status
	Checks   map[string]CheckResult
	Contacts int
}

// Service coordinates health checks.
type Service struct {
	db        DBPinger
	embedding EmbeddingChecker
	contacts  ContactCounter
}

// New creates a Service. embedding and contacts can be nil.
func New(db DBPinger, embedding EmbeddingChecker, contacts ContactCounter) *Service {
	return &Service{db: db, embedding: embedding, contacts: contacts}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)
	contactCount := 0

	if err := s.db.Ping(ctx); err != nil {
		checks["database"] = CheckError
	} else {
		checks["database"] = CheckOK
	}

	if s.embedding != nil {
		if err := s.embedding.HealthCheck(ctx); err != nil {
			checks["embedding"] = CheckError
		} else {
			checks["embedding"] = CheckOK
		}
	}

	if s.contacts != nil {
		n, err := s.contacts.Count(ctx)
		if err != nil {
			checks["contact_index"] = CheckError
		} else {
			checks["contact_index"] = CheckOK
			contactCount = n
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks, Contacts: contactCount}
}
