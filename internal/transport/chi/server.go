package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/voicebook/rolodex/internal/domain"
	"github.com/voicebook/rolodex/internal/usecase/assistant"
	healthuc "github.com/voicebook/rolodex/internal/usecase/health"
)

// Error codes returned in JSON error bodies.
const (
	codeBadRequest        = "bad_request"
	codeValidationFailed  = "validation_failed"
	codeVectorDimMismatch = "vector_dim_mismatch"
	codeEmbeddingProvider = "embedding_provider_error"
	codeIndexUnavailable  = "index_unavailable"
	codeMemoryService     = "memory_service_error"
	codeInternalError     = "internal_error"
)

// assistantService is the consumer interface for the voice tool surface.
type assistantService interface {
	Search(ctx context.Context, state assistant.State, queryText string) (string, assistant.State)
	SaveMemory(ctx context.Context, text string) string
	RecallMemory(ctx context.Context, query string) string
}

// directoryService is the consumer interface for contact ingestion.
type directoryService interface {
	Add(ctx context.Context, c domain.Contact) (bool, error)
}

// healthService is the consumer interface for health checks.
type healthService interface {
	Check(ctx context.Context) healthuc.Report
}

// Server is the HTTP API over the assistant, directory, and health services.
type Server struct {
	assistant assistantService
	directory directoryService
	health    healthService
	logger    *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(a assistantService, d directoryService, h healthService, log *zap.Logger) *Server {
	return &Server{assistant: a, directory: d, health: h, logger: log}
}

// Router registers all routes. Middleware is composed by the caller.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Post("/assistant/search", s.handleSearch)
	r.Post("/contacts", s.handleAddContact)
	r.Post("/memories", s.handleSaveMemory)
	r.Post("/memories/recall", s.handleRecallMemory)
	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

// --- DTOs ---

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type conversationState struct {
	PriorQueries []string `json:"prior_queries,omitempty"`
	LastResults  []string `json:"last_results,omitempty"`
}

type searchRequest struct {
	Query string             `json:"query"`
	State *conversationState `json:"state,omitempty"`
}

type searchResponse struct {
	Reply string            `json:"reply"`
	State conversationState `json:"state"`
}

type contactRequest struct {
	Name     string `json:"name"`
	Title    string `json:"title,omitempty"`
	Company  string `json:"company,omitempty"`
	Location string `json:"location,omitempty"`
	Industry string `json:"industry,omitempty"`
}

type contactResponse struct {
	Name    string `json:"name"`
	Created bool   `json:"created"`
}

type memoryRequest struct {
	Text string `json:"text"`
}

type recallRequest struct {
	Query string `json:"query"`
}

type replyResponse struct {
	Reply string `json:"reply"`
}

type healthResponse struct {
	Status   string            `json:"status"`
	Checks   map[string]string `json:"checks"`
	Contacts int               `json:"contacts,omitempty"`
}

// --- Handlers ---

// handleSearch handles POST /assistant/search.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	state := assistant.State{}
	if req.State != nil {
		state.PriorQueries = req.State.PriorQueries
		state.LastResults = req.State.LastResults
	}

	reply, next := s.assistant.Search(r.Context(), state, req.Query)

	writeJSON(w, http.StatusOK, searchResponse{
		Reply: reply,
		State: conversationState{
			PriorQueries: next.PriorQueries,
			LastResults:  next.LastResults,
		},
	})
}

// handleAddContact handles POST /contacts.
func (s *Server) handleAddContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "Contact name is required")
		return
	}

	created, err := s.directory.Add(r.Context(), domain.Contact{
		Name:     req.Name,
		Title:    req.Title,
		Company:  req.Company,
		Location: req.Location,
		Industry: req.Industry,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, contactResponse{Name: req.Name, Created: created})
}

// handleSaveMemory handles POST /memories.
func (s *Server) handleSaveMemory(w http.ResponseWriter, r *http.Request) {
	var req memoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	reply := s.assistant.SaveMemory(r.Context(), req.Text)
	writeJSON(w, http.StatusOK, replyResponse{Reply: reply})
}

// handleRecallMemory handles POST /memories/recall.
func (s *Server) handleRecallMemory(w http.ResponseWriter, r *http.Request) {
	var req recallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	reply := s.assistant.RecallMemory(r.Context(), req.Query)
	writeJSON(w, http.StatusOK, replyResponse{Reply: reply})
}

// handleHealth handles GET /health. Degraded reports 503 so load balancers
// can rotate the instance out.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, healthResponse{
		Status:   string(report.Status),
		Checks:   checks,
		Contacts: report.Contacts,
	})
}

// --- Error mapping ---

type sentinelMapping struct {
	sentinel error
	status   int
	code     string
}

var sentinelMappings = []sentinelMapping{
	{domain.ErrEmptyQuery, http.StatusBadRequest, codeValidationFailed},
	{domain.ErrInvalidContact, http.StatusBadRequest, codeValidationFailed},
	{domain.ErrVectorDimMismatch, http.StatusBadRequest, codeVectorDimMismatch},
	{domain.ErrContactNotFound, http.StatusNotFound, codeValidationFailed},
	{domain.ErrEmbeddingProviderError, http.StatusBadGateway, codeEmbeddingProvider},
	{domain.ErrIndexUnavailable, http.StatusServiceUnavailable, codeIndexUnavailable},
	{domain.ErrMemoryServiceError, http.StatusBadGateway, codeMemoryService},
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	for _, m := range sentinelMappings {
		if errors.Is(err, m.sentinel) {
			writeError(w, m.status, m.code, m.sentinel.Error())
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}
