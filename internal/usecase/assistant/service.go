// Package assistant exposes the voice tool surface: contact search plus
// memory capture and recall, all replying in speakable prose.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/voicebook/rolodex/internal/domain"
	"github.com/voicebook/rolodex/internal/logger"
	"github.com/voicebook/rolodex/internal/usecase/speak"
)

// clarifyConfidence is the capture-confidence level below which the user is
// asked to restate who and what they meant.
const clarifyConfidence = 0.7

// State is the cross-call conversation context. It is a value: Search
// returns a new State instead of mutating service fields, so concurrent or
// replayed sessions cannot bleed into each other.
type State struct {
	PriorQueries []string
	LastResults  []string
}

// Options holds the assistant's search defaults.
type Options struct {
	TopK     int
	MinScore float64
	UserID   string
}

// Service implements the assistant tools over the retrieval engine and the
// remote memory service.
type Service struct {
	retriever Retriever
	memory    Memory
	opts      Options
}

// New creates the assistant service.
func New(retriever Retriever, memory Memory, opts Options) *Service {
	return &Service{retriever: retriever, memory: memory, opts: opts}
}

// Search runs a contact search end to end and returns the spoken reply plus
// the updated conversation state. Empty or whitespace-only input is rejected
// before any provider call with a clarification prompt.
func (s *Service) Search(ctx context.Context, state State, queryText string) (string, State) {
	q, err := domain.NewQuery(queryText)
	if err != nil {
		return "I didn't catch a search term. Who would you like me to look for?", state
	}

	results := s.retriever.Retrieve(ctx, q, s.opts.TopK, s.opts.MinScore)
	reply := speak.Format(results, q.Text())

	names := make([]string, 0, len(results))
	for _, c := range results {
		names = append(names, c.Name)
	}

	next := State{
		PriorQueries: append(append([]string(nil), state.PriorQueries...), q.Text()),
		LastResults:  names,
	}
	return reply, next
}

// SaveMemory stores a free-form note about a person via the memory service.
func (s *Service) SaveMemory(ctx context.Context, text string) string {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(text) == "" {
		return "I didn't catch that. What would you like me to remember?"
	}

	result, err := s.memory.Capture(ctx, s.opts.UserID, text)
	if err != nil {
		log.Warn("Memory capture failed", zap.Error(err))
		return "I had trouble saving that memory. Could you try rephrasing it?"
	}

	if result.Success {
		person := result.Person
		if person == "" {
			person = "someone"
		}
		details := result.Details
		if details == "" {
			details = "information"
		}
		return fmt.Sprintf("Got it—saved that %s %s.", person, details)
	}

	if result.Confidence < clarifyConfidence {
		return "I couldn't find clear information about a specific person in what you said. " +
			"Could you be more specific about who and what you learned about them?"
	}
	return "I had trouble saving that memory. Could you try rephrasing it?"
}

// RecallMemory answers questions about previously stored memories.
func (s *Service) RecallMemory(ctx context.Context, query string) string {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(query) == "" {
		return "What would you like me to recall?"
	}

	result, err := s.memory.Recall(ctx, s.opts.UserID, query)
	if err != nil {
		log.Warn("Memory recall failed", zap.Error(err))
		return "I don't have any memories that match your query."
	}

	if result.Success {
		if result.Message != "" {
			return result.Message
		}
		return "I found that information."
	}
	if result.Message != "" {
		return result.Message
	}
	return "I don't have any memories that match your query."
}
