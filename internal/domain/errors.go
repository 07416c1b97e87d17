package domain

import "errors"

var (
	// ErrEmptyQuery signals an empty or whitespace-only search query.
	ErrEmptyQuery = errors.New("empty query")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrIndexUnavailable signals a similarity index failure.
	ErrIndexUnavailable = errors.New("similarity index unavailable")
	// ErrContactNotFound signals a missing contact.
	ErrContactNotFound = errors.New("contact not found")
	// ErrInvalidContact signals a contact record that cannot be indexed.
	ErrInvalidContact = errors.New("invalid contact")
	// ErrVectorDimMismatch signals a vector dimension mismatch.
	ErrVectorDimMismatch = errors.New("vector dimension mismatch")
	// ErrMemoryServiceError signals a memory service failure.
	ErrMemoryServiceError = errors.New("memory service error")
)
