package domain

import "strings"

// Provenance tags how a query variant was derived from the spoken query.
type Provenance string

const (
	// VariantOriginal marks the query text as spoken.
	VariantOriginal Provenance = "original"
	// VariantSpelling marks a transcription misspelling correction.
	VariantSpelling Provenance = "spelling-correction"
	// VariantPlural marks a pluralized or singularized token rewrite.
	VariantPlural Provenance = "pluralization"
	// VariantSynonym marks a role-synonym token replacement.
	VariantSynonym Provenance = "synonym-expansion"
)

// Query is a validated search utterance as transcribed from speech.
type Query struct {
	text string
}

// NewQuery validates and normalizes a raw query string.
func NewQuery(raw string) (Query, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Query{}, ErrEmptyQuery
	}
	return Query{text: text}, nil
}

// Text returns the trimmed query text.
func (q Query) Text() string { return q.text }

// Variant is a candidate rewriting of a query. Variants are explored in
// generation order; that order also breaks score ties when merging.
type Variant struct {
	text       string
	provenance Provenance
}

// NewVariant creates a query variant.
func NewVariant(text string, provenance Provenance) Variant {
	return Variant{text: text, provenance: provenance}
}

// Text returns the variant text.
func (v Variant) Text() string { return v.text }

// Provenance returns how the variant was derived.
func (v Variant) Provenance() Provenance { return v.provenance }
