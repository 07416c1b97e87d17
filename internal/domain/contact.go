package domain

import "strings"

// KeyPrefix namespaces all keys owned by rolodex in the backing store.
const KeyPrefix = "rolodex:"

// Contact is an ephemeral projection of an indexed address-book entry.
// Name is the identity key: hits retrieved under different query variants
// that share a name describe the same person and must be merged.
type Contact struct {
	Name     string
	Title    string
	Company  string
	Location string
	Industry string

	// Score is the similarity in [0,1] relative to the variant that
	// retrieved this contact. MatchedVariant is that variant's text.
	Score          float64
	MatchedVariant string
}

// ProfileText renders the contact as the text that gets embedded into the
// index. Empty fields are skipped.
func (c Contact) ProfileText() string {
	parts := make([]string, 0, 5)
	parts = append(parts, c.Name)
	if c.Title != "" {
		parts = append(parts, c.Title)
	}
	if c.Company != "" {
		parts = append(parts, "at "+c.Company)
	}
	if c.Location != "" {
		parts = append(parts, "in "+c.Location)
	}
	if c.Industry != "" {
		parts = append(parts, c.Industry+" industry")
	}
	return strings.Join(parts, ", ")
}
