package retrieve

import (
	"sort"

	"github.com/voicebook/rolodex/internal/domain"
)

// merger accumulates contacts across variants, deduplicating by name.
// A later occurrence replaces an earlier one only with a strictly higher
// score; ties keep the earlier, higher-priority variant's hit. Discovery
// order is preserved for stable ranking of equal scores.
type merger struct {
	byName map[string]int
	order  []domain.Contact
}

func newMerger() *merger {
	return &merger{byName: make(map[string]int)}
}

// add records a contact and reports whether it became (or replaced) the
// best-seen entry for its name.
func (m *merger) add(c domain.Contact) bool {
	if i, ok := m.byName[c.Name]; ok {
		if c.Score > m.order[i].Score {
			m.order[i] = c
			return true
		}
		return false
	}
	m.byName[c.Name] = len(m.order)
	m.order = append(m.order, c)
	return true
}

// ranked returns the merged contacts sorted by score descending, discovery
// order breaking exact ties, truncated to topK.
func (m *merger) ranked(topK int) []domain.Contact {
	out := make([]domain.Contact, len(m.order))
	copy(out, m.order)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	if len(out) > topK {
		out = out[:topK]
	}
	return out
}
