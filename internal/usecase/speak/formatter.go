// Package speak turns ranked contact lists into strings suitable for
// speech synthesis.
package speak

import (
	"fmt"
	"strings"

	"github.com/voicebook/rolodex/internal/domain"
)

const maxListedContacts = 3

// suggestionRule offers replacement terms when a query found nothing.
// First matching rule wins.
type suggestionRule struct {
	keyword string
	terms   []string
}

var suggestionRules = []suggestionRule{
	{"engineer", []string{"engineers", "developers", "software engineers"}},
	{"design", []string{"designers", "UX designers", "UI designers"}},
	{"manag", []string{"managers", "product managers", "project managers"}},
	{"dev", []string{"developers", "engineers", "software developers"}},
}

// Format renders a ranked contact list as one conversational sentence or
// two. Pure function: no side effects, total over every input shape.
func Format(results []domain.Contact, originalQuery string) string {
	switch len(results) {
	case 0:
		return formatZero(originalQuery)
	case 1:
		return formatOne(results[0])
	default:
		return formatMany(results, originalQuery)
	}
}

func formatZero(query string) string {
	msg := fmt.Sprintf("I searched for '%s' but found no matches. ", query)

	lower := strings.ToLower(query)
	for _, rule := range suggestionRules {
		if strings.Contains(lower, rule.keyword) {
			return msg + "You might try searching for: " + joinNatural(rule.terms) + "."
		}
	}
	return msg + "Would you like to try a different term?"
}

func formatOne(c domain.Contact) string {
	parts := []string{c.Name}
	if c.Title != "" {
		parts = append(parts, "a "+c.Title)
	}
	if c.Company != "" {
		parts = append(parts, "at "+c.Company)
	}
	if c.Location != "" {
		parts = append(parts, "in "+c.Location)
	}
	if c.Industry != "" {
		parts = append(parts, "in the "+c.Industry+" industry")
	}
	return "I found " + strings.Join(parts, " ") + "."
}

func formatMany(results []domain.Contact, query string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "I found %d people matching '%s'. ", len(results), query)

	companies := make(map[string]bool)
	for _, c := range results {
		company := c.Company
		if company == "" {
			company = "Other"
		}
		companies[company] = true
	}

	singleCompany := len(companies) == 1
	if singleCompany {
		for company := range companies {
			fmt.Fprintf(&b, "They all work at %s. ", company)
		}
	}

	var snippets []string
	for i, c := range results {
		if i >= maxListedContacts {
			break
		}
		snip := c.Name
		if c.Title != "" {
			snip += ", " + c.Title
		}
		if c.Company != "" && !singleCompany {
			snip += " at " + c.Company
		}
		if c.Location != "" {
			snip += " in " + c.Location
		}
		snippets = append(snippets, snip)
	}

	if rest := len(results) - maxListedContacts; rest > 0 {
		snippets = append(snippets, fmt.Sprintf("%d others", rest))
	}

	b.WriteString("Here are a few: ")
	b.WriteString(joinNatural(snippets))
	b.WriteString(". Would you like me to narrow it down or hear more about someone?")
	return b.String()
}

// joinNatural joins items with ", " except the final pair, which gets " and ".
func joinNatural(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}
