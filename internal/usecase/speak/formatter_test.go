package speak

import (
	"strings"
	"testing"

	"github.com/voicebook/rolodex/internal/domain"
)

func TestFormat_ZeroNoSuggestions(t *testing.T) {
	got := Format(nil, "unicorn tamer")

	if !strings.HasPrefix(got, "I searched for 'unicorn tamer' but found no matches.") {
		t.Errorf("unexpected zero-result phrasing: %q", got)
	}
	if !strings.Contains(got, "Would you like to try a different term?") {
		t.Errorf("expected fallback prompt, got %q", got)
	}
}

func TestFormat_ZeroWithSuggestions(t *testing.T) {
	got := Format(nil, "enginner contacts")

	if !strings.Contains(got, "You might try searching for: engineers, developers and software engineers.") {
		t.Errorf("expected engineer suggestions, got %q", got)
	}
}

func TestFormat_ZeroSuggestionPriority(t *testing.T) {
	// "dev" appears inside "designer" queries too; the design rule must win
	// for design queries.
	got := Format(nil, "graphic design devs")

	if !strings.Contains(got, "designers, UX designers and UI designers") {
		t.Errorf("expected design suggestions to take priority, got %q", got)
	}
}

func TestFormat_OneFullRecord(t *testing.T) {
	c := domain.Contact{
		Name:    "Dana",
		Title:   "Software Engineer",
		Company: "Google",
	}

	got := Format([]domain.Contact{c}, "enginners at gogle")
	want := "I found Dana a Software Engineer at Google."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFormat_OneAllFields(t *testing.T) {
	c := domain.Contact{
		Name:     "Maria Lopez",
		Title:    "Data Scientist",
		Company:  "Stripe",
		Location: "Austin",
		Industry: "fintech",
	}

	got := Format([]domain.Contact{c}, "data people")
	want := "I found Maria Lopez a Data Scientist at Stripe in Austin in the fintech industry."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFormat_OneSparseFields(t *testing.T) {
	got := Format([]domain.Contact{{Name: "Sam"}}, "sam")
	if got != "I found Sam." {
		t.Errorf("got %q", got)
	}

	got = Format([]domain.Contact{{Name: "Sam", Location: "Berlin"}}, "sam")
	if got != "I found Sam in Berlin." {
		t.Errorf("got %q", got)
	}
}

func TestFormat_ManySingleCompany(t *testing.T) {
	results := []domain.Contact{
		{Name: "Ann", Title: "Engineer", Company: "Acme"},
		{Name: "Ben", Title: "Designer", Company: "Acme"},
	}

	got := Format(results, "acme folks")

	if !strings.Contains(got, "I found 2 people matching 'acme folks'.") {
		t.Errorf("missing count sentence: %q", got)
	}
	if !strings.Contains(got, "They all work at Acme.") {
		t.Errorf("expected single-company grouping: %q", got)
	}
	if !strings.Contains(got, "Here are a few: Ann, Engineer and Ben, Designer.") {
		t.Errorf("unexpected snippet list: %q", got)
	}
	if strings.Contains(got, "at Acme in") || strings.Contains(got, "Engineer at Acme") {
		t.Errorf("snippets must not repeat the shared company: %q", got)
	}
}

func TestFormat_ManyMixedCompanies(t *testing.T) {
	results := []domain.Contact{
		{Name: "Ann", Title: "Engineer", Company: "Acme", Score: 0.9},
		{Name: "Ben", Title: "Designer", Company: "Other Co", Score: 0.8},
		{Name: "Cleo", Company: "Acme", Score: 0.7},
		{Name: "Dev", Company: "Acme", Score: 0.6},
		{Name: "Eli", Company: "Other Co", Score: 0.5},
	}

	got := Format(results, "engineers")

	if strings.Contains(got, "They all work at") {
		t.Errorf("must not claim a single company: %q", got)
	}
	if !strings.Contains(got, "Ann, Engineer at Acme") {
		t.Errorf("expected per-contact company annotation: %q", got)
	}
	if !strings.Contains(got, "and 2 others") {
		t.Errorf("expected remainder count: %q", got)
	}
	// Exactly 3 named snippets.
	for _, absent := range []string{"Dev", "Eli"} {
		if strings.Contains(got, absent) {
			t.Errorf("contact beyond the first 3 must not be named: %q", got)
		}
	}
}

func TestFormat_ManyEmptyCompanyBucket(t *testing.T) {
	results := []domain.Contact{
		{Name: "Ann", Company: ""},
		{Name: "Ben", Company: ""},
	}

	got := Format(results, "people")

	// Contacts without a company share the "Other" bucket.
	if !strings.Contains(got, "They all work at Other.") {
		t.Errorf("expected Other bucket grouping: %q", got)
	}
}

func TestFormat_ManyClosesWithInvitation(t *testing.T) {
	results := []domain.Contact{
		{Name: "Ann", Company: "Acme"},
		{Name: "Ben", Company: "Zen"},
	}

	got := Format(results, "people")
	if !strings.HasSuffix(got, "?") {
		t.Errorf("expected a follow-up invitation, got %q", got)
	}
}

func TestJoinNatural(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{nil, ""},
		{[]string{"A"}, "A"},
		{[]string{"A", "B"}, "A and B"},
		{[]string{"A", "B", "C"}, "A, B and C"},
		{[]string{"A", "B", "C", "2 others"}, "A, B, C and 2 others"},
	}
	for _, tc := range tests {
		if got := joinNatural(tc.in); got != tc.want {
			t.Errorf("joinNatural(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
