package expand

import (
	"strings"
	"testing"

	"github.com/voicebook/rolodex/internal/domain"
)

func mustQuery(t *testing.T, text string) domain.Query {
	t.Helper()
	q, err := domain.NewQuery(text)
	if err != nil {
		t.Fatalf("NewQuery(%q): %v", text, err)
	}
	return q
}

func texts(vs []domain.Variant) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.Text()
	}
	return out
}

func TestExpand_OriginalFirst(t *testing.T) {
	e := New()

	vs := e.Expand(mustQuery(t, "who works at Stripe"))
	if len(vs) == 0 {
		t.Fatal("expected at least one variant")
	}
	if vs[0].Text() != "who works at Stripe" {
		t.Errorf("first variant must be the original, got %q", vs[0].Text())
	}
	if vs[0].Provenance() != domain.VariantOriginal {
		t.Errorf("first variant provenance = %s, want original", vs[0].Provenance())
	}
}

func TestExpand_SpellingCorrection(t *testing.T) {
	e := New()

	vs := e.Expand(mustQuery(t, "find enginners"))

	var got *domain.Variant
	for i := range vs {
		if vs[i].Provenance() == domain.VariantSpelling {
			got = &vs[i]
			break
		}
	}
	if got == nil {
		t.Fatalf("expected a spelling-correction variant, got %v", texts(vs))
	}
	if got.Text() != "find engineers" {
		t.Errorf("spelling variant = %q, want %q", got.Text(), "find engineers")
	}
}

func TestExpand_CumulativeCorrections(t *testing.T) {
	e := New()

	// Two misspellings stack: each correction rewrites the working string.
	vs := e.Expand(mustQuery(t, "prodcut mangers"))

	want := map[string]bool{
		"prodcut managers": false,
		"product managers": false,
	}
	for _, v := range vs {
		if _, ok := want[v.Text()]; ok {
			want[v.Text()] = true
		}
	}
	if !want["prodcut managers"] || !want["product managers"] {
		t.Errorf("expected cumulative corrections, got %v", texts(vs))
	}
}

func TestExpand_Pluralization(t *testing.T) {
	e := New()

	vs := e.Expand(mustQuery(t, "lawyer in Boston"))

	found := false
	for _, v := range vs {
		if v.Text() == "lawyers in Boston" && v.Provenance() == domain.VariantPlural {
			found = true
		}
	}
	if !found {
		t.Errorf("expected pluralized variant, got %v", texts(vs))
	}
}

func TestExpand_Singularization(t *testing.T) {
	e := New()

	vs := e.Expand(mustQuery(t, "recruiters"))

	found := false
	for _, v := range vs {
		if v.Text() == "recruiter" && v.Provenance() == domain.VariantPlural {
			found = true
		}
	}
	if !found {
		t.Errorf("expected singularized variant, got %v", texts(vs))
	}
}

func TestExpand_ShortTokensSkipped(t *testing.T) {
	e := New()

	// "dev" has 3 letters, below the pluralization threshold; its synonym
	// entries still apply.
	vs := e.Expand(mustQuery(t, "dev"))
	for _, v := range vs {
		if v.Text() == "devs" {
			t.Errorf("3-letter token must not be pluralized, got %v", texts(vs))
		}
	}
}

func TestExpand_SynonymExpansion(t *testing.T) {
	e := New()

	vs := e.Expand(mustQuery(t, "pm at google"))

	wantTexts := []string{
		"pm at google",
		"pm at googles",
		"product manager at google",
		"project manager at google",
		"manager at google",
	}
	got := texts(vs)
	if len(got) != len(wantTexts) {
		t.Fatalf("expected %d variants, got %d: %v", len(wantTexts), len(got), got)
	}
	for i := range wantTexts {
		if got[i] != wantTexts[i] {
			t.Errorf("variant[%d] = %q, want %q", i, got[i], wantTexts[i])
		}
	}
	if vs[2].Provenance() != domain.VariantSynonym {
		t.Errorf("variant[2] provenance = %s, want synonym-expansion", vs[2].Provenance())
	}
}

func TestExpand_CapsAtFive(t *testing.T) {
	e := New()

	vs := e.Expand(mustQuery(t, "engineer manager"))
	if len(vs) != MaxVariants {
		t.Errorf("expected %d variants, got %d: %v", MaxVariants, len(vs), texts(vs))
	}
}

func TestExpand_DedupCaseInsensitive(t *testing.T) {
	e := New()

	vs := e.Expand(mustQuery(t, "Engineers"))
	seen := make(map[string]bool)
	for _, v := range vs {
		lower := strings.ToLower(v.Text())
		if seen[lower] {
			t.Errorf("duplicate variant %q in %v", v.Text(), texts(vs))
		}
		seen[lower] = true
	}
}

func TestExpand_Deterministic(t *testing.T) {
	e := New()
	q := mustQuery(t, "designers in nyc")

	first := texts(e.Expand(q))
	second := texts(e.Expand(q))

	if len(first) != len(second) {
		t.Fatalf("variant counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("run mismatch at %d: %q vs %q", i, first[i], second[i])
		}
	}
}
