package expand

import (
	"strings"

	"github.com/voicebook/rolodex/internal/domain"
)

// MaxVariants caps how many variants a single query expands into. Each
// variant costs one embedding call and one index query downstream.
const MaxVariants = 5

// correction is a known speech-to-text misspelling of a role word.
type correction struct {
	wrong string
	right string
}

// Transcription errors observed for tech role vocabulary. Applied in order,
// cumulatively, against the lowercased query.
var corrections = []correction{
	{"engineergs", "engineers"},
	{"engineerg", "engineer"},
	{"enginners", "engineers"},
	{"enginer", "engineer"},
	{"developpers", "developers"},
	{"develper", "developer"},
	{"mangager", "manager"},
	{"mangers", "managers"},
	{"desiner", "designer"},
	{"desingers", "designers"},
	{"anlyst", "analyst"},
	{"anlysts", "analysts"},
	{"scrummaster", "scrum master"},
	{"devops", "devops engineer"},
	{"datascientist", "data scientist"},
	{"prodcut", "product"},
	{"frontent", "frontend"},
	{"bakend", "backend"},
	{"fullstack", "full stack"},
}

// synonymEntry maps a role token to equivalent search phrasings.
type synonymEntry struct {
	term     string
	synonyms []string
}

var synonyms = []synonymEntry{
	{"engineer", []string{"engineer", "engineering", "software engineer", "developer"}},
	{"engineers", []string{"engineers", "engineering", "software engineers", "developers"}},
	{"dev", []string{"developer", "engineer", "software engineer"}},
	{"devs", []string{"developers", "engineers", "software engineers"}},
	{"designer", []string{"designer", "design", "ux designer", "ui designer", "graphic designer"}},
	{"designers", []string{"designers", "design", "ux designers", "ui designers", "graphic designers"}},
	{"manager", []string{"manager", "management", "project manager", "product manager"}},
	{"managers", []string{"managers", "management", "project managers", "product managers"}},
	{"pm", []string{"product manager", "project manager", "manager"}},
	{"qa", []string{"quality assurance", "tester", "qa engineer"}},
	{"sales", []string{"sales", "sales representative", "account executive"}},
	{"marketing", []string{"marketing", "digital marketing", "marketing specialist"}},
}

// Expander rewrites a query into up to MaxVariants deterministic variants
// to soften voice transcription noise. Stateless.
type Expander struct{}

// New creates a query expander.
func New() *Expander {
	return &Expander{}
}

// Expand produces an ordered, case-insensitively deduplicated variant list.
// The first variant is always the original text. Same query in, same
// variants out.
func (e *Expander) Expand(q domain.Query) []domain.Variant {
	var out []domain.Variant
	seen := make(map[string]bool)

	add := func(text string, prov domain.Provenance) {
		key := strings.ToLower(text)
		if text == "" || seen[key] {
			return
		}
		seen[key] = true
		out = append(out, domain.NewVariant(text, prov))
	}

	text := q.Text()
	add(text, domain.VariantOriginal)

	// Spelling corrections accumulate: each hit rewrites the working string
	// and contributes the current state as a variant.
	corrected := strings.ToLower(text)
	for _, c := range corrections {
		if strings.Contains(corrected, c.wrong) {
			corrected = strings.ReplaceAll(corrected, c.wrong, c.right)
			add(corrected, domain.VariantSpelling)
		}
	}

	// One variant per qualifying token per direction, no cross-product.
	words := strings.Fields(text)
	for i, word := range words {
		lower := strings.ToLower(word)

		if !strings.HasSuffix(lower, "s") && len(lower) > 3 {
			add(replaceWord(words, i, word+"s"), domain.VariantPlural)
		}
		if strings.HasSuffix(lower, "s") && len(lower) > 4 {
			add(replaceWord(words, i, word[:len(word)-1]), domain.VariantPlural)
		}
	}

	// Role synonyms: replace a matching token with each of its phrasings.
	lowerWords := strings.Fields(strings.ToLower(text))
	for i, word := range lowerWords {
		for _, entry := range synonyms {
			if entry.term != word {
				continue
			}
			for _, syn := range entry.synonyms {
				add(replaceWord(lowerWords, i, syn), domain.VariantSynonym)
			}
		}
	}

	if len(out) > MaxVariants {
		out = out[:MaxVariants]
	}
	return out
}

func replaceWord(words []string, i int, repl string) string {
	cp := make([]string, len(words))
	copy(cp, words)
	cp[i] = repl
	return strings.Join(cp, " ")
}
