package rules

import (
	"strings"
)

// Options carries the keyword lists the rule table is built from. Callers
// usually fill it from configs/guardrails.yaml; zero-value fields fall back
// to the defaults below.
type Options struct {
	ForbiddenTopics []string
	JargonTerms     []string
	FalseClaims     []string
}

// Non-medical topics the assistant must refuse outright.
var defaultForbiddenTopics = []string{
	"aconselhamento jurídico",
	"advogado",
	"processo judicial",
	"legal advice",
	"aconselhamento financeiro",
	"investimento financeiro",
	"financial advice",
	"imposto de renda",
	"como fazer uma bomba",
	"fabricar explosivo",
	"explosive device",
}

// Advanced jargon that needs surrounding explanation to be useful to a
// non-specialist reader.
var defaultJargonTerms = []string{
	"farmacocinética",
	"fisiopatologia",
	"idiossincrático",
	"iatrogênico",
	"etiopatogenia",
	"pharmacokinetics",
	"pathophysiology",
}

// Known-false medical claims that must never be endorsed.
var defaultFalseClaims = []string{
	"antibióticos curam viroses",
	"antibióticos curam gripe",
	"antibiotics cure viruses",
	"vacinas causam autismo",
	"vaccines cause autism",
	"homeopatia cura câncer",
}

// Responses shorter than this that lean on jargon are considered
// under-explained. A coarse proxy for explanation density.
const minExplainedLength = 200

// Table holds the three rule tiers in evaluation order.
type Table struct {
	mandatory []Rule
	quality   []Rule
	content   []Rule
}

func NewTable(opts Options) *Table {
	forbidden := opts.ForbiddenTopics
	if len(forbidden) == 0 {
		forbidden = defaultForbiddenTopics
	}
	jargon := opts.JargonTerms
	if len(jargon) == 0 {
		jargon = defaultJargonTerms
	}
	falseClaims := opts.FalseClaims
	if len(falseClaims) == 0 {
		falseClaims = defaultFalseClaims
	}

	return &Table{
		mandatory: []Rule{
			rule{
				id:          "medical_only",
				description: "Queries must stay within clinical scope",
				action:      "reject",
				message:     "Este assistente responde apenas a perguntas de apoio à decisão clínica.",
				evaluate:    containsNone(forbidden),
			},
			rule{
				id:          "no_direct_prescription",
				description: "Input must not demand a directly executable prescription",
				action:      "reject",
				message:     "",
				// Soft pass-through: enforcement happens on the response
				// side, in the medical guardrail checks.
				evaluate: func(string) bool { return true },
			},
			rule{
				id:          "portuguese_only",
				description: "Answers are produced in Portuguese",
				action:      "enforce",
				message:     "",
				// Enforced by the system prompt, not validated here.
				evaluate: func(string) bool { return true },
			},
		},
		quality: []Rule{
			rule{
				id:          "complexity_level",
				description: "Advanced jargon needs surrounding explanation",
				action:      "warn",
				message:     "A resposta usa termos avançados sem explicação suficiente.",
				evaluate: func(text string) bool {
					if len(text) >= minExplainedLength {
						return true
					}
					return containsNone(jargon)(text)
				},
			},
		},
		content: []Rule{
			rule{
				id:          "factual_accuracy",
				description: "Responses must not repeat known-false medical claims",
				action:      "flag",
				message:     "A resposta contém uma afirmação médica reconhecidamente falsa.",
				evaluate:    containsNone(falseClaims),
			},
		},
	}
}

func (t *Table) Mandatory() []Rule { return t.mandatory }
func (t *Table) Quality() []Rule   { return t.quality }
func (t *Table) Content() []Rule   { return t.content }

// containsNone builds a predicate that fails when the text contains any of
// the given keywords, case-insensitively.
func containsNone(keywords []string) func(string) bool {
	lowered := make([]string, len(keywords))
	for i, k := range keywords {
		lowered[i] = strings.ToLower(k)
	}
	return func(text string) bool {
		lower := strings.ToLower(text)
		for _, k := range lowered {
			if strings.Contains(lower, k) {
				return false
			}
		}
		return true
	}
}
