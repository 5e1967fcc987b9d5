package guardrails

import (
	"strings"
)

// SafetyDisclaimer is appended to every answer that does not already carry
// an equivalent notice.
const SafetyDisclaimer = "⚠️ IMPORTANTE: Esta resposta foi gerada por inteligência artificial para apoio à decisão clínica. Todas as recomendações devem ser validadas por um médico licenciado antes da implementação."

// Phrases counted as an already-present disclaimer. The appended notice
// itself matches ("validadas por um médico"), which keeps injection
// idempotent.
var existingDisclaimerPhrases = []string{
	"validadas por um médico",
	"validada por um médico licenciado",
	"consulte um médico",
	"procure um médico",
	"orientação de um médico",
	"consult a physician",
	"consult your doctor",
	"validated by a licensed physician",
	"apenas para apoio à decisão",
}

// AddSafetyDisclaimer appends the safety notice unless the response already
// contains one. Never duplicates the disclaimer.
func AddSafetyDisclaimer(response string) string {
	lower := strings.ToLower(response)
	for _, phrase := range existingDisclaimerPhrases {
		if strings.Contains(lower, phrase) {
			return response
		}
	}
	return strings.TrimRight(response, "\n ") + "\n\n" + SafetyDisclaimer
}
