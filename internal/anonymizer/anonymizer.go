// Package anonymizer removes patient-identifying data from free text before
// it leaves the service boundary (LGPD/HIPAA).
package anonymizer

import "regexp"

type replacement struct {
	pattern *regexp.Regexp
	with    string
}

// Order matters: dates and labeled identifiers must be rewritten before
// the looser phone pattern gets a chance to eat their digits. A bare
// 11-digit run is ambiguous between a mobile number and an unformatted
// CPF; phones win, so CPF only catches the dotted form.
var replacements = []replacement{
	{regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{4}\b`), "[DATA]"},
	{regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`), "[DATA]"},
	{regexp.MustCompile(`\b\d{1,2}-\d{1,2}-\d{4}\b`), "[DATA]"},
	{regexp.MustCompile(`(?i)\b(ID|Patient ID|Paciente ID):\s*\d+\b`), "$1: [PACIENTE_ID]"},
	{regexp.MustCompile(`(?i)\b(Prontuário|Prontuario|Medical Record):\s*\d+\b`), "$1: [PRONTUARIO]"},
	{regexp.MustCompile(`\b(?:\(?\d{2}\)?\s?)?\d{4,5}[-.]?\d{4}\b`), "[TELEFONE]"},
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), "[EMAIL]"},
	{regexp.MustCompile(`\b\d{3}\.\d{3}\.\d{3}-\d{2}\b`), "[CPF]"},
}

// Anonymize replaces dates, patient identifiers, record numbers, phone
// numbers, emails and CPF numbers with generic placeholders.
func Anonymize(text string) string {
	if text == "" {
		return text
	}
	for _, r := range replacements {
		text = r.pattern.ReplaceAllString(text, r.with)
	}
	return text
}

// AnonymizeBatch anonymizes a slice of texts in place order.
func AnonymizeBatch(texts []string) []string {
	out := make([]string, len(texts))
	for i, text := range texts {
		out[i] = Anonymize(text)
	}
	return out
}
