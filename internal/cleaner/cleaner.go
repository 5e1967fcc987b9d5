package cleaner

import (
	"regexp"
	"strings"

	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/models"
	"github.com/rs/zerolog"
)

// Apology substitutes the answer when the model output is beyond repair.
const Apology = "Desculpe, não consegui gerar uma resposta legível para esta pergunta. Por favor, reformule a pergunta ou consulte diretamente as fontes primárias."

const responseMarker = "### Response:"

// Section markers the fine-tuned model duplicates across its output.
var sectionMarkers = []string{
	"### Response:",
	"Response:",
	"### Conclusion:",
	"Conclusion:",
	"### Comments:",
	"Comments:",
}

var (
	// Loose shape of a relative-risk statistic as the model emits it.
	rrPattern = regexp.MustCompile(`RR:\s*[\d·.]+\s*\([^)]*\)`)
	// Allow-list: only statistics in the canonical "RR: x.xx (95% CI ...)"
	// shape survive. Conservative on purpose so legitimate numbers are
	// never stripped by accident.
	wellFormedRRPattern = regexp.MustCompile(`^RR:\s*\d+[.·]\d+\s*\(95%\s*CI[^)]*\)$`)

	noiseLinePattern    = regexp.MustCompile(`^[\d·\s()\[\]−\-_,;:]+$`)
	letterPattern       = regexp.MustCompile(`[a-zA-ZÀ-ÿ]`)
	multiNewlinePattern = regexp.MustCompile(`\n{3,}`)
	spaceRunPattern     = regexp.MustCompile(`[ \t]{2,}`)
	statTokenSplitter   = regexp.MustCompile(`(?i)RR|CI|95%`)
)

// Cleaner normalizes raw model text before guardrail evaluation. Only the
// BiobyIA fine-tune needs scrubbing; other providers pass through untouched.
type Cleaner struct {
	logger *zerolog.Logger
}

func New(logger *zerolog.Logger) *Cleaner {
	return &Cleaner{
		logger: logger,
	}
}

// Clean dispatches on provider.
func (c *Cleaner) Clean(provider, text string) string {
	if provider == models.ProviderBiobyIA {
		return c.CleanBiobyIAResponse(text)
	}
	return text
}

// CleanBiobyIAResponse strips the malformed statistical notation and
// duplicated section headers this fine-tune is known to emit. When the text
// stays saturated with garbled statistics it is discarded for an honest
// apology rather than surfaced to a clinician.
func (c *Cleaner) CleanBiobyIAResponse(text string) string {
	cleaned := scrub(text)

	if isGarbled(cleaned) {
		c.logger.Warn().
			Int("length", len(cleaned)).
			Msg("biobyia output saturated with malformed statistics")

		idx := strings.LastIndex(text, responseMarker)
		if idx < 0 {
			return Apology
		}
		cleaned = scrub(text[idx+len(responseMarker):])
		if len(cleaned) < 100 {
			return Apology
		}
	}

	if strings.TrimSpace(cleaned) == "" {
		return Apology
	}
	return cleaned
}

func scrub(text string) string {
	for _, marker := range sectionMarkers {
		text = strings.ReplaceAll(text, marker, "")
	}

	text = rrPattern.ReplaceAllStringFunc(text, func(match string) string {
		if wellFormedRRPattern.MatchString(match) {
			return match
		}
		return ""
	})

	var kept []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && noiseLinePattern.MatchString(trimmed) {
			continue
		}
		if trimmed != "" && len(trimmed) < 4 && !letterPattern.MatchString(trimmed) {
			continue
		}
		kept = append(kept, line)
	}
	text = strings.Join(kept, "\n")

	text = multiNewlinePattern.ReplaceAllString(text, "\n\n")
	text = spaceRunPattern.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}

// isGarbled is a coarse density heuristic: text that splits into more than
// five segments around RR/CI/95% tokens while still being long is treated as
// statistical gibberish. The threshold has no empirical tuning behind it;
// do not move it without validating against real model output.
func isGarbled(text string) bool {
	return len(statTokenSplitter.Split(text, -1)) > 5 && len(text) > 500
}
