package guardrails

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/models"
)

// PrescriptionCheck detects directly actionable dose instructions. The
// assistant may suggest, it must never instruct a specific dose for
// execution.
type PrescriptionCheck struct{}

var prescriptionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bprescrev[oae]\w*\s+\d+`),
	regexp.MustCompile(`(?i)\bprescribe\s+\d+\s*(mg|g|ml|mcg|ui)\b`),
	regexp.MustCompile(`(?i)\btake\s+\d+\s*(mg|g|ml|mcg|pills?|tablets?)\b`),
	regexp.MustCompile(`(?i)\btome\s+\d+\s*(mg|g|ml|mcg|comprimidos?|cápsulas?)\b`),
	regexp.MustCompile(`(?i)\badminist(er|re|rar)\s+\d+`),
	regexp.MustCompile(`(?i)\bgive\s+the\s+patient\s+\d+`),
	regexp.MustCompile(`(?i)\bdê\s+ao\s+paciente\s+\d+`),
}

func NewPrescriptionCheck() *PrescriptionCheck { return &PrescriptionCheck{} }

func (c *PrescriptionCheck) Name() string { return "direct_prescription" }

func (c *PrescriptionCheck) Check(input Input) *models.ValidationIssue {
	for _, pattern := range prescriptionPatterns {
		if match := pattern.FindString(input.Response); match != "" {
			return &models.ValidationIssue{
				Flag:     models.FlagDirectPrescription,
				Severity: models.SeverityCritical,
				Message:  fmt.Sprintf("response contains a direct prescription instruction: %q", match),
			}
		}
	}
	return nil
}

// DisclaimerCheck verifies the response defers to a licensed professional.
type DisclaimerCheck struct{}

var disclaimerKeywords = []string{
	"médico",
	"physician",
	"doctor",
	"validação",
	"validation",
	"consulte",
	"consult",
	"profissional",
	"professional",
	"licensed medical",
}

func NewDisclaimerCheck() *DisclaimerCheck { return &DisclaimerCheck{} }

func (c *DisclaimerCheck) Name() string { return "disclaimer" }

func (c *DisclaimerCheck) Check(input Input) *models.ValidationIssue {
	lower := strings.ToLower(input.Response)
	for _, keyword := range disclaimerKeywords {
		if strings.Contains(lower, keyword) {
			return nil
		}
	}
	return &models.ValidationIssue{
		Flag:     models.FlagMissingDisclaimer,
		Severity: models.SeverityHigh,
		Message:  "response does not defer to a licensed medical professional",
	}
}

// CitationCheck verifies the response is grounded: sources must exist and
// the text must reference them.
type CitationCheck struct{}

var protocolCodePattern = regexp.MustCompile(`PROT-[A-Z]+-\d+`)

var citationPhrases = []string{
	"protocol",
	"protocolo",
	"according to",
	"de acordo com",
	"segundo",
}

func NewCitationCheck() *CitationCheck { return &CitationCheck{} }

func (c *CitationCheck) Name() string { return "citation" }

func (c *CitationCheck) Check(input Input) *models.ValidationIssue {
	if len(input.Sources) == 0 {
		return &models.ValidationIssue{
			Flag:     models.FlagNoSources,
			Severity: models.SeverityMedium,
			Message:  "no retrieval sources were attached to this answer",
		}
	}

	if protocolCodePattern.MatchString(input.Response) {
		return nil
	}
	lower := strings.ToLower(input.Response)
	for _, phrase := range citationPhrases {
		if strings.Contains(lower, phrase) {
			return nil
		}
	}
	return &models.ValidationIssue{
		Flag:     models.FlagSourcesNotCited,
		Severity: models.SeverityMedium,
		Message:  "sources were retrieved but the response never cites them",
	}
}

// HighRiskCheck scans question and response for life-threatening topics that
// always demand physician review.
type HighRiskCheck struct{}

// Scan order is the declaration order; only the first match is reported.
var highRiskKeywords = []string{
	"emergency",
	"emergência",
	"cardiac arrest",
	"parada cardíaca",
	"stroke",
	"avc",
	"severe bleeding",
	"hemorragia grave",
	"anaphylaxis",
	"anafilaxia",
	"overdose",
	"suicide",
	"suicídio",
	"life-threatening",
	"risco de vida",
	"critical condition",
	"estado crítico",
}

func NewHighRiskCheck() *HighRiskCheck { return &HighRiskCheck{} }

func (c *HighRiskCheck) Name() string { return "high_risk" }

func (c *HighRiskCheck) Check(input Input) *models.ValidationIssue {
	combined := strings.ToLower(input.Question + " " + input.Response)
	for _, keyword := range highRiskKeywords {
		if strings.Contains(combined, keyword) {
			return &models.ValidationIssue{
				Flag:           models.FlagHighRiskContent,
				Severity:       models.SeverityCritical,
				Message:        fmt.Sprintf("high-risk topic detected: %q", keyword),
				RequiresReview: true,
			}
		}
	}
	return nil
}

// ContraindicationCheck requires treatment and interaction answers to
// mention contraindications or precautions.
type ContraindicationCheck struct{}

var contraindicationKeywords = []string{
	"contraindica",
	"contraindication",
	"alergia",
	"allergy",
	"interação",
	"interaction",
	"evite",
	"avoid",
	"cautela",
	"caution",
	"precaução",
}

func NewContraindicationCheck() *ContraindicationCheck { return &ContraindicationCheck{} }

func (c *ContraindicationCheck) Name() string { return "contraindication" }

func (c *ContraindicationCheck) Check(input Input) *models.ValidationIssue {
	if input.QueryType != models.QueryTypeTreatmentSuggestion && input.QueryType != models.QueryTypeDrugInteraction {
		return nil
	}

	lower := strings.ToLower(input.Response)
	for _, keyword := range contraindicationKeywords {
		if strings.Contains(lower, keyword) {
			return nil
		}
	}
	return &models.ValidationIssue{
		Flag:     models.FlagNoContraindicationInfo,
		Severity: models.SeverityHigh,
		Message:  "treatment answer never mentions contraindications, interactions or precautions",
	}
}

// DefaultChecks returns the five medical checks in their canonical order.
func DefaultChecks() []Check {
	return []Check{
		NewPrescriptionCheck(),
		NewDisclaimerCheck(),
		NewCitationCheck(),
		NewHighRiskCheck(),
		NewContraindicationCheck(),
	}
}
