package guardrails

import (
	"testing"

	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/models"
	"github.com/rs/zerolog"
)

func newTestGuardrails() *Guardrails {
	logger := zerolog.Nop()
	return New(&logger)
}

func hasFlag(issues []models.ValidationIssue, flag string) bool {
	for _, issue := range issues {
		if issue.Flag == flag {
			return true
		}
	}
	return false
}

func TestValidateMedicalResponse_DirectPrescription(t *testing.T) {
	g := newTestGuardrails()

	verdict := g.ValidateMedicalResponse(
		"What should I give this patient?",
		"Take 500 mg of X now.",
		Options{RequestID: "req-1"},
	)

	if !hasFlag(verdict.Issues, models.FlagDirectPrescription) {
		t.Fatalf("expected DIRECT_PRESCRIPTION, got %v", verdict.Issues)
	}
	if verdict.Passed {
		t.Error("a critical issue must fail the verdict")
	}
	if !verdict.RequiresReview {
		t.Error("critical severity must require review")
	}
}

func TestValidateMedicalResponse_HighRiskWithDisclaimerAndCitation(t *testing.T) {
	g := newTestGuardrails()

	verdict := g.ValidateMedicalResponse(
		"Paciente com déficit neurológico agudo",
		"This patient may have a stroke; consult a licensed physician immediately. Source: PROT-EMER-001.",
		Options{
			RequestID: "req-2",
			Sources:   []models.Source{{ID: "chunk-1", ArticleID: "PROT-EMER-001"}},
		},
	)

	if hasFlag(verdict.Issues, models.FlagMissingDisclaimer) {
		t.Error("disclaimer is present, MISSING_DISCLAIMER is wrong")
	}
	if hasFlag(verdict.Issues, models.FlagNoSources) || hasFlag(verdict.Issues, models.FlagSourcesNotCited) {
		t.Error("sources are present and cited")
	}
	if !hasFlag(verdict.Issues, models.FlagHighRiskContent) {
		t.Fatalf("expected HIGH_RISK_CONTENT, got %v", verdict.Issues)
	}
	if !verdict.RequiresReview {
		t.Error("high-risk content must require review")
	}
}

func TestValidateMedicalResponse_TreatmentWithoutContraindications(t *testing.T) {
	g := newTestGuardrails()

	verdict := g.ValidateMedicalResponse(
		"Qual antibiótico para esta pneumonia?",
		"Sugere-se amoxicilina conforme o protocolo institucional; a decisão final é do médico assistente.",
		Options{
			RequestID: "req-3",
			QueryType: models.QueryTypeTreatmentSuggestion,
			Sources:   []models.Source{{ID: "chunk-9"}},
		},
	)

	if !hasFlag(verdict.Issues, models.FlagNoContraindicationInfo) {
		t.Fatalf("expected NO_CONTRAINDICATION_CHECK, got %v", verdict.Issues)
	}
}

func TestValidateMedicalResponse_CleanAnswer(t *testing.T) {
	g := newTestGuardrails()

	verdict := g.ValidateMedicalResponse(
		"Qual o manejo inicial da cefaleia tensional?",
		"Segundo o protocolo PROT-NEURO-003, recomenda-se analgesia simples e reavaliação; consulte um médico em caso de sinais de alarme, evite automedicação prolongada.",
		Options{
			RequestID: "req-4",
			QueryType: models.QueryTypeGeneral,
			Sources:   []models.Source{{ID: "chunk-2", ArticleID: "PROT-NEURO-003"}},
		},
	)

	if !verdict.Passed {
		t.Fatalf("expected pass, got issues %v", verdict.Issues)
	}
	if verdict.RequiresReview {
		t.Error("clean answer should not require review")
	}
	if verdict.Summary.Total != 0 {
		t.Errorf("summary = %+v, want zero issues", verdict.Summary)
	}
}

// Adding a high-risk keyword to an otherwise identical answer must flip
// RequiresReview from false to true.
func TestValidateMedicalResponse_Monotonicity(t *testing.T) {
	g := newTestGuardrails()

	opts := Options{
		RequestID: "req-5",
		Sources:   []models.Source{{ID: "chunk-2"}},
	}
	base := "Segundo o protocolo, mantenha observação; consulte um médico."

	before := g.ValidateMedicalResponse("Conduta para este caso?", base, opts)
	if before.RequiresReview {
		t.Fatalf("baseline should not require review: %v", before.Issues)
	}

	after := g.ValidateMedicalResponse("Conduta para este caso?", base+" Há risco de vida se não tratado.", opts)
	if !after.RequiresReview {
		t.Error("adding a high-risk keyword must flip RequiresReview to true")
	}
}

func TestValidateMedicalResponse_CriticalImpliesReview(t *testing.T) {
	g := newTestGuardrails()

	responses := []string{
		"Take 500 mg of X now.",
		"Suspeita de anafilaxia, seguir protocolo; consulte um médico.",
	}
	for _, response := range responses {
		verdict := g.ValidateMedicalResponse("pergunta", response, Options{
			RequestID: "req-6",
			Sources:   []models.Source{{ID: "s"}},
		})
		if verdict.Summary.Critical > 0 && !verdict.RequiresReview {
			t.Errorf("critical issue without review flag for %q", response)
		}
	}
}
