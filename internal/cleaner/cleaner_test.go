package cleaner

import (
	"strings"
	"testing"

	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/models"
	"github.com/rs/zerolog"
)

func newTestCleaner() *Cleaner {
	logger := zerolog.Nop()
	return New(&logger)
}

func TestClean_OtherProvidersPassThrough(t *testing.T) {
	c := newTestCleaner()

	raw := "### Response:\nTexto qualquer."
	if got := c.Clean(models.ProviderBedrock, raw); got != raw {
		t.Errorf("bedrock output must pass through untouched, got %q", got)
	}
	if got := c.Clean(models.ProviderBiobyIA, raw); got == raw {
		t.Error("biobyia output must be cleaned")
	}
}

func TestCleanBiobyIAResponse_StripsMarkersAndMalformedStats(t *testing.T) {
	c := newTestCleaner()

	raw := "### Response:\nRR: 0·85 (95_CI −0 -1·33)\n\nActual advice here."
	got := c.CleanBiobyIAResponse(raw)

	if got != "Actual advice here." {
		t.Errorf("got %q, want %q", got, "Actual advice here.")
	}
}

func TestCleanBiobyIAResponse_KeepsWellFormedStats(t *testing.T) {
	c := newTestCleaner()

	raw := "O estudo reportou RR: 0.85 (95% CI 0.70-1.02) para o desfecho primário."
	got := c.CleanBiobyIAResponse(raw)

	if !strings.Contains(got, "RR: 0.85 (95% CI 0.70-1.02)") {
		t.Errorf("well-formed statistic was stripped: %q", got)
	}
}

func TestCleanBiobyIAResponse_DropsNoiseLines(t *testing.T) {
	c := newTestCleaner()

	raw := "Conclusão clínica relevante.\n0·12 (3) [4] −− ;;\n-·-\nSegunda linha útil."
	got := c.CleanBiobyIAResponse(raw)

	if strings.Contains(got, "0·12") || strings.Contains(got, "-·-") {
		t.Errorf("noise lines survived: %q", got)
	}
	if !strings.Contains(got, "Conclusão clínica relevante.") || !strings.Contains(got, "Segunda linha útil.") {
		t.Errorf("useful lines were lost: %q", got)
	}
}

func TestCleanBiobyIAResponse_CollapsesWhitespace(t *testing.T) {
	c := newTestCleaner()

	got := c.CleanBiobyIAResponse("linha um\n\n\n\n\nlinha dois  \t  com espaços")
	if strings.Contains(got, "\n\n\n") {
		t.Errorf("newlines not collapsed: %q", got)
	}
	if strings.Contains(got, "  ") {
		t.Errorf("space runs not collapsed: %q", got)
	}
}

func TestCleanBiobyIAResponse_GarbledFallsBackToApology(t *testing.T) {
	c := newTestCleaner()

	// Saturated with stat tokens, long, and with no recoverable section.
	noise := strings.Repeat("RR RR CI CI 95% xx yy zz ", 40)
	got := c.CleanBiobyIAResponse(noise)

	if got != Apology {
		t.Errorf("got %q, want apology", got)
	}
}

func TestCleanBiobyIAResponse_GarbledRecoversLastResponseSection(t *testing.T) {
	c := newTestCleaner()

	recoverable := "Orientação clínica completa e detalhada para o manejo do paciente, incluindo critérios de reavaliação em vinte e quatro horas."
	raw := strings.Repeat("RR CI 95% RR CI 95% ruído estatístico ", 20) +
		"### Response:\n" + recoverable

	got := c.CleanBiobyIAResponse(raw)
	if got != recoverable {
		t.Errorf("got %q, want recovered section", got)
	}
}

func TestCleanBiobyIAResponse_EmptyBecomesApology(t *testing.T) {
	c := newTestCleaner()

	if got := c.CleanBiobyIAResponse("### Response:\n\n0·1 (2)\n"); got != Apology {
		t.Errorf("got %q, want apology", got)
	}
}
