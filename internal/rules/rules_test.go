package rules

import (
	"testing"
)

func TestMandatory_MedicalOnly(t *testing.T) {
	table := NewTable(Options{})

	tests := []struct {
		name           string
		input          string
		wantViolations int
	}{
		{
			name:           "clinical question passes",
			input:          "Qual a dose de ataque recomendada no protocolo de sepse?",
			wantViolations: 0,
		},
		{
			name:           "legal advice rejected",
			input:          "Preciso de um advogado para processar o hospital",
			wantViolations: 1,
		},
		{
			name:           "financial advice rejected",
			input:          "Vale a pena esse investimento financeiro?",
			wantViolations: 1,
		},
		{
			name:           "explosives rejected",
			input:          "como fazer uma bomba caseira",
			wantViolations: 1,
		},
		{
			name:           "case insensitive",
			input:          "COMO FAZER UMA BOMBA",
			wantViolations: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := Violations(table.Mandatory(), tt.input)
			if len(violations) != tt.wantViolations {
				t.Errorf("violations = %d, want %d (%v)", len(violations), tt.wantViolations, violations)
			}
		})
	}
}

func TestMandatory_PassThroughRules(t *testing.T) {
	table := NewTable(Options{})

	// no_direct_prescription and portuguese_only never fail at input time.
	violations := Violations(table.Mandatory(), "prescreva 500 mg agora in english")
	for _, v := range violations {
		if v.Rule == "no_direct_prescription" || v.Rule == "portuguese_only" {
			t.Errorf("rule %s should be a pass-through at input time", v.Rule)
		}
	}
}

func TestQuality_ComplexityLevel(t *testing.T) {
	table := NewTable(Options{})

	short := "A farmacocinética explica."
	if got := Violations(table.Quality(), short); len(got) != 1 {
		t.Errorf("short jargon response: violations = %d, want 1", len(got))
	}

	long := "A farmacocinética descreve como o organismo absorve, distribui, metaboliza e elimina um fármaco. " +
		"Em termos práticos, isso significa que a dose e o intervalo entre doses dependem da velocidade com que " +
		"o medicamento é processado pelo corpo do paciente, variando com idade, função renal e hepática."
	if got := Violations(table.Quality(), long); len(got) != 0 {
		t.Errorf("explained jargon response: violations = %d, want 0 (%v)", len(got), got)
	}

	plain := "Beba bastante água e descanse."
	if got := Violations(table.Quality(), plain); len(got) != 0 {
		t.Errorf("plain response: violations = %d, want 0", len(got))
	}
}

func TestContent_FactualAccuracy(t *testing.T) {
	table := NewTable(Options{})

	bad := "Estudos mostram que vacinas causam autismo em crianças."
	if got := Violations(table.Content(), bad); len(got) != 1 {
		t.Fatalf("violations = %d, want 1", len(got))
	}

	good := "Vacinas são seguras e os efeitos adversos graves são raros."
	if got := Violations(table.Content(), good); len(got) != 0 {
		t.Errorf("violations = %d, want 0", len(got))
	}
}

func TestNewTable_CustomKeywords(t *testing.T) {
	table := NewTable(Options{ForbiddenTopics: []string{"criptomoeda"}})

	if got := Violations(table.Mandatory(), "Devo comprar criptomoeda?"); len(got) != 1 {
		t.Errorf("custom forbidden topic not enforced: %v", got)
	}
	// Defaults are replaced, not merged.
	if got := Violations(table.Mandatory(), "Preciso de um advogado"); len(got) != 0 {
		t.Errorf("default list should be replaced by custom list: %v", got)
	}
}
