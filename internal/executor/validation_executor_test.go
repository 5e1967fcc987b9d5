package executor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/cleaner"
	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/contentfilter"
	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/database"
	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/executor/mocks"
	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/guardrails"
	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/llm"
	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/models"
	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/rules"
	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/validator"
	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"
)

func newTestLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func newTestExecutor(retriever SourceRetriever, client llm.LLMClient, audit AuditStore) *Executor {
	logger := newTestLogger()

	clients := map[string]llm.LLMClient{}
	if client != nil {
		clients[models.ProviderBedrock] = client
	}

	return NewExecutor(
		validator.New(contentfilter.New(), rules.NewTable(rules.Options{}), logger),
		cleaner.New(logger),
		guardrails.New(logger),
		retriever,
		clients,
		audit,
		models.ProviderBedrock,
		true,
		logger,
	)
}

const goodAnswer = "Segundo o protocolo PROT-CARD-001, a conduta inicial é monitorização. " +
	"Contraindicações devem ser avaliadas e as recomendações validadas por um médico licenciado."

func TestValidate_CleanAnswerPasses(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAudit := mocks.NewMockAuditStore(ctrl)
	mockAudit.EXPECT().SaveValidation(gomock.Any(), gomock.Any()).Return("audit-1", nil)

	exec := newTestExecutor(nil, nil, mockAudit)

	result := exec.Validate(context.Background(), models.ValidationRequest{
		RequestID: "req-1",
		Question:  "Qual a conduta para dor torácica?",
		Answer:    goodAnswer,
		Sources:   []models.Source{{ID: "chunk-1", ArticleID: "PROT-CARD-001"}},
	})

	if result.Rejected {
		t.Fatalf("clean answer was rejected: %s", result.RejectReason)
	}
	if result.Guardrails == nil || !result.Guardrails.Passed {
		t.Errorf("verdict = %+v", result.Guardrails)
	}
	if !strings.Contains(result.Answer, guardrails.SafetyDisclaimer) && !strings.Contains(result.Answer, "validadas por um médico") {
		t.Error("answer must carry a disclaimer")
	}
}

func TestValidate_RejectsForbiddenQuestion(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAudit := mocks.NewMockAuditStore(ctrl)
	mockAudit.EXPECT().SaveValidation(gomock.Any(), gomock.Any()).Return("audit-2", nil)

	exec := newTestExecutor(nil, nil, mockAudit)

	result := exec.Validate(context.Background(), models.ValidationRequest{
		RequestID: "req-2",
		Question:  "Preciso de aconselhamento jurídico sobre um processo.",
		Answer:    goodAnswer,
	})

	if !result.Rejected {
		t.Fatal("forbidden topic must be rejected")
	}
	if result.RejectReason != models.ReasonBusinessRule {
		t.Errorf("reason = %s, want %s", result.RejectReason, models.ReasonBusinessRule)
	}
}

func TestValidate_PrescriptionRequiresReview(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAudit := mocks.NewMockAuditStore(ctrl)
	mockAudit.EXPECT().SaveValidation(gomock.Any(), gomock.Any()).Return("audit-3", nil)

	exec := newTestExecutor(nil, nil, mockAudit)

	result := exec.Validate(context.Background(), models.ValidationRequest{
		RequestID: "req-3",
		Question:  "Qual a dose de amoxicilina?",
		Answer:    "Take 500 mg of amoxicillin every 8 hours for the infection to clear.",
	})

	if result.Rejected {
		t.Fatal("prescription answers are flagged, not rejected")
	}
	if result.Guardrails == nil || result.Guardrails.Passed {
		t.Error("verdict must fail on a direct prescription")
	}
	if !result.RequiresReview {
		t.Error("direct prescription must require review")
	}
}

func TestValidate_AuditFailureDoesNotBlock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAudit := mocks.NewMockAuditStore(ctrl)
	mockAudit.EXPECT().SaveValidation(gomock.Any(), gomock.Any()).Return("", errors.New("db down"))

	exec := newTestExecutor(nil, nil, mockAudit)

	result := exec.Validate(context.Background(), models.ValidationRequest{
		RequestID: "req-4",
		Question:  "Qual a conduta para febre?",
		Answer:    goodAnswer,
	})

	if result.Rejected {
		t.Error("audit failure must not reject the request")
	}
}

func TestValidate_AuditCarriesRequesterIdentity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var saved database.AuditRecord
	mockAudit := mocks.NewMockAuditStore(ctrl)
	mockAudit.EXPECT().
		SaveValidation(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, record database.AuditRecord) (string, error) {
			saved = record
			return "audit-6", nil
		})

	exec := newTestExecutor(nil, nil, mockAudit)

	exec.Validate(context.Background(), models.ValidationRequest{
		RequestID: "req-6",
		Question:  "Qual a conduta para dor torácica?",
		Answer:    goodAnswer,
		UserID:    "user-42",
		PatientID: "patient-7",
	})

	if saved.UserID != "user-42" {
		t.Errorf("UserID = %q, want user-42", saved.UserID)
	}
	if saved.PatientID != "patient-7" {
		t.Errorf("PatientID = %q, want patient-7", saved.PatientID)
	}
	if saved.RequestID != "req-6" {
		t.Errorf("RequestID = %q, want req-6", saved.RequestID)
	}
}

func TestValidate_AuditRedactsPersistedText(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var saved database.AuditRecord
	mockAudit := mocks.NewMockAuditStore(ctrl)
	mockAudit.EXPECT().
		SaveValidation(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, record database.AuditRecord) (string, error) {
			saved = record
			return "audit-7", nil
		})

	exec := newTestExecutor(nil, nil, mockAudit)

	exec.Validate(context.Background(), models.ValidationRequest{
		RequestID: "req-7",
		Question:  "Paciente ID: 12345 apresenta febre, qual a conduta?",
		Answer:    goodAnswer + " Em caso de dúvida escreva para medico@hospital.com.",
	})

	if strings.Contains(saved.Question, "12345") {
		t.Errorf("patient ID persisted in question: %q", saved.Question)
	}
	if !strings.Contains(saved.Question, "[PACIENTE_ID]") {
		t.Errorf("question missing placeholder: %q", saved.Question)
	}
	if strings.Contains(saved.Answer, "medico@hospital.com") {
		t.Errorf("e-mail persisted in answer: %q", saved.Answer)
	}
	if !strings.Contains(saved.Answer, "[EMAIL]") {
		t.Errorf("answer missing placeholder: %q", saved.Answer)
	}
}

func TestValidate_GeneratesRequestID(t *testing.T) {
	exec := newTestExecutor(nil, nil, nil)

	result := exec.Validate(context.Background(), models.ValidationRequest{
		Question: "Qual a conduta para febre?",
		Answer:   goodAnswer,
	})

	if result.ID == "" {
		t.Error("executor must assign a request ID")
	}
}

func TestAsk_FullPipeline(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	chunks := []database.ProtocolChunk{
		{Id: "chunk-1", ArticleID: "PROT-CARD-001", Score: 0.9, Content: "Protocolo de dor torácica."},
	}

	mockRetriever := mocks.NewMockSourceRetriever(ctrl)
	mockRetriever.EXPECT().Search(gomock.Any(), gomock.Any()).Return(chunks, nil)

	mockClient := mocks.NewMockLLMClient(ctrl)
	mockClient.EXPECT().
		InvokeModelWithRetry(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, req llm.LLMRequest) (*llm.LLMResponse, error) {
			if !strings.Contains(req.Prompt, "PROT-CARD-001") {
				t.Error("prompt must carry the retrieved context")
			}
			return &llm.LLMResponse{Content: goodAnswer, StopReason: "stop"}, nil
		})

	var saved database.AuditRecord
	mockAudit := mocks.NewMockAuditStore(ctrl)
	mockAudit.EXPECT().
		SaveValidation(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, record database.AuditRecord) (string, error) {
			saved = record
			return "audit-5", nil
		})

	exec := newTestExecutor(mockRetriever, mockClient, mockAudit)

	result, err := exec.Ask(context.Background(), models.AskRequest{
		Question:  "Qual a conduta para dor torácica?",
		UserID:    "user-42",
		PatientID: "patient-7",
	})
	if err != nil {
		t.Fatalf("Ask() failed: %v", err)
	}

	if result.Rejected {
		t.Fatalf("pipeline rejected a clean run: %s", result.RejectReason)
	}
	if len(result.Sources) != 1 || result.Sources[0].ArticleID != "PROT-CARD-001" {
		t.Errorf("sources = %v", result.Sources)
	}
	if len(result.Articles) != 1 || result.Articles[0] != "PROT-CARD-001" {
		t.Errorf("articles = %v", result.Articles)
	}
	if result.Guardrails == nil || !result.Guardrails.Passed {
		t.Errorf("verdict = %+v", result.Guardrails)
	}
	if saved.UserID != "user-42" || saved.PatientID != "patient-7" {
		t.Errorf("audit identity = %q/%q, want user-42/patient-7", saved.UserID, saved.PatientID)
	}
}

func TestAsk_AnonymizesQuestionBeforeRetrieval(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRetriever := mocks.NewMockSourceRetriever(ctrl)
	mockRetriever.EXPECT().
		Search(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, question string) ([]database.ProtocolChunk, error) {
			if strings.Contains(question, "12345") {
				t.Errorf("patient ID leaked into retrieval: %q", question)
			}
			return nil, nil
		})

	mockClient := mocks.NewMockLLMClient(ctrl)
	mockClient.EXPECT().
		InvokeModelWithRetry(gomock.Any(), gomock.Any()).
		Return(&llm.LLMResponse{Content: goodAnswer, StopReason: "stop"}, nil)

	exec := newTestExecutor(mockRetriever, mockClient, nil)

	_, err := exec.Ask(context.Background(), models.AskRequest{
		Question: "Paciente ID: 12345 com febre, qual a conduta?",
	})
	if err != nil {
		t.Fatalf("Ask() failed: %v", err)
	}
}

func TestAsk_RetrievalError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRetriever := mocks.NewMockSourceRetriever(ctrl)
	mockRetriever.EXPECT().Search(gomock.Any(), gomock.Any()).Return(nil, errors.New("pg down"))

	exec := newTestExecutor(mockRetriever, mocks.NewMockLLMClient(ctrl), nil)

	if _, err := exec.Ask(context.Background(), models.AskRequest{Question: "Qual a conduta para febre?"}); err == nil {
		t.Fatal("expected retrieval error")
	}
}

func TestAsk_UnknownProvider(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRetriever := mocks.NewMockSourceRetriever(ctrl)
	mockRetriever.EXPECT().Search(gomock.Any(), gomock.Any()).Return(nil, nil)

	exec := newTestExecutor(mockRetriever, nil, nil)

	_, err := exec.Ask(context.Background(), models.AskRequest{
		Question: "Qual a conduta para febre?",
		Provider: "nonexistent",
	})
	if !errors.Is(err, ErrProviderNotFound) {
		t.Fatalf("err = %v, want ErrProviderNotFound", err)
	}
}
