package executor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/anonymizer"
	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/cleaner"
	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/database"
	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/guardrails"
	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/llm"
	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/models"
	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/retrieval"
	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/validator"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SourceRetriever finds protocol chunks relevant to a question.
type SourceRetriever interface {
	Search(ctx context.Context, question string) ([]database.ProtocolChunk, error)
}

// AuditStore persists guardrail decisions.
type AuditStore interface {
	SaveValidation(ctx context.Context, record database.AuditRecord) (string, error)
}

var ErrProviderNotFound = errors.New("provider not found")

const askPrompt = `Você é um assistente médico que responde com base em protocolos institucionais.

Contexto:
%s
Pergunta: %s

Responda em português, cite os protocolos usados e inclua contraindicações quando aplicável.`

type Executor struct {
	validator         *validator.Validator
	cleaner           *cleaner.Cleaner
	guardrails        *guardrails.Guardrails
	retriever         SourceRetriever
	clients           map[string]llm.LLMClient
	audit             AuditStore
	defaultProvider   string
	disclaimerEnabled bool
	logger            *zerolog.Logger
}

func NewExecutor(
	validator *validator.Validator,
	cleaner *cleaner.Cleaner,
	medicalGuardrails *guardrails.Guardrails,
	retriever SourceRetriever,
	clients map[string]llm.LLMClient,
	audit AuditStore,
	defaultProvider string,
	disclaimerEnabled bool,
	logger *zerolog.Logger,
) *Executor {
	return &Executor{
		validator:         validator,
		cleaner:           cleaner,
		guardrails:        medicalGuardrails,
		retriever:         retriever,
		clients:           clients,
		audit:             audit,
		defaultProvider:   defaultProvider,
		disclaimerEnabled: disclaimerEnabled,
		logger:            logger,
	}
}

// Validate classifies an already-produced answer. The input pipeline is
// fail-fast; everything after it is advisory and ends in a verdict.
func (e *Executor) Validate(ctx context.Context, req models.ValidationRequest) models.PipelineResult {
	id := req.RequestID
	if id == "" {
		id = uuid.New().String()
	}
	e.logger.Info().Str("requestID", id).Msg("starting validation")

	input := e.validator.ValidateInput(req.Question)
	if !input.Allowed {
		return e.reject(ctx, id, req, input.Reason)
	}

	answer := e.cleaner.Clean(e.provider(req.Provider), req.Answer)

	responseValidation := e.validator.ValidateResponse(answer)
	if !responseValidation.Valid {
		return e.reject(ctx, id, req, models.ReasonContentFilter)
	}

	verdict := e.guardrails.ValidateMedicalResponse(req.Question, answer, guardrails.Options{
		RequestID: id,
		Sources:   req.Sources,
		QueryType: e.queryType(req.QueryType),
	})

	if e.disclaimerEnabled {
		answer = guardrails.AddSafetyDisclaimer(answer)
	}

	result := models.PipelineResult{
		ID:             id,
		Answer:         answer,
		RequiresReview: verdict.RequiresReview,
		Guardrails:     &verdict,
		Sources:        req.Sources,
	}

	e.saveAudit(ctx, req, result)
	return result
}

// Ask runs the full pipeline: input validation, anonymization, retrieval,
// model invocation, cleaning, and the guardrail verdict.
func (e *Executor) Ask(ctx context.Context, req models.AskRequest) (models.PipelineResult, error) {
	id := uuid.New().String()
	e.logger.Info().Str("requestID", id).Str("provider", e.provider(req.Provider)).Msg("starting ask pipeline")

	input := e.validator.ValidateInput(req.Question)
	if !input.Allowed {
		return e.reject(ctx, id, askAuditRequest(req, req.Question), input.Reason), nil
	}

	question := anonymizer.Anonymize(input.Sanitized)

	chunks, err := e.retriever.Search(ctx, question)
	if err != nil {
		return models.PipelineResult{}, fmt.Errorf("source retrieval failed: %w", err)
	}
	sources := retrieval.ToSources(chunks)

	provider := e.provider(req.Provider)
	client, ok := e.clients[provider]
	if !ok {
		return models.PipelineResult{}, fmt.Errorf("%w: %s", ErrProviderNotFound, provider)
	}

	response, err := client.InvokeModelWithRetry(ctx, llm.LLMRequest{
		Prompt:      fmt.Sprintf(askPrompt, retrieval.FormatContext(chunks), question),
		MaxTokens:   1024,
		Temperature: 0.2,
	})
	if err != nil {
		return models.PipelineResult{}, fmt.Errorf("model invocation failed: %w", err)
	}

	answer := e.cleaner.Clean(provider, response.Content)

	responseValidation := e.validator.ValidateResponse(answer)
	if !responseValidation.Valid {
		return e.reject(ctx, id, askAuditRequest(req, question), models.ReasonContentFilter), nil
	}

	verdict := e.guardrails.ValidateMedicalResponse(question, answer, guardrails.Options{
		RequestID: id,
		Sources:   sources,
		QueryType: e.queryType(req.QueryType),
	})

	if e.disclaimerEnabled {
		answer = guardrails.AddSafetyDisclaimer(answer)
	}

	result := models.PipelineResult{
		ID:             id,
		Answer:         answer,
		RequiresReview: verdict.RequiresReview,
		Guardrails:     &verdict,
		Sources:        sources,
		Articles:       database.UniqueArticles(chunks),
	}

	e.saveAudit(ctx, askAuditRequest(req, question), result)
	return result, nil
}

// askAuditRequest carries the ask request's identity fields into the audit
// path, with the question as known at that point in the pipeline.
func askAuditRequest(req models.AskRequest, question string) models.ValidationRequest {
	return models.ValidationRequest{
		Question:  question,
		Provider:  req.Provider,
		UserID:    req.UserID,
		PatientID: req.PatientID,
	}
}

func (e *Executor) reject(ctx context.Context, id string, req models.ValidationRequest, reason string) models.PipelineResult {
	e.logger.Warn().Str("requestID", id).Str("reason", reason).Msg("request rejected")

	result := models.PipelineResult{
		ID:           id,
		Rejected:     true,
		RejectReason: reason,
	}
	e.saveAudit(ctx, req, result)
	return result
}

// Audit failures are logged but never block the caller; the verdict has
// already been made.
func (e *Executor) saveAudit(ctx context.Context, req models.ValidationRequest, result models.PipelineResult) {
	if e.audit == nil {
		return
	}

	var verdictJSON []byte
	if result.Guardrails != nil {
		verdictJSON, _ = json.Marshal(result.Guardrails)
	}

	// The model may echo identifiers from the question, so the answer gets
	// the same redaction before it is persisted.
	redacted := anonymizer.AnonymizeBatch([]string{req.Question, result.Answer})

	record := database.AuditRecord{
		RequestID:    result.ID,
		Question:     redacted[0],
		Answer:       redacted[1],
		Provider:     e.provider(req.Provider),
		UserID:       req.UserID,
		PatientID:    req.PatientID,
		Rejected:     result.Rejected,
		RejectReason: result.RejectReason,
		Verdict:      verdictJSON,
	}
	if result.Guardrails != nil {
		record.Passed = result.Guardrails.Passed
		record.RequiresReview = result.Guardrails.RequiresReview
	}

	if _, err := e.audit.SaveValidation(ctx, record); err != nil {
		e.logger.Error().Err(err).Str("requestID", result.ID).Msg("failed to save audit record")
	}
}

func (e *Executor) provider(provider string) string {
	if provider == "" {
		return e.defaultProvider
	}
	return provider
}

func (e *Executor) queryType(queryType models.QueryType) models.QueryType {
	if queryType == "" {
		return models.QueryTypeGeneral
	}
	return queryType
}
