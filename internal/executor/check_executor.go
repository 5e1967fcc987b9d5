package executor

import (
	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/guardrails"
	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/models"
	"github.com/rs/zerolog"
)

// CheckFactory resolves a guardrail check by name.
type CheckFactory interface {
	Get(name string) (guardrails.Check, error)
}

// CheckExecutor runs one named guardrail check against a response. Used by
// the single-check API route and the MCP tool.
type CheckExecutor struct {
	checks CheckFactory
	logger *zerolog.Logger
}

func NewCheckExecutor(checks CheckFactory, logger *zerolog.Logger) *CheckExecutor {
	return &CheckExecutor{
		checks: checks,
		logger: logger,
	}
}

func (e *CheckExecutor) Execute(checkName string, req models.ValidationRequest) (models.ContentValidationResult, error) {
	e.logger.Info().Str("requestID", req.RequestID).Str("check", checkName).Msg("running single check")

	check, err := e.checks.Get(checkName)
	if err != nil {
		e.logger.Error().Err(err).Str("check", checkName).Msg("check not found")
		return models.ContentValidationResult{}, err
	}

	issue := check.Check(guardrails.Input{
		Question:  req.Question,
		Response:  req.Answer,
		Sources:   req.Sources,
		QueryType: req.QueryType,
	})

	result := models.ContentValidationResult{Valid: issue == nil}
	if issue != nil {
		result.Issues = []models.ValidationIssue{*issue}
	}

	return result, nil
}
