package aggregator

import (
	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/models"
	"github.com/rs/zerolog"
)

// Aggregator folds the issues from all checks into the final verdict.
type Aggregator struct {
	logger *zerolog.Logger
}

func New(logger *zerolog.Logger) *Aggregator {
	return &Aggregator{
		logger: logger,
	}
}

// Aggregate builds the verdict: passed means no critical issue, and review
// is required when any issue is critical or asks for it explicitly.
// Order-insensitive over the issue list.
func (a *Aggregator) Aggregate(id string, issues []models.ValidationIssue) models.GuardrailVerdict {
	verdict := models.GuardrailVerdict{
		ID:             id,
		Passed:         true,
		RequiresReview: false,
		Issues:         issues,
	}

	for _, issue := range issues {
		verdict.Summary.Total++
		switch issue.Severity {
		case models.SeverityCritical:
			verdict.Summary.Critical++
			verdict.Passed = false
			verdict.RequiresReview = true
		case models.SeverityHigh:
			verdict.Summary.High++
		case models.SeverityMedium:
			verdict.Summary.Medium++
		case models.SeverityLow:
			verdict.Summary.Low++
		}
		if issue.RequiresReview {
			verdict.RequiresReview = true
		}
	}

	a.logger.Info().
		Str("id", id).
		Bool("passed", verdict.Passed).
		Bool("requires_review", verdict.RequiresReview).
		Int("issues", verdict.Summary.Total).
		Msg("aggregation complete")

	return verdict
}
