package guardrails

import (
	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/aggregator"
	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/models"
	"github.com/rs/zerolog"
)

// Options is the retrieval and routing context for one classification.
type Options struct {
	RequestID string
	Sources   []models.Source
	QueryType models.QueryType
}

// Guardrails is the medical safety classifier: five independent checks over
// the question/answer pair, aggregated into a pass/review verdict.
type Guardrails struct {
	runner     *Runner
	aggregator *aggregator.Aggregator
	logger     *zerolog.Logger
}

func New(logger *zerolog.Logger) *Guardrails {
	return NewWithChecks(DefaultChecks(), logger)
}

func NewWithChecks(checks []Check, logger *zerolog.Logger) *Guardrails {
	return &Guardrails{
		runner:     NewRunner(checks),
		aggregator: aggregator.New(logger),
		logger:     logger,
	}
}

// ValidateMedicalResponse runs every check unconditionally and aggregates
// the issues. It never blocks an answer; the caller decides what a failed
// verdict means for presentation.
func (g *Guardrails) ValidateMedicalResponse(question, response string, opts Options) models.GuardrailVerdict {
	input := Input{
		Question:  question,
		Response:  response,
		Sources:   opts.Sources,
		QueryType: opts.QueryType,
	}

	issues := g.runner.Run(input)

	verdict := g.aggregator.Aggregate(opts.RequestID, issues)

	if verdict.RequiresReview {
		g.logger.Warn().
			Str("id", opts.RequestID).
			Int("critical", verdict.Summary.Critical).
			Msg("response flagged for physician review")
	}

	return verdict
}
