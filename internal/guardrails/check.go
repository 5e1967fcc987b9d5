package guardrails

import (
	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/models"
)

// Input is the question/answer pair under classification plus the retrieval
// context the checks may consult.
type Input struct {
	Question  string
	Response  string
	Sources   []models.Source
	QueryType models.QueryType
}

// Check is a single, independent safety check over a question/answer pair.
// It returns nil when the response passes, or exactly one issue when it does
// not. Checks are pure and safe to run concurrently.
type Check interface {
	Name() string
	Check(input Input) *models.ValidationIssue
}
