package validator

import (
	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/contentfilter"
	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/models"
	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/rules"
	"github.com/rs/zerolog"
)

// Validator composes the content filter and the business rule table into the
// input and response pipelines. Domain violations come back as data, never as
// errors; an error escaping this package is an implementation bug.
type Validator struct {
	filter *contentfilter.Filter
	table  *rules.Table
	logger *zerolog.Logger
}

func New(filter *contentfilter.Filter, table *rules.Table, logger *zerolog.Logger) *Validator {
	return &Validator{
		filter: filter,
		table:  table,
		logger: logger,
	}
}

// ValidateInput runs the fail-fast input pipeline: content filter first, then
// sanitization, then the mandatory business rules against the sanitized text.
func (v *Validator) ValidateInput(input string) models.InputValidation {
	filtered := v.filter.ValidateInput(input)
	if !filtered.Valid {
		v.logger.Info().
			Str("reason", models.ReasonContentFilter).
			Msg("input blocked by content filter")
		return models.InputValidation{
			Allowed: false,
			Reason:  models.ReasonContentFilter,
			Issues:  filtered.Issues,
		}
	}

	sanitized := v.filter.SanitizeInput(input)

	violations := rules.Violations(v.table.Mandatory(), sanitized)
	if len(violations) > 0 {
		v.logger.Info().
			Str("reason", models.ReasonBusinessRule).
			Int("violations", len(violations)).
			Msg("input blocked by business rule")
		return models.InputValidation{
			Allowed: false,
			Reason:  models.ReasonBusinessRule,
			Issues:  violationsToIssues(violations, models.SeverityCritical),
		}
	}

	// Structural warnings plus placeholders for the quality rules, which are
	// deferred to response time.
	warnings := filtered.Issues
	for _, r := range v.table.Quality() {
		warnings = append(warnings, models.ValidationIssue{
			Flag:     r.ID(),
			Severity: models.SeverityInfo,
			Message:  "checked against the response, not the input",
		})
	}

	return models.InputValidation{
		Allowed:   true,
		Sanitized: sanitized,
		Warnings:  warnings,
	}
}

// ValidateResponse runs the structural response check, then the quality and
// content rules. Rule violations are advisory and never flip Valid.
func (v *Validator) ValidateResponse(response string) models.ResponseValidation {
	filtered := v.filter.ValidateResponse(response)
	if !filtered.Valid {
		return models.ResponseValidation{
			Valid:     false,
			Issues:    filtered.Issues,
			Corrected: response,
		}
	}

	var issues []models.ValidationIssue
	issues = append(issues, violationsToIssues(rules.Violations(v.table.Quality(), response), models.SeverityLow)...)
	issues = append(issues, violationsToIssues(rules.Violations(v.table.Content(), response), models.SeverityMedium)...)

	// Corrected passes through unchanged until auto-correction exists.
	return models.ResponseValidation{
		Valid:     true,
		Issues:    issues,
		Corrected: response,
	}
}

// CompleteValidation chains input and response validation.
type CompleteValidation struct {
	Input    models.InputValidation     `json:"input"`
	Response *models.ResponseValidation `json:"response,omitempty"`
}

// ValidateCompleteRequest validates the input, and only if it is allowed,
// the response.
func (v *Validator) ValidateCompleteRequest(input, response string) CompleteValidation {
	result := CompleteValidation{Input: v.ValidateInput(input)}
	if !result.Input.Allowed {
		return result
	}

	responseResult := v.ValidateResponse(response)
	result.Response = &responseResult
	return result
}

func violationsToIssues(violations []models.RuleViolation, severity models.Severity) []models.ValidationIssue {
	issues := make([]models.ValidationIssue, 0, len(violations))
	for _, violation := range violations {
		message := violation.Message
		if message == "" {
			message = violation.Description
		}
		issues = append(issues, models.ValidationIssue{
			Flag:     violation.Rule,
			Severity: severity,
			Message:  message,
		})
	}
	return issues
}
