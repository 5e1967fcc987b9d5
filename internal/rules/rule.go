package rules

import (
	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/models"
)

// Rule is one declarative policy entry. Evaluate is a pure predicate over a
// string and returns true when the text complies. Predicates must not panic;
// a panicking predicate is a programming error, not a domain failure.
type Rule interface {
	ID() string
	Description() string
	Action() models.RuleAction
	Message() string
	Evaluate(text string) bool
}

type rule struct {
	id          string
	description string
	action      models.RuleAction
	message     string
	evaluate    func(text string) bool
}

func (r rule) ID() string                { return r.id }
func (r rule) Description() string       { return r.description }
func (r rule) Action() models.RuleAction { return r.action }
func (r rule) Message() string           { return r.message }
func (r rule) Evaluate(text string) bool { return r.evaluate(text) }

// Violations evaluates every rule in order and collects one violation per
// failing rule.
func Violations(ruleSet []Rule, text string) []models.RuleViolation {
	var violations []models.RuleViolation
	for _, r := range ruleSet {
		if r.Evaluate(text) {
			continue
		}
		violations = append(violations, models.RuleViolation{
			Rule:        r.ID(),
			Description: r.Description(),
			Action:      r.Action(),
			Message:     r.Message(),
		})
	}
	return violations
}
