package guardrails

import (
	"sync"

	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/models"
)

// Runner fans the checks out concurrently and collects their issues. Checks
// are independent, so completion order does not affect the verdict.
type Runner struct {
	Checks []Check
}

func NewRunner(checks []Check) *Runner {
	return &Runner{
		Checks: checks,
	}
}

func (r *Runner) Run(input Input) []models.ValidationIssue {
	results := make(chan *models.ValidationIssue, len(r.Checks))
	var wg sync.WaitGroup

	for _, check := range r.Checks {
		wg.Add(1)
		go func(c Check) {
			defer wg.Done()
			results <- c.Check(input)
		}(check)
	}

	wg.Wait()
	close(results)

	issues := []models.ValidationIssue{}
	for issue := range results {
		if issue != nil {
			issues = append(issues, *issue)
		}
	}

	return issues
}
