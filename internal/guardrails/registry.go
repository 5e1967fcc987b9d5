package guardrails

import (
	"errors"
	"fmt"
)

var ErrCheckNotFound = errors.New("check not found")

// Registry indexes checks by name for single-check execution.
type Registry struct {
	checks map[string]Check
}

func NewRegistry(checks []Check) *Registry {
	indexed := make(map[string]Check, len(checks))
	for _, c := range checks {
		indexed[c.Name()] = c
	}
	return &Registry{checks: indexed}
}

func (r *Registry) Get(name string) (Check, error) {
	check, ok := r.checks[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCheckNotFound, name)
	}
	return check, nil
}

// Names lists the registered check names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.checks))
	for name := range r.checks {
		names = append(names, name)
	}
	return names
}
