package config

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// LoadGuardrailsConfig reads configs/guardrails.yaml, or the file pointed at
// by GUARDRAILS_CONFIG_PATH.
func LoadGuardrailsConfig() (*GuardrailsConfig, error) {
	path := os.Getenv("GUARDRAILS_CONFIG_PATH")
	if path == "" {
		path = "configs/guardrails.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg GuardrailsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *GuardrailsConfig) {
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = 5
	}
	if cfg.Retrieval.MinScore == 0 {
		cfg.Retrieval.MinScore = 0.7
	}
}

func (c *GuardrailsConfig) Validate() error {
	if c.Retrieval.TopK < 1 {
		return fmt.Errorf("invalid top_k: %d", c.Retrieval.TopK)
	}
	if c.Retrieval.MinScore < 0 || c.Retrieval.MinScore > 1 {
		return fmt.Errorf("invalid min_score: %f", c.Retrieval.MinScore)
	}

	seen := make(map[string]bool)
	for _, name := range c.Guardrails.DisabledChecks {
		if name == "" {
			return fmt.Errorf("disabled_checks contains an empty name")
		}
		if seen[name] {
			return fmt.Errorf("duplicate disabled check: %s", name)
		}
		seen[name] = true
	}

	return nil
}
