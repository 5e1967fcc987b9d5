package config

// GuardrailsConfig is the root of configs/guardrails.yaml.
type GuardrailsConfig struct {
	Guardrails Guardrails      `yaml:"guardrails"`
	Rules      RulesConfig     `yaml:"rules"`
	Retrieval  RetrievalConfig `yaml:"retrieval"`
}

// Guardrails controls the response-side checks and the disclaimer.
type Guardrails struct {
	DisclaimerEnabled bool     `yaml:"disclaimer_enabled"`
	DisabledChecks    []string `yaml:"disabled_checks"`
}

// RulesConfig overrides the built-in business rule keyword lists. Empty
// lists keep the defaults.
type RulesConfig struct {
	ForbiddenTopics []string `yaml:"forbidden_topics"`
	JargonTerms     []string `yaml:"jargon_terms"`
	FalseClaims     []string `yaml:"false_claims"`
}

// RetrievalConfig tunes the protocol source lookup.
type RetrievalConfig struct {
	TopK     int     `yaml:"top_k"`
	MinScore float64 `yaml:"min_score"`
}
