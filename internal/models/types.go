package models

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
)

// Flags emitted by the medical guardrail checks.
const (
	FlagDirectPrescription     = "DIRECT_PRESCRIPTION"
	FlagMissingDisclaimer      = "MISSING_DISCLAIMER"
	FlagNoSources              = "NO_SOURCES"
	FlagSourcesNotCited        = "SOURCES_NOT_CITED"
	FlagHighRiskContent        = "HIGH_RISK_CONTENT"
	FlagNoContraindicationInfo = "NO_CONTRAINDICATION_CHECK"
)

type QueryType string

const (
	QueryTypeGeneral             QueryType = "general"
	QueryTypeProtocolQuery       QueryType = "protocol_query"
	QueryTypeTreatmentSuggestion QueryType = "treatment_suggestion"
	QueryTypeDrugInteraction     QueryType = "drug_interaction"
)

// LLM provider names.
const (
	ProviderBedrock = "bedrock"
	ProviderOllama  = "ollama"
	ProviderBiobyIA = "biobyia"
)

// Rejection reasons returned by input validation.
const (
	ReasonContentFilter = "content_filter"
	ReasonBusinessRule  = "business_rule"
)

// ValidationIssue is a single finding from one check. Immutable once produced.
type ValidationIssue struct {
	Flag           string   `json:"flag"`
	Severity       Severity `json:"severity"`
	Message        string   `json:"message"`
	RequiresReview bool     `json:"requires_review,omitempty"`
}

// ContentValidationResult is the outcome of the structural content filter.
type ContentValidationResult struct {
	Valid  bool              `json:"valid"`
	Issues []ValidationIssue `json:"issues"`
}

type RuleAction string

const (
	ActionReject  RuleAction = "reject"
	ActionWarn    RuleAction = "warn"
	ActionEnforce RuleAction = "enforce"
	ActionFlag    RuleAction = "flag"
)

// RuleViolation records one business rule whose predicate failed.
type RuleViolation struct {
	Rule        string     `json:"rule"`
	Description string     `json:"description"`
	Action      RuleAction `json:"action"`
	Message     string     `json:"message,omitempty"`
}

// SeveritySummary tallies issues per severity bucket.
type SeveritySummary struct {
	Total    int `json:"total"`
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
}

// GuardrailVerdict is the terminal classification artifact. It never carries
// the response text itself; the caller pairs it with the answer for audit.
type GuardrailVerdict struct {
	ID             string            `json:"id"`
	Passed         bool              `json:"passed"`
	RequiresReview bool              `json:"requires_review"`
	Issues         []ValidationIssue `json:"issues"`
	Summary        SeveritySummary   `json:"summary"`
}

// InputValidation is the outcome of the input pipeline.
type InputValidation struct {
	Allowed   bool              `json:"allowed"`
	Reason    string            `json:"reason,omitempty"`
	Issues    []ValidationIssue `json:"issues,omitempty"`
	Warnings  []ValidationIssue `json:"warnings,omitempty"`
	Sanitized string            `json:"sanitized"`
}

// ResponseValidation is the outcome of the response pipeline. Issues are
// advisory; Valid only flips on structural failures.
type ResponseValidation struct {
	Valid     bool              `json:"valid"`
	Issues    []ValidationIssue `json:"issues,omitempty"`
	Corrected string            `json:"corrected"`
}

// Source is a protocol chunk retrieved externally, used only for the
// citation-presence check.
type Source struct {
	ID        string            `json:"id"`
	ArticleID string            `json:"article_id,omitempty"`
	Score     float64           `json:"score,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Input message for the classification-only path (answer already produced).
type ValidationRequest struct {
	RequestID string    `json:"request_id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Provider  string    `json:"provider,omitempty"`
	QueryType QueryType `json:"query_type,omitempty"`
	UserID    string    `json:"user_id,omitempty"`
	PatientID string    `json:"patient_id,omitempty"`
	Sources   []Source  `json:"sources,omitempty"`
}

// Input message for the full ask path (the agent calls the LLM itself).
type AskRequest struct {
	Question  string    `json:"question"`
	Provider  string    `json:"provider,omitempty"`
	QueryType QueryType `json:"query_type,omitempty"`
	UserID    string    `json:"user_id,omitempty"`
	PatientID string    `json:"patient_id,omitempty"`
}

// PipelineResult is what the caller surfaces to end clients and writes to
// the audit log. Articles lists the distinct protocol articles behind the
// retrieved sources, in retrieval order.
type PipelineResult struct {
	ID             string            `json:"id"`
	Answer         string            `json:"answer"`
	Rejected       bool              `json:"rejected"`
	RejectReason   string            `json:"reject_reason,omitempty"`
	RequiresReview bool              `json:"requires_review"`
	Guardrails     *GuardrailVerdict `json:"guardrails,omitempty"`
	Sources        []Source          `json:"sources,omitempty"`
	Articles       []string          `json:"articles,omitempty"`
}
