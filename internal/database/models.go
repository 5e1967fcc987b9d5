package database

import "time"

// ProtocolChunk is one embedded fragment of an institutional protocol.
type ProtocolChunk struct {
	Id        string
	ArticleID string
	Content   string
	Metadata  map[string]string
	Distance  float64
	Score     float64
}

// AuditRecord is one persisted guardrail decision. The answer text is stored
// alongside the verdict so reviewers can see what was actually returned.
// UserID identifies the requester; PatientID is optional patient context.
type AuditRecord struct {
	Id             string
	RequestID      string
	Question       string
	Answer         string
	Provider       string
	UserID         string
	PatientID      string
	Passed         bool
	RequiresReview bool
	Rejected       bool
	RejectReason   string
	Verdict        []byte
	CreatedAt      time.Time
}
