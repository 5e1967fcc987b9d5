package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// SaveValidation persists one guardrail decision for later review.
func (db *DB) SaveValidation(ctx context.Context, record AuditRecord) (string, error) {
	if record.Id == "" {
		record.Id = uuid.New().String()
	}

	query := `
	INSERT INTO validation_audit
	  (id, request_id, question, answer, provider, user_id, patient_id, passed, requires_review, rejected, reject_reason, verdict)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := db.Pool.Exec(ctx, query,
		record.Id,
		record.RequestID,
		record.Question,
		record.Answer,
		record.Provider,
		record.UserID,
		record.PatientID,
		record.Passed,
		record.RequiresReview,
		record.Rejected,
		record.RejectReason,
		record.Verdict,
	)
	if err != nil {
		return "", fmt.Errorf("Failed to save validation record: %w", err)
	}

	return record.Id, nil
}

// ListPendingReview returns the most recent decisions flagged for human
// review, newest first.
func (db *DB) ListPendingReview(ctx context.Context, limit int) ([]AuditRecord, error) {
	query := `
	SELECT id, request_id, question, answer, provider, user_id, patient_id, passed, requires_review, rejected, reject_reason, verdict, created_at
	FROM validation_audit
	WHERE requires_review = true
	ORDER BY created_at DESC
	LIMIT $1`

	rows, err := db.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("Unable to fetch pending reviews: %w", err)
	}

	defer rows.Close()

	var records []AuditRecord
	for rows.Next() {
		var record AuditRecord

		if err := rows.Scan(
			&record.Id,
			&record.RequestID,
			&record.Question,
			&record.Answer,
			&record.Provider,
			&record.UserID,
			&record.PatientID,
			&record.Passed,
			&record.RequiresReview,
			&record.Rejected,
			&record.RejectReason,
			&record.Verdict,
			&record.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("Failed to scan row: %w", err)
		}

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return records, nil
}
