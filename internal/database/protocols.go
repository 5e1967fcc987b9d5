package database

import (
	"context"
	"fmt"

	"github.com/pgvector/pgvector-go"
)

// SemanticSearch returns the protocol chunks closest to the query embedding.
// Cosine distance is converted to a similarity score so callers can apply a
// minimum-score cutoff.
func (db *DB) SemanticSearch(ctx context.Context, queryEmbeddings []float32, limit int) ([]ProtocolChunk, error) {
	pgvectorEmbeddings := pgvector.NewVector(queryEmbeddings)

	query := `
	SELECT
	  id,
	  article_id,
	  content,
	  metadata,
	  embedding <=> $1 AS distance
	FROM protocol_chunks
	ORDER BY distance ASC
	LIMIT $2`

	rows, err := db.Pool.Query(ctx, query, pgvectorEmbeddings, limit)
	if err != nil {
		return nil, fmt.Errorf("Unable to query the database: %w", err)
	}

	defer rows.Close()

	var chunks []ProtocolChunk
	for rows.Next() {
		var chunk ProtocolChunk

		if err := rows.Scan(&chunk.Id, &chunk.ArticleID, &chunk.Content, &chunk.Metadata, &chunk.Distance); err != nil {
			return nil, fmt.Errorf("Failed to scan row: %w", err)
		}

		chunk.Score = 1 - chunk.Distance
		chunks = append(chunks, chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return chunks, nil
}

// FilterByScore drops chunks below the minimum similarity score.
func FilterByScore(chunks []ProtocolChunk, minScore float64) []ProtocolChunk {
	var kept []ProtocolChunk
	for _, chunk := range chunks {
		if chunk.Score >= minScore {
			kept = append(kept, chunk)
		}
	}
	return kept
}

// UniqueArticles extracts the distinct article IDs from a result set,
// preserving first-seen order.
func UniqueArticles(chunks []ProtocolChunk) []string {
	seen := make(map[string]bool)
	var articleIDs []string

	for _, chunk := range chunks {
		if chunk.ArticleID == "" || seen[chunk.ArticleID] {
			continue
		}
		seen[chunk.ArticleID] = true
		articleIDs = append(articleIDs, chunk.ArticleID)
	}

	return articleIDs
}
