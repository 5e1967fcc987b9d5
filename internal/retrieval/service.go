// Package retrieval finds protocol sources relevant to a clinical question.
package retrieval

import (
	"context"
	"fmt"

	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/database"
	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/models"
)

// Embedder turns a question into a query vector.
type Embedder interface {
	GenerateEmbeddings(ctx context.Context, text string) ([]float32, error)
}

// Store runs the vector search.
type Store interface {
	SemanticSearch(ctx context.Context, queryEmbeddings []float32, limit int) ([]database.ProtocolChunk, error)
}

type Service struct {
	embedder Embedder
	store    Store
	topK     int
	minScore float64
}

func NewService(embedder Embedder, store Store, topK int, minScore float64) *Service {
	return &Service{
		embedder: embedder,
		store:    store,
		topK:     topK,
		minScore: minScore,
	}
}

// Search embeds the question, runs the vector lookup and drops low-scoring
// chunks. Returning zero chunks is not an error; the citation check decides
// what that means for the answer.
func (s *Service) Search(ctx context.Context, question string) ([]database.ProtocolChunk, error) {
	embeddings, err := s.embedder.GenerateEmbeddings(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("Unable to generate embeddings. Error: %w", err)
	}

	chunks, err := s.store.SemanticSearch(ctx, embeddings, s.topK)
	if err != nil {
		return nil, fmt.Errorf("Unable to run semantic search on the DB. Error: %w", err)
	}

	return database.FilterByScore(chunks, s.minScore), nil
}

// ToSources strips chunk content, keeping only citation metadata.
func ToSources(chunks []database.ProtocolChunk) []models.Source {
	var sources []models.Source
	for _, chunk := range chunks {
		sources = append(sources, models.Source{
			ID:        chunk.Id,
			ArticleID: chunk.ArticleID,
			Score:     chunk.Score,
			Metadata:  chunk.Metadata,
		})
	}
	return sources
}

// FormatContext renders retrieved chunks into the prompt context block.
func FormatContext(chunks []database.ProtocolChunk) string {
	if len(chunks) == 0 {
		return "Nenhum contexto relevante encontrado."
	}

	var out string
	for i, chunk := range chunks {
		out += fmt.Sprintf("[Contexto %d] (Artigo: %s, Score: %.3f)\n%s\n\n", i+1, chunk.ArticleID, chunk.Score, chunk.Content)
	}
	return out
}
