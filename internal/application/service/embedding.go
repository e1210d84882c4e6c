package service

import (
	"context"

	"github.com/pgvector/pgvector-go"
)

// EmbeddingService turns profile and career descriptions into vectors for career matching.
type EmbeddingService interface {
	GenerateEmbeddings(ctx context.Context, text string) (pgvector.Vector, error)
}
