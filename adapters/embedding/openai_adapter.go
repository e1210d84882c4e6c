package embedding

import (
	"context"
	"errors"
	"fmt"

	"github.com/pgvector/pgvector-go"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/khoahotran/educursus/internal/application/service"
	"github.com/khoahotran/educursus/internal/config"
	"github.com/khoahotran/educursus/pkg/logger"
)

// ollamaAdapter calls Ollama's OpenAI-compatible embeddings endpoint.
type ollamaAdapter struct {
	client *openai.Client
	model  string
	log    logger.Logger
}

func NewOllamaAdapter(cfg config.Config, log logger.Logger) (service.EmbeddingService, error) {
	if cfg.Ollama.Host == "" {
		return nil, fmt.Errorf("ollama Host is not configured")
	}

	clientCfg := openai.DefaultConfig("dummy-key")
	clientCfg.BaseURL = cfg.Ollama.Host

	log.Info("Ollama Embedding Adapter initialized", zap.String("host", cfg.Ollama.Host), zap.String("model", cfg.Ollama.EmbeddingModel))
	return &ollamaAdapter{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Ollama.EmbeddingModel,
		log:    log,
	}, nil
}

func (a *ollamaAdapter) GenerateEmbeddings(ctx context.Context, text string) (pgvector.Vector, error) {
	req := openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(a.model),
	}

	resp, err := a.client.CreateEmbeddings(ctx, req)
	if err != nil {
		return pgvector.Vector{}, fmt.Errorf("ollama embedding request failed: %w", err)
	}
	if len(resp.Data) == 0 {
		return pgvector.Vector{}, fmt.Errorf("ollama returned no embeddings")
	}
	return pgvector.NewVector(resp.Data[0].Embedding), nil
}

var ErrEmbeddingsDisabled = errors.New("embeddings are not configured")

type disabledEmbedder struct{}

// NewDisabledEmbedder fails every call, so career matching falls back to keywords.
func NewDisabledEmbedder() service.EmbeddingService {
	return disabledEmbedder{}
}

func (disabledEmbedder) GenerateEmbeddings(context.Context, string) (pgvector.Vector, error) {
	return pgvector.Vector{}, ErrEmbeddingsDisabled
}
