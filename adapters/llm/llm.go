package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/khoahotran/educursus/internal/application/service"
	"github.com/khoahotran/educursus/internal/config"
	"github.com/khoahotran/educursus/pkg/llmjson"
	"github.com/khoahotran/educursus/pkg/logger"
)

const (
	ProviderGemini   = "gemini"
	ProviderOpenAI   = "openai"
	ProviderDisabled = "disabled"
)

// NewTextGenerator picks the provider named in config. A provider without credentials
// degrades to the disabled generator so every caller serves its fallback content.
func NewTextGenerator(ctx context.Context, cfg config.Config, log logger.Logger) (service.TextGenerator, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))

	switch provider {
	case ProviderGemini:
		if cfg.LLM.GeminiAPIKey == "" {
			log.Warn("Gemini API key not configured, text generation disabled")
			return NewDisabledGenerator(), nil
		}
		return NewGeminiAdapter(ctx, cfg, log)
	case ProviderOpenAI:
		if cfg.LLM.OpenAIAPIKey == "" && cfg.LLM.OpenAIBaseURL == "" {
			log.Warn("OpenAI-compatible endpoint not configured, text generation disabled")
			return NewDisabledGenerator(), nil
		}
		return NewOpenAIAdapter(cfg, log)
	case ProviderDisabled, "":
		log.Info("Text generation disabled by configuration")
		return NewDisabledGenerator(), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLM.Provider)
	}
}

// checkText applies the checks shared by every provider to the extracted text.
func checkText(provider, text string, opts service.GenerateOptions) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", service.NewGenerationError(provider, service.ErrEmptyText, nil)
	}
	if opts.JSON && !json.Valid([]byte(llmjson.Clean(text))) {
		return "", service.NewGenerationError(provider, service.ErrInvalidJSON, nil)
	}
	return text, nil
}

func withTimeout(ctx context.Context, cfg config.Config) (context.Context, context.CancelFunc) {
	if cfg.LLM.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, cfg.LLM.Timeout)
}

type disabledGenerator struct{}

func NewDisabledGenerator() service.TextGenerator {
	return disabledGenerator{}
}

func (disabledGenerator) Generate(context.Context, string, service.GenerateOptions) (string, error) {
	return "", service.NewGenerationError(ProviderDisabled, service.ErrRequestFailed, nil)
}

func logFailure(log logger.Logger, provider string, err error) {
	log.Warn("Text generation failed", zap.String("provider", provider), zap.Error(err))
}
