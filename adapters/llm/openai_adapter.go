package llm

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/khoahotran/educursus/internal/application/service"
	"github.com/khoahotran/educursus/internal/config"
	"github.com/khoahotran/educursus/pkg/logger"
)

// openAIAdapter talks to any OpenAI-compatible chat endpoint (Groq, Ollama, OpenAI).
type openAIAdapter struct {
	client *openai.Client
	model  string
	cfg    config.Config
	log    logger.Logger
}

func NewOpenAIAdapter(cfg config.Config, log logger.Logger) (service.TextGenerator, error) {
	if cfg.LLM.OpenAIModel == "" {
		return nil, fmt.Errorf("openai model is not configured")
	}

	key := cfg.LLM.OpenAIAPIKey
	if key == "" {
		key = "dummy-key"
	}
	clientCfg := openai.DefaultConfig(key)
	if cfg.LLM.OpenAIBaseURL != "" {
		clientCfg.BaseURL = cfg.LLM.OpenAIBaseURL
	}

	log.Info("OpenAI-compatible text generator initialized", zap.String("base_url", clientCfg.BaseURL), zap.String("model", cfg.LLM.OpenAIModel))
	return &openAIAdapter{client: openai.NewClientWithConfig(clientCfg), model: cfg.LLM.OpenAIModel, cfg: cfg, log: log}, nil
}

func (a *openAIAdapter) Generate(ctx context.Context, prompt string, opts service.GenerateOptions) (string, error) {
	ctx, cancel := withTimeout(ctx, a.cfg)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	}
	if opts.JSON {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject}
	}

	resp, err := a.client.CreateChatCompletion(ctx, req)
	if err != nil {
		gerr := service.NewGenerationError(ProviderOpenAI, service.ErrRequestFailed, err)
		logFailure(a.log, ProviderOpenAI, gerr)
		return "", gerr
	}

	var text string
	if len(resp.Choices) > 0 {
		text = resp.Choices[0].Message.Content
	}
	text, err = checkText(ProviderOpenAI, text, opts)
	if err != nil {
		logFailure(a.log, ProviderOpenAI, err)
		return "", err
	}
	return text, nil
}
