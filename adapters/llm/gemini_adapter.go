package llm

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/khoahotran/educursus/internal/application/service"
	"github.com/khoahotran/educursus/internal/config"
	"github.com/khoahotran/educursus/pkg/logger"
)

type geminiAdapter struct {
	client *genai.Client
	model  string
	cfg    config.Config
	log    logger.Logger
}

// GeminiOption customizes the underlying genai client.
type GeminiOption func(*genai.ClientConfig)

// WithGeminiEndpoint points the client at another base URL and HTTP client.
func WithGeminiEndpoint(baseURL string, httpClient *http.Client) GeminiOption {
	return func(c *genai.ClientConfig) {
		c.HTTPOptions.BaseURL = baseURL
		c.HTTPClient = httpClient
	}
}

func NewGeminiAdapter(ctx context.Context, cfg config.Config, log logger.Logger, opts ...GeminiOption) (service.TextGenerator, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.LLM.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	}
	for _, opt := range opts {
		opt(clientCfg)
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	log.Info("Gemini text generator initialized", zap.String("model", cfg.LLM.GeminiModel))
	return &geminiAdapter{client: client, model: cfg.LLM.GeminiModel, cfg: cfg, log: log}, nil
}

func (a *geminiAdapter) Generate(ctx context.Context, prompt string, opts service.GenerateOptions) (string, error) {
	ctx, cancel := withTimeout(ctx, a.cfg)
	defer cancel()

	genCfg := &genai.GenerateContentConfig{}
	if opts.JSON {
		genCfg.ResponseMIMEType = "application/json"
	}

	resp, err := a.client.Models.GenerateContent(ctx, a.model, genai.Text(prompt), genCfg)
	if err != nil {
		gerr := service.NewGenerationError(ProviderGemini, service.ErrRequestFailed, err)
		logFailure(a.log, ProviderGemini, gerr)
		return "", gerr
	}

	text, err := checkText(ProviderGemini, firstCandidateText(resp), opts)
	if err != nil {
		logFailure(a.log, ProviderGemini, err)
		return "", err
	}
	return text, nil
}

func firstCandidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	c := resp.Candidates[0]
	if c == nil || c.Content == nil || len(c.Content.Parts) == 0 || c.Content.Parts[0] == nil {
		return ""
	}
	return c.Content.Parts[0].Text
}
