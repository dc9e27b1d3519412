package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/birmacher/econ-bot/common"
	"github.com/birmacher/econ-bot/logger"
	"google.golang.org/genai"
)

// GeminiModel implements the LLM interface using the Gemini API
type GeminiModel struct {
	client *genai.Client
	providerConfig
}

// NewGemini creates a new Gemini client
func NewGemini(ctx context.Context, apiKey string, opts ...Option) (*GeminiModel, error) {
	if apiKey == "" {
		return nil, errors.New("Gemini API key cannot be empty")
	}

	cfg := newProviderConfig("gemini-2.0-flash", opts)

	clientConfig := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: common.NewRetryableClient(cfg.retry).StandardClient(),
	}
	if cfg.baseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.baseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	logger.Debugf("Gemini client initialized with model: %s, timeout: %d seconds", cfg.modelName, cfg.apiTimeout)

	return &GeminiModel{client: client, providerConfig: cfg}, nil
}

// Prompt sends a request to Gemini and returns the response
func (g *GeminiModel) Prompt(ctx context.Context, req Request) Response {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(g.apiTimeout)*time.Second)
	defer cancel()

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(req.Temperature),
		MaxOutputTokens: int32(g.tokens(req)),
	}
	if req.SystemPrompt != "" {
		config.SystemInstruction = genai.NewContentFromText(req.SystemPrompt, genai.RoleUser)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(req.UserPrompt), config)
	if err != nil {
		logger.Warnf("gemini generate content failed: %v", err)
		return Response{
			Error: fmt.Errorf("%w: generate content: %v", ErrGeneration, err),
		}
	}

	text := common.NormalizeAnswer(resp.Text())
	if text == "" {
		return Response{
			Error: fmt.Errorf("%w: empty response from model %s", ErrGeneration, g.modelName),
		}
	}

	return Response{
		Content: text,
	}
}
